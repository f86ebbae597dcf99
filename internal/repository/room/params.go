package room

type SetMemberParams struct {
	MemberId string
	Name     string
	IsHost   bool
	RoomId   string
}

type RemoveMemberParams struct {
	MemberId string
	RoomId   string
}

type GetMemberParams struct {
	MemberId string
	RoomId   string
}

type UpdateMemberIsHostParams struct {
	MemberId string
	RoomId   string
	IsHost   bool
}

type SetHostIdParams struct {
	RoomId   string
	MemberId string
}

type AppendTrackParams struct {
	RoomId string
	Track  Track
}

type RemoveTrackParams struct {
	RoomId  string
	TrackId string
}

type GetTrackParams struct {
	RoomId  string
	TrackId string
}

type SetQueueParams struct {
	RoomId string
	Tracks []Track
}

type SetCurrentTrackParams struct {
	RoomId string
	// nil clears the current track.
	Track *Track
}

type UpdatePlayerStateParams struct {
	RoomId      string
	IsPlaying   bool
	CurrentTime float64
	UpdatedAt   int64
}

type SetThemeParams struct {
	RoomId string
	Theme  Theme
}

type SetDynamicThemeParams struct {
	RoomId    string
	IsDynamic bool
}
