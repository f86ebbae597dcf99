package room

type Member struct {
	Name   string `redis:"name"`
	IsHost bool   `redis:"is_host"`
	RoomId string `redis:"room_id"`
}

type Track struct {
	Id        string  `redis:"id"`
	Title     string  `redis:"title"`
	Thumbnail string  `redis:"thumbnail"`
	Duration  float64 `redis:"duration"`
	AddedBy   string  `redis:"added_by"`
}

type Player struct {
	IsPlaying   bool    `redis:"is_playing"`
	CurrentTime float64 `redis:"current_time"`
	UpdatedAt   int64   `redis:"updated_at"`
}

type Theme struct {
	Id         string `redis:"id"`
	Name       string `redis:"name"`
	Background string `redis:"background"`
	Text       string `redis:"text"`
	Accent     string `redis:"accent"`
	Secondary  string `redis:"secondary"`
}
