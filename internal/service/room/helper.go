package room

import (
	"context"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/JaiminVadadoriya/modern-radio-party/internal/repository/room"
)

// roomLock returns the mutex serializing mutations of the given room,
// creating it on first use. Callers lock and unlock it themselves.
func (s *service) roomLock(roomId string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	mu, ok := s.roomMus[roomId]
	if !ok {
		mu = &sync.Mutex{}
		s.roomMus[roomId] = mu
	}

	return mu
}

func (s *service) dropRoomLock(roomId string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.roomMus, roomId)
}

func (s *service) checkIfMemberHost(ctx context.Context, roomId, memberId string) error {
	hostId, err := s.roomRepo.GetHostId(ctx, roomId)
	if err != nil {
		return fmt.Errorf("failed to get host id: %w", err)
	}

	if hostId == "" || hostId != memberId {
		return ErrPermissionDenied
	}

	return nil
}

// getUsers returns the outward member list (deduplicated by name, join order,
// first-seen wins) and the raw member count.
func (s *service) getUsers(ctx context.Context, roomId string) ([]User, int, error) {
	memberIds, err := s.roomRepo.GetMemberIds(ctx, roomId)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get member ids: %w", err)
	}

	seen := make(map[string]struct{}, len(memberIds))
	users := make([]User, 0, len(memberIds))
	for _, memberId := range memberIds {
		member, err := s.roomRepo.GetMember(ctx, &room.GetMemberParams{
			MemberId: memberId,
			RoomId:   roomId,
		})
		if err != nil {
			return nil, 0, fmt.Errorf("failed to get member: %w", err)
		}

		if _, ok := seen[member.Name]; ok {
			continue
		}
		seen[member.Name] = struct{}{}

		users = append(users, User{
			Name:   member.Name,
			IsHost: member.IsHost,
		})
	}

	return users, len(memberIds), nil
}

// getConnsByRoomId returns the live connections of every room member.
// Members without a connection are skipped.
func (s *service) getConnsByRoomId(ctx context.Context, roomId string) ([]*websocket.Conn, error) {
	memberIds, err := s.roomRepo.GetMemberIds(ctx, roomId)
	if err != nil {
		return nil, fmt.Errorf("failed to get member ids: %w", err)
	}

	conns := make([]*websocket.Conn, 0, len(memberIds))
	for _, memberId := range memberIds {
		conn, err := s.connRepo.GetConn(memberId)
		if err != nil {
			continue
		}

		conns = append(conns, conn)
	}

	return conns, nil
}

func (s *service) getPlaylist(ctx context.Context, roomId string) ([]Track, error) {
	trackIds, err := s.roomRepo.GetQueueIds(ctx, roomId)
	if err != nil {
		return nil, fmt.Errorf("failed to get queue ids: %w", err)
	}

	playlist := make([]Track, 0, len(trackIds))
	for _, trackId := range trackIds {
		track, err := s.roomRepo.GetTrack(ctx, &room.GetTrackParams{
			TrackId: trackId,
			RoomId:  roomId,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get track: %w", err)
		}

		playlist = append(playlist, toServiceTrack(track))
	}

	return playlist, nil
}

func (s *service) getRoomState(ctx context.Context, roomId string) (RoomState, error) {
	current, err := s.roomRepo.GetCurrentTrack(ctx, roomId)
	if err != nil {
		return RoomState{}, fmt.Errorf("failed to get current track: %w", err)
	}

	playlist, err := s.getPlaylist(ctx, roomId)
	if err != nil {
		return RoomState{}, err
	}

	player, err := s.roomRepo.GetPlayer(ctx, roomId)
	if err != nil {
		return RoomState{}, fmt.Errorf("failed to get player: %w", err)
	}

	theme, err := s.roomRepo.GetTheme(ctx, roomId)
	if err != nil {
		return RoomState{}, fmt.Errorf("failed to get theme: %w", err)
	}

	isDynamic, err := s.roomRepo.GetDynamicTheme(ctx, roomId)
	if err != nil {
		return RoomState{}, fmt.Errorf("failed to get dynamic theme flag: %w", err)
	}

	var currentSong *Track
	if current != nil {
		track := toServiceTrack(*current)
		currentSong = &track
	}

	return RoomState{
		CurrentSong:    currentSong,
		Playlist:       playlist,
		IsPlaying:      player.IsPlaying,
		CurrentTime:    player.CurrentTime,
		Theme:          toServiceTheme(theme),
		IsDynamicTheme: isDynamic,
	}, nil
}

func toServiceTrack(t room.Track) Track {
	return Track{
		Id:        t.Id,
		Title:     t.Title,
		Thumbnail: t.Thumbnail,
		Duration:  t.Duration,
		AddedBy:   t.AddedBy,
	}
}

func toRepoTrack(t Track) room.Track {
	return room.Track{
		Id:        t.Id,
		Title:     t.Title,
		Thumbnail: t.Thumbnail,
		Duration:  t.Duration,
		AddedBy:   t.AddedBy,
	}
}

func toServiceTheme(t room.Theme) Theme {
	return Theme{
		Id:         t.Id,
		Name:       t.Name,
		Background: t.Background,
		Text:       t.Text,
		Accent:     t.Accent,
		Secondary:  t.Secondary,
	}
}

func toRepoTheme(t Theme) room.Theme {
	return room.Theme{
		Id:         t.Id,
		Name:       t.Name,
		Background: t.Background,
		Text:       t.Text,
		Accent:     t.Accent,
		Secondary:  t.Secondary,
	}
}
