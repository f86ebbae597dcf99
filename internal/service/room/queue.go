package room

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/JaiminVadadoriya/modern-radio-party/internal/repository/room"
)

type AddTrackParams struct {
	MediaId  string
	SenderId string
	RoomId   string
}

type AddTrackResponse struct {
	AddedTrack Track
	Playlist   []Track
	// PromotedTrack is set when the queue was empty and the added track
	// became the current one.
	PromotedTrack *Track
	Conns         []*websocket.Conn
}

// AddTrack resolves metadata for the media id and appends the track to the
// queue. Lookup failure degrades to placeholder metadata; it never blocks or
// rejects the add.
func (s *service) AddTrack(ctx context.Context, params *AddTrackParams) (AddTrackResponse, error) {
	mu := s.roomLock(params.RoomId)
	mu.Lock()
	defer mu.Unlock()

	if err := s.checkIfMemberHost(ctx, params.RoomId, params.SenderId); err != nil {
		return AddTrackResponse{}, err
	}

	sender, err := s.roomRepo.GetMember(ctx, &room.GetMemberParams{
		MemberId: params.SenderId,
		RoomId:   params.RoomId,
	})
	if err != nil {
		return AddTrackResponse{}, fmt.Errorf("failed to get sender: %w", err)
	}

	metadata, err := s.resolver.Resolve(ctx, params.MediaId)
	if err != nil {
		s.logger.WarnContext(ctx, "metadata lookup failed, using placeholder",
			"media_id", params.MediaId,
			"error", err,
		)
		metadata = TrackMetadata{Title: "Unknown title"}
	}

	track := Track{
		Id:        params.MediaId,
		Title:     metadata.Title,
		Thumbnail: metadata.Thumbnail,
		Duration:  metadata.Duration,
		AddedBy:   sender.Name,
	}

	if err := s.roomRepo.AppendTrack(ctx, &room.AppendTrackParams{
		RoomId: params.RoomId,
		Track:  toRepoTrack(track),
	}); err != nil {
		return AddTrackResponse{}, fmt.Errorf("failed to append track: %w", err)
	}

	var promoted *Track
	current, err := s.roomRepo.GetCurrentTrack(ctx, params.RoomId)
	if err != nil {
		return AddTrackResponse{}, fmt.Errorf("failed to get current track: %w", err)
	}
	if current == nil {
		if err := s.roomRepo.SetCurrentTrack(ctx, &room.SetCurrentTrackParams{
			RoomId: params.RoomId,
			Track:  ptr(toRepoTrack(track)),
		}); err != nil {
			return AddTrackResponse{}, fmt.Errorf("failed to set current track: %w", err)
		}
		promoted = &track
	}

	playlist, err := s.getPlaylist(ctx, params.RoomId)
	if err != nil {
		return AddTrackResponse{}, err
	}

	conns, err := s.getConnsByRoomId(ctx, params.RoomId)
	if err != nil {
		return AddTrackResponse{}, err
	}

	return AddTrackResponse{
		AddedTrack:    track,
		Playlist:      playlist,
		PromotedTrack: promoted,
		Conns:         conns,
	}, nil
}

type ReplaceQueueParams struct {
	Queue    []Track
	SenderId string
	RoomId   string
}

type ReplaceQueueResponse struct {
	Playlist []Track
	Conns    []*websocket.Conn
}

// ReplaceQueue overwrites the queue wholesale. Removal of a single track is
// expressed by the host submitting the already-filtered queue; the current
// track is left untouched.
func (s *service) ReplaceQueue(ctx context.Context, params *ReplaceQueueParams) (ReplaceQueueResponse, error) {
	mu := s.roomLock(params.RoomId)
	mu.Lock()
	defer mu.Unlock()

	if err := s.checkIfMemberHost(ctx, params.RoomId, params.SenderId); err != nil {
		return ReplaceQueueResponse{}, err
	}

	tracks := make([]room.Track, 0, len(params.Queue))
	for _, track := range params.Queue {
		tracks = append(tracks, toRepoTrack(track))
	}

	if err := s.roomRepo.SetQueue(ctx, &room.SetQueueParams{
		RoomId: params.RoomId,
		Tracks: tracks,
	}); err != nil {
		return ReplaceQueueResponse{}, fmt.Errorf("failed to set queue: %w", err)
	}

	playlist, err := s.getPlaylist(ctx, params.RoomId)
	if err != nil {
		return ReplaceQueueResponse{}, err
	}

	conns, err := s.getConnsByRoomId(ctx, params.RoomId)
	if err != nil {
		return ReplaceQueueResponse{}, err
	}

	return ReplaceQueueResponse{
		Playlist: playlist,
		Conns:    conns,
	}, nil
}

type SongEndedParams struct {
	SenderId string
	RoomId   string
}

type SongEndedResponse struct {
	// Current is nil when the queue ran out.
	Current  *Track
	Playlist []Track
	Conns    []*websocket.Conn
}

// SongEnded advances the queue: the ended current track is removed and the
// new queue head, if any, is promoted. The server is the single source of
// truth for advancement; listeners never advance locally.
func (s *service) SongEnded(ctx context.Context, params *SongEndedParams) (SongEndedResponse, error) {
	mu := s.roomLock(params.RoomId)
	mu.Lock()
	defer mu.Unlock()

	if err := s.checkIfMemberHost(ctx, params.RoomId, params.SenderId); err != nil {
		return SongEndedResponse{}, err
	}

	current, err := s.roomRepo.GetCurrentTrack(ctx, params.RoomId)
	if err != nil {
		return SongEndedResponse{}, fmt.Errorf("failed to get current track: %w", err)
	}
	if current == nil {
		return SongEndedResponse{}, ErrNoCurrentTrack
	}

	if err := s.roomRepo.RemoveTrack(ctx, &room.RemoveTrackParams{
		TrackId: current.Id,
		RoomId:  params.RoomId,
	}); err != nil && !errors.Is(err, room.ErrTrackNotFound) {
		return SongEndedResponse{}, fmt.Errorf("failed to remove ended track: %w", err)
	}

	queueIds, err := s.roomRepo.GetQueueIds(ctx, params.RoomId)
	if err != nil {
		return SongEndedResponse{}, fmt.Errorf("failed to get queue ids: %w", err)
	}

	var next *Track
	if len(queueIds) > 0 {
		head, err := s.roomRepo.GetTrack(ctx, &room.GetTrackParams{
			TrackId: queueIds[0],
			RoomId:  params.RoomId,
		})
		if err != nil {
			return SongEndedResponse{}, fmt.Errorf("failed to get next track: %w", err)
		}

		if err := s.roomRepo.SetCurrentTrack(ctx, &room.SetCurrentTrackParams{
			RoomId: params.RoomId,
			Track:  &head,
		}); err != nil {
			return SongEndedResponse{}, fmt.Errorf("failed to set current track: %w", err)
		}

		track := toServiceTrack(head)
		next = &track
	} else {
		if err := s.roomRepo.SetCurrentTrack(ctx, &room.SetCurrentTrackParams{
			RoomId: params.RoomId,
		}); err != nil {
			return SongEndedResponse{}, fmt.Errorf("failed to clear current track: %w", err)
		}
	}

	// rewind to the start of the promoted track; stop when nothing is left
	player, err := s.roomRepo.GetPlayer(ctx, params.RoomId)
	if err != nil {
		return SongEndedResponse{}, fmt.Errorf("failed to get player: %w", err)
	}
	if err := s.roomRepo.UpdatePlayerState(ctx, &room.UpdatePlayerStateParams{
		RoomId:      params.RoomId,
		IsPlaying:   player.IsPlaying && next != nil,
		CurrentTime: 0,
		UpdatedAt:   time.Now().Unix(),
	}); err != nil {
		return SongEndedResponse{}, fmt.Errorf("failed to update player state: %w", err)
	}

	playlist, err := s.getPlaylist(ctx, params.RoomId)
	if err != nil {
		return SongEndedResponse{}, err
	}

	conns, err := s.getConnsByRoomId(ctx, params.RoomId)
	if err != nil {
		return SongEndedResponse{}, err
	}

	return SongEndedResponse{
		Current:  next,
		Playlist: playlist,
		Conns:    conns,
	}, nil
}

func ptr[T any](v T) *T {
	return &v
}
