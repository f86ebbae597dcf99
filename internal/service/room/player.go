package room

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/JaiminVadadoriya/modern-radio-party/internal/repository/room"
)

type UpdatePlayerStateParams struct {
	IsPlaying   bool
	CurrentTime float64
	SenderId    string
	RoomId      string
}

type UpdatePlayerStateResponse struct {
	Player Player
	Conns  []*websocket.Conn
}

// UpdatePlayerState records the host player's reported state. The playing
// flag is forced to false while the room has no current track.
func (s *service) UpdatePlayerState(ctx context.Context, params *UpdatePlayerStateParams) (UpdatePlayerStateResponse, error) {
	mu := s.roomLock(params.RoomId)
	mu.Lock()
	defer mu.Unlock()

	if err := s.checkIfMemberHost(ctx, params.RoomId, params.SenderId); err != nil {
		return UpdatePlayerStateResponse{}, err
	}

	current, err := s.roomRepo.GetCurrentTrack(ctx, params.RoomId)
	if err != nil {
		return UpdatePlayerStateResponse{}, fmt.Errorf("failed to get current track: %w", err)
	}

	isPlaying := params.IsPlaying && current != nil
	updatedAt := time.Now().Unix()

	if err := s.roomRepo.UpdatePlayerState(ctx, &room.UpdatePlayerStateParams{
		RoomId:      params.RoomId,
		IsPlaying:   isPlaying,
		CurrentTime: params.CurrentTime,
		UpdatedAt:   updatedAt,
	}); err != nil {
		return UpdatePlayerStateResponse{}, fmt.Errorf("failed to update player state: %w", err)
	}

	conns, err := s.getConnsByRoomId(ctx, params.RoomId)
	if err != nil {
		return UpdatePlayerStateResponse{}, err
	}

	return UpdatePlayerStateResponse{
		Player: Player{
			IsPlaying:   isPlaying,
			CurrentTime: params.CurrentTime,
			UpdatedAt:   updatedAt,
		},
		Conns: conns,
	}, nil
}
