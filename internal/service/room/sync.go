package room

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/JaiminVadadoriya/modern-radio-party/internal/repository/room"
)

type RequestSyncParams struct {
	SenderId string
	RoomId   string
}

type RequestSyncResponse struct {
	// HostConn is the only recipient of the relayed request.
	HostConn    *websocket.Conn
	RequesterId string
}

// RequestSync relays a listener's correction request to the host, which owns
// the ground truth for elapsed playback time. A request from the host itself
// is dropped.
func (s *service) RequestSync(ctx context.Context, params *RequestSyncParams) (RequestSyncResponse, error) {
	hostId, err := s.roomRepo.GetHostId(ctx, params.RoomId)
	if err != nil {
		return RequestSyncResponse{}, fmt.Errorf("failed to get host id: %w", err)
	}

	if hostId == "" || hostId == params.SenderId {
		return RequestSyncResponse{}, ErrPermissionDenied
	}

	hostConn, err := s.connRepo.GetConn(hostId)
	if err != nil {
		return RequestSyncResponse{}, fmt.Errorf("failed to get host connection: %w", err)
	}

	return RequestSyncResponse{
		HostConn:    hostConn,
		RequesterId: params.SenderId,
	}, nil
}

type SyncResponseParams struct {
	UserId      string
	CurrentTime float64
	IsPlaying   bool
	SenderId    string
	RoomId      string
}

type SyncResponseResponse struct {
	// Conn is the single addressed listener; the correction is never
	// broadcast.
	Conn        *websocket.Conn
	CurrentTime float64
	IsPlaying   bool
}

// SyncResponse relays the host's authoritative position to the one listener
// that asked for it. A response addressed to a member that already left is a
// no-op surfaced as an error the caller drops.
func (s *service) SyncResponse(ctx context.Context, params *SyncResponseParams) (SyncResponseResponse, error) {
	if err := s.checkIfMemberHost(ctx, params.RoomId, params.SenderId); err != nil {
		return SyncResponseResponse{}, err
	}

	if _, err := s.roomRepo.GetMember(ctx, &room.GetMemberParams{
		MemberId: params.UserId,
		RoomId:   params.RoomId,
	}); err != nil {
		return SyncResponseResponse{}, fmt.Errorf("failed to get addressed member: %w", err)
	}

	conn, err := s.connRepo.GetConn(params.UserId)
	if err != nil {
		return SyncResponseResponse{}, fmt.Errorf("failed to get addressed connection: %w", err)
	}

	return SyncResponseResponse{
		Conn:        conn,
		CurrentTime: params.CurrentTime,
		IsPlaying:   params.IsPlaying,
	}, nil
}
