package room

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/JaiminVadadoriya/modern-radio-party/internal/repository/room"
)

type JoinRoomParams struct {
	RoomId     string
	Username   string
	ClaimsHost bool
	Conn       *websocket.Conn
}

type JoinRoomResponse struct {
	MemberId  string
	RoomState RoomState
	Users     []User
	Count     int
	Conns     []*websocket.Conn
}

// JoinRoom admits a member into the room, creating the room lazily on first
// reference. A host-intent claim always wins: the joining member becomes the
// host and any previous host is demoted, which lets a reconnecting host
// reclaim the room.
func (s *service) JoinRoom(ctx context.Context, params *JoinRoomParams) (JoinRoomResponse, error) {
	mu := s.roomLock(params.RoomId)
	mu.Lock()
	defer mu.Unlock()

	exists, err := s.roomRepo.RoomExists(ctx, params.RoomId)
	if err != nil {
		return JoinRoomResponse{}, fmt.Errorf("failed to check room existence: %w", err)
	}

	if !exists {
		if err := s.createRoom(ctx, params.RoomId); err != nil {
			return JoinRoomResponse{}, err
		}
	}

	memberId := uuid.NewString()
	if err := s.roomRepo.SetMember(ctx, &room.SetMemberParams{
		MemberId: memberId,
		Name:     params.Username,
		IsHost:   params.ClaimsHost,
		RoomId:   params.RoomId,
	}); err != nil {
		return JoinRoomResponse{}, fmt.Errorf("failed to set member: %w", err)
	}

	if params.ClaimsHost {
		if err := s.claimHost(ctx, params.RoomId, memberId); err != nil {
			return JoinRoomResponse{}, err
		}
	}

	if err := s.connRepo.Add(params.Conn, memberId); err != nil {
		return JoinRoomResponse{}, fmt.Errorf("failed to add connection: %w", err)
	}

	roomState, err := s.getRoomState(ctx, params.RoomId)
	if err != nil {
		return JoinRoomResponse{}, err
	}

	users, count, err := s.getUsers(ctx, params.RoomId)
	if err != nil {
		return JoinRoomResponse{}, err
	}

	conns, err := s.getConnsByRoomId(ctx, params.RoomId)
	if err != nil {
		return JoinRoomResponse{}, err
	}

	s.logger.InfoContext(ctx, "member joined",
		"room_id", params.RoomId,
		"member_id", memberId,
		"is_host", params.ClaimsHost,
	)

	return JoinRoomResponse{
		MemberId:  memberId,
		RoomState: roomState,
		Users:     users,
		Count:     count,
		Conns:     conns,
	}, nil
}

func (s *service) createRoom(ctx context.Context, roomId string) error {
	if err := s.roomRepo.SetTheme(ctx, &room.SetThemeParams{
		RoomId: roomId,
		Theme:  toRepoTheme(DefaultTheme),
	}); err != nil {
		return fmt.Errorf("failed to set default theme: %w", err)
	}

	if err := s.roomRepo.SetDynamicTheme(ctx, &room.SetDynamicThemeParams{
		RoomId:    roomId,
		IsDynamic: false,
	}); err != nil {
		return fmt.Errorf("failed to set dynamic theme flag: %w", err)
	}

	if err := s.roomRepo.UpdatePlayerState(ctx, &room.UpdatePlayerStateParams{
		RoomId:      roomId,
		IsPlaying:   false,
		CurrentTime: 0,
		UpdatedAt:   time.Now().Unix(),
	}); err != nil {
		return fmt.Errorf("failed to init player state: %w", err)
	}

	s.logger.InfoContext(ctx, "room created", "room_id", roomId)
	return nil
}

// claimHost makes memberId the single recognized host, demoting the previous
// one if any.
func (s *service) claimHost(ctx context.Context, roomId, memberId string) error {
	prevHostId, err := s.roomRepo.GetHostId(ctx, roomId)
	if err != nil {
		return fmt.Errorf("failed to get host id: %w", err)
	}

	if prevHostId != "" && prevHostId != memberId {
		if err := s.roomRepo.UpdateMemberIsHost(ctx, &room.UpdateMemberIsHostParams{
			MemberId: prevHostId,
			RoomId:   roomId,
			IsHost:   false,
		}); err != nil && !errors.Is(err, room.ErrMemberNotFound) {
			return fmt.Errorf("failed to demote previous host: %w", err)
		}
	}

	if err := s.roomRepo.SetHostId(ctx, &room.SetHostIdParams{
		RoomId:   roomId,
		MemberId: memberId,
	}); err != nil {
		return fmt.Errorf("failed to set host id: %w", err)
	}

	return nil
}

type DisconnectMemberParams struct {
	MemberId string
	RoomId   string
}

type DisconnectMemberResponse struct {
	IsRoomClosed bool
	Users        []User
	Count        int
	Conns        []*websocket.Conn
}

// DisconnectMember removes a member. A listener departure only shrinks the
// member list; a host departure tears the whole room down, and Conns then
// holds the remaining members that must be told the room is closed.
func (s *service) DisconnectMember(ctx context.Context, params *DisconnectMemberParams) (DisconnectMemberResponse, error) {
	mu := s.roomLock(params.RoomId)
	mu.Lock()
	defer mu.Unlock()

	if _, err := s.connRepo.RemoveByMemberId(params.MemberId); err != nil {
		s.logger.DebugContext(ctx, "failed to remove connection", "error", err)
	}

	hostId, err := s.roomRepo.GetHostId(ctx, params.RoomId)
	if err != nil {
		return DisconnectMemberResponse{}, fmt.Errorf("failed to get host id: %w", err)
	}

	if err := s.roomRepo.RemoveMember(ctx, &room.RemoveMemberParams{
		MemberId: params.MemberId,
		RoomId:   params.RoomId,
	}); err != nil {
		s.logger.DebugContext(ctx, "failed to remove member", "error", err)
	}

	if hostId == params.MemberId {
		conns, err := s.getConnsByRoomId(ctx, params.RoomId)
		if err != nil {
			return DisconnectMemberResponse{}, err
		}

		if err := s.roomRepo.DeleteRoom(ctx, params.RoomId); err != nil {
			return DisconnectMemberResponse{}, fmt.Errorf("failed to delete room: %w", err)
		}
		s.dropRoomLock(params.RoomId)

		s.logger.InfoContext(ctx, "room closed on host departure", "room_id", params.RoomId)

		return DisconnectMemberResponse{
			IsRoomClosed: true,
			Conns:        conns,
		}, nil
	}

	users, count, err := s.getUsers(ctx, params.RoomId)
	if err != nil {
		return DisconnectMemberResponse{}, err
	}

	conns, err := s.getConnsByRoomId(ctx, params.RoomId)
	if err != nil {
		return DisconnectMemberResponse{}, err
	}

	s.logger.InfoContext(ctx, "member left", "room_id", params.RoomId, "member_id", params.MemberId)

	return DisconnectMemberResponse{
		Users: users,
		Count: count,
		Conns: conns,
	}, nil
}
