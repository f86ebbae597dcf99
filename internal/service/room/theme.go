package room

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/JaiminVadadoriya/modern-radio-party/internal/repository/room"
)

type SetThemeParams struct {
	Theme    Theme
	SenderId string
	RoomId   string
}

type SetThemeResponse struct {
	Theme          Theme
	IsDynamicTheme bool
	Conns          []*websocket.Conn
}

// SetTheme replaces the room theme. All six attributes are required; the
// attribute contents stay opaque to the server. Setting the reserved
// "dynamic" theme id turns dynamic theming on, any other id turns it off.
func (s *service) SetTheme(ctx context.Context, params *SetThemeParams) (SetThemeResponse, error) {
	mu := s.roomLock(params.RoomId)
	mu.Lock()
	defer mu.Unlock()

	if err := s.checkIfMemberHost(ctx, params.RoomId, params.SenderId); err != nil {
		return SetThemeResponse{}, err
	}

	theme := params.Theme
	if theme.Id == "" || theme.Name == "" || theme.Background == "" ||
		theme.Text == "" || theme.Accent == "" || theme.Secondary == "" {
		return SetThemeResponse{}, ErrInvalidTheme
	}

	if err := s.roomRepo.SetTheme(ctx, &room.SetThemeParams{
		RoomId: params.RoomId,
		Theme:  toRepoTheme(theme),
	}); err != nil {
		return SetThemeResponse{}, fmt.Errorf("failed to set theme: %w", err)
	}

	isDynamic := theme.Id == DynamicThemeId
	if err := s.roomRepo.SetDynamicTheme(ctx, &room.SetDynamicThemeParams{
		RoomId:    params.RoomId,
		IsDynamic: isDynamic,
	}); err != nil {
		return SetThemeResponse{}, fmt.Errorf("failed to set dynamic theme flag: %w", err)
	}

	conns, err := s.getConnsByRoomId(ctx, params.RoomId)
	if err != nil {
		return SetThemeResponse{}, err
	}

	return SetThemeResponse{
		Theme:          theme,
		IsDynamicTheme: isDynamic,
		Conns:          conns,
	}, nil
}

type ToggleDynamicThemeParams struct {
	IsDynamic bool
	SenderId  string
	RoomId    string
}

type ToggleDynamicThemeResponse struct {
	IsDynamic bool
	Conns     []*websocket.Conn
}

func (s *service) ToggleDynamicTheme(ctx context.Context, params *ToggleDynamicThemeParams) (ToggleDynamicThemeResponse, error) {
	mu := s.roomLock(params.RoomId)
	mu.Lock()
	defer mu.Unlock()

	if err := s.checkIfMemberHost(ctx, params.RoomId, params.SenderId); err != nil {
		return ToggleDynamicThemeResponse{}, err
	}

	if err := s.roomRepo.SetDynamicTheme(ctx, &room.SetDynamicThemeParams{
		RoomId:    params.RoomId,
		IsDynamic: params.IsDynamic,
	}); err != nil {
		return ToggleDynamicThemeResponse{}, fmt.Errorf("failed to set dynamic theme flag: %w", err)
	}

	conns, err := s.getConnsByRoomId(ctx, params.RoomId)
	if err != nil {
		return ToggleDynamicThemeResponse{}, err
	}

	return ToggleDynamicThemeResponse{
		IsDynamic: params.IsDynamic,
		Conns:     conns,
	}, nil
}
