package controller

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/JaiminVadadoriya/modern-radio-party/internal/service/room"
	"github.com/JaiminVadadoriya/modern-radio-party/pkg/randstr"
	"github.com/JaiminVadadoriya/modern-radio-party/pkg/validator"
	"github.com/JaiminVadadoriya/modern-radio-party/pkg/wsrouter"
)

type iRoomService interface {
	JoinRoom(context.Context, *room.JoinRoomParams) (room.JoinRoomResponse, error)
	DisconnectMember(context.Context, *room.DisconnectMemberParams) (room.DisconnectMemberResponse, error)
	AddTrack(context.Context, *room.AddTrackParams) (room.AddTrackResponse, error)
	ReplaceQueue(context.Context, *room.ReplaceQueueParams) (room.ReplaceQueueResponse, error)
	SongEnded(context.Context, *room.SongEndedParams) (room.SongEndedResponse, error)
	UpdatePlayerState(context.Context, *room.UpdatePlayerStateParams) (room.UpdatePlayerStateResponse, error)
	SetTheme(context.Context, *room.SetThemeParams) (room.SetThemeResponse, error)
	ToggleDynamicTheme(context.Context, *room.ToggleDynamicThemeParams) (room.ToggleDynamicThemeResponse, error)
	SendMessage(context.Context, *room.SendMessageParams) (room.SendMessageResponse, error)
	RequestSync(context.Context, *room.RequestSyncParams) (room.RequestSyncResponse, error)
	SyncResponse(context.Context, *room.SyncResponseParams) (room.SyncResponseResponse, error)
}

type controller struct {
	roomService iRoomService
	upgrader    websocket.Upgrader
	validate    *validator.Validator
	generator   *randstr.Generator
	wsmux       *wsrouter.WSRouter
	logger      *slog.Logger
}

func NewController(roomService iRoomService, logger *slog.Logger) *controller {
	c := &controller{
		roomService: roomService,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		validate:  validator.NewValidator(),
		generator: randstr.New([]byte("abcdefghijklmnopqrstuvwxyz0123456789")),
		logger:    logger,
	}
	c.wsmux = c.getWSRouter()

	return c
}
