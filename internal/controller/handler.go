package controller

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JaiminVadadoriya/modern-radio-party/internal/service/room"
	"github.com/JaiminVadadoriya/modern-radio-party/pkg/ctxlogger"
)

type connectParams struct {
	RoomId   string `json:"roomId" validate:"required,max=64"`
	Username string `json:"username" validate:"required,max=32"`
	Host     bool   `json:"host"`
}

// joinRoom upgrades the request to a websocket, admits the member and serves
// inbound events until the connection drops. Connection parameters (room id,
// display name, host intent) are fixed for the connection's lifetime.
func (c *controller) joinRoom(w http.ResponseWriter, r *http.Request) {
	params := connectParams{
		RoomId:   chi.URLParam(r, "room-id"),
		Username: r.URL.Query().Get("username"),
		Host:     r.URL.Query().Get("host") == "true",
	}

	if validationErrors, ok := c.validate.Validate(params); !ok {
		c.logger.DebugContext(r.Context(), "invalid connect params", "errors", validationErrors)
		http.Error(w, "invalid connect params", http.StatusBadRequest)
		return
	}

	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.logger.WarnContext(r.Context(), "failed to upgrade to websocket", "error", err)
		return
	}
	defer conn.Close()

	joinRoomResponse, err := c.roomService.JoinRoom(r.Context(), &room.JoinRoomParams{
		RoomId:     params.RoomId,
		Username:   params.Username,
		ClaimsHost: params.Host,
		Conn:       conn,
	})
	if err != nil {
		c.logger.WarnContext(r.Context(), "failed to join room", "error", err)
		return
	}

	ctx := ctxlogger.AppendCtx(r.Context(),
		slog.String("room_id", params.RoomId),
		slog.String("member_id", joinRoomResponse.MemberId),
	)
	ctx = context.WithValue(ctx, roomIdCtxKey, params.RoomId)
	ctx = context.WithValue(ctx, memberIdCtxKey, joinRoomResponse.MemberId)

	defer c.disconnect(ctx, params.RoomId, joinRoomResponse.MemberId)

	// full snapshot to the joiner only, membership update to everyone
	c.writeToConn(ctx, conn, &Output{
		Type:    "roomState",
		Payload: joinRoomResponse.RoomState,
	})
	c.broadcast(ctx, joinRoomResponse.Conns, &Output{
		Type: "userList",
		Payload: map[string]any{
			"users": joinRoomResponse.Users,
			"count": joinRoomResponse.Count,
		},
	})

	if err := c.wsmux.ServeConn(ctx, conn); err != nil {
		c.logger.DebugContext(ctx, "connection closed", "error", err)
	}
}

func (c *controller) disconnect(ctx context.Context, roomId, memberId string) {
	disconnectResponse, err := c.roomService.DisconnectMember(ctx, &room.DisconnectMemberParams{
		MemberId: memberId,
		RoomId:   roomId,
	})
	if err != nil {
		c.logger.WarnContext(ctx, "failed to disconnect member", "error", err)
		return
	}

	if disconnectResponse.IsRoomClosed {
		c.broadcast(ctx, disconnectResponse.Conns, &Output{
			Type:    "roomClosed",
			Payload: struct{}{},
		})
		return
	}

	c.broadcast(ctx, disconnectResponse.Conns, &Output{
		Type: "userList",
		Payload: map[string]any{
			"users": disconnectResponse.Users,
			"count": disconnectResponse.Count,
		},
	})
}
