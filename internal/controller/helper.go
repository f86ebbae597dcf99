package controller

import (
	"context"

	"github.com/gorilla/websocket"
)

type Output struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// writeToConn writes a single message. A failed write means the recipient is
// gone; it is logged and otherwise ignored.
func (c *controller) writeToConn(ctx context.Context, conn *websocket.Conn, out *Output) {
	if conn == nil {
		return
	}

	if err := conn.WriteJSON(out); err != nil {
		c.logger.DebugContext(ctx, "failed to write to conn", "type", out.Type, "error", err)
	}
}

func (c *controller) broadcast(ctx context.Context, conns []*websocket.Conn, out *Output) {
	for _, conn := range conns {
		c.writeToConn(ctx, conn, out)
	}
}
