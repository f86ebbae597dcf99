package controller

import (
	"net/http"

	"github.com/JaiminVadadoriya/modern-radio-party/pkg/rest"
)

func (c *controller) healthz(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"status": "ok"})
}

// createRoomCode hands out a fresh shareable room code. Rooms are still
// created lazily on first websocket connect; this is a convenience for the
// create-party flow, not an authority mechanism.
func (c *controller) createRoomCode(w http.ResponseWriter, r *http.Request) {
	code := c.generator.GenerateRandomString(8)

	if err := rest.WriteJSON(w, http.StatusOK, rest.Envelope{"roomId": code}); err != nil {
		c.logger.WarnContext(r.Context(), "failed to write json", "error", err)
	}
}
