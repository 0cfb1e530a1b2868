package eventstream

import (
	"log/slog"
	"net/http"

	"cybersphere/events"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// Controller streams hub events to websocket clients as JSON frames. Clients
// that stop reading simply miss events; the hub never blocks on them.
type Controller struct {
	Hub *events.Hub
	Log *slog.Logger
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// auth happens at the JWT middleware; origins are not restricted, same
	// as the original broadcast channel
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GET /v1/events
func (h *Controller) Stream(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	ch, cancel := h.Hub.Subscribe()
	defer cancel()

	// drain client frames so pings and close messages are processed
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	for ev := range ch {
		if err := conn.WriteJSON(ev); err != nil {
			h.Log.Debug("ws write failed", "err", err)
			return nil
		}
	}
	return nil
}
