package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/alanyang/dogs/internal/service/screen"
	sessionsvc "github.com/alanyang/dogs/internal/service/session"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// streamMsg is one server-to-client websocket message.
type streamMsg struct {
	Type  string `json:"type"`
	Route string `json:"route,omitempty"`
	View  any    `json:"view,omitempty"`
	Error string `json:"error,omitempty"`
}

// streamSession attaches a UI host. The server pushes a frame for every view of
// the visible screen; the client sends UI events as JSON. All writes happen on
// the handler goroutine.
func streamSession(mgr *sessionsvc.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := lookup(c, mgr)
		if !ok {
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			slog.Error("websocket upgrade failed", "session_id", s.ID(), "error", err)
			return
		}
		defer conn.Close()

		ctx, cancel := context.WithCancel(c.Request.Context())
		defer cancel()

		if err := mgr.Attach(ctx, s.ID()); err != nil {
			return
		}
		defer func() {
			if err := mgr.Detach(context.WithoutCancel(ctx), s.ID()); err != nil && !errors.Is(err, sessionsvc.ErrNotFound) {
				slog.Error("detach host failed", "session_id", s.ID(), "error", err)
			}
		}()

		out := make(chan streamMsg, 16)
		send := func(m streamMsg) bool {
			select {
			case out <- m:
				return true
			case <-ctx.Done():
				return false
			}
		}

		go func() {
			defer cancel()
			s.Follow(ctx, func(f sessionsvc.Frame) {
				send(streamMsg{Type: "frame", Route: f.Route, View: f.View})
			})
		}()

		go func() {
			defer cancel()
			for {
				_, data, err := conn.ReadMessage()
				if err != nil {
					return
				}
				var e screen.RawEvent
				if err := json.Unmarshal(data, &e); err != nil {
					if !send(streamMsg{Type: "error", Error: "malformed event"}) {
						return
					}
					continue
				}
				if err := s.Send(ctx, e); err != nil {
					if !send(streamMsg{Type: "error", Error: err.Error()}) {
						return
					}
				}
			}
		}()

		for {
			select {
			case <-ctx.Done():
				conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
				conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")) //nolint:errcheck
				return
			case m := <-out:
				conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
				if err := conn.WriteJSON(m); err != nil {
					return
				}
			}
		}
	}
}
