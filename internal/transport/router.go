package transport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alanyang/dogs/internal/domain/event"
	"github.com/alanyang/dogs/internal/metrics"
	porteventbus "github.com/alanyang/dogs/internal/port/eventbus"
	dogssvc "github.com/alanyang/dogs/internal/service/dogs"
	sessionsvc "github.com/alanyang/dogs/internal/service/session"

	breedhandler "github.com/alanyang/dogs/internal/transport/breed"
	mcptransport "github.com/alanyang/dogs/internal/transport/mcp"
	sessionhandler "github.com/alanyang/dogs/internal/transport/session"
	wshandler "github.com/alanyang/dogs/internal/transport/ws"
)

func NewRouter(
	ctx context.Context,
	dogsSvc *dogssvc.Service,
	sessions *sessionsvc.Manager,
	mcpServer *mcptransport.Server,
	eventBus porteventbus.EventBus,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(RequestLogger())
	r.Use(Metrics())
	r.Use(CORSMiddleware())

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	if mcpServer != nil {
		r.Any("/mcp", gin.WrapH(mcpServer.Handler()))
	}

	api := r.Group("/api")

	breedhandler.Register(api.Group("/breeds"), dogsSvc)
	sessionhandler.Register(api.Group("/sessions"), sessions)

	hub := wshandler.NewHub()
	hub.Register(api.Group("/ws"))

	// Bridge: one subscription per domain channel. Every event is forwarded to WS
	// clients; event.Type in the payload lets the client filter, and MCP clients
	// get the events of the sessions they opened.
	for _, ch := range []event.Channel{
		event.ChannelSession,
		event.ChannelNavigation,
	} {
		c := ch
		if _, err := eventBus.Subscribe(ctx, c, func(ctx context.Context, e event.Event) {
			hub.Broadcast(e)
			if mcpServer == nil {
				return
			}
			if err := mcpServer.Registry().Notify(ctx, e); err != nil {
				slog.WarnContext(ctx, "mcp notification failed", "session_id", e.SessionID, "error", err)
			}
		}); err != nil {
			slog.Error("failed to subscribe channel to WS hub", "channel", c, "error", err)
		}
	}

	return r
}
