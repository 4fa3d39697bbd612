package wire

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alanyang/dogs/internal/adapter/dogceo"
	"github.com/alanyang/dogs/internal/adapter/memory"
	pgdb "github.com/alanyang/dogs/internal/adapter/postgres"
	pgeventbus "github.com/alanyang/dogs/internal/adapter/postgres/eventbus"
	"github.com/alanyang/dogs/internal/adapter/stub"
	"github.com/alanyang/dogs/internal/config"
	portdogs "github.com/alanyang/dogs/internal/port/dogs"
	porteventbus "github.com/alanyang/dogs/internal/port/eventbus"

	dogssvc "github.com/alanyang/dogs/internal/service/dogs"
	sessionsvc "github.com/alanyang/dogs/internal/service/session"

	"github.com/alanyang/dogs/internal/transport"
	mcptransport "github.com/alanyang/dogs/internal/transport/mcp"
)

// App holds the top-level resources needed to run and gracefully stop the server.
type App struct {
	Pool      *pgxpool.Pool // nil when events stay in process
	Server    *http.Server
	Sessions  *sessionsvc.Manager
	MCPServer *mcptransport.Server
}

// Build is the composition root: the only place concrete types are wired to their
// interface dependencies.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	// ── Event bus ────────────────────────────────────────────────────────────
	var (
		pool     *pgxpool.Pool
		eventBus porteventbus.EventBus
	)
	if cfg.Database.URL != "" {
		var err error
		pool, err = pgdb.Connect(ctx, cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		eventBus = pgeventbus.New(pool)
	} else {
		eventBus = memory.NewEventBus()
	}

	// ── Adapters ─────────────────────────────────────────────────────────────
	var source portdogs.DataSource
	if cfg.DogAPI.Offline {
		source = stub.DataSource{}
	} else {
		source = dogceo.New(dogceo.Config{
			BaseURL:           cfg.DogAPI.BaseURL,
			ConnectTimeout:    cfg.DogAPI.ConnectTimeout,
			ReadTimeout:       cfg.DogAPI.ReadTimeout,
			PhotoConcurrency:  cfg.DogAPI.PhotoConcurrency,
			RequestsPerSecond: cfg.DogAPI.RequestsPerSecond,
		})
	}

	// ── Services ─────────────────────────────────────────────────────────────
	dogsSvc := dogssvc.NewService(source, cfg.DogAPI.ImageCount)
	sessions := sessionsvc.NewManager(ctx, dogsSvc, eventBus)

	mcpServer := mcptransport.New(mcptransport.NewSessionRegistry(), dogsSvc, sessions)

	// ── Transport ─────────────────────────────────────────────────────────────
	router := transport.NewRouter(ctx, dogsSvc, sessions, mcpServer, eventBus)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("application wired",
		"port", cfg.Server.Port,
		"dog_api", cfg.DogAPI.BaseURL,
		"offline", cfg.DogAPI.Offline,
		"postgres_events", pool != nil,
	)

	app := &App{
		Pool:      pool,
		Server:    server,
		Sessions:  sessions,
		MCPServer: mcpServer,
	}

	// ── Idle-session reaper ──────────────────────────────────────────────────
	if _, err := startReaper(ctx, sessions, eventBus, cfg.Session.IdleGrace); err != nil {
		slog.Error("reaper: failed to subscribe to session channel", "error", err)
	}

	return app, nil
}

// Close releases what Build acquired. The HTTP server is shut down by the caller.
func (a *App) Close(ctx context.Context) {
	a.Sessions.CloseAll(ctx)
	if a.Pool != nil {
		a.Pool.Close()
	}
}
