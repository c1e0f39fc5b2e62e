// Package app wires the roster: store, services, HTTP handler and router.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"volunteer-roster/internal/api"
	"volunteer-roster/internal/config"
	internaldb "volunteer-roster/internal/db"
	"volunteer-roster/internal/db/memstore"
	"volunteer-roster/internal/db/repository"
	"volunteer-roster/internal/domain"
	"volunteer-roster/internal/middleware"
	"volunteer-roster/internal/service/roster"
)

// Deps holds what main() provides.
type Deps struct {
	Cfg    *config.Config
	Logger *slog.Logger
	// SeedDemo loads demo data into an empty store.
	SeedDemo bool
}

// repos is one store's set of repository ports.
type repos struct {
	people      domain.PersonRepository
	groups      domain.GroupRepository
	roles       domain.RoleRepository
	permissions domain.PermissionRepository
	templates   domain.ShiftTemplateRepository
}

// App holds the fully-wired application.
type App struct {
	Services api.Services
	Handler  http.Handler

	pools  *internaldb.Pools // nil for the memory store
	logger *slog.Logger
}

// New opens the configured store, runs migrations for SQL stores and wires
// services and the router. ctx bounds background work started by the
// middleware.
func New(ctx context.Context, deps Deps) (*App, error) {
	cfg := deps.Cfg
	a := &App{logger: deps.Logger}

	var r repos
	switch cfg.StoreDriver {
	case config.DriverMemory:
		s := memstore.New()
		r = repos{s.People(), s.Groups(), s.Roles(), s.Permissions(), s.ShiftTemplates()}
	case config.DriverSQLite, config.DriverPostgres:
		dialect, err := internaldb.DialectByName(cfg.StoreDriver)
		if err != nil {
			return nil, err
		}
		pools, err := internaldb.Open(ctx, dialect, cfg.DSN())
		if err != nil {
			return nil, fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
		}
		a.pools = pools
		r = repos{
			repository.NewPersonRepo(pools),
			repository.NewGroupRepo(pools),
			repository.NewRoleRepo(pools),
			repository.NewPermissionRepo(pools),
			repository.NewShiftTemplateRepo(pools),
		}
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	deps.Logger.Info("store ready", "driver", cfg.StoreDriver)

	svcLogger := deps.Logger.With("component", "roster")
	a.Services = api.Services{
		People:         roster.NewPersonService(r.people, r.roles, r.groups, svcLogger),
		Groups:         roster.NewGroupService(r.groups, r.permissions, svcLogger),
		Roles:          roster.NewRoleService(r.roles, svcLogger),
		Permissions:    roster.NewPermissionService(r.permissions, svcLogger),
		ShiftTemplates: roster.NewShiftTemplateService(r.templates, r.roles, svcLogger),
	}

	if deps.SeedDemo {
		if err := seedDemo(ctx, a.Services); err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
	}

	h := api.NewHandler(a.Services, cfg.DefaultPageSize, deps.Logger.With("component", "api"))
	a.Handler = newRouter(ctx, cfg, h, a.ping, deps.Logger.With("component", "http"))
	return a, nil
}

// Close releases the SQL pools, if any.
func (a *App) Close() error {
	if a.pools == nil {
		return nil
	}
	return a.pools.Close()
}

func (a *App) ping(ctx context.Context) error {
	if a.pools == nil {
		return nil
	}
	return a.pools.Read.PingContext(ctx)
}

func newRouter(ctx context.Context, cfg *config.Config, h *api.Handler, ping func(context.Context) error, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.HeaderRequestID},
		ExposedHeaders: []string{middleware.HeaderRequestID},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		pingCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := ping(pingCtx); err != nil {
			logger.Error("health check failed", "error", err)
			http.Error(w, "store unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimiter(ctx, middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimitRPS,
			Burst:             cfg.RateLimitBurst,
		}))
		h.Routes(r)
	})
	return r
}
