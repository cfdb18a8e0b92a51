package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/hongminglow/staffly-be/internal/auth"
	"github.com/hongminglow/staffly-be/internal/config"
	"github.com/hongminglow/staffly-be/internal/http/handlers"
	"github.com/hongminglow/staffly-be/internal/middleware"
	"github.com/hongminglow/staffly-be/internal/obs"
	"github.com/hongminglow/staffly-be/internal/service"
	"github.com/hongminglow/staffly-be/internal/storage"
)

// RevocationList is an auth.Revoker that can also be health checked.
type RevocationList interface {
	auth.Revoker
	handlers.Pinger
}

// Options carries optional collaborators.
type Options struct {
	Logger  *slog.Logger
	Metrics *obs.Metrics
	Revoker RevocationList
}

// Server wraps an http.Server with configured routes.
type Server struct {
	inner   *http.Server
	handler http.Handler
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.Store, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = obs.NewMetrics()
	}

	tokenManager := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL())
	deps := map[string]handlers.Pinger{"store": store}
	if opts.Revoker != nil {
		tokenManager.WithRevoker(opts.Revoker)
		deps["redis"] = opts.Revoker
	}
	guard := middleware.NewGuard(tokenManager, store.Users(), opts.Metrics)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(time.Now(), deps).Register(mux)
	mux.Handle("GET /metrics", opts.Metrics.Handler())

	tokens := service.NewTokens(store.Users(), tokenManager, opts.Metrics, cfg.AllowPasswordlessTokens)
	handlers.NewAuthHandler(tokens, cfg.Production()).Register(mux)
	handlers.NewUsersHandler(service.NewUsers(store.Users())).Register(mux, guard)
	handlers.NewPayrollsHandler(service.NewPayrolls(store.Payrolls())).Register(mux, guard)
	handlers.NewTasksHandler(service.NewTasks(store.Tasks(), guard, cfg.OwnerTaskPolicy())).Register(mux, guard)

	opts.Logger.Info("task mutation policy", "policy", cfg.TaskMutationPolicy)
	if opts.Revoker == nil {
		opts.Logger.Info("token revocation disabled; logout only clears the cookie")
	}

	handler := middleware.Chain(mux,
		middleware.CORS(cfg.CORSOrigins),
		middleware.Recover,
		middleware.Logging(opts.Logger),
		opts.Metrics.Instrument,
	)
	handler = otelhttp.NewHandler(handler, obs.ServiceName)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer, handler: handler}
}

// Handler exposes the fully wrapped handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
