package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/hongminglow/staffly-be/internal/http/respond"
)

const livenessText = "STAFFLY IS RUNNING..."

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness, uptime, and readiness.
type HealthHandler struct {
	startedAt time.Time
	deps      map[string]Pinger
}

// NewHealthHandler creates a health endpoint handler. deps are pinged by /readyz.
func NewHealthHandler(startedAt time.Time, deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{startedAt: startedAt, deps: deps}
}

// Register wires the handler into a ServeMux.
func (h *HealthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.root)
	mux.HandleFunc("GET /health", h.health)
	mux.HandleFunc("GET /readyz", h.ready)
}

func (h *HealthHandler) root(w http.ResponseWriter, r *http.Request) {
	respond.Text(w, http.StatusOK, livenessText)
}

func (h *HealthHandler) health(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"uptime": time.Since(h.startedAt).Truncate(time.Second).String(),
	})
}

func (h *HealthHandler) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := make(map[string]string, len(h.deps))
	status := http.StatusOK
	for name, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			slog.WarnContext(ctx, "readiness check failed", "dependency", name, "error", err)
			checks[name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}
	respond.JSON(w, status, map[string]any{"ready": status == http.StatusOK, "checks": checks})
}
