// internal/httpserver/server.go
//
// Optional diagnostics listener for long batch runs.
// Responsibilities:
//   - Router + middleware (JSON, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - "/metrics": Prometheus collectors from internal/metrics.
//   - "/batch/status": live counters of the running batch.
//
// Notes:
//   - Read-only. Nothing here plays or reveals secrets.
//   - Enabled by DEBUG_ADDR; off when empty.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/mastermind/internal/batch"
)

// Server bundles the router and the batch tracker it reports on.
type Server struct {
	r       *chi.Mux
	tracker *batch.Tracker
	started time.Time
}

// New constructs a Server, installs middleware, and registers routes.
// tracker may be nil when no batch is running in this process.
func New(tracker *batch.Tracker) *Server {
	s := &Server{r: chi.NewRouter(), tracker: tracker, started: time.Now()}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"mastermind","endpoints":["/health","/metrics","/batch/status"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":             true,
			"uptime_seconds": time.Since(s.started).Seconds(),
		})
	})
	s.r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	s.r.Get("/batch/status", s.handleBatchStatus)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Start serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", addr).Msg("diagnostics listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handleBatchStatus reports the tracker snapshot, or 404 when no batch
// has been wired into this server.
func (s *Server) handleBatchStatus(w http.ResponseWriter, r *http.Request) {
	if s.tracker == nil {
		http.Error(w, `{"error":"no_batch"}`, http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(s.tracker.Snapshot())
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}
