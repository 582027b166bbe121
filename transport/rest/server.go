package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hotseatgames/tictactoe-backend/internal/service"
)

type Server struct {
	logger  *slog.Logger
	service service.GameplayService
}

func New(logger *slog.Logger, gameplay service.GameplayService) *Server {
	return &Server{
		logger:  logger.With("component", "rest"),
		service: gameplay,
	}
}

// Router builds the HTTP surface: the session API, a ping probe and the
// prometheus scrape endpoint.
func (that *Server) Router(gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()

	r.Get("/ping", pingHandler)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", that.handleCreateSession)
		r.Get("/{sessionID}", that.handleGetSession)
		r.Post("/{sessionID}/start", that.handleStartGame)
		r.Post("/{sessionID}/restart", that.handleRestartGame)
		r.Post("/{sessionID}/moves", that.handleMakeMove)
	})

	return r
}

// Start serves the router until ctx is canceled, then shuts down cleanly.
func (that *Server) Start(ctx context.Context, port string, gatherer prometheus.Gatherer) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Router(gatherer),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}

		return nil
	}
}

func pingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}
