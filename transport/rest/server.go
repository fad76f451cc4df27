package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rocketscienceinc/reversi-backend/internal/service"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	logger   *slog.Logger
	handlers *handlers
}

func New(logger *slog.Logger, battleService *service.BattleService) *Server {
	return &Server{
		logger:   logger,
		handlers: newHandlers(logger, battleService),
	}
}

func (that *Server) Start(ctx context.Context, port string) error {
	router := chi.NewRouter()

	router.Get("/ping", pingHandler)

	router.Route("/api/ai-battle", func(r chi.Router) {
		r.Post("/create", that.handlers.createBattle)
		r.Get("/difficulties", that.handlers.difficulties)
		r.Get("/sessions", that.handlers.listSessions)
		r.Get("/ai/health", that.handlers.opponentHealth)

		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", that.handlers.getSession)
			r.Post("/move", that.handlers.makeMove)
			r.Put("/difficulty", that.handlers.changeDifficulty)
			r.Delete("/", that.handlers.deleteSession)
			r.Get("/history", that.handlers.history)
		})
	})

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down HTTP server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
