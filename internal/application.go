package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/reversi-backend/internal/config"
	"github.com/rocketscienceinc/reversi-backend/internal/registry"
	"github.com/rocketscienceinc/reversi-backend/internal/repository"
	"github.com/rocketscienceinc/reversi-backend/internal/repository/storage"
	"github.com/rocketscienceinc/reversi-backend/internal/service"
	"github.com/rocketscienceinc/reversi-backend/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	archiveRepo := repository.NewArchiveRepository(redisStorage.Connection)

	sessionRegistry := registry.New(logger, conf.Battle.MaxSessions, conf.Battle.SessionIdleTimeout)

	resolver, err := buildResolver(logger, conf.Opponent)
	if err != nil {
		return fmt.Errorf("failed to build move resolver: %w", err)
	}

	battleService := service.NewBattleService(logger, sessionRegistry, resolver, archiveRepo)

	go runIdleSweep(ctx, sessionRegistry, conf.Battle.SweepInterval)

	restServer := rest.New(logger, battleService)

	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := restServer.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

func buildResolver(logger *slog.Logger, conf config.Opponent) (*service.MoveResolver, error) {
	primary, err := service.NewOpponentService(conf.Primary, conf.FastMode)
	if err != nil {
		return nil, fmt.Errorf("failed to create primary opponent: %w", err)
	}

	var secondary service.OpponentService
	if conf.Secondary != "" {
		secondary, err = service.NewOpponentService(conf.Secondary, conf.FastMode)
		if err != nil {
			return nil, fmt.Errorf("failed to create secondary opponent: %w", err)
		}
	}

	return service.NewMoveResolver(logger, primary, secondary, service.ResolverConfig{
		MaxAttempts:    conf.MaxRetryAttempts,
		RetryDelay:     conf.RetryDelay,
		AttemptTimeout: conf.AttemptTimeout,
		EnableFallback: conf.EnableFallback,
	}), nil
}

// runIdleSweep - background task removing sessions idle past the timeout.
func runIdleSweep(ctx context.Context, sessionRegistry *registry.Registry, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sessionRegistry.IdleSweep()
		case <-ctx.Done():
			return
		}
	}
}
