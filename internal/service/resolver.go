package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/reversi-backend/internal/apperror"
	"github.com/rocketscienceinc/reversi-backend/internal/entity"
)

// ResolverConfig tunes the fallback/retry policy of the move resolver.
type ResolverConfig struct {
	MaxAttempts    int
	RetryDelay     time.Duration
	AttemptTimeout time.Duration
	EnableFallback bool
}

// MoveResolver drives an opponent reply through the fallback/retry policy:
// try the primary adapter, on failure try the secondary once, wait, retry the
// primary, until the attempt budget is spent. It runs entirely under the
// session's thinking flag, so retries are invisible to competing callers.
type MoveResolver struct {
	logger    *slog.Logger
	primary   OpponentService
	secondary OpponentService
	config    ResolverConfig
}

func NewMoveResolver(logger *slog.Logger, primary, secondary OpponentService, config ResolverConfig) *MoveResolver {
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 1
	}

	return &MoveResolver{
		logger:    logger,
		primary:   primary,
		secondary: secondary,
		config:    config,
	}
}

// Resolve - returns the opponent's move or, once attempts are exhausted, an
// OpponentThinkingError carrying the attempt count and the last failure.
// Legality failures are not special-cased here: every failure is retried
// because the caller only invokes the resolver when a legal move exists.
func (that *MoveResolver) Resolve(ctx context.Context, game *entity.Game, difficulty entity.Difficulty) (*OpponentMove, error) {
	log := that.logger.With("method", "Resolve", "difficulty", difficulty)

	var lastErr error

	attempts := 0
	for {
		attempts++

		move, err := that.attempt(ctx, that.primary, game, difficulty)
		if err == nil {
			return move, nil
		}

		lastErr = err
		log.Warn("primary opponent attempt failed", "attempt", attempts, "service", that.primary.Name(), "error", err)

		if attempts >= that.config.MaxAttempts {
			break
		}

		if that.config.EnableFallback && that.secondary != nil {
			move, fallbackErr := that.attempt(ctx, that.secondary, game, difficulty)
			if fallbackErr == nil {
				log.Info("secondary opponent answered", "service", that.secondary.Name())
				return move, nil
			}

			log.Warn("secondary opponent attempt failed", "service", that.secondary.Name(), "error", fallbackErr)
		}

		select {
		case <-time.After(that.config.RetryDelay):
		case <-ctx.Done():
			return nil, &apperror.OpponentThinkingError{Attempts: attempts, Last: fmt.Errorf("%w: %v", apperror.ErrTimeout, ctx.Err())}
		}
	}

	return nil, &apperror.OpponentThinkingError{Attempts: attempts, Last: lastErr}
}

// attempt - one adapter call under the configured timeout. The timeout only
// shapes the reported error; the underlying computation is not hard-cancelled.
func (that *MoveResolver) attempt(ctx context.Context, svc OpponentService, game *entity.Game, difficulty entity.Difficulty) (*OpponentMove, error) {
	if that.config.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, that.config.AttemptTimeout)
		defer cancel()
	}

	move, err := svc.ComputeMove(ctx, game, difficulty)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, apperror.ErrTimeout) {
			return nil, fmt.Errorf("%w: %v", apperror.ErrTimeout, err)
		}
		return nil, err
	}

	return move, nil
}

// HealthCheck - probes the primary adapter.
func (that *MoveResolver) HealthCheck(ctx context.Context) (*OpponentStatus, error) {
	return that.primary.HealthCheck(ctx)
}
