package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rocketscienceinc/reversi-backend/internal/apperror"
	"github.com/rocketscienceinc/reversi-backend/internal/entity"
	"github.com/rocketscienceinc/reversi-backend/internal/reversi"
)

// OpponentMove is the reply of an opponent service, annotated with how long
// the computation took.
type OpponentMove struct {
	Position     entity.Position
	ThinkingTime time.Duration
}

// OpponentStatus is the result of a health check.
type OpponentStatus struct {
	Name                  string              `json:"name"`
	Available             bool                `json:"available"`
	SupportedDifficulties []entity.Difficulty `json:"supported_difficulties"`
	CheckedAt             time.Time           `json:"checked_at"`
	ProbeLatency          time.Duration       `json:"probe_latency"`
}

// OpponentService wraps a strategy with availability probing, simulated
// thinking time and a uniform error taxonomy.
type OpponentService interface {
	ComputeMove(ctx context.Context, game *entity.Game, difficulty entity.Difficulty) (*OpponentMove, error)
	IsAvailable(ctx context.Context) bool
	SupportedDifficulties() []entity.Difficulty
	Name() string
	HealthCheck(ctx context.Context) (*OpponentStatus, error)
}

// NewOpponentService - builds the adapter named in the configuration.
func NewOpponentService(kind string, fast bool) (OpponentService, error) {
	switch kind {
	case "local":
		if fast {
			return NewFastLocalOpponent(), nil
		}
		return NewLocalOpponent(), nil
	case "mock":
		cfg := DefaultMockConfig()
		if fast {
			cfg.ResponseTime = 0
		}
		return NewMockOpponent(cfg), nil
	default:
		return nil, fmt.Errorf("%w: unknown adapter %q", apperror.ErrConfiguration, kind)
	}
}

// localOpponent runs the in-process strategies, optionally sleeping a
// difficulty-scaled delay to mimic a remote engine thinking.
type localOpponent struct {
	simulateThinking bool
}

func NewLocalOpponent() OpponentService {
	return &localOpponent{simulateThinking: true}
}

// NewFastLocalOpponent - local adapter without the artificial delay, for
// tests and latency-sensitive setups.
func NewFastLocalOpponent() OpponentService {
	return &localOpponent{}
}

func (that *localOpponent) ComputeMove(ctx context.Context, game *entity.Game, difficulty entity.Difficulty) (*OpponentMove, error) {
	started := time.Now()

	if game.IsFinished() {
		return nil, fmt.Errorf("%w: cannot compute a move for a finished game", apperror.ErrStrategyFailure)
	}

	if len(reversi.LegalMoves(&game.Board, game.CurrentPlayer)) == 0 {
		return nil, apperror.ErrNoValidMoves
	}

	if delay := that.thinkingDelay(difficulty); delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", apperror.ErrTimeout, ctx.Err())
		}
	}

	strategy := NewStrategy(difficulty)

	position, err := strategy.ComputeMove(game)
	if err != nil {
		return nil, fmt.Errorf("failed to compute move with %s: %w", strategy.Name(), err)
	}

	return &OpponentMove{
		Position:     position,
		ThinkingTime: time.Since(started),
	}, nil
}

func (that *localOpponent) thinkingDelay(difficulty entity.Difficulty) time.Duration {
	if !that.simulateThinking {
		return 0
	}

	switch difficulty {
	case entity.DifficultyEasy:
		return 500 * time.Millisecond
	case entity.DifficultyMedium:
		return 1500 * time.Millisecond
	case entity.DifficultyHard:
		return 3 * time.Second
	default:
		return 0
	}
}

func (that *localOpponent) IsAvailable(_ context.Context) bool {
	return true
}

func (that *localOpponent) SupportedDifficulties() []entity.Difficulty {
	return entity.Difficulties()
}

func (that *localOpponent) Name() string {
	return "LocalOpponent"
}

func (that *localOpponent) HealthCheck(ctx context.Context) (*OpponentStatus, error) {
	return healthCheck(ctx, that)
}

// healthCheck - probes availability and measures the probe latency; shared by
// every adapter.
func healthCheck(ctx context.Context, svc OpponentService) (*OpponentStatus, error) {
	started := time.Now()
	available := svc.IsAvailable(ctx)
	latency := time.Since(started)

	if !available {
		return nil, fmt.Errorf("%w: %s failed the health probe", apperror.ErrServiceUnavailable, svc.Name())
	}

	return &OpponentStatus{
		Name:                  svc.Name(),
		Available:             true,
		SupportedDifficulties: svc.SupportedDifficulties(),
		CheckedAt:             time.Now().UTC(),
		ProbeLatency:          latency,
	}, nil
}
