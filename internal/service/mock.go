package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rocketscienceinc/reversi-backend/internal/apperror"
	"github.com/rocketscienceinc/reversi-backend/internal/entity"
	"github.com/rocketscienceinc/reversi-backend/internal/reversi"
)

// MockConfig controls how the mock adapter behaves: report unavailability,
// fail every call, return a fixed move, or answer normally after a delay.
type MockConfig struct {
	Available             bool
	ResponseTime          time.Duration
	Err                   error
	FixedMove             *entity.Position
	SupportedDifficulties []entity.Difficulty
}

func DefaultMockConfig() MockConfig {
	return MockConfig{
		Available:             true,
		ResponseTime:          100 * time.Millisecond,
		SupportedDifficulties: entity.Difficulties(),
	}
}

// MockOpponent simulates an opponent service for tests and for running the
// server without a real engine.
type MockOpponent struct {
	config MockConfig
}

func NewMockOpponent(config MockConfig) *MockOpponent {
	return &MockOpponent{config: config}
}

// NewUnavailableMock - an adapter whose probe and every call fail.
func NewUnavailableMock() *MockOpponent {
	cfg := DefaultMockConfig()
	cfg.Available = false
	cfg.ResponseTime = 0

	return NewMockOpponent(cfg)
}

// NewFailingMock - an available adapter that fails every computation.
func NewFailingMock(err error) *MockOpponent {
	cfg := DefaultMockConfig()
	cfg.Err = err
	cfg.ResponseTime = 0

	return NewMockOpponent(cfg)
}

// NewFixedMoveMock - an adapter that always replies with the given position.
func NewFixedMoveMock(pos entity.Position) *MockOpponent {
	cfg := DefaultMockConfig()
	cfg.FixedMove = &pos
	cfg.ResponseTime = 0

	return NewMockOpponent(cfg)
}

func (that *MockOpponent) ComputeMove(ctx context.Context, game *entity.Game, difficulty entity.Difficulty) (*OpponentMove, error) {
	started := time.Now()

	if !that.config.Available {
		return nil, fmt.Errorf("%w: %s is configured as unavailable", apperror.ErrServiceUnavailable, that.Name())
	}

	if that.config.Err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrStrategyFailure, that.config.Err)
	}

	if !that.supports(difficulty) {
		return nil, fmt.Errorf("%w: difficulty %q is not supported", apperror.ErrStrategyFailure, difficulty)
	}

	if game.IsFinished() {
		return nil, fmt.Errorf("%w: cannot compute a move for a finished game", apperror.ErrStrategyFailure)
	}

	if that.config.ResponseTime > 0 {
		select {
		case <-time.After(that.config.ResponseTime):
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", apperror.ErrTimeout, ctx.Err())
		}
	}

	if that.config.FixedMove != nil {
		return &OpponentMove{Position: *that.config.FixedMove, ThinkingTime: time.Since(started)}, nil
	}

	moves := reversi.LegalMoves(&game.Board, game.CurrentPlayer)
	if len(moves) == 0 {
		return nil, apperror.ErrNoValidMoves
	}

	return &OpponentMove{Position: moves[0], ThinkingTime: time.Since(started)}, nil
}

func (that *MockOpponent) supports(difficulty entity.Difficulty) bool {
	for _, supported := range that.config.SupportedDifficulties {
		if supported == difficulty {
			return true
		}
	}

	return false
}

func (that *MockOpponent) IsAvailable(_ context.Context) bool {
	return that.config.Available
}

func (that *MockOpponent) SupportedDifficulties() []entity.Difficulty {
	return that.config.SupportedDifficulties
}

func (that *MockOpponent) Name() string {
	return "MockOpponent"
}

func (that *MockOpponent) HealthCheck(ctx context.Context) (*OpponentStatus, error) {
	return healthCheck(ctx, that)
}
