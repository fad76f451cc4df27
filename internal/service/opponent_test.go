package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/reversi-backend/internal/apperror"
	"github.com/rocketscienceinc/reversi-backend/internal/entity"
	"github.com/rocketscienceinc/reversi-backend/internal/reversi"
)

func TestNewOpponentService(t *testing.T) {
	t.Run("Builds the local adapter", func(t *testing.T) {
		svc, err := NewOpponentService("local", true)

		require.NoError(t, err)
		assert.Equal(t, "LocalOpponent", svc.Name())
	})

	t.Run("Builds the mock adapter", func(t *testing.T) {
		svc, err := NewOpponentService("mock", true)

		require.NoError(t, err)
		assert.Equal(t, "MockOpponent", svc.Name())
	})

	t.Run("Rejects an unknown adapter kind", func(t *testing.T) {
		_, err := NewOpponentService("remote-gpu-cluster", false)

		require.ErrorIs(t, err, apperror.ErrConfiguration)
	})
}

func TestLocalOpponent_ComputeMove(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns a legal move with a thinking time", func(t *testing.T) {
		svc := NewFastLocalOpponent()
		game := entity.NewGame()

		move, err := svc.ComputeMove(ctx, game, entity.DifficultyEasy)

		require.NoError(t, err)
		assert.True(t, reversi.Legal(&game.Board, game.CurrentPlayer, move.Position))
		assert.GreaterOrEqual(t, move.ThinkingTime, time.Duration(0))
	})

	t.Run("Fails on a finished game", func(t *testing.T) {
		svc := NewFastLocalOpponent()
		game := entity.NewGame()
		game.Finish(nil)

		_, err := svc.ComputeMove(ctx, game, entity.DifficultyEasy)

		require.ErrorIs(t, err, apperror.ErrStrategyFailure)
	})

	t.Run("Fails when the mover must pass", func(t *testing.T) {
		svc := NewFastLocalOpponent()
		game := entity.NewGame()
		game.Board = entity.Board{}
		game.Board.SetCell(entity.Position{Row: 0, Col: 0}, entity.CellBlack)
		game.CurrentPlayer = entity.PlayerWhite

		_, err := svc.ComputeMove(ctx, game, entity.DifficultyEasy)

		require.ErrorIs(t, err, apperror.ErrNoValidMoves)
	})

	t.Run("A cancelled context interrupts the simulated thinking", func(t *testing.T) {
		svc := NewLocalOpponent()
		game := entity.NewGame()

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := svc.ComputeMove(cancelled, game, entity.DifficultyEasy)

		require.ErrorIs(t, err, apperror.ErrTimeout)
	})
}

func TestLocalOpponent_HealthCheck(t *testing.T) {
	svc := NewFastLocalOpponent()

	status, err := svc.HealthCheck(context.Background())

	require.NoError(t, err)
	assert.True(t, status.Available)
	assert.Equal(t, "LocalOpponent", status.Name)
	assert.Equal(t, entity.Difficulties(), status.SupportedDifficulties)
}

func TestMockOpponent_ComputeMove(t *testing.T) {
	ctx := context.Background()

	t.Run("Unavailable mock refuses every call", func(t *testing.T) {
		svc := NewUnavailableMock()
		game := entity.NewGame()

		_, err := svc.ComputeMove(ctx, game, entity.DifficultyEasy)
		require.ErrorIs(t, err, apperror.ErrServiceUnavailable)

		_, err = svc.HealthCheck(ctx)
		require.ErrorIs(t, err, apperror.ErrServiceUnavailable)
	})

	t.Run("Failing mock wraps the configured error", func(t *testing.T) {
		cause := errors.New("engine crashed")
		svc := NewFailingMock(cause)
		game := entity.NewGame()

		_, err := svc.ComputeMove(ctx, game, entity.DifficultyEasy)

		require.ErrorIs(t, err, apperror.ErrStrategyFailure)
		require.ErrorIs(t, err, cause)
	})

	t.Run("Fixed-move mock always answers with its position", func(t *testing.T) {
		svc := NewFixedMoveMock(entity.Position{Row: 2, Col: 3})
		game := entity.NewGame()

		move, err := svc.ComputeMove(ctx, game, entity.DifficultyHard)

		require.NoError(t, err)
		assert.Equal(t, entity.Position{Row: 2, Col: 3}, move.Position)
	})

	t.Run("Rejects an unsupported difficulty", func(t *testing.T) {
		cfg := DefaultMockConfig()
		cfg.ResponseTime = 0
		cfg.SupportedDifficulties = []entity.Difficulty{entity.DifficultyEasy}
		svc := NewMockOpponent(cfg)

		_, err := svc.ComputeMove(ctx, entity.NewGame(), entity.DifficultyHard)

		require.ErrorIs(t, err, apperror.ErrStrategyFailure)
	})

	t.Run("Answers with the first legal move by default", func(t *testing.T) {
		cfg := DefaultMockConfig()
		cfg.ResponseTime = 0
		svc := NewMockOpponent(cfg)
		game := entity.NewGame()

		move, err := svc.ComputeMove(ctx, game, entity.DifficultyEasy)

		require.NoError(t, err)
		assert.Equal(t, entity.Position{Row: 2, Col: 3}, move.Position)
	})
}
