package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/reversi-backend/internal/apperror"
	"github.com/rocketscienceinc/reversi-backend/internal/entity"
	"github.com/rocketscienceinc/reversi-backend/internal/reversi"
)

func TestNewStrategy(t *testing.T) {
	assert.Equal(t, "RandomStrategy", NewStrategy(entity.DifficultyEasy).Name())
	assert.Equal(t, "MinimaxStrategy", NewStrategy(entity.DifficultyMedium).Name())
	assert.Equal(t, "AlphaBetaStrategy", NewStrategy(entity.DifficultyHard).Name())
}

func TestRandomStrategy_ComputeMove(t *testing.T) {
	t.Run("Opening move follows the reproducible index", func(t *testing.T) {
		// Given: a fresh game, black to move, zero moves played
		game := entity.NewGame()
		strategy := NewStrategy(entity.DifficultyEasy)

		// When: computing the move
		move, err := strategy.ComputeMove(game)

		// Then: index (0*7 + 0*3) % 4 selects the first legal move
		require.NoError(t, err)
		assert.Equal(t, entity.Position{Row: 2, Col: 3}, move)
	})

	t.Run("Same state always yields the same move", func(t *testing.T) {
		game := entity.NewGame()
		_, err := reversi.Apply(game, entity.Position{Row: 2, Col: 3})
		require.NoError(t, err)
		game.SwitchPlayer()

		strategy := NewStrategy(entity.DifficultyEasy)

		first, err := strategy.ComputeMove(game)
		require.NoError(t, err)

		second, err := strategy.ComputeMove(game)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.True(t, reversi.Legal(&game.Board, game.CurrentPlayer, first))
	})

	t.Run("Fails on a finished game", func(t *testing.T) {
		game := entity.NewGame()
		game.Finish(nil)

		_, err := NewStrategy(entity.DifficultyEasy).ComputeMove(game)

		require.ErrorIs(t, err, apperror.ErrStrategyFailure)
	})

	t.Run("Fails when the mover has no legal move", func(t *testing.T) {
		game := entity.NewGame()
		game.Board = entity.Board{}
		game.Board.SetCell(entity.Position{Row: 0, Col: 0}, entity.CellBlack)
		game.CurrentPlayer = entity.PlayerWhite

		_, err := NewStrategy(entity.DifficultyEasy).ComputeMove(game)

		require.ErrorIs(t, err, apperror.ErrNoValidMoves)
	})
}

func TestSearchStrategies_ComputeMove(t *testing.T) {
	for _, difficulty := range []entity.Difficulty{entity.DifficultyMedium, entity.DifficultyHard} {
		t.Run(string(difficulty)+" returns a legal move", func(t *testing.T) {
			game := entity.NewGame()
			strategy := NewStrategy(difficulty)

			move, err := strategy.ComputeMove(game)

			require.NoError(t, err)
			assert.True(t, reversi.Legal(&game.Board, game.CurrentPlayer, move))
		})

		t.Run(string(difficulty)+" leaves the game untouched", func(t *testing.T) {
			game := entity.NewGame()
			snapshot := game.Board

			_, err := NewStrategy(difficulty).ComputeMove(game)

			require.NoError(t, err)
			assert.Equal(t, snapshot, game.Board)
			assert.Empty(t, game.Moves)
		})
	}
}

func TestSearchStrategies_ForcedMove(t *testing.T) {
	// Given: . W B along the top row, (0,0) is black's only capture
	game := entity.NewGame()
	game.Board = entity.Board{}
	game.Board.SetCell(entity.Position{Row: 0, Col: 1}, entity.CellWhite)
	game.Board.SetCell(entity.Position{Row: 0, Col: 2}, entity.CellBlack)
	game.CurrentPlayer = entity.PlayerBlack

	move, err := NewStrategy(entity.DifficultyHard).ComputeMove(game)

	require.NoError(t, err)
	assert.Equal(t, entity.Position{Row: 0, Col: 0}, move)
}

func TestEvaluateBoard(t *testing.T) {
	t.Run("Balanced start scores zero", func(t *testing.T) {
		board := entity.NewBoard()

		assert.InDelta(t, 0, evaluateBoard(&board, entity.PlayerBlack), 0.001)
	})

	t.Run("Corners weigh more than plain material", func(t *testing.T) {
		// Given: black holds one corner, white holds two interior pieces
		var board entity.Board
		board.SetCell(entity.Position{Row: 0, Col: 0}, entity.CellBlack)
		board.SetCell(entity.Position{Row: 3, Col: 3}, entity.CellWhite)
		board.SetCell(entity.Position{Row: 4, Col: 4}, entity.CellWhite)

		score := evaluateBoard(&board, entity.PlayerBlack)

		// Then: the corner bonus outweighs the one-piece material deficit
		assert.Greater(t, score, 0.0)
	})

	t.Run("Score is antisymmetric between the players", func(t *testing.T) {
		var board entity.Board
		board.SetCell(entity.Position{Row: 0, Col: 0}, entity.CellBlack)
		board.SetCell(entity.Position{Row: 0, Col: 3}, entity.CellWhite)
		board.SetCell(entity.Position{Row: 5, Col: 5}, entity.CellWhite)

		black := evaluateBoard(&board, entity.PlayerBlack)
		white := evaluateBoard(&board, entity.PlayerWhite)

		assert.InDelta(t, black, -white, 0.001)
	})
}
