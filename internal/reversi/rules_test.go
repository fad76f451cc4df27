package reversi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/reversi-backend/internal/apperror"
	"github.com/rocketscienceinc/reversi-backend/internal/entity"
)

func TestLegalMoves(t *testing.T) {
	t.Run("Black has the four opening moves in row-major order", func(t *testing.T) {
		board := entity.NewBoard()

		moves := LegalMoves(&board, entity.PlayerBlack)

		assert.Equal(t, []entity.Position{
			{Row: 2, Col: 3},
			{Row: 3, Col: 2},
			{Row: 4, Col: 5},
			{Row: 5, Col: 4},
		}, moves)
	})

	t.Run("No moves on a board without capture runs", func(t *testing.T) {
		var board entity.Board
		board.SetCell(entity.Position{Row: 0, Col: 0}, entity.CellBlack)

		assert.Empty(t, LegalMoves(&board, entity.PlayerBlack))
		assert.Empty(t, LegalMoves(&board, entity.PlayerWhite))
	})
}

func TestFlips(t *testing.T) {
	t.Run("Opening move captures the single enclosed piece", func(t *testing.T) {
		board := entity.NewBoard()

		flipped := Flips(&board, entity.PlayerBlack, entity.Position{Row: 2, Col: 3})

		assert.Equal(t, []entity.Position{{Row: 3, Col: 3}}, flipped)
	})

	t.Run("A run without a terminating own piece is discarded", func(t *testing.T) {
		// Given: . W W . along the top row, no black terminator to the left
		var board entity.Board
		board.SetCell(entity.Position{Row: 0, Col: 1}, entity.CellWhite)
		board.SetCell(entity.Position{Row: 0, Col: 2}, entity.CellWhite)

		// When: black places past the white run
		flipped := Flips(&board, entity.PlayerBlack, entity.Position{Row: 0, Col: 3})

		// Then: the run ends on an empty cell, so nothing flips
		assert.Empty(t, flipped)
	})

	t.Run("Inspection does not mutate the board", func(t *testing.T) {
		board := entity.NewBoard()
		snapshot := board

		Legal(&board, entity.PlayerBlack, entity.Position{Row: 2, Col: 3})
		Flips(&board, entity.PlayerBlack, entity.Position{Row: 2, Col: 3})

		assert.Equal(t, snapshot, board)
	})
}

func TestApply(t *testing.T) {
	t.Run("Places, flips and logs the move", func(t *testing.T) {
		game := entity.NewGame()

		flipped, err := Apply(game, entity.Position{Row: 2, Col: 3})

		require.NoError(t, err)
		assert.Equal(t, []entity.Position{{Row: 3, Col: 3}}, flipped)

		black, white := game.Board.Tally()
		assert.Equal(t, 4, black)
		assert.Equal(t, 1, white)

		require.Len(t, game.Moves, 1)
		assert.Equal(t, entity.PlayerBlack, game.Moves[0].Player)

		// Applying a move does not hand over the turn.
		assert.Equal(t, entity.PlayerBlack, game.CurrentPlayer)
	})

	t.Run("Rejects a placement without captures", func(t *testing.T) {
		game := entity.NewGame()

		_, err := Apply(game, entity.Position{Row: 0, Col: 0})

		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		assert.Empty(t, game.Moves)
	})

	t.Run("Rejects an occupied cell", func(t *testing.T) {
		game := entity.NewGame()

		_, err := Apply(game, entity.Position{Row: 3, Col: 3})

		require.ErrorIs(t, err, apperror.ErrInvalidMove)
	})

	t.Run("Rejects moves on a finished game", func(t *testing.T) {
		game := entity.NewGame()
		game.Finish(nil)

		_, err := Apply(game, entity.Position{Row: 2, Col: 3})

		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}

func TestWinner(t *testing.T) {
	t.Run("Higher tally wins", func(t *testing.T) {
		var board entity.Board
		board.SetCell(entity.Position{Row: 0, Col: 0}, entity.CellWhite)

		winner := Winner(&board)

		require.NotNil(t, winner)
		assert.Equal(t, entity.PlayerWhite, *winner)
	})

	t.Run("Exact tie has no winner", func(t *testing.T) {
		board := entity.NewBoard()

		assert.Nil(t, Winner(&board))
	})
}

func TestAdvanceTurn(t *testing.T) {
	t.Run("No-op while the current mover can place", func(t *testing.T) {
		game := entity.NewGame()

		changed := AdvanceTurn(game)

		assert.False(t, changed)
		assert.Equal(t, entity.PlayerBlack, game.CurrentPlayer)
	})

	t.Run("Passes the turn when the mover is stuck", func(t *testing.T) {
		// Given: white has no capture run anywhere, black can take (0,2)
		game := entity.NewGame()
		game.Board = entity.Board{}
		game.Board.SetCell(entity.Position{Row: 0, Col: 0}, entity.CellBlack)
		game.Board.SetCell(entity.Position{Row: 0, Col: 1}, entity.CellWhite)
		game.CurrentPlayer = entity.PlayerWhite

		// When: advancing the turn
		changed := AdvanceTurn(game)

		// Then: the turn passes back to black and the game continues
		assert.True(t, changed)
		assert.Equal(t, entity.PlayerBlack, game.CurrentPlayer)
		assert.False(t, game.IsFinished())
	})

	t.Run("Finishes the game when neither player can place", func(t *testing.T) {
		// Given: a lone black piece, no capture runs for anyone
		game := entity.NewGame()
		game.Board = entity.Board{}
		game.Board.SetCell(entity.Position{Row: 0, Col: 0}, entity.CellBlack)
		game.CurrentPlayer = entity.PlayerWhite

		// When: advancing the turn
		changed := AdvanceTurn(game)

		// Then: the game finishes with black as the winner
		assert.True(t, changed)
		require.True(t, game.IsFinished())
		require.NotNil(t, game.Winner)
		assert.Equal(t, entity.PlayerBlack, *game.Winner)
		require.NotNil(t, game.FinalScore)
		assert.Equal(t, 1, game.FinalScore.Black)
		assert.Equal(t, 0, game.FinalScore.White)
	})
}
