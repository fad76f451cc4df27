package reversi

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/reversi-backend/internal/apperror"
	"github.com/rocketscienceinc/reversi-backend/internal/entity"
)

// The eight walk directions used for capture runs.
var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Legal - reports whether the player may place at pos: the cell must be empty
// and the placement must capture at least one opponent piece.
func Legal(board *entity.Board, player entity.Player, pos entity.Position) bool {
	if !board.IsEmpty(pos) {
		return false
	}

	return len(Flips(board, player, pos)) > 0
}

// Flips - collects every opponent position captured by placing at pos.
// Each of the eight directions is walked independently: a run of opponent
// pieces counts only if it is terminated by one of the player's own pieces;
// runs ending on an empty cell or the edge are discarded.
func Flips(board *entity.Board, player entity.Player, pos entity.Position) []entity.Position {
	var flipped []entity.Position

	playerCell := player.Cell()
	opponentCell := player.Opponent().Cell()

	for _, dir := range directions {
		var run []entity.Position

		row, col := pos.Row+dir[0], pos.Col+dir[1]
		for row >= 0 && row < entity.BoardSize && col >= 0 && col < entity.BoardSize {
			current := entity.Position{Row: row, Col: col}

			cell, _ := board.CellAt(current)
			if cell == opponentCell {
				run = append(run, current)
				row += dir[0]
				col += dir[1]
				continue
			}

			if cell == playerCell {
				flipped = append(flipped, run...)
			}

			break
		}
	}

	return flipped
}

// Apply - places the current mover's piece at pos, rewrites every captured
// cell and appends the move to the log. It does not advance the turn.
func Apply(game *entity.Game, pos entity.Position) ([]entity.Position, error) {
	if game.IsFinished() {
		return nil, apperror.ErrGameFinished
	}

	if !Legal(&game.Board, game.CurrentPlayer, pos) {
		return nil, fmt.Errorf("%w: position (%d, %d) for %s", apperror.ErrInvalidMove, pos.Row, pos.Col, game.CurrentPlayer)
	}

	flipped := Flips(&game.Board, game.CurrentPlayer, pos)

	game.Board.SetCell(pos, game.CurrentPlayer.Cell())
	for _, flip := range flipped {
		game.Board.SetCell(flip, game.CurrentPlayer.Cell())
	}

	game.AddMove(entity.Move{
		Player:    game.CurrentPlayer,
		Position:  pos,
		Flipped:   flipped,
		Timestamp: time.Now().UTC(),
	})

	return flipped, nil
}

// LegalMoves - scans all 64 cells in row-major order. An empty result means
// the player is forced to pass.
func LegalMoves(board *entity.Board, player entity.Player) []entity.Position {
	var moves []entity.Position

	for row := 0; row < entity.BoardSize; row++ {
		for col := 0; col < entity.BoardSize; col++ {
			pos := entity.Position{Row: row, Col: col}
			if Legal(board, player, pos) {
				moves = append(moves, pos)
			}
		}
	}

	return moves
}

// HasLegalMove - reports whether the player can place anywhere.
func HasLegalMove(board *entity.Board, player entity.Player) bool {
	for row := 0; row < entity.BoardSize; row++ {
		for col := 0; col < entity.BoardSize; col++ {
			if Legal(board, player, entity.Position{Row: row, Col: col}) {
				return true
			}
		}
	}

	return false
}

// Terminal - reports whether neither player has a legal move left.
func Terminal(board *entity.Board) bool {
	return !HasLegalMove(board, entity.PlayerBlack) && !HasLegalMove(board, entity.PlayerWhite)
}

// Winner - the player with the higher tally, or nil on an exact tie.
func Winner(board *entity.Board) *entity.Player {
	black, white := board.Tally()

	switch {
	case black > white:
		winner := entity.PlayerBlack
		return &winner
	case white > black:
		winner := entity.PlayerWhite
		return &winner
	default:
		return nil
	}
}

// AdvanceTurn - handles pass and termination after a move. If the current
// mover still has a legal move nothing happens. Otherwise the turn passes to
// the other player; if that player has no move either, the game finishes with
// the computed winner. Returns whether any state changed.
func AdvanceTurn(game *entity.Game) bool {
	if HasLegalMove(&game.Board, game.CurrentPlayer) {
		return false
	}

	game.SwitchPlayer()

	if HasLegalMove(&game.Board, game.CurrentPlayer) {
		return true
	}

	game.Finish(Winner(&game.Board))

	return true
}
