package service

import (
	"github.com/rocketscienceinc/reversi-backend/internal/entity"
)

// Weights of the three evaluation terms. Corners dominate because a corner
// piece can never be flipped back.
type evalWeights struct {
	pieceCount    float64
	cornerControl float64
	edgeControl   float64
}

var defaultWeights = evalWeights{
	pieceCount:    1.0,
	cornerControl: 10.0,
	edgeControl:   5.0,
}

var corners = [4]entity.Position{
	{Row: 0, Col: 0},
	{Row: 0, Col: entity.BoardSize - 1},
	{Row: entity.BoardSize - 1, Col: 0},
	{Row: entity.BoardSize - 1, Col: entity.BoardSize - 1},
}

// evaluateBoard - scores the board from the given player's point of view.
// Positive is good for the player, negative is good for the opponent.
func evaluateBoard(board *entity.Board, player entity.Player) float64 {
	pieces := evaluatePieceCount(board, player) * defaultWeights.pieceCount
	cornersScore := evaluateCorners(board, player) * defaultWeights.cornerControl
	edges := evaluateEdges(board, player) * defaultWeights.edgeControl

	return pieces + cornersScore + edges
}

func evaluatePieceCount(board *entity.Board, player entity.Player) float64 {
	black, white := board.Tally()

	if player == entity.PlayerBlack {
		return float64(black - white)
	}
	return float64(white - black)
}

func evaluateCorners(board *entity.Board, player entity.Player) float64 {
	playerCell := player.Cell()
	opponentCell := player.Opponent().Cell()

	var score float64
	for _, corner := range corners {
		cell, _ := board.CellAt(corner)
		switch cell {
		case playerCell:
			score++
		case opponentCell:
			score--
		}
	}

	return score
}

func evaluateEdges(board *entity.Board, player entity.Player) float64 {
	playerCell := player.Cell()
	opponentCell := player.Opponent().Cell()

	var score float64
	for row := 0; row < entity.BoardSize; row++ {
		for col := 0; col < entity.BoardSize; col++ {
			onEdge := row == 0 || row == entity.BoardSize-1 || col == 0 || col == entity.BoardSize-1
			if !onEdge || isCorner(row, col) {
				continue
			}

			switch board.Cells[row][col] {
			case playerCell:
				score += 0.5
			case opponentCell:
				score -= 0.5
			}
		}
	}

	return score
}

func isCorner(row, col int) bool {
	return (row == 0 || row == entity.BoardSize-1) && (col == 0 || col == entity.BoardSize-1)
}
