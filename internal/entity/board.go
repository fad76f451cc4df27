package entity

import (
	"errors"
	"fmt"
	"strings"
)

// BoardSize is the side length of the square playing field.
const BoardSize = 8

const (
	CellEmpty Cell = ""
	CellBlack Cell = "black"
	CellWhite Cell = "white"
)

const (
	PlayerBlack Player = "black"
	PlayerWhite Player = "white"
)

var ErrPositionOutOfBounds = errors.New("position out of bounds")

// Cell is the content of one board square.
type Cell string

// Player is one of the two piece colors. The human always plays black and
// moves first; the computer opponent always plays white.
type Player string

// Opponent - returns the other color.
func (that Player) Opponent() Player {
	if that == PlayerBlack {
		return PlayerWhite
	}

	return PlayerBlack
}

// Cell - returns the cell content a piece of this color occupies.
func (that Player) Cell() Cell {
	return Cell(that)
}

// Ordinal - black is 0, white is 1. Used by the reproducible move selection.
func (that Player) Ordinal() int {
	if that == PlayerWhite {
		return 1
	}

	return 0
}

// Position is a zero-based board coordinate.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NewPosition - validates the coordinate against the board bounds.
func NewPosition(row, col int) (Position, error) {
	if row < 0 || row >= BoardSize || col < 0 || col >= BoardSize {
		return Position{}, fmt.Errorf("%w: (%d, %d)", ErrPositionOutOfBounds, row, col)
	}

	return Position{Row: row, Col: col}, nil
}

// InBounds - reports whether the position lies on the board.
func (that Position) InBounds() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

// Board is the 8x8 playing field. It is a value type: assignment copies the
// whole grid, which the search strategies rely on.
type Board struct {
	Cells [BoardSize][BoardSize]Cell `json:"cells"`
}

// NewBoard - returns a board with the four standard starting pieces.
func NewBoard() Board {
	var board Board

	board.Cells[3][3] = CellWhite
	board.Cells[3][4] = CellBlack
	board.Cells[4][3] = CellBlack
	board.Cells[4][4] = CellWhite

	return board
}

// CellAt - returns the cell content; ok is false out of bounds.
func (that *Board) CellAt(pos Position) (Cell, bool) {
	if !pos.InBounds() {
		return CellEmpty, false
	}

	return that.Cells[pos.Row][pos.Col], true
}

// SetCell - writes the cell content, reporting whether the position was valid.
func (that *Board) SetCell(pos Position, cell Cell) bool {
	if !pos.InBounds() {
		return false
	}

	that.Cells[pos.Row][pos.Col] = cell

	return true
}

// IsEmpty - reports whether the position is on the board and unoccupied.
func (that *Board) IsEmpty(pos Position) bool {
	cell, ok := that.CellAt(pos)

	return ok && cell == CellEmpty
}

// Tally - counts the pieces of each color.
func (that *Board) Tally() (black, white int) {
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			switch that.Cells[row][col] {
			case CellBlack:
				black++
			case CellWhite:
				white++
			}
		}
	}

	return black, white
}

// String - renders the board as a debug grid: B, W and dots.
func (that *Board) String() string {
	var builder strings.Builder

	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			switch that.Cells[row][col] {
			case CellBlack:
				builder.WriteByte('B')
			case CellWhite:
				builder.WriteByte('W')
			default:
				builder.WriteByte('.')
			}
		}
		builder.WriteByte('\n')
	}

	return builder.String()
}
