package service

import (
	"fmt"
	"math"

	"github.com/rocketscienceinc/reversi-backend/internal/apperror"
	"github.com/rocketscienceinc/reversi-backend/internal/entity"
	"github.com/rocketscienceinc/reversi-backend/internal/reversi"
)

const terminalScore = 1e6

// Strategy produces the opponent's next move for a game state.
type Strategy interface {
	ComputeMove(game *entity.Game) (entity.Position, error)
	Difficulty() entity.Difficulty
	Name() string
}

// NewStrategy - selects the concrete strategy for a difficulty tier.
func NewStrategy(difficulty entity.Difficulty) Strategy {
	switch difficulty {
	case entity.DifficultyMedium:
		return &minimaxStrategy{depth: 3}
	case entity.DifficultyHard:
		return &alphaBetaStrategy{depth: 5}
	default:
		return &randomStrategy{}
	}
}

// randomStrategy picks a legal move with a reproducible index formula instead
// of a real RNG, so replays of the same game choose the same moves.
type randomStrategy struct{}

func (that *randomStrategy) ComputeMove(game *entity.Game) (entity.Position, error) {
	moves, err := openMoves(game)
	if err != nil {
		return entity.Position{}, err
	}

	index := (game.MoveCount()*7 + game.CurrentPlayer.Ordinal()*3) % len(moves)

	return moves[index], nil
}

func (that *randomStrategy) Difficulty() entity.Difficulty { return entity.DifficultyEasy }

func (that *randomStrategy) Name() string { return "RandomStrategy" }

// minimaxStrategy searches the game tree to a fixed depth, maximizing the
// board evaluation for the strategy's mover.
type minimaxStrategy struct {
	depth int
}

func (that *minimaxStrategy) ComputeMove(game *entity.Game) (entity.Position, error) {
	return searchBestMove(game, that.depth, false)
}

func (that *minimaxStrategy) Difficulty() entity.Difficulty { return entity.DifficultyMedium }

func (that *minimaxStrategy) Name() string { return "MinimaxStrategy" }

// alphaBetaStrategy is the minimax search with alpha-beta pruning, which
// affords a deeper horizon at the same cost.
type alphaBetaStrategy struct {
	depth int
}

func (that *alphaBetaStrategy) ComputeMove(game *entity.Game) (entity.Position, error) {
	return searchBestMove(game, that.depth, true)
}

func (that *alphaBetaStrategy) Difficulty() entity.Difficulty { return entity.DifficultyHard }

func (that *alphaBetaStrategy) Name() string { return "AlphaBetaStrategy" }

// openMoves - shared fail-fast checks of every strategy.
func openMoves(game *entity.Game) ([]entity.Position, error) {
	if game.IsFinished() {
		return nil, fmt.Errorf("%w: cannot compute a move for a finished game", apperror.ErrStrategyFailure)
	}

	moves := reversi.LegalMoves(&game.Board, game.CurrentPlayer)
	if len(moves) == 0 {
		return nil, apperror.ErrNoValidMoves
	}

	return moves, nil
}

func searchBestMove(game *entity.Game, depth int, prune bool) (entity.Position, error) {
	moves, err := openMoves(game)
	if err != nil {
		return entity.Position{}, err
	}

	mover := game.CurrentPlayer
	best := moves[0]
	bestScore := math.Inf(-1)

	for _, move := range moves {
		next := applyOnBoard(game.Board, mover, move)

		score := search(next, mover.Opponent(), mover, depth-1, math.Inf(-1), math.Inf(1), prune)
		if score > bestScore {
			bestScore = score
			best = move
		}
	}

	return best, nil
}

// search - fixed-depth game-tree walk. Boards are value types, so every node
// works on its own copy. A mover without legal moves passes without consuming
// depth twice; a terminal board scores by winner.
func search(board entity.Board, toMove, mover entity.Player, depth int, alpha, beta float64, prune bool) float64 {
	if reversi.Terminal(&board) {
		winner := reversi.Winner(&board)
		switch {
		case winner == nil:
			return 0
		case *winner == mover:
			return terminalScore
		default:
			return -terminalScore
		}
	}

	if depth == 0 {
		return evaluateBoard(&board, mover)
	}

	moves := reversi.LegalMoves(&board, toMove)
	if len(moves) == 0 {
		return search(board, toMove.Opponent(), mover, depth-1, alpha, beta, prune)
	}

	if toMove == mover {
		best := math.Inf(-1)
		for _, move := range moves {
			next := applyOnBoard(board, toMove, move)
			best = math.Max(best, search(next, toMove.Opponent(), mover, depth-1, alpha, beta, prune))
			if prune {
				alpha = math.Max(alpha, best)
				if beta <= alpha {
					break
				}
			}
		}
		return best
	}

	best := math.Inf(1)
	for _, move := range moves {
		next := applyOnBoard(board, toMove, move)
		best = math.Min(best, search(next, toMove.Opponent(), mover, depth-1, alpha, beta, prune))
		if prune {
			beta = math.Min(beta, best)
			if beta <= alpha {
				break
			}
		}
	}
	return best
}

// applyOnBoard - places and flips on a board copy without touching a move log.
func applyOnBoard(board entity.Board, player entity.Player, pos entity.Position) entity.Board {
	flipped := reversi.Flips(&board, player, pos)

	board.SetCell(pos, player.Cell())
	for _, flip := range flipped {
		board.SetCell(flip, player.Cell())
	}

	return board
}
