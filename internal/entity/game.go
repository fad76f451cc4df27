package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusInProgress GameStatus = "in_progress"
	StatusPaused     GameStatus = "paused"
	StatusFinished   GameStatus = "finished"
)

// GameStatus is the progress state of a game. Allowed transitions are
// InProgress <-> Paused and InProgress/Paused -> Finished; a finished game
// never leaves that state.
type GameStatus string

// Move is one applied placement with the set of captured positions.
type Move struct {
	Player    Player     `json:"player"`
	Position  Position   `json:"position"`
	Flipped   []Position `json:"flipped"`
	Timestamp time.Time  `json:"timestamp"`
}

// Score is a piece tally for both players.
type Score struct {
	Black int `json:"black"`
	White int `json:"white"`
}

// Game holds the full state of one reversi game: board, current mover,
// progress status and the ordered move log.
type Game struct {
	ID            uuid.UUID  `json:"id"`
	Board         Board      `json:"board"`
	CurrentPlayer Player     `json:"current_player"`
	Status        GameStatus `json:"status"`
	Winner        *Player    `json:"winner,omitempty"`
	FinalScore    *Score     `json:"final_score,omitempty"`
	Moves         []Move     `json:"moves"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// NewGame - returns a fresh game: standard board, black to move.
func NewGame() *Game {
	now := time.Now().UTC()

	return &Game{
		ID:            uuid.New(),
		Board:         NewBoard(),
		CurrentPlayer: PlayerBlack,
		Status:        StatusInProgress,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsPaused() bool {
	return that.Status == StatusPaused
}

func (that *Game) IsInProgress() bool {
	return that.Status == StatusInProgress
}

// SwitchPlayer - hands the turn to the other mover. Callers invoke it
// explicitly after each applied move; applying a move does not switch.
func (that *Game) SwitchPlayer() {
	that.CurrentPlayer = that.CurrentPlayer.Opponent()
	that.UpdatedAt = time.Now().UTC()
}

// AddMove - appends a move to the ordered log.
func (that *Game) AddMove(move Move) {
	that.Moves = append(that.Moves, move)
	that.UpdatedAt = time.Now().UTC()
}

// Pause - suspends an in-progress game; any other state is left untouched.
func (that *Game) Pause() {
	if that.Status != StatusInProgress {
		return
	}

	that.Status = StatusPaused
	that.UpdatedAt = time.Now().UTC()
}

// Resume - continues a paused game; any other state is left untouched.
func (that *Game) Resume() {
	if that.Status != StatusPaused {
		return
	}

	that.Status = StatusInProgress
	that.UpdatedAt = time.Now().UTC()
}

// Finish - ends the game, recording the winner and the final tally.
// A nil winner means an exact tie. Finishing a finished game is a no-op.
func (that *Game) Finish(winner *Player) {
	if that.IsFinished() {
		return
	}

	black, white := that.Board.Tally()

	that.Status = StatusFinished
	that.Winner = winner
	that.FinalScore = &Score{Black: black, White: white}
	that.UpdatedAt = time.Now().UTC()
}

func (that *Game) Score() (black, white int) {
	return that.Board.Tally()
}

func (that *Game) MoveCount() int {
	return len(that.Moves)
}

// Clone - returns an independent copy, including the move log.
func (that *Game) Clone() *Game {
	cloned := *that

	if that.Moves != nil {
		cloned.Moves = make([]Move, len(that.Moves))
		for i, move := range that.Moves {
			cloned.Moves[i] = move
			if move.Flipped != nil {
				cloned.Moves[i].Flipped = append([]Position(nil), move.Flipped...)
			}
		}
	}

	if that.Winner != nil {
		winner := *that.Winner
		cloned.Winner = &winner
	}

	if that.FinalScore != nil {
		score := *that.FinalScore
		cloned.FinalScore = &score
	}

	return &cloned
}
