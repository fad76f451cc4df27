package entity

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var ErrInvalidDifficulty = errors.New("invalid difficulty")

// Difficulty is the closed three-level strength setting of the opponent.
type Difficulty string

func ParseDifficulty(raw string) (Difficulty, error) {
	switch Difficulty(strings.ToLower(raw)) {
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyMedium:
		return DifficultyMedium, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("%w: %q, valid options: easy, medium, hard", ErrInvalidDifficulty, raw)
	}
}

func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

func (that Difficulty) Valid() bool {
	return that == DifficultyEasy || that == DifficultyMedium || that == DifficultyHard
}

func (that Difficulty) Description() string {
	switch that {
	case DifficultyEasy:
		return "picks a reproducible pseudo-random legal move"
	case DifficultyMedium:
		return "fixed-depth minimax search"
	case DifficultyHard:
		return "alpha-beta search with a deeper horizon"
	default:
		return ""
	}
}

// MoveRecord annotates one applied move with the time the mover spent on it.
// ThinkingTime is zero for human moves.
type MoveRecord struct {
	Player       Player        `json:"player"`
	Position     Position      `json:"position"`
	Timestamp    time.Time     `json:"timestamp"`
	ThinkingTime time.Duration `json:"thinking_time,omitempty"`
}

// Session is one human-versus-opponent battle. It is exclusively owned by the
// session registry: callers get a copy, mutate it and write it back.
type Session struct {
	ID             uuid.UUID    `json:"id"`
	Game           *Game        `json:"game"`
	Difficulty     Difficulty   `json:"difficulty"`
	Thinking       bool         `json:"opponent_thinking"`
	Records        []MoveRecord `json:"records"`
	CreatedAt      time.Time    `json:"created_at"`
	LastActivityAt time.Time    `json:"last_activity_at"`
}

// NewSession - creates a session with a fresh game at the given difficulty.
func NewSession(difficulty Difficulty) *Session {
	now := time.Now().UTC()

	return &Session{
		ID:             uuid.New(),
		Game:           NewGame(),
		Difficulty:     difficulty,
		CreatedAt:      now,
		LastActivityAt: now,
	}
}

// IsPlayerTurn - reports whether the human (black) is the current mover.
func (that *Session) IsPlayerTurn() bool {
	return that.Game.CurrentPlayer == PlayerBlack
}

// IsOpponentTurn - reports whether the computer (white) is the current mover.
func (that *Session) IsOpponentTurn() bool {
	return that.Game.CurrentPlayer == PlayerWhite
}

// Touch - stamps the last-activity time used by the idle sweep.
func (that *Session) Touch() {
	that.LastActivityAt = time.Now().UTC()
}

// AddRecord - appends a thinking-time annotation and touches the session.
func (that *Session) AddRecord(record MoveRecord) {
	that.Records = append(that.Records, record)
	that.Touch()
}

// Clone - returns a fully independent copy of the session.
func (that *Session) Clone() *Session {
	cloned := *that
	cloned.Game = that.Game.Clone()

	if that.Records != nil {
		cloned.Records = append([]MoveRecord(nil), that.Records...)
	}

	return &cloned
}
