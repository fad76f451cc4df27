package rest

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/reversi-backend/internal/entity"
	"github.com/rocketscienceinc/reversi-backend/internal/registry"
	"github.com/rocketscienceinc/reversi-backend/internal/reversi"
)

type createBattleRequest struct {
	Difficulty string `json:"difficulty"`
}

type moveRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type changeDifficultyRequest struct {
	Difficulty string `json:"difficulty"`
}

// sessionResponse is the full view of one battle: board as an 8x8 grid of
// nullable colors, tallies, valid moves for the current mover.
type sessionResponse struct {
	GameID        uuid.UUID         `json:"game_id"`
	Board         [][]*string       `json:"board"`
	CurrentPlayer entity.Player     `json:"current_player"`
	BlackCount    int               `json:"black_count"`
	WhiteCount    int               `json:"white_count"`
	Difficulty    entity.Difficulty `json:"difficulty"`
	Thinking      bool              `json:"opponent_thinking"`
	Status        entity.GameStatus `json:"status"`
	Winner        *entity.Player    `json:"winner,omitempty"`
	ValidMoves    []entity.Position `json:"valid_moves"`
	MoveCount     int               `json:"move_count"`
	CreatedAt     time.Time         `json:"created_at"`
	LastActivity  time.Time         `json:"last_activity_at"`
}

func newSessionResponse(session *entity.Session) sessionResponse {
	board := make([][]*string, entity.BoardSize)
	for row := range board {
		board[row] = make([]*string, entity.BoardSize)
		for col := range board[row] {
			cell := session.Game.Board.Cells[row][col]
			if cell != entity.CellEmpty {
				color := string(cell)
				board[row][col] = &color
			}
		}
	}

	validMoves := []entity.Position{}
	if !session.Game.IsFinished() {
		validMoves = append(validMoves, reversi.LegalMoves(&session.Game.Board, session.Game.CurrentPlayer)...)
	}

	black, white := session.Game.Score()

	return sessionResponse{
		GameID:        session.ID,
		Board:         board,
		CurrentPlayer: session.Game.CurrentPlayer,
		BlackCount:    black,
		WhiteCount:    white,
		Difficulty:    session.Difficulty,
		Thinking:      session.Thinking,
		Status:        session.Game.Status,
		Winner:        session.Game.Winner,
		ValidMoves:    validMoves,
		MoveCount:     session.Game.MoveCount(),
		CreatedAt:     session.CreatedAt,
		LastActivity:  session.LastActivityAt,
	}
}

type moveResponse struct {
	GameState    sessionResponse  `json:"game_state"`
	PlayerMove   entity.Position  `json:"player_move"`
	OpponentMove *entity.Position `json:"opponent_move,omitempty"`
}

type sessionSummary struct {
	GameID       uuid.UUID         `json:"game_id"`
	Difficulty   entity.Difficulty `json:"difficulty"`
	Status       entity.GameStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	LastActivity time.Time         `json:"last_activity_at"`
	MoveCount    int               `json:"move_count"`
}

type sessionListResponse struct {
	Sessions      []sessionSummary          `json:"sessions"`
	TotalCount    int                       `json:"total_count"`
	MaxSessions   int                       `json:"max_sessions"`
	ThinkingCount int                       `json:"thinking_count"`
	ByDifficulty  map[entity.Difficulty]int `json:"by_difficulty"`
}

func newSessionListResponse(sessions []*entity.Session, stats registry.Stats) sessionListResponse {
	summaries := make([]sessionSummary, 0, len(sessions))
	for _, session := range sessions {
		summaries = append(summaries, sessionSummary{
			GameID:       session.ID,
			Difficulty:   session.Difficulty,
			Status:       session.Game.Status,
			CreatedAt:    session.CreatedAt,
			LastActivity: session.LastActivityAt,
			MoveCount:    session.Game.MoveCount(),
		})
	}

	return sessionListResponse{
		Sessions:      summaries,
		TotalCount:    stats.Total,
		MaxSessions:   stats.MaxSessions,
		ThinkingCount: stats.ThinkingCount,
		ByDifficulty:  stats.ByDifficulty,
	}
}

type moveRecordView struct {
	Player         entity.Player   `json:"player"`
	Position       entity.Position `json:"position"`
	Timestamp      time.Time       `json:"timestamp"`
	ThinkingTimeMS int64           `json:"thinking_time_ms,omitempty"`
}

type historyResponse struct {
	GameID     uuid.UUID        `json:"game_id"`
	Moves      []moveRecordView `json:"moves"`
	TotalMoves int              `json:"total_moves"`
}

func newHistoryResponse(id uuid.UUID, records []entity.MoveRecord) historyResponse {
	moves := make([]moveRecordView, 0, len(records))
	for _, record := range records {
		moves = append(moves, moveRecordView{
			Player:         record.Player,
			Position:       record.Position,
			Timestamp:      record.Timestamp,
			ThinkingTimeMS: record.ThinkingTime.Milliseconds(),
		})
	}

	return historyResponse{
		GameID:     id,
		Moves:      moves,
		TotalMoves: len(moves),
	}
}

type difficultyInfo struct {
	ID          entity.Difficulty `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
}

type difficultiesResponse struct {
	Difficulties []difficultyInfo `json:"difficulties"`
}

func newDifficultiesResponse() difficultiesResponse {
	var infos []difficultyInfo
	for _, difficulty := range entity.Difficulties() {
		name := strings.ToUpper(string(difficulty)[:1]) + string(difficulty)[1:]
		infos = append(infos, difficultyInfo{
			ID:          difficulty,
			Name:        name,
			Description: difficulty.Description(),
		})
	}

	return difficultiesResponse{Difficulties: infos}
}

type errorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	ErrorCode string    `json:"error_code"`
	Timestamp time.Time `json:"timestamp"`
}
