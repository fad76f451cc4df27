package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rocketscienceinc/reversi-backend/internal/apperror"
	"github.com/rocketscienceinc/reversi-backend/internal/entity"
	"github.com/rocketscienceinc/reversi-backend/internal/service"
)

type handlers struct {
	logger        *slog.Logger
	battleService *service.BattleService
}

func newHandlers(logger *slog.Logger, battleService *service.BattleService) *handlers {
	return &handlers{
		logger:        logger.With("component", "rest"),
		battleService: battleService,
	}
}

func (that *handlers) createBattle(w http.ResponseWriter, r *http.Request) {
	var req createBattleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "request body must be valid JSON")
		return
	}

	difficulty, err := entity.ParseDifficulty(req.Difficulty)
	if err != nil {
		that.writeAppError(w, err)
		return
	}

	session, err := that.battleService.CreateBattle(difficulty)
	if err != nil {
		that.writeAppError(w, err)
		return
	}

	that.logger.Info("battle created", "sessionID", session.ID, "difficulty", difficulty)

	that.writeJSON(w, http.StatusCreated, newSessionResponse(session))
}

func (that *handlers) difficulties(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, http.StatusOK, newDifficultiesResponse())
}

func (that *handlers) listSessions(w http.ResponseWriter, _ *http.Request) {
	sessions, stats := that.battleService.ListSessions()

	that.writeJSON(w, http.StatusOK, newSessionListResponse(sessions, stats))
}

func (that *handlers) opponentHealth(w http.ResponseWriter, r *http.Request) {
	status, err := that.battleService.OpponentHealth(r.Context())
	if err != nil {
		that.writeAppError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, status)
}

func (that *handlers) getSession(w http.ResponseWriter, r *http.Request) {
	id, ok := that.sessionID(w, r)
	if !ok {
		return
	}

	session, err := that.battleService.GetSession(id)
	if err != nil {
		that.writeAppError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newSessionResponse(session))
}

func (that *handlers) makeMove(w http.ResponseWriter, r *http.Request) {
	id, ok := that.sessionID(w, r)
	if !ok {
		return
	}

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "request body must be valid JSON")
		return
	}

	pos, err := entity.NewPosition(req.Row, req.Col)
	if err != nil {
		that.writeAppError(w, err)
		return
	}

	outcome, err := that.battleService.MakeMove(r.Context(), id, pos)
	if err != nil {
		that.writeAppError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, moveResponse{
		GameState:    newSessionResponse(outcome.Session),
		PlayerMove:   outcome.PlayerMove,
		OpponentMove: outcome.OpponentMove,
	})
}

func (that *handlers) changeDifficulty(w http.ResponseWriter, r *http.Request) {
	id, ok := that.sessionID(w, r)
	if !ok {
		return
	}

	var req changeDifficultyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "request body must be valid JSON")
		return
	}

	difficulty, err := entity.ParseDifficulty(req.Difficulty)
	if err != nil {
		that.writeAppError(w, err)
		return
	}

	session, err := that.battleService.ChangeDifficulty(id, difficulty)
	if err != nil {
		that.writeAppError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newSessionResponse(session))
}

func (that *handlers) deleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := that.sessionID(w, r)
	if !ok {
		return
	}

	if err := that.battleService.DeleteSession(id); err != nil {
		that.writeAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) history(w http.ResponseWriter, r *http.Request) {
	id, ok := that.sessionID(w, r)
	if !ok {
		return
	}

	records, err := that.battleService.History(id)
	if err != nil {
		that.writeAppError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newHistoryResponse(id, records))
}

func (that *handlers) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		that.writeError(w, http.StatusBadRequest, "INVALID_SESSION_ID", "session id must be a valid UUID")
		return uuid.Nil, false
	}

	return id, true
}

// writeAppError - maps domain errors to HTTP statuses and stable error codes.
func (that *handlers) writeAppError(w http.ResponseWriter, err error) {
	var thinkingErr *apperror.OpponentThinkingError

	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		that.writeError(w, http.StatusNotFound, "SESSION_NOT_FOUND", err.Error())
	case errors.Is(err, apperror.ErrAdmissionDenied):
		that.writeError(w, http.StatusTooManyRequests, "MAX_SESSIONS_REACHED", err.Error())
	case errors.Is(err, apperror.ErrGameFinished):
		that.writeError(w, http.StatusConflict, "GAME_FINISHED", err.Error())
	case errors.Is(err, apperror.ErrNotYourTurn):
		that.writeError(w, http.StatusConflict, "NOT_YOUR_TURN", err.Error())
	case errors.Is(err, apperror.ErrOpponentBusy):
		that.writeError(w, http.StatusConflict, "OPPONENT_BUSY", err.Error())
	case errors.Is(err, apperror.ErrInvalidMove), errors.Is(err, entity.ErrPositionOutOfBounds):
		that.writeError(w, http.StatusBadRequest, "INVALID_MOVE", err.Error())
	case errors.Is(err, entity.ErrInvalidDifficulty):
		that.writeError(w, http.StatusBadRequest, "INVALID_DIFFICULTY", err.Error())
	case errors.As(err, &thinkingErr):
		that.writeError(w, http.StatusInternalServerError, "OPPONENT_THINKING_ERROR", err.Error())
	case errors.Is(err, apperror.ErrServiceUnavailable):
		that.writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", err.Error())
	default:
		that.logger.Error("unhandled error", "error", err)
		that.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

func (that *handlers) writeError(w http.ResponseWriter, status int, code, message string) {
	that.writeJSON(w, status, errorResponse{
		Error:     http.StatusText(status),
		Message:   message,
		ErrorCode: code,
		Timestamp: time.Now().UTC(),
	})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}
