package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/reversi-backend/internal/apperror"
	"github.com/rocketscienceinc/reversi-backend/internal/entity"
	"github.com/rocketscienceinc/reversi-backend/internal/registry"
	"github.com/rocketscienceinc/reversi-backend/internal/reversi"
)

type archiveRepo interface {
	Save(ctx context.Context, session *entity.Session) error
}

// MoveOutcome is the result of one human move: the updated session, and the
// opponent's reply when one was produced.
type MoveOutcome struct {
	Session      *entity.Session
	PlayerMove   entity.Position
	OpponentMove *entity.Position
}

// BattleService orchestrates human-versus-opponent battles over the session
// registry: it applies human moves, drives the opponent reply through the
// resolver and persists every step.
type BattleService struct {
	logger   *slog.Logger
	registry *registry.Registry
	resolver *MoveResolver
	archive  archiveRepo
}

func NewBattleService(logger *slog.Logger, reg *registry.Registry, resolver *MoveResolver, archive archiveRepo) *BattleService {
	return &BattleService{
		logger:   logger,
		registry: reg,
		resolver: resolver,
		archive:  archive,
	}
}

func (that *BattleService) CreateBattle(difficulty entity.Difficulty) (*entity.Session, error) {
	session, err := that.registry.Create(difficulty)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

func (that *BattleService) GetSession(id uuid.UUID) (*entity.Session, error) {
	session, err := that.registry.Get(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

func (that *BattleService) ListSessions() ([]*entity.Session, registry.Stats) {
	return that.registry.List(), that.registry.Stats()
}

func (that *BattleService) DeleteSession(id uuid.UUID) error {
	if err := that.registry.Remove(id); err != nil {
		return fmt.Errorf("failed to remove session: %w", err)
	}

	return nil
}

// History - the ordered per-move log with thinking-time annotations.
func (that *BattleService) History(id uuid.UUID) ([]entity.MoveRecord, error) {
	session, err := that.registry.Get(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session.Records, nil
}

// ChangeDifficulty - switches the opponent tier, refused while a reply is in
// flight.
func (that *BattleService) ChangeDifficulty(id uuid.UUID, difficulty entity.Difficulty) (*entity.Session, error) {
	session, err := that.registry.Get(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if session.Thinking {
		return nil, apperror.ErrOpponentBusy
	}

	session.Difficulty = difficulty
	session.Touch()

	if err = that.registry.Update(session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	return session, nil
}

// OpponentHealth - health check of the primary opponent adapter.
func (that *BattleService) OpponentHealth(ctx context.Context) (*OpponentStatus, error) {
	return that.resolver.HealthCheck(ctx)
}

// MakeMove - the per-move transaction: validate and apply the human move,
// advance the turn, then drive the opponent reply under the thinking flag.
// Replies repeat while the human is forced to pass, so the call always
// returns with the human to move or the game finished. A legal human move is
// never rolled back, even when the opponent fails.
func (that *BattleService) MakeMove(ctx context.Context, id uuid.UUID, pos entity.Position) (*MoveOutcome, error) {
	log := that.logger.With("method", "MakeMove", "sessionID", id)

	session, err := that.registry.Get(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if session.Game.IsFinished() {
		return nil, apperror.ErrGameFinished
	}

	if !session.IsPlayerTurn() {
		return nil, apperror.ErrNotYourTurn
	}

	if session.Thinking {
		return nil, apperror.ErrOpponentBusy
	}

	if _, err = reversi.Apply(session.Game, pos); err != nil {
		return nil, fmt.Errorf("failed to apply move: %w", err)
	}

	session.AddRecord(entity.MoveRecord{
		Player:    entity.PlayerBlack,
		Position:  pos,
		Timestamp: time.Now().UTC(),
	})

	session.Game.SwitchPlayer()
	reversi.AdvanceTurn(session.Game)

	if session.Game.IsFinished() {
		if err = that.registry.Update(session); err != nil {
			return nil, fmt.Errorf("failed to update session: %w", err)
		}
		that.archiveFinished(ctx, session)

		return &MoveOutcome{Session: session, PlayerMove: pos}, nil
	}

	// Pass-back: the opponent had no legal reply and the turn returned to
	// the human.
	if session.IsPlayerTurn() {
		if err = that.registry.Update(session); err != nil {
			return nil, fmt.Errorf("failed to update session: %w", err)
		}

		return &MoveOutcome{Session: session, PlayerMove: pos}, nil
	}

	session.Thinking = true
	if err = that.registry.Update(session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	var opponentPos *entity.Position
	for {
		opponentPos, err = that.opponentReply(ctx, session)
		if err != nil {
			break
		}

		if session.Game.IsFinished() || session.IsPlayerTurn() {
			break
		}
	}

	session.Thinking = false
	session.Touch()

	if updateErr := that.registry.Update(session); updateErr != nil {
		return nil, fmt.Errorf("failed to update session: %w", updateErr)
	}

	if err != nil {
		log.Error("opponent failed to reply", "error", err)
		return nil, err
	}

	if session.Game.IsFinished() {
		that.archiveFinished(ctx, session)
	}

	return &MoveOutcome{Session: session, PlayerMove: pos, OpponentMove: opponentPos}, nil
}

// opponentReply - resolves and applies the opponent's move on the session
// copy. The caller persists the session afterwards on both paths.
func (that *BattleService) opponentReply(ctx context.Context, session *entity.Session) (*entity.Position, error) {
	move, err := that.resolver.Resolve(ctx, session.Game, session.Difficulty)
	if err != nil {
		return nil, err
	}

	if _, err = reversi.Apply(session.Game, move.Position); err != nil {
		return nil, fmt.Errorf("failed to apply opponent move: %w", err)
	}

	session.AddRecord(entity.MoveRecord{
		Player:       entity.PlayerWhite,
		Position:     move.Position,
		Timestamp:    time.Now().UTC(),
		ThinkingTime: move.ThinkingTime,
	})

	session.Game.SwitchPlayer()
	reversi.AdvanceTurn(session.Game)

	return &move.Position, nil
}

// archiveFinished - best effort: an archive failure never fails the move.
func (that *BattleService) archiveFinished(ctx context.Context, session *entity.Session) {
	if that.archive == nil {
		return
	}

	log := that.logger.With("method", "archiveFinished", "sessionID", session.ID)

	if err := that.archive.Save(ctx, session); err != nil {
		log.Error("failed to archive finished game", "error", err)
		return
	}

	log.Info("finished game archived")
}
