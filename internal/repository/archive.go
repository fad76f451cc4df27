package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/reversi-backend/internal/entity"
)

var ErrArchivedGameNotFound = errors.New("archived game not found")

// ArchiveRepository persists finished battles, so their history outlives the
// in-memory session.
type ArchiveRepository interface {
	Save(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Session, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type dbArchive struct {
	client *redis.Client
}

func NewArchiveRepository(client *redis.Client) ArchiveRepository {
	return &dbArchive{
		client: client,
	}
}

func (that *dbArchive) Save(ctx context.Context, session *entity.Session) error {
	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("could not marshal session: %w", err)
	}

	archiveKey := "archive:" + session.ID.String()
	err = that.client.Set(ctx, archiveKey, sessionJSON, 0).Err()
	if err != nil {
		return fmt.Errorf("failed to set archived game: %w", err)
	}

	return nil
}

func (that *dbArchive) GetByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	archiveKey := "archive:" + id.String()

	response, err := that.client.Get(ctx, archiveKey).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrArchivedGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get archived game: %w", err)
	}

	var session entity.Session
	if err = json.Unmarshal([]byte(response), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

func (that *dbArchive) DeleteByID(ctx context.Context, id uuid.UUID) error {
	archiveKey := "archive:" + id.String()

	err := that.client.Del(ctx, archiveKey).Err()
	if err != nil {
		return fmt.Errorf("failed to delete archived game: %w", err)
	}

	return nil
}
