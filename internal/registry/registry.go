package registry

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/reversi-backend/internal/apperror"
	"github.com/rocketscienceinc/reversi-backend/internal/entity"
)

// Registry is the concurrent session store. Sessions are kept in a sync.Map
// with one lock per entry, so operations on different sessions never contend;
// the registry-wide mutex only guards the admission count.
type Registry struct {
	logger *slog.Logger

	sessions sync.Map // uuid.UUID -> *entry

	mu          sync.Mutex
	count       int
	maxSessions int
	idleTimeout time.Duration
}

type entry struct {
	mu      sync.Mutex
	session *entity.Session
	removed bool
}

// Stats is a point-in-time snapshot of the registry.
type Stats struct {
	Total         int
	MaxSessions   int
	ThinkingCount int
	ByDifficulty  map[entity.Difficulty]int
}

func New(logger *slog.Logger, maxSessions int, idleTimeout time.Duration) *Registry {
	return &Registry{
		logger:      logger,
		maxSessions: maxSessions,
		idleTimeout: idleTimeout,
	}
}

// Create - admits a new session unless the configured ceiling is reached.
// Returns an independent copy of the stored session.
func (that *Registry) Create(difficulty entity.Difficulty) (*entity.Session, error) {
	that.mu.Lock()
	if that.count >= that.maxSessions {
		that.mu.Unlock()
		return nil, fmt.Errorf("%w: max %d", apperror.ErrAdmissionDenied, that.maxSessions)
	}
	that.count++
	that.mu.Unlock()

	session := entity.NewSession(difficulty)
	that.sessions.Store(session.ID, &entry{session: session})

	return session.Clone(), nil
}

// Get - returns an independent copy of the session.
func (that *Registry) Get(id uuid.UUID) (*entity.Session, error) {
	ent, err := that.entry(id)
	if err != nil {
		return nil, err
	}

	ent.mu.Lock()
	defer ent.mu.Unlock()

	if ent.removed {
		return nil, fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	return ent.session.Clone(), nil
}

// Update - writes a mutated copy back. Fails if the session was removed
// concurrently, so a writer can never resurrect a swept session.
func (that *Registry) Update(session *entity.Session) error {
	ent, err := that.entry(session.ID)
	if err != nil {
		return err
	}

	ent.mu.Lock()
	defer ent.mu.Unlock()

	if ent.removed {
		return fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, session.ID)
	}

	ent.session = session.Clone()

	return nil
}

// Remove - deletes the session and frees one admission slot.
func (that *Registry) Remove(id uuid.UUID) error {
	value, ok := that.sessions.LoadAndDelete(id)
	if !ok {
		return fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	ent := value.(*entry)
	ent.mu.Lock()
	ent.removed = true
	ent.mu.Unlock()

	that.mu.Lock()
	that.count--
	that.mu.Unlock()

	return nil
}

// List - snapshot of all live sessions as independent copies.
func (that *Registry) List() []*entity.Session {
	var sessions []*entity.Session

	that.sessions.Range(func(_, value any) bool {
		ent := value.(*entry)

		ent.mu.Lock()
		if !ent.removed {
			sessions = append(sessions, ent.session.Clone())
		}
		ent.mu.Unlock()

		return true
	})

	return sessions
}

func (that *Registry) Count() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.count
}

// IdleSweep - removes every session idle for longer than the configured
// timeout and returns how many were removed.
func (that *Registry) IdleSweep() int {
	cutoff := time.Now().UTC().Add(-that.idleTimeout)

	var expired []uuid.UUID
	that.sessions.Range(func(key, value any) bool {
		ent := value.(*entry)

		ent.mu.Lock()
		if !ent.removed && ent.session.LastActivityAt.Before(cutoff) {
			expired = append(expired, key.(uuid.UUID))
		}
		ent.mu.Unlock()

		return true
	})

	removed := 0
	for _, id := range expired {
		if err := that.Remove(id); err == nil {
			removed++
		}
	}

	if removed > 0 {
		that.logger.Info("idle sessions removed", "count", removed)
	}

	return removed
}

// SetThinking - flips the advisory lock that blocks a second human move while
// an opponent reply is computing.
func (that *Registry) SetThinking(id uuid.UUID, thinking bool) error {
	ent, err := that.entry(id)
	if err != nil {
		return err
	}

	ent.mu.Lock()
	defer ent.mu.Unlock()

	if ent.removed {
		return fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	ent.session.Thinking = thinking

	return nil
}

func (that *Registry) IsThinking(id uuid.UUID) (bool, error) {
	ent, err := that.entry(id)
	if err != nil {
		return false, err
	}

	ent.mu.Lock()
	defer ent.mu.Unlock()

	if ent.removed {
		return false, fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	return ent.session.Thinking, nil
}

func (that *Registry) Stats() Stats {
	stats := Stats{
		MaxSessions:  that.maxSessions,
		ByDifficulty: make(map[entity.Difficulty]int),
	}

	that.sessions.Range(func(_, value any) bool {
		ent := value.(*entry)

		ent.mu.Lock()
		if !ent.removed {
			stats.Total++
			stats.ByDifficulty[ent.session.Difficulty]++
			if ent.session.Thinking {
				stats.ThinkingCount++
			}
		}
		ent.mu.Unlock()

		return true
	})

	return stats
}

func (that *Registry) entry(id uuid.UUID) (*entry, error) {
	value, ok := that.sessions.Load(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	return value.(*entry), nil
}
