// internal/store/session.go
//
// Session wraps a single game.Engine behind a mutex so that every game
// has exactly one writer at a time.
//
// Characteristics:
//   - Apply/Status/View serialize on the same lock.
//   - Each session gets a UUID for log correlation.
//   - FinishedAt is stamped by the move that ends the game.

package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/atugushev-dev/gravitrips/internal/game"
)

// Session is one game plus its bookkeeping.
type Session struct {
	ID        string    // Random UUID.
	CreatedAt time.Time // When the session was created.

	mu         sync.Mutex
	engine     *game.Engine
	finishedAt time.Time
}

// NewSession validates cfg and starts a fresh game.
func NewSession(cfg game.Config) (*Session, error) {
	e, err := game.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		engine:    e,
	}, nil
}

// Apply forwards to game.Engine.ApplyMove under the session lock.
func (s *Session) Apply(column int) (game.Move, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.engine.ApplyMove(column)
	if err != nil {
		log.Debug().Err(err).Str("session", s.ID).Int("column", column).Msg("move rejected")
		return m, err
	}
	log.Debug().
		Str("session", s.ID).
		Int("column", m.Column).
		Int("row", m.Row).
		Int("player", int(m.Player)).
		Msg("move applied")
	if m.GameOver {
		s.finishedAt = time.Now().UTC()
		st := s.engine.Status()
		log.Info().
			Str("session", s.ID).
			Stringer("state", st.State).
			Int("player", int(st.Player)).
			Int("turns", s.engine.Turn()).
			Msg("game finished")
	}
	return m, nil
}

// Status forwards to game.Engine.Status under the session lock.
func (s *Session) Status() game.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Status()
}

// View runs fn with the engine while holding the lock. fn must only read.
func (s *Session) View(fn func(e *game.Engine)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.engine)
}

// FinishedAt returns when the game ended, or the zero time if it has not.
func (s *Session) FinishedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finishedAt
}
