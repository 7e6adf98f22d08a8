// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// It keeps every session played during one process run so the front ends
// can offer rematches and print a scoreboard at the end.
//
// Characteristics:
//   - Stores *Session objects keyed by ID in a map, remembering insertion order.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process exits; nothing is written to disk.
//   - Errors are returned for missing session IDs on Get().

package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/atugushev-dev/gravitrips/internal/game"
)

// ErrNotFound is returned by Get for an unknown session ID.
var ErrNotFound = errors.New("session not found")

// Store defines the lookup interface for game sessions.
type Store interface {
	// Save adds or replaces a session.
	Save(ctx context.Context, s *Session) error

	// Get retrieves a session by ID.
	// Returns ErrNotFound if the session is unknown.
	Get(ctx context.Context, id string) (*Session, error)

	// List returns all sessions in the order they were first saved.
	List(ctx context.Context) ([]*Session, error)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex        // guards sessions and order
	sessions map[string]*Session // keyed by Session.ID
	order    []string
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*Session)}
}

// Save adds or updates the session in the map.
func (m *memory) Save(ctx context.Context, s *Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[s.ID]; !ok {
		m.order = append(m.order, s.ID)
	}
	m.sessions[s.ID] = s
	return nil
}

// Get looks up a session by ID.
func (m *memory) Get(ctx context.Context, id string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("get %q: %w", id, ErrNotFound)
}

// List returns a snapshot of all sessions, oldest first.
func (m *memory) List(ctx context.Context) ([]*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Session, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.sessions[id])
	}
	return out, nil
}

// Scoreboard summarises finished sessions.
type Scoreboard struct {
	Games      int                   // Finished games.
	Draws      int                   // Games that ended in a draw.
	Wins       map[game.PlayerID]int // Wins per player.
	Unfinished int                   // Sessions abandoned mid-game.
}

// Tally builds a Scoreboard over every session in st.
func Tally(ctx context.Context, st Store) (Scoreboard, error) {
	sessions, err := st.List(ctx)
	if err != nil {
		return Scoreboard{}, fmt.Errorf("tally: %w", err)
	}
	sb := Scoreboard{Wins: make(map[game.PlayerID]int)}
	for _, s := range sessions {
		switch status := s.Status(); status.State {
		case game.StateWon:
			sb.Games++
			sb.Wins[status.Player]++
		case game.StateDraw:
			sb.Games++
			sb.Draws++
		default:
			sb.Unfinished++
		}
	}
	return sb, nil
}
