package store

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atugushev-dev/gravitrips/internal/game"
)

func newSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession(game.DefaultConfig())
	require.NoError(t, err)
	return s
}

func applyAll(t *testing.T, s *Session, columns ...int) {
	t.Helper()
	for _, c := range columns {
		_, err := s.Apply(c)
		require.NoError(t, err)
	}
}

func TestNewSession(t *testing.T) {
	s := newSession(t)
	_, err := uuid.Parse(s.ID)
	assert.NoError(t, err)
	assert.False(t, s.CreatedAt.IsZero())
	assert.True(t, s.FinishedAt().IsZero())
	assert.Equal(t, game.StateInProgress, s.Status().State)

	_, err = NewSession(game.Config{Rows: 6, Columns: 7, Players: 1, PiecesToWin: 4})
	var cfgErr *game.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestSessionStampsFinish(t *testing.T) {
	s := newSession(t)
	applyAll(t, s, 0, 1, 0, 1, 0, 1)
	assert.True(t, s.FinishedAt().IsZero())

	m, err := s.Apply(0)
	require.NoError(t, err)
	assert.True(t, m.GameOver)
	assert.False(t, s.FinishedAt().IsZero())

	_, err = s.Apply(2)
	assert.ErrorIs(t, err, game.ErrGameOver)
}

func TestSessionView(t *testing.T) {
	s := newSession(t)
	applyAll(t, s, 3)

	var cell game.CellView
	s.View(func(e *game.Engine) { cell = e.Cell(3, 0) })
	assert.Equal(t, game.CellView{Kind: game.CellOwned, Player: 0}, cell)
}

func TestSessionSerializesWriters(t *testing.T) {
	s, err := NewSession(game.Config{Rows: 50, Columns: 10, Players: 2, PiecesToWin: 100})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for w := 0; w < 10; w++ {
		wg.Add(1)
		go func(column int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				_, err := s.Apply(column)
				assert.NoError(t, err)
			}
		}(w)
	}
	wg.Wait()

	s.View(func(e *game.Engine) {
		assert.Equal(t, 500, e.Turn())
		for c := 0; c < 10; c++ {
			assert.Equal(t, 50, e.FillLevel(c))
		}
	})
	assert.Equal(t, game.StateDraw, s.Status().State)
}

func TestMemoryStoreSaveGetList(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	a, b := newSession(t), newSession(t)
	require.NoError(t, st.Save(ctx, a))
	require.NoError(t, st.Save(ctx, b))
	require.NoError(t, st.Save(ctx, a))

	got, err := st.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Same(t, b, got)

	_, err = st.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := st.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Same(t, a, all[0])
	assert.Same(t, b, all[1])
}

func TestMemoryStoreHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st := NewMemoryStore()
	assert.ErrorIs(t, st.Save(ctx, newSession(t)), context.Canceled)
	_, err := st.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTally(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	wonByA := newSession(t)
	applyAll(t, wonByA, 0, 1, 0, 1, 0, 1, 0)

	wonByB := newSession(t)
	applyAll(t, wonByB, 6, 0, 1, 0, 1, 0, 1, 0)

	draw, err := NewSession(game.Config{Rows: 2, Columns: 2, Players: 2, PiecesToWin: 3})
	require.NoError(t, err)
	applyAll(t, draw, 0, 0, 1, 1)

	open := newSession(t)
	applyAll(t, open, 3)

	for _, s := range []*Session{wonByA, wonByB, draw, open} {
		require.NoError(t, st.Save(ctx, s))
	}

	sb, err := Tally(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, 3, sb.Games)
	assert.Equal(t, 1, sb.Draws)
	assert.Equal(t, 1, sb.Unfinished)
	assert.Equal(t, map[game.PlayerID]int{0: 1, 1: 1}, sb.Wins)
}
