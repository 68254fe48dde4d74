package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifedeck/internal/config"
	"lifedeck/internal/game"
)

func TestManager_CreateAndSnapshot(t *testing.T) {
	m := NewManager(nil)

	snap, err := m.Create(config.Default(), 42)
	require.NoError(t, err)
	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, game.StatusNotStarted, snap.Status)

	got, err := m.SnapshotOf(snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, got.ID)

	assert.Contains(t, m.IDs(), snap.ID)
}

func TestManager_SeededGamesAreIdentical(t *testing.T) {
	m := NewManager(nil)

	a, err := m.Create(config.Default(), 7)
	require.NoError(t, err)
	b, err := m.Create(config.Default(), 7)
	require.NoError(t, err)

	start := func(id string) {
		require.NoError(t, m.Do(id, func(g *game.Game) error { return g.Start() }))
	}
	start(a.ID)
	start(b.ID)

	sa, err := m.SnapshotOf(a.ID)
	require.NoError(t, err)
	sb, err := m.SnapshotOf(b.ID)
	require.NoError(t, err)

	require.Len(t, sb.Hand, len(sa.Hand))
	for i := range sa.Hand {
		assert.Equal(t, sa.Hand[i].Name, sb.Hand[i].Name, "same seed deals the same hand")
	}
}

func TestManager_DoUnknownGame(t *testing.T) {
	m := NewManager(nil)
	err := m.Do("ghost", func(g *game.Game) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_Remove(t *testing.T) {
	m := NewManager(nil)
	snap, err := m.Create(config.Default(), 1)
	require.NoError(t, err)

	m.Remove(snap.ID)
	_, err = m.SnapshotOf(snap.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_SerializesCommands(t *testing.T) {
	m := NewManager(nil)
	snap, err := m.Create(config.Default(), 1)
	require.NoError(t, err)
	require.NoError(t, m.Do(snap.ID, func(g *game.Game) error { return g.Start() }))

	// Hammer one game from many goroutines. The per-game lock must keep
	// every mutation sequential, so the final vitality is exact.
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Do(snap.ID, func(g *game.Game) error { return g.ApplyDamage(1) })
		}()
	}
	wg.Wait()

	got, err := m.SnapshotOf(snap.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, got.MaxVitality-got.Vitality)
}

func TestManager_Adopt(t *testing.T) {
	m := NewManager(nil)
	g, err := game.New(game.Options{Config: config.Default()})
	require.NoError(t, err)

	m.Adopt(g)
	got, err := m.SnapshotOf(g.ID())
	require.NoError(t, err)
	assert.Equal(t, g.ID(), got.ID)
}
