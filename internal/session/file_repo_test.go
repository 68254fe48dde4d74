package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifedeck/internal/config"
	"lifedeck/internal/game"
)

func newSnapshot(t *testing.T) game.Snapshot {
	t.Helper()
	g, err := game.New(game.Options{Config: config.Default()})
	require.NoError(t, err)
	require.NoError(t, g.Start())
	return g.Snapshot()
}

func TestFileRepo_SaveLoadRoundtrip(t *testing.T) {
	repo, err := NewFileRepo(t.TempDir())
	require.NoError(t, err)

	snap := newSnapshot(t)
	require.NoError(t, repo.Save(snap))

	loaded, err := repo.Load(snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, loaded.ID)
	assert.Equal(t, snap.Vitality, loaded.Vitality)
	assert.Equal(t, len(snap.Hand), len(loaded.Hand))
	assert.Equal(t, snap.Config.Difficulty, loaded.Config.Difficulty)

	// A loaded snapshot restores into a playable game.
	restored, err := game.Restore(loaded, game.Options{})
	require.NoError(t, err)
	assert.Equal(t, game.StatusInProgress, restored.Status())
}

func TestFileRepo_LoadMissing(t *testing.T) {
	repo, err := NewFileRepo(t.TempDir())
	require.NoError(t, err)

	_, err = repo.Load("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileRepo_RejectsPathTraversal(t *testing.T) {
	repo, err := NewFileRepo(t.TempDir())
	require.NoError(t, err)

	_, err = repo.Load("../escape")
	assert.Error(t, err)
	assert.Error(t, repo.Save(game.Snapshot{ID: "a/b"}))
	assert.Error(t, repo.Delete(""))
}

func TestFileRepo_ListAndDelete(t *testing.T) {
	repo, err := NewFileRepo(t.TempDir())
	require.NoError(t, err)

	a := newSnapshot(t)
	b := newSnapshot(t)
	require.NoError(t, repo.Save(a))
	require.NoError(t, repo.Save(b))

	ids, err := repo.List()
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.Contains(t, ids, a.ID)
	assert.Contains(t, ids, b.ID)

	require.NoError(t, repo.Delete(a.ID))
	require.NoError(t, repo.Delete(a.ID), "deleting a missing save is a no-op")

	ids, err = repo.List()
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, ids)
}

func TestFileRepo_SaveOverwrites(t *testing.T) {
	repo, err := NewFileRepo(t.TempDir())
	require.NoError(t, err)

	snap := newSnapshot(t)
	require.NoError(t, repo.Save(snap))

	snap.Vitality = 42
	require.NoError(t, repo.Save(snap))

	loaded, err := repo.Load(snap.ID)
	require.NoError(t, err)
	assert.Equal(t, 42, loaded.Vitality)

	ids, err := repo.List()
	require.NoError(t, err)
	assert.Len(t, ids, 1)
}
