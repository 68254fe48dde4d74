// Package session owns the games a process is running. The engine is
// single-threaded by contract, so the manager serializes every command
// through a per-game mutex: under concurrent callers exactly one
// command runs at a time and the rest wait their turn.
package session

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"lifedeck/internal/config"
	"lifedeck/internal/game"
)

var ErrNotFound = errors.New("session: game not found")

type entry struct {
	mu sync.Mutex
	g  *game.Game
}

// Manager holds live games keyed by id.
type Manager struct {
	mu       sync.RWMutex
	games    map[string]*entry
	recorder game.Recorder
}

func NewManager(recorder game.Recorder) *Manager {
	return &Manager{
		games:    map[string]*entry{},
		recorder: recorder,
	}
}

// Create builds and registers a new game. A zero seed means a
// non-deterministic game.
func (m *Manager) Create(cfg *config.Config, seed int64) (game.Snapshot, error) {
	opts := game.Options{
		Config:   cfg,
		Recorder: m.recorder,
	}
	if seed != 0 {
		opts.RNG = rand.New(rand.NewSource(seed))
	}
	g, err := game.New(opts)
	if err != nil {
		return game.Snapshot{}, err
	}

	m.mu.Lock()
	m.games[g.ID()] = &entry{g: g}
	m.mu.Unlock()
	return g.Snapshot(), nil
}

// Adopt registers an existing game (e.g. restored from disk),
// replacing any registered game with the same id.
func (m *Manager) Adopt(g *game.Game) {
	m.mu.Lock()
	m.games[g.ID()] = &entry{g: g}
	m.mu.Unlock()
}

// Do runs fn against the game while holding its command lock.
// Everything a caller does to a game goes through here.
func (m *Manager) Do(id string, fn func(*game.Game) error) error {
	m.mu.RLock()
	e, ok := m.games[id]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.g)
}

// SnapshotOf returns a deep copy of the game's state.
func (m *Manager) SnapshotOf(id string) (game.Snapshot, error) {
	var snap game.Snapshot
	err := m.Do(id, func(g *game.Game) error {
		snap = g.Snapshot()
		return nil
	})
	return snap, err
}

// IDs lists registered game ids.
func (m *Manager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.games))
	for id := range m.games {
		out = append(out, id)
	}
	return out
}

// Remove drops a game from the manager.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	delete(m.games, id)
	m.mu.Unlock()
}
