package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"lifedeck/internal/game"
)

// FileRepo persists game snapshots as JSON files under a data dir.
// Save/load is layered on snapshots; it never reaches into a live game.
type FileRepo struct {
	mu  sync.Mutex
	dir string
}

func NewFileRepo(dataDir string) (*FileRepo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	return &FileRepo{dir: dataDir}, nil
}

func (r *FileRepo) path(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.ContainsAny(id, "/\\") {
		return "", fmt.Errorf("session: invalid game id %q", id)
	}
	return filepath.Join(r.dir, id+".json"), nil
}

// Save writes a snapshot, replacing any previous save for the game.
func (r *FileRepo) Save(snap game.Snapshot) error {
	p, err := r.path(snap.ID)
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return os.WriteFile(p, b, 0o644)
}

// Load reads a saved snapshot.
func (r *FileRepo) Load(id string) (game.Snapshot, error) {
	p, err := r.path(id)
	if err != nil {
		return game.Snapshot{}, err
	}
	r.mu.Lock()
	b, err := os.ReadFile(p)
	r.mu.Unlock()
	if err != nil {
		if os.IsNotExist(err) {
			return game.Snapshot{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return game.Snapshot{}, err
	}
	var snap game.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return game.Snapshot{}, err
	}
	return snap, nil
}

// List returns saved game ids in stable order.
func (r *FileRepo) List() ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, err
	}
	ids := []string{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

// Delete removes a saved game. Missing saves are a no-op.
func (r *FileRepo) Delete(id string) error {
	p, err := r.path(id)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
