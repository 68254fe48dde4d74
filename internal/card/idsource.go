package card

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDSource mints card and game ids. Injected so tests can substitute a
// deterministic source.
type IDSource interface {
	NewID(prefix string) string
}

// UUIDSource is the collision-resistant default.
type UUIDSource struct{}

func (UUIDSource) NewID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

// SeqSource mints sequential ids. Deterministic and test-friendly.
type SeqSource struct {
	mu sync.Mutex
	n  int
}

func (s *SeqSource) NewID(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s_%04d", prefix, s.n)
}
