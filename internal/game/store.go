// internal/game/store.go
package game

import (
	"sync"

	"github.com/LeonLav77/photoroullete-backend/internal/models"
)

// imagePool accumulates turned-over images for one lobby while the collection
// phase runs. Entries are add-if-absent keyed by image content: a duplicate
// blob stays attributed to whoever turned it over first.
type imagePool struct {
	owners  map[string]string
	ordered []models.ImageAssignment
}

func newImagePool() *imagePool {
	return &imagePool{owners: make(map[string]string)}
}

func (p *imagePool) add(image, ownerID string) bool {
	if _, exists := p.owners[image]; exists {
		return false
	}
	p.owners[image] = ownerID
	p.ordered = append(p.ordered, models.ImageAssignment{Image: image, OwnerID: ownerID})
	return true
}

// Store owns every in-play session and every in-progress image collection,
// keyed by lobby code. Constructed once at process start; all access goes
// through the one shared instance.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	pending  map[string]*imagePool
}

// NewStore initializes an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
		pending:  make(map[string]*imagePool),
	}
}

// AddImages records a batch of turned-over images for a lobby and returns the
// pool size afterwards. Resubmitted image content is silently dropped.
func (s *Store) AddImages(code, ownerID string, images []string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	pool, ok := s.pending[code]
	if !ok {
		pool = newImagePool()
		s.pending[code] = pool
	}
	for _, img := range images {
		pool.add(img, ownerID)
	}
	return len(pool.ordered)
}

// PoolEntries returns the first limit collected assignments for a lobby, in
// collection order.
func (s *Store) PoolEntries(code string, limit int) []models.ImageAssignment {
	s.mu.Lock()
	defer s.mu.Unlock()
	pool, ok := s.pending[code]
	if !ok {
		return nil
	}
	if limit > len(pool.ordered) {
		limit = len(pool.ordered)
	}
	entries := make([]models.ImageAssignment, limit)
	copy(entries, pool.ordered[:limit])
	return entries
}

// AddSessionIfAbsent registers a session unless one already exists for its
// lobby code. Two image batches racing past the collection threshold both try
// to materialize the session; exactly one wins.
func (s *Store) AddSessionIfAbsent(session *Session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[session.Code]; exists {
		return false
	}
	s.sessions[session.Code] = session
	return true
}

// GetSession resolves the in-play session for a lobby code.
func (s *Store) GetSession(code string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[code]
	return sess, ok
}

// DeleteSession evicts a finished session and its collected image pool.
func (s *Store) DeleteSession(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, code)
	delete(s.pending, code)
}
