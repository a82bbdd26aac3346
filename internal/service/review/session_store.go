package review

import (
	"sync"

	"github.com/google/uuid"

	"github.com/BoneTheDeveloper/learning-newword-project/internal/domain/session"
)

// ActiveSessionStore holds live study sessions between requests. Sessions are
// ephemeral by design: only the summary row survives a restart, and a client
// whose session vanished simply starts a new one.
type ActiveSessionStore interface {
	// Put stores or replaces the session keyed by its ID.
	Put(s session.Session)

	// Get retrieves a session by ID. The boolean reports whether it exists.
	Get(id uuid.UUID) (session.Session, bool)

	// Delete removes a session. Deleting a missing session is a no-op.
	Delete(id uuid.UUID)
}

// InMemorySessionStore is a mutex-guarded map implementation of
// ActiveSessionStore, suitable for a single-process deployment.
type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]session.Session
}

// Ensure InMemorySessionStore implements ActiveSessionStore
var _ ActiveSessionStore = (*InMemorySessionStore)(nil)

// NewInMemorySessionStore creates an empty session store.
func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{
		sessions: make(map[uuid.UUID]session.Session),
	}
}

// Put implements ActiveSessionStore.Put
func (s *InMemorySessionStore) Put(sess session.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
}

// Get implements ActiveSessionStore.Get
func (s *InMemorySessionStore) Get(id uuid.UUID) (session.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// Delete implements ActiveSessionStore.Delete
func (s *InMemorySessionStore) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}
