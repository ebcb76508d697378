package editing

import (
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"
)

// ErrNothingStaged rejects a save for a key with no staged edit.
var ErrNothingStaged = errors.New("editing: nothing staged for key")

// sessionTTL is how long an untouched session survives.
const sessionTTL = 2 * time.Hour

// Registry keeps one editing session per operator token in memory.
// Sessions are ephemeral by design: a restart loses staged-but-unsaved
// edits, committed rows live in the database.
type Registry struct {
	mu       sync.Mutex
	db       *gorm.DB
	sessions map[string]*Session
}

// NewRegistry creates an empty session registry.
func NewRegistry(conn *gorm.DB) *Registry {
	return &Registry{db: conn, sessions: make(map[string]*Session)}
}

// Get returns the session for a token, creating it on first use. Expired
// sessions are swept opportunistically on access.
func (r *Registry) Get(token, owner string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for key, session := range r.sessions {
		if session.idle(now) > sessionTTL {
			delete(r.sessions, key)
		}
	}

	session, ok := r.sessions[token]
	if !ok {
		session = NewSession(r.db, owner)
		r.sessions[token] = session
	}
	return session
}

// Drop removes a session, e.g. on logout.
func (r *Registry) Drop(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
}
