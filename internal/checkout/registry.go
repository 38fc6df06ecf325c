package checkout

import (
	"sync"

	"github.com/google/uuid"
)

// Registry holds one checkout session per operator. Sessions are created
// on first use and live for the process lifetime.
type Registry struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[uuid.UUID]*Session)}
}

// Session returns the operator's session, creating it if needed.
func (r *Registry) Session(userID uuid.UUID) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sess, ok := r.sessions[userID]; ok {
		return sess
	}
	sess := NewSession()
	r.sessions[userID] = sess
	return sess
}
