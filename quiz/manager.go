package quiz

import (
	"sync"

	"github.com/google/uuid"
)

// Manager holds the in-memory quiz sessions and serializes access to them.
// One active session per (user, module); starting again replaces the old
// attempt.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*held
	byOwner  map[ownerKey]string
}

type ownerKey struct {
	userID   uint
	moduleID string
}

type held struct {
	session *Session
	userID  uint
	module  string
}

// Sessions is the global manager the quiz handlers use.
var Sessions = NewManager()

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*held),
		byOwner:  make(map[ownerKey]string),
	}
}

// Start creates a session for the user and returns its token. An existing
// session for the same module is discarded.
func (m *Manager) Start(userID uint, def Definition, onComplete func(score int, passed bool)) (string, State) {
	m.mu.Lock()
	defer m.mu.Unlock()

	owner := ownerKey{userID: userID, moduleID: def.ModuleID}
	if old, ok := m.byOwner[owner]; ok {
		delete(m.sessions, old)
	}

	token := uuid.NewString()
	s := NewSession(def, onComplete)
	m.sessions[token] = &held{session: s, userID: userID, module: def.ModuleID}
	m.byOwner[owner] = token
	return token, s.State()
}

// Do runs fn against the user's session under the manager lock. Returns
// false when the token is unknown or owned by someone else.
func (m *Manager) Do(token string, userID uint, fn func(*Session) bool) (State, bool, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, ok := m.sessions[token]
	if !ok || h.userID != userID {
		return State{}, false, false
	}
	applied := fn(h.session)
	st := h.session.State()

	// A passed results screen is terminal: the result is already in the
	// progress record and the session would otherwise live for the process
	// lifetime. Failed sessions stay around for Retry.
	if st.Phase == PhaseResults && st.Passed != nil && *st.Passed {
		delete(m.sessions, token)
		delete(m.byOwner, ownerKey{userID: h.userID, moduleID: h.module})
	}
	return st, true, applied
}

// Get returns the session state without mutating it.
func (m *Manager) Get(token string, userID uint) (State, bool) {
	st, found, _ := m.Do(token, userID, func(*Session) bool { return true })
	return st, found
}
