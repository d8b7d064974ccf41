package intake

import (
	"sync"

	"github.com/mmada170699-cpu/RiyadhRE/internal/models"
)

// Creator is the slice of the listing store the conversation needs.
type Creator interface {
	Create(l *models.Listing) (uint, error)
}

// Manager owns the per-user session registry and commits finished drafts.
// Sessions live only in memory and have no idle timeout; they end when the
// conversation completes, is restarted, or is cancelled.
type Manager struct {
	store Creator

	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewManager(store Creator) *Manager {
	return &Manager{store: store, sessions: make(map[int64]*Session)}
}

// Start opens a fresh session for the user, unconditionally discarding any
// session already in flight.
func (m *Manager) Start(userID int64, ownerName string) *Session {
	s := NewSession(userID, ownerName)
	m.mu.Lock()
	m.sessions[userID] = s
	m.mu.Unlock()
	return s
}

func (m *Manager) Get(userID int64) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[userID]
}

func (m *Manager) Abandon(userID int64) {
	m.mu.Lock()
	delete(m.sessions, userID)
	m.mu.Unlock()
}

// Input applies one turn to the user's open session. When the conversation
// completes, the draft is committed as a pending listing and the session is
// discarded; the returned id is non-zero only in that case.
func (m *Manager) Input(userID int64, in Input) (Result, uint, error) {
	s := m.Get(userID)
	if s == nil {
		return Result{}, 0, nil
	}

	res := s.Apply(in)
	if !res.Done {
		return res, 0, nil
	}

	id, err := m.store.Create(&s.Draft)
	if err != nil {
		// Keep the draft so the user can send "done" again, rather than
		// losing fourteen steps of input to a transient storage error.
		s.State = StatePhotos
		return Result{State: StatePhotos}, 0, err
	}
	m.Abandon(userID)
	return res, id, nil
}
