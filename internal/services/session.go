package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"interview-prep-agent/internal/models"
)

// SessionEntry is the snapshot saved between starting an interview and
// finishing it.
type SessionEntry struct {
	CVText     string
	JobRole    string
	JobCompany string
	JobCountry string
	Questions  *models.QuestionSet
	CreatedAt  time.Time
}

// SessionStore is the process-lifetime bridge between the /start and /finish
// request boundaries. Entries are consumed at most once: Take atomically
// retrieves and deletes, so of two concurrent finish calls for the same id
// exactly one wins and the other sees session_not_found. Distinct ids never
// contend.
type SessionStore struct {
	sessions sync.Map
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Create stores the entry under a fresh random session id and returns the id.
func (s *SessionStore) Create(entry *SessionEntry) string {
	entry.CreatedAt = time.Now()
	sessionID := "session_" + uuid.NewString()
	s.sessions.Store(sessionID, entry)
	return sessionID
}

// Take retrieves and deletes the entry in one atomic step.
func (s *SessionStore) Take(sessionID string) (*SessionEntry, error) {
	value, ok := s.sessions.LoadAndDelete(sessionID)
	if !ok {
		return nil, models.Errf(models.KindSessionNotFound,
			"session not found or expired: %s", sessionID)
	}
	return value.(*SessionEntry), nil
}
