package auth

import (
	"sync"
	"time"

	"language-companion-api/models"
	"language-companion-api/utils"
)

// SessionStore keeps login sessions in memory. Sessions do not survive a
// process restart.
type SessionStore struct {
	sessions map[string]*models.Session
	mutex    sync.RWMutex
	ttl      time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

func NewSessionStore(ttl, sweepInterval time.Duration) *SessionStore {
	store := &SessionStore{
		sessions: make(map[string]*models.Session),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}

	go store.sweepExpired(sweepInterval)

	return store
}

func (s *SessionStore) CreateSession(user *models.User) *models.Session {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := time.Now()
	session := &models.Session{
		ID:        GenerateSessionID(),
		UserID:    user.ID,
		Username:  user.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.sessions[session.ID] = session
	return session
}

func (s *SessionStore) GetSession(sessionID string) (*models.Session, bool) {
	s.mutex.RLock()
	session, exists := s.sessions[sessionID]
	s.mutex.RUnlock()

	if !exists {
		return nil, false
	}

	if session.Expired(time.Now()) {
		s.DeleteSession(sessionID)
		return nil, false
	}

	return session, true
}

func (s *SessionStore) DeleteSession(sessionID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.sessions, sessionID)
}

func (s *SessionStore) DeleteUserSessions(userID int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for id, session := range s.sessions {
		if session.UserID == userID {
			delete(s.sessions, id)
		}
	}
}

// Stop ends the background sweep goroutine.
func (s *SessionStore) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *SessionStore) sweepExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.mutex.Lock()
			now := time.Now()
			cleaned := 0
			for id, session := range s.sessions {
				if session.Expired(now) {
					delete(s.sessions, id)
					cleaned++
				}
			}
			s.mutex.Unlock()
			if cleaned > 0 {
				utils.LogInfo("Cleaned up %d expired sessions", cleaned)
			}
		}
	}
}
