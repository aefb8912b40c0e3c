package service

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Pranathi1405/ClauseEase-AI/config"
	"github.com/Pranathi1405/ClauseEase-AI/model"
	"github.com/google/uuid"
)

// SessionStore is the in-memory home of both browser storage channels: the
// persistent token/username pair (kept until logout) and the session-scoped
// processed result (cleared on logout, on new upload, or on "upload
// another"). Records expire after an idle TTL, standing in for the end of a
// browser session.
type SessionStore struct {
	sessions    map[string]*model.Session
	mu          sync.RWMutex
	ttl         time.Duration
	maxSessions int // Maximum sessions to keep, 0 = unlimited
}

var (
	globalStore *SessionStore
	storeOnce   sync.Once
)

// InitSessionStore initializes the global session store with configuration
func InitSessionStore(cfg *config.SessionConfig) {
	storeOnce.Do(func() {
		maxSessions := cfg.MaxSessions
		if maxSessions < 0 {
			maxSessions = 0
		}
		globalStore = &SessionStore{
			sessions:    make(map[string]*model.Session),
			ttl:         time.Duration(cfg.ExpireHours) * time.Hour,
			maxSessions: maxSessions,
		}
		slog.Info("session store initialized",
			"max_sessions", maxSessions,
			"ttl_hours", cfg.ExpireHours,
		)
	})
}

// GetSessionStore returns the global session store
func GetSessionStore() *SessionStore {
	if globalStore == nil {
		// Fallback initialization with default settings
		globalStore = &SessionStore{
			sessions:    make(map[string]*model.Session),
			ttl:         24 * time.Hour,
			maxSessions: 1000,
		}
	}
	return globalStore
}

// Create opens a new session holding the backend token/username pair and
// returns it with a fresh ID.
func (s *SessionStore) Create(token, username string) *model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	session := &model.Session{
		ID:          uuid.New().String(),
		Token:       token,
		Username:    username,
		UploadState: model.UploadIdle,
		CreatedAt:   now,
		LastSeenAt:  now,
	}
	s.sessions[session.ID] = session

	s.cleanupLocked()
	return session
}

// Get returns the session with the given ID, refreshing its idle timer, or
// nil when unknown or expired.
func (s *SessionStore) Get(id string) *model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil
	}
	if s.ttl > 0 && time.Since(session.LastSeenAt) > s.ttl {
		delete(s.sessions, id)
		return nil
	}

	session.LastSeenAt = time.Now()
	return session
}

// Delete removes a session entirely (logout).
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// SetResult caches a processed document and its filename for the session,
// replacing any previous result.
func (s *SessionStore) SetResult(id string, doc *model.ProcessedDocument, filename string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[id]; ok {
		session.Result = doc
		session.Filename = filename
		session.LastSeenAt = time.Now()
	}
}

// ClearResult drops the session-scoped result cache, keeping the
// token/username pair.
func (s *SessionStore) ClearResult(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[id]; ok {
		session.Result = nil
		session.Filename = ""
		session.UploadState = model.UploadIdle
		session.UploadError = ""
		session.LastSeenAt = time.Now()
	}
}

// SetUploadState records the upload state machine transition for the
// session.
func (s *SessionStore) SetUploadState(id, state, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[id]; ok {
		session.UploadState = state
		session.UploadError = errMsg
		session.LastSeenAt = time.Now()
	}
}

// cleanupLocked removes expired sessions, then the oldest ones if the store
// still exceeds maxSessions. Must be called with lock held.
func (s *SessionStore) cleanupLocked() {
	if s.ttl > 0 {
		for id, session := range s.sessions {
			if time.Since(session.LastSeenAt) > s.ttl {
				delete(s.sessions, id)
			}
		}
	}

	if s.maxSessions <= 0 || len(s.sessions) <= s.maxSessions {
		return
	}

	sessions := make([]*model.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].LastSeenAt.Before(sessions[j].LastSeenAt)
	})

	removeCount := len(sessions) - s.maxSessions
	for i := 0; i < removeCount; i++ {
		slog.Info("evicting idle session",
			"session_id", sessions[i].ID,
			"last_seen_at", sessions[i].LastSeenAt,
		)
		delete(s.sessions, sessions[i].ID)
	}
}

// Count returns the number of live sessions in the store
func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
