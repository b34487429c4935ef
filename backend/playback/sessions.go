package playback

import (
	"log"
	"sync"
)

type sessionKey struct {
	userID    uint
	chapterID uint
}

// SessionStore keeps the active guards, one per (user, chapter).
// Sessions live in memory only; the durable state is whatever the
// saver has written.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[sessionKey]*Guard
	saver    ProgressSaver
	logger   *log.Logger
}

func NewSessionStore(saver ProgressSaver, logger *log.Logger) *SessionStore {
	return &SessionStore{
		sessions: make(map[sessionKey]*Guard),
		saver:    saver,
		logger:   logger,
	}
}

// Get returns the guard for a user/chapter pair. On first use the
// guard is created and seeded from seed(), typically the stored
// progress row.
func (s *SessionStore) Get(userID, courseID, chapterID uint, seed func() (watched, total float64, completed bool)) *Guard {
	key := sessionKey{userID: userID, chapterID: chapterID}

	s.mu.Lock()
	defer s.mu.Unlock()

	if g, ok := s.sessions[key]; ok {
		return g
	}

	g := NewGuard(userID, courseID, chapterID, s.saver, s.logger)
	watched, total, completed := seed()
	g.Resume(watched, total, completed)
	s.sessions[key] = g
	return g
}

// Close flushes and drops the session, if any. The final save is
// synchronous so the last watched interval survives navigation away.
func (s *SessionStore) Close(userID, chapterID uint) {
	key := sessionKey{userID: userID, chapterID: chapterID}

	s.mu.Lock()
	g, ok := s.sessions[key]
	delete(s.sessions, key)
	s.mu.Unlock()

	if !ok {
		return
	}
	if err := g.Flush(); err != nil && s.logger != nil {
		s.logger.Printf("playback: final save failed for chapter %d: %v", chapterID, err)
	}
}
