package services

import (
	"log"
	"time"

	"roomhub/cache"
	"roomhub/repositories"
)

// SessionSweeper periodically drops expired sessions from the database and
// the in-process cache.
type SessionSweeper struct {
	sessions repositories.SessionRepository
	cache    *cache.SessionCache
	interval time.Duration
}

func NewSessionSweeper(sessions repositories.SessionRepository, sessionCache *cache.SessionCache) *SessionSweeper {
	return &SessionSweeper{
		sessions: sessions,
		cache:    sessionCache,
		interval: 15 * time.Minute,
	}
}

func (s *SessionSweeper) Start() {
	ticker := time.NewTicker(s.interval)
	go func() {
		for range ticker.C {
			s.Sweep()
		}
	}()
}

// Sweep removes expired sessions and returns how many database rows went.
func (s *SessionSweeper) Sweep() int64 {
	now := time.Now()
	s.cache.Sweep(now)
	removed, err := s.sessions.DeleteExpired(now)
	if err != nil {
		log.Printf("Error sweeping expired sessions: %v", err)
		return 0
	}
	if removed > 0 {
		log.Printf("Swept %d expired sessions", removed)
	}
	return removed
}

// CacheStats exposes the session cache counters.
func (s *SessionSweeper) CacheStats() map[string]interface{} {
	return s.cache.Stats()
}
