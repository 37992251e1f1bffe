package cache

import (
	"sync"
	"time"

	"roomhub/entities"
)

type sessionEntry struct {
	session  entities.Session
	cachedAt time.Time
}

// SessionCache keeps recently seen sessions in memory so the per-request
// current-user lookup does not hit the database every time. Entries expire
// with the session itself; the database stays the source of truth.
type SessionCache struct {
	mu      sync.RWMutex
	entries map[string]sessionEntry // token -> entry
	hits    int64
	misses  int64
}

func NewSessionCache() *SessionCache {
	return &SessionCache{entries: make(map[string]sessionEntry)}
}

// Put stores a session under its token.
func (sc *SessionCache) Put(session entities.Session) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.entries[session.Token] = sessionEntry{session: session, cachedAt: time.Now()}
}

// Get returns the cached session for a token. Expired entries are evicted on
// the way out and reported as misses.
func (sc *SessionCache) Get(token string) (*entities.Session, bool) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	entry, ok := sc.entries[token]
	if !ok {
		sc.misses++
		return nil, false
	}
	if entry.session.Expired(time.Now()) {
		delete(sc.entries, token)
		sc.misses++
		return nil, false
	}
	sc.hits++
	session := entry.session
	return &session, true
}

// Invalidate drops a token, e.g. on logout.
func (sc *SessionCache) Invalidate(token string) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	delete(sc.entries, token)
}

// Sweep removes every expired entry and returns how many were dropped.
func (sc *SessionCache) Sweep(now time.Time) int {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	removed := 0
	for token, entry := range sc.entries {
		if entry.session.Expired(now) {
			delete(sc.entries, token)
			removed++
		}
	}
	return removed
}

// Stats returns counters about the current cache contents.
func (sc *SessionCache) Stats() map[string]interface{} {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	return map[string]interface{}{
		"cached_sessions": len(sc.entries),
		"hits":            sc.hits,
		"misses":          sc.misses,
	}
}
