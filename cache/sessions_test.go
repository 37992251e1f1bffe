package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"roomhub/entities"
)

func Test_SessionCache_Put_And_Get(t *testing.T) {
	req := require.New(t)
	sc := NewSessionCache()

	session := entities.Session{
		ID:        "s1",
		Token:     "token-1",
		UserID:    "u1",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	sc.Put(session)

	got, ok := sc.Get("token-1")
	req.True(ok)
	req.Equal("u1", got.UserID)

	_, ok = sc.Get("unknown")
	req.False(ok)
}

func Test_SessionCache_Expired_Entries_Are_Misses(t *testing.T) {
	req := require.New(t)
	sc := NewSessionCache()

	sc.Put(entities.Session{
		Token:     "stale",
		UserID:    "u1",
		ExpiresAt: time.Now().Add(-time.Minute),
	})

	_, ok := sc.Get("stale")
	req.False(ok)

	stats := sc.Stats()
	req.Equal(0, stats["cached_sessions"])
}

func Test_SessionCache_Invalidate_And_Sweep(t *testing.T) {
	req := require.New(t)
	sc := NewSessionCache()

	now := time.Now()
	sc.Put(entities.Session{Token: "live", UserID: "u1", ExpiresAt: now.Add(time.Hour)})
	sc.Put(entities.Session{Token: "dead-1", UserID: "u2", ExpiresAt: now.Add(-time.Hour)})
	sc.Put(entities.Session{Token: "dead-2", UserID: "u3", ExpiresAt: now.Add(-time.Minute)})

	sc.Invalidate("live")
	_, ok := sc.Get("live")
	req.False(ok)

	removed := sc.Sweep(now)
	req.Equal(2, removed)
	req.Equal(0, sc.Stats()["cached_sessions"])
}
