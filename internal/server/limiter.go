package server

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// cleanupThreshold is the minimum map size before a cleanup pass runs.
	cleanupThreshold = 500
	// maxIdleAge is the duration after which an idle session entry is
	// eligible for cleanup.
	maxIdleAge = 10 * time.Minute
)

type sessionEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// SessionLimiter is a per-session rate limiter for assistant questions.
// It prunes stale entries inline and is injected into the hub rather
// than held as global state.
type SessionLimiter struct {
	sessions map[string]*sessionEntry
	mu       sync.Mutex
	r        rate.Limit
	b        int
	now      func() time.Time
}

// NewSessionLimiter creates a limiter allowing r events per second
// with burst b for each session.
func NewSessionLimiter(r rate.Limit, b int) *SessionLimiter {
	return &SessionLimiter{
		sessions: make(map[string]*sessionEntry),
		r:        r,
		b:        b,
		now:      time.Now,
	}
}

// Allow reports whether the session may ask another question now,
// pruning stale entries when the map exceeds cleanupThreshold.
func (l *SessionLimiter) Allow(sessionID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.sessions) > cleanupThreshold {
		cutoff := l.now().Add(-maxIdleAge)
		for k, e := range l.sessions {
			if e.lastSeen.Before(cutoff) {
				delete(l.sessions, k)
			}
		}
	}

	e, exists := l.sessions[sessionID]
	if !exists {
		e = &sessionEntry{limiter: rate.NewLimiter(l.r, l.b)}
		l.sessions[sessionID] = e
	}
	e.lastSeen = l.now()
	return e.limiter.Allow()
}
