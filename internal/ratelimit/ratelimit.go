package ratelimit

import (
	"sync"
	"time"

	"github.com/salonledger/salonledger-backend/internal/platform/apierr"
)

// Limiter is an in-process sliding-window rate limiter. Keys are arbitrary
// strings; callers compose them as "<endpoint>:<client-ip>". Entries older
// than the window are pruned on every hit, so memory stays proportional to
// the number of active keys.
type Limiter struct {
	mu     sync.Mutex
	max    int
	window time.Duration
	hits   map[string][]time.Time
	now    func() time.Time
}

func New(max int, window time.Duration) *Limiter {
	return &Limiter{
		max:    max,
		window: window,
		hits:   make(map[string][]time.Time),
		now:    time.Now,
	}
}

// Hit records one request for key and returns apierr.ErrRateLimited when the
// key has already seen max requests inside the window. A rejected request is
// not recorded, so callers are not punished for retrying after the window.
func (l *Limiter) Hit(key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	recent := l.hits[key][:0]
	for _, t := range l.hits[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= l.max {
		l.hits[key] = recent
		return apierr.RateLimited()
	}

	l.hits[key] = append(recent, now)
	return nil
}
