package folio

import (
	"sync"
	"time"
)

// LoginLimiter rate-limits failed login attempts per IP address.
type LoginLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	max      int
	window   time.Duration
	stop     chan struct{}
	once     sync.Once
}

// NewLoginLimiter creates a LoginLimiter that allows max failures per window.
// Call Close to stop its cleanup goroutine.
func NewLoginLimiter(max int, window time.Duration) *LoginLimiter {
	l := &LoginLimiter{
		attempts: make(map[string][]time.Time),
		max:      max,
		window:   window,
		stop:     make(chan struct{}),
	}
	go l.cleanup()
	return l
}

// Close stops the background cleanup.
func (l *LoginLimiter) Close() {
	l.once.Do(func() { close(l.stop) })
}

func (l *LoginLimiter) cleanup() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
		}
		cutoff := time.Now().Add(-l.window)
		l.mu.Lock()
		for ip, hits := range l.attempts {
			if kept := prune(hits, cutoff); len(kept) == 0 {
				delete(l.attempts, ip)
			} else {
				l.attempts[ip] = kept
			}
		}
		l.mu.Unlock()
	}
}

// Check returns true if the IP has not exceeded the limit. It does not
// record an attempt; call Record on failure.
func (l *LoginLimiter) Check(ip string) bool {
	cutoff := time.Now().Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	kept := prune(l.attempts[ip], cutoff)
	l.attempts[ip] = kept
	return len(kept) < l.max
}

// Record registers a failed login attempt for the given IP.
func (l *LoginLimiter) Record(ip string) {
	l.mu.Lock()
	l.attempts[ip] = append(l.attempts[ip], time.Now())
	l.mu.Unlock()
}

// Reset forgets the failures of an IP after a successful login.
func (l *LoginLimiter) Reset(ip string) {
	l.mu.Lock()
	delete(l.attempts, ip)
	l.mu.Unlock()
}

func prune(hits []time.Time, cutoff time.Time) []time.Time {
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}
