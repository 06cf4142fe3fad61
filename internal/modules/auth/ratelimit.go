package auth

import (
	"sync"
	"time"
)

// loginLimiter blocks further login attempts for an email after repeated
// failures, for a fixed cool-down window. Successful login resets the count.
type loginLimiter struct {
	mu          sync.Mutex
	maxFailures int
	cooldown    time.Duration
	entries     map[string]*limiterEntry
	now         func() time.Time
}

type limiterEntry struct {
	failures     int
	blockedUntil time.Time
}

func newLoginLimiter(maxFailures int, cooldown time.Duration) *loginLimiter {
	return &loginLimiter{
		maxFailures: maxFailures,
		cooldown:    cooldown,
		entries:     make(map[string]*limiterEntry),
		now:         time.Now,
	}
}

// Allow reports whether an attempt for this email may proceed.
func (l *loginLimiter) Allow(email string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[email]
	if !ok {
		return true
	}
	if e.blockedUntil.IsZero() {
		return true
	}
	if l.now().After(e.blockedUntil) {
		// Cool-down elapsed, start fresh.
		delete(l.entries, email)
		return true
	}
	return false
}

// Fail records a failed attempt, starting the cool-down once the failure
// budget is spent.
func (l *loginLimiter) Fail(email string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[email]
	if !ok {
		e = &limiterEntry{}
		l.entries[email] = e
	}
	e.failures++
	if e.failures >= l.maxFailures {
		e.blockedUntil = l.now().Add(l.cooldown)
	}
}

// Reset clears the failure history after a successful login.
func (l *loginLimiter) Reset(email string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, email)
}
