package service

import (
	"sync"
	"time"
)

// RevocationList is an in-process set of revoked tokens. Entries carry the
// token's own expiry so the set never outgrows the population of live
// tokens; a background goroutine evicts expired entries.
type RevocationList struct {
	mu       sync.RWMutex
	entries  map[string]time.Time
	stopChan chan struct{}
}

// RevocationConfig holds configuration for the revocation list.
type RevocationConfig struct {
	Cleanup time.Duration // Eviction interval (default 1h)
}

// NewRevocationList creates a revocation list and starts its eviction
// goroutine. Call Stop to release it.
func NewRevocationList(cfg RevocationConfig) *RevocationList {
	if cfg.Cleanup == 0 {
		cfg.Cleanup = time.Hour
	}

	list := &RevocationList{
		entries:  make(map[string]time.Time),
		stopChan: make(chan struct{}),
	}

	go list.cleanupLoop(cfg.Cleanup)

	return list
}

// Add marks a token as revoked until it expires on its own. Adding the
// same token twice is a no-op.
func (l *RevocationList) Add(token string, expiresAt time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[token] = expiresAt
}

// Contains reports whether the token has been revoked. Entries past their
// expiry count as absent even before the eviction pass removes them.
func (l *RevocationList) Contains(token string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	expiresAt, ok := l.entries[token]
	if !ok {
		return false
	}
	return time.Now().Before(expiresAt)
}

// Len returns the number of entries, including any not yet evicted.
func (l *RevocationList) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Stop stops the eviction goroutine.
func (l *RevocationList) Stop() {
	close(l.stopChan)
}

func (l *RevocationList) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stopChan:
			return
		}
	}
}

func (l *RevocationList) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for token, expiresAt := range l.entries {
		if expiresAt.Before(now) {
			delete(l.entries, token)
		}
	}
}
