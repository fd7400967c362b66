package session

import (
	"context"
	"log"
	"sync"
	"time"
)

// Revocations remembers logged-out token ids until their natural expiry
type Revocations struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewRevocations creates an empty revocation list
func NewRevocations() *Revocations {
	return &Revocations{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Revoke blocks tokenID until until. A zero until keeps it for a day.
func (r *Revocations) Revoke(_ context.Context, tokenID string, until time.Time) error {
	if tokenID == "" {
		return nil
	}
	if until.IsZero() {
		until = r.now().Add(24 * time.Hour)
	}
	r.mu.Lock()
	r.revoked[tokenID] = until
	r.mu.Unlock()
	return nil
}

// IsRevoked reports whether tokenID was logged out
func (r *Revocations) IsRevoked(tokenID string) bool {
	if tokenID == "" {
		return false
	}
	r.mu.RLock()
	until, ok := r.revoked[tokenID]
	r.mu.RUnlock()
	return ok && r.now().Before(until)
}

// Purge forgets revocations whose tokens have expired
func (r *Revocations) Purge() int {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, until := range r.revoked {
		if !now.Before(until) {
			delete(r.revoked, id)
			removed++
		}
	}
	return removed
}

// Run purges every interval until ctx is done
func (r *Revocations) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Purge(); n > 0 {
				log.Printf("[session] purged %d expired revocations", n)
			}
		}
	}
}
