// Package watch keeps one expiry countdown per item with an open sale window,
// so the service notices a sale ending without waiting for the next sync.
package watch

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/3b3zeem/le-souk-offers-service/internal/app/offers/domain"
)

// Registry owns at most one running countdown per item ID. When a countdown
// expires naturally the entry is removed and the expiry callback fires,
// typically to invalidate cached offer listings.
type Registry struct {
	mu       sync.Mutex
	entries  map[string]*entry
	onExpire func(itemID string)
	log      *zap.Logger
}

type entry struct {
	end time.Time
	cd  *domain.Countdown
}

// NewRegistry creates a registry. onExpire may be nil.
func NewRegistry(onExpire func(itemID string), log *zap.Logger) *Registry {
	return &Registry{
		entries:  make(map[string]*entry),
		onExpire: onExpire,
		log:      log,
	}
}

// Track arms an expiry countdown for the item. Tracking the same item with
// the same end is a no-op; a different end cancels the old countdown and
// re-arms against the new one. An end already in the past fires expiry
// immediately.
func (r *Registry) Track(itemID string, end time.Time) {
	r.mu.Lock()
	if e, ok := r.entries[itemID]; ok {
		if e.end.Equal(end) {
			r.mu.Unlock()
			return
		}
		e.cd.Cancel()
		delete(r.entries, itemID)
	}

	cd := domain.StartCountdown(end, nil)
	r.entries[itemID] = &entry{end: end, cd: cd}
	r.mu.Unlock()

	go r.await(itemID, cd)
}

// Untrack cancels the item's countdown, if any.
func (r *Registry) Untrack(itemID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[itemID]; ok {
		e.cd.Cancel()
		delete(r.entries, itemID)
	}
}

// Len returns the number of armed countdowns.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// CancelAll releases every countdown. Called on shutdown.
func (r *Registry) CancelAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, e := range r.entries {
		e.cd.Cancel()
		delete(r.entries, id)
	}
}

// await waits for the countdown to finish and handles natural expiry.
// A cancelled countdown was already cleaned up by Track/Untrack/CancelAll.
func (r *Registry) await(itemID string, cd *domain.Countdown) {
	<-cd.Done()
	if cd.Phase() != domain.CountdownExpired {
		return
	}

	r.mu.Lock()
	// Only remove the entry if it still refers to this countdown; Track may
	// have re-armed the item meanwhile.
	if e, ok := r.entries[itemID]; ok && e.cd == cd {
		delete(r.entries, itemID)
	}
	r.mu.Unlock()

	r.log.Info("sale window expired", zap.String("item_id", itemID))
	if r.onExpire != nil {
		r.onExpire(itemID)
	}
}
