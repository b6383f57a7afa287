package watch

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type expiryRecorder struct {
	mu      sync.Mutex
	expired []string
	ch      chan string
}

func newExpiryRecorder() *expiryRecorder {
	return &expiryRecorder{ch: make(chan string, 16)}
}

func (r *expiryRecorder) onExpire(itemID string) {
	r.mu.Lock()
	r.expired = append(r.expired, itemID)
	r.mu.Unlock()
	r.ch <- itemID
}

func TestRegistry_Track(t *testing.T) {
	t.Run("tracks one countdown per item", func(t *testing.T) {
		reg := NewRegistry(nil, zap.NewNop())
		defer reg.CancelAll()

		end := time.Now().Add(time.Hour)
		reg.Track("a", end)
		reg.Track("b", end)
		assert.Equal(t, 2, reg.Len())
	})

	t.Run("same end is a no-op", func(t *testing.T) {
		reg := NewRegistry(nil, zap.NewNop())
		defer reg.CancelAll()

		end := time.Now().Add(time.Hour)
		reg.Track("a", end)
		reg.Track("a", end)
		assert.Equal(t, 1, reg.Len())
	})

	t.Run("new end re-arms", func(t *testing.T) {
		reg := NewRegistry(nil, zap.NewNop())
		defer reg.CancelAll()

		reg.Track("a", time.Now().Add(time.Hour))
		reg.Track("a", time.Now().Add(2*time.Hour))
		assert.Equal(t, 1, reg.Len())
	})
}

func TestRegistry_Expiry(t *testing.T) {
	rec := newExpiryRecorder()
	reg := NewRegistry(rec.onExpire, zap.NewNop())
	defer reg.CancelAll()

	reg.Track("expiring", time.Now().Add(-time.Second))

	select {
	case id := <-rec.ch:
		assert.Equal(t, "expiring", id)
	case <-time.After(2 * time.Second):
		t.Fatal("expiry callback never fired")
	}

	// The entry is gone once expired.
	require.Eventually(t, func() bool {
		return reg.Len() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestRegistry_Untrack(t *testing.T) {
	rec := newExpiryRecorder()
	reg := NewRegistry(rec.onExpire, zap.NewNop())
	defer reg.CancelAll()

	reg.Track("a", time.Now().Add(time.Hour))
	reg.Untrack("a")
	assert.Equal(t, 0, reg.Len())

	// Cancellation must not fire the expiry callback.
	select {
	case <-rec.ch:
		t.Fatal("cancelled countdown reported expiry")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRegistry_CancelAll(t *testing.T) {
	reg := NewRegistry(nil, zap.NewNop())
	reg.Track("a", time.Now().Add(time.Hour))
	reg.Track("b", time.Now().Add(time.Hour))

	reg.CancelAll()
	assert.Equal(t, 0, reg.Len())
}
