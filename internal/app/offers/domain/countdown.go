package domain

import (
	"sync"
	"time"

	"github.com/3b3zeem/le-souk-offers-service/internal/pkg/clock"
)

// Millisecond divisors for the countdown breakdown.
const (
	millisPerHour   = 3600000
	millisPerMinute = 60000
	millisPerSecond = 1000
)

// Remaining is a live countdown breakdown, clamped at zero.
type Remaining struct {
	Days    int64 `json:"days"`
	Hours   int64 `json:"hours"`
	Minutes int64 `json:"minutes"`
	Seconds int64 `json:"seconds"`
}

// IsZero reports whether every component is zero.
func (r Remaining) IsZero() bool {
	return r == Remaining{}
}

// RemainingAt computes the time left until end using floor division on whole
// milliseconds. A past or reached end yields all zeros. Pure: callers that
// need one consistent snapshot per render pass supply their own now.
func RemainingAt(end, now time.Time) Remaining {
	diff := end.Sub(now).Milliseconds()
	if diff <= 0 {
		return Remaining{}
	}
	return Remaining{
		Days:    diff / millisPerDay,
		Hours:   (diff % millisPerDay) / millisPerHour,
		Minutes: (diff % millisPerHour) / millisPerMinute,
		Seconds: (diff % millisPerMinute) / millisPerSecond,
	}
}

// CountdownPhase is the lifecycle state of a Countdown.
type CountdownPhase int

const (
	CountdownIdle CountdownPhase = iota
	CountdownRunning
	CountdownExpired
)

// Countdown drives a live sale-expiry timer toward a fixed end timestamp.
//
// The first callback fires synchronously from StartCountdown so the initial
// render never shows a flash of zeros. While running, the callback fires once
// per second with a fresh Remaining computed from the wall clock, so the
// countdown self-corrects after host suspension instead of accumulating
// drift. The first time the end is reached the callback reports all zeros,
// the ticker stops, and no further callbacks are ever delivered.
//
// Every Countdown must be released with Cancel on all exit paths of its
// owner; Cancel is idempotent and safe after natural expiry.
type Countdown struct {
	end      time.Time
	clk      clock.Clock
	interval time.Duration
	onTick   func(Remaining)

	mu    sync.Mutex
	phase CountdownPhase

	done     chan struct{}
	stopOnce sync.Once
}

// StartCountdown starts a countdown toward end, ticking once per second.
// onTick may be nil when only Done/Phase are of interest.
func StartCountdown(end time.Time, onTick func(Remaining)) *Countdown {
	return startCountdown(end, clock.NewRealClock(), time.Second, onTick)
}

// startCountdown is the injectable variant used by tests to shrink the tick
// interval.
func startCountdown(end time.Time, clk clock.Clock, interval time.Duration, onTick func(Remaining)) *Countdown {
	c := &Countdown{
		end:      end,
		clk:      clk,
		interval: interval,
		onTick:   onTick,
		phase:    CountdownIdle,
		done:     make(chan struct{}),
	}

	now := clk.Now()
	if !end.After(now) {
		// Already expired: report zeros once, never start the ticker.
		c.setPhase(CountdownExpired)
		c.emit(Remaining{})
		c.stop()
		return c
	}

	c.setPhase(CountdownRunning)
	c.emit(RemainingAt(end, now))
	go c.run()
	return c
}

func (c *Countdown) run() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			now := c.clk.Now()
			if !c.end.After(now) {
				// Terminal transition, exactly once: zeros, then silence.
				c.setPhase(CountdownExpired)
				c.emit(Remaining{})
				c.stop()
				return
			}
			c.emit(RemainingAt(c.end, now))
		}
	}
}

// Cancel stops the countdown and releases its timer. Idempotent: calling it
// twice, or after natural expiry, is a no-op.
func (c *Countdown) Cancel() {
	c.stop()
}

// Done returns a channel closed when the countdown expires or is cancelled.
// Check Phase to tell the two apart.
func (c *Countdown) Done() <-chan struct{} {
	return c.done
}

// Phase returns the current lifecycle state.
func (c *Countdown) Phase() CountdownPhase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

func (c *Countdown) setPhase(p CountdownPhase) {
	c.mu.Lock()
	c.phase = p
	c.mu.Unlock()
}

func (c *Countdown) emit(rem Remaining) {
	if c.onTick != nil {
		c.onTick(rem)
	}
}

func (c *Countdown) stop() {
	c.stopOnce.Do(func() {
		close(c.done)
	})
}
