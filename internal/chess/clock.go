package chess

import (
	"fmt"
	"sync"
	"time"
)

// TimeControlKind names one of the supported match lengths.
type TimeControlKind string

const (
	Bullet    TimeControlKind = "bullet"
	Blitz     TimeControlKind = "blitz"
	Rapid     TimeControlKind = "rapid"
	Classical TimeControlKind = "classical"
)

var timeControlSeconds = map[TimeControlKind]int{
	Bullet:    60,
	Blitz:     300,
	Rapid:     600,
	Classical: 1800,
}

// ParseTimeControl maps a name such as "blitz" to its kind.
func ParseTimeControl(name string) (TimeControlKind, error) {
	kind := TimeControlKind(name)
	if _, ok := timeControlSeconds[kind]; !ok {
		return "", fmt.Errorf("unknown time control %q", name)
	}
	return kind, nil
}

// Initial returns the time each side starts with.
func (k TimeControlKind) Initial() time.Duration {
	return time.Duration(timeControlSeconds[k]) * time.Second
}

// GameMode says where the two players sit.
type GameMode string

const (
	ModeLocal  GameMode = "local"
	ModeOnline GameMode = "online"
)

// Validate rejects modes the engine does not implement.
func (m GameMode) Validate() error {
	if m == ModeLocal {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedMode, m)
}

// Clock tracks the remaining time of both sides. Elapsed time between
// samples is charged to whichever side is passed to Tick.
type Clock struct {
	mu        sync.Mutex
	kind      TimeControlKind
	remaining [2]time.Duration
	flagged   [2]bool
	last      time.Time
	now       func() time.Time
}

// ClockOption configures a Clock.
type ClockOption func(*Clock)

// WithNow replaces the wall clock, mostly for tests.
func WithNow(now func() time.Time) ClockOption {
	return func(c *Clock) {
		c.now = now
	}
}

// NewClock seeds both sides from the time control table.
func NewClock(kind TimeControlKind, opts ...ClockOption) *Clock {
	c := &Clock{kind: kind, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	c.remaining[White] = kind.Initial()
	c.remaining[Black] = kind.Initial()
	c.last = c.now()
	return c
}

// RestoreClock rebuilds a clock with known remaining times.
func RestoreClock(kind TimeControlKind, white, black time.Duration, opts ...ClockOption) *Clock {
	c := NewClock(kind, opts...)
	c.remaining[White] = white
	c.remaining[Black] = black
	return c
}

func (c *Clock) Kind() TimeControlKind {
	return c.kind
}

// Tick charges the time since the previous sample to active. If that would
// take the side below zero nothing is subtracted and ErrTimeExhausted is
// returned.
func (c *Clock) Tick(active Color) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	elapsed := now.Sub(c.last)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > c.remaining[active] {
		c.flagged[active] = true
		return fmt.Errorf("%w: %s", ErrTimeExhausted, active)
	}
	c.remaining[active] -= elapsed
	c.last = now
	return nil
}

// Remaining returns the time left for c.
func (c *Clock) Remaining(color Color) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining[color]
}

// Flagged reports whether color has run out of time on a previous Tick.
func (c *Clock) Flagged(color Color) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flagged[color]
}

// FormatTimeRemaining renders a clock reading as m:ss.
func FormatTimeRemaining(remaining time.Duration) string {
	if remaining <= 0 {
		return "0:00"
	}
	total := int(remaining / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
