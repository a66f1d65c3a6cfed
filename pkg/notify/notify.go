// Package notify holds the single transient status message shown to the user
// after a mutation or login attempt.
package notify

import (
	"sync"
	"time"
)

// DefaultTTL is how long a notification stays visible.
const DefaultTTL = 3000 * time.Millisecond

// Status is the outcome a notification reports.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Notification is a status message. The zero value means "nothing shown".
type Notification struct {
	Status    Status
	Message   string
	Published time.Time
}

// IsZero reports whether n is the cleared notification.
func (n Notification) IsZero() bool {
	return n.Status == "" && n.Message == ""
}

// Option configures a Channel.
type Option func(*Channel)

// WithTTL overrides DefaultTTL. Non-positive values are ignored.
func WithTTL(d time.Duration) Option {
	return func(c *Channel) {
		if d > 0 {
			c.ttl = d
		}
	}
}

// WithClock overrides the clock used to stamp notifications.
func WithClock(now func() time.Time) Option {
	return func(c *Channel) {
		if now != nil {
			c.now = now
		}
	}
}

// Channel holds at most one current notification. Publishing replaces it and
// restarts the expiry timer.
type Channel struct {
	mu      sync.Mutex
	current Notification
	// gen increments on every publish or dismiss so a timer armed for an
	// older notification cannot clear a newer one.
	gen     uint64
	timer   *time.Timer
	ttl     time.Duration
	now     func() time.Time
	changes chan Notification
	closed  bool
}

// New returns an empty channel.
func New(opts ...Option) *Channel {
	c := &Channel{
		ttl:     DefaultTTL,
		now:     time.Now,
		changes: make(chan Notification, 16),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL returns the display duration.
func (c *Channel) TTL() time.Duration {
	return c.ttl
}

// Publish replaces the current notification and restarts the timer.
func (c *Channel) Publish(status Status, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.gen++
	gen := c.gen
	c.current = Notification{Status: status, Message: message, Published: c.now()}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.ttl, func() { c.expire(gen) })
	c.emit(c.current)
}

// Success publishes a success notification.
func (c *Channel) Success(message string) {
	c.Publish(StatusSuccess, message)
}

// Error publishes an error notification.
func (c *Channel) Error(message string) {
	c.Publish(StatusError, message)
}

// Dismiss clears the current notification immediately.
func (c *Channel) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.clear()
}

// Current returns the visible notification, if any.
func (c *Channel) Current() (Notification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current, !c.current.IsZero()
}

// Changes delivers every publish and every clear. A cleared notification is
// delivered as the zero value. Sends never block; a slow reader should call
// Current.
func (c *Channel) Changes() <-chan Notification {
	return c.changes
}

// Close stops the timer. Later publishes are ignored.
func (c *Channel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Channel) expire(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.timer = nil
	c.clear()
}

// clear must be called with mu held. Clearing twice is a no-op.
func (c *Channel) clear() {
	if c.current.IsZero() {
		return
	}
	c.current = Notification{}
	if !c.closed {
		c.emit(c.current)
	}
}

func (c *Channel) emit(n Notification) {
	select {
	case c.changes <- n:
	default:
	}
}
