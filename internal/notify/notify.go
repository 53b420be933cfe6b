// Package notify holds the single transient, user-facing message.
package notify

import (
	"sync"
	"time"
)

const DefaultTTL = 5000 * time.Millisecond

type Option func(*Notifier)

func WithTTL(d time.Duration) Option {
	return func(n *Notifier) {
		if d > 0 {
			n.ttl = d
		}
	}
}

// Notifier shows at most one message at a time. Each message expires after
// the TTL; showing a new one cancels the previous expiry so a stale timer can
// never clear a newer message.
//
// Subscribers see changes in the order they were made. They are called with
// the delivery lock held and must not call Show or Clear.
type Notifier struct {
	// publishMu is taken before mu and held until subscribers have seen
	// the change.
	publishMu sync.Mutex

	mu          sync.Mutex
	ttl         time.Duration
	message     string
	timer       *time.Timer
	generation  uint64
	subscribers []func(string)
}

func New(opts ...Option) *Notifier {
	n := &Notifier{ttl: DefaultTTL}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Show replaces the current message with msg and restarts the expiry timer.
func (n *Notifier) Show(msg string) {
	n.publishMu.Lock()
	defer n.publishMu.Unlock()

	n.mu.Lock()
	n.stopLocked()
	n.message = msg
	gen := n.generation
	n.timer = time.AfterFunc(n.ttl, func() { n.expire(gen) })
	subs := n.subscribersLocked()
	n.mu.Unlock()

	publish(subs, msg)
}

// Clear drops the current message, if any.
func (n *Notifier) Clear() {
	n.publishMu.Lock()
	defer n.publishMu.Unlock()

	n.mu.Lock()
	if n.message == "" && n.timer == nil {
		n.mu.Unlock()
		return
	}
	n.stopLocked()
	n.message = ""
	subs := n.subscribersLocked()
	n.mu.Unlock()

	publish(subs, "")
}

func (n *Notifier) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.message
}

// Subscribe registers fn to be called with the new message on every change.
// Expiry is reported as an empty string.
func (n *Notifier) Subscribe(fn func(string)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subscribers = append(n.subscribers, fn)
}

// Close stops the pending timer without notifying subscribers.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stopLocked()
}

func (n *Notifier) expire(gen uint64) {
	n.publishMu.Lock()
	defer n.publishMu.Unlock()

	n.mu.Lock()
	// A timer that fired while Show was replacing it carries an old
	// generation and must leave the newer message alone.
	if gen != n.generation {
		n.mu.Unlock()
		return
	}
	n.timer = nil
	n.generation++
	n.message = ""
	subs := n.subscribersLocked()
	n.mu.Unlock()

	publish(subs, "")
}

func (n *Notifier) stopLocked() {
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.generation++
}

func (n *Notifier) subscribersLocked() []func(string) {
	subs := make([]func(string), len(n.subscribers))
	copy(subs, n.subscribers)
	return subs
}

func publish(subs []func(string), msg string) {
	for _, fn := range subs {
		fn(msg)
	}
}
