// Package notify is a non-blocking notification queue. Producers push and
// return immediately; the view reads Active and prunes expired entries on
// its own clock.
package notify

import (
	"sync"
	"time"
)

// Severity of a notification.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// DefaultTTL is how long a notification stays visible.
const DefaultTTL = 4 * time.Second

// maxQueued bounds the queue; the oldest entries are dropped first.
const maxQueued = 8

// Notification is one user-visible message.
type Notification struct {
	ID       int
	Message  string
	Severity Severity
	Created  time.Time
	TTL      time.Duration
}

// Expired reports whether n should no longer be shown at now.
func (n Notification) Expired(now time.Time) bool {
	return n.TTL > 0 && !now.Before(n.Created.Add(n.TTL))
}

// Notifier accepts notifications.
type Notifier interface {
	Notify(message string, severity Severity)
}

// Queue is a bounded, time-expiring Notifier.
type Queue struct {
	mu     sync.Mutex
	items  []Notification
	nextID int
	ttl    time.Duration
	now    func() time.Time
}

// NewQueue creates a queue whose entries expire after ttl (DefaultTTL if
// ttl <= 0).
func NewQueue(ttl time.Duration) *Queue {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Queue{ttl: ttl, now: time.Now}
}

// SetClock overrides time.Now.
func (q *Queue) SetClock(now func() time.Time) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.now = now
}

// Notify enqueues a message.
func (q *Queue) Notify(message string, severity Severity) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.nextID++
	q.items = append(q.items, Notification{
		ID:       q.nextID,
		Message:  message,
		Severity: severity,
		Created:  q.now(),
		TTL:      q.ttl,
	})
	if len(q.items) > maxQueued {
		q.items = q.items[len(q.items)-maxQueued:]
	}
}

// Active prunes expired entries and returns the rest, oldest first.
func (q *Queue) Active(now time.Time) []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	kept := q.items[:0]
	for _, n := range q.items {
		if !n.Expired(now) {
			kept = append(kept, n)
		}
	}
	q.items = kept

	out := make([]Notification, len(kept))
	copy(out, kept)
	return out
}

// Dismiss removes the notification with id.
func (q *Queue) Dismiss(id int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, n := range q.items {
		if n.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return
		}
	}
}

// Len returns the number of queued entries, expired or not.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
