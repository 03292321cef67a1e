// Package usage keeps the per-device daily scan counter: it loads the
// persisted (count, date) pair, rolls it over on a new calendar day and
// persists every change immediately.
package usage

import (
	"strconv"
	"sync"
	"time"

	"msgrisk/internal/store"

	"go.uber.org/zap"
)

// Tracker reads and writes the DailyCounter through a KV store.
// Storage failures are logged and never returned: callers always get a
// usable in-memory counter.
type Tracker struct {
	mu     sync.Mutex
	kv     store.KV
	now    func() time.Time
	logger *zap.Logger
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLogger sets the logger used for storage failures.
func WithLogger(l *zap.Logger) Option {
	return func(t *Tracker) { t.logger = l }
}

// NewTracker creates a tracker persisting through kv.
func NewTracker(kv store.KV, opts ...Option) *Tracker {
	t := &Tracker{
		kv:     kv,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Today returns the current calendar day.
func (t *Tracker) Today() string {
	return Day(t.now())
}

// Load returns the persisted counter for today. A missing or stale date, or
// a missing/unparsable count, yields {0, today}, and that reset is written
// before Load returns so a stale count is never shown.
func (t *Tracker) Load() DailyCounter {
	t.mu.Lock()
	defer t.mu.Unlock()

	today := t.Today()
	reset := DailyCounter{Count: 0, Date: today}

	date, hasDate, err := t.kv.Get(KeyDate)
	if err != nil {
		t.logger.Warn("counter read failed, using reset counter", zap.Error(err))
		return reset
	}
	if hasDate && date == today {
		raw, hasCount, err := t.kv.Get(KeyCount)
		if err != nil {
			t.logger.Warn("counter read failed, using reset counter", zap.Error(err))
			return reset
		}
		if hasCount {
			if n, perr := strconv.Atoi(raw); perr == nil && n >= 0 {
				return DailyCounter{Count: n, Date: date}
			}
			t.logger.Warn("discarding unparsable counter", zap.String("value", raw))
		}
	} else if hasDate {
		t.logger.Debug("counter rolled over", zap.String("stored_date", date), zap.String("today", today))
	}

	t.persistLocked(reset)
	return reset
}

// Increment returns counter with Count+1 (Date unchanged) and persists it.
func (t *Tracker) Increment(counter DailyCounter) DailyCounter {
	t.mu.Lock()
	defer t.mu.Unlock()

	next := DailyCounter{Count: counter.Count + 1, Date: counter.Date}
	t.persistLocked(next)
	return next
}

func (t *Tracker) persistLocked(c DailyCounter) {
	if err := t.kv.Set(KeyCount, strconv.Itoa(c.Count)); err != nil {
		t.logger.Warn("counter write failed", zap.Int("count", c.Count), zap.Error(err))
		return
	}
	if err := t.kv.Set(KeyDate, c.Date); err != nil {
		t.logger.Warn("counter date write failed", zap.String("date", c.Date), zap.Error(err))
	}
}
