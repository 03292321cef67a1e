package usage

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// rolloverSpec fires at the start of every calendar day.
const rolloverSpec = "@midnight"

// NewRolloverSchedule returns a stopped cron that calls fn at local midnight
// in loc. The caller starts and stops it.
func NewRolloverSchedule(loc *time.Location, fn func()) (*cron.Cron, error) {
	if loc == nil {
		loc = time.Local
	}
	c := cron.New(cron.WithLocation(loc))
	if _, err := c.AddFunc(rolloverSpec, fn); err != nil {
		return nil, fmt.Errorf("schedule rollover: %w", err)
	}
	return c, nil
}

// NextRollover returns the first midnight strictly after now.
func NextRollover(now time.Time) time.Time {
	sched, err := cron.ParseStandard(rolloverSpec)
	if err != nil {
		// rolloverSpec is a constant descriptor.
		panic(err)
	}
	return sched.Next(now)
}
