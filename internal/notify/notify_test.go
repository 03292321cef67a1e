package notify

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_NotifyAndExpire(t *testing.T) {
	start := time.Unix(1000, 0)
	q := NewQueue(2 * time.Second)
	q.SetClock(func() time.Time { return start })

	q.Notify("Please enter a message to analyze", SeverityWarning)
	active := q.Active(start.Add(time.Second))
	require.Len(t, active, 1)
	assert.Equal(t, "Please enter a message to analyze", active[0].Message)
	assert.Equal(t, SeverityWarning, active[0].Severity)

	assert.Empty(t, q.Active(start.Add(2*time.Second)))
	assert.Equal(t, 0, q.Len(), "expired entries are pruned")
}

func TestQueue_Dismiss(t *testing.T) {
	q := NewQueue(0)
	q.Notify("a", SeverityInfo)
	q.Notify("b", SeverityError)

	now := time.Now()
	active := q.Active(now)
	require.Len(t, active, 2)

	q.Dismiss(active[0].ID)
	active = q.Active(now)
	require.Len(t, active, 1)
	assert.Equal(t, "b", active[0].Message)

	q.Dismiss(12345)
	assert.Len(t, q.Active(now), 1)
}

func TestQueue_Bounded(t *testing.T) {
	q := NewQueue(time.Hour)
	for i := 0; i < maxQueued+3; i++ {
		q.Notify(fmt.Sprintf("n%d", i), SeverityInfo)
	}
	active := q.Active(time.Now())
	require.Len(t, active, maxQueued)
	assert.Equal(t, "n3", active[0].Message)
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "error", SeverityError.String())
}
