package usage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"msgrisk/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(day string) func() time.Time {
	t, err := time.ParseInLocation(DayLayout, day, time.Local)
	if err != nil {
		panic(err)
	}
	t = t.Add(15 * time.Hour)
	return func() time.Time { return t }
}

func TestTracker_LoadEmptyStoreResetsAndPersists(t *testing.T) {
	kv := store.NewMemoryKV()
	tracker := NewTracker(kv, WithClock(fixedClock("2024-01-02")))

	got := tracker.Load()
	assert.Equal(t, DailyCounter{Count: 0, Date: "2024-01-02"}, got)

	date, ok, err := kv.Get(KeyDate)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2024-01-02", date)
	count, _, _ := kv.Get(KeyCount)
	assert.Equal(t, "0", count)
}

func TestTracker_LoadRollsOverStaleDay(t *testing.T) {
	kv := store.NewMemoryKV()
	require.NoError(t, kv.Set(KeyCount, "4"))
	require.NoError(t, kv.Set(KeyDate, "2024-01-01"))
	writesBefore := kv.Writes

	tracker := NewTracker(kv, WithClock(fixedClock("2024-01-02")))
	got := tracker.Load()

	assert.Equal(t, DailyCounter{Count: 0, Date: "2024-01-02"}, got)
	assert.Greater(t, kv.Writes, writesBefore, "reset must be persisted before any increment")

	count, _, _ := kv.Get(KeyCount)
	date, _, _ := kv.Get(KeyDate)
	assert.Equal(t, "0", count)
	assert.Equal(t, "2024-01-02", date)
}

func TestTracker_LoadSameDayIsReadOnly(t *testing.T) {
	kv := store.NewMemoryKV()
	require.NoError(t, kv.Set(KeyCount, "4"))
	require.NoError(t, kv.Set(KeyDate, "2024-01-02"))
	writesBefore := kv.Writes

	tracker := NewTracker(kv, WithClock(fixedClock("2024-01-02")))
	got := tracker.Load()

	assert.Equal(t, DailyCounter{Count: 4, Date: "2024-01-02"}, got)
	assert.Equal(t, writesBefore, kv.Writes)
}

func TestTracker_LoadDiscardsBadCount(t *testing.T) {
	for _, raw := range []string{"", "NaN", "-3", "1.5"} {
		t.Run(raw, func(t *testing.T) {
			kv := store.NewMemoryKV()
			require.NoError(t, kv.Set(KeyCount, raw))
			require.NoError(t, kv.Set(KeyDate, "2024-01-02"))

			tracker := NewTracker(kv, WithClock(fixedClock("2024-01-02")))
			assert.Equal(t, DailyCounter{Count: 0, Date: "2024-01-02"}, tracker.Load())
		})
	}
}

func TestTracker_Increment(t *testing.T) {
	kv := store.NewMemoryKV()
	tracker := NewTracker(kv, WithClock(fixedClock("2024-01-02")))

	c := tracker.Load()
	c = tracker.Increment(c)
	assert.Equal(t, DailyCounter{Count: 1, Date: "2024-01-02"}, c)

	raw, _, _ := kv.Get(KeyCount)
	assert.Equal(t, "1", raw)

	// A fresh tracker on the same day sees the persisted value.
	again := NewTracker(kv, WithClock(fixedClock("2024-01-02"))).Load()
	assert.Equal(t, c, again)
}

func TestTracker_IncrementKeepsCounterDate(t *testing.T) {
	kv := store.NewMemoryKV()
	tracker := NewTracker(kv, WithClock(fixedClock("2024-01-03")))

	got := tracker.Increment(DailyCounter{Count: 7, Date: "2024-01-02"})
	assert.Equal(t, DailyCounter{Count: 8, Date: "2024-01-02"}, got)
}

func TestTracker_StorageFailuresDegrade(t *testing.T) {
	kv := store.NewMemoryKV()
	kv.FailGet = errors.New("read failed")
	kv.FailSet = errors.New("write failed")
	tracker := NewTracker(kv, WithClock(fixedClock("2024-01-02")))

	c := tracker.Load()
	assert.Equal(t, DailyCounter{Count: 0, Date: "2024-01-02"}, c)

	c = tracker.Increment(c)
	c = tracker.Increment(c)
	assert.Equal(t, 2, c.Count, "in-memory counter keeps counting when persistence fails")
}

func TestTracker_SQLiteRoundTrip(t *testing.T) {
	kv, err := store.NewSQLiteKV(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	defer kv.Close()

	day1 := NewTracker(kv, WithClock(fixedClock("2024-01-01")))
	c := day1.Load()
	for i := 0; i < 4; i++ {
		c = day1.Increment(c)
	}
	assert.Equal(t, 4, day1.Load().Count)

	day2 := NewTracker(kv, WithClock(fixedClock("2024-01-02")))
	assert.Equal(t, DailyCounter{Count: 0, Date: "2024-01-02"}, day2.Load())
}
