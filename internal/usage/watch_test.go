package usage

import (
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"msgrisk/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatch_ReportsWritesFromAnotherStore(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")

	var calls atomic.Int32
	w, err := Watch(path, 20*time.Millisecond, nil, func() { calls.Add(1) })
	require.NoError(t, err)

	other, err := store.NewFileKV(path)
	require.NoError(t, err)
	require.NoError(t, other.Set(KeyCount, "1"))
	require.NoError(t, other.Set(KeyDate, "2024-01-02"))

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, w.Close())
}

func TestWatch_IgnoresUnrelatedFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	var calls atomic.Int32
	w, err := Watch(filepath.Join(dir, "state.json"), 10*time.Millisecond, nil, func() { calls.Add(1) })
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "msgrisk.log"), []byte("x"), 0644))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())

	require.NoError(t, w.Close())
}

func TestWatch_MissingDirectory(t *testing.T) {
	_, err := Watch(filepath.Join(t.TempDir(), "nope", "state.db"), 0, nil, func() {})
	require.Error(t, err)
}

func TestWatch_BurstReportedOnce(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")

	var calls atomic.Int32
	w, err := Watch(path, 80*time.Millisecond, nil, func() { calls.Add(1) })
	require.NoError(t, err)

	other, err := store.NewFileKV(path)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		require.NoError(t, other.Set(KeyCount, strconv.Itoa(i)))
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load(), "a burst of writes is one change")

	require.NoError(t, w.Close())
}

func TestWatch_CloseDropsPendingChange(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")

	var calls atomic.Int32
	w, err := Watch(path, time.Hour, nil, func() { calls.Add(1) })
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, w.Close())
	assert.Equal(t, int32(0), calls.Load())
}
