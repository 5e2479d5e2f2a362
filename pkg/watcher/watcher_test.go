package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchTriggersOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.obj")
	other := filepath.Join(dir, "other.obj")
	require.NoError(t, os.WriteFile(path, []byte("v 0 0 0\n"), 0o644))

	fw, err := NewFileWatcher(50 * time.Millisecond)
	require.NoError(t, err)
	defer fw.Close()

	var calls atomic.Int32
	var changed atomic.Value
	require.NoError(t, fw.Watch([]string{path}, func(p string) {
		changed.Store(p)
		calls.Add(1)
	}))
	fw.Start()

	require.NoError(t, os.WriteFile(other, []byte("ignored\n"), 0o644))
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("v 1 1 1\n"), 0o644))
	}

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load(), "writes within the debounce window collapse")

	abs, err := filepath.Abs(path)
	require.NoError(t, err)
	assert.Equal(t, abs, changed.Load())
}

func TestWatchMissingDirectory(t *testing.T) {
	fw, err := NewFileWatcher(time.Millisecond)
	require.NoError(t, err)
	defer fw.Close()

	err = fw.Watch([]string{filepath.Join(t.TempDir(), "nope", "model.obj")}, func(string) {})
	assert.Error(t, err)
}

func TestCloseEndsEventLoop(t *testing.T) {
	fw, err := NewFileWatcher(time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, fw.Watch([]string{filepath.Join(t.TempDir(), "model.obj")}, func(string) {}))
	fw.Start()

	require.NoError(t, fw.Close())
	select {
	case <-fw.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("event loop did not stop")
	}
}

func TestRemoveAllStopsCallbacks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.obj")
	require.NoError(t, os.WriteFile(path, []byte("v 0 0 0\n"), 0o644))

	fw, err := NewFileWatcher(50 * time.Millisecond)
	require.NoError(t, err)
	defer fw.Close()

	var calls atomic.Int32
	require.NoError(t, fw.Watch([]string{path}, func(string) { calls.Add(1) }))
	fw.Start()

	require.NoError(t, fw.RemoveAll())
	require.NoError(t, os.WriteFile(path, []byte("v 1 1 1\n"), 0o644))
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())

	// the watcher accepts files again after RemoveAll
	require.NoError(t, fw.Watch([]string{path}, func(string) { calls.Add(1) }))
	require.NoError(t, os.WriteFile(path, []byte("v 2 2 2\n"), 0o644))
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
}
