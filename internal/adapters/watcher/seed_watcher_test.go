package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSeedWatcherTriggersOnWrite(t *testing.T) {
	dir := t.TempDir()
	seed := filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(seed, []byte("{}"), 0o644))

	var calls atomic.Int32
	w, err := NewSeedWatcher(seed, func(context.Context) error {
		calls.Add(1)
		return nil
	})
	require.NoError(t, err)
	defer w.Stop()
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Let the watch register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(seed, []byte(`{"regions":[]}`), 0o644))

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
