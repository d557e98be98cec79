package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"vizsnap/internal/watch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startWatcher(t *testing.T, dir, target string) (*watch.Watcher, context.CancelFunc, chan error) {
	t.Helper()

	w, err := watch.New(dir, target, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Let the watcher register the directory before the test mutates it.
	time.Sleep(200 * time.Millisecond)
	return w, cancel, done
}

func TestWatcherTriggersOnTargetChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo1.html")
	require.NoError(t, os.WriteFile(path, []byte("<html></html>"), 0o644))

	w, cancel, done := startWatcher(t, dir, "demo1.html")
	defer cancel()

	require.NoError(t, os.WriteFile(path, []byte("<html><body>v2</body></html>"), 0o644))

	select {
	case _, ok := <-w.Triggers():
		assert.True(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("no trigger after target change")
	}

	cancel()
	require.NoError(t, <-done)
}

func TestWatcherIgnoresOtherFixtures(t *testing.T) {
	dir := t.TempDir()
	w, cancel, _ := startWatcher(t, dir, "demo1.html")
	defer cancel()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.html"), []byte("<html></html>"), 0o644))

	select {
	case <-w.Triggers():
		t.Fatal("unexpected trigger for an unrelated fixture")
	case <-time.After(1500 * time.Millisecond):
	}
}

func TestWatcherCoalescesWriteBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo1.html")
	require.NoError(t, os.WriteFile(path, []byte("v0"), 0o644))

	w, cancel, _ := startWatcher(t, dir, "demo1.html")
	defer cancel()

	// An editor save typically lands as several writes in quick succession.
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("burst"), 0o644))
		time.Sleep(50 * time.Millisecond)
	}

	select {
	case <-w.Triggers():
	case <-time.After(5 * time.Second):
		t.Fatal("no trigger after write burst")
	}

	// The burst settles into exactly one trigger.
	select {
	case <-w.Triggers():
		t.Fatal("burst produced a second trigger")
	case <-time.After(1500 * time.Millisecond):
	}
}

func TestWatcherStopsOnCancel(t *testing.T) {
	w, cancel, done := startWatcher(t, t.TempDir(), "demo1.html")
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}

	_, ok := <-w.Triggers()
	assert.False(t, ok, "trigger channel closes when the watcher stops")
}

func TestWatcherMissingDirectory(t *testing.T) {
	w, err := watch.New(filepath.Join(t.TempDir(), "gone"), "demo1.html", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	assert.Error(t, w.Run(context.Background()))
}
