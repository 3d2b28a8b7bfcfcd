package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchDeliversChanges(t *testing.T) {
	if testing.Short() {
		t.Skip("uses filesystem notifications")
	}

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, SaveSettings(path, DefaultSettings()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu  sync.Mutex
		got []Settings
	)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(s Settings) {
			mu.Lock()
			got = append(got, s)
			mu.Unlock()
		}, WithDebounce(20*time.Millisecond))
	}()

	latest := func() (Settings, int) {
		mu.Lock()
		defer mu.Unlock()
		if len(got) == 0 {
			return Settings{}, 0
		}
		return got[len(got)-1], len(got)
	}

	// the watcher may still be starting, so keep writing new values until
	// one is noticed
	changed := DefaultSettings()
	changed.Button = "right"
	require.Eventually(t, func() bool {
		changed.Millis++
		assert.NoError(t, SaveSettings(path, changed))
		_, n := latest()
		return n > 0
	}, 5*time.Second, 100*time.Millisecond)

	// let in-flight writes settle, then rewrite the last delivered content
	time.Sleep(200 * time.Millisecond)
	last, n := latest()
	assert.Equal(t, "right", last.Button)
	assert.Greater(t, last.Millis, int64(100))
	require.NoError(t, SaveSettings(path, last))
	time.Sleep(200 * time.Millisecond)
	_, again := latest()
	assert.Equal(t, n, again, "unchanged rewrites must not be delivered")

	// invalid content is skipped
	require.NoError(t, os.WriteFile(path, []byte("millis: [\n"), 0o644))
	time.Sleep(200 * time.Millisecond)
	_, afterInvalid := latest()
	assert.Equal(t, n, afterInvalid)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatchReturnsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Watch(ctx, filepath.Join(t.TempDir(), "settings.yaml"), func(Settings) {
		t.Error("callback after cancel")
	})
	assert.NoError(t, err)
}
