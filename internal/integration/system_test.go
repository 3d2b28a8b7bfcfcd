package integration

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stigoleg/autoclicker/internal/clicker"
)

// TestUnexpectedTermination verifies a killed process leaves nothing clicking.
func TestUnexpectedTermination(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping system test in short mode")
	}

	out := filepath.Join(t.TempDir(), "clicks.log")
	cmd := startHelper(t, out)

	require.NoError(t, cmd.Process.Kill())
	_ = cmd.Wait()

	before := len(readLines(t, out))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, before, len(readLines(t, out)), "clicks after kill")
}

// TestConcurrentEngines verifies engines sharing a process run independently.
func TestConcurrentEngines(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping system test in short mode")
	}

	const n = 3
	backends := make([]*countingClicker, n)
	engines := make([]*clicker.Engine, n)
	for i := range engines {
		backends[i] = &countingClicker{}
		engines[i] = clicker.NewEngine(backends[i])
	}

	var wg sync.WaitGroup
	for i, e := range engines {
		wg.Add(1)
		go func(i int, e *clicker.Engine) {
			defer wg.Done()
			e.Start(clicker.NewConfig(0, 0, 0, int64(5*(i+1)), 0, false, 0, 0))
		}(i, e)
	}
	wg.Wait()

	for i, b := range backends {
		require.Eventually(t, func() bool { return b.clicks.Load() > 2 }, time.Second, time.Millisecond,
			"engine %d should click", i)
	}

	engines[0].Stop()
	assert.False(t, engines[0].IsRunning())
	for i := 1; i < n; i++ {
		assert.True(t, engines[i].IsRunning(), "stopping one engine must not affect engine "+strconv.Itoa(i))
	}

	ids := map[string]bool{}
	for _, e := range engines {
		e.Stop()
		ids[e.Stats().RunID] = true
	}
	assert.Len(t, ids, n, "each run gets its own id")
}

// countingRunner satisfies ui.Runner without clicking.
type countingRunner struct {
	mu      sync.Mutex
	running bool
}

func (r *countingRunner) Start(clicker.Config) { r.set(true) }

func (r *countingRunner) StartFor(clicker.Config, time.Duration) { r.set(true) }

func (r *countingRunner) Stop() { r.set(false) }

func (r *countingRunner) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

func (r *countingRunner) Stats() clicker.Stats { return clicker.Stats{} }

func (r *countingRunner) Health() clicker.Health { return clicker.HealthUnknown }

func (r *countingRunner) TimeRemaining() time.Duration { return 0 }

func (r *countingRunner) set(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.running = v
}

func getenvBool(name string) bool {
	v, _ := strconv.ParseBool(os.Getenv(name))
	return v
}
