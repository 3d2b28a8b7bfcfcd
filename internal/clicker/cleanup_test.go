package clicker

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupManagerOrderAndErrors(t *testing.T) {
	cm := NewCleanupManager(time.Second, zerolog.Nop())

	var order []string
	cm.RegisterFunc("first", func() error {
		order = append(order, "first")
		return nil
	})
	cm.RegisterFunc("broken", func() error {
		order = append(order, "broken")
		return errors.New("device busy")
	})
	cm.RegisterFunc("panics", func() error {
		order = append(order, "panics")
		panic("boom")
	})
	cm.RegisterFunc("last", func() error {
		order = append(order, "last")
		return nil
	})

	errs := cm.Execute()
	assert.Equal(t, []string{"first", "broken", "panics", "last"}, order)
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), "broken")
	assert.Contains(t, errs[1].Error(), "panic")

	// Execute runs only once.
	again := cm.Execute()
	assert.Equal(t, errs, again)
	assert.Len(t, order, 4)
}

func TestCleanupManagerTimeout(t *testing.T) {
	cm := NewCleanupManager(50*time.Millisecond, zerolog.Nop())
	release := make(chan struct{})
	defer close(release)
	cm.RegisterFunc("stuck", func() error {
		<-release
		return nil
	})

	begin := time.Now()
	errs := cm.Execute()
	assert.Less(t, time.Since(begin), time.Second)
	require.NotEmpty(t, errs)
	assert.ErrorIs(t, errs[len(errs)-1], errCleanupTimeout)
}

func TestCleanupManagerStopsEngine(t *testing.T) {
	c := &recordingClicker{}
	e := NewEngine(c)
	e.Start(NewConfig(0, 0, 0, 1, 0, false, 0, 0))
	require.Eventually(t, func() bool { return c.count() > 0 }, time.Second, time.Millisecond)

	closed := false
	cm := NewCleanupManager(time.Second, zerolog.Nop())
	cm.RegisterEngine(e)
	cm.RegisterFunc("clicker", func() error {
		assert.False(t, e.IsRunning(), "engine must be stopped before its clicker is released")
		closed = true
		return nil
	})

	assert.Empty(t, cm.Execute())
	assert.True(t, closed)
	assert.False(t, e.IsRunning())
}
