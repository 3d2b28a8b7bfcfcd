package clicker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var errCleanupTimeout = errors.New("cleanup timeout exceeded")

// CleanupManager runs registered shutdown steps once, in registration order,
// bounded by a timeout.
type CleanupManager struct {
	mu          sync.Mutex
	resources   []CleanupResource
	timeout     time.Duration
	log         zerolog.Logger
	cleanupOnce sync.Once
	errs        []error
}

// CleanupResource represents a resource that needs cleanup
type CleanupResource interface {
	Cleanup() error
	Name() string
}

// CleanupFunc is a function-based cleanup resource
type CleanupFunc struct {
	name string
	fn   func() error
}

func (c *CleanupFunc) Cleanup() error { return c.fn() }

func (c *CleanupFunc) Name() string { return c.name }

// NewCleanupManager creates a cleanup manager. A non-positive timeout means 5s.
func NewCleanupManager(timeout time.Duration, log zerolog.Logger) *CleanupManager {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &CleanupManager{
		timeout: timeout,
		log:     log.With().Str("component", "cleanup").Logger(),
	}
}

// Register adds a resource to be cleaned up
func (cm *CleanupManager) Register(resource CleanupResource) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.resources = append(cm.resources, resource)
}

// RegisterFunc registers a cleanup function
func (cm *CleanupManager) RegisterFunc(name string, fn func() error) {
	cm.Register(&CleanupFunc{name: name, fn: fn})
}

// RegisterEngine registers stopping e. Stop waits for the loop to exit, so
// resources registered after it can be released safely.
func (cm *CleanupManager) RegisterEngine(e *Engine) {
	cm.RegisterFunc("engine", func() error {
		e.Stop()
		return nil
	})
}

// Execute performs the cleanup. Later calls return the errors of the first.
func (cm *CleanupManager) Execute() []error {
	cm.cleanupOnce.Do(func() {
		cm.errs = cm.executeWithTimeout()
	})
	return cm.errs
}

func (cm *CleanupManager) executeWithTimeout() []error {
	cm.mu.Lock()
	resources := make([]CleanupResource, len(cm.resources))
	copy(resources, cm.resources)
	cm.mu.Unlock()

	if len(resources) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cm.timeout)
	defer cancel()

	done := make(chan struct{})
	var cleanupErrors []error
	var mu sync.Mutex

	go func() {
		defer close(done)
		for _, resource := range resources {
			func() {
				defer func() {
					if r := recover(); r != nil {
						mu.Lock()
						cleanupErrors = append(cleanupErrors, fmt.Errorf("%s: panic during cleanup: %v", resource.Name(), r))
						mu.Unlock()
						cm.log.Error().Str("resource", resource.Name()).Interface("panic", r).Msg("panic during cleanup")
					}
				}()

				if err := resource.Cleanup(); err != nil {
					mu.Lock()
					cleanupErrors = append(cleanupErrors, fmt.Errorf("%s: %w", resource.Name(), err))
					mu.Unlock()
					cm.log.Warn().Err(err).Str("resource", resource.Name()).Msg("cleanup failed")
					return
				}
				cm.log.Debug().Str("resource", resource.Name()).Msg("cleaned up")
			}()
		}
	}()

	select {
	case <-done:
		return cleanupErrors
	case <-ctx.Done():
		cm.log.Warn().Dur("timeout", cm.timeout).Msg("cleanup timed out, some resources may not have been released")
		mu.Lock()
		defer mu.Unlock()
		return append(cleanupErrors, errCleanupTimeout)
	}
}
