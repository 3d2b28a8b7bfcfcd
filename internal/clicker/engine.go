package clicker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Engine runs a click schedule on a background goroutine. At most one run is
// active at a time. Start and Stop may be called from any goroutine.
type Engine struct {
	clicker Clicker
	log     zerolog.Logger
	spacing time.Duration
	hint    ExecutionHint
	maxLag  time.Duration

	failRate  rate.Limit
	failBurst int

	// mu serializes Start and Stop. The loop goroutine never takes it.
	mu      sync.Mutex
	running atomic.Bool
	active  *run

	// last holds the current or most recent run for lock-free snapshots
	last atomic.Pointer[run]
}

type run struct {
	id      string
	cfg     Config
	started time.Time
	endTime time.Time

	cancel   context.CancelFunc
	done     chan struct{}
	autoStop *time.Timer
	limiter  *rate.Limiter
	stopped  atomic.Bool
	counters
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for run lifecycle and click failures.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log.With().Str("component", "engine").Logger() }
}

// WithBurstSpacing sets the pause between clicks of a double or triple burst.
func WithBurstSpacing(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.spacing = d
		}
	}
}

// WithExecutionHint installs a hint applied to the loop goroutine of every run.
func WithExecutionHint(h ExecutionHint) Option {
	return func(e *Engine) { e.hint = h }
}

// WithMaxLag lets a run that fell more than d behind its schedule, for
// example after a system suspend, skip the missed cycles and continue from
// the current time. By default every missed cycle is still performed and the
// schedule never shifts.
func WithMaxLag(d time.Duration) Option {
	return func(e *Engine) { e.maxLag = d }
}

// WithFailureLogRate limits how often click failures are logged.
// Failures are always counted regardless of the limit.
func WithFailureLogRate(limit rate.Limit, burst int) Option {
	return func(e *Engine) {
		e.failRate = limit
		if burst > 0 {
			e.failBurst = burst
		}
	}
}

// NewEngine creates an idle engine that clicks through c.
func NewEngine(c Clicker, opts ...Option) *Engine {
	e := &Engine{
		clicker:   c,
		log:       zerolog.Nop(),
		spacing:   DefaultBurstSpacing,
		failRate:  rate.Every(time.Second),
		failBurst: 3,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// IsRunning reports whether a run is active.
func (e *Engine) IsRunning() bool {
	return e.running.Load()
}

// Start begins clicking with cfg. It returns immediately and does nothing if
// a run is already active.
func (e *Engine) Start(cfg Config) {
	e.start(cfg, 0)
}

// StartFor is like Start but stops the run automatically after d.
func (e *Engine) StartFor(cfg Config, d time.Duration) {
	e.start(cfg, d)
}

func (e *Engine) start(cfg Config, d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active != nil {
		e.log.Debug().Msg("start ignored: already running")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	r := &run{
		id:      uuid.NewString(),
		cfg:     cfg.normalized(),
		started: time.Now(),
		cancel:  cancel,
		done:    make(chan struct{}),
		limiter: rate.NewLimiter(e.failRate, e.failBurst),
	}
	if d > 0 {
		r.endTime = r.started.Add(d)
		r.autoStop = time.AfterFunc(d, func() { e.stopRun(r, "timer") })
	}

	e.active = r
	e.last.Store(r)
	e.running.Store(true)

	log := e.log.With().Str("run", r.id).Logger()
	log.Info().
		Stringer("config", r.cfg).
		Dur("spacing", e.spacing).
		Dur("limit", d).
		Msg("run started")

	go e.loop(ctx, r, NewJitterTimer(r.cfg), log)
}

// Stop cancels the active run and waits for its goroutine to exit. Once Stop
// returns no further clicks are performed. Calling Stop while idle is a no-op.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked(e.active, "stop")
}

func (e *Engine) stopRun(r *run, reason string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active != r {
		return
	}
	e.stopLocked(r, reason)
}

func (e *Engine) stopLocked(r *run, reason string) {
	if r == nil {
		e.log.Debug().Msg("stop ignored: not running")
		return
	}

	if r.autoStop != nil {
		r.autoStop.Stop()
	}
	r.cancel()
	<-r.done

	r.stopped.Store(true)
	e.active = nil
	e.running.Store(false)

	e.log.Info().
		Str("run", r.id).
		Str("reason", reason).
		Int64("cycles", r.cycles.Load()).
		Int64("clicks", r.clicks.Load()).
		Int64("failures", r.failures.Load()).
		Dur("elapsed", time.Since(r.started)).
		Msg("run stopped")
}

// Stats returns counters for the current run, or the last one if idle.
func (e *Engine) Stats() Stats {
	r := e.last.Load()
	if r == nil {
		return Stats{}
	}
	return Stats{
		RunID:    r.id,
		Started:  r.started,
		Cycles:   r.cycles.Load(),
		Clicks:   r.clicks.Load(),
		Failures: r.failures.Load(),
		Running:  !r.stopped.Load(),
	}
}

// Health reports whether the most recent click succeeded.
func (e *Engine) Health() Health {
	r := e.last.Load()
	if r == nil {
		return HealthUnknown
	}
	return r.health()
}

// TimeRemaining returns how long a timed run has left, or 0.
func (e *Engine) TimeRemaining() time.Duration {
	if !e.running.Load() {
		return 0
	}
	r := e.last.Load()
	if r == nil || r.endTime.IsZero() {
		return 0
	}
	remaining := time.Until(r.endTime)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// loop is the body of a run. Each cycle deadline is the previous deadline
// plus the next jitter delay, so time spent clicking never shifts the cadence.
func (e *Engine) loop(ctx context.Context, r *run, timer *JitterTimer, log zerolog.Logger) {
	defer close(r.done)

	if e.hint != nil {
		release, err := e.hint.Apply()
		if err != nil {
			log.Debug().Err(err).Msg("execution hint not applied")
		} else if release != nil {
			defer release()
		}
	}

	deadline := r.started
	for {
		delay := timer.Next()
		deadline = deadline.Add(delay)
		if e.maxLag > 0 {
			if lag := time.Since(deadline); lag > e.maxLag {
				log.Debug().Dur("lag", lag).Msg("schedule resynced")
				deadline = time.Now()
			}
		}
		if !waitUntil(ctx, deadline) {
			return
		}
		if !e.burst(ctx, r, log) {
			return
		}
		log.Trace().Dur("delay", delay).Dur("late", time.Since(deadline)).Float64("drift", timer.Drift()).Msg("cycle")
	}
}

// burst performs one cycle's clicks. It returns false if the run was
// cancelled before the burst completed.
func (e *Engine) burst(ctx context.Context, r *run, log zerolog.Logger) bool {
	n := r.cfg.BurstCount()
	for i := 0; i < n; i++ {
		if i > 0 && !waitUntil(ctx, time.Now().Add(e.spacing)) {
			return false
		}
		if ctx.Err() != nil {
			return false
		}
		e.click(r, log)
	}
	r.cycles.Add(1)
	return true
}

func (e *Engine) click(r *run, log zerolog.Logger) {
	button := r.cfg.Button()
	if err := safeClick(e.clicker, button); err != nil {
		failures := r.recordFailure()
		if r.limiter.Allow() {
			log.Warn().Err(err).Stringer("button", button).Int64("failures", failures).Msg("click failed")
		}
		return
	}
	r.recordSuccess()
}

func safeClick(c Clicker, button Button) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("clicker panic: %v", p)
		}
	}()
	return c.Click(button)
}
