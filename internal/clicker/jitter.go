package clicker

import (
	crand "crypto/rand"
	"encoding/binary"
	"math"
	"math/rand/v2"
	"time"
)

// Smoothing parameters of the drift model.
const (
	driftDecay  = 0.8
	driftWeight = 0.2
	noiseScale  = 0.5
)

// JitterTimer produces the wait before each cycle. With jitter enabled the
// delays stay within the configured bound around the base interval but
// neighbouring delays are correlated through a slowly moving drift term.
//
// A JitterTimer belongs to a single run and is not safe for concurrent use.
type JitterTimer struct {
	baseMs  int64
	boundMs int64
	enabled bool
	sigma   float64
	drift   float64
	rnd     *rand.Rand
}

// NewJitterTimer returns a timer for cfg with a freshly seeded generator.
func NewJitterTimer(cfg Config) *JitterTimer {
	return newJitterTimer(cfg, rand.NewPCG(entropySeed(), uint64(time.Now().UnixNano())))
}

func newJitterTimer(cfg Config, src rand.Source) *JitterTimer {
	cfg = cfg.normalized()
	sigma := 1.0
	if cfg.jitter && cfg.jitterMs > 0 {
		sigma = float64(cfg.jitterMs) / 3
	}
	return &JitterTimer{
		baseMs:  cfg.baseMs,
		boundMs: cfg.jitterMs,
		enabled: cfg.jitter,
		sigma:   sigma,
		rnd:     rand.New(src),
	}
}

// entropySeed reads a seed from the OS entropy source, falling back to the
// runtime generator if that fails.
func entropySeed() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return rand.Uint64()
	}
	return binary.LittleEndian.Uint64(b[:])
}

// NextMs returns the next delay in milliseconds. It is never below 1.
// With jitter disabled it returns the base interval and leaves the timer untouched.
func (t *JitterTimer) NextMs() int64 {
	if !t.enabled {
		return t.baseMs
	}

	step := t.rnd.NormFloat64() * t.sigma
	t.drift = driftDecay*t.drift + driftWeight*step
	noise := t.rnd.NormFloat64() * t.sigma * noiseScale

	bound := float64(t.boundMs)
	offset := math.Max(-bound, math.Min(bound, t.drift+noise))

	delay := t.baseMs + int64(math.Round(offset))
	if delay < 1 {
		delay = 1
	}
	return delay
}

// Next is NextMs as a time.Duration.
func (t *JitterTimer) Next() time.Duration {
	return time.Duration(t.NextMs()) * time.Millisecond
}

// Drift returns the current smoothed offset in milliseconds.
func (t *JitterTimer) Drift() float64 { return t.drift }
