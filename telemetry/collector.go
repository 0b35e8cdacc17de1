package telemetry

import (
	"math"
	"sort"
)

// Sample is the scene state measured at the end of a window.
type Sample struct {
	Progress  float32
	Phase     string
	AutoMode  bool
	Particles int

	VisibleParticles   int
	DisplacedParticles int

	SurfaceDiscarded int
	SurfaceEdge      int
	SurfaceBase      int

	MeanDrift float32
	MaxDrift  float32

	// Distances is read to compute drift percentiles; it is not retained.
	Distances []float32
}

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	tetherResets int
	flips        int
	lastPhase    string

	// Scratch for percentile sorting, reused across flushes
	sorted []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(math.Round(windowDurationSec / float64(dt)))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// Record adds an event to the current window.
func (c *Collector) Record(ev Event) {
	switch ev.Type {
	case EventTetherReset:
		c.tetherResets += ev.Count
	case EventPhaseFlip:
		c.flips += ev.Count
		c.lastPhase = ev.Phase
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, s Sample) WindowStats {
	var visibleFrac float64
	if s.Particles > 0 {
		visibleFrac = float64(s.VisibleParticles) / float64(s.Particles)
	}

	c.sorted = c.sorted[:0]
	for _, d := range s.Distances {
		c.sorted = append(c.sorted, float64(d))
	}
	sort.Float64s(c.sorted)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Progress: float64(s.Progress),
		Phase:    s.Phase,
		AutoMode: s.AutoMode,

		Particles:          s.Particles,
		VisibleParticles:   s.VisibleParticles,
		DisplacedParticles: s.DisplacedParticles,
		VisibleFraction:    visibleFrac,

		SurfaceDiscarded: s.SurfaceDiscarded,
		SurfaceEdge:      s.SurfaceEdge,
		SurfaceBase:      s.SurfaceBase,

		MeanDrift: float64(s.MeanDrift),
		MaxDrift:  float64(s.MaxDrift),
		DriftP50:  Percentile(c.sorted, 0.50),
		DriftP90:  Percentile(c.sorted, 0.90),

		TetherResets: c.tetherResets,
		Flips:        c.flips,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.tetherResets = 0
	c.flips = 0

	return stats
}

// LastPhase returns the phase named by the most recent flip event.
func (c *Collector) LastPhase() string {
	return c.lastPhase
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
