package telemetry

import (
	"log/slog"
	"time"
)

// Step phases, in the order the scene runs them.
const (
	PhaseParticles  = "particles"
	PhaseOscillator = "oscillator"
	PhaseMotion     = "motion"
	PhaseMask       = "mask"
	PhaseTelemetry  = "telemetry"
)

var phaseOrder = [...]string{PhaseParticles, PhaseOscillator, PhaseMotion, PhaseMask, PhaseTelemetry}

const phaseCount = len(phaseOrder)

func phaseIndex(name string) int {
	for i, p := range phaseOrder {
		if p == name {
			return i
		}
	}
	return -1
}

// stepTiming is one step's total and per-phase wall time.
type stepTiming struct {
	total  time.Duration
	phases [phaseCount]time.Duration
	ran    [phaseCount]bool
}

// PerfCollector keeps the step timings of the last windowSize steps in a ring.
type PerfCollector struct {
	ring  []stepTiming
	next  int
	count int

	cur        stepTiming
	stepStart  time.Time
	phase      int
	phaseStart time.Time

	lastFrame time.Time
	frameTime time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize steps
// (60 if windowSize < 1).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{ring: make([]stepTiming, windowSize), phase: -1}
}

// StartTick starts timing a step.
func (p *PerfCollector) StartTick() {
	p.cur = stepTiming{}
	p.phase = -1
	p.stepStart = time.Now()
}

// StartPhase closes the running phase, if any, and opens the named one.
// Names outside the step phases are timed as part of the step only.
func (p *PerfCollector) StartPhase(name string) {
	now := time.Now()
	p.closePhase(now)
	p.phase = phaseIndex(name)
	p.phaseStart = now
}

// EndTick closes the step and pushes it into the ring.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.phase = -1
	p.cur.total = now.Sub(p.stepStart)

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	if p.count < len(p.ring) {
		p.count++
	}
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase < 0 {
		return
	}
	p.cur.phases[p.phase] += now.Sub(p.phaseStart)
	p.cur.ran[p.phase] = true
}

// RecordFrame marks the end of a rendered frame.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frameTime = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats summarizes the window. PhaseAvg and PhasePct only hold phases that
// ran at least once.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // Share of the average step, in percent

	TicksPerSecond float64

	// Zero in headless runs
	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the steps currently in the window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg:      make(map[string]time.Duration, phaseCount),
		PhasePct:      make(map[string]float64, phaseCount),
		FrameDuration: p.frameTime,
	}
	if p.frameTime > 0 {
		s.FPS = float64(time.Second) / float64(p.frameTime)
	}
	if p.count == 0 {
		return s
	}

	var total time.Duration
	var sums [phaseCount]time.Duration
	var ran [phaseCount]bool
	for i, st := range p.ring[:p.count] {
		total += st.total
		if i == 0 || st.total < s.MinTickDuration {
			s.MinTickDuration = st.total
		}
		if st.total > s.MaxTickDuration {
			s.MaxTickDuration = st.total
		}
		for j := range sums {
			sums[j] += st.phases[j]
			ran[j] = ran[j] || st.ran[j]
		}
	}

	n := time.Duration(p.count)
	s.AvgTickDuration = total / n
	if s.AvgTickDuration > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTickDuration)
	}
	for j, name := range phaseOrder {
		if !ran[j] {
			continue
		}
		avg := sums[j] / n
		s.PhaseAvg[name] = avg
		if s.AvgTickDuration > 0 {
			s.PhasePct[name] = 100 * float64(avg) / float64(s.AvgTickDuration)
		}
	}
	return s
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_step_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("max_step_us", s.MaxTickDuration.Microseconds()),
		slog.Int("steps_per_sec", int(s.TicksPerSecond)),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for _, name := range phaseOrder {
		if pct, ok := s.PhasePct[name]; ok {
			attrs = append(attrs, slog.Float64(name+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	WindowEnd     int32   `csv:"window_end"`
	AvgTickUS     int64   `csv:"avg_step_us"`
	MinTickUS     int64   `csv:"min_step_us"`
	MaxTickUS     int64   `csv:"max_step_us"`
	TicksPerSec   float64 `csv:"steps_per_sec"`
	FPS           float64 `csv:"fps"`
	ParticlesPct  float64 `csv:"particles_pct"`
	OscillatorPct float64 `csv:"oscillator_pct"`
	MotionPct     float64 `csv:"motion_pct"`
	MaskPct       float64 `csv:"mask_pct"`
	TelemetryPct  float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats for the window ending at windowEnd.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:     windowEnd,
		AvgTickUS:     s.AvgTickDuration.Microseconds(),
		MinTickUS:     s.MinTickDuration.Microseconds(),
		MaxTickUS:     s.MaxTickDuration.Microseconds(),
		TicksPerSec:   s.TicksPerSecond,
		FPS:           s.FPS,
		ParticlesPct:  s.PhasePct[PhaseParticles],
		OscillatorPct: s.PhasePct[PhaseOscillator],
		MotionPct:     s.PhasePct[PhaseMotion],
		MaskPct:       s.PhasePct[PhaseMask],
		TelemetryPct:  s.PhasePct[PhaseTelemetry],
	}
}
