package telemetry

import "log/slog"

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Dissolve state at window end
	Progress float64 `csv:"progress"`
	Phase    string  `csv:"phase"`
	AutoMode bool    `csv:"auto_mode"`

	// Swarm at window end
	Particles          int     `csv:"particles"`
	VisibleParticles   int     `csv:"visible_particles"`
	DisplacedParticles int     `csv:"displaced_particles"`
	VisibleFraction    float64 `csv:"visible_fraction"`

	// Surface vertices by mask decision
	SurfaceDiscarded int `csv:"surface_discarded"`
	SurfaceEdge      int `csv:"surface_edge"`
	SurfaceBase      int `csv:"surface_base"`

	// Drift distribution
	MeanDrift float64 `csv:"mean_drift"`
	MaxDrift  float64 `csv:"max_drift"`
	DriftP50  float64 `csv:"drift_p50"`
	DriftP90  float64 `csv:"drift_p90"`

	// Events during window
	TetherResets int `csv:"tether_resets"`
	Flips        int `csv:"flips"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// SurfaceVisible returns the number of surface vertices still drawn.
func (s WindowStats) SurfaceVisible() int {
	return s.SurfaceEdge + s.SurfaceBase
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Float64("progress", s.Progress),
		slog.String("phase", s.Phase),
		slog.Bool("auto_mode", s.AutoMode),
		slog.Int("particles", s.Particles),
		slog.Int("visible_particles", s.VisibleParticles),
		slog.Int("displaced_particles", s.DisplacedParticles),
		slog.Float64("visible_fraction", s.VisibleFraction),
		slog.Int("surface_discarded", s.SurfaceDiscarded),
		slog.Int("surface_edge", s.SurfaceEdge),
		slog.Int("surface_base", s.SurfaceBase),
		slog.Float64("mean_drift", s.MeanDrift),
		slog.Float64("max_drift", s.MaxDrift),
		slog.Float64("drift_p50", s.DriftP50),
		slog.Float64("drift_p90", s.DriftP90),
		slog.Int("tether_resets", s.TetherResets),
		slog.Int("flips", s.Flips),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"progress", s.Progress,
		"phase", s.Phase,
		"auto_mode", s.AutoMode,
		"particles", s.Particles,
		"visible_particles", s.VisibleParticles,
		"displaced_particles", s.DisplacedParticles,
		"surface_discarded", s.SurfaceDiscarded,
		"surface_edge", s.SurfaceEdge,
		"surface_base", s.SurfaceBase,
		"mean_drift", s.MeanDrift,
		"max_drift", s.MaxDrift,
		"drift_p90", s.DriftP90,
		"tether_resets", s.TetherResets,
		"flips", s.Flips,
	)
}

// NoiseProfileRow is the CSV form of the mask noise distribution over the base shape.
type NoiseProfileRow struct {
	Seed           int64   `csv:"seed"`
	NoiseKind      string  `csv:"noise_kind"`
	Frequency      float64 `csv:"frequency"`
	Amplitude      float64 `csv:"amplitude"`
	Vertices       int     `csv:"vertices"`
	Min            float64 `csv:"min"`
	Max            float64 `csv:"max"`
	Mean           float64 `csv:"mean"`
	StdDev         float64 `csv:"std"`
	P10            float64 `csv:"p10"`
	P50            float64 `csv:"p50"`
	P90            float64 `csv:"p90"`
	SweepCoversAll bool    `csv:"sweep_covers_all"`
}
