package game

import (
	"log/slog"

	"github.com/pthm-cable/dissolve/systems"
	"github.com/pthm-cable/dissolve/telemetry"
)

// profileNoise measures the mask noise over the base shape and reports whether the
// oscillator bounds sweep the surface from whole to fully dissolved.
func (g *Game) profileNoise() {
	g.profile = systems.ProfileNoise(g.noise.Values(g.state))
	covers := g.profile.Covers(float64(g.osc.Low), float64(g.osc.High))

	slog.Info("noise profile",
		"profile", g.profile,
		"oscillator_low", g.osc.Low,
		"oscillator_high", g.osc.High,
		"sweep_covers_all", covers,
	)
	if !covers {
		slog.Warn("oscillator range does not fully dissolve and restore the surface",
			"solid_below", g.profile.SolidBelow,
			"dissolved_above", g.profile.DissolvedAbove,
		)
	}

	if g.outputManager != nil {
		row := telemetry.NoiseProfileRow{
			Seed:           g.rngSeed,
			NoiseKind:      g.noiseKind,
			Frequency:      float64(g.state.Frequency),
			Amplitude:      float64(g.state.Amplitude),
			Vertices:       g.profile.Count,
			Min:            g.profile.Min,
			Max:            g.profile.Max,
			Mean:           g.profile.Mean,
			StdDev:         g.profile.StdDev,
			P10:            g.profile.P10,
			P50:            g.profile.P50,
			P90:            g.profile.P90,
			SweepCoversAll: covers,
		}
		if err := g.outputManager.WriteNoiseProfile(row); err != nil {
			slog.Error("failed to write noise profile", "error", err)
		}
	}
}

// LogPerfStats logs the rolling step timing breakdown.
func (g *Game) LogPerfStats() {
	stats := g.perfCollector.Stats()
	slog.Info("perf",
		"tick", g.tick,
		"steps_per_update", g.stepsPerUpdate,
		"perf", stats,
	)
}

// LogState logs a one-line summary of the scene.
func (g *Game) LogState() {
	mean, maxDrift := g.field.DriftStats()
	slog.Info("scene",
		"tick", g.tick,
		"progress", g.state.Progress,
		"phase", g.osc.Phase().String(),
		"auto", g.osc.Enabled(),
		"surface_visible", g.counts.Visible(),
		"surface_discarded", g.counts.Discarded,
		"particles_visible", g.frame.VisibleCount,
		"particles_displaced", g.frame.DisplacedCount,
		"mean_drift", mean,
		"max_drift", maxDrift,
	)
}
