package game

import (
	"log/slog"

	"github.com/pthm-cable/dissolve/config"
	"github.com/pthm-cable/dissolve/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.sample())
	perfStats := g.perfCollector.Stats()

	// Call stats callback if provided
	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		g.LogPerfStats()
	}

	// Write to CSV if output manager is enabled
	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	// Check for bookmarks
	bookmarks := g.bookmarkDetector.Check(stats)
	for _, bm := range bookmarks {
		if g.logStats {
			bm.LogBookmark()
		}

		if g.outputManager != nil {
			if err := g.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}

		// Save snapshot on bookmark
		if g.snapshotDir != "" {
			g.saveSnapshot(&bm)
		}
	}
}

// sample measures the scene for the window being flushed.
func (g *Game) sample() telemetry.Sample {
	mean, maxDrift := g.field.DriftStats()
	return telemetry.Sample{
		Progress:           g.state.Progress,
		Phase:              g.osc.Phase().String(),
		AutoMode:           g.osc.Enabled(),
		Particles:          g.field.Count(),
		VisibleParticles:   g.frame.VisibleCount,
		DisplacedParticles: g.frame.DisplacedCount,
		SurfaceDiscarded:   g.counts.Discarded,
		SurfaceEdge:        g.counts.Edge,
		SurfaceBase:        g.counts.Base,
		MeanDrift:          mean,
		MaxDrift:           maxDrift,
		Distances:          g.field.Distances(),
	}
}

// SaveSnapshot writes the current scene to the snapshot directory.
func (g *Game) SaveSnapshot() (string, error) {
	dir := g.snapshotDir
	if dir == "" {
		dir = "snapshots"
	}
	return telemetry.SaveSnapshot(g.createSnapshot(nil), dir)
}

// saveSnapshot creates and saves a snapshot to disk.
func (g *Game) saveSnapshot(bookmark *telemetry.Bookmark) {
	snapshot := g.createSnapshot(bookmark)

	path, err := telemetry.SaveSnapshot(snapshot, g.snapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}

	slog.Info("snapshot saved", "path", path, "tick", g.tick)
}

// createSnapshot builds a snapshot from the current state.
func (g *Game) createSnapshot(bookmark *telemetry.Bookmark) *telemetry.Snapshot {
	return &telemetry.Snapshot{
		Version:   telemetry.SnapshotVersion,
		RNGSeed:   g.rngSeed,
		NoiseKind: g.noiseKind,
		Device:    config.Cfg().Device,
		Tick:      g.tick,
		SimTime:   g.simTime,
		Dissolve:  telemetry.CaptureDissolve(g.state),
		Oscillator: telemetry.OscillatorSnapshot{
			Enabled: g.osc.Enabled(),
			Phase:   g.osc.Phase().String(),
			Flips:   g.osc.Flips(),
		},
		Particles: telemetry.CaptureParticles(g.field),
		Bookmark:  bookmark,
	}
}
