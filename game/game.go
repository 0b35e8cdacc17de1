// Package game drives the dissolve scene: it owns the shared dissolve state, the
// particle field, the oscillator and the layer entities, and steps them once per
// simulation tick. It has no window dependency; the viewer package draws it.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/dissolve/components"
	"github.com/pthm-cable/dissolve/config"
	"github.com/pthm-cable/dissolve/systems"
	"github.com/pthm-cable/dissolve/telemetry"
)

// Options configures a game instance.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	SnapshotDir    string
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
	AutoDissolve   bool

	// AutoDissolveSet marks AutoDissolve as explicitly chosen, so it wins over
	// the oscillator state stored in a restored snapshot.
	AutoDissolveSet bool

	// Noise overrides the oracle built from the config noise kind.
	Noise systems.NoiseOracle

	// Snapshot, when set, is restored after the scene is built.
	Snapshot *telemetry.Snapshot

	// StatsCallback is called with every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete scene state.
type Game struct {
	world   *ecs.World
	rng     *rand.Rand
	rngSeed int64

	layerMapper *ecs.Map3[components.Transform, components.Motion, components.Layer]
	layerFilter *ecs.Filter3[components.Transform, components.Motion, components.Layer]

	shape     *systems.TorusKnot
	noiseKind string
	oracle    systems.NoiseOracle
	state     *systems.DissolveState
	field     *systems.ParticleField
	osc       *systems.DissolveOscillator
	noise     *systems.NoiseCache
	profile   systems.NoiseProfile
	controls  Controls
	frame     *SwarmFrame
	counts    systems.MaskCounts

	pixelDensity float32

	// State
	tick           int32
	simTime        float32
	paused         bool
	stepsPerUpdate int
	headless       bool

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	snapshotDir      string
	logStats         bool
	statsCallback    func(telemetry.WindowStats)
}

// NewGameWithOptions builds the scene from the global config.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()
	profile := cfg.Derived.Profile

	g := &Game{
		world:          ecs.NewWorld(),
		rng:            rand.New(rand.NewSource(opts.Seed)),
		rngSeed:        opts.Seed,
		noiseKind:      cfg.Noise.Kind,
		pixelDensity:   float32(cfg.Screen.PixelDensity),
		stepsPerUpdate: opts.StepsPerUpdate,
		headless:       opts.Headless,
		snapshotDir:    opts.SnapshotDir,
		logStats:       opts.LogStats,
		statsCallback:  opts.StatsCallback,
	}
	if g.stepsPerUpdate < 1 {
		g.stepsPerUpdate = 1
	}
	if g.pixelDensity <= 0 {
		g.pixelDensity = 1
	}
	g.layerMapper = ecs.NewMap3[components.Transform, components.Motion, components.Layer](g.world)
	g.layerFilter = ecs.NewFilter3[components.Transform, components.Motion, components.Layer](g.world)

	// Base shape
	g.shape = systems.NewTorusKnot(
		float32(cfg.Shape.Radius), float32(cfg.Shape.Tube),
		profile.SegmentsTubular, profile.SegmentsRadial,
		cfg.Shape.P, cfg.Shape.Q,
	)

	// Noise oracle
	g.oracle = opts.Noise
	if g.oracle == nil {
		oracle, err := systems.NewNoiseOracle(cfg.Noise.Kind, opts.Seed)
		if err != nil {
			return nil, fmt.Errorf("creating noise oracle: %w", err)
		}
		g.oracle = oracle
	} else {
		g.noiseKind = "custom"
	}

	// Shared dissolve state, read by both layers
	g.state = systems.NewDissolveState(
		float32(cfg.Dissolve.Progress),
		float32(cfg.Dissolve.EdgeWidth),
		float32(cfg.Dissolve.Frequency),
		float32(cfg.Dissolve.Amplitude),
		toRGB(cfg.Derived.EdgeColor),
	)
	g.noise = systems.NewNoiseCache(g.oracle, g.shape.Positions)

	g.osc = systems.NewDissolveOscillator(
		float32(cfg.Oscillator.Low),
		float32(cfg.Oscillator.High),
		cfg.Derived.OscillatorStep,
		systems.ParseDisablePolicy(cfg.Oscillator.DisablePolicy),
		opts.AutoDissolve || cfg.Oscillator.Enabled,
	)

	// Particle swarm, one particle per base vertex
	pc := cfg.Particles
	g.field = systems.NewParticleField(g.shape.Positions, g.rng, systems.SeedRanges{
		TetherMin: float32(pc.TetherMin),
		TetherMax: float32(pc.TetherMax),
		VelXYMin:  float32(pc.VelocityXYMin),
		VelXYMax:  float32(pc.VelocityXYMax),
		VelZMax:   float32(pc.VelocityZMax),
	})
	g.frame = NewSwarmFrame(g.field.Count())
	g.controls = Controls{
		SpeedFactor: float32(pc.SpeedFactor),
		VelocityFactor: [3]float32{
			float32(pc.VelocityFactor[0]),
			float32(pc.VelocityFactor[1]),
			float32(pc.VelocityFactor[2]),
		},
		WaveAmplitude: float32(pc.WaveAmplitude),
		ZWave:         pc.ZWave,
		SpinIncrement: float32(pc.SpinIncrement),
		BaseSize:      float32(profile.ParticleBaseSize),
	}

	g.spawnLayers()

	// Telemetry
	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	g.collector = telemetry.NewCollector(statsWindow, cfg.Derived.DT32)
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	g.bookmarkDetector = telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		return nil, err
	}

	if opts.Snapshot != nil {
		if err := g.restoreSnapshot(opts.Snapshot, opts); err != nil {
			return nil, err
		}
	}

	g.profileNoise()
	g.refreshFrame(nil)

	slog.Info("scene ready",
		"seed", g.rngSeed,
		"device", cfg.Device,
		"noise", g.noiseKind,
		"particles", g.field.Count(),
		"triangles", g.shape.TriangleCount(),
		"auto_dissolve", g.osc.Enabled(),
	)

	return g, nil
}

// toRGB converts a config color to the simulation color type.
func toRGB(c config.RGB) systems.RGB {
	return systems.RGB{R: c.R, G: c.G, B: c.B}
}

// restoreSnapshot applies a saved scene on top of the freshly built one.
func (g *Game) restoreSnapshot(s *telemetry.Snapshot, opts Options) error {
	if s.RNGSeed != g.rngSeed {
		slog.Warn("snapshot seed differs from run seed; particle seeds will not match",
			"snapshot_seed", s.RNGSeed, "seed", g.rngSeed)
	}
	if err := s.ApplyTo(g.state, g.osc, g.field); err != nil {
		return fmt.Errorf("restoring snapshot: %w", err)
	}
	if restored := g.osc.Enabled(); restored != opts.AutoDissolve {
		if opts.AutoDissolveSet {
			g.osc.SetEnabled(opts.AutoDissolve)
			slog.Info("auto dissolve overrides snapshot", "enabled", opts.AutoDissolve, "snapshot_enabled", restored)
		} else {
			slog.Info("auto dissolve taken from snapshot", "enabled", restored)
		}
	}
	g.tick = s.Tick
	g.simTime = s.SimTime
	g.applyMotion()
	slog.Info("snapshot restored", "tick", g.tick, "progress", g.state.Progress)
	return nil
}

// Unload releases resources.
func (g *Game) Unload() {
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output manager", "error", err)
		}
	}
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// SimTime returns elapsed simulation seconds.
func (g *Game) SimTime() float32 {
	return g.simTime
}

// State returns the shared dissolve state.
func (g *Game) State() *systems.DissolveState {
	return g.state
}

// Field returns the particle field.
func (g *Game) Field() *systems.ParticleField {
	return g.field
}

// Oscillator returns the auto-dissolve oscillator.
func (g *Game) Oscillator() *systems.DissolveOscillator {
	return g.osc
}

// Shape returns the base shape.
func (g *Game) Shape() *systems.TorusKnot {
	return g.shape
}

// SurfaceNoise returns the scaled mask noise per base vertex for the current state.
func (g *Game) SurfaceNoise() []float32 {
	return g.noise.Values(g.state)
}

// NoiseResamples returns how many times the noise cache was rebuilt after a
// frequency change.
func (g *Game) NoiseResamples() int {
	return g.noise.Resamples()
}

// Frame returns the swarm draw data built by the last step.
func (g *Game) Frame() *SwarmFrame {
	return g.frame
}

// Counts returns the surface mask tallies from the last step.
func (g *Game) Counts() systems.MaskCounts {
	return g.counts
}

// Controls returns a copy of the current swarm controls.
func (g *Game) Controls() Controls {
	return g.controls
}

// NoiseProfile returns the mask noise distribution over the base shape.
func (g *Game) NoiseProfile() systems.NoiseProfile {
	return g.profile
}

// Paused reports whether stepping is suspended.
func (g *Game) Paused() bool {
	return g.paused
}

// SetPaused suspends or resumes stepping.
func (g *Game) SetPaused(p bool) {
	g.paused = p
}

// StepsPerUpdate returns the number of ticks run per update call.
func (g *Game) StepsPerUpdate() int {
	return g.stepsPerUpdate
}

// SetStepsPerUpdate sets the ticks per update call, clamped to [1, 10].
func (g *Game) SetStepsPerUpdate(n int) {
	if n < 1 {
		n = 1
	}
	if n > 10 {
		n = 10
	}
	g.stepsPerUpdate = n
}

// SetAutoDissolve enables or disables the oscillator.
func (g *Game) SetAutoDissolve(on bool) {
	g.osc.SetEnabled(on)
}

// PerfCollector returns the step timing collector.
func (g *Game) PerfCollector() *telemetry.PerfCollector {
	return g.perfCollector
}

// History returns the recent stats windows, oldest first.
func (g *Game) History() []telemetry.WindowStats {
	return g.bookmarkDetector.History()
}

// PixelDensity returns the configured pixel density.
func (g *Game) PixelDensity() float32 {
	return g.pixelDensity
}

// RefreshFrame rebuilds the swarm frame with a real view depth. The viewer calls
// it before drawing; the step builds the frame without depth.
func (g *Game) RefreshFrame(depth DepthFunc) {
	g.refreshFrame(depth)
}

func (g *Game) refreshFrame(depth DepthFunc) {
	noise := g.noise.Values(g.state)
	g.counts = g.state.CountSurface(noise)
	g.frame.Build(g.field, noise, g.state, g.controls.BaseSize, g.pixelDensity, depth)
}
