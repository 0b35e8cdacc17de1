package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/dissolve/components"
	"github.com/pthm-cable/dissolve/config"
	"github.com/pthm-cable/dissolve/systems"
	"github.com/pthm-cable/dissolve/telemetry"
)

// testConfig shrinks the base shape so each test game has a few hundred particles.
const testConfig = `
profiles:
  desktop:
    segments_tubular: 32
    segments_radial: 8
    particle_base_size: 80
    oscillator_step: 0.08
    camera_position: [0, 1, 14]
telemetry:
  stats_window: 1.0
  bookmark_history_size: 4
  perf_collector_window: 30
`

func initTestConfig(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0644))
	require.NoError(t, config.Init(path))
}

func newTestGame(t *testing.T, opts Options) *Game {
	t.Helper()
	initTestConfig(t)
	opts.Headless = true
	g, err := NewGameWithOptions(opts)
	require.NoError(t, err)
	t.Cleanup(g.Unload)
	return g
}

func TestNewGameBuildsScene(t *testing.T) {
	g := newTestGame(t, Options{Seed: 1})

	assert.Equal(t, 33*9, g.Field().Count())
	assert.Equal(t, g.Field().Count(), g.Frame().Len())
	assert.Equal(t, g.Shape().VertexCount(), g.Field().Count())
	assert.Equal(t, int32(0), g.Tick())

	// Defaults from the embedded config
	s := g.State()
	assert.InDelta(t, -7, s.Progress, 1e-6)
	assert.InDelta(t, 0.8, s.EdgeWidth, 1e-6)
	assert.InDelta(t, 0.25, s.Frequency, 1e-6)
	assert.InDelta(t, 16, s.Amplitude, 1e-6)
	assert.False(t, g.Oscillator().Enabled())

	// Noise profile computed at startup
	assert.Equal(t, g.Field().Count(), g.NoiseProfile().Count)
}

func TestNewGameRejectsUnknownNoise(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig+"noise:\n  kind: worley\n"), 0644))
	require.NoError(t, config.Init(path))

	_, err := NewGameWithOptions(Options{Seed: 1, Headless: true})
	assert.Error(t, err)
}

func TestHeadlessDeterminism(t *testing.T) {
	run := func() *Game {
		g := newTestGame(t, Options{Seed: 99, AutoDissolve: true})
		for i := 0; i < 200; i++ {
			g.UpdateHeadless()
		}
		return g
	}
	a, b := run(), run()

	assert.Equal(t, a.State().Progress, b.State().Progress)
	assert.Equal(t, a.Field().CurrentPositions(), b.Field().CurrentPositions())
	assert.Equal(t, a.Field().Angles(), b.Field().Angles())
	assert.Equal(t, a.Frame().Visible, b.Frame().Visible)
}

func TestTetherHoldsThroughScene(t *testing.T) {
	g := newTestGame(t, Options{Seed: 5})
	_, err := g.Set(OptionSpeedFactor, 0.1)
	require.NoError(t, err)
	_, err = g.Set(OptionWaveAmplitude, 2)
	require.NoError(t, err)

	for i := 0; i < 300; i++ {
		g.Step()
		dist, offsets := g.Field().Distances(), g.Field().Offsets()
		for p := range dist {
			require.LessOrEqual(t, dist[p], offsets[p], "tick %d particle %d", g.Tick(), p)
		}
	}
}

func TestPauseAndStepsPerUpdate(t *testing.T) {
	g := newTestGame(t, Options{Seed: 1, StepsPerUpdate: 3})

	g.UpdateHeadless()
	assert.Equal(t, int32(3), g.Tick())

	g.SetPaused(true)
	g.UpdateHeadless()
	assert.Equal(t, int32(3), g.Tick(), "paused game must not tick")

	// Step ignores pause
	g.Step()
	assert.Equal(t, int32(4), g.Tick())

	g.SetStepsPerUpdate(50)
	assert.Equal(t, 10, g.StepsPerUpdate())
	g.SetStepsPerUpdate(0)
	assert.Equal(t, 1, g.StepsPerUpdate())
}

func TestAutoDissolveDrivesSharedState(t *testing.T) {
	g := newTestGame(t, Options{Seed: 1, AutoDissolve: true})
	start := g.State().Progress

	for i := 0; i < 10; i++ {
		g.Step()
	}
	assert.InDelta(t, start+10*0.08, g.State().Progress, 1e-4)

	// Disabling freezes progress
	g.SetAutoDissolve(false)
	frozen := g.State().Progress
	for i := 0; i < 10; i++ {
		g.Step()
	}
	assert.Equal(t, frozen, g.State().Progress)
}

// Surface and swarm decisions come from the same state and the same cached noise,
// so a visible particle always sits on an edge-band vertex (or exactly on its top).
func TestSurfaceAndSwarmAgree(t *testing.T) {
	g := newTestGame(t, Options{Seed: 3})

	p := g.NoiseProfile()
	for _, progress := range []float32{float32(p.P10), float32(p.P50), float32(p.P90)} {
		_, err := g.Set(OptionProgress, progress)
		require.NoError(t, err)
		g.Step()

		noise := g.SurfaceNoise()
		state := g.State()
		frame := g.Frame()

		visible := 0
		for i, n := range noise {
			if !frame.Visible[i] {
				continue
			}
			visible++
			frag := state.ClassifySurface(n)
			if n < state.BandTop() {
				assert.Equal(t, systems.FragmentEdge, frag, "vertex %d", i)
			} else {
				assert.Equal(t, systems.FragmentBase, frag, "vertex %d on band top", i)
			}
		}
		assert.Equal(t, frame.VisibleCount, visible)
		assert.LessOrEqual(t, frame.VisibleCount, frame.DisplacedCount)

		counts := g.Counts()
		assert.Equal(t, len(noise), counts.Discarded+counts.Edge+counts.Base)
	}
}

func TestSetClampsToRange(t *testing.T) {
	g := newTestGame(t, Options{Seed: 1})

	tests := []struct {
		opt  Option
		in   float32
		want float32
	}{
		{OptionProgress, 100, 20},
		{OptionProgress, -100, -20},
		{OptionProgress, 3.5, 3.5},
		{OptionEdgeWidth, 0, 0.1},
		{OptionEdgeWidth, 9, 8},
		{OptionFrequency, -1, 0.001},
		{OptionFrequency, 0.5, 0.5},
		{OptionAmplitude, 50, 20},
		{OptionSpeedFactor, 0, 0.001},
		{OptionWaveAmplitude, 7, 5},
		{OptionBaseSize, 1, 10},
		{OptionVelocityZ, -2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.opt.String(), func(t *testing.T) {
			got, err := g.Set(tt.opt, tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-6)
			assert.InDelta(t, tt.want, g.Get(tt.opt), 1e-6)
		})
	}

	_, err := g.Set(optionCount, 1)
	assert.Error(t, err)
}

func TestParseOption(t *testing.T) {
	for _, opt := range AllOptions() {
		got, err := ParseOption(opt.String())
		require.NoError(t, err)
		assert.Equal(t, opt, got)
	}
	_, err := ParseOption("bloom_strength")
	assert.Error(t, err)
}

func TestLayersMoveTogether(t *testing.T) {
	g := newTestGame(t, Options{Seed: 1})
	_, err := g.Set(OptionRotationY, 1.5)
	require.NoError(t, err)

	for i := 0; i < 45; i++ {
		g.Step()
	}

	surface, ok := g.LayerTransform(components.LayerSurface)
	require.True(t, ok)
	swarm, ok := g.LayerTransform(components.LayerSwarm)
	require.True(t, ok)

	assert.Equal(t, surface, swarm)
	assert.NotZero(t, surface.Y, "layers should bob")
	assert.InDelta(t, 1.5, surface.RotY, 1e-6)

	// Visibility is per layer
	assert.False(t, g.ToggleLayer(components.LayerSwarm))
	assert.False(t, g.LayerVisible(components.LayerSwarm))
	assert.True(t, g.LayerVisible(components.LayerSurface))
}

func TestStatsCallbackAndOutput(t *testing.T) {
	dir := t.TempDir()
	var windows []telemetry.WindowStats
	g := newTestGame(t, Options{
		Seed:          1,
		OutputDir:     dir,
		AutoDissolve:  true,
		StatsCallback: func(s telemetry.WindowStats) { windows = append(windows, s) },
	})

	// stats_window 1.0 at 60 fps
	for i := 0; i < 180; i++ {
		g.Step()
	}
	require.Len(t, windows, 3)
	assert.Equal(t, int32(60), windows[0].WindowEndTick)
	assert.Equal(t, g.Field().Count(), windows[2].Particles)
	assert.Equal(t, "rising", windows[2].Phase)
	assert.Len(t, g.History(), 3)

	g.Unload()
	for _, name := range []string{"telemetry.csv", "perf.csv", "noise_profile.csv", "config.yaml"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestSnapshotRestoreReplays(t *testing.T) {
	dir := t.TempDir()
	a := newTestGame(t, Options{Seed: 11, SnapshotDir: dir, AutoDissolve: true})
	for i := 0; i < 70; i++ {
		a.Step()
	}
	path, err := a.SaveSnapshot()
	require.NoError(t, err)

	snap, err := telemetry.LoadSnapshot(path)
	require.NoError(t, err)

	b := newTestGame(t, Options{Seed: 11, Snapshot: snap})
	assert.Equal(t, a.Tick(), b.Tick())
	assert.True(t, b.Oscillator().Enabled())

	for i := 0; i < 40; i++ {
		a.Step()
		b.Step()
	}
	assert.Equal(t, a.State().Progress, b.State().Progress)
	assert.Equal(t, a.Field().CurrentPositions(), b.Field().CurrentPositions())
}

func TestSnapshotAutoDissolvePrecedence(t *testing.T) {
	dir := t.TempDir()
	a := newTestGame(t, Options{Seed: 4, SnapshotDir: dir, AutoDissolve: true})
	a.Step()
	path, err := a.SaveSnapshot()
	require.NoError(t, err)
	snap, err := telemetry.LoadSnapshot(path)
	require.NoError(t, err)

	// Without an explicit choice the snapshot decides
	b := newTestGame(t, Options{Seed: 4, Snapshot: snap})
	assert.True(t, b.Oscillator().Enabled())

	// An explicit choice wins over the snapshot
	c := newTestGame(t, Options{Seed: 4, Snapshot: snap, AutoDissolve: false, AutoDissolveSet: true})
	assert.False(t, c.Oscillator().Enabled())
	progress := c.State().Progress
	c.Step()
	assert.Equal(t, progress, c.State().Progress, "disabled oscillator must not move progress")
}

func TestRestartCycle(t *testing.T) {
	g := newTestGame(t, Options{Seed: 1, AutoDissolve: true})
	g.osc.SetPhase(systems.PhaseFalling)

	g.RestartCycle()
	assert.Equal(t, g.Oscillator().Low, g.State().Progress)
	assert.Equal(t, systems.PhaseRising, g.Oscillator().Phase())
	// Whole surface at the low bound
	assert.Zero(t, g.Counts().Discarded)
}

func TestFrequencyChangeResamplesNoise(t *testing.T) {
	g := newTestGame(t, Options{Seed: 1})
	before := g.NoiseResamples()

	// Amplitude is a rescale and does not touch the oracle
	_, err := g.Set(OptionAmplitude, 8)
	require.NoError(t, err)
	g.Step()
	assert.Equal(t, before, g.NoiseResamples())

	_, err = g.Set(OptionFrequency, 0.5)
	require.NoError(t, err)
	g.Step()
	assert.Equal(t, before+1, g.NoiseResamples())
}
