package systems

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultStep() StepConfig {
	return StepConfig{
		SpeedFactor:    0.02,
		VelocityFactor: [3]float32{2.5, 2, 1.5},
		WaveAmplitude:  0,
		ZWave:          true,
		SpinIncrement:  DefaultSpinIncrement,
	}
}

func knotPositions(t testing.TB) []float32 {
	t.Helper()
	return NewTorusKnot(2.5, 0.8, 40, 12, 2, 3).Positions
}

func TestNewParticleFieldSeedsWithinRanges(t *testing.T) {
	pos := knotPositions(t)
	f := NewParticleField(pos, rand.New(rand.NewSource(1)), DefaultSeedRanges())

	require.Equal(t, len(pos)/3, f.Count())
	assert.Equal(t, pos, f.RestPositions())
	assert.Equal(t, pos, f.CurrentPositions())

	for i := 0; i < f.Count(); i++ {
		assert.GreaterOrEqual(t, f.Offsets()[i], float32(1.5))
		assert.LessOrEqual(t, f.Offsets()[i], float32(7.0))

		v := f.Velocities()[i*3 : i*3+3]
		assert.GreaterOrEqual(t, v[0], float32(0.5))
		assert.LessOrEqual(t, v[0], float32(1.0))
		assert.GreaterOrEqual(t, v[1], float32(0.5))
		assert.LessOrEqual(t, v[1], float32(1.0))
		assert.GreaterOrEqual(t, v[2], float32(0))
		assert.LessOrEqual(t, v[2], float32(0.1))

		assert.Equal(t, float32(initialDrift), f.Distances()[i])
		assert.GreaterOrEqual(t, f.Angles()[i], float32(0))
		assert.Less(t, f.Angles()[i], float32(6.2832))
	}
}

func TestNewParticleFieldIgnoresPartialVertex(t *testing.T) {
	f := NewParticleField([]float32{1, 2, 3, 4, 5}, rand.New(rand.NewSource(1)), DefaultSeedRanges())
	assert.Equal(t, 1, f.Count())
}

func TestEmptyAndNilFieldStepIsNoOp(t *testing.T) {
	var nilField *ParticleField
	assert.Equal(t, 0, nilField.Step(defaultStep()))
	assert.Equal(t, 0, nilField.Count())
	nilField.Reset()

	empty := NewParticleField(nil, rand.New(rand.NewSource(1)), DefaultSeedRanges())
	assert.Equal(t, 0, empty.Count())
	assert.Equal(t, 0, empty.Step(defaultStep()))
	mean, max := empty.DriftStats()
	assert.Zero(t, mean)
	assert.Zero(t, max)
}

func TestTetherInvariantHolds(t *testing.T) {
	f := NewParticleField(knotPositions(t), rand.New(rand.NewSource(7)), DefaultSeedRanges())

	// Large speed and wave so particles hit their tether often
	cfg := defaultStep()
	cfg.SpeedFactor = 0.1
	cfg.WaveAmplitude = 5

	totalResets := 0
	for step := 0; step < 500; step++ {
		totalResets += f.Step(cfg)
		for i, d := range f.Distances() {
			require.LessOrEqualf(t, d, f.Offsets()[i], "particle %d step %d", i, step)
		}
	}
	assert.Positive(t, totalResets, "expected some tether resets at this speed")
}

func TestSnapBackScenario(t *testing.T) {
	f := NewParticleFieldFrom(
		[]float32{0, 0, 0},
		[]float32{10, 10, 0},
		[]float32{1.0},
		[]float32{0},
	)
	cfg := StepConfig{
		SpeedFactor:    1,
		VelocityFactor: [3]float32{1, 1, 0},
		WaveAmplitude:  0,
		SpinIncrement:  DefaultSpinIncrement,
	}

	resets := f.Step(cfg)

	assert.Equal(t, 1, resets)
	assert.Equal(t, []float32{0, 0, 0}, f.CurrentPositions())
	assert.LessOrEqual(t, f.Distances()[0], float32(1.0))
	assert.InDelta(t, 0.01, f.Angles()[0], 1e-7)
}

func TestStepWithinTetherMoves(t *testing.T) {
	f := NewParticleFieldFrom(
		[]float32{0, 0, 0},
		[]float32{1, 1, 0},
		[]float32{5.0},
		[]float32{0},
	)
	cfg := StepConfig{SpeedFactor: 0.1, VelocityFactor: [3]float32{1, 1, 1}}

	resets := f.Step(cfg)

	// Wave terms vanish at the origin, so the move is seed*speed
	assert.Zero(t, resets)
	assert.InDelta(t, 0.1, f.CurrentPositions()[0], 1e-6)
	assert.InDelta(t, 0.1, f.CurrentPositions()[1], 1e-6)
	assert.InDelta(t, 0.1414, f.Distances()[0], 1e-4)
}

func TestNegativeSpeedUsesMagnitude(t *testing.T) {
	mk := func() *ParticleField {
		return NewParticleFieldFrom([]float32{0, 0, 0}, []float32{1, 1, 0}, []float32{5}, []float32{0})
	}
	pos, neg := mk(), mk()
	cfg := StepConfig{SpeedFactor: 0.05, VelocityFactor: [3]float32{1, 1, 1}}
	pos.Step(cfg)
	cfg.SpeedFactor = -0.05
	neg.Step(cfg)

	assert.Equal(t, pos.CurrentPositions(), neg.CurrentPositions())
}

func TestZeroZFactorMeansOne(t *testing.T) {
	mk := func() *ParticleField {
		return NewParticleFieldFrom([]float32{0, 0, 0}, []float32{0, 0, 0.5}, []float32{5}, []float32{0})
	}
	two, three := mk(), mk()
	two.Step(StepConfig{SpeedFactor: 1, VelocityFactor: [3]float32{1, 1, 0}})
	three.Step(StepConfig{SpeedFactor: 1, VelocityFactor: [3]float32{1, 1, 1}})

	assert.Equal(t, three.CurrentPositions(), two.CurrentPositions())
	assert.InDelta(t, 0.5, two.CurrentPositions()[2], 1e-6)
}

func TestStepDeterministicGivenSeed(t *testing.T) {
	pos := knotPositions(t)
	a := NewParticleField(pos, rand.New(rand.NewSource(99)), DefaultSeedRanges())
	b := NewParticleField(pos, rand.New(rand.NewSource(99)), DefaultSeedRanges())

	cfg := defaultStep()
	cfg.WaveAmplitude = 1.5
	for i := 0; i < 200; i++ {
		ra := a.Step(cfg)
		rb := b.Step(cfg)
		require.Equal(t, ra, rb)
	}

	assert.Equal(t, a.CurrentPositions(), b.CurrentPositions())
	assert.Equal(t, a.Distances(), b.Distances())
	assert.Equal(t, a.Angles(), b.Angles())
}

func TestResetReturnsToRest(t *testing.T) {
	f := NewParticleField(knotPositions(t), rand.New(rand.NewSource(3)), DefaultSeedRanges())
	for i := 0; i < 20; i++ {
		f.Step(defaultStep())
	}
	require.NotEqual(t, f.RestPositions(), f.CurrentPositions())

	f.Reset()

	assert.Equal(t, f.RestPositions(), f.CurrentPositions())
	for _, d := range f.Distances() {
		assert.Equal(t, float32(initialDrift), d)
	}
}

func TestDriftStats(t *testing.T) {
	f := NewParticleFieldFrom(
		[]float32{0, 0, 0, 0, 0, 0},
		[]float32{0, 0, 0, 0, 0, 0},
		[]float32{5, 5},
		[]float32{0, 0},
	)
	f.Restore(nil, []float32{1, 3}, nil)

	mean, max := f.DriftStats()
	assert.InDelta(t, 2.0, mean, 1e-6)
	assert.InDelta(t, 3.0, max, 1e-6)
}

func TestWaveOffsetVanishesAtOrigin(t *testing.T) {
	xw, yw, zw := WaveOffset(0, 0, 0, 3, true)
	assert.Zero(t, xw)
	assert.Zero(t, yw)
	assert.Zero(t, zw)

	_, _, zw = WaveOffset(1, 1, 1, 0, false)
	assert.Zero(t, zw)
}

func TestWaveOffsetHarmonicsAtQuarterTurn(t *testing.T) {
	// At y = pi/2: sin(pi)=0, sin(5pi/2)=1, sin(4pi)=0, sin(3pi/2)=-1
	xw0, _, _ := WaveOffset(0, 1.5707964, 0, 0, false)
	xw1, _, _ := WaveOffset(0, 1.5707964, 0, 1, false)
	assert.InDelta(t, 0.2-0.8, xw0, 1e-5)
	assert.InDelta(t, xw0, xw1, 1e-5)
}

func BenchmarkParticleFieldStep(b *testing.B) {
	pos := NewTorusKnot(2.5, 0.8, 140, 140, 2, 3).Positions
	f := NewParticleField(pos, rand.New(rand.NewSource(1)), DefaultSeedRanges())
	cfg := defaultStep()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Step(cfg)
	}
}

func TestSpinAngleWraps(t *testing.T) {
	f := NewParticleFieldFrom(
		[]float32{0, 0, 0, 1, 0, 0},
		[]float32{0, 0, 0, 0, 0, 0},
		[]float32{5, 5},
		[]float32{6.28, 3e5},
	)
	cfg := StepConfig{SpeedFactor: 0.1, VelocityFactor: [3]float32{1, 1, 1}, SpinIncrement: DefaultSpinIncrement}

	f.Step(cfg)
	angles := f.Angles()
	assert.InDelta(t, 6.29-2*math32.Pi, angles[0], 1e-5)
	for i, a := range angles {
		assert.GreaterOrEqual(t, a, float32(0), "particle %d", i)
		assert.Less(t, a, float32(2*math32.Pi), "particle %d", i)
	}

	// A huge starting angle still advances once it has been wrapped
	before := angles[1]
	f.Step(cfg)
	assert.InDelta(t, before+DefaultSpinIncrement, f.Angles()[1], 1e-5)
}
