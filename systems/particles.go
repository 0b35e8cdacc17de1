package systems

import (
	"math"
	"math/rand"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/blas/blas32"
)

// initialDrift seeds the drift buffer so the first frame never sees an exact zero.
const initialDrift = 0.001

// DefaultSpinIncrement is the per-step spin advance in radians.
const DefaultSpinIncrement = 0.01

// SeedRanges bounds the per-particle random draws made at initialization.
type SeedRanges struct {
	TetherMin, TetherMax float32 // maxTetherOffset range
	VelXYMin, VelXYMax   float32 // x and y velocity seed range
	VelZMax              float32 // z velocity seed range is [0, VelZMax)
}

// DefaultSeedRanges returns the stock ranges.
func DefaultSeedRanges() SeedRanges {
	return SeedRanges{
		TetherMin: 1.5,
		TetherMax: 7.0,
		VelXYMin:  0.5,
		VelXYMax:  1.0,
		VelZMax:   0.1,
	}
}

// StepConfig holds the per-frame swarm controls, read fresh every step.
type StepConfig struct {
	SpeedFactor    float32
	VelocityFactor [3]float32 // A zero z factor means 1 (two-component form)
	WaveAmplitude  float32
	ZWave          bool    // Apply the z-axis wave
	SpinIncrement  float32 // Radians added to every spin angle per step
}

// ParticleField owns the per-particle buffers of a swarm tethered to a base shape.
// Vec3 buffers are xyz interleaved. All buffers are sized once and reused.
type ParticleField struct {
	count int

	rest     []float32 // restPosition, immutable
	current  []float32 // currentPosition
	velocity []float32 // velocitySeed, immutable

	maxOffset []float32 // maxTetherOffset, immutable
	dist      []float32 // driftDistance
	angle     []float32 // spinAngle
}

// NewParticleField creates a field with one particle per vertex in positions
// (xyz interleaved). Random draws come from rng in a fixed per-particle order,
// so the same seed yields the same field.
func NewParticleField(positions []float32, rng *rand.Rand, ranges SeedRanges) *ParticleField {
	n := len(positions) / 3
	f := allocField(n)
	copy(f.rest, positions[:n*3])
	copy(f.current, positions[:n*3])

	for i := 0; i < n; i++ {
		x, y, z := i*3, i*3+1, i*3+2

		f.maxOffset[i] = randRange(rng.Float32(), ranges.TetherMin, ranges.TetherMax)

		f.velocity[x] = randRange(rng.Float32(), ranges.VelXYMin, ranges.VelXYMax)
		f.velocity[y] = randRange(rng.Float32(), ranges.VelXYMin, ranges.VelXYMax)
		f.velocity[z] = rng.Float32() * ranges.VelZMax

		f.dist[i] = initialDrift
		f.angle[i] = rng.Float32() * 2 * math.Pi
	}

	return f
}

// NewParticleFieldFrom builds a field from explicit seed buffers. velocity must
// hold 3 values per particle, maxOffset and angle one each. Particles start at rest.
func NewParticleFieldFrom(positions, velocity, maxOffset, angle []float32) *ParticleField {
	n := len(positions) / 3
	if len(velocity)/3 < n {
		n = len(velocity) / 3
	}
	if len(maxOffset) < n {
		n = len(maxOffset)
	}
	if len(angle) < n {
		n = len(angle)
	}

	f := allocField(n)
	copy(f.rest, positions[:n*3])
	copy(f.current, positions[:n*3])
	copy(f.velocity, velocity[:n*3])
	copy(f.maxOffset, maxOffset[:n])
	copy(f.angle, angle[:n])
	for i := range f.dist {
		f.dist[i] = initialDrift
	}
	return f
}

func allocField(n int) *ParticleField {
	return &ParticleField{
		count:     n,
		rest:      make([]float32, n*3),
		current:   make([]float32, n*3),
		velocity:  make([]float32, n*3),
		maxOffset: make([]float32, n),
		dist:      make([]float32, n),
		angle:     make([]float32, n),
	}
}

// Count returns the number of particles. A nil field has none.
func (f *ParticleField) Count() int {
	if f == nil {
		return 0
	}
	return f.count
}

// Step advances every particle by one frame and returns how many snapped back to
// rest. Particles never read each other, so the loop order does not matter.
// A nil or empty field is a no-op.
func (f *ParticleField) Step(cfg StepConfig) int {
	if f == nil || f.count == 0 {
		return 0
	}

	speed := math32.Abs(cfg.SpeedFactor)
	fx, fy, fz := cfg.VelocityFactor[0], cfg.VelocityFactor[1], cfg.VelocityFactor[2]
	if fz == 0 {
		fz = 1
	}

	resets := 0
	for i := 0; i < f.count; i++ {
		x, y, z := i*3, i*3+1, i*3+2
		px, py, pz := f.current[x], f.current[y], f.current[z]

		xw, yw, zw := WaveOffset(px, py, pz, cfg.WaveAmplitude, cfg.ZWave)

		vx := (f.velocity[x]*fx + xw) * speed
		vy := (f.velocity[y]*fy + yw) * speed
		vz := (f.velocity[z]*fz + zw) * speed

		px += vx
		py += vy
		pz += vz

		d := distance3(px, py, pz, f.rest[x], f.rest[y], f.rest[z])

		// Tether: snap straight back once past this particle's limit. The stored
		// drift follows the position, so it never exceeds the limit after a step.
		if d > f.maxOffset[i] {
			px, py, pz = f.rest[x], f.rest[y], f.rest[z]
			d = 0
			resets++
		}

		f.current[x], f.current[y], f.current[z] = px, py, pz
		f.dist[i] = d
		f.angle[i] = wrapAngle(f.angle[i] + cfg.SpinIncrement)
	}

	return resets
}

// Reset returns every particle to its rest position.
func (f *ParticleField) Reset() {
	if f == nil || f.count == 0 {
		return
	}
	blas32.Copy(
		blas32.Vector{N: len(f.rest), Inc: 1, Data: f.rest},
		blas32.Vector{N: len(f.current), Inc: 1, Data: f.current},
	)
	for i := range f.dist {
		f.dist[i] = initialDrift
	}
}

// DriftStats returns the mean and maximum drift distance from the last step.
func (f *ParticleField) DriftStats() (mean, max float32) {
	if f == nil || f.count == 0 {
		return 0, 0
	}
	v := blas32.Vector{N: len(f.dist), Inc: 1, Data: f.dist}
	// Distances are non-negative, so the absolute sum is the plain sum
	mean = blas32.Asum(v) / float32(f.count)
	max = f.dist[blas32.Iamax(v)]
	return mean, max
}

// Restore overwrites the mutable buffers, used when loading a snapshot.
// Slices shorter than the field leave the remaining entries unchanged.
func (f *ParticleField) Restore(current, dist, angle []float32) {
	if f == nil {
		return
	}
	copy(f.current, current)
	copy(f.dist, dist)
	copy(f.angle, angle)
}

// Buffers exposed to the renderer. They alias field storage: read them between
// steps, never while Step runs.

// Offsets returns maxTetherOffset per particle.
func (f *ParticleField) Offsets() []float32 { return f.maxOffset }

// RestPositions returns rest positions, xyz interleaved.
func (f *ParticleField) RestPositions() []float32 { return f.rest }

// CurrentPositions returns current positions, xyz interleaved.
func (f *ParticleField) CurrentPositions() []float32 { return f.current }

// Velocities returns the velocity seeds, xyz interleaved.
func (f *ParticleField) Velocities() []float32 { return f.velocity }

// Distances returns the drift distance per particle.
func (f *ParticleField) Distances() []float32 { return f.dist }

// Angles returns the spin angle per particle.
func (f *ParticleField) Angles() []float32 { return f.angle }
