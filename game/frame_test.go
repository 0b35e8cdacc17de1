package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pthm-cable/dissolve/systems"
)

func TestSwarmFrameBuild(t *testing.T) {
	// Three particles at distinct rest points, all moving along +x.
	rest := []float32{0, 0, 0, 1, 0, 0, 2, 0, 0}
	vel := []float32{1, 0, 0, 1, 0, 0, 1, 0, 0}
	field := systems.NewParticleFieldFrom(rest, vel, []float32{5, 5, 5}, []float32{0, 0, 0})
	field.Step(systems.StepConfig{SpeedFactor: 0.1, VelocityFactor: [3]float32{1, 1, 1}})

	state := systems.NewDissolveState(0, 1, 1, 1, systems.RGB{})
	// below the displaced band, inside the edge band, just above the band
	noise := []float32{-3, 0.5, 2.5}

	f := NewSwarmFrame(field.Count())
	f.Build(field, noise, state, 80, 2, nil)

	assert.Equal(t, []bool{false, true, false}, f.Visible)
	assert.Equal(t, 1, f.VisibleCount)
	assert.Equal(t, 2, f.DisplacedCount)

	cur := field.CurrentPositions()
	// Particle 0 is outside the displaced band and drawn at rest
	assert.Equal(t, rest[0:3], f.Positions[0:3])
	// Particles 1 and 2 are drawn where they drifted to
	assert.Equal(t, cur[3:9], f.Positions[3:9])

	// Size falls off with drift at unit depth
	dist := field.Distances()
	for i := range f.Sizes {
		assert.InDelta(t, 80*2/(dist[i]+1), f.Sizes[i], 1e-4)
	}
	assert.Equal(t, field.Angles(), f.Angles)
}

func TestSwarmFrameDepth(t *testing.T) {
	field := systems.NewParticleFieldFrom([]float32{0, 0, -4}, []float32{0, 0, 0}, []float32{1}, []float32{0})
	state := systems.NewDissolveState(0, 1, 1, 1, systems.RGB{})

	f := NewSwarmFrame(1)
	f.Build(field, []float32{0.5}, state, 10, 1, func(x, y, z float32) float32 { return z })

	assert.InDelta(t, 10/(1.001)/4, f.Sizes[0], 1e-4)
}

func TestSwarmFrameEmptyInputs(t *testing.T) {
	state := systems.NewDissolveState(0, 1, 1, 1, systems.RGB{})

	f := NewSwarmFrame(0)
	f.Build(nil, nil, state, 80, 1, nil)
	assert.Zero(t, f.VisibleCount)

	// Short noise slice leaves the frame untouched
	field := systems.NewParticleFieldFrom([]float32{0, 0, 0}, []float32{0, 0, 0}, []float32{1}, []float32{0})
	f = NewSwarmFrame(1)
	f.Build(field, nil, state, 80, 1, nil)
	assert.Zero(t, f.VisibleCount)
	assert.False(t, f.Visible[0])
}
