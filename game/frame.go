package game

import "github.com/pthm-cable/dissolve/systems"

// DepthFunc returns the view-space z of an object-space point (negative in front
// of the camera).
type DepthFunc func(x, y, z float32) float32

// SwarmFrame is the per-frame draw data of the particle swarm.
// Buffers are sized to the field once and reused across frames.
type SwarmFrame struct {
	Positions []float32 // Draw position, xyz interleaved
	Visible   []bool
	Sizes     []float32
	Angles    []float32 // Aliases the field's spin buffer

	VisibleCount   int
	DisplacedCount int
}

// NewSwarmFrame allocates a frame for n particles.
func NewSwarmFrame(n int) *SwarmFrame {
	return &SwarmFrame{
		Positions: make([]float32, n*3),
		Visible:   make([]bool, n),
		Sizes:     make([]float32, n),
	}
}

// Len returns the number of particles in the frame.
func (f *SwarmFrame) Len() int {
	return len(f.Visible)
}

// Build fills the frame from the field buffers and the cached per-vertex noise.
// A particle is drawn at its drifting position while its noise sits near the band
// and snaps to rest elsewhere; it is only visible inside the band itself.
// depth may be nil, in which case every particle is treated as one unit away.
func (f *SwarmFrame) Build(field *systems.ParticleField, noise []float32, state *systems.DissolveState, baseSize, pixelDensity float32, depth DepthFunc) {
	f.VisibleCount = 0
	f.DisplacedCount = 0

	n := field.Count()
	if n == 0 || len(noise) < n || len(f.Visible) < n {
		return
	}

	rest := field.RestPositions()
	current := field.CurrentPositions()
	dist := field.Distances()
	f.Angles = field.Angles()

	for i := 0; i < n; i++ {
		j := i * 3
		src := rest
		if state.ParticleDisplaced(noise[i]) {
			src = current
			f.DisplacedCount++
		}
		x, y, z := src[j], src[j+1], src[j+2]
		f.Positions[j] = x
		f.Positions[j+1] = y
		f.Positions[j+2] = z

		vis := state.ParticleVisible(noise[i])
		f.Visible[i] = vis
		if vis {
			f.VisibleCount++
		}

		viewZ := float32(-1)
		if depth != nil {
			viewZ = depth(x, y, z)
		}
		f.Sizes[i] = systems.PointSize(baseSize, pixelDensity, dist[i], viewZ)
	}
}
