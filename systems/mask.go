package systems

// Fragment is the surface mask decision for one surface point.
type Fragment uint8

const (
	FragmentDiscard Fragment = iota // Below the boundary, not drawn
	FragmentEdge                    // Inside the edge band, drawn in the edge color
	FragmentBase                    // Above the band, drawn with the base material
)

// String returns the fragment name.
func (f Fragment) String() string {
	switch f {
	case FragmentDiscard:
		return "discard"
	case FragmentEdge:
		return "edge"
	case FragmentBase:
		return "base"
	default:
		return "unknown"
	}
}

// DisplacementMargin widens the edge band on both sides to get the region where
// particles are drawn at their drifting position instead of at rest.
const DisplacementMargin = 2.0

// ClassifySurface applies the surface rule to a scaled noise value.
func (s *DissolveState) ClassifySurface(n float32) Fragment {
	if n < s.Progress {
		return FragmentDiscard
	}
	if n < s.Progress+s.EdgeWidth {
		return FragmentEdge
	}
	return FragmentBase
}

// ParticleVisible reports whether a particle with noise n is drawn.
// Particles only show inside the edge band, the inverse of the surface rule.
func (s *DissolveState) ParticleVisible(n float32) bool {
	return n >= s.Progress && n <= s.Progress+s.EdgeWidth
}

// ParticleDisplaced reports whether a particle with noise n is drawn at its
// current (tethered) position rather than its rest position.
func (s *DissolveState) ParticleDisplaced(n float32) bool {
	return n >= s.Progress-DisplacementMargin && n <= s.Progress+s.EdgeWidth+DisplacementMargin
}

// SurfaceMask evaluates the surface rule at arbitrary points.
// It holds the shared state by reference so oscillator updates are seen immediately.
type SurfaceMask struct {
	State  *DissolveState
	Oracle NoiseOracle
}

// NewSurfaceMask creates a mask bound to the shared state and oracle.
func NewSurfaceMask(state *DissolveState, oracle NoiseOracle) *SurfaceMask {
	return &SurfaceMask{State: state, Oracle: oracle}
}

// Classify evaluates the mask at (x, y, z) in object space.
func (m *SurfaceMask) Classify(x, y, z float32) Fragment {
	return m.State.ClassifySurface(m.State.NoiseAt(m.Oracle, x, y, z))
}

// Sample evaluates the mask at (x, y, z) and also reports whether a particle
// resting there would be drawn.
func (m *SurfaceMask) Sample(x, y, z float32) (Fragment, bool) {
	n := m.State.NoiseAt(m.Oracle, x, y, z)
	return m.State.ClassifySurface(n), m.State.ParticleVisible(n)
}

// MaskCounts tallies surface decisions over a vertex set.
type MaskCounts struct {
	Discarded int
	Edge      int
	Base      int
}

// Visible returns the number of drawn vertices.
func (c MaskCounts) Visible() int {
	return c.Edge + c.Base
}

// CountSurface classifies every cached vertex noise value.
func (s *DissolveState) CountSurface(noise []float32) MaskCounts {
	var c MaskCounts
	for _, n := range noise {
		switch s.ClassifySurface(n) {
		case FragmentDiscard:
			c.Discarded++
		case FragmentEdge:
			c.Edge++
		default:
			c.Base++
		}
	}
	return c
}
