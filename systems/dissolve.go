package systems

// RGB is a linear color with channels in [0, 1].
type RGB struct {
	R, G, B float32
}

// DissolveState is the single control block shared by the surface mask and the
// particle swarm. Hold it by pointer; copying it breaks the guarantee that both
// layers see the same boundary.
type DissolveState struct {
	Progress  float32 `inspect:"label,fmt:%+.2f"` // Moving threshold in noise units
	EdgeWidth float32 `inspect:"bar,max:8"`        // Width of the glowing band, > 0
	Frequency float32 `inspect:"label,fmt:%.3f"`  // Spatial frequency fed to the noise oracle, > 0
	Amplitude float32 `inspect:"bar,max:20"`       // Noise output scale
	EdgeColor RGB     `inspect:"color"`
}

// minEdgeWidth and minFrequency keep externally set values inside their domain.
const (
	minEdgeWidth = 1e-4
	minFrequency = 1e-4
)

// NewDissolveState returns a state with the given parameters, clamped to valid ranges.
func NewDissolveState(progress, edgeWidth, frequency, amplitude float32, edge RGB) *DissolveState {
	s := &DissolveState{
		Progress:  progress,
		Amplitude: amplitude,
		EdgeColor: edge,
	}
	s.SetEdgeWidth(edgeWidth)
	s.SetFrequency(frequency)
	return s
}

// SetEdgeWidth sets the band width, keeping it strictly positive.
func (s *DissolveState) SetEdgeWidth(w float32) {
	if w < minEdgeWidth {
		w = minEdgeWidth
	}
	s.EdgeWidth = w
}

// SetFrequency sets the noise frequency, keeping it strictly positive.
func (s *DissolveState) SetFrequency(f float32) {
	if f < minFrequency {
		f = minFrequency
	}
	s.Frequency = f
}

// NoiseAt evaluates the scaled mask noise at a point.
func (s *DissolveState) NoiseAt(oracle NoiseOracle, x, y, z float32) float32 {
	f := float64(s.Frequency)
	return float32(oracle.Noise3D(float64(x)*f, float64(y)*f, float64(z)*f)) * s.Amplitude
}

// BandTop returns the upper end of the edge band.
func (s *DissolveState) BandTop() float32 {
	return s.Progress + s.EdgeWidth
}
