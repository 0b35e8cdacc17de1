package systems

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// constNoise returns the same value everywhere.
type constNoise float64

func (c constNoise) Noise3D(_, _, _ float64) float64 { return float64(c) }

func TestClassifySurfaceBands(t *testing.T) {
	s := newTestState(0)
	s.SetEdgeWidth(1)

	tests := []struct {
		n    float32
		want Fragment
	}{
		{-5, FragmentDiscard},
		{-0.0001, FragmentDiscard},
		{0, FragmentEdge},
		{0.5, FragmentEdge},
		{0.9999, FragmentEdge},
		{1, FragmentBase},
		{12, FragmentBase},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.want, s.ClassifySurface(tt.n), "n=%v", tt.n)
	}
}

func TestMaskBandConsistency(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	s := newTestState(0)

	for i := 0; i < 2000; i++ {
		s.Progress = rng.Float32()*40 - 20
		s.SetEdgeWidth(rng.Float32()*8 + 0.1)
		n := rng.Float32()*40 - 20

		frag := s.ClassifySurface(n)
		switch {
		case n < s.Progress:
			require.Equal(t, FragmentDiscard, frag)
		case n < s.Progress+s.EdgeWidth:
			require.Equal(t, FragmentEdge, frag)
		default:
			require.Equal(t, FragmentBase, frag)
		}
	}
}

func TestParticleVisibilityInversion(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	s := newTestState(0)

	for i := 0; i < 2000; i++ {
		s.Progress = rng.Float32()*40 - 20
		s.SetEdgeWidth(rng.Float32()*8 + 0.1)
		n := rng.Float32()*40 - 20

		frag := s.ClassifySurface(n)
		visible := s.ParticleVisible(n)

		// Discarded surface points never have a visible particle, and solid base
		// points never do either: particles only live in the edge band.
		if frag == FragmentDiscard || frag == FragmentBase && n > s.BandTop() {
			require.Falsef(t, visible, "n=%v progress=%v edge=%v", n, s.Progress, s.EdgeWidth)
		}
		if frag == FragmentEdge {
			require.True(t, visible)
		}
	}
}

func TestParticleBandClosedAtTop(t *testing.T) {
	s := newTestState(2)
	s.SetEdgeWidth(0.5)

	// n == progress+edge is base on the surface yet still shows a particle
	assert.Equal(t, FragmentBase, s.ClassifySurface(2.5))
	assert.True(t, s.ParticleVisible(2.5))
	assert.True(t, s.ParticleVisible(2))
	assert.False(t, s.ParticleVisible(2.51))
}

func TestParticleDisplacedMargin(t *testing.T) {
	s := newTestState(0)
	s.SetEdgeWidth(1)

	tests := []struct {
		n    float32
		want bool
	}{
		{-2.01, false},
		{-2, true},
		{-1, true},
		{0.5, true},
		{3, true},
		{3.01, false},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, s.ParticleDisplaced(tt.n), "n=%v", tt.n)
	}

	// Every visible particle is also displaced
	for n := float32(-5); n < 5; n += 0.05 {
		if s.ParticleVisible(n) {
			assert.True(t, s.ParticleDisplaced(n))
		}
	}
}

func TestSurfaceMaskSeesSharedState(t *testing.T) {
	s := newTestState(-20)
	s.Amplitude = 1
	mask := NewSurfaceMask(s, constNoise(0.5))

	assert.Equal(t, FragmentBase, mask.Classify(1, 2, 3))

	// Mutating through the shared pointer changes the decision immediately
	s.Progress = 0.4
	assert.Equal(t, FragmentEdge, mask.Classify(1, 2, 3))
	s.Progress = 0.6
	assert.Equal(t, FragmentDiscard, mask.Classify(1, 2, 3))
}

func TestSurfaceMaskSample(t *testing.T) {
	s := newTestState(0)
	s.SetEdgeWidth(1)
	s.Amplitude = 2

	tests := []struct {
		noise   float64
		frag    Fragment
		visible bool
	}{
		{-0.5, FragmentDiscard, false},
		{0.25, FragmentEdge, true},
		{0.5, FragmentBase, true}, // exactly on the band top
		{0.9, FragmentBase, false},
	}

	for _, tt := range tests {
		mask := NewSurfaceMask(s, constNoise(tt.noise))
		frag, visible := mask.Sample(0, 0, 0)
		assert.Equal(t, tt.frag, frag, "noise %v", tt.noise)
		assert.Equal(t, tt.visible, visible, "noise %v", tt.noise)
		assert.Equal(t, mask.Classify(0, 0, 0), frag)
	}
}

func TestCountSurface(t *testing.T) {
	s := newTestState(0)
	s.SetEdgeWidth(1)

	c := s.CountSurface([]float32{-3, -1, 0, 0.5, 1, 4})
	assert.Equal(t, MaskCounts{Discarded: 2, Edge: 2, Base: 2}, c)
	assert.Equal(t, 4, c.Visible())
}

func TestDissolveStateClampsDomain(t *testing.T) {
	s := NewDissolveState(0, 0, -1, 16, RGB{})
	assert.Greater(t, s.EdgeWidth, float32(0))
	assert.Greater(t, s.Frequency, float32(0))
}

func TestFragmentString(t *testing.T) {
	assert.Equal(t, "discard", FragmentDiscard.String())
	assert.Equal(t, "edge", FragmentEdge.String())
	assert.Equal(t, "base", FragmentBase.String())
	assert.Equal(t, "unknown", Fragment(9).String())
}
