package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileNoise(t *testing.T) {
	noise := []float32{-4, -2, 0, 2, 4}
	p := ProfileNoise(noise)

	assert.Equal(t, 5, p.Count)
	assert.Equal(t, -4.0, p.Min)
	assert.Equal(t, 4.0, p.Max)
	assert.InDelta(t, 0, p.Mean, 1e-9)
	assert.InDelta(t, 3.1623, p.StdDev, 1e-3)
	assert.Equal(t, 0.0, p.P50)

	assert.True(t, p.Covers(-17, 14))
	assert.False(t, p.Covers(-3, 14), "low bound above the minimum leaves discarded vertices")
	assert.False(t, p.Covers(-17, 4), "high bound must pass the maximum")

	assert.Equal(t, NoiseProfile{}, ProfileNoise(nil))
}

func TestNoiseHistogram(t *testing.T) {
	counts, edges := NoiseHistogram([]float32{4, 0, 1, 0, 3, 2}, 2)
	require.Len(t, counts, 2)
	require.Len(t, edges, 3)
	assert.Equal(t, []float64{3, 3}, counts)
	assert.Equal(t, 0.0, edges[0])
	assert.Equal(t, 2.0, edges[1])
	assert.Greater(t, edges[2], 4.0)

	// Constant noise lands in the first bucket
	counts, _ = NoiseHistogram([]float32{1, 1, 1}, 4)
	assert.Equal(t, []float64{3, 0, 0, 0}, counts)

	counts, edges = NoiseHistogram(nil, 4)
	assert.Nil(t, counts)
	assert.Nil(t, edges)
}
