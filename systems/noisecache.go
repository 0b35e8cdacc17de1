package systems

import "gonum.org/v1/gonum/blas/blas32"

// NoiseCache holds the mask noise of every rest vertex of the base shape.
// Rest positions never change, so the oracle only has to be sampled again when the
// frequency changes; amplitude is a plain rescale of the raw values.
type NoiseCache struct {
	oracle    NoiseOracle
	positions []float32 // xyz interleaved rest positions
	raw       []float32 // oracle output at positions*frequency
	scaled    []float32 // raw*amplitude, reused every frame
	frequency float32
	valid     bool
	resamples int
}

// NewNoiseCache creates a cache over rest positions (xyz interleaved).
func NewNoiseCache(oracle NoiseOracle, positions []float32) *NoiseCache {
	n := len(positions) / 3
	return &NoiseCache{
		oracle:    oracle,
		positions: positions,
		raw:       make([]float32, n),
		scaled:    make([]float32, n),
	}
}

// Len returns the number of cached vertices.
func (c *NoiseCache) Len() int {
	return len(c.raw)
}

// Resamples returns how many times the oracle was sampled over the whole shape.
func (c *NoiseCache) Resamples() int {
	return c.resamples
}

// Values returns the scaled noise per vertex for the current state.
// The returned slice is owned by the cache and overwritten on the next call.
func (c *NoiseCache) Values(state *DissolveState) []float32 {
	if !c.valid || c.frequency != state.Frequency {
		c.resample(state.Frequency)
	}
	if len(c.raw) == 0 {
		return c.scaled
	}

	raw := blas32.Vector{N: len(c.raw), Inc: 1, Data: c.raw}
	dst := blas32.Vector{N: len(c.scaled), Inc: 1, Data: c.scaled}
	blas32.Copy(raw, dst)
	blas32.Scal(state.Amplitude, dst)
	return c.scaled
}

func (c *NoiseCache) resample(frequency float32) {
	f := float64(frequency)
	for i := range c.raw {
		x := float64(c.positions[i*3+0]) * f
		y := float64(c.positions[i*3+1]) * f
		z := float64(c.positions[i*3+2]) * f
		c.raw[i] = float32(c.oracle.Noise3D(x, y, z))
	}
	c.frequency = frequency
	c.valid = true
	c.resamples++
}
