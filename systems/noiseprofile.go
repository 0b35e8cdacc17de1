package systems

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// NoiseProfile summarizes the scaled mask noise over the base shape.
type NoiseProfile struct {
	Count          int
	Min, Max       float64
	Mean, StdDev   float64
	P10, P50, P90  float64
	SolidBelow     float64 // progress at or below this leaves the surface whole
	DissolvedAbove float64 // progress above this discards every vertex
}

// ProfileNoise computes the distribution of scaled noise values.
func ProfileNoise(noise []float32) NoiseProfile {
	if len(noise) == 0 {
		return NoiseProfile{}
	}

	xs := make([]float64, len(noise))
	for i, n := range noise {
		xs[i] = float64(n)
	}
	sort.Float64s(xs)

	p := NoiseProfile{
		Count:  len(xs),
		Min:    floats.Min(xs),
		Max:    floats.Max(xs),
		Mean:   stat.Mean(xs, nil),
		StdDev: stat.StdDev(xs, nil),
		P10:    stat.Quantile(0.1, stat.Empirical, xs, nil),
		P50:    stat.Quantile(0.5, stat.Empirical, xs, nil),
		P90:    stat.Quantile(0.9, stat.Empirical, xs, nil),
	}
	p.SolidBelow = p.Min
	p.DissolvedAbove = p.Max
	return p
}

// Covers reports whether a progress range sweeps from a whole surface to a fully
// dissolved one.
func (p NoiseProfile) Covers(low, high float64) bool {
	return low <= p.SolidBelow && high > p.DissolvedAbove
}

// LogValue implements slog.LogValuer.
func (p NoiseProfile) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("count", p.Count),
		slog.Float64("min", p.Min),
		slog.Float64("max", p.Max),
		slog.Float64("mean", p.Mean),
		slog.Float64("std", p.StdDev),
		slog.Float64("p10", p.P10),
		slog.Float64("p50", p.P50),
		slog.Float64("p90", p.P90),
	)
}

// NoiseHistogram bins the noise into equal-width buckets spanning its range.
// It returns the bucket counts and the bucket edges (len(counts)+1).
func NoiseHistogram(noise []float32, bins int) (counts, edges []float64) {
	if len(noise) == 0 || bins < 1 {
		return nil, nil
	}

	xs := make([]float64, len(noise))
	for i, n := range noise {
		xs[i] = float64(n)
	}
	sort.Float64s(xs)

	lo, hi := xs[0], xs[len(xs)-1]
	edges = make([]float64, bins+1)
	if hi <= lo {
		floats.Span(edges, lo, lo+1)
		counts = make([]float64, bins)
		counts[0] = float64(len(xs))
		return counts, edges
	}

	floats.Span(edges, lo, hi)
	// The last edge must lie strictly above the maximum
	edges[bins] = math.Nextafter(hi, math.Inf(1))
	return stat.Histogram(nil, edges, xs, nil), edges
}
