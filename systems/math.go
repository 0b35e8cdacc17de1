package systems

import "github.com/chewxy/math32"

// clamp64 clamps a float64 value between min and max.
func clamp64(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// distance3 returns the Euclidean distance between two points.
func distance3(x1, y1, z1, x2, y2, z2 float32) float32 {
	dx := x1 - x2
	dy := y1 - y2
	dz := z1 - z2
	return math32.Sqrt(dx*dx + dy*dy + dz*dz)
}

// randRange returns a uniform value in [lo, hi).
func randRange(r float32, lo, hi float32) float32 {
	return lo + r*(hi-lo)
}

// wrapAngle maps an angle in radians into [0, 2π).
func wrapAngle(a float32) float32 {
	if a >= 0 && a < 2*math32.Pi {
		return a
	}
	a = math32.Mod(a, 2*math32.Pi)
	if a < 0 {
		a += 2 * math32.Pi
	}
	return a
}
