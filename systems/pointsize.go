package systems

// minDepth keeps the perspective divide finite for points at or behind the camera plane.
const minDepth = 1e-3

// PointSize returns the on-screen sprite size of a particle. Particles shrink as
// they drift (1/(drift+1)) and with view depth. viewZ is the view-space z, negative
// in front of the camera.
func PointSize(baseSize, pixelDensity, drift, viewZ float32) float32 {
	d := drift + 1
	if d < 1 {
		d = 1
	}
	depth := -viewZ
	if depth < minDepth {
		depth = minDepth
	}
	return baseSize * pixelDensity / d / depth
}
