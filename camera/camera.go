// Package camera provides an orbit camera for viewing the scene.
package camera

import "github.com/chewxy/math32"

// Camera orbits a target point at a distance, described by yaw and pitch.
type Camera struct {
	// Target is the point the camera looks at
	TargetX, TargetY, TargetZ float32

	// Yaw around the Y axis and pitch above the XZ plane, radians
	Yaw, Pitch float32

	// Distance from target
	Distance float32

	// Field of view in degrees (vertical)
	FovY float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Constraints
	MinDistance, MaxDistance float32

	// Initial orbit, restored by Reset
	homeYaw, homePitch, homeDistance float32
}

const maxPitch = 1.5

// New creates a camera positioned at (px, py, pz) looking at the origin.
func New(viewportW, viewportH, px, py, pz float32) *Camera {
	dist := math32.Sqrt(px*px + py*py + pz*pz)
	if dist < 1e-3 {
		dist = 1
		pz = 1
	}
	yaw := math32.Atan2(px, pz)
	pitch := math32.Asin(clamp(py/dist, -1, 1))

	c := &Camera{
		Yaw:          yaw,
		Pitch:        clamp(pitch, -maxPitch, maxPitch),
		Distance:     dist,
		FovY:         75,
		ViewportW:    viewportW,
		ViewportH:    viewportH,
		MinDistance:  2,
		MaxDistance:  60,
		homeYaw:      yaw,
		homePitch:    pitch,
		homeDistance: dist,
	}
	if c.MinDistance > dist {
		c.MinDistance = dist
	}
	if c.MaxDistance < dist {
		c.MaxDistance = dist
	}
	return c
}

// Position returns the camera position in world coordinates.
func (c *Camera) Position() (x, y, z float32) {
	cp := math32.Cos(c.Pitch)
	x = c.TargetX + c.Distance*cp*math32.Sin(c.Yaw)
	y = c.TargetY + c.Distance*math32.Sin(c.Pitch)
	z = c.TargetZ + c.Distance*cp*math32.Cos(c.Yaw)
	return x, y, z
}

// ViewZ returns the view-space z of a world point: the negated distance along the
// view direction, so points in front of the camera are negative.
func (c *Camera) ViewZ(wx, wy, wz float32) float32 {
	px, py, pz := c.Position()
	// Forward is from the camera toward the target
	fx, fy, fz := c.TargetX-px, c.TargetY-py, c.TargetZ-pz
	l := math32.Sqrt(fx*fx + fy*fy + fz*fz)
	if l == 0 {
		return 0
	}
	return -((wx-px)*fx + (wy-py)*fy + (wz-pz)*fz) / l
}

// Orbit rotates the camera around the target by the given angles in radians.
func (c *Camera) Orbit(dYaw, dPitch float32) {
	c.Yaw = wrapAngle(c.Yaw + dYaw)
	c.Pitch = clamp(c.Pitch+dPitch, -maxPitch, maxPitch)
}

// SetDistance sets the orbit distance, clamped to min/max.
func (c *Camera) SetDistance(d float32) {
	c.Distance = clamp(d, c.MinDistance, c.MaxDistance)
}

// ZoomBy divides the distance by the given factor (factor > 1 moves closer).
func (c *Camera) ZoomBy(factor float32) {
	if factor <= 0 {
		return
	}
	c.SetDistance(c.Distance / factor)
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Aspect returns the viewport aspect ratio.
func (c *Camera) Aspect() float32 {
	if c.ViewportH == 0 {
		return 1
	}
	return c.ViewportW / c.ViewportH
}

// Reset returns the camera to its initial orbit.
func (c *Camera) Reset() {
	c.TargetX, c.TargetY, c.TargetZ = 0, 0, 0
	c.Yaw = c.homeYaw
	c.Pitch = c.homePitch
	c.Distance = c.homeDistance
}

// wrapAngle wraps an angle to [-pi, pi].
func wrapAngle(a float32) float32 {
	for a > math32.Pi {
		a -= 2 * math32.Pi
	}
	for a < -math32.Pi {
		a += 2 * math32.Pi
	}
	return a
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
