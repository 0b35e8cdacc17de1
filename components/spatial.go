// Package components defines ECS components for the scene layers.
package components

import "github.com/chewxy/math32"

// Transform is the world placement of a layer.
type Transform struct {
	X, Y, Z float32 `inspect:"label,fmt:%.2f"`
	RotY    float32 `inspect:"angle"` // radians around the Y axis
}

// Motion drives the shared bob and spin of a layer.
type Motion struct {
	BaseY        float32 `inspect:"skip"`
	BobAmplitude float32 `inspect:"bar,max:2"`
	BobFrequency float32 `inspect:"bar,max:10"`
	SpinRate     float32 `inspect:"label,fmt:%.2f"` // radians per second
}

// At returns the Y offset and Y rotation at time t seconds.
func (m Motion) At(t float32) (y, rotY float32) {
	y = m.BaseY + math32.Sin(t*m.BobFrequency)*m.BobAmplitude
	rotY = t * m.SpinRate
	return y, rotY
}

// Apply maps an object-space point into world space: rotate about Y, then translate.
func (t Transform) Apply(x, y, z float32) (wx, wy, wz float32) {
	s, c := math32.Sincos(t.RotY)
	wx = x*c + z*s + t.X
	wy = y + t.Y
	wz = -x*s + z*c + t.Z
	return wx, wy, wz
}
