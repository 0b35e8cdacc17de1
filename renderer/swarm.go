package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dissolve/camera"
	"github.com/pthm-cable/dissolve/components"
	"github.com/pthm-cable/dissolve/game"
	"github.com/pthm-cable/dissolve/systems"
)

// maxSpriteSize caps sprites that get very close to the near plane.
const maxSpriteSize = 256

// SwarmRenderer draws visible particles as spinning square sprites.
type SwarmRenderer struct {
	// Sprites drawn on the last call
	Drawn int
}

// NewSwarmRenderer creates a swarm renderer.
func NewSwarmRenderer() *SwarmRenderer {
	return &SwarmRenderer{}
}

// Draw projects each visible particle to the screen and draws it at its frame size.
// Must be called after EndMode3D since sprites are sized in pixels.
func (r *SwarmRenderer) Draw(frame *game.SwarmFrame, tr components.Transform, cam *camera.Camera, color systems.RGB) {
	r.Drawn = 0
	rlCam := ToCamera3D(cam)
	c := toColor(color, 1)

	n := frame.Len()
	for i := 0; i < n; i++ {
		if !frame.Visible[i] {
			continue
		}
		j := i * 3
		wx, wy, wz := tr.Apply(frame.Positions[j], frame.Positions[j+1], frame.Positions[j+2])
		if cam.ViewZ(wx, wy, wz) >= 0 {
			continue
		}

		size := frame.Sizes[i]
		if size > maxSpriteSize {
			size = maxSpriteSize
		}
		if size < 1 {
			size = 1
		}

		var angle float32
		if i < len(frame.Angles) {
			angle = frame.Angles[i] * rl.Rad2deg
		}

		screen := rl.GetWorldToScreen(rl.NewVector3(wx, wy, wz), rlCam)
		rl.DrawPoly(screen, 4, size/2, angle, c)
		r.Drawn++
	}
}

// ToCamera3D converts the orbit camera into a raylib camera.
func ToCamera3D(c *camera.Camera) rl.Camera3D {
	x, y, z := c.Position()
	return rl.Camera3D{
		Position:   rl.NewVector3(x, y, z),
		Target:     rl.NewVector3(c.TargetX, c.TargetY, c.TargetZ),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       c.FovY,
		Projection: rl.CameraPerspective,
	}
}
