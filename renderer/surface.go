// Package renderer draws the dissolving surface and its particle swarm with raylib.
package renderer

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dissolve/components"
	"github.com/pthm-cable/dissolve/systems"
)

// Light direction for the base material, normalized in NewSurfaceRenderer.
var lightDir = [3]float32{0.4, 0.8, 0.45}

// SurfaceRenderer draws the base mesh through the dissolve mask.
// The mask is evaluated per vertex from the cached noise; a triangle is dropped
// when any of its corners is discarded, so holes open along whole faces.
type SurfaceRenderer struct {
	light   [3]float32
	ambient float32

	// Scratch world-space positions, reused across frames
	world []float32

	// Triangles drawn on the last call
	Drawn int
}

// NewSurfaceRenderer creates a surface renderer.
func NewSurfaceRenderer() *SurfaceRenderer {
	l := math32.Sqrt(lightDir[0]*lightDir[0] + lightDir[1]*lightDir[1] + lightDir[2]*lightDir[2])
	return &SurfaceRenderer{
		light:   [3]float32{lightDir[0] / l, lightDir[1] / l, lightDir[2] / l},
		ambient: 0.35,
	}
}

// Draw renders the mesh. Must be called between BeginMode3D and EndMode3D.
func (r *SurfaceRenderer) Draw(shape *systems.TorusKnot, noise []float32, state *systems.DissolveState, base systems.RGB, tr components.Transform) {
	r.Drawn = 0
	n := shape.VertexCount()
	if n == 0 || len(noise) < n {
		return
	}
	if cap(r.world) < n*3 {
		r.world = make([]float32, n*3)
	}
	r.world = r.world[:n*3]

	pos := shape.Positions
	for i := 0; i < n; i++ {
		j := i * 3
		r.world[j], r.world[j+1], r.world[j+2] = tr.Apply(pos[j], pos[j+1], pos[j+2])
	}

	sin, cos := math32.Sincos(tr.RotY)
	edge := toColor(state.EdgeColor, 1)

	rl.DisableBackfaceCulling()
	rl.Begin(rl.Triangles)
	idx := shape.Indices
	for t := 0; t+2 < len(idx); t += 3 {
		a, b, c := idx[t], idx[t+1], idx[t+2]
		fa := state.ClassifySurface(noise[a])
		fb := state.ClassifySurface(noise[b])
		fc := state.ClassifySurface(noise[c])
		if fa == systems.FragmentDiscard || fb == systems.FragmentDiscard || fc == systems.FragmentDiscard {
			continue
		}
		r.vertex(shape, a, fa, base, edge, sin, cos)
		r.vertex(shape, b, fb, base, edge, sin, cos)
		r.vertex(shape, c, fc, base, edge, sin, cos)
		r.Drawn++
	}
	rl.End()
	rl.EnableBackfaceCulling()
}

func (r *SurfaceRenderer) vertex(shape *systems.TorusKnot, i uint32, frag systems.Fragment, base systems.RGB, edge rl.Color, sin, cos float32) {
	j := int(i) * 3
	if frag == systems.FragmentEdge {
		rl.Color4ub(edge.R, edge.G, edge.B, edge.A)
	} else {
		// Normals rotate with the layer; translation does not affect them
		nx, ny, nz := shape.Normals[j], shape.Normals[j+1], shape.Normals[j+2]
		wx := nx*cos + nz*sin
		wz := -nx*sin + nz*cos
		lambert := wx*r.light[0] + ny*r.light[1] + wz*r.light[2]
		if lambert < 0 {
			lambert = -lambert * 0.5 // inner faces show through holes
		}
		c := toColor(base, r.ambient+(1-r.ambient)*lambert)
		rl.Color4ub(c.R, c.G, c.B, c.A)
	}
	rl.Vertex3f(r.world[j], r.world[j+1], r.world[j+2])
}

// toColor converts a linear color scaled by k to an opaque raylib color.
func toColor(c systems.RGB, k float32) rl.Color {
	return rl.Color{
		R: channel(c.R * k),
		G: channel(c.G * k),
		B: channel(c.B * k),
		A: 255,
	}
}

func channel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
