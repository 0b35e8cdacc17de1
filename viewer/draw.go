package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dissolve/components"
	"github.com/pthm-cable/dissolve/inspector"
	"github.com/pthm-cable/dissolve/renderer"
	"github.com/pthm-cable/dissolve/systems"
	"github.com/pthm-cable/dissolve/ui"
)

// Overlay colors
var (
	colorWire      = rl.Color{R: 180, G: 180, B: 190, A: 40}
	colorDiscarded = rl.Color{R: 200, G: 60, B: 60, A: 200}
	colorEdge      = rl.Color{R: 255, G: 200, B: 80, A: 220}
	colorBase      = rl.Color{R: 80, G: 200, B: 120, A: 120}
	colorTether    = rl.Color{R: 120, G: 160, B: 255, A: 90}
	colorHidden    = rl.Color{R: 200, G: 200, B: 200, A: 50}
)

// Draw renders one frame to the window.
func (v *Viewer) Draw() {
	rl.BeginDrawing()
	v.DrawScene()
	v.perf.Measure("ui", v.drawUI)
	rl.EndDrawing()
	v.game.PerfCollector().RecordFrame()
}

// DrawScene renders the background, both layers and the scene overlays into the
// current render target, without any panels.
func (v *Viewer) DrawScene() {
	rl.ClearBackground(rl.Black)
	v.background.Draw()

	g := v.game
	cam3D := renderer.ToCamera3D(v.camera)
	surfaceTr, _ := g.LayerTransform(components.LayerSurface)
	swarmTr, _ := g.LayerTransform(components.LayerSwarm)

	rl.BeginMode3D(cam3D)
	if g.LayerVisible(components.LayerSurface) {
		v.perf.Measure("surface", func() {
			v.surface.Draw(g.Shape(), g.SurfaceNoise(), g.State(), v.meshColor, surfaceTr)
		})
	}
	if v.overlays.IsEnabled(ui.OverlayWireframe) {
		v.drawWireframe(surfaceTr)
	}
	if v.overlays.IsEnabled(ui.OverlayTethers) {
		v.drawTethers(swarmTr)
	}
	rl.EndMode3D()

	if g.LayerVisible(components.LayerSwarm) {
		v.perf.Measure("swarm", func() {
			v.swarm.Draw(g.Frame(), swarmTr, v.camera, v.particleColor)
		})
	}
	if v.overlays.IsEnabled(ui.OverlayVertexClass) {
		v.drawVertexClasses(cam3D, surfaceTr)
	}
	if v.overlays.IsEnabled(ui.OverlayHiddenSwarm) {
		v.drawHiddenParticles(cam3D, swarmTr)
	}
}

// SetOverlay enables or disables a scene overlay.
func (v *Viewer) SetOverlay(id ui.OverlayID, on bool) {
	v.overlays.SetEnabled(id, on)
}

// drawWireframe draws every mesh edge, dissolved or not.
func (v *Viewer) drawWireframe(tr components.Transform) {
	shape := v.game.Shape()
	pos := shape.Positions
	idx := shape.Indices

	vertex := func(i uint32) {
		j := int(i) * 3
		rl.Vertex3f(tr.Apply(pos[j], pos[j+1], pos[j+2]))
	}

	rl.Begin(rl.Lines)
	rl.Color4ub(colorWire.R, colorWire.G, colorWire.B, colorWire.A)
	for t := 0; t+2 < len(idx); t += 3 {
		a, b, c := idx[t], idx[t+1], idx[t+2]
		vertex(a)
		vertex(b)
		vertex(b)
		vertex(c)
	}
	rl.End()
}

// drawTethers draws a line from each displaced particle's rest point to where it is drawn.
func (v *Viewer) drawTethers(tr components.Transform) {
	g := v.game
	field := g.Field()
	frame := g.Frame()
	rest := field.RestPositions()
	noise := g.SurfaceNoise()
	state := g.State()

	rl.Begin(rl.Lines)
	rl.Color4ub(colorTether.R, colorTether.G, colorTether.B, colorTether.A)
	for i := 0; i < frame.Len() && i < len(noise); i++ {
		if !state.ParticleDisplaced(noise[i]) {
			continue
		}
		j := i * 3
		rl.Vertex3f(tr.Apply(rest[j], rest[j+1], rest[j+2]))
		rl.Vertex3f(tr.Apply(frame.Positions[j], frame.Positions[j+1], frame.Positions[j+2]))
	}
	rl.End()
}

// drawVertexClasses marks each surface vertex with its mask decision.
func (v *Viewer) drawVertexClasses(cam rl.Camera3D, tr components.Transform) {
	g := v.game
	pos := g.Shape().Positions
	noise := g.SurfaceNoise()
	state := g.State()

	for i, n := range noise {
		j := i * 3
		wx, wy, wz := tr.Apply(pos[j], pos[j+1], pos[j+2])
		if v.camera.ViewZ(wx, wy, wz) >= 0 {
			continue
		}
		var c rl.Color
		switch state.ClassifySurface(n) {
		case systems.FragmentDiscard:
			c = colorDiscarded
		case systems.FragmentEdge:
			c = colorEdge
		default:
			c = colorBase
		}
		p := rl.GetWorldToScreen(rl.NewVector3(wx, wy, wz), cam)
		rl.DrawRectangle(int32(p.X)-1, int32(p.Y)-1, 2, 2, c)
	}
}

// drawHiddenParticles shows particles outside the edge band as faint dots.
func (v *Viewer) drawHiddenParticles(cam rl.Camera3D, tr components.Transform) {
	frame := v.game.Frame()
	for i := 0; i < frame.Len(); i++ {
		if frame.Visible[i] {
			continue
		}
		j := i * 3
		wx, wy, wz := tr.Apply(frame.Positions[j], frame.Positions[j+1], frame.Positions[j+2])
		if v.camera.ViewZ(wx, wy, wz) >= 0 {
			continue
		}
		p := rl.GetWorldToScreen(rl.NewVector3(wx, wy, wz), cam)
		rl.DrawPixel(int32(p.X), int32(p.Y), colorHidden)
	}
}

// inspectorPages lists the components shown in the inspector.
func (v *Viewer) inspectorPages() []inspector.Page {
	g := v.game
	pages := make([]inspector.Page, 0, 3)

	osc := g.Oscillator()
	pages = append(pages, inspector.Page{
		Name: "Dissolve",
		Sections: []inspector.Section{
			{Title: "STATE", Components: []any{g.State()}},
			{Title: "OSCILLATOR", Components: []any{oscillatorView{
				Enabled: osc.Enabled(),
				Phase:   osc.Phase().String(),
				Low:     osc.Low,
				High:    osc.High,
				Step:    osc.Step,
				Flips:   osc.Flips(),
			}}},
		},
	})

	for _, kind := range []components.LayerKind{components.LayerSurface, components.LayerSwarm} {
		tr, motion, layer, ok := g.LayerComponents(kind)
		if !ok {
			continue
		}
		secs := []inspector.Section{
			{Title: "TRANSFORM", Components: []any{tr}},
			{Title: "MOTION", Components: []any{motion}},
			{Title: "LAYER", Components: []any{layer}},
		}
		if kind == components.LayerSwarm {
			secs = append(secs, inspector.Section{Title: "CONTROLS", Components: []any{g.Controls()}})
		}
		pages = append(pages, inspector.Page{Name: kind.String(), Sections: secs})
	}
	return pages
}

// oscillatorView is the inspectable summary of the oscillator.
type oscillatorView struct {
	Enabled bool    `inspect:"bool"`
	Phase   string  `inspect:"label"`
	Low     float32 `inspect:"label,fmt:%.1f"`
	High    float32 `inspect:"label,fmt:%.1f"`
	Step    float32 `inspect:"label,fmt:%.3f"`
	Flips   int     `inspect:"label"`
}
