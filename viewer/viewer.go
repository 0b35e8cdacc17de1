// Package viewer opens the raylib window around a headless scene: it feeds the
// camera depth back into the swarm frame, draws both layers, and runs the panels.
package viewer

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dissolve/camera"
	"github.com/pthm-cable/dissolve/components"
	"github.com/pthm-cable/dissolve/config"
	"github.com/pthm-cable/dissolve/game"
	"github.com/pthm-cable/dissolve/inspector"
	"github.com/pthm-cable/dissolve/renderer"
	"github.com/pthm-cable/dissolve/systems"
	"github.com/pthm-cable/dissolve/ui"
)

const histogramBins = 48

// Viewer draws a game and routes window input to it.
type Viewer struct {
	game *game.Game

	camera *camera.Camera

	background *renderer.BackgroundRenderer
	surface    *renderer.SurfaceRenderer
	swarm      *renderer.SwarmRenderer

	hud       *ui.HUD
	overlays  *ui.OverlayRegistry
	controls  *ui.ControlsPanel
	perfPanel *ui.PerfPanel
	histogram *ui.HistogramPanel

	inspector *inspector.Inspector
	cycle     *inspector.CyclePanel

	perf *PerfStats

	meshColor     systems.RGB
	particleColor systems.RGB

	screenWidth, screenHeight float32

	// Last telemetry window handed to the cycle panel
	lastWindowTick int32

	// Mouse drag state for orbiting
	dragging bool

	// Cached histogram of the surface noise, rebuilt when the noise changes
	histCounts, histEdges []float64
	histFrequency         float32
	histAmplitude         float32
}

// New creates a viewer for g. The window must already be open.
func New(g *game.Game, screenWidth, screenHeight int32) *Viewer {
	cfg := config.Cfg()
	cp := cfg.Derived.Profile.CameraPosition

	v := &Viewer{
		game:          g,
		camera:        camera.New(float32(screenWidth), float32(screenHeight), float32(cp[0]), float32(cp[1]), float32(cp[2])),
		background:    renderer.NewBackgroundRenderer(screenWidth, screenHeight, 28, 30, 38),
		surface:       renderer.NewSurfaceRenderer(),
		swarm:         renderer.NewSwarmRenderer(),
		hud:           ui.NewHUD(),
		overlays:      ui.NewOverlayRegistry(),
		perfPanel:     ui.NewPerfPanel(screenWidth-310, 16),
		histogram:     ui.NewHistogramPanel(screenWidth-330, screenHeight-230, 320, 180),
		inspector:     inspector.NewInspector(screenWidth, screenHeight),
		cycle:         inspector.NewCyclePanel(screenWidth, screenHeight),
		perf:          NewPerfStats(),
		meshColor:     systems.RGB(cfg.Derived.MeshColor),
		particleColor: systems.RGB(cfg.Derived.ParticleColor),
		screenWidth:   float32(screenWidth),
		screenHeight:  float32(screenHeight),
	}
	v.controls = ui.NewControlsPanel(10, 100, 250, v.sliders())

	return v
}

// sliders binds one slider to each adjustable scene option.
func (v *Viewer) sliders() []ui.SliderDescriptor {
	opts := game.AllOptions()
	out := make([]ui.SliderDescriptor, 0, len(opts))
	for _, opt := range opts {
		opt := opt
		rng := opt.Range()
		format := "%.3f"
		switch opt {
		case game.OptionProgress, game.OptionBaseSize:
			format = "%.1f"
		case game.OptionRotationY, game.OptionEdgeWidth:
			format = "%.2f"
		}
		out = append(out, ui.SliderDescriptor{
			ID:     opt.String(),
			Label:  sliderLabel(opt.String()),
			Format: format,
			Range:  ui.FieldRange{Min: rng.Min, Max: rng.Max},
			Get:    func() float32 { return v.game.Get(opt) },
			Set: func(x float32) float32 {
				got, _ := v.game.Set(opt, x)
				return got
			},
		})
	}
	return out
}

// sliderLabel turns an option name like "edge_width" into "Edge width".
func sliderLabel(name string) string {
	s := strings.ReplaceAll(name, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Camera returns the orbit camera.
func (v *Viewer) Camera() *camera.Camera {
	return v.camera
}

// Update handles input, advances the scene and rebuilds the swarm frame with
// view depth from the current camera.
func (v *Viewer) Update() {
	v.handleInput()

	v.perf.Measure("step", v.game.UpdateHeadless)
	v.perf.Measure("frame", v.RefreshFrame)

	v.syncHistory()
}

// RefreshFrame rebuilds the swarm frame with view depth from the current camera.
func (v *Viewer) RefreshFrame() {
	v.game.RefreshFrame(v.depthFunc())
}

// depthFunc maps an object-space swarm point to view depth.
func (v *Viewer) depthFunc() game.DepthFunc {
	tr, _ := v.game.LayerTransform(components.LayerSwarm)
	cam := v.camera
	return func(x, y, z float32) float32 {
		return cam.ViewZ(tr.Apply(x, y, z))
	}
}

// syncHistory forwards new telemetry windows to the cycle panel.
func (v *Viewer) syncHistory() {
	h := v.game.History()
	if len(h) == 0 {
		return
	}
	last := h[len(h)-1]
	if last.WindowEndTick == v.lastWindowTick {
		return
	}
	v.lastWindowTick = last.WindowEndTick
	v.cycle.Update(last)
}

// controlsLegend is drawn along the bottom edge.
func controlsLegend() string {
	return fmt.Sprintf("%s | %s | %s | %s",
		"Space: pause  A: auto  R: restart cycle",
		"M/P: surface/swarm  , .: speed  S: snapshot",
		"Drag/arrows: orbit  Wheel: zoom  Home: reset",
		"Tab: panel  F11: fullscreen",
	)
}
