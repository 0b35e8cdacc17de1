package viewer

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dissolve/components"
	"github.com/pthm-cable/dissolve/ui"
)

const (
	orbitSpeed     = 0.005 // Radians per pixel of mouse drag
	orbitKeySpeed  = 0.03  // Radians per frame with arrow keys
	wheelZoomScale = 0.1
)

// handleInput processes keyboard and mouse input.
func (v *Viewer) handleInput() {
	v.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	g := v.game
	if rl.IsKeyPressed(rl.KeySpace) {
		g.SetPaused(!g.Paused())
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) {
		g.SetStepsPerUpdate(g.StepsPerUpdate() - 1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		g.SetStepsPerUpdate(g.StepsPerUpdate() + 1)
	}

	if rl.IsKeyPressed(rl.KeyA) {
		on := !g.Oscillator().Enabled()
		g.SetAutoDissolve(on)
		slog.Info("auto dissolve", "enabled", on, "progress", g.State().Progress)
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.RestartCycle()
	}

	// Layer visibility
	if rl.IsKeyPressed(rl.KeyM) {
		g.ToggleLayer(components.LayerSurface)
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.ToggleLayer(components.LayerSwarm)
	}
	if rl.IsKeyPressed(rl.KeyZ) {
		g.SetZWave(!g.Controls().ZWave)
	}

	if rl.IsKeyPressed(rl.KeyS) {
		if path, err := g.SaveSnapshot(); err != nil {
			slog.Error("failed to save snapshot", "error", err)
		} else {
			slog.Info("snapshot saved", "path", path)
		}
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		v.controls.Toggle()
	}

	// Overlay toggles
	if key := rl.GetKeyPressed(); key != 0 {
		if id, on, ok := v.overlays.HandleKeyPress(key); ok {
			slog.Debug("overlay", "id", id, "enabled", on)
		}
	}

	mouse := rl.GetMousePosition()
	if v.overlays.IsEnabled(ui.OverlayInspector) {
		v.inspector.HandleInput(mouse.X, mouse.Y, v.inspectorPages())
	}
	if v.overlays.IsEnabled(ui.OverlayCycleHistory) {
		v.cycle.HandleInput()
	}

	v.handleCameraInput(mouse)
}

// handleResize checks for window resize and propagates new dimensions.
func (v *Viewer) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == v.screenWidth && h == v.screenHeight {
		return
	}
	v.screenWidth = w
	v.screenHeight = h

	v.camera.Resize(w, h)
	v.background.Resize(int32(w), int32(h))
	v.inspector.Resize(int32(w), int32(h))
	v.cycle.Resize(int32(w), int32(h))
	v.perfPanel.SetPosition(int32(w)-310, 16)
	v.histogram.SetPosition(int32(w)-330, int32(h)-230)
}

// handleCameraInput orbits with a mouse drag or the arrow keys and zooms with the wheel.
func (v *Viewer) handleCameraInput(mouse rl.Vector2) {
	overUI := v.controls.Hovered() ||
		(v.overlays.IsEnabled(ui.OverlayInspector) && v.inspector.Contains(mouse.X, mouse.Y, v.inspectorPages()))

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !overUI {
		v.dragging = true
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		v.dragging = false
	}
	if v.dragging {
		d := rl.GetMouseDelta()
		v.camera.Orbit(-d.X*orbitSpeed, d.Y*orbitSpeed)
	}

	if rl.IsKeyDown(rl.KeyRight) {
		v.camera.Orbit(orbitKeySpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		v.camera.Orbit(-orbitKeySpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		v.camera.Orbit(0, orbitKeySpeed)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		v.camera.Orbit(0, -orbitKeySpeed)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 && !overUI {
		v.camera.ZoomBy(1 + wheel*wheelZoomScale)
	}

	// Keyboard zoom with +/- (= and - keys)
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		v.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		v.camera.ZoomBy(0.8)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		v.camera.Reset()
	}
}
