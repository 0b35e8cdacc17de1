package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title            string
	Tick             int32
	Speed            int
	FPS              int32
	Paused           bool
	Auto             bool
	Phase            string
	Progress         float32
	SurfaceVisible   int
	SurfaceTotal     int
	ParticlesVisible int
	ParticlesTotal   int
	EdgeColor        rl.Color
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD at the top of the screen, offset by x.
func (h *HUD) Draw(x int32, data HUDData) {
	rl.DrawText(data.Title, x, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Surface: %d/%d | Swarm: %d/%d", data.SurfaceVisible, data.SurfaceTotal, data.ParticlesVisible, data.ParticlesTotal),
		x, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d", data.Tick, data.Speed, data.FPS),
		x, 55, 16, rl.LightGray,
	)

	mode := "manual"
	if data.Auto {
		mode = "auto " + data.Phase
	}
	progress := fmt.Sprintf("Progress: %+.2f (%s)", data.Progress, mode)
	rl.DrawText(progress, x, 75, 16, data.EdgeColor)

	if data.Paused {
		pw := rl.MeasureText(progress, 16)
		rl.DrawText("PAUSED", x+pw+12, 75, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	SystemTimes map[string]time.Duration
	Total       time.Duration
	TicksPerSec float64
}

// PerfPanel renders the phase timing panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(data PerfPanelData, sortedNames []string) {
	x := p.x
	y := p.y

	p.renderer.DrawPanel(x-6, y-6, 300, int32(56+14*min(len(sortedNames), 12)))

	rl.DrawText("Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Total: %s | %.0f ticks/s", data.Total.Round(time.Microsecond), data.TicksPerSec), x, y, 14, rl.Yellow)
	y += 16

	for i, name := range sortedNames {
		if i >= 12 {
			break
		}

		avg := data.SystemTimes[name]
		pct := float64(0)
		if data.Total > 0 {
			pct = float64(avg) / float64(data.Total) * 100
		}

		color := rl.LightGray
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-16s %6s %5.1f%%", name, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
