// Dissolve mask preview tool - interactive 2D slice of the mask with sliders.
//
// Usage: go run ./cmd/maskpreview
package main

import (
	"fmt"
	"image/color"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dissolve/config"
	"github.com/pthm-cable/dissolve/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
	gridSize     = 256

	// World extent covered by the preview, centered on the origin
	sliceExtent = 8.0
)

// MaskParams holds the dissolve parameters being previewed.
type MaskParams struct {
	Progress  float32
	EdgeWidth float32
	Frequency float32
	Amplitude float32
	SliceZ    float32
	Seed      int64
	Perlin    bool
}

func defaultParams() MaskParams {
	d := config.Cfg().Dissolve
	return MaskParams{
		Progress:  float32(d.Progress),
		EdgeWidth: float32(d.EdgeWidth),
		Frequency: float32(d.Frequency),
		Amplitude: float32(d.Amplitude),
		Seed:      1,
	}
}

func main() {
	config.MustInit("")
	edge := config.Cfg().Derived.EdgeColor
	mesh := config.Cfg().Derived.MeshColor

	rl.InitWindow(windowWidth, windowHeight, "Dissolve Mask Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaultParams()

	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	state := systems.NewDissolveState(params.Progress, params.EdgeWidth, params.Frequency, params.Amplitude, systems.RGB(edge))
	mask := systems.NewSurfaceMask(state, nil)
	needsOracle := true
	needsRepaint := true
	var counts systems.MaskCounts
	var lit int

	for !rl.WindowShouldClose() {
		if needsOracle {
			kind := systems.NoiseSimplex
			if params.Perlin {
				kind = systems.NoisePerlin
			}
			if o, err := systems.NewNoiseOracle(kind, params.Seed); err == nil {
				mask.Oracle = o
			}
			needsOracle = false
			needsRepaint = true
		}
		if needsRepaint {
			state.Progress = params.Progress
			state.SetEdgeWidth(params.EdgeWidth)
			state.SetFrequency(params.Frequency)
			state.Amplitude = params.Amplitude
			counts, lit = paintMask(texture, mask, params.SliceZ, systems.RGB(mesh))
			needsRepaint = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: gridSize, Height: gridSize},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		statsY := int32(previewSize + 25)
		total := float32(gridSize * gridSize)
		rl.DrawText(fmt.Sprintf("Discarded: %.1f%%  Edge: %.1f%%  Base: %.1f%%",
			100*float32(counts.Discarded)/total, 100*float32(counts.Edge)/total, 100*float32(counts.Base)/total),
			15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Particles lit: %.1f%%  Band: [%.2f, %.2f]",
			100*float32(lit)/total, state.Progress, state.BandTop()), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Dissolve Mask Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		var changed bool
		params.Progress, changed = slider(&panelX, &panelY, "Progress (threshold in noise units)", params.Progress, -20, 20, "%.2f")
		needsRepaint = needsRepaint || changed
		params.EdgeWidth, changed = slider(&panelX, &panelY, "Edge width (glowing band)", params.EdgeWidth, 0.1, 8, "%.2f")
		needsRepaint = needsRepaint || changed
		params.Amplitude, changed = slider(&panelX, &panelY, "Amplitude (noise scale)", params.Amplitude, 0.1, 20, "%.1f")
		needsRepaint = needsRepaint || changed
		params.Frequency, changed = slider(&panelX, &panelY, "Frequency (spatial scale)", params.Frequency, 0.01, 2, "%.3f")
		needsRepaint = needsRepaint || changed
		params.SliceZ, changed = slider(&panelX, &panelY, "Slice Z", params.SliceZ, -4, 4, "%.2f")
		needsRepaint = needsRepaint || changed

		panelY += 10

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(params.Perlin, "Perlin", "Simplex")) {
			params.Perlin = !params.Perlin
			needsOracle = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(1, 99999))
			needsOracle = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams()
			needsOracle = true
		}
		rl.DrawText(fmt.Sprintf("Seed: %d", params.Seed), int32(panelX+130), int32(panelY+8), 16, rl.DarkGray)
		panelY += 55

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range yamlLines(params) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			text := ""
			for _, line := range yamlLines(params) {
				text += line + "\n"
			}
			rl.SetClipboardText(text)
		}

		rl.EndDrawing()
	}
}

// slider draws a labeled slider and advances the layout cursor.
func slider(panelX, panelY *float32, label string, value, min, max float32, format string) (float32, bool) {
	rl.DrawText(label, int32(*panelX), int32(*panelY), 14, rl.Gray)
	*panelY += 18
	newValue := gui.SliderBar(
		rl.Rectangle{X: *panelX, Y: *panelY, Width: float32(panelWidth - 80), Height: 20},
		fmt.Sprintf(format, min), fmt.Sprintf(format, max),
		value, min, max,
	)
	rl.DrawText(fmt.Sprintf(format, value), int32(*panelX+float32(panelWidth-70)), int32(*panelY+2), 16, rl.DarkGray)
	*panelY += 35
	return newValue, newValue != value
}

func yamlLines(p MaskParams) []string {
	kind := systems.NoiseSimplex
	if p.Perlin {
		kind = systems.NoisePerlin
	}
	return []string{
		"dissolve:",
		fmt.Sprintf("  progress: %.2f", p.Progress),
		fmt.Sprintf("  edge_width: %.2f", p.EdgeWidth),
		fmt.Sprintf("  frequency: %.3f", p.Frequency),
		fmt.Sprintf("  amplitude: %.1f", p.Amplitude),
		"noise:",
		fmt.Sprintf("  kind: %s", kind),
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// paintMask classifies each texel of the slice z = sliceZ through the mask and
// counts the texels where a resting particle would be drawn.
func paintMask(texture rl.Texture2D, mask *systems.SurfaceMask, sliceZ float32, base systems.RGB) (systems.MaskCounts, int) {
	pixels := make([]color.RGBA, gridSize*gridSize)
	var counts systems.MaskCounts
	lit := 0
	for y := 0; y < gridSize; y++ {
		wy := (float32(y)/gridSize - 0.5) * sliceExtent
		for x := 0; x < gridSize; x++ {
			wx := (float32(x)/gridSize - 0.5) * sliceExtent
			frag, visible := mask.Sample(wx, -wy, sliceZ)

			var c color.RGBA
			switch frag {
			case systems.FragmentDiscard:
				counts.Discarded++
				c = color.RGBA{R: 20, G: 22, B: 28, A: 255}
			case systems.FragmentEdge:
				counts.Edge++
				c = rgba(mask.State.EdgeColor, 1)
			default:
				counts.Base++
				c = rgba(base, 0.8)
			}
			if visible {
				lit++
			}
			pixels[y*gridSize+x] = c
		}
	}
	rl.UpdateTexture(texture, pixels)
	return counts, lit
}

func rgba(c systems.RGB, k float32) color.RGBA {
	ch := func(v float32) uint8 {
		v *= k
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return uint8(v * 255)
	}
	return color.RGBA{R: ch(c.R), G: ch(c.G), B: ch(c.B), A: 255}
}
