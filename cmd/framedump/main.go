// Frame dump tool - runs the scene headless for N ticks and renders one frame to PNG.
//
// Usage: go run ./cmd/framedump -ticks 600 -auto-dissolve -out frame.png
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dissolve/config"
	"github.com/pthm-cable/dissolve/game"
	"github.com/pthm-cable/dissolve/ui"
	"github.com/pthm-cable/dissolve/viewer"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	device := flag.String("device", "", "Device profile (empty = use config)")
	outPath := flag.String("out", "frame.png", "Output PNG path")
	width := flag.Int("width", 1024, "Render width")
	height := flag.Int("height", 768, "Render height")
	ticks := flag.Int("ticks", 0, "Ticks to simulate before rendering")
	seed := flag.Int64("seed", 1, "RNG seed")
	autoDissolve := flag.Bool("auto-dissolve", false, "Run the dissolve oscillator while simulating")
	progress := flag.Float64("progress", 0, "Force dissolve progress before rendering (0 = leave as simulated)")
	overlays := flag.Bool("overlays", false, "Draw wireframe and tether overlays")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *device != "" {
		if err := config.Cfg().SetDevice(*device); err != nil {
			slog.Error("invalid device", "error", err)
			os.Exit(1)
		}
	}

	g, err := game.NewGameWithOptions(game.Options{
		Seed:         *seed,
		Headless:     true,
		AutoDissolve: *autoDissolve,
	})
	if err != nil {
		slog.Error("failed to build scene", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	for i := 0; i < *ticks; i++ {
		g.Step()
	}
	if *progress != 0 {
		if _, err := g.Set(game.OptionProgress, float32(*progress)); err != nil {
			slog.Error("failed to set progress", "error", err)
			os.Exit(1)
		}
	}

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(*width), int32(*height), "Frame Dump")
	defer rl.CloseWindow()

	v := viewer.New(g, int32(*width), int32(*height))
	if *overlays {
		v.SetOverlay(ui.OverlayWireframe, true)
		v.SetOverlay(ui.OverlayTethers, true)
	}
	v.RefreshFrame()

	target := rl.LoadRenderTexture(int32(*width), int32(*height))
	defer rl.UnloadRenderTexture(target)

	rl.BeginTextureMode(target)
	v.DrawScene()
	rl.EndTextureMode()

	// Get image from texture and flip it (OpenGL convention)
	img := rl.LoadImageFromTexture(target.Texture)
	rl.ImageFlipVertical(img)

	success := rl.ExportImage(*img, *outPath)
	rl.UnloadImage(img)

	if !success {
		fmt.Fprintf(os.Stderr, "Failed to export image\n")
		os.Exit(1)
	}

	g.LogState()
	fmt.Printf("Frame rendered to: %s (%dx%d, tick %d, progress %.2f)\n",
		*outPath, *width, *height, g.Tick(), g.State().Progress)
}
