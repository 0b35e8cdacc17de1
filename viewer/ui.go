package viewer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dissolve/systems"
	"github.com/pthm-cable/dissolve/ui"
)

// sceneData is what the scene panel's getters read.
type sceneData struct {
	counts    systems.MaskCounts
	visible   int
	displaced int
	particles int
	meanDrift float32
	maxDrift  float32
	resamples int
	edge      rl.Color
	surfaceTr int
	swarmTr   int
}

// scenePanel describes the scene summary panel.
var scenePanel = ui.PanelDescriptor{
	ID:     "scene",
	Title:  "Scene",
	Anchor: ui.AnchorTopRight,
	Sections: []ui.SectionDescriptor{
		{
			ID:    "surface",
			Title: "Surface",
			Fields: []ui.FieldDescriptor{
				{Label: "Discarded", Widget: ui.WidgetText, Format: "%.0f", Getter: func(d any) float32 { return float32(d.(sceneData).counts.Discarded) }},
				{Label: "Edge", Widget: ui.WidgetText, Format: "%.0f", Getter: func(d any) float32 { return float32(d.(sceneData).counts.Edge) }},
				{Label: "Base", Widget: ui.WidgetText, Format: "%.0f", Getter: func(d any) float32 { return float32(d.(sceneData).counts.Base) }},
				{Label: "Shown", Widget: ui.WidgetBar, Getter: func(d any) float32 {
					s := d.(sceneData)
					total := s.counts.Discarded + s.counts.Visible()
					if total == 0 {
						return 0
					}
					return float32(s.counts.Visible()) / float32(total)
				}},
				{Label: "Triangles", Widget: ui.WidgetText, Format: "%.0f", Getter: func(d any) float32 { return float32(d.(sceneData).surfaceTr) }},
			},
		},
		{
			ID:    "swarm",
			Title: "Swarm",
			Fields: []ui.FieldDescriptor{
				{Label: "Visible", Widget: ui.WidgetText, TextGetter: func(d any) string {
					s := d.(sceneData)
					return fmt.Sprintf("%d / %d", s.visible, s.particles)
				}},
				{Label: "Displaced", Widget: ui.WidgetText, Format: "%.0f", Getter: func(d any) float32 { return float32(d.(sceneData).displaced) }},
				{Label: "Drawn", Widget: ui.WidgetText, Format: "%.0f", Getter: func(d any) float32 { return float32(d.(sceneData).swarmTr) }},
				{Label: "Mean drift", Widget: ui.WidgetRangeBar, Range: ui.FieldRange{Min: 0, Max: 7}, Getter: func(d any) float32 { return d.(sceneData).meanDrift }},
				{Label: "Max drift", Widget: ui.WidgetRangeBar, Range: ui.FieldRange{Min: 0, Max: 7}, Getter: func(d any) float32 { return d.(sceneData).maxDrift }},
				{Label: "Edge color", Widget: ui.WidgetColorSwatch, ColorGetter: func(d any) rl.Color { return d.(sceneData).edge }},
			},
		},
		{
			ID:    "noise",
			Title: "Noise",
			Fields: []ui.FieldDescriptor{
				{Label: "Resamples", Widget: ui.WidgetText, Format: "%.0f", Getter: func(d any) float32 { return float32(d.(sceneData).resamples) }},
			},
		},
	},
}

// drawUI renders the HUD and every enabled panel.
func (v *Viewer) drawUI() {
	g := v.game
	state := g.State()
	frame := g.Frame()
	counts := g.Counts()
	edge := rgbColor(state.EdgeColor)

	hudX := int32(10)
	if v.controls.IsVisible() {
		hudX = 270
	}
	v.hud.Draw(hudX, ui.HUDData{
		Title:            "Dissolve",
		Tick:             g.Tick(),
		Speed:            g.StepsPerUpdate(),
		FPS:              rl.GetFPS(),
		Paused:           g.Paused(),
		Auto:             g.Oscillator().Enabled(),
		Phase:            g.Oscillator().Phase().String(),
		Progress:         state.Progress,
		SurfaceVisible:   counts.Visible(),
		SurfaceTotal:     counts.Visible() + counts.Discarded,
		ParticlesVisible: frame.VisibleCount,
		ParticlesTotal:   frame.Len(),
		EdgeColor:        edge,
	})
	v.hud.DrawControls(int32(v.screenWidth), int32(v.screenHeight), controlsLegend())

	v.controls.Draw(v.overlays)

	sw, sh := int32(v.screenWidth), int32(v.screenHeight)
	rightTaken := false

	if v.overlays.IsEnabled(ui.OverlayInspector) {
		v.inspector.Draw(v.inspectorPages())
		rightTaken = true
	}
	if v.overlays.IsEnabled(ui.OverlayPerf) && !rightTaken {
		perf := g.PerfCollector().Stats()
		times := v.perf.Durations()
		for phase, d := range perf.PhaseAvg {
			times["step/"+phase] = d
		}
		names := v.perf.SortedNames()
		for phase := range perf.PhaseAvg {
			names = append(names, "step/"+phase)
		}
		v.perfPanel.Draw(ui.PerfPanelData{
			SystemTimes: times,
			Total:       v.perf.Total(),
			TicksPerSec: perf.TicksPerSecond,
		}, names)
		rightTaken = true
	}
	if !rightTaken {
		mean, maxDrift := g.Field().DriftStats()
		data := sceneData{
			counts:    counts,
			visible:   frame.VisibleCount,
			displaced: frame.DisplacedCount,
			particles: frame.Len(),
			meanDrift: mean,
			maxDrift:  maxDrift,
			resamples: g.NoiseResamples(),
			edge:      edge,
			surfaceTr: v.surface.Drawn,
			swarmTr:   v.swarm.Drawn,
		}
		w := ui.DefaultTheme().PanelWidth
		h := ui.DefaultTheme().PanelHeight(scenePanel, data)
		x, y := ui.AnchorPosition(scenePanel.Anchor, w, h, sw, sh, 10)
		ui.NewRenderer().DrawPanelDescriptor(x, y, scenePanel, data)
	}

	if v.overlays.IsEnabled(ui.OverlayCycleHistory) {
		v.cycle.Draw()
	}
	if v.overlays.IsEnabled(ui.OverlayNoiseProfile) {
		v.drawNoiseHistogram()
	}
}

// drawNoiseHistogram plots the surface noise with the mask thresholds marked.
func (v *Viewer) drawNoiseHistogram() {
	state := v.game.State()
	if v.histCounts == nil || state.Frequency != v.histFrequency || state.Amplitude != v.histAmplitude {
		v.histCounts, v.histEdges = systems.NoiseHistogram(v.game.SurfaceNoise(), histogramBins)
		v.histFrequency = state.Frequency
		v.histAmplitude = state.Amplitude
	}

	p := float64(state.Progress)
	top := float64(state.BandTop())
	v.histogram.Draw("Surface noise", v.histCounts, v.histEdges, []ui.HistogramMarker{
		{Label: "progress", Value: p, Color: rl.Orange},
		{Label: "band", Value: top, Color: rgbColor(state.EdgeColor)},
		{Label: "", Value: p - systems.DisplacementMargin, Color: rl.Gray},
		{Label: "", Value: top + systems.DisplacementMargin, Color: rl.Gray},
	})
}

func rgbColor(c systems.RGB) rl.Color {
	return rl.Color{R: unit(c.R), G: unit(c.G), B: unit(c.B), A: 255}
}

func unit(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
