package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dissolve/telemetry"
)

const (
	// History buffer size in telemetry windows
	cycleHistorySize = 120

	// Line series indices
	seriesProgress       = 0
	seriesMeanDrift      = 1
	seriesMaxDrift       = 2
	seriesSwarmVisible   = 3
	seriesSurfaceVisible = 4
	seriesResets         = 5
	numSeries            = 6
)

// Series on the left axis share a scale; the fraction series use [0, 1] on the right.
var (
	leftSeries     = []int{seriesProgress, seriesMeanDrift, seriesMaxDrift}
	fractionSeries = []int{seriesSwarmVisible, seriesSurfaceVisible}
)

// CyclePanel graphs dissolve cycle metrics over recent telemetry windows.
type CyclePanel struct {
	screenWidth  int32
	screenHeight int32

	panelWidth  int32
	panelHeight int32
	panelX      int32
	panelY      int32

	// Latest window
	last    telemetry.WindowStats
	hasLast bool

	// Ring buffers, one per series
	history      [numSeries][]float64
	historyIndex int
	historyCount int

	// Series visibility (toggled by clicking legend)
	seriesVisible [numSeries]bool

	seriesNames  [numSeries]string
	seriesColors [numSeries]rl.Color
}

// Cycle panel colors
var (
	colorCycleTitle   = rl.Color{R: 200, G: 200, B: 220, A: 255}
	colorCyclePanelBg = rl.Color{R: 20, G: 20, B: 30, A: 230}
	colorGraphBg      = rl.Color{R: 15, G: 15, B: 25, A: 255}
	colorGraphGrid    = rl.Color{R: 40, G: 40, B: 50, A: 255}
	colorGraphBorder  = rl.Color{R: 60, G: 60, B: 70, A: 255}

	colorSeriesProgress = rl.Color{R: 255, G: 140, B: 60, A: 255}
	colorSeriesMean     = rl.Color{R: 100, G: 149, B: 237, A: 255}
	colorSeriesMax      = rl.Color{R: 150, G: 200, B: 255, A: 255}
	colorSeriesSwarm    = rl.Color{R: 255, G: 255, B: 100, A: 255}
	colorSeriesSurface  = rl.Color{R: 80, G: 180, B: 80, A: 255}
	colorSeriesResets   = rl.Color{R: 255, G: 100, B: 80, A: 255}

	colorDiscarded = rl.Color{R: 70, G: 70, B: 80, A: 255}
)

// NewCyclePanel creates a new cycle history panel along the bottom of the screen.
func NewCyclePanel(screenWidth, screenHeight int32) *CyclePanel {
	p := &CyclePanel{panelHeight: 200}
	p.Resize(screenWidth, screenHeight)

	for i := 0; i < numSeries; i++ {
		p.history[i] = make([]float64, cycleHistorySize)
	}

	p.seriesVisible = [numSeries]bool{
		true,  // Progress
		true,  // Mean drift
		false, // Max drift
		true,  // Swarm visible
		true,  // Surface visible
		false, // Resets
	}

	p.seriesNames = [numSeries]string{
		"Progress",
		"MeanDrift",
		"MaxDrift",
		"Swarm%",
		"Surface%",
		"Resets",
	}

	p.seriesColors = [numSeries]rl.Color{
		colorSeriesProgress,
		colorSeriesMean,
		colorSeriesMax,
		colorSeriesSwarm,
		colorSeriesSurface,
		colorSeriesResets,
	}

	return p
}

// Resize updates panel dimensions when the window is resized.
func (p *CyclePanel) Resize(screenWidth, screenHeight int32) {
	p.screenWidth = screenWidth
	p.screenHeight = screenHeight

	// Leave room on the right for the inspector
	p.panelWidth = screenWidth - PanelWidth - 40
	if p.panelWidth < 400 {
		p.panelWidth = 400
	}
	p.panelX = 10
	p.panelY = screenHeight - p.panelHeight - 40
}

// Update records a telemetry window.
func (p *CyclePanel) Update(stats telemetry.WindowStats) {
	p.last = stats
	p.hasLast = true

	var surfaceFrac float64
	if total := stats.SurfaceDiscarded + stats.SurfaceEdge + stats.SurfaceBase; total > 0 {
		surfaceFrac = float64(stats.SurfaceVisible()) / float64(total)
	}

	idx := p.historyIndex
	p.history[seriesProgress][idx] = stats.Progress
	p.history[seriesMeanDrift][idx] = stats.MeanDrift
	p.history[seriesMaxDrift][idx] = stats.MaxDrift
	p.history[seriesSwarmVisible][idx] = stats.VisibleFraction
	p.history[seriesSurfaceVisible][idx] = surfaceFrac
	p.history[seriesResets][idx] = float64(stats.TetherResets)

	p.historyIndex = (p.historyIndex + 1) % cycleHistorySize
	if p.historyCount < cycleHistorySize {
		p.historyCount++
	}
}

// HandleInput processes mouse clicks for legend toggling.
func (p *CyclePanel) HandleInput() {
	if !rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		return
	}

	mx := rl.GetMouseX()
	my := rl.GetMouseY()

	legendY := p.panelY + p.panelHeight - 24
	legendX := p.panelX + 10

	for i := 0; i < numSeries; i++ {
		itemX := legendX + int32(i)*90
		if mx >= itemX && mx < itemX+85 && my >= legendY && my < legendY+18 {
			p.seriesVisible[i] = !p.seriesVisible[i]
			return
		}
	}
}

// Draw renders the panel with the mask breakdown and line graph.
func (p *CyclePanel) Draw() {
	rl.DrawRectangle(p.panelX, p.panelY, p.panelWidth, p.panelHeight, colorCyclePanelBg)
	rl.DrawRectangleLines(p.panelX, p.panelY, p.panelWidth, p.panelHeight, colorGraphBorder)

	rl.DrawText("DISSOLVE CYCLE", p.panelX+10, p.panelY+6, 14, colorCycleTitle)

	if p.historyCount == 0 {
		rl.DrawText("Waiting for data...", p.panelX+140, p.panelY+80, 14, ColorTextDim)
		return
	}

	barsWidth := int32(180)
	graphX := p.panelX + barsWidth + 20
	graphY := p.panelY + 24
	graphW := p.panelWidth - barsWidth - 40
	graphH := p.panelHeight - 54

	p.drawMaskBars(p.panelX+10, p.panelY+28, barsWidth-20)
	p.drawGraph(graphX, graphY, graphW, graphH)
	p.drawLegend(p.panelX+10, p.panelY+p.panelHeight-24)
}

// drawMaskBars draws the surface mask breakdown and swarm counts of the last window.
func (p *CyclePanel) drawMaskBars(x, y, width int32) {
	s := p.last
	surface := float64(s.SurfaceDiscarded + s.SurfaceEdge + s.SurfaceBase)
	if surface <= 0 {
		surface = 1
	}
	particles := float64(s.Particles)
	if particles <= 0 {
		particles = 1
	}

	barHeight := int32(14)
	spacing := int32(18)

	p.drawSingleBar(x, y, width, barHeight, "Gone", float64(s.SurfaceDiscarded), surface, colorDiscarded)
	y += spacing
	p.drawSingleBar(x, y, width, barHeight, "Edge", float64(s.SurfaceEdge), surface, colorSeriesProgress)
	y += spacing
	p.drawSingleBar(x, y, width, barHeight, "Base", float64(s.SurfaceBase), surface, colorSeriesSurface)
	y += spacing
	p.drawSingleBar(x, y, width, barHeight, "Lit", float64(s.VisibleParticles), particles, colorSeriesSwarm)
	y += spacing
	p.drawSingleBar(x, y, width, barHeight, "Drift", float64(s.DisplacedParticles), particles, colorSeriesMean)
	y += spacing + 4

	rl.DrawText(fmt.Sprintf("%s  flips %d  resets %d", s.Phase, s.Flips, s.TetherResets), x, y, 11, ColorTextDim)
}

// drawSingleBar draws one horizontal bar.
func (p *CyclePanel) drawSingleBar(x, y, width, height int32, label string, value, total float64, color rl.Color) {
	labelW := int32(35)
	barW := width - labelW - 45

	rl.DrawText(label, x, y, 11, ColorText)

	barX := x + labelW
	rl.DrawRectangle(barX, y, barW, height, ColorBarBg)

	ratio := float32(value / total)
	if ratio > 1 {
		ratio = 1
	}
	if ratio < 0 {
		ratio = 0
	}
	rl.DrawRectangle(barX, y, int32(float32(barW)*ratio), height, color)

	rl.DrawText(formatCount(value), barX+barW+4, y, 10, ColorTextDim)
}

// drawGraph renders the line graph.
func (p *CyclePanel) drawGraph(x, y, w, h int32) {
	rl.DrawRectangle(x, y, w, h, colorGraphBg)
	rl.DrawRectangleLines(x, y, w, h, colorGraphBorder)

	for i := int32(1); i < 4; i++ {
		gridY := y + (h * i / 4)
		rl.DrawLine(x, gridY, x+w, gridY, colorGraphGrid)
	}
	for i := int32(1); i < 6; i++ {
		gridX := x + (w * i / 6)
		rl.DrawLine(gridX, y, gridX, y+h, colorGraphGrid)
	}

	if p.historyCount < 2 {
		return
	}

	leftMin, leftMax := p.getSeriesRange(leftSeries)
	for _, series := range leftSeries {
		if p.seriesVisible[series] {
			p.drawSeriesLine(x, y, w, h, series, leftMin, leftMax)
		}
	}

	for _, series := range fractionSeries {
		if p.seriesVisible[series] {
			p.drawSeriesLine(x, y, w, h, series, 0, 1)
		}
	}

	if p.seriesVisible[seriesResets] {
		lo, hi := p.getSeriesRange([]int{seriesResets})
		p.drawSeriesLine(x, y, w, h, seriesResets, lo, hi)
	}

	p.drawAxisLabels(x, y, w, h, leftMin, leftMax)
}

// getSeriesRange finds min/max across specified visible series.
func (p *CyclePanel) getSeriesRange(seriesIndices []int) (min, max float64) {
	min = math.MaxFloat64
	max = -math.MaxFloat64
	hasVisible := false

	for _, s := range seriesIndices {
		if !p.seriesVisible[s] {
			continue
		}
		hasVisible = true

		for i := 0; i < p.historyCount; i++ {
			idx := (p.historyIndex - p.historyCount + i + cycleHistorySize) % cycleHistorySize
			v := p.history[s][idx]
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}

	if !hasVisible || min >= max {
		return 0, 1
	}

	padding := (max - min) * 0.1
	if padding < 0.001 {
		padding = 0.001
	}
	return min - padding, max + padding
}

// drawSeriesLine draws one data series as a line.
func (p *CyclePanel) drawSeriesLine(x, y, w, h int32, series int, minVal, maxVal float64) {
	color := p.seriesColors[series]
	valueRange := maxVal - minVal
	if valueRange <= 0 {
		valueRange = 1
	}

	var prevX, prevY int32
	for i := 0; i < p.historyCount; i++ {
		idx := (p.historyIndex - p.historyCount + i + cycleHistorySize) % cycleHistorySize
		v := p.history[series][idx]

		px := x + int32(float64(i)*float64(w)/float64(p.historyCount-1))
		py := y + h - int32((v-minVal)/valueRange*float64(h))
		if py < y {
			py = y
		}
		if py > y+h {
			py = y + h
		}

		if i > 0 {
			rl.DrawLine(prevX, prevY, px, py, color)
		}
		prevX, prevY = px, py
	}
}

// drawAxisLabels draws the left scale and the fixed fraction scale on the right.
func (p *CyclePanel) drawAxisLabels(x, y, w, h int32, leftMin, leftMax float64) {
	rl.DrawText(fmt.Sprintf("%.2f", leftMax), x+2, y+2, 9, ColorTextDim)
	rl.DrawText(fmt.Sprintf("%.2f", leftMin), x+2, y+h-10, 9, ColorTextDim)

	textW := rl.MeasureText("100%", 9)
	rl.DrawText("100%", x+w-textW-2, y+2, 9, ColorTextDim)
	textW = rl.MeasureText("0%", 9)
	rl.DrawText("0%", x+w-textW-2, y+h-10, 9, ColorTextDim)
}

// drawLegend draws the interactive legend.
func (p *CyclePanel) drawLegend(x, y int32) {
	itemWidth := int32(90)

	for i := 0; i < numSeries; i++ {
		itemX := x + int32(i)*itemWidth
		color := p.seriesColors[i]
		if !p.seriesVisible[i] {
			color.A = 80
		}

		rl.DrawRectangle(itemX, y+2, 10, 10, color)

		textColor := ColorText
		if !p.seriesVisible[i] {
			textColor = ColorTextDim
		}
		rl.DrawText(p.seriesNames[i], itemX+14, y, 11, textColor)
	}

	hintX := x + int32(numSeries)*itemWidth + 10
	rl.DrawText("(click to toggle)", hintX, y, 10, ColorTextDim)
}

// formatCount formats a count for display.
func formatCount(v float64) string {
	if v >= 10000 {
		return fmt.Sprintf("%.0fk", v/1000)
	}
	if v >= 1000 {
		return fmt.Sprintf("%.1fk", v/1000)
	}
	return fmt.Sprintf("%.0f", v)
}
