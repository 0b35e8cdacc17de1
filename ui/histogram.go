package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HistogramMarker is a labeled vertical line drawn over a histogram.
type HistogramMarker struct {
	Label string
	Value float64
	Color rl.Color
}

// HistogramPanel draws bucket counts with markers at given values.
type HistogramPanel struct {
	renderer      *Renderer
	x, y          int32
	width, height int32
}

// NewHistogramPanel creates a histogram panel.
func NewHistogramPanel(x, y, width, height int32) *HistogramPanel {
	return &HistogramPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		height:   height,
	}
}

// SetPosition updates the panel position.
func (h *HistogramPanel) SetPosition(x, y int32) {
	h.x = x
	h.y = y
}

// Draw renders counts over edges (len(edges) == len(counts)+1).
func (h *HistogramPanel) Draw(title string, counts, edges []float64, markers []HistogramMarker) {
	r := h.renderer
	r.DrawPanel(h.x, h.y, h.width, h.height)

	pad := r.Theme.Padding
	rl.DrawText(title, h.x+pad, h.y+pad, 14, rl.White)

	if len(counts) == 0 || len(edges) != len(counts)+1 {
		return
	}

	plotX := h.x + pad
	plotY := h.y + pad + 20
	plotW := h.width - pad*2
	plotH := h.height - pad*2 - 36

	var peak float64
	for _, c := range counts {
		if c > peak {
			peak = c
		}
	}
	if peak == 0 {
		peak = 1
	}

	barW := float32(plotW) / float32(len(counts))
	for i, c := range counts {
		bh := int32(float64(plotH) * c / peak)
		bx := plotX + int32(float32(i)*barW)
		rl.DrawRectangle(bx, plotY+plotH-bh, int32(barW)-1, bh, r.Theme.BarFill)
	}

	lo, hi := edges[0], edges[len(edges)-1]
	for _, m := range markers {
		if m.Value < lo || m.Value > hi {
			continue
		}
		mx := plotX + int32(float64(plotW)*(m.Value-lo)/(hi-lo))
		rl.DrawLine(mx, plotY, mx, plotY+plotH, m.Color)
		rl.DrawText(m.Label, mx+2, plotY, 10, m.Color)
	}

	rl.DrawText(fmt.Sprintf("%.1f", lo), plotX, plotY+plotH+4, 10, r.Theme.LabelColor)
	hiText := fmt.Sprintf("%.1f", hi)
	rl.DrawText(hiText, plotX+plotW-rl.MeasureText(hiText, 10), plotY+plotH+4, 10, r.Theme.LabelColor)
}
