package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsPanel renders the left-side panel: parameter sliders above the overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
	sliders  []SliderDescriptor

	// Set while the mouse is over the panel, so the viewer can skip camera drags
	hovered bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32, sliders []SliderDescriptor) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
		sliders:  sliders,
	}
}

// SetVisible shows or hides the panel.
func (c *ControlsPanel) SetVisible(visible bool) {
	c.visible = visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Hovered reports whether the mouse was over the panel on the last draw.
func (c *ControlsPanel) Hovered() bool {
	return c.visible && c.hovered
}

// height returns the panel height for the current content.
func (c *ControlsPanel) height(overlays *OverlayRegistry) int32 {
	r := c.renderer
	lineHeight := r.Theme.LineHeight
	h := r.Theme.Padding*3 + (lineHeight+4)*2
	h += int32(len(c.sliders)) * (lineHeight + 20)
	for _, cat := range overlays.Categories() {
		h += int32(len(overlays.ByCategory(cat))+1)*lineHeight + 4
	}
	return h
}

// Draw renders the controls panel and applies slider changes through their setters.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) int32 {
	if !c.visible {
		c.hovered = false
		return c.y
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	panelHeight := c.height(overlays)

	mouse := rl.GetMousePosition()
	c.hovered = rl.CheckCollisionPointRec(mouse, rl.Rectangle{
		X: float32(c.x), Y: float32(c.y), Width: float32(c.width), Height: float32(panelHeight),
	})

	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	y := c.y + padding
	inner := c.width - padding*2

	rl.DrawText("Parameters", c.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	for _, sd := range c.sliders {
		var v float32
		v, y = r.DrawSlider(c.x+padding, y, sd, inner)
		if v != sd.Get() {
			sd.Set(v)
		}
	}
	y += padding

	rl.DrawText("Overlays", c.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	for _, category := range overlays.Categories() {
		rl.DrawText(categoryLabel(category), c.x+padding, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += lineHeight

		for _, desc := range overlays.ByCategory(category) {
			enabled := overlays.IsEnabled(desc.ID)
			c.drawToggle(c.x+padding, y, desc, enabled, inner)
			y += lineHeight
		}

		y += 4 // Gap between categories
	}

	return y
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	// Status indicator
	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)

	// Name
	nameColor := r.Theme.LabelColor
	if enabled {
		nameColor = rl.White
	}
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	// Key binding (right aligned)
	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "surface":
		return "Surface"
	case "swarm":
		return "Swarm"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}
