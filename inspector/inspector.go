// Package inspector draws reflection-driven panels for scene components.
package inspector

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Panel dimensions
const (
	PanelWidth   = 320
	PanelPadding = 10
	HeaderHeight = 30
	sectionGap   = 12
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorTab         = rl.Color{R: 60, G: 60, B: 75, A: 255}
	ColorTabActive   = rl.Color{R: 90, G: 110, B: 150, A: 255}
	ColorSection     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
)

// Section is a titled group of components rendered field by field.
type Section struct {
	Title      string
	Components []any
}

// Page is one selectable tab of the inspector.
type Page struct {
	Name     string
	Sections []Section
}

// Inspector shows one page at a time, chosen with the header tabs.
type Inspector struct {
	panelX       int32
	panelY       int32
	screenWidth  int32
	screenHeight int32
	selected     int
}

// NewInspector creates a new inspector instance anchored top right.
func NewInspector(screenWidth, screenHeight int32) *Inspector {
	ins := &Inspector{}
	ins.Resize(screenWidth, screenHeight)
	return ins
}

// Resize re-anchors the panel after a window resize.
func (ins *Inspector) Resize(screenWidth, screenHeight int32) {
	ins.screenWidth = screenWidth
	ins.screenHeight = screenHeight
	ins.panelX = screenWidth - PanelWidth - 10
	ins.panelY = 10
}

// Selected returns the index of the shown page.
func (ins *Inspector) Selected() int {
	return ins.selected
}

// Select shows the page at index i.
func (ins *Inspector) Select(i int) {
	if i >= 0 {
		ins.selected = i
	}
}

// Contains reports whether a screen point lies inside the panel header or body.
func (ins *Inspector) Contains(mouseX, mouseY float32, pages []Page) bool {
	h := ins.panelHeight(pages)
	return int32(mouseX) >= ins.panelX && int32(mouseX) <= ins.panelX+PanelWidth &&
		int32(mouseY) >= ins.panelY && int32(mouseY) <= ins.panelY+h
}

// HandleInput switches pages when a header tab is clicked.
func (ins *Inspector) HandleInput(mouseX, mouseY float32, pages []Page) {
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) || len(pages) == 0 {
		return
	}
	if int32(mouseY) < ins.panelY || int32(mouseY) > ins.panelY+HeaderHeight {
		return
	}
	tabW := int32(PanelWidth / len(pages))
	i := int((int32(mouseX) - ins.panelX) / tabW)
	if i >= 0 && i < len(pages) {
		ins.selected = i
	}
}

// Draw renders the selected page.
func (ins *Inspector) Draw(pages []Page) {
	if len(pages) == 0 {
		return
	}
	if ins.selected >= len(pages) {
		ins.selected = 0
	}

	panelHeight := ins.panelHeight(pages)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, panelHeight, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(panelHeight)},
		1,
		ColorPanelBorder,
	)

	// Tabs
	tabW := int32(PanelWidth / len(pages))
	for i, p := range pages {
		color := ColorTab
		if i == ins.selected {
			color = ColorTabActive
		}
		tx := ins.panelX + int32(i)*tabW
		rl.DrawRectangle(tx, ins.panelY, tabW-1, HeaderHeight, color)
		rl.DrawText(p.Name, tx+PanelPadding, ins.panelY+7, 16, ColorHeaderText)
	}

	x := ins.panelX + PanelPadding
	y := ins.panelY + HeaderHeight + PanelPadding

	for _, sec := range pages[ins.selected].Sections {
		ins.drawSectionHeader(x, y, sec.Title)
		y += 20
		for _, c := range sec.Components {
			for _, f := range ExtractFields(c) {
				y += DrawField(x, y, f)
			}
		}
		y += 4
		rl.DrawLine(x, y, ins.panelX+PanelWidth-PanelPadding, y, ColorPanelBorder)
		y += 8
	}
}

// drawSectionHeader renders a section title.
func (ins *Inspector) drawSectionHeader(x, y int32, title string) {
	rl.DrawRectangle(x-2, y-2, PanelWidth-2*PanelPadding+4, 18, ColorSection)
	rl.DrawText(title, x+2, y, 14, ColorSectionText)
}

// panelHeight computes the height of the selected page.
func (ins *Inspector) panelHeight(pages []Page) int32 {
	height := int32(HeaderHeight + PanelPadding)
	if ins.selected < len(pages) {
		for _, sec := range pages[ins.selected].Sections {
			height += 20
			for _, c := range sec.Components {
				for _, f := range ExtractFields(c) {
					height += FieldHeight(f)
				}
			}
			height += sectionGap
		}
	}
	return height + PanelPadding
}
