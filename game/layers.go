package game

import (
	"github.com/pthm-cable/dissolve/components"
	"github.com/pthm-cable/dissolve/config"
)

// spawnLayers creates the surface and swarm entities. Both get the same motion so
// the particles stay registered to the mesh they came from.
func (g *Game) spawnLayers() {
	mc := config.Cfg().Motion

	for _, kind := range []components.LayerKind{components.LayerSurface, components.LayerSwarm} {
		tr := components.Transform{}
		motion := components.Motion{
			BobAmplitude: float32(mc.BobAmplitude),
			BobFrequency: float32(mc.BobFrequency),
			SpinRate:     float32(mc.SpinRate),
		}
		layer := components.Layer{Kind: kind, Visible: true}
		g.layerMapper.NewEntity(&tr, &motion, &layer)
	}
	g.applyMotion()
}

// applyMotion moves every layer to its bob and spin at the current sim time.
func (g *Game) applyMotion() {
	query := g.layerFilter.Query()
	for query.Next() {
		tr, motion, _ := query.Get()
		y, rot := motion.At(g.simTime)
		tr.Y = y
		tr.RotY = g.controls.RotationY + rot
	}
}

// LayerTransform returns the placement of a layer.
func (g *Game) LayerTransform(kind components.LayerKind) (components.Transform, bool) {
	query := g.layerFilter.Query()
	for query.Next() {
		tr, _, layer := query.Get()
		if layer.Kind == kind {
			t := *tr
			query.Close()
			return t, true
		}
	}
	return components.Transform{}, false
}

// LayerVisible reports whether a layer is drawn.
func (g *Game) LayerVisible(kind components.LayerKind) bool {
	query := g.layerFilter.Query()
	for query.Next() {
		_, _, layer := query.Get()
		if layer.Kind == kind {
			v := layer.Visible
			query.Close()
			return v
		}
	}
	return false
}

// SetLayerVisible shows or hides a layer. Hidden layers keep simulating.
func (g *Game) SetLayerVisible(kind components.LayerKind, visible bool) {
	query := g.layerFilter.Query()
	for query.Next() {
		_, _, layer := query.Get()
		if layer.Kind == kind {
			layer.Visible = visible
		}
	}
}

// ToggleLayer flips a layer's visibility and returns the new state.
func (g *Game) ToggleLayer(kind components.LayerKind) bool {
	v := !g.LayerVisible(kind)
	g.SetLayerVisible(kind, v)
	return v
}

// LayerComponents returns copies of a layer's components for inspection.
func (g *Game) LayerComponents(kind components.LayerKind) (components.Transform, components.Motion, components.Layer, bool) {
	query := g.layerFilter.Query()
	for query.Next() {
		tr, motion, layer := query.Get()
		if layer.Kind == kind {
			t, m, l := *tr, *motion, *layer
			query.Close()
			return t, m, l, true
		}
	}
	return components.Transform{}, components.Motion{}, components.Layer{}, false
}
