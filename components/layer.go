package components

// LayerKind identifies which half of the scene an entity draws.
type LayerKind uint8

const (
	LayerSurface LayerKind = iota // Dissolving mesh
	LayerSwarm                    // Point-sprite particles
)

func (k LayerKind) String() string {
	switch k {
	case LayerSurface:
		return "surface"
	case LayerSwarm:
		return "swarm"
	default:
		return "unknown"
	}
}

// Layer holds per-layer draw state.
type Layer struct {
	Kind    LayerKind `inspect:"skip"`
	Visible bool      `inspect:"bool"`
}
