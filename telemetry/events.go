// Package telemetry provides dissolve cycle tracking, bookmarking, and snapshots.
package telemetry

// EventType identifies telemetry events.
type EventType uint8

const (
	EventTetherReset EventType = iota
	EventPhaseFlip
)

// Event represents a single telemetry event.
type Event struct {
	Type  EventType
	Tick  int32
	Count int    // particles reset (tether events)
	Phase string // phase entered (flip events)
}

// NewTetherResetEvent creates an event for count particles snapping back in one tick.
func NewTetherResetEvent(tick int32, count int) Event {
	return Event{
		Type:  EventTetherReset,
		Tick:  tick,
		Count: count,
	}
}

// NewPhaseFlipEvent creates an oscillator phase change event.
func NewPhaseFlipEvent(tick int32, phase string) Event {
	return Event{
		Type:  EventPhaseFlip,
		Tick:  tick,
		Count: 1,
		Phase: phase,
	}
}
