package systems

// Phase is the direction the oscillator is moving progress in.
type Phase uint8

const (
	PhaseRising Phase = iota
	PhaseFalling
)

// String returns the phase name.
func (p Phase) String() string {
	if p == PhaseFalling {
		return "falling"
	}
	return "rising"
}

// DisablePolicy decides what turning auto-dissolve off does to the phase.
type DisablePolicy uint8

const (
	// DisableFreeze keeps the phase, so re-enabling continues in the same direction.
	DisableFreeze DisablePolicy = iota
	// DisableReset returns the phase to rising.
	DisableReset
)

// ParseDisablePolicy maps a config string to a policy. Unknown values freeze.
func ParseDisablePolicy(s string) DisablePolicy {
	if s == "reset" {
		return DisableReset
	}
	return DisableFreeze
}

// DissolveOscillator ramps progress between two bounds and flips direction once
// progress crosses a bound.
type DissolveOscillator struct {
	Low, High float32
	Step      float32
	Policy    DisablePolicy

	phase   Phase
	enabled bool
	flips   int
}

// NewDissolveOscillator creates an oscillator in the rising phase.
func NewDissolveOscillator(low, high, step float32, policy DisablePolicy, enabled bool) *DissolveOscillator {
	if step < 0 {
		step = -step
	}
	return &DissolveOscillator{
		Low:     low,
		High:    high,
		Step:    step,
		Policy:  policy,
		phase:   PhaseRising,
		enabled: enabled,
	}
}

// Tick advances progress by one step. It does nothing while disabled.
// Returns true when the phase flipped on this tick.
func (o *DissolveOscillator) Tick(state *DissolveState) bool {
	if o == nil || !o.enabled || state == nil {
		return false
	}

	if o.phase == PhaseRising {
		state.Progress += o.Step
		if state.Progress > o.High {
			o.phase = PhaseFalling
			o.flips++
			return true
		}
		return false
	}

	state.Progress -= o.Step
	if state.Progress < o.Low {
		o.phase = PhaseRising
		o.flips++
		return true
	}
	return false
}

// SetEnabled turns auto mode on or off. Progress is never touched here; with
// DisableReset the phase goes back to rising on disable.
func (o *DissolveOscillator) SetEnabled(enabled bool) {
	if o.enabled && !enabled && o.Policy == DisableReset {
		o.phase = PhaseRising
	}
	o.enabled = enabled
}

// Enabled reports whether auto mode is on.
func (o *DissolveOscillator) Enabled() bool {
	return o.enabled
}

// Phase returns the current direction.
func (o *DissolveOscillator) Phase() Phase {
	return o.phase
}

// SetPhase forces the direction, used when restoring a snapshot.
func (o *DissolveOscillator) SetPhase(p Phase) {
	o.phase = p
}

// Flips returns the number of direction changes so far.
func (o *DissolveOscillator) Flips() int {
	return o.flips
}
