package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState(progress float32) *DissolveState {
	return NewDissolveState(progress, 0.8, 0.25, 16, RGB{R: 0.3, G: 0.6, B: 1})
}

func TestOscillatorRoundTripFlipTick(t *testing.T) {
	state := newTestState(-7)
	osc := NewDissolveOscillator(-17, 14, 0.08, DisableFreeze, true)

	flipAt := 0
	for tick := 1; tick <= 300; tick++ {
		if osc.Tick(state) {
			flipAt = tick
			break
		}
	}

	// (14 - (-7)) / 0.08 = 262.5, so the first tick past the bound is 263
	assert.Equal(t, 263, flipAt)
	assert.Equal(t, PhaseFalling, osc.Phase())
	assert.Equal(t, 1, osc.Flips())
	assert.Greater(t, state.Progress, float32(14))
}

func TestOscillatorStaysBounded(t *testing.T) {
	tests := []struct {
		name      string
		low, high float32
		step      float32
		start     float32
	}{
		{"desktop", -17, 14, 0.08, -7},
		{"mobile", -17, 14, 0.12, -7},
		{"coarse step", -1, 1, 0.7, 0},
		{"start outside", 0, 5, 0.5, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := newTestState(tt.start)
			osc := NewDissolveOscillator(tt.low, tt.high, tt.step, DisableFreeze, true)

			// Burn in until progress has entered the oscillation range
			for i := 0; i < 1000; i++ {
				osc.Tick(state)
			}
			for i := 0; i < 5000; i++ {
				osc.Tick(state)
				require.GreaterOrEqual(t, state.Progress, tt.low-tt.step-1e-3)
				require.LessOrEqual(t, state.Progress, tt.high+tt.step+1e-3)
			}
			assert.Greater(t, osc.Flips(), 2)
		})
	}
}

func TestOscillatorDisabledIsNoOp(t *testing.T) {
	state := newTestState(3)
	osc := NewDissolveOscillator(-17, 14, 0.08, DisableFreeze, false)

	for i := 0; i < 10; i++ {
		assert.False(t, osc.Tick(state))
	}
	assert.Equal(t, float32(3), state.Progress)

	var nilOsc *DissolveOscillator
	assert.False(t, nilOsc.Tick(state))
	assert.False(t, osc.Tick(nil))
}

func TestOscillatorDisablePolicy(t *testing.T) {
	tests := []struct {
		name   string
		policy DisablePolicy
		want   Phase
	}{
		{"freeze keeps phase", DisableFreeze, PhaseFalling},
		{"reset returns to rising", DisableReset, PhaseRising},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := newTestState(13.95)
			osc := NewDissolveOscillator(-17, 14, 0.08, tt.policy, true)
			require.True(t, osc.Tick(state))
			require.Equal(t, PhaseFalling, osc.Phase())

			frozen := state.Progress
			osc.SetEnabled(false)
			osc.Tick(state)

			assert.Equal(t, tt.want, osc.Phase())
			assert.Equal(t, frozen, state.Progress, "disabling never moves progress")
			assert.False(t, osc.Enabled())
		})
	}
}

func TestParseDisablePolicy(t *testing.T) {
	assert.Equal(t, DisableReset, ParseDisablePolicy("reset"))
	assert.Equal(t, DisableFreeze, ParseDisablePolicy("freeze"))
	assert.Equal(t, DisableFreeze, ParseDisablePolicy(""))
}

func TestOscillatorNegativeStepUsesMagnitude(t *testing.T) {
	osc := NewDissolveOscillator(-1, 1, -0.5, DisableFreeze, true)
	assert.Equal(t, float32(0.5), osc.Step)
}
