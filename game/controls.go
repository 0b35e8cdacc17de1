package game

import (
	"fmt"

	"github.com/pthm-cable/dissolve/systems"
)

// Controls holds the per-frame swarm parameters a user can change live.
// Dissolve parameters live on the shared DissolveState instead.
type Controls struct {
	SpeedFactor    float32    `inspect:"bar,max:0.1"`
	VelocityFactor [3]float32 `inspect:"bar,max:10"`
	WaveAmplitude  float32    `inspect:"bar,max:5"`
	ZWave          bool       `inspect:"bool"`
	SpinIncrement  float32    `inspect:"label,fmt:%.3f"`
	BaseSize       float32    `inspect:"bar,max:100"` // Point size before drift and depth falloff
	RotationY      float32    `inspect:"angle"`       // Fixed rotation of both layers, radians
}

// StepConfig converts the controls into a particle step configuration.
func (c Controls) StepConfig() systems.StepConfig {
	return systems.StepConfig{
		SpeedFactor:    c.SpeedFactor,
		VelocityFactor: c.VelocityFactor,
		WaveAmplitude:  c.WaveAmplitude,
		ZWave:          c.ZWave,
		SpinIncrement:  c.SpinIncrement,
	}
}

// Option names one adjustable scene parameter.
type Option uint8

const (
	OptionSpeedFactor Option = iota
	OptionVelocityX
	OptionVelocityY
	OptionVelocityZ
	OptionWaveAmplitude
	OptionBaseSize
	OptionRotationY
	OptionProgress
	OptionEdgeWidth
	OptionFrequency
	OptionAmplitude
	optionCount
)

// OptionRange is the accepted value range of an option.
type OptionRange struct {
	Min, Max float32
}

// Clamp restricts v to the range.
func (r OptionRange) Clamp(v float32) float32 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

const twoPi = 6.283185307179586

var optionInfo = [optionCount]struct {
	name string
	rng  OptionRange
}{
	OptionSpeedFactor:   {"speed_factor", OptionRange{0.001, 0.1}},
	OptionVelocityX:     {"velocity_x", OptionRange{0, 10}},
	OptionVelocityY:     {"velocity_y", OptionRange{0, 10}},
	OptionVelocityZ:     {"velocity_z", OptionRange{0, 10}},
	OptionWaveAmplitude: {"wave_amplitude", OptionRange{0, 5}},
	OptionBaseSize:      {"base_size", OptionRange{10, 100}},
	OptionRotationY:     {"rotation_y", OptionRange{-twoPi, twoPi}},
	OptionProgress:      {"progress", OptionRange{-20, 20}},
	OptionEdgeWidth:     {"edge_width", OptionRange{0.1, 8}},
	OptionFrequency:     {"frequency", OptionRange{0.001, 2}},
	OptionAmplitude:     {"amplitude", OptionRange{0.1, 20}},
}

// String returns the option name.
func (o Option) String() string {
	if o >= optionCount {
		return fmt.Sprintf("option(%d)", uint8(o))
	}
	return optionInfo[o].name
}

// Range returns the accepted range of the option.
func (o Option) Range() OptionRange {
	if o >= optionCount {
		return OptionRange{}
	}
	return optionInfo[o].rng
}

// AllOptions returns every adjustable option in display order.
func AllOptions() []Option {
	opts := make([]Option, 0, optionCount)
	for o := Option(0); o < optionCount; o++ {
		opts = append(opts, o)
	}
	return opts
}

// ParseOption looks an option up by name.
func ParseOption(name string) (Option, error) {
	for o := Option(0); o < optionCount; o++ {
		if optionInfo[o].name == name {
			return o, nil
		}
	}
	return 0, fmt.Errorf("unknown option %q", name)
}

// Set clamps value to the option's range and applies it.
// Returns the value actually stored.
func (g *Game) Set(opt Option, value float32) (float32, error) {
	if opt >= optionCount {
		return 0, fmt.Errorf("unknown option %d", uint8(opt))
	}
	v := opt.Range().Clamp(value)

	switch opt {
	case OptionSpeedFactor:
		g.controls.SpeedFactor = v
	case OptionVelocityX:
		g.controls.VelocityFactor[0] = v
	case OptionVelocityY:
		g.controls.VelocityFactor[1] = v
	case OptionVelocityZ:
		g.controls.VelocityFactor[2] = v
	case OptionWaveAmplitude:
		g.controls.WaveAmplitude = v
	case OptionBaseSize:
		g.controls.BaseSize = v
	case OptionRotationY:
		g.controls.RotationY = v
		g.applyMotion()
	case OptionProgress:
		g.state.Progress = v
	case OptionEdgeWidth:
		g.state.SetEdgeWidth(v)
	case OptionFrequency:
		g.state.SetFrequency(v)
	case OptionAmplitude:
		g.state.Amplitude = v
	}
	return v, nil
}

// Get returns the current value of an option.
func (g *Game) Get(opt Option) float32 {
	switch opt {
	case OptionSpeedFactor:
		return g.controls.SpeedFactor
	case OptionVelocityX:
		return g.controls.VelocityFactor[0]
	case OptionVelocityY:
		return g.controls.VelocityFactor[1]
	case OptionVelocityZ:
		return g.controls.VelocityFactor[2]
	case OptionWaveAmplitude:
		return g.controls.WaveAmplitude
	case OptionBaseSize:
		return g.controls.BaseSize
	case OptionRotationY:
		return g.controls.RotationY
	case OptionProgress:
		return g.state.Progress
	case OptionEdgeWidth:
		return g.state.EdgeWidth
	case OptionFrequency:
		return g.state.Frequency
	case OptionAmplitude:
		return g.state.Amplitude
	}
	return 0
}

// SetEdgeColor changes the color of the edge band and the visible particles.
func (g *Game) SetEdgeColor(c systems.RGB) {
	g.state.EdgeColor = c
}

// SetZWave toggles the three-harmonic z wave.
func (g *Game) SetZWave(on bool) {
	g.controls.ZWave = on
}

// RestartCycle moves progress back to the oscillator's lower bound, rising.
func (g *Game) RestartCycle() {
	g.state.Progress = g.osc.Low
	g.osc.SetPhase(systems.PhaseRising)
	g.refreshFrame(nil)
}
