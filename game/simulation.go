package game

import (
	"github.com/pthm-cable/dissolve/config"
	"github.com/pthm-cable/dissolve/telemetry"
)

// UpdateHeadless runs StepsPerUpdate ticks without any window.
func (g *Game) UpdateHeadless() {
	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

// Step advances the scene by exactly one tick, ignoring pause.
func (g *Game) Step() {
	g.step()
}

// step runs one tick: the swarm moves, the oscillator moves the boundary, both
// layers bob, and the mask and swarm frame are rebuilt from the shared state.
func (g *Game) step() {
	dt := config.Cfg().Derived.DT32
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseParticles)
	if resets := g.field.Step(g.controls.StepConfig()); resets > 0 {
		g.collector.Record(telemetry.NewTetherResetEvent(g.tick, resets))
	}

	g.perfCollector.StartPhase(telemetry.PhaseOscillator)
	if g.osc.Tick(g.state) {
		g.collector.Record(telemetry.NewPhaseFlipEvent(g.tick, g.osc.Phase().String()))
	}

	g.perfCollector.StartPhase(telemetry.PhaseMotion)
	g.simTime += dt
	g.applyMotion()

	g.perfCollector.StartPhase(telemetry.PhaseMask)
	g.refreshFrame(nil)

	g.tick++

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndTick()
}
