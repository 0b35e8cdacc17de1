package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_TickPhases(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseParticles)
		time.Sleep(200 * time.Microsecond)
		pc.StartPhase(PhaseOscillator)
		pc.StartPhase(PhaseMask)
		time.Sleep(50 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}
	for _, phase := range []string{PhaseParticles, PhaseOscillator, PhaseMask} {
		if _, ok := stats.PhaseAvg[phase]; !ok {
			t.Errorf("expected %s phase to be tracked", phase)
		}
	}
	if _, ok := stats.PhaseAvg[PhaseMotion]; ok {
		t.Error("motion phase never ran and should not be tracked")
	}
	if stats.PhasePct[PhaseParticles] <= stats.PhasePct[PhaseMask] {
		t.Errorf("expected particles (%v%%) > mask (%v%%)",
			stats.PhasePct[PhaseParticles], stats.PhasePct[PhaseMask])
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 12; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseParticles)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
	if stats.MinTickDuration > stats.MaxTickDuration {
		t.Errorf("min %v > max %v", stats.MinTickDuration, stats.MaxTickDuration)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(0).Stats()

	if stats.AvgTickDuration != 0 {
		t.Error("expected zero avg tick duration for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	stats := PerfStats{
		AvgTickDuration: 1500 * time.Microsecond,
		PhasePct: map[string]float64{
			PhaseParticles:  70,
			PhaseOscillator: 1,
			PhaseMotion:     4,
			PhaseMask:       20,
			PhaseTelemetry:  5,
		},
	}

	row := stats.ToCSV(600)

	if row.WindowEnd != 600 || row.AvgTickUS != 1500 {
		t.Errorf("unexpected header fields: %+v", row)
	}
	if row.ParticlesPct != 70 || row.MaskPct != 20 || row.TelemetryPct != 5 {
		t.Errorf("phase percentages not mapped: %+v", row)
	}
}

func TestPerfCollector_UnknownPhaseCountsTowardStepOnly(t *testing.T) {
	pc := NewPerfCollector(3)

	pc.StartTick()
	pc.StartPhase("warmup")
	time.Sleep(100 * time.Microsecond)
	pc.StartPhase(PhaseMotion)
	pc.EndTick()

	stats := pc.Stats()
	if len(stats.PhaseAvg) != 1 {
		t.Errorf("expected only the motion phase, got %v", stats.PhaseAvg)
	}
	if stats.AvgTickDuration < 100*time.Microsecond {
		t.Errorf("step time %v should include the unnamed phase", stats.AvgTickDuration)
	}
	if stats.PhaseAvg[PhaseMotion] >= stats.AvgTickDuration {
		t.Errorf("motion %v should be a fraction of the step %v", stats.PhaseAvg[PhaseMotion], stats.AvgTickDuration)
	}
}
