package telemetry

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/dissolve/systems"
)

func testScene(seed int64) (*systems.DissolveState, *systems.DissolveOscillator, *systems.ParticleField) {
	pos := systems.NewTorusKnot(2.5, 0.8, 24, 8, 2, 3).Positions
	field := systems.NewParticleField(pos, rand.New(rand.NewSource(seed)), systems.DefaultSeedRanges())
	state := systems.NewDissolveState(-7, 0.8, 0.25, 16, systems.RGB{R: 0.3, G: 0.6, B: 1})
	osc := systems.NewDissolveOscillator(-17, 14, 0.08, systems.DisableFreeze, true)
	return state, osc, field
}

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	state, osc, field := testScene(42)

	cfg := systems.StepConfig{SpeedFactor: 0.02, VelocityFactor: [3]float32{2.5, 2, 1.5}, SpinIncrement: 0.01}
	for i := 0; i < 30; i++ {
		field.Step(cfg)
		osc.Tick(state)
	}

	snapshot := &Snapshot{
		Version:    SnapshotVersion,
		RNGSeed:    42,
		NoiseKind:  "simplex",
		Tick:       30,
		Dissolve:   CaptureDissolve(state),
		Oscillator: OscillatorSnapshot{Enabled: true, Phase: osc.Phase().String(), Flips: osc.Flips()},
		Particles:  CaptureParticles(field),
		Bookmark: &Bookmark{
			Type: BookmarkPhaseFlip,
			Tick: 30,
		},
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Snapshot file not created at %s", path)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if loaded.RNGSeed != 42 || loaded.Tick != 30 {
		t.Errorf("header mismatch: seed %d tick %d", loaded.RNGSeed, loaded.Tick)
	}
	if loaded.Dissolve.Progress != state.Progress {
		t.Errorf("progress mismatch: got %v, want %v", loaded.Dissolve.Progress, state.Progress)
	}
	if loaded.Particles.Count != field.Count() {
		t.Errorf("particle count mismatch: got %d, want %d", loaded.Particles.Count, field.Count())
	}
	if loaded.Bookmark == nil || loaded.Bookmark.Type != BookmarkPhaseFlip {
		t.Errorf("bookmark not restored: %+v", loaded.Bookmark)
	}
}

func TestSnapshotApplyToReplays(t *testing.T) {
	state, osc, field := testScene(7)
	cfg := systems.StepConfig{SpeedFactor: 0.05, VelocityFactor: [3]float32{2.5, 2, 1.5}, WaveAmplitude: 1, SpinIncrement: 0.01}

	for i := 0; i < 50; i++ {
		field.Step(cfg)
		osc.Tick(state)
	}
	snap := &Snapshot{
		Version:    SnapshotVersion,
		Dissolve:   CaptureDissolve(state),
		Oscillator: OscillatorSnapshot{Enabled: osc.Enabled(), Phase: osc.Phase().String()},
		Particles:  CaptureParticles(field),
	}

	// Continue the original run
	for i := 0; i < 50; i++ {
		field.Step(cfg)
		osc.Tick(state)
	}

	// Rebuild from the same seed, restore, and replay the same steps
	state2, osc2, field2 := testScene(7)
	if err := snap.ApplyTo(state2, osc2, field2); err != nil {
		t.Fatalf("ApplyTo failed: %v", err)
	}
	for i := 0; i < 50; i++ {
		field2.Step(cfg)
		osc2.Tick(state2)
	}

	if state2.Progress != state.Progress {
		t.Errorf("progress diverged: %v vs %v", state2.Progress, state.Progress)
	}
	a, b := field.CurrentPositions(), field2.CurrentPositions()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("position %d diverged: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestSnapshotApplyToRejectsMismatch(t *testing.T) {
	state, osc, field := testScene(1)
	snap := &Snapshot{Particles: ParticleSnapshot{Count: field.Count() + 1}}

	if err := snap.ApplyTo(state, osc, field); err == nil {
		t.Error("expected error for particle count mismatch")
	}
}

func TestSnapshotFilename(t *testing.T) {
	tmpDir := t.TempDir()

	snapshot := &Snapshot{
		Version: SnapshotVersion,
		Tick:    5000,
		Bookmark: &Bookmark{
			Type: BookmarkFullyDissolved,
			Tick: 5000,
		},
	}

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	expected := filepath.Join(tmpDir, "snapshot_5000_fully_dissolved.json")
	if path != expected {
		t.Errorf("Path mismatch: got %s, want %s", path, expected)
	}

	path, err = SaveSnapshot(&Snapshot{Version: SnapshotVersion, Tick: 3000}, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	expected = filepath.Join(tmpDir, "snapshot_3000.json")
	if path != expected {
		t.Errorf("Path mismatch: got %s, want %s", path, expected)
	}
}

func TestLoadSnapshotRejectsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	if err := os.WriteFile(path, []byte(`{"version": 99}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSnapshot(path); err == nil {
		t.Error("expected version error")
	}
}
