package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/dissolve/systems"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the mutable scene state for replay. The immutable particle seeds
// are regenerated from RNGSeed, so only the evolving buffers are stored.
type Snapshot struct {
	Version   int    `json:"version"`
	RNGSeed   int64  `json:"rng_seed"`
	NoiseKind string `json:"noise_kind"`
	Device    string `json:"device"`

	Tick    int32   `json:"tick"`
	SimTime float32 `json:"sim_time"`

	Dissolve   DissolveSnapshot   `json:"dissolve"`
	Oscillator OscillatorSnapshot `json:"oscillator"`
	Particles  ParticleSnapshot   `json:"particles"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// DissolveSnapshot is the serialized shared dissolve state.
type DissolveSnapshot struct {
	Progress  float32    `json:"progress"`
	EdgeWidth float32    `json:"edge_width"`
	Frequency float32    `json:"frequency"`
	Amplitude float32    `json:"amplitude"`
	EdgeColor [3]float32 `json:"edge_color"`
}

// OscillatorSnapshot is the serialized auto-dissolve state.
type OscillatorSnapshot struct {
	Enabled bool   `json:"enabled"`
	Phase   string `json:"phase"`
	Flips   int    `json:"flips"`
}

// ParticleSnapshot holds the evolving particle buffers.
type ParticleSnapshot struct {
	Count     int       `json:"count"`
	Positions []float32 `json:"positions"`
	Distances []float32 `json:"distances"`
	Angles    []float32 `json:"angles"`
}

// CaptureDissolve copies a dissolve state into its snapshot form.
func CaptureDissolve(s *systems.DissolveState) DissolveSnapshot {
	return DissolveSnapshot{
		Progress:  s.Progress,
		EdgeWidth: s.EdgeWidth,
		Frequency: s.Frequency,
		Amplitude: s.Amplitude,
		EdgeColor: [3]float32{s.EdgeColor.R, s.EdgeColor.G, s.EdgeColor.B},
	}
}

// CaptureParticles copies the evolving buffers of a field.
func CaptureParticles(f *systems.ParticleField) ParticleSnapshot {
	if f == nil {
		return ParticleSnapshot{}
	}
	return ParticleSnapshot{
		Count:     f.Count(),
		Positions: append([]float32(nil), f.CurrentPositions()...),
		Distances: append([]float32(nil), f.Distances()...),
		Angles:    append([]float32(nil), f.Angles()...),
	}
}

// ApplyTo restores the snapshot into a scene built from the same seed and shape.
func (s *Snapshot) ApplyTo(state *systems.DissolveState, osc *systems.DissolveOscillator, field *systems.ParticleField) error {
	if field.Count() != s.Particles.Count {
		return fmt.Errorf("snapshot has %d particles, field has %d", s.Particles.Count, field.Count())
	}

	if state != nil {
		state.Progress = s.Dissolve.Progress
		state.SetEdgeWidth(s.Dissolve.EdgeWidth)
		state.SetFrequency(s.Dissolve.Frequency)
		state.Amplitude = s.Dissolve.Amplitude
		state.EdgeColor = systems.RGB{R: s.Dissolve.EdgeColor[0], G: s.Dissolve.EdgeColor[1], B: s.Dissolve.EdgeColor[2]}
	}

	if osc != nil {
		osc.SetEnabled(s.Oscillator.Enabled)
		if s.Oscillator.Phase == systems.PhaseFalling.String() {
			osc.SetPhase(systems.PhaseFalling)
		} else {
			osc.SetPhase(systems.PhaseRising)
		}
	}

	field.Restore(s.Particles.Positions, s.Particles.Distances, s.Particles.Angles)
	return nil
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	}
	name += ".json"

	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}

	return &snapshot, nil
}
