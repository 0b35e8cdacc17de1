package camera

import (
	"math"
	"testing"
)

func near(a, b, eps float32) bool {
	return math.Abs(float64(a-b)) <= float64(eps)
}

func TestNewRecoversPosition(t *testing.T) {
	testCases := []struct{ x, y, z float32 }{
		{0, 1, 14}, // desktop
		{0, 8, 18}, // mobile
		{5, -2, 3},
	}

	for _, tc := range testCases {
		cam := New(1280, 720, tc.x, tc.y, tc.z)
		x, y, z := cam.Position()
		if !near(x, tc.x, 1e-3) || !near(y, tc.y, 1e-3) || !near(z, tc.z, 1e-3) {
			t.Errorf("New(%v,%v,%v).Position() = (%v,%v,%v)", tc.x, tc.y, tc.z, x, y, z)
		}
	}
}

func TestViewZ(t *testing.T) {
	cam := New(1280, 720, 0, 0, 10)

	// Target is 10 units in front
	if vz := cam.ViewZ(0, 0, 0); !near(vz, -10, 1e-4) {
		t.Errorf("ViewZ(origin) = %v, want -10", vz)
	}
	// Lateral offset does not change depth
	if vz := cam.ViewZ(3, 2, 0); !near(vz, -10, 1e-4) {
		t.Errorf("ViewZ(lateral) = %v, want -10", vz)
	}
	// Behind the camera is positive
	if vz := cam.ViewZ(0, 0, 12); vz <= 0 {
		t.Errorf("ViewZ(behind) = %v, want > 0", vz)
	}
}

func TestOrbitClampsPitch(t *testing.T) {
	cam := New(1280, 720, 0, 1, 14)

	cam.Orbit(0, 10)
	if cam.Pitch != maxPitch {
		t.Errorf("pitch = %v, want %v", cam.Pitch, maxPitch)
	}
	cam.Orbit(0, -20)
	if cam.Pitch != -maxPitch {
		t.Errorf("pitch = %v, want %v", cam.Pitch, -maxPitch)
	}

	// Yaw wraps
	cam.Orbit(7, 0)
	if cam.Yaw > math.Pi || cam.Yaw < -math.Pi {
		t.Errorf("yaw %v not wrapped", cam.Yaw)
	}

	// Distance is preserved by orbiting
	x, y, z := cam.Position()
	d := float32(math.Sqrt(float64(x*x + y*y + z*z)))
	if !near(d, cam.Distance, 1e-3) {
		t.Errorf("orbit distance %v, want %v", d, cam.Distance)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720, 0, 0, 14)

	cam.ZoomBy(100)
	if cam.Distance != cam.MinDistance {
		t.Errorf("expected min distance %v, got %v", cam.MinDistance, cam.Distance)
	}

	cam.ZoomBy(0.001)
	if cam.Distance != cam.MaxDistance {
		t.Errorf("expected max distance %v, got %v", cam.MaxDistance, cam.Distance)
	}

	// Non-positive factors are ignored
	cam.ZoomBy(0)
	if cam.Distance != cam.MaxDistance {
		t.Errorf("zero factor changed distance to %v", cam.Distance)
	}
}

func TestReset(t *testing.T) {
	cam := New(1280, 720, 0, 1, 14)
	cam.Orbit(1, 0.5)
	cam.ZoomBy(2)
	cam.TargetX = 3

	cam.Reset()
	x, y, z := cam.Position()
	if !near(x, 0, 1e-3) || !near(y, 1, 1e-3) || !near(z, 14, 1e-3) {
		t.Errorf("after reset position = (%v,%v,%v), want (0,1,14)", x, y, z)
	}
}

func TestResizeAspect(t *testing.T) {
	cam := New(1280, 720, 0, 0, 10)
	cam.Resize(800, 800)
	if cam.Aspect() != 1 {
		t.Errorf("aspect = %v, want 1", cam.Aspect())
	}
	cam.Resize(800, 0)
	if cam.Aspect() != 1 {
		t.Errorf("zero-height aspect = %v, want 1", cam.Aspect())
	}
}
