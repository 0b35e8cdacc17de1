package systems

import "github.com/chewxy/math32"

// harmonic is one sin(pos*Freq)*(Amp+waveAmplitude) term.
type harmonic struct {
	Freq, Amp float32
}

// Wave harmonics. x is driven by the particle's y, y by its x, z by x and z.
var (
	xHarmonics = [4]harmonic{{2, 0.8}, {5, 0.2}, {8, 0.8}, {3, 0.8}}
	yHarmonics = [4]harmonic{{2, 0.6}, {1, 0.9}, {5, 0.6}, {7, 0.6}}
	zHarmonics = [3]harmonic{{3, 0.5}, {2, 0.4}, {4, 0.3}}
)

// WaveOffset returns the additive ripple at a position. Nearby particles get nearly
// the same offset, so the swarm moves like fabric rather than jitter.
// zWave enables the third axis.
func WaveOffset(x, y, z, waveAmplitude float32, zWave bool) (xw, yw, zw float32) {
	for _, h := range xHarmonics {
		xw += math32.Sin(y*h.Freq) * (h.Amp + waveAmplitude)
	}
	for _, h := range yHarmonics {
		yw += math32.Sin(x*h.Freq) * (h.Amp + waveAmplitude)
	}
	if !zWave {
		return xw, yw, 0
	}
	zw = math32.Sin(x*zHarmonics[0].Freq)*(zHarmonics[0].Amp+waveAmplitude) +
		math32.Sin(x*zHarmonics[1].Freq)*(zHarmonics[1].Amp+waveAmplitude) +
		math32.Sin(z*zHarmonics[2].Freq)*(zHarmonics[2].Amp+waveAmplitude)
	return xw, yw, zw
}
