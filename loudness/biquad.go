// SPDX-License-Identifier: EPL-2.0

package loudness

import "math"

// K-weighting pre-filter parameters. The shelf and high-pass center
// frequencies and Q values reproduce the ITU-R BS.1770 48 kHz reference
// coefficients when designed at that rate, and stay valid at any other
// sample rate the engine runs at.
const (
	shelfFreq   = 1681.974450955533
	shelfGainDB = 3.999843853973347
	shelfQ      = 0.7071752369554196

	highPassFreq = 38.13547087602444
	highPassQ    = 0.5003270373238773
)

// biquad is a second-order IIR section in transposed direct form II,
// holding independent state per channel.
type biquad struct {
	b0, b1, b2 float64
	a1, a2     float64

	z1, z2 []float64
}

func newBiquad(channels int, b0, b1, b2, a0, a1, a2 float64) *biquad {
	return &biquad{
		b0: b0 / a0,
		b1: b1 / a0,
		b2: b2 / a0,
		a1: a1 / a0,
		a2: a2 / a0,
		z1: make([]float64, channels),
		z2: make([]float64, channels),
	}
}

// newHighShelf builds the first K-weighting stage, modeling the
// acoustic effect of the head.
func newHighShelf(sampleRate, channels int) *biquad {
	a := math.Pow(10, shelfGainDB/40)
	w0 := 2 * math.Pi * shelfFreq / float64(sampleRate)
	alpha := math.Sin(w0) / (2 * shelfQ)
	cos := math.Cos(w0)
	sqrtA := math.Sqrt(a)

	b0 := a * ((a + 1) + (a-1)*cos + 2*sqrtA*alpha)
	b1 := -2 * a * ((a - 1) + (a+1)*cos)
	b2 := a * ((a + 1) + (a-1)*cos - 2*sqrtA*alpha)
	a0 := (a + 1) - (a-1)*cos + 2*sqrtA*alpha
	a1 := 2 * ((a - 1) - (a+1)*cos)
	a2 := (a + 1) - (a-1)*cos - 2*sqrtA*alpha

	return newBiquad(channels, b0, b1, b2, a0, a1, a2)
}

// newHighPass builds the second K-weighting stage, removing the
// inaudible low end before power averaging.
func newHighPass(sampleRate, channels int) *biquad {
	w0 := 2 * math.Pi * highPassFreq / float64(sampleRate)
	alpha := math.Sin(w0) / (2 * highPassQ)
	cos := math.Cos(w0)

	b0 := (1 + cos) / 2
	b1 := -(1 + cos)
	b2 := (1 + cos) / 2
	a0 := 1 + alpha
	a1 := -2 * cos
	a2 := 1 - alpha

	return newBiquad(channels, b0, b1, b2, a0, a1, a2)
}

// process filters one sample on the given channel.
func (f *biquad) process(ch int, x float64) float64 {
	y := f.b0*x + f.z1[ch]
	f.z1[ch] = f.b1*x - f.a1*y + f.z2[ch]
	f.z2[ch] = f.b2*x - f.a2*y

	return y
}
