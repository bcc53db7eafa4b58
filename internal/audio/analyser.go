package audio

import (
	"errors"
	"math"
	"math/cmplx"
	"sync"

	"github.com/mjibson/go-dsp/fft"
)

const (
	DefaultFFTSize = 128

	minFFTSize = 32
	maxFFTSize = 32768

	// Decibel range mapped onto 0..255 and the time smoothing applied to
	// magnitudes, matching the browser analyser defaults.
	DefaultMinDecibels = -100.0
	DefaultMaxDecibels = -30.0
	DefaultSmoothing   = 0.8
)

var ErrFFTSize = errors.New("audio: fft size must be a power of two in [32, 32768]")

// Analyser turns the most recent block of played samples into per-bucket
// magnitudes in 0..255. A smaller FFT size gives fewer, wider buckets.
//
// Write is called from the audio callback and ByteFrequencyData from the
// render task, so both take the lock.
type Analyser struct {
	mu sync.Mutex

	size   int
	ring   []float64
	head   int
	window []float64
	smooth []float64
	frame  []float64

	MinDecibels float64
	MaxDecibels float64
	Smoothing   float64
}

func NewAnalyser(fftSize int) (*Analyser, error) {
	if fftSize < minFFTSize || fftSize > maxFFTSize || fftSize&(fftSize-1) != 0 {
		return nil, ErrFFTSize
	}
	return &Analyser{
		size:        fftSize,
		ring:        make([]float64, fftSize),
		window:      blackman(fftSize),
		smooth:      make([]float64, fftSize/2),
		frame:       make([]float64, fftSize),
		MinDecibels: DefaultMinDecibels,
		MaxDecibels: DefaultMaxDecibels,
		Smoothing:   DefaultSmoothing,
	}, nil
}

// FFTSize is the transform length.
func (a *Analyser) FFTSize() int { return a.size }

// BinCount is the number of buckets ByteFrequencyData fills.
func (a *Analyser) BinCount() int { return a.size / 2 }

// Write appends mono samples. Only the last FFTSize samples are kept.
func (a *Analyser) Write(samples []float64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(samples) > a.size {
		samples = samples[len(samples)-a.size:]
	}
	for _, s := range samples {
		a.ring[a.head] = s
		a.head = (a.head + 1) % a.size
	}
}

// ByteFrequencyData fills dst with the current bucket magnitudes and returns
// the number of buckets written.
func (a *Analyser) ByteFrequencyData(dst []byte) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	// oldest sample first
	n := copy(a.frame, a.ring[a.head:])
	copy(a.frame[n:], a.ring[:a.head])
	for i := range a.frame {
		a.frame[i] *= a.window[i]
	}

	bins := fft.FFTReal(a.frame)
	scale := 255 / (a.MaxDecibels - a.MinDecibels)
	tau := a.Smoothing

	count := len(a.smooth)
	if len(dst) < count {
		count = len(dst)
	}
	for k := range a.smooth {
		mag := cmplx.Abs(bins[k]) / float64(a.size)
		a.smooth[k] = tau*a.smooth[k] + (1-tau)*mag
		if k >= count {
			continue
		}
		db := 20 * math.Log10(a.smooth[k])
		v := (db - a.MinDecibels) * scale
		switch {
		case math.IsNaN(v) || v < 0:
			v = 0
		case v > 255:
			v = 255
		}
		dst[k] = byte(v)
	}
	return count
}

// Reset clears buffered samples and the smoothing history.
func (a *Analyser) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	clear(a.ring)
	clear(a.smooth)
	a.head = 0
}

func blackman(n int) []float64 {
	const (
		a0 = 0.42
		a1 = 0.5
		a2 = 0.08
	)
	w := make([]float64, n)
	for i := range w {
		x := 2 * math.Pi * float64(i) / float64(n)
		w[i] = a0 - a1*math.Cos(x) + a2*math.Cos(2*x)
	}
	return w
}
