package audio

import (
	"errors"
	"time"

	"github.com/gopxl/beep"
)

var ErrFrameRate = errors.New("audio: frame rate must be positive")

// Scan plays src through the analyser without an output device, one video
// frame at a time. After each frame's samples have been written, fn receives
// the frame index and the analyser's bucket array; the slice is reused
// between calls. Scan returns the number of frames produced.
func Scan(src beep.Streamer, format beep.Format, an *Analyser, fps int, fn func(frame int, buckets []byte)) (int, error) {
	if fps <= 0 {
		return 0, ErrFrameRate
	}
	per := format.SampleRate.N(time.Second / time.Duration(fps))
	if per <= 0 {
		per = 1
	}

	block := make([][2]float64, per)
	mono := make([]float64, per)
	buckets := make([]byte, an.BinCount())

	frames := 0
	for {
		n, ok := src.Stream(block)
		if n > 0 {
			for i := 0; i < n; i++ {
				mono[i] = (block[i][0] + block[i][1]) / 2
			}
			an.Write(mono[:n])
			an.ByteFrequencyData(buckets)
			fn(frames, buckets)
			frames++
		}
		if !ok || n < per {
			break
		}
	}
	return frames, src.Err()
}
