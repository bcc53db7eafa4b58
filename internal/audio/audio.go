package audio

import (
	"errors"
	"io"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gordonklaus/portaudio"
	"go.uber.org/zap"
)

const (
	SampleRate = 44100
	BufferSize = 1024

	resampleQuality = 4
)

var ErrNotStarted = errors.New("audio: output stream not started")

// Deck plays one track through a portaudio output stream and feeds every
// rendered block to an analyser, so the analyser always sees what is heard.
// The track starts paused.
type Deck struct {
	mu sync.Mutex

	src      beep.StreamSeeker
	closer   io.Closer
	format   beep.Format
	ctrl     *beep.Ctrl
	out      beep.Streamer
	analyser *Analyser

	Stream *portaudio.Stream
	Active bool

	block [][2]float64
	mono  []float64
	log   *zap.Logger
}

// NewDeck wraps a decoded track. If src implements io.Closer it is closed by
// Stop.
func NewDeck(src beep.StreamSeeker, format beep.Format, analyser *Analyser, log *zap.Logger) *Deck {
	if log == nil {
		log = zap.NewNop()
	}
	d := &Deck{
		src:      src,
		format:   format,
		analyser: analyser,
		block:    make([][2]float64, BufferSize),
		mono:     make([]float64, BufferSize),
		log:      log,
	}
	if c, ok := src.(io.Closer); ok {
		d.closer = c
	}
	d.ctrl = &beep.Ctrl{Streamer: src, Paused: true}
	d.out = d.chain()
	return d
}

func (d *Deck) chain() beep.Streamer {
	if d.format.SampleRate == SampleRate {
		return d.ctrl
	}
	return beep.Resample(resampleQuality, d.format.SampleRate, SampleRate, d.ctrl)
}

// Start opens the default output device and begins streaming. Until Restart
// is called the stream carries silence.
func (d *Deck) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return err
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, d.ProcessAudio)
	if err != nil {
		portaudio.Terminate()
		return err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return err
	}

	d.mu.Lock()
	d.Stream = stream
	d.Active = true
	d.mu.Unlock()

	d.log.Info("audio output started", zap.Int("sample_rate", SampleRate), zap.Int("buffer", BufferSize))
	return nil
}

func (d *Deck) Stop() {
	d.mu.Lock()
	stream := d.Stream
	d.Stream = nil
	d.Active = false
	d.mu.Unlock()

	if stream != nil {
		stream.Stop()
		stream.Close()
		portaudio.Terminate()
	}
	if d.closer != nil {
		d.closer.Close()
	}
}

// Restart rewinds the track and starts playing it from the top.
func (d *Deck) Restart() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.Active {
		return ErrNotStarted
	}
	return d.rewind()
}

func (d *Deck) rewind() error {
	if err := d.src.Seek(0); err != nil {
		return err
	}
	// a resampler that hit the end of its source stays drained, rebuild it
	d.out = d.chain()
	d.ctrl.Paused = false
	return nil
}

// Playing reports whether the track is currently audible.
func (d *Deck) Playing() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.Active && !d.ctrl.Paused
}

// ProcessAudio is the portaudio callback: non-interleaved stereo output.
func (d *Deck) ProcessAudio(out [][]float32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.render(out)
}

func (d *Deck) render(out [][]float32) {
	n := len(out[0])
	if cap(d.block) < n {
		d.block = make([][2]float64, n)
		d.mono = make([]float64, n)
	}
	block, mono := d.block[:n], d.mono[:n]

	got, ok := d.out.Stream(block)
	if !ok || got < n {
		for i := got; i < n; i++ {
			block[i] = [2]float64{}
		}
		if !d.ctrl.Paused {
			d.ctrl.Paused = true
			d.log.Debug("track finished")
		}
	}

	for i, s := range block {
		out[0][i] = float32(s[0])
		if len(out) > 1 {
			out[1][i] = float32(s[1])
		}
		mono[i] = (s[0] + s[1]) / 2
	}
	if d.analyser != nil {
		d.analyser.Write(mono)
	}
}
