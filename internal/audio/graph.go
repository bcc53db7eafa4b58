// Package audio owns playback and frequency analysis for the spectrum bars.
//
// The pieces are wired source -> analyser -> output: a [Deck] decodes the
// track and streams it to the default output device, and every block it
// renders is also written into an [Analyser]. [Setup] builds the whole graph
// in one call; nothing here runs before the user unlocks audio.
package audio

import (
	"fmt"

	"go.uber.org/zap"
)

// Options configures Setup.
type Options struct {
	Track   string `yaml:"track"`
	FFTSize int    `yaml:"fft_size"`
}

// Graph is the constructed analysis graph.
type Graph struct {
	Analyser *Analyser
	Deck     *Deck
}

// Setup decodes the track, builds the analyser, and starts the output stream.
// Playback stays paused until Restart.
func Setup(opts Options, log *zap.Logger) (*Graph, error) {
	if log == nil {
		log = zap.NewNop()
	}
	size := opts.FFTSize
	if size == 0 {
		size = DefaultFFTSize
	}
	an, err := NewAnalyser(size)
	if err != nil {
		return nil, err
	}

	src, format, err := OpenTrack(opts.Track)
	if err != nil {
		return nil, fmt.Errorf("open track: %w", err)
	}

	deck := NewDeck(src, format, an, log)
	if err := deck.Start(); err != nil {
		src.Close()
		return nil, fmt.Errorf("start output: %w", err)
	}

	log.Info("audio graph ready",
		zap.String("track", opts.Track),
		zap.Int("fft_size", size),
		zap.Int("bins", an.BinCount()))
	return &Graph{Analyser: an, Deck: deck}, nil
}

func (g *Graph) BinCount() int                    { return g.Analyser.BinCount() }
func (g *Graph) ByteFrequencyData(dst []byte) int { return g.Analyser.ByteFrequencyData(dst) }
func (g *Graph) Restart() error                   { return g.Deck.Restart() }
func (g *Graph) Close()                           { g.Deck.Stop() }
