// Package spectrum maps analyser buckets onto a fixed row of bars.
package spectrum

import "math"

const (
	DefaultWidth  = 600.0
	DefaultHeight = 160.0
	DefaultCount  = 40

	// fill is the share of each slot a bar covers.
	fill = 0.8
	// byteMax is the largest bucket value the analyser produces.
	byteMax = 255.0
)

// Layout is the bar area. Its origin is recomputed on every resize so the
// area stays centered.
type Layout struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Count  int     `yaml:"count"`
}

func DefaultLayout() Layout {
	return Layout{Width: DefaultWidth, Height: DefaultHeight, Count: DefaultCount}
}

// Origin returns the top-left corner of the bar area centered in a w x h
// viewport.
func (l Layout) Origin(w, h float64) (x, y float64) {
	return w/2 - l.Width/2, h/2 - l.Height/2
}

// Bar is one spectrum bar. Y is the baseline; the bar grows upward by H.
type Bar struct {
	X, Y float64
	W, H float64
}

// Top returns the y coordinate of the bar's upper edge.
func (b Bar) Top() float64 { return b.Y - b.H }

// Build lays out l.Count bars with the area's top-left corner at (x, y).
// All heights start at zero.
func Build(l Layout, x, y float64) []Bar {
	if l.Count <= 0 {
		return nil
	}
	slot := l.Width / float64(l.Count)
	bars := make([]Bar, l.Count)
	for i := range bars {
		bars[i] = Bar{
			X: x + float64(i)*slot,
			Y: y + l.Height,
			W: slot * fill,
		}
	}
	return bars
}

// Update sets every bar's height from the bucket array. Bar i samples bucket
// floor(i*len(buckets)/len(bars)) and scales it into [0, maxHeight].
// An empty bucket array leaves the bars untouched.
func Update(bars []Bar, buckets []byte, maxHeight float64) {
	n := len(bars)
	if n == 0 || len(buckets) == 0 {
		return
	}
	for i := range bars {
		bin := int(math.Floor(float64(i) * float64(len(buckets)) / float64(n)))
		bars[i].H = float64(buckets[bin]) / byteMax * maxHeight
	}
}

// Heights copies the current bar heights.
func Heights(bars []Bar) []float64 {
	hs := make([]float64, len(bars))
	for i, b := range bars {
		hs[i] = b.H
	}
	return hs
}

// Reset zeroes every bar height.
func Reset(bars []Bar) {
	for i := range bars {
		bars[i].H = 0
	}
}
