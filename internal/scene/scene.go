// Package scene holds the whole mutable state of the landing view and the
// single dispatcher that mutates it.
//
// Every input (pointer motion, pointer leaving, resize, the unlock click, the
// frame tick) enters through a Dispatcher method that runs to completion
// before the next one starts. The render task is the only caller, so the
// scene needs no locks.
package scene

import (
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/hashviz/internal/gesture"
	"github.com/san-kum/hashviz/internal/grid"
	"github.com/san-kum/hashviz/internal/spectrum"
)

// Graph is the part of the audio graph the scene drives.
type Graph interface {
	BinCount() int
	ByteFrequencyData(dst []byte) int
	Restart() error
}

// GraphFactory builds the audio graph. It is called on unlock and never again
// once it has succeeded.
type GraphFactory func() (Graph, error)

type Options struct {
	Grid      grid.Params
	Layout    spectrum.Layout
	Threshold float64
	Cooldown  time.Duration
}

func DefaultOptions() Options {
	return Options{
		Grid:      grid.DefaultParams(),
		Layout:    spectrum.DefaultLayout(),
		Threshold: gesture.DefaultThreshold,
		Cooldown:  gesture.DefaultCooldown,
	}
}

// Scene is everything that changes while the view is open.
type Scene struct {
	Width, Height float64
	Pointer       grid.Vec

	Field  *grid.Field
	Layout spectrum.Layout
	Bars   []spectrum.Bar

	Tracker gesture.Tracker
	Trigger *gesture.Trigger

	graph   Graph
	buckets []byte
}

// Origin is the top-left corner of the bar area.
func (s *Scene) Origin() (x, y float64) {
	return s.Layout.Origin(s.Width, s.Height)
}

func (s *Scene) Unlocked() bool { return s.Trigger.State() != gesture.Locked }

// Visualizing reports whether bars follow the audio.
func (s *Scene) Visualizing() bool { return s.Trigger.State() == gesture.Fired }

func (s *Scene) HasAudio() bool { return s.graph != nil }

type Dispatcher struct {
	scene    *Scene
	newGraph GraphFactory
	log      *zap.Logger
}

func NewDispatcher(opts Options, newGraph GraphFactory, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		scene: &Scene{
			Pointer: grid.OffCanvas,
			Field:   grid.NewField(opts.Grid),
			Layout:  opts.Layout,
			Trigger: gesture.NewTrigger(opts.Threshold, opts.Cooldown),
		},
		newGraph: newGraph,
		log:      log,
	}
}

func (d *Dispatcher) Scene() *Scene { return d.scene }

// OnResize rebuilds the lattice and the bars for a w x h viewport. Nothing
// carries over from the previous layout.
func (d *Dispatcher) OnResize(w, h float64) {
	s := d.scene
	s.Width, s.Height = w, h
	s.Field.Rebuild(w, h)
	x, y := s.Origin()
	s.Bars = spectrum.Build(s.Layout, x, y)
	d.log.Debug("viewport resized",
		zap.Float64("width", w),
		zap.Float64("height", h),
		zap.Int("points", s.Field.Len()))
}

func (d *Dispatcher) OnPointerMove(x, y float64, at time.Time) {
	s := d.scene
	s.Pointer = grid.Vec{X: x, Y: y}

	speed, ok := s.Tracker.Sample(x, y, at)
	if !ok || !s.Trigger.Observe(speed, at) {
		return
	}

	d.log.Info("gesture fired", zap.Float64("speed", speed))
	if s.graph == nil {
		return
	}
	if err := s.graph.Restart(); err != nil {
		d.log.Warn("audio play blocked", zap.Error(err))
	}
}

func (d *Dispatcher) OnPointerLeave() {
	d.scene.Pointer = grid.OffCanvas
}

// OnUnlock passes the audio gate. The graph is built on the first call only;
// if building fails the scene stays locked and the error is returned so the
// gate can be offered again.
func (d *Dispatcher) OnUnlock() error {
	s := d.scene
	if s.graph == nil && d.newGraph != nil {
		g, err := d.newGraph()
		if err != nil {
			d.log.Error("audio setup failed", zap.Error(err))
			return err
		}
		s.graph = g
		s.buckets = make([]byte, g.BinCount())
	}
	if s.Trigger.Unlock() {
		d.log.Info("audio unlocked", zap.Bool("audio", s.graph != nil))
	}
	return nil
}

// OnFrame advances the lattice and, once the gesture has fired, pulls the
// latest buckets into the bars.
func (d *Dispatcher) OnFrame() {
	s := d.scene
	s.Field.Step(s.Pointer)

	if !s.Visualizing() || s.graph == nil {
		return
	}
	n := s.graph.ByteFrequencyData(s.buckets)
	spectrum.Update(s.Bars, s.buckets[:n], s.Layout.Height)
}
