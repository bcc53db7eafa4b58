package grid

import "errors"

const (
	DefaultGap     = 20.0
	DefaultSize    = 3.0
	DefaultRadius  = 120.0
	DefaultGain    = 2.0
	DefaultSpring  = 0.1
	DefaultDamping = 0.85
)

// ErrUnstable is returned by Params.Validate when the damping factor would
// let the lattice oscillate forever.
var ErrUnstable = errors.New("grid: damping must be in [0, 1)")

// Params tunes the per-frame update.
type Params struct {
	Gap     float64 // space between dots
	Size    float64 // dot size, also the drawn radius
	Radius  float64 // pointer influence radius
	Gain    float64 // push strength at zero distance
	Spring  float64 // pull back toward the anchor, per pixel of displacement
	Damping float64 // velocity multiplier applied every frame
}

func DefaultParams() Params {
	return Params{
		Gap:     DefaultGap,
		Size:    DefaultSize,
		Radius:  DefaultRadius,
		Gain:    DefaultGain,
		Spring:  DefaultSpring,
		Damping: DefaultDamping,
	}
}

func (p Params) Validate() error {
	if p.Damping < 0 || p.Damping >= 1 {
		return ErrUnstable
	}
	return nil
}

// Field is the lattice plus its update rule.
type Field struct {
	params Params
	points []Point
	w, h   float64
}

func NewField(p Params) *Field {
	return &Field{params: p}
}

func (f *Field) Params() Params  { return f.params }
func (f *Field) Points() []Point { return f.points }
func (f *Field) Len() int        { return len(f.points) }

// Rebuild discards every point and lays out a fresh lattice for a w x h
// viewport.
func (f *Field) Rebuild(w, h float64) {
	f.w, f.h = w, h
	f.points = Build(w, h, f.params.Gap, f.params.Size)
}

// Step advances every point by one frame with the pointer at p. Points are
// visited in lattice order so the result is deterministic.
func (f *Field) Step(p Vec) {
	for i := range f.points {
		step(&f.points[i], p, f.params)
	}
}

func step(pt *Point, p Vec, prm Params) {
	d := p.Sub(pt.Pos)
	dist := d.Len()

	if dist < prm.Radius {
		force := (prm.Radius - dist) / prm.Radius * prm.Gain
		if dist > 0 {
			// unit vector from the pointer toward the point
			away := d.Scale(-1 / dist)
			pt.Vel = pt.Vel.Add(away.Scale(force))
		}
		pt.Active = true
	} else {
		pt.Active = false
	}

	pt.Vel = pt.Vel.Add(pt.Anchor.Sub(pt.Pos).Scale(prm.Spring))
	pt.Vel = pt.Vel.Scale(prm.Damping)
	pt.Pos = pt.Pos.Add(pt.Vel)
}

// Displacement returns the largest distance of any point from its anchor.
func (f *Field) Displacement() float64 {
	var m float64
	for _, pt := range f.points {
		if d := pt.Pos.Dist(pt.Anchor); d > m {
			m = d
		}
	}
	return m
}
