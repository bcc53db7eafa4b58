package grid

import "math"

// Vec is a 2D vector in screen pixels.
type Vec struct {
	X, Y float64
}

// OffCanvas is the pointer position used when no pointer is over the
// surface. It is far outside any point's influence radius.
var OffCanvas = Vec{X: -9999, Y: -9999}

func (v Vec) Add(o Vec) Vec       { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec       { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s} }
func (v Vec) Len() float64        { return math.Hypot(v.X, v.Y) }
func (v Vec) Dist(o Vec) float64  { return v.Sub(o).Len() }
