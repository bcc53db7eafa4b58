package grid

import "math"

// Point is one dot of the lattice.
type Point struct {
	Anchor Vec
	Pos    Vec
	Vel    Vec
	Active bool // inside the pointer's influence radius on the last step
}

// Build lays out a lattice over a w x h viewport. Dots of the given size are
// separated by gap pixels; there are floor(w/(size+gap))+1 columns and
// floor(h/(size+gap))+1 rows, stored row-major. Every point starts at rest on
// its anchor.
func Build(w, h, gap, size float64) []Point {
	pitch := size + gap
	if pitch <= 0 || w < 0 || h < 0 {
		return nil
	}
	cols := int(math.Floor(w / pitch))
	rows := int(math.Floor(h / pitch))

	points := make([]Point, 0, (cols+1)*(rows+1))
	for row := 0; row <= rows; row++ {
		for col := 0; col <= cols; col++ {
			a := Vec{
				X: float64(col)*pitch + gap/2,
				Y: float64(row)*pitch + gap/2,
			}
			points = append(points, Point{Anchor: a, Pos: a})
		}
	}
	return points
}
