// Package grid implements the dot lattice that sits behind the scene.
//
// Each [Point] is anchored to a regular lattice and behaves as a damped
// spring pulled back to its anchor. A pointer inside the influence radius
// pushes nearby points away; once it leaves, every point settles back.
//
//	f := grid.NewField(grid.DefaultParams())
//	f.Rebuild(800, 600)
//	for each frame {
//	    f.Step(pointer)
//	}
//
// A Field is not safe for concurrent use. It is owned by the render task.
package grid
