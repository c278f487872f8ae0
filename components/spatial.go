// Package components defines the ECS components carried by grid particles.
package components

// Position is a particle's current location in surface units.
type Position struct {
	X, Y float64
}

// Velocity is a particle's velocity in surface units per update tick.
type Velocity struct {
	X, Y float64
}

// Origin is the lattice point a particle springs back to.
// It is written once when the grid is built and never mutated.
type Origin struct {
	X, Y float64
}

// Lattice records a particle's row-major slot in its grid.
type Lattice struct {
	Index int
}
