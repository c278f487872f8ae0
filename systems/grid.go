package systems

import (
	"math"
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/dotfield/components"
)

// Particle is a value snapshot of one grid entity.
type Particle struct {
	X, Y   float64 // position
	VX, VY float64 // velocity
	OX, OY float64 // origin
}

// Grid owns the particle entities of one lattice. A rebuild produces a new
// Grid with its own world; callers swap the reference between ticks.
type Grid struct {
	world *ecs.World

	mapper *ecs.Map4[
		components.Position,
		components.Velocity,
		components.Origin,
		components.Lattice,
	]
	filter *ecs.Filter3[
		components.Position,
		components.Velocity,
		components.Origin,
	]
	indexFilter *ecs.Filter4[
		components.Position,
		components.Velocity,
		components.Origin,
		components.Lattice,
	]

	cols, rows      int
	spacing, margin float64
}

// GridSpec holds the inputs of a build.
type GridSpec struct {
	Width   float64 // working surface width
	Height  float64 // working surface height (already scaled)
	Spacing float64
	Margin  float64
}

// Dimensions returns the lattice size for a spec. Degenerate specs yield 0x0.
func (s GridSpec) Dimensions() (cols, rows int) {
	if !(s.Spacing > 0) {
		return 0, 0
	}
	availW := s.Width - 2*s.Margin
	availH := s.Height - 2*s.Margin
	c := math.Floor(availW / s.Spacing)
	r := math.Floor(availH / s.Spacing)
	// Covers negatives, NaN and Inf in one check.
	if !(c > 0) || !(r > 0) || math.IsInf(c, 0) || math.IsInf(r, 0) {
		return 0, 0
	}
	return int(c), int(r)
}

// EmptyGrid returns a usable grid with no particles.
func EmptyGrid() *Grid {
	return newGrid(0, 0, 0, 0)
}

// BuildGrid materializes a fresh lattice. Every particle starts at rest on its origin.
func BuildGrid(spec GridSpec) *Grid {
	cols, rows := spec.Dimensions()
	g := newGrid(cols, rows, spec.Spacing, spec.Margin)

	total := cols * rows
	for i := 0; i < total; i++ {
		x := spec.Margin + spec.Spacing*float64(i%cols)
		y := spec.Margin + spec.Spacing*float64(i/cols)

		pos := components.Position{X: x, Y: y}
		vel := components.Velocity{}
		origin := components.Origin{X: x, Y: y}
		lattice := components.Lattice{Index: i}
		g.mapper.NewEntity(&pos, &vel, &origin, &lattice)
	}

	return g
}

func newGrid(cols, rows int, spacing, margin float64) *Grid {
	world := ecs.NewWorld()
	return &Grid{
		world: world,
		mapper: ecs.NewMap4[
			components.Position,
			components.Velocity,
			components.Origin,
			components.Lattice,
		](world),
		filter: ecs.NewFilter3[
			components.Position,
			components.Velocity,
			components.Origin,
		](world),
		indexFilter: ecs.NewFilter4[
			components.Position,
			components.Velocity,
			components.Origin,
			components.Lattice,
		](world),
		cols:    cols,
		rows:    rows,
		spacing: spacing,
		margin:  margin,
	}
}

// Cols returns the number of lattice columns.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the number of lattice rows.
func (g *Grid) Rows() int { return g.rows }

// Len returns the particle count.
func (g *Grid) Len() int { return g.cols * g.rows }

// Spacing returns the lattice pitch the grid was built with.
func (g *Grid) Spacing() float64 { return g.spacing }

// Margin returns the lattice offset the grid was built with.
func (g *Grid) Margin() float64 { return g.margin }

// ForEach calls fn for every particle in storage order.
func (g *Grid) ForEach(fn func(pos *components.Position, vel *components.Velocity, origin *components.Origin)) {
	query := g.filter.Query()
	for query.Next() {
		fn(query.Get())
	}
}

// Particles returns a row-major snapshot of the grid.
func (g *Grid) Particles() []Particle {
	type indexed struct {
		idx int
		p   Particle
	}
	out := make([]indexed, 0, g.Len())

	query := g.indexFilter.Query()
	for query.Next() {
		pos, vel, origin, lattice := query.Get()
		out = append(out, indexed{
			idx: lattice.Index,
			p: Particle{
				X: pos.X, Y: pos.Y,
				VX: vel.X, VY: vel.Y,
				OX: origin.X, OY: origin.Y,
			},
		})
	}

	slices.SortFunc(out, func(a, b indexed) int { return a.idx - b.idx })

	particles := make([]Particle, len(out))
	for i := range out {
		particles[i] = out[i].p
	}
	return particles
}

// Set overwrites the mutable state of the particle at a row-major index.
// Returns false if the index is out of range.
func (g *Grid) Set(index int, x, y, vx, vy float64) bool {
	found := false
	query := g.indexFilter.Query()
	for query.Next() {
		pos, vel, _, lattice := query.Get()
		if lattice.Index != index {
			continue
		}
		pos.X, pos.Y = x, y
		vel.X, vel.Y = vx, vy
		found = true
	}
	return found
}
