// Package systems contains the simulation logic of the particle field.
package systems

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/dotfield/components"
)

// Integrator constants.
const (
	DefaultDrag = 0.95
	DefaultEase = 0.25
)

// PhysicsSystem advances every particle once per update tick.
type PhysicsSystem struct {
	Drag float64
	Ease float64
}

// NewPhysicsSystem creates a physics system with the given constants.
func NewPhysicsSystem(drag, ease float64) *PhysicsSystem {
	return &PhysicsSystem{Drag: drag, Ease: ease}
}

// Update applies one tick toward target with squared force radius k.
func (s *PhysicsSystem) Update(g *Grid, target r2.Vec, k float64) {
	g.ForEach(func(pos *components.Position, vel *components.Velocity, origin *components.Origin) {
		s.step(pos, vel, origin, target, k)
	})
}

// step integrates a single particle. The order is fixed:
// force, drag, position, then easing toward the origin.
func (s *PhysicsSystem) step(pos *components.Position, vel *components.Velocity, origin *components.Origin, target r2.Vec, k float64) {
	dx := target.X - pos.X
	dy := target.Y - pos.Y
	d := dx*dx + dy*dy
	f := k / d

	// Exclusive gate: only strictly inside sqrt(k). A coincident target has
	// no direction and 0*Inf would leave NaN in the particle for good.
	if f > 1 && d > 0 {
		vel.X += dx * f
		vel.Y += dy * f
	}

	vel.X *= s.Drag
	vel.Y *= s.Drag

	pos.X += vel.X
	pos.Y += vel.Y

	pos.X += (origin.X - pos.X) * s.Ease
	pos.Y += (origin.Y - pos.Y) * s.Ease
}
