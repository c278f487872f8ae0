package game

// Listeners is an ordered set of subscribers. Hosts embed one per event kind.
type Listeners[F any] struct {
	next int
	subs []listener[F]
}

type listener[F any] struct {
	id int
	fn F
}

// Add subscribes fn and returns its unsubscribe function. Calling the
// returned function more than once is harmless.
func (l *Listeners[F]) Add(fn F) func() {
	l.next++
	id := l.next
	l.subs = append(l.subs, listener[F]{id: id, fn: fn})
	return func() { l.remove(id) }
}

func (l *Listeners[F]) remove(id int) {
	for i, s := range l.subs {
		if s.id == id {
			l.subs = append(l.subs[:i:i], l.subs[i+1:]...)
			return
		}
	}
}

// Len returns the number of subscribers.
func (l *Listeners[F]) Len() int {
	return len(l.subs)
}

// Each calls visit for a snapshot of the current subscribers, so a
// subscriber may unsubscribe while being notified.
func (l *Listeners[F]) Each(visit func(F)) {
	snapshot := make([]listener[F], len(l.subs))
	copy(snapshot, l.subs)
	for _, s := range snapshot {
		visit(s.fn)
	}
}

// PointerEvents bundles the listener sets a Container implementation needs.
type PointerEvents struct {
	Move   Listeners[func(x, y float64)]
	Leave  Listeners[func()]
	Resize Listeners[func()]
}

// EmitMove notifies move subscribers.
func (p *PointerEvents) EmitMove(x, y float64) {
	p.Move.Each(func(fn func(x, y float64)) { fn(x, y) })
}

// EmitLeave notifies leave/touch-end subscribers.
func (p *PointerEvents) EmitLeave() {
	p.Leave.Each(func(fn func()) { fn() })
}

// EmitResize notifies resize subscribers.
func (p *PointerEvents) EmitResize() {
	p.Resize.Each(func(fn func()) { fn() })
}

// Subscriptions returns the total number of live subscriptions.
func (p *PointerEvents) Subscriptions() int {
	return p.Move.Len() + p.Leave.Len() + p.Resize.Len()
}
