package automaton // import "github.com/orkestr8/automaton"

// Projection is a read-only view of a finished configuration, for exporters
// and diagnostics. It copies what it needs out of the IR at construction, so
// it stays valid after the builder is compiled and discarded, and nothing an
// exporter does can influence generation.
type Projection struct {
	name       string
	initial    State
	terminal   State
	states     []State
	interrupts map[State][]Arc
	triggers   map[State][]Arc
	defaults   map[State]Arc
	hasDefault map[State]bool
	predicates map[Event]string
}

func project(r *ir) *Projection {
	p := &Projection{
		name:       r.name,
		initial:    r.initial,
		terminal:   r.terminal,
		states:     r.sources(),
		interrupts: map[State][]Arc{},
		triggers:   map[State][]Arc{},
		defaults:   map[State]Arc{},
		hasDefault: map[State]bool{},
		predicates: map[Event]string{},
	}
	for e, text := range r.predicates {
		p.predicates[e] = text
	}
	for _, s := range p.states {
		p.interrupts[s] = arcs(r.interrupts[s])
		p.triggers[s] = arcs(r.triggers[s])
		if r.hasDefault[s] {
			t := r.defaults[s]
			p.defaults[s] = Arc{Source: s, Target: t.target, HasAction: t.action != nil}
			p.hasDefault[s] = true
		}
	}
	return p
}

func arcs(list []transition) []Arc {
	if len(list) == 0 {
		return nil
	}
	out := make([]Arc, len(list))
	for i, t := range list {
		out[i] = Arc{Source: t.source, Event: t.event, Target: t.target, HasAction: t.action != nil}
	}
	return out
}

// Name returns the automaton name.
func (p *Projection) Name() string { return p.name }

// Initial returns the entry state.
func (p *Projection) Initial() State { return p.initial }

// Terminal returns the terminal pseudo-state.
func (p *Projection) Terminal() State { return p.terminal }

// States returns the dispatched states in first-mention order. The terminal
// pseudo-state is not included.
func (p *Projection) States() []State {
	out := make([]State, len(p.states))
	copy(out, p.states)
	return out
}

// Interrupts returns the state's interrupt arcs in priority order.
func (p *Projection) Interrupts(s State) []Arc {
	return append([]Arc(nil), p.interrupts[s]...)
}

// Triggers returns the state's trigger arcs in priority order.
func (p *Projection) Triggers(s State) []Arc {
	return append([]Arc(nil), p.triggers[s]...)
}

// Default returns the state's default transition, if one exists.
func (p *Projection) Default(s State) (Arc, bool) {
	return p.defaults[s], p.hasDefault[s]
}

// PredicateText returns the labeled textual predicate of an event, or the
// event name when no label was attached.
func (p *Projection) PredicateText(e Event) string {
	if text, has := p.predicates[e]; has {
		return text
	}
	return string(e)
}

// Terminating reports whether the state has no default transition: if no
// interrupt or trigger matches there, the run ends in the failure clause.
// Exporters mark such states as unreachable-terminating.
func (p *Projection) Terminating(s State) bool {
	return !p.hasDefault[s]
}
