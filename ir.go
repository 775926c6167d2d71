package automaton // import "github.com/orkestr8/automaton"

// ir is the intermediate representation of one automaton under construction:
// the declared state set, event implementations, hooks, and the three
// transition classes in registration order. It exists only between the first
// Builder call and compilation, which consumes it.
type ir struct {
	name string

	initial     State
	terminal    State
	hasInitial  bool
	hasTerminal bool

	prologue Hook
	epilogue Hook

	states map[State]bool
	order  []State // first-mention order, for deterministic output

	events     map[Event]Predicate
	predicates map[Event]string // optional textual form, for labeling

	// Per-state transition lists. Slice order is registration order, which
	// is the documented priority order among same-class transitions.
	interrupts map[State][]transition
	triggers   map[State][]transition
	defaults   map[State]transition
	hasDefault map[State]bool

	entry map[State][]Hook
	exit  map[State][]Hook
}

func newIR(name string) *ir {
	return &ir{
		name:       name,
		states:     map[State]bool{},
		events:     map[Event]Predicate{},
		predicates: map[Event]string{},
		interrupts: map[State][]transition{},
		triggers:   map[State][]transition{},
		defaults:   map[State]transition{},
		hasDefault: map[State]bool{},
		entry:      map[State][]Hook{},
		exit:       map[State][]Hook{},
	}
}

// member adds a state to the state set. Membership is idempotent and
// independent of registration order.
func (r *ir) member(s State) {
	if r.states[s] {
		return
	}
	r.states[s] = true
	r.order = append(r.order, s)
}

// sources returns the member states in first-mention order, excluding the
// terminal pseudo-state if something registered it as a target.
func (r *ir) sources() []State {
	out := make([]State, 0, len(r.order))
	for _, s := range r.order {
		if r.hasTerminal && s == r.terminal {
			continue
		}
		out = append(out, s)
	}
	return out
}

func (r *ir) isTerminal(s State) bool {
	return r.hasTerminal && s == r.terminal
}
