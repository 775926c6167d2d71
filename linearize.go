package automaton // import "github.com/orkestr8/automaton"

// Linearization turns the validated IR into flat per-state decision lists
// indexed by a dense integer state id. Everything the dispatch loop touches
// is built here, once; Program.Run allocates nothing.

// terminalIndex is the sentinel for a jump into the terminal pseudo-state.
const terminalIndex = -1

// arm is one compiled interrupt or trigger: predicate, action, and the dense
// index of the target state.
type arm struct {
	event  Event
	pred   Predicate
	action Action
	next   int
}

// plan is the compiled decision list for one state, in priority order:
// interrupts, entry hooks, triggers, default, failure clause.
type plan struct {
	state      State
	interrupts []arm
	entry      []Hook
	triggers   []arm
	exit       []Hook
	def        arm
	hasDefault bool

	// failure is the pre-built panic value for the clause of last resort,
	// carrying everything that was checked for this state.
	failure ContractViolation
}

func linearize(r *ir) *Program {
	sources := r.sources()

	index := make(map[State]int, len(sources))
	for i, s := range sources {
		index[s] = i
	}
	resolve := func(target State) int {
		if r.isTerminal(target) {
			return terminalIndex
		}
		return index[target]
	}

	plans := make([]plan, len(sources))
	for i, s := range sources {
		p := plan{
			state: s,
			entry: r.entry[s],
			exit:  r.exit[s],
		}

		for _, t := range r.interrupts[s] {
			p.interrupts = append(p.interrupts, arm{
				event:  t.event,
				pred:   r.events[t.event],
				action: t.action,
				next:   resolve(t.target),
			})
		}
		for _, t := range r.triggers[s] {
			p.triggers = append(p.triggers, arm{
				event:  t.event,
				pred:   r.events[t.event],
				action: t.action,
				next:   resolve(t.target),
			})
		}
		if r.hasDefault[s] {
			t := r.defaults[s]
			p.def = arm{action: t.action, next: resolve(t.target)}
			p.hasDefault = true
		}

		p.failure = ContractViolation{
			Proc:       r.name,
			State:      s,
			Interrupts: armEvents(p.interrupts),
			Triggers:   armEvents(p.triggers),
			HasDefault: p.hasDefault,
		}
		plans[i] = p
	}

	return &Program{
		name:     r.name,
		start:    index[r.initial],
		plans:    plans,
		prologue: r.prologue,
		epilogue: r.epilogue,
	}
}

func armEvents(arms []arm) []Event {
	if len(arms) == 0 {
		return nil
	}
	events := make([]Event, len(arms))
	for i, a := range arms {
		events[i] = a.event
	}
	return events
}
