package automaton // import "github.com/orkestr8/automaton"

// Program is the compiled dispatch procedure. It holds only the flat
// decision tables; the IR that produced it is gone. A Program is immutable
// and safe to share: each Run carries its state on the stack and in the
// caller-provided environment, so one Program may run concurrently from many
// goroutines as long as the environments (and whatever the predicates and
// actions touch) are not shared.
type Program struct {
	name     string
	start    int
	plans    []plan
	prologue Hook
	epilogue Hook
}

// Name returns the automaton name the program was compiled from.
func (p *Program) Name() string {
	return p.name
}

// Run executes the automaton to completion: prologue once, then a single
// dispatch loop over the current state, then epilogue once. Per step the
// decision order is fixed: interrupts in registration order, entry hooks,
// triggers in registration order, the default transition, and finally the
// failure clause. Reaching a state where nothing fires panics with a
// ContractViolation; that is a bug in the declared automaton, not a
// recoverable condition.
//
// Run performs no heap allocation and takes no locks. It returns only when a
// transition targets the terminal state; if no predicate ever signals
// exhaustion the loop diverges, which is the declared behavior.
func (p *Program) Run(env interface{}) {
	if p.prologue != nil {
		p.prologue(env)
	}

	state := p.start
loop:
	for {
		pl := &p.plans[state]

		for i := range pl.interrupts {
			a := &pl.interrupts[i]
			if a.pred(env) {
				if a.action != nil {
					a.action(env)
				}
				// Bypass: no entry hook ran, no exit hook runs.
				if a.next == terminalIndex {
					break loop
				}
				state = a.next
				continue loop
			}
		}

		for _, h := range pl.entry {
			h(env)
		}

		for i := range pl.triggers {
			a := &pl.triggers[i]
			if a.pred(env) {
				if a.action != nil {
					a.action(env)
				}
				for _, h := range pl.exit {
					h(env)
				}
				if a.next == terminalIndex {
					break loop
				}
				state = a.next
				continue loop
			}
		}

		if pl.hasDefault {
			if pl.def.action != nil {
				pl.def.action(env)
			}
			for _, h := range pl.exit {
				h(env)
			}
			if pl.def.next == terminalIndex {
				break loop
			}
			state = pl.def.next
			continue loop
		}

		panic(pl.failure)
	}

	if p.epilogue != nil {
		p.epilogue(env)
	}
}
