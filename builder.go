package automaton // import "github.com/orkestr8/automaton"

// Builder populates the IR of one automaton. It is a locally-scoped
// configuration object: create it, declare the machine, compile, discard.
// It must not be shared across goroutines and is consumed by Compile.
//
// Registration order is part of the contract: when several interrupts or
// several triggers are registered on the same state, they are checked in the
// order of the Builder calls that registered them, first match wins.
type Builder struct {
	ir       *ir
	log      Logger
	errs     []error
	consumed bool
}

// New declares an automaton and returns the builder that configures it.
func New(name string) *Builder {
	return &Builder{
		ir:  newIR(name),
		log: &nilLogger{},
	}
}

// WithLogger sets the logger used during configuration and compilation.
func (b *Builder) WithLogger(log Logger) *Builder {
	if log != nil {
		b.log = log
	}
	return b
}

// Name returns the declared automaton name.
func (b *Builder) Name() string {
	return b.ir.name
}

// Initial sets the unique entry state.
func (b *Builder) Initial(s State) *Builder {
	if b.guard("Initial") {
		return b
	}
	b.ir.initial = s
	b.ir.hasInitial = true
	return b
}

// Terminal designates the terminal pseudo-state. Reaching it ends the run.
// The terminal state need not be declared anywhere else and is excluded from
// dispatch.
func (b *Builder) Terminal(s State) *Builder {
	if b.guard("Terminal") {
		return b
	}
	b.ir.terminal = s
	b.ir.hasTerminal = true
	return b
}

// Prologue sets the one-shot setup run before the dispatch loop. Bindings it
// establishes in the run environment are visible to every predicate, action
// and hook.
func (b *Builder) Prologue(h Hook) *Builder {
	if b.guard("Prologue") {
		return b
	}
	b.ir.prologue = h
	return b
}

// Epilogue sets the one-shot teardown run after the loop exits.
func (b *Builder) Epilogue(h Hook) *Builder {
	if b.guard("Epilogue") {
		return b
	}
	b.ir.epilogue = h
	return b
}

// OnEntry appends an entry hook to each listed state. Entry hooks run once
// per state visit, after interrupt checks and before trigger checks.
// Interrupt predicates and actions run before the entry hook and must not
// depend on anything it establishes.
func (b *Builder) OnEntry(h Hook, states ...State) *Builder {
	if b.guard("OnEntry") {
		return b
	}
	if len(states) == 0 {
		b.errs = append(b.errs, ErrEmptyStates{Name: b.ir.name, Op: "OnEntry"})
		return b
	}
	for _, s := range states {
		b.ir.member(s)
		b.ir.entry[s] = append(b.ir.entry[s], h)
	}
	return b
}

// OnExit appends an exit hook to each listed state. Exit hooks run once per
// matched trigger or default transition, after the action and before the
// state changes. Interrupts bypass them.
func (b *Builder) OnExit(h Hook, states ...State) *Builder {
	if b.guard("OnExit") {
		return b
	}
	if len(states) == 0 {
		b.errs = append(b.errs, ErrEmptyStates{Name: b.ir.name, Op: "OnExit"})
		return b
	}
	for _, s := range states {
		b.ir.member(s)
		b.ir.exit[s] = append(b.ir.exit[s], h)
	}
	return b
}

// Implement registers the predicate implementing an event. Every event
// referenced by an interrupt or trigger must be implemented before Compile.
func (b *Builder) Implement(e Event, p Predicate) *Builder {
	if b.guard("Implement") {
		return b
	}
	if p == nil {
		b.errs = append(b.errs, ErrNilPredicate{Name: b.ir.name, Event: e})
		return b
	}
	b.ir.events[e] = p
	return b
}

// Label attaches the textual form of an event's predicate. It is used only
// for projection labels and generated-source comments, never for execution.
func (b *Builder) Label(e Event, text string) *Builder {
	if b.guard("Label") {
		return b
	}
	b.ir.predicates[e] = text
	return b
}

// Interrupt registers an interrupt transition on each listed source state:
// checked before the entry hook, and on match its action fires and the run
// jumps to target, bypassing entry and exit hooks entirely.
func (b *Builder) Interrupt(e Event, target State, action Action, from ...State) *Builder {
	return b.transition("Interrupt", e, target, action, from)
}

// Trigger registers a conditional transition on each listed source state:
// checked after the entry hook in registration order; on match its action
// fires, then the exit hook, then the jump.
func (b *Builder) Trigger(e Event, target State, action Action, from ...State) *Builder {
	return b.transition("Trigger", e, target, action, from)
}

// Default registers the unconditional fallback transition for each listed
// state, taken only when no interrupt or trigger matched. A state has at
// most one default.
func (b *Builder) Default(target State, action Action, from ...State) *Builder {
	return b.transition("Default", "", target, action, from)
}

// Steady declares each listed state as its own default target: when nothing
// else matches the state persists. Sugar for Default(s, nil, s).
func (b *Builder) Steady(states ...State) *Builder {
	if b.guard("Steady") {
		return b
	}
	if len(states) == 0 {
		b.errs = append(b.errs, ErrEmptyStates{Name: b.ir.name, Op: "Steady"})
		return b
	}
	for _, s := range states {
		b.transition("Default", "", s, nil, []State{s})
	}
	return b
}

func (b *Builder) transition(op string, e Event, target State, action Action, from []State) *Builder {
	if b.guard(op) {
		return b
	}
	if len(from) == 0 {
		b.errs = append(b.errs, ErrEmptyStates{Name: b.ir.name, Op: op})
		return b
	}
	b.ir.member(target)
	for _, s := range from {
		b.ir.member(s)
		t := transition{source: s, event: e, target: target, action: action}
		switch op {
		case "Interrupt":
			if b.registered(b.ir.interrupts[s], e) {
				b.errs = append(b.errs, ErrDuplicateTransition{Name: b.ir.name, Kind: "interrupt", State: s, Event: e})
				continue
			}
			b.ir.interrupts[s] = append(b.ir.interrupts[s], t)
		case "Trigger":
			if b.registered(b.ir.triggers[s], e) {
				b.errs = append(b.errs, ErrDuplicateTransition{Name: b.ir.name, Kind: "trigger", State: s, Event: e})
				continue
			}
			b.ir.triggers[s] = append(b.ir.triggers[s], t)
		case "Default":
			if b.ir.hasDefault[s] {
				b.errs = append(b.errs, ErrDuplicateTransition{Name: b.ir.name, Kind: "default", State: s})
				continue
			}
			b.ir.defaults[s] = t
			b.ir.hasDefault[s] = true
		}
	}
	return b
}

func (b *Builder) registered(list []transition, e Event) bool {
	for _, t := range list {
		if t.event == e {
			return true
		}
	}
	return false
}

// guard rejects mutation after the builder has been consumed.
func (b *Builder) guard(op string) bool {
	if !b.consumed {
		return false
	}
	b.log.Error("builder call after compilation", "automaton", b.ir.name, "op", op)
	b.errs = append(b.errs, ErrConsumed{Name: b.ir.name})
	return true
}

// Compile validates the declared configuration and linearizes it into a
// runnable Program. The builder is consumed: further mutation or a second
// Compile is an error. All configuration errors surface here, never at run
// time.
func (b *Builder) Compile() (*Program, error) {
	if b.consumed {
		return nil, ErrConsumed{Name: b.ir.name}
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	b.consumed = true
	p := linearize(b.ir)
	b.log.Debug("compiled automaton",
		"name", b.ir.name,
		"states", len(p.plans),
		"events", len(b.ir.events))
	return p, nil
}

// Project validates the declared configuration and returns its read-only
// projection for exporters. Unlike Compile it does not consume the builder,
// so a configuration can be both rendered and compiled.
func (b *Builder) Project() (*Projection, error) {
	if b.consumed {
		return nil, ErrConsumed{Name: b.ir.name}
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	return project(b.ir), nil
}
