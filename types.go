package automaton // import "github.com/orkestr8/automaton"

// State identifies a state by name. States are opaque identifiers; any state
// referenced by a registration (as source, target, or hook owner) joins the
// automaton's state set, regardless of registration order.
type State string

// Event names a boolean predicate. An event is implemented once and may gate
// any number of interrupts or triggers across states.
type Event string

// Predicate is the implementation of an event. It is called with the run
// environment passed to Program.Run and must not block: it sits on the
// dispatch hot path.
type Predicate func(env interface{}) bool

// Action is the code run when a transition fires, before the state changes.
type Action func(env interface{})

// Hook is a per-state entry/exit action, or the prologue/epilogue of a run.
// Entry hooks run once per state visit before trigger checks; exit hooks run
// once per matched trigger or default transition. Interrupt transitions
// bypass both.
type Hook func(env interface{})

// Arc is the read-only view of one transition, as seen through a Projection.
// Event is empty for default transitions.
type Arc struct {
	Source State
	Event  Event
	Target State

	// HasAction reports whether the transition carries an action. The action
	// itself is not exposed: projections are for rendering, not execution.
	HasAction bool
}

// Logger is the interface used by the module to log information. The
// compiled program itself never logs; only configuration and compilation do.
type Logger interface {
	Debug(string, ...interface{})
	Error(string, ...interface{})
	Info(string, ...interface{})
}

// transition is the IR-side record of one registered transition.
type transition struct {
	source State
	event  Event // empty for defaults
	target State
	action Action
}
