package automaton // import "github.com/orkestr8/automaton"

import (
	"fmt"
	"strings"
)

// ErrNoInitial is raised at compile time when no initial state was set
type ErrNoInitial struct {
	Name string
}

func (e ErrNoInitial) Error() string {
	return fmt.Sprintf("%s: no initial state set", e.Name)
}

// ErrNoTerminal is raised at compile time when no terminal state was designated
type ErrNoTerminal struct {
	Name string
}

func (e ErrNoTerminal) Error() string {
	return fmt.Sprintf("%s: no terminal state designated", e.Name)
}

// ErrUnknownState indicates a state referenced where a member of the state
// set is required (e.g. the initial state) that no registration ever added.
type ErrUnknownState struct {
	Name  string
	State State
}

func (e ErrUnknownState) Error() string {
	return fmt.Sprintf("%s: unknown state: %s", e.Name, e.State)
}

// ErrUnimplementedEvent is raised when a transition references an event with
// no registered predicate.
type ErrUnimplementedEvent struct {
	Name  string
	Event Event
	State State
}

func (e ErrUnimplementedEvent) Error() string {
	return fmt.Sprintf("%s: event %s referenced by state %s has no implementation", e.Name, e.Event, e.State)
}

// ErrNilPredicate is raised when an event is implemented with a nil predicate
type ErrNilPredicate struct {
	Name  string
	Event Event
}

func (e ErrNilPredicate) Error() string {
	return fmt.Sprintf("%s: nil predicate implementing event %s", e.Name, e.Event)
}

// ErrDuplicateTransition is raised when the same (state, event) key is
// registered twice within one transition class. Re-registration does not
// overwrite: duplicates are a configuration error.
type ErrDuplicateTransition struct {
	Name  string
	Kind  string // "interrupt", "trigger" or "default"
	State State
	Event Event
}

func (e ErrDuplicateTransition) Error() string {
	if e.Event == "" {
		return fmt.Sprintf("%s: duplicate %s transition for state %s", e.Name, e.Kind, e.State)
	}
	return fmt.Sprintf("%s: duplicate %s transition: state=%s, event=%s", e.Name, e.Kind, e.State, e.Event)
}

// ErrEmptyStates is raised when a registration names no source states
type ErrEmptyStates struct {
	Name string
	Op   string
}

func (e ErrEmptyStates) Error() string {
	return fmt.Sprintf("%s: %s: empty state list", e.Name, e.Op)
}

// ErrTerminalSource is raised when the terminal pseudo-state is used as a
// transition source or given entry/exit hooks. The terminal state ends the
// run; nothing dispatches from it.
type ErrTerminalSource struct {
	Name  string
	State State
}

func (e ErrTerminalSource) Error() string {
	return fmt.Sprintf("%s: terminal state %s used as a source", e.Name, e.State)
}

// ErrConsumed is raised when a builder is mutated or compiled again after
// compilation. The IR is consumed exactly once.
type ErrConsumed struct {
	Name string
}

func (e ErrConsumed) Error() string {
	return fmt.Sprintf("%s: builder already consumed by compilation", e.Name)
}

// ContractViolation is the failure clause of a compiled program: a state was
// reached where no interrupt, trigger or default transition fired. It is the
// panic value raised by Program.Run and names everything that was checked.
// There is no recovery path; the declared automaton was not exhaustive over
// its actual input and must be fixed.
type ContractViolation struct {
	Proc       string
	State      State
	Interrupts []Event
	Triggers   []Event
	HasDefault bool
}

func (e ContractViolation) Error() string {
	def := "none"
	if e.HasDefault {
		def = "present"
	}
	return fmt.Sprintf("%s: state %s: no transition fired (checked interrupts=[%s] triggers=[%s] default=%s)",
		e.Proc, e.State, joinEvents(e.Interrupts), joinEvents(e.Triggers), def)
}

func joinEvents(events []Event) string {
	names := make([]string, len(events))
	for i, ev := range events {
		names[i] = string(ev)
	}
	return strings.Join(names, " ")
}
