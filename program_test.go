package automaton // import "github.com/orkestr8/automaton"

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// recorder is the run environment for these tests: predicate truth is looked
// up by event name, every action and hook appends to the trace.
type recorder struct {
	truth map[Event][]bool // per-event answers, consumed head first
	trace []string
}

func (r *recorder) ask(e Event) bool {
	answers := r.truth[e]
	if len(answers) == 0 {
		return false
	}
	r.truth[e] = answers[1:]
	return answers[0]
}

func (r *recorder) mark(s string) {
	r.trace = append(r.trace, s)
}

func when(e Event) Predicate {
	return func(env interface{}) bool { return env.(*recorder).ask(e) }
}

func mark(s string) func(interface{}) {
	return func(env interface{}) { env.(*recorder).mark(s) }
}

func TestPriorityLaw(t *testing.T) {

	// Both the interrupt and the trigger would match: the interrupt must
	// fire, and neither the entry nor the exit hook may run.
	b := New("priority").
		Initial("a").
		Terminal("end").
		Implement("irq", when("irq")).
		Implement("cond", when("cond")).
		OnEntry(mark("enter:a"), "a").
		OnExit(mark("exit:a"), "a").
		Interrupt("irq", "end", mark("irq-action"), "a").
		Trigger("cond", "end", mark("cond-action"), "a")

	p, err := b.Compile()
	require.NoError(t, err)

	env := &recorder{truth: map[Event][]bool{
		"irq":  {true},
		"cond": {true},
	}}
	p.Run(env)

	require.Equal(t, []string{"irq-action"}, env.trace)
}

func TestBypassLaw(t *testing.T) {

	// A trigger transition always runs entry hook before predicate checks
	// and exit hook after the action, before the state changes.
	b := New("bypass").
		Initial("a").
		Terminal("end").
		Implement("irq", when("irq")).
		Implement("cond", when("cond")).
		OnEntry(mark("enter:a"), "a").
		OnExit(mark("exit:a"), "a").
		OnEntry(mark("enter:b"), "b").
		OnExit(mark("exit:b"), "b").
		Interrupt("irq", "end", mark("irq-action"), "a", "b").
		Trigger("cond", "b", mark("cond-action"), "a").
		Steady("b")

	p, err := b.Compile()
	require.NoError(t, err)

	env := &recorder{truth: map[Event][]bool{
		"irq":  {false, true},
		"cond": {true},
	}}
	p.Run(env)

	require.Equal(t, []string{
		"enter:a", "cond-action", "exit:a", // trigger: entry, action, exit
		"irq-action", // interrupt in b: no enter:b, no exit:b
	}, env.trace)
}

func TestDefaultRunsExitHook(t *testing.T) {

	b := New("default").
		Initial("a").
		Terminal("end").
		Implement("irq", when("irq")).
		OnEntry(mark("enter:a"), "a").
		OnExit(mark("exit:a"), "a").
		Interrupt("irq", "end", nil, "a").
		Default("a", mark("default-action"), "a")

	p, err := b.Compile()
	require.NoError(t, err)

	env := &recorder{truth: map[Event][]bool{
		"irq": {false, true},
	}}
	p.Run(env)

	require.Equal(t, []string{"enter:a", "default-action", "exit:a"}, env.trace)
}

func TestTerminalShortCircuit(t *testing.T) {

	// A default transition into the terminal state ends the loop and runs
	// the epilogue exactly once.
	b := New("short").
		Initial("a").
		Terminal("end").
		Prologue(mark("prologue")).
		Epilogue(mark("epilogue")).
		OnExit(mark("exit:a"), "a").
		Default("end", mark("to-end"), "a")

	p, err := b.Compile()
	require.NoError(t, err)

	env := &recorder{}
	p.Run(env)

	require.Equal(t, []string{"prologue", "to-end", "exit:a", "epilogue"}, env.trace)
}

func TestRegistrationOrderWins(t *testing.T) {

	// Two triggers are true at once; the first registered fires.
	b := New("order").
		Initial("a").
		Terminal("end").
		Implement("first", when("first")).
		Implement("second", when("second")).
		Trigger("first", "end", mark("first-action"), "a").
		Trigger("second", "end", mark("second-action"), "a")

	p, err := b.Compile()
	require.NoError(t, err)

	env := &recorder{truth: map[Event][]bool{
		"first":  {true},
		"second": {true},
	}}
	p.Run(env)

	require.Equal(t, []string{"first-action"}, env.trace)
}

func TestFailureClause(t *testing.T) {

	// "a" has an interrupt and a trigger but no default: when neither
	// matches, the run must die loudly, naming everything it checked.
	b := New("gap").
		Initial("a").
		Terminal("end").
		Implement("irq", when("irq")).
		Implement("cond", when("cond")).
		Interrupt("irq", "end", nil, "a").
		Trigger("cond", "end", nil, "a")

	p, err := b.Compile()
	require.NoError(t, err)

	env := &recorder{}
	defer func() {
		v := recover()
		require.NotNil(t, v)
		violation, ok := v.(ContractViolation)
		require.True(t, ok)
		require.Equal(t, "gap", violation.Proc)
		require.Equal(t, State("a"), violation.State)
		require.Equal(t, []Event{"irq"}, violation.Interrupts)
		require.Equal(t, []Event{"cond"}, violation.Triggers)
		require.False(t, violation.HasDefault)
		require.Contains(t, violation.Error(), "state a")
		require.Contains(t, violation.Error(), "interrupts=[irq]")
	}()
	p.Run(env)
}

type benchEnv struct {
	steps int
}

func BenchmarkDispatch(b *testing.B) {

	machine := New("bench").
		Initial("a").
		Terminal("end").
		Implement("more", func(env interface{}) bool {
			e := env.(*benchEnv)
			e.steps--
			return e.steps >= 0
		}).
		Trigger("more", "b", nil, "a").
		Trigger("more", "a", nil, "b").
		Default("end", nil, "a", "b")

	p, err := machine.Compile()
	if err != nil {
		b.Fatal(err)
	}

	const steps = 1024
	env := &benchEnv{}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		env.steps = steps
		p.Run(env)
	}
}

func TestTotalityWithDefaults(t *testing.T) {

	// Every state has a default: no input pattern can reach the failure
	// clause, and the run ends only through the terminal interrupt.
	b := New("total").
		Initial("a").
		Terminal("end").
		Implement("stop", when("stop")).
		Implement("flip", when("flip")).
		Interrupt("stop", "end", nil, "a", "b").
		Trigger("flip", "b", nil, "a").
		Trigger("flip", "a", nil, "b").
		Steady("a", "b")

	p, err := b.Compile()
	require.NoError(t, err)

	env := &recorder{truth: map[Event][]bool{
		"stop": {false, false, false, false, true},
		"flip": {true, false, true, false},
	}}
	require.NotPanics(t, func() { p.Run(env) })
}
