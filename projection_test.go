package automaton // import "github.com/orkestr8/automaton"

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProjection(t *testing.T) {

	b := New("doors").
		Initial("closed").
		Terminal("done").
		Implement("abort", when("abort")).
		Implement("badge", when("badge")).
		Label("badge", "badge.valid").
		Interrupt("abort", "done", nil, "closed", "open").
		Trigger("badge", "open", mark("admit"), "closed").
		Steady("closed")

	proj, err := b.Project()
	require.NoError(t, err)

	require.Equal(t, "doors", proj.Name())
	require.Equal(t, State("closed"), proj.Initial())
	require.Equal(t, State("done"), proj.Terminal())
	require.Equal(t, []State{"closed", "open"}, proj.States())

	require.Equal(t, []Arc{
		{Source: "closed", Event: "abort", Target: "done"},
	}, proj.Interrupts("closed"))

	require.Equal(t, []Arc{
		{Source: "closed", Event: "badge", Target: "open", HasAction: true},
	}, proj.Triggers("closed"))

	def, has := proj.Default("closed")
	require.True(t, has)
	require.Equal(t, State("closed"), def.Target)

	// "open" has no default: it can only leave through its interrupt, so an
	// exporter should mark it unreachable-terminating.
	require.True(t, proj.Terminating("open"))
	require.False(t, proj.Terminating("closed"))

	require.Equal(t, "badge.valid", proj.PredicateText("badge"))
	require.Equal(t, "abort", proj.PredicateText("abort"))
}

func TestProjectionIsACopy(t *testing.T) {

	b := New("copy").
		Initial("a").
		Terminal("end").
		Implement("stop", when("stop")).
		Interrupt("stop", "end", nil, "a")

	proj, err := b.Project()
	require.NoError(t, err)

	// Projection survives builder consumption, and mutating what it returns
	// does not touch its own view.
	_, err = b.Compile()
	require.NoError(t, err)

	arcs := proj.Interrupts("a")
	arcs[0].Target = "elsewhere"
	require.Equal(t, State("end"), proj.Interrupts("a")[0].Target)

	states := proj.States()
	states[0] = "mutated"
	require.Equal(t, []State{"a"}, proj.States())
}
