package decl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const phasesDoc = `
name: phases
initial: Liquid
terminal: Exit
vars: [t, n, freezes]
events:
  Over100: t > 100.0
  Between0and100: t >= 0.0 && t <= 100.0
  Below0: t < 0.0
  OutOfInput: n <= 0
interrupts:
  - states: [Solid, Liquid, Gas]
    event: OutOfInput
    target: Exit
triggers:
  - states: [Liquid]
    event: Over100
    target: Gas
  - states: [Liquid]
    event: Below0
    target: Solid
    action: |
      freezes += 1
      n -= 1
  - states: [Solid]
    event: Between0and100
    target: Liquid
    action: "n -= 1"
steady: [Solid, Liquid, Gas]
`

func TestLoadCompilesAndRuns(t *testing.T) {

	b, err := Load([]byte(phasesDoc))
	require.NoError(t, err)

	p, err := b.Compile()
	require.NoError(t, err)
	require.Equal(t, "phases", p.Name())

	// A single freezing input: Liquid freezes to Solid (consuming it), then
	// the exhaustion interrupt ends the run from Solid.
	env := NewEnv(map[string]interface{}{
		"t":       -7.7,
		"n":       1,
		"freezes": 0,
	})
	p.Run(env)

	require.Equal(t, 1, toInt(env.Vars["freezes"]))
	require.Equal(t, 0, toInt(env.Vars["n"]))
}

func TestLoadLabels(t *testing.T) {

	b, err := Load([]byte(phasesDoc))
	require.NoError(t, err)

	proj, err := b.Project()
	require.NoError(t, err)
	require.Equal(t, "t < 0.0", proj.PredicateText("Below0"))

	// Every declared state carries a steady default.
	require.False(t, proj.Terminating("Gas"))
}

func TestLoadBadExpression(t *testing.T) {

	doc := `
name: broken
initial: a
terminal: end
vars: [t]
events:
  Bad: "t >"
interrupts:
  - states: [a]
    event: Bad
    target: end
`
	_, err := Load([]byte(doc))
	require.Error(t, err)
	require.Contains(t, err.Error(), "Bad")
}

func TestLoadMissingName(t *testing.T) {

	_, err := Load([]byte("initial: a\nterminal: end\n"))
	require.Error(t, err)
}

func TestLoadStructuralErrorsSurfaceAtCompile(t *testing.T) {

	// Valid YAML, incomplete automaton: the core validation rejects it.
	doc := `
name: headless
terminal: end
vars: [n]
events:
  Done: n <= 0
interrupts:
  - states: [a]
    event: Done
    target: end
`
	b, err := Load([]byte(doc))
	require.NoError(t, err)

	_, err = b.Compile()
	require.Error(t, err)
}

func TestLoadActionRebindsVars(t *testing.T) {

	doc := `
name: counter
initial: run
terminal: end
vars: [n, count]
events:
  More: n > 0
  Done: n <= 0
interrupts:
  - states: [run]
    event: Done
    target: end
triggers:
  - states: [run]
    event: More
    target: run
    action: |
      count += 1
      n -= 1
`
	b, err := Load([]byte(doc))
	require.NoError(t, err)

	p, err := b.Compile()
	require.NoError(t, err)

	env := NewEnv(map[string]interface{}{"n": 3, "count": 0})
	p.Run(env)

	require.Equal(t, 0, toInt(env.Vars["n"]))
	require.Equal(t, 3, toInt(env.Vars["count"]))
}

func toInt(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	default:
		return -1
	}
}
