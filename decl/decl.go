// Package decl is the declarative front end: it parses a YAML automaton
// document and desugars it into builder calls, in document order, so that
// transition priority stays an explicit property of the document. Event
// predicates and transition actions are tengo expressions over the
// document's declared input variables.
//
// The front end trades the core's zero-allocation guarantee for
// declarativeness: each predicate evaluation clones a compiled tengo script.
// Automata on a hot path should be configured through the builder API
// directly.
package decl

import (
	"fmt"
	"sort"

	"github.com/d5/tengo/v2"
	"gopkg.in/yaml.v3"

	"github.com/orkestr8/automaton"
)

// Env is the run environment for declared automata: the named input
// variables visible to every predicate and action. Actions may rebind
// variables; predicates should not.
type Env struct {
	Vars map[string]interface{}
}

// NewEnv returns an Env with the given variable bindings.
func NewEnv(vars map[string]interface{}) *Env {
	if vars == nil {
		vars = map[string]interface{}{}
	}
	return &Env{Vars: vars}
}

type document struct {
	Name     string            `yaml:"name"`
	Initial  string            `yaml:"initial"`
	Terminal string            `yaml:"terminal"`
	Vars     []string          `yaml:"vars"`
	Events   map[string]string `yaml:"events"`

	Interrupts []rule   `yaml:"interrupts"`
	Triggers   []rule   `yaml:"triggers"`
	Defaults   []rule   `yaml:"defaults"`
	Steady     []string `yaml:"steady"`
}

type rule struct {
	States []string `yaml:"states"`
	Event  string   `yaml:"event"`
	Target string   `yaml:"target"`
	Action string   `yaml:"action"`
}

// Load parses a YAML automaton document and replays it on a fresh Builder.
// The returned builder is ready to Compile, Project or Generate; all
// structural validation is left to the core.
func Load(data []byte) (*automaton.Builder, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decl: %w", err)
	}
	if doc.Name == "" {
		return nil, fmt.Errorf("decl: document has no automaton name")
	}

	b := automaton.New(doc.Name)
	if doc.Initial != "" {
		b.Initial(automaton.State(doc.Initial))
	}
	if doc.Terminal != "" {
		b.Terminal(automaton.State(doc.Terminal))
	}

	names := make([]string, 0, len(doc.Events))
	for name := range doc.Events {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		text := doc.Events[name]
		pred, err := compilePredicate(text, doc.Vars)
		if err != nil {
			return nil, fmt.Errorf("decl: %s: event %s: %w", doc.Name, name, err)
		}
		b.Implement(automaton.Event(name), pred)
		b.Label(automaton.Event(name), text)
	}

	for _, r := range doc.Interrupts {
		action, err := compileAction(r.Action, doc.Vars)
		if err != nil {
			return nil, fmt.Errorf("decl: %s: interrupt on %s: %w", doc.Name, r.Event, err)
		}
		b.Interrupt(automaton.Event(r.Event), automaton.State(r.Target), action, states(r.States)...)
	}
	for _, r := range doc.Triggers {
		action, err := compileAction(r.Action, doc.Vars)
		if err != nil {
			return nil, fmt.Errorf("decl: %s: trigger on %s: %w", doc.Name, r.Event, err)
		}
		b.Trigger(automaton.Event(r.Event), automaton.State(r.Target), action, states(r.States)...)
	}
	for _, r := range doc.Defaults {
		action, err := compileAction(r.Action, doc.Vars)
		if err != nil {
			return nil, fmt.Errorf("decl: %s: default to %s: %w", doc.Name, r.Target, err)
		}
		b.Default(automaton.State(r.Target), action, states(r.States)...)
	}
	if len(doc.Steady) > 0 {
		b.Steady(states(doc.Steady)...)
	}

	return b, nil
}

func states(names []string) []automaton.State {
	out := make([]automaton.State, len(names))
	for i, n := range names {
		out[i] = automaton.State(n)
	}
	return out
}

// resultVar holds the predicate result inside compiled scripts. Double
// underscores keep it out of the document's variable namespace.
const resultVar = "__res__"

func compilePredicate(text string, vars []string) (automaton.Predicate, error) {
	compiled, err := compile(resultVar+" := ("+text+")", vars)
	if err != nil {
		return nil, err
	}
	return func(env interface{}) bool {
		c := run(compiled, env.(*Env), vars, text)
		return c.Get(resultVar).Bool()
	}, nil
}

func compileAction(text string, vars []string) (automaton.Action, error) {
	if text == "" {
		return nil, nil
	}
	compiled, err := compile(text, vars)
	if err != nil {
		return nil, err
	}
	return func(env interface{}) {
		e := env.(*Env)
		c := run(compiled, e, vars, text)
		// Actions take effect by rebinding document variables.
		for _, name := range vars {
			e.Vars[name] = c.Get(name).Value()
		}
	}, nil
}

func compile(src string, vars []string) (*tengo.Compiled, error) {
	script := tengo.NewScript([]byte(src))
	for _, name := range vars {
		if err := script.Add(name, nil); err != nil {
			return nil, err
		}
	}
	return script.Compile()
}

// run evaluates a compiled script against the environment's bindings. A
// script failing at run time means the document's expressions were wrong for
// the actual inputs; like the core's failure clause, that is fatal.
func run(compiled *tengo.Compiled, e *Env, vars []string, text string) *tengo.Compiled {
	c := compiled.Clone()
	for _, name := range vars {
		if v, has := e.Vars[name]; has {
			if err := c.Set(name, v); err != nil {
				panic(fmt.Sprintf("decl: binding %s: %v", name, err))
			}
		}
	}
	if err := c.Run(); err != nil {
		panic(fmt.Sprintf("decl: evaluating %q: %v", text, err))
	}
	return c
}
