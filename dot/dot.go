// Package dot renders a finished automaton configuration as a Graphviz
// digraph. It is a pure projection consumer: it reads the automaton's
// Projection and never influences generation.
package dot

import (
	"fmt"
	"io"

	"github.com/orkestr8/automaton"
)

// Write emits a Graphviz digraph of the projected automaton.
//
// Interrupt arcs are drawn dashed and red, trigger arcs solid and labeled
// with the event's textual predicate, default arcs gray and unlabeled.
// States with no default transition are drawn with a doubled border and
// annotated "unreachable-terminating": if no interrupt or trigger matches
// there, the run ends in the failure clause.
func Write(w io.Writer, p *automaton.Projection) error {
	g := &graph{w: w}

	g.printf("digraph %q {\n", p.Name())
	g.printf("\trankdir=LR;\n")
	g.printf("\tnode [shape=ellipse];\n")

	g.printf("\t%q [shape=circle, style=bold];\n", p.Initial())
	g.printf("\t%q [shape=doublecircle];\n", p.Terminal())

	for _, s := range p.States() {
		if p.Terminating(s) {
			g.printf("\t%q [peripheries=2, xlabel=\"unreachable-terminating\"];\n", s)
		}
	}

	for _, s := range p.States() {
		for _, a := range p.Interrupts(s) {
			g.printf("\t%q -> %q [style=dashed, color=red, label=%q];\n",
				a.Source, a.Target, p.PredicateText(a.Event))
		}
		for _, a := range p.Triggers(s) {
			g.printf("\t%q -> %q [label=%q];\n",
				a.Source, a.Target, p.PredicateText(a.Event))
		}
		if a, has := p.Default(s); has {
			g.printf("\t%q -> %q [color=gray];\n", a.Source, a.Target)
		}
	}

	g.printf("}\n")
	return g.err
}

type graph struct {
	w   io.Writer
	err error
}

func (g *graph) printf(format string, args ...interface{}) {
	if g.err != nil {
		return
	}
	_, g.err = fmt.Fprintf(g.w, format, args...)
}
