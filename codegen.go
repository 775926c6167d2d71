package automaton // import "github.com/orkestr8/automaton"

import (
	"fmt"
	"io"
	"strings"
	"unicode"
)

// Param is one parameter of a generated procedure signature.
type Param struct {
	Name string
	Type string
}

// Signature describes the procedure to generate: its name and the parameters
// visible to every predicate, action and hook call in the body. The return
// type is void; the generated procedure has no hidden parameters.
type Signature struct {
	Name   string
	Params []Param
}

// Generate emits Go source for the configured automaton: an integer state
// constant block and one function with the requested signature containing
// the full dispatch loop. Like Project, it validates but does not consume
// the builder.
//
// The emitted body calls free functions the embedding package must provide,
// all taking the signature's parameters:
//
//	ev<Event>        event predicate, returns bool
//	do<State><Event> transition action (only emitted when one was registered)
//	do<State>Default default-transition action
//	enter<State>     entry hook (suffix 2, 3, ... for additional hooks)
//	exit<State>      exit hook (same suffix rule)
//	prologue         one-shot setup (only when set)
//	epilogue         one-shot teardown (only when set)
//
// The decision list per state is identical to Program.Run: interrupts in
// registration order, entry hooks, triggers in registration order, default,
// then a panic carrying the failure diagnostic.
func (b *Builder) Generate(w io.Writer, sig Signature) error {
	if b.consumed {
		return ErrConsumed{Name: b.ir.name}
	}
	if err := b.validate(); err != nil {
		return err
	}

	g := &sourceGen{ir: b.ir, w: &indentWriter{writer: w}, sig: sig}
	g.generate()
	return g.w.err
}

type sourceGen struct {
	ir  *ir
	w   *indentWriter
	sig Signature
}

func (g *sourceGen) generate() {
	r := g.ir
	sources := r.sources()

	g.w.writeIndent("// Code generated for automaton %q. DO NOT EDIT.\n\n", r.name)

	g.w.nest("const (\n")
	for i, s := range sources {
		if i == 0 {
			g.w.writeIndent("state%s = iota\n", ident(string(s)))
			continue
		}
		g.w.writeIndent("state%s\n", ident(string(s)))
	}
	g.w.unnest(")\n\n")

	g.w.writeIndent("func %s(", g.sig.Name)
	for i, p := range g.sig.Params {
		if i != 0 {
			g.w.write(", ")
		}
		g.w.write("%s %s", p.Name, p.Type)
	}
	g.w.nest(") {\n")

	if r.prologue != nil {
		g.w.writeIndent("prologue(%s)\n", g.args())
	}
	g.w.writeIndent("state := state%s\n", ident(string(r.initial)))

	g.w.write("loop:\n")
	g.w.nest("for {\n")
	g.w.writeIndent("switch state {\n")

	for _, s := range sources {
		g.w.nest("case state%s:\n", ident(string(s)))
		g.genState(s)
		g.w.unnestTo("")
	}

	g.w.writeIndent("}\n") // switch
	g.w.unnest("}\n")      // for
	if r.epilogue != nil {
		g.w.writeIndent("epilogue(%s)\n", g.args())
	}
	g.w.unnest("}\n")
}

// genState emits the ordered decision list for one state.
func (g *sourceGen) genState(s State) {
	r := g.ir

	for _, t := range r.interrupts[s] {
		g.w.nest("if ev%s(%s) {%s\n", ident(string(t.event)), g.args(), g.label(t.event))
		if t.action != nil {
			g.w.writeIndent("do%s%s(%s)\n", ident(string(s)), ident(string(t.event)), g.args())
		}
		g.genJump(t.target)
		g.w.unnest("}\n")
	}

	for i := range r.entry[s] {
		g.w.writeIndent("enter%s(%s)\n", hookIdent(string(s), i), g.args())
	}

	for _, t := range r.triggers[s] {
		g.w.nest("if ev%s(%s) {%s\n", ident(string(t.event)), g.args(), g.label(t.event))
		if t.action != nil {
			g.w.writeIndent("do%s%s(%s)\n", ident(string(s)), ident(string(t.event)), g.args())
		}
		g.genExitHooks(s)
		g.genJump(t.target)
		g.w.unnest("}\n")
	}

	if r.hasDefault[s] {
		t := r.defaults[s]
		if t.action != nil {
			g.w.writeIndent("do%sDefault(%s)\n", ident(string(s)), g.args())
		}
		g.genExitHooks(s)
		g.genJump(t.target)
		return
	}

	// Failure clause. The diagnostic is fixed at generation time; the panic
	// doubles as the unreachable-code hint.
	v := ContractViolation{
		Proc:       g.sig.Name,
		State:      s,
		Interrupts: transitionEvents(r.interrupts[s]),
		Triggers:   transitionEvents(r.triggers[s]),
	}
	g.w.writeIndent("panic(%q)\n", v.Error())
}

func (g *sourceGen) genExitHooks(s State) {
	for i := range g.ir.exit[s] {
		g.w.writeIndent("exit%s(%s)\n", hookIdent(string(s), i), g.args())
	}
}

func (g *sourceGen) genJump(target State) {
	if g.ir.isTerminal(target) {
		g.w.writeIndent("break loop\n")
		return
	}
	g.w.writeIndent("state = state%s\n", ident(string(target)))
	g.w.writeIndent("continue loop\n")
}

func (g *sourceGen) args() string {
	names := make([]string, len(g.sig.Params))
	for i, p := range g.sig.Params {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}

// label returns the event's textual predicate as a trailing comment.
func (g *sourceGen) label(e Event) string {
	if text, has := g.ir.predicates[e]; has {
		return " // " + text
	}
	return ""
}

func transitionEvents(list []transition) []Event {
	if len(list) == 0 {
		return nil
	}
	events := make([]Event, len(list))
	for i, t := range list {
		events[i] = t.event
	}
	return events
}

func hookIdent(s string, i int) string {
	if i == 0 {
		return ident(s)
	}
	return fmt.Sprintf("%s%d", ident(s), i+1)
}

// ident maps a state or event name onto a Go identifier fragment: words are
// title-cased, anything outside letters and digits is dropped.
func ident(name string) string {
	var sb strings.Builder
	upper := true
	for _, r := range name {
		switch {
		case unicode.IsLetter(r):
			if upper {
				r = unicode.ToUpper(r)
				upper = false
			}
			sb.WriteRune(r)
		case unicode.IsDigit(r):
			sb.WriteRune(r)
			upper = false
		default:
			upper = true
		}
	}
	return sb.String()
}

// indentWriter emits indented blocks of generated code. Errors are sticky
// and surface once at the end of generation.
type indentWriter struct {
	writer  io.Writer
	indents int
	err     error
}

func (w *indentWriter) write(format string, args ...interface{}) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.writer, format, args...)
}

func (w *indentWriter) writeIndent(format string, args ...interface{}) {
	w.write(strings.Repeat("\t", w.indents))
	w.write(format, args...)
}

func (w *indentWriter) nest(format string, args ...interface{}) {
	w.writeIndent(format, args...)
	w.indents++
}

func (w *indentWriter) unnest(format string, args ...interface{}) {
	w.indents--
	w.writeIndent(format, args...)
}

// unnestTo closes a nesting level without emitting a closer, for case arms.
func (w *indentWriter) unnestTo(format string, args ...interface{}) {
	w.indents--
	if format != "" {
		w.writeIndent(format, args...)
	}
}
