package automaton // import "github.com/orkestr8/automaton"

// validate performs the pre-generation checks: structural errors recorded
// during registration, initial/terminal designation, event implementations,
// and terminal misuse. Everything here fails before any dispatch code
// exists; nothing is deferred to run time.
func (b *Builder) validate() error {
	if len(b.errs) > 0 {
		return b.errs[0]
	}

	r := b.ir

	if !r.hasInitial {
		return ErrNoInitial{Name: r.name}
	}
	if !r.hasTerminal {
		return ErrNoTerminal{Name: r.name}
	}
	if r.isTerminal(r.initial) || !r.states[r.initial] {
		return ErrUnknownState{Name: r.name, State: r.initial}
	}

	// The terminal pseudo-state never dispatches: registering transitions
	// or hooks on it is a configuration bug.
	if t := r.terminal; len(r.interrupts[t]) > 0 || len(r.triggers[t]) > 0 || r.hasDefault[t] ||
		len(r.entry[t]) > 0 || len(r.exit[t]) > 0 {
		return ErrTerminalSource{Name: r.name, State: t}
	}

	for _, s := range r.sources() {
		for _, lists := range [][]transition{r.interrupts[s], r.triggers[s]} {
			for _, t := range lists {
				if _, has := r.events[t.event]; !has {
					return ErrUnimplementedEvent{Name: r.name, Event: t.event, State: s}
				}
			}
		}

		// Statically detectable gap: a state with no transitions at all can
		// only terminate through the failure clause. Legal, but worth a note.
		if len(r.interrupts[s]) == 0 && len(r.triggers[s]) == 0 && !r.hasDefault[s] {
			b.log.Debug("state has no transitions; reaching it will trip the failure clause",
				"automaton", r.name, "state", s)
		}
	}

	return nil
}
