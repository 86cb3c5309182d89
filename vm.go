package logo

// NewInterpreter builds an Env with every core primitive registered
// (spec §3/§4/§6), the way the teacher's NewVM wires langsam's builtin
// module into a fresh *Map (langsam.go NewVM). Turtle/Stream/save-hook
// backends default to no-ops until an embedder supplies them via opts.
func NewInterpreter(opts ...EnvOption) *Env {
	e := NewEnv(opts...)
	RegisterCore(e)
	return e
}

// RegisterCore registers every primitive and special form the core
// defines directly. Turtle/stream delegation primitives are registered
// unconditionally — they work against the NullTurtle/NullStream default
// just as well as a real backend (spec §6).
func RegisterCore(e *Env) {
	registerControl(e)
	registerArith(e)
	registerPredicates(e)
	registerWordsLists(e)
	registerArrays(e)
	registerVars(e)
	registerWorkspace(e)
	registerIO(e)
	registerTurtle(e)
}
