package logo

// registerVars wires the variable-binding primitives of spec §4.5:
// MAKE/LOCAL/LOCALMAKE/GLOBAL/THING/NAME.
func registerVars(e *Env) {
	e.DefinePrimitive("MAKE", 2, primMake)
	e.DefinePrimitive("LOCAL", 1, primLocal)
	e.DefinePrimitive("LOCALMAKE", 2, primLocalmake)
	e.DefinePrimitive("GLOBAL", 1, primGlobal)
	e.DefinePrimitive("THING", 1, primThing)
	e.DefinePrimitive("NAME", 2, primName)

	// REDEFP starts false, an ordinary global variable a program can
	// flip before redefining a primitive (spec §4.4).
	e.Global("REDEFP")
	e.Make("REDEFP", BoolWord(false))
}

func wordName(e *Env, v Value, proc string) (string, error) {
	w, ok := v.(Word)
	if !ok {
		return "", e.TypeError("%s expects a word name", proc)
	}
	name := string(w)
	if len(name) > 0 && name[0] == '"' {
		name = name[1:]
	}
	return name, nil
}

func primMake(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	name, err := wordName(ev.Env, args[0], "MAKE")
	if err != nil {
		return nil, err
	}
	ev.Env.Make(name, args[1])
	return nil, nil
}

func primLocal(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	name, err := wordName(ev.Env, args[0], "LOCAL")
	if err != nil {
		return nil, err
	}
	ev.Env.Local(name)
	return nil, nil
}

func primLocalmake(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	name, err := wordName(ev.Env, args[0], "LOCALMAKE")
	if err != nil {
		return nil, err
	}
	ev.Env.LocalMake(name, args[1])
	return nil, nil
}

func primGlobal(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	name, err := wordName(ev.Env, args[0], "GLOBAL")
	if err != nil {
		return nil, err
	}
	ev.Env.Global(name)
	return nil, nil
}

func primThing(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	name, err := wordName(ev.Env, args[0], "THING")
	if err != nil {
		return nil, err
	}
	return ev.Env.Lookup(name)
}

func primName(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	name, err := wordName(ev.Env, args[1], "NAME")
	if err != nil {
		return nil, err
	}
	ev.Env.Make(name, args[0])
	return nil, nil
}
