package logo

// registerIO wires the textual I/O primitives that delegate to the
// Stream contract (spec §6, SPEC_FULL.md §4).
func registerIO(e *Env) {
	e.DefinePrimitive("PRINT", 1, primPrint)
	e.DefinePrimitive("PR", 1, primPrint)
	e.DefinePrimitive("TYPE", 1, primType)
	e.DefinePrimitive("SHOW", 1, primShow)
	e.DefinePrimitive("READLIST", 0, primReadlist)
	e.DefinePrimitive("RL", 0, primReadlist)
	e.DefinePrimitive("READWORD", 0, primReadword)
	e.DefinePrimitive("RW", 0, primReadword)
	e.DefinePrimitive("CLEARTEXT", 0, primCleartext)
	e.DefinePrimitive("CT", 0, primCleartext)
}

// printRepr renders a value for PRINT/SHOW: a top-level list prints its
// items space-separated without the enclosing brackets, per UCBLogo's
// PRINT; SHOW always keeps the brackets.
func printRepr(v Value) string {
	if l, ok := v.(*List); ok {
		return ReprList(l.Items)
	}
	return Repr(v)
}

func primPrint(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	return nil, wrapHostError(ev.Env.stream.Write(printRepr(args[0]), "\n"), "PRINT")
}

func primType(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	return nil, wrapHostError(ev.Env.stream.Write(printRepr(args[0])), "TYPE")
}

func primShow(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	return nil, wrapHostError(ev.Env.stream.Write(Repr(args[0]), "\n"), "SHOW")
}

func primReadlist(ev *Evaluator, _ []Value, _ *Cursor) (Value, error) {
	w, err := ev.Env.stream.Read("")
	if err != nil {
		return nil, wrapHostError(err, "READLIST")
	}
	atoms, err := Tokenize(string(w))
	if err != nil {
		return nil, err
	}
	return &List{Items: atoms}, nil
}

func primReadword(ev *Evaluator, _ []Value, _ *Cursor) (Value, error) {
	w, err := ev.Env.stream.Read("")
	if err != nil {
		return nil, wrapHostError(err, "READWORD")
	}
	return w, nil
}

func primCleartext(ev *Evaluator, _ []Value, _ *Cursor) (Value, error) {
	return nil, wrapHostError(ev.Env.stream.Clear(), "CLEARTEXT")
}
