package logo

import (
	"strings"
	"time"
)

// registerControl wires the special forms and control-structure
// primitives of spec §4.4 and §4.6: TO/DEFINE, IF family, REPEAT/
// FOREVER/FOR, WHILE/UNTIL/DO.WHILE/DO.UNTIL, AND/OR, CASE, RUN/
// RUNRESULT, and the non-local-exit primitives STOP/OUTPUT/BYE.
func registerControl(e *Env) {
	e.DefineSpecialForm("TO", primTo)
	e.DefinePrimitive("DEFINE", 2, primDefine)
	e.DefinePrimitive("DEF", 1, primDef)
	e.DefinePrimitive("ERASE", 1, primErase)

	e.DefinePrimitive("IF", 2, primIf)
	e.DefinePrimitive("IFELSE", 3, primIfElse)
	e.DefinePrimitive("TEST", 1, primTest)
	e.DefinePrimitive("IFT", 1, primIft)
	e.DefinePrimitive("IFF", 1, primIff)

	e.DefinePrimitive("REPEAT", 2, primRepeat)
	e.DefinePrimitive("FOREVER", 1, primForever)
	e.DefinePrimitive("FOR", 2, primFor)
	e.DefinePrimitive("#", 0, primRepcount)
	e.DefinePrimitive("REPCOUNT", 0, primRepcount)

	e.DefineNoEvalForm("WHILE", 2, primWhile)
	e.DefineNoEvalForm("UNTIL", 2, primUntil)
	e.DefineNoEvalForm("DO.WHILE", 2, primDoWhile)
	e.DefineNoEvalForm("DO.UNTIL", 2, primDoUntil)
	e.DefineNoEvalForm("AND", 2, primAnd)
	e.DefineNoEvalForm("OR", 2, primOr)

	e.DefinePrimitive("CASE", 2, primCase)

	e.DefinePrimitive("RUN", 1, primRun)
	e.DefinePrimitive("RUNRESULT", 1, primRunResult)

	e.DefinePrimitive("STOP", 0, primStop)
	e.DefinePrimitive("OUTPUT", 1, primOutput)
	e.DefinePrimitive("BYE", 0, primBye)
	e.DefinePrimitive("WAIT", 1, primWait)
}

// primTo implements the TO special form (spec §4.4): name, formals,
// body tokens up to END.
func primTo(ev *Evaluator, _ []Value, cur *Cursor) (Value, error) {
	e := ev.Env
	nameAtom, ok := cur.Next()
	if !ok {
		return nil, e.ParseError("TO needs a procedure name")
	}
	nameWord, ok := nameAtom.(Word)
	if !ok {
		return nil, e.ParseError("TO needs a procedure name")
	}
	name := strings.TrimPrefix(string(nameWord), `"`)

	rest := cur.Rest()
	inputs, bodyStart := parseToFormals(rest, 0)

	var body []Value
	i := bodyStart
	found := false
	for i < len(rest) {
		if isKeyword(e, rest[i], "END") {
			found = true
			break
		}
		body = append(body, rest[i])
		i++
	}
	if !found {
		return nil, e.ParseError("Expected 'END'")
	}
	// advance the real cursor past everything TO consumed, including END
	cur.pos += i + 1
	if err := e.DefineUserProcedure(name, inputs, body); err != nil {
		return nil, err
	}
	return nil, nil
}

// primDefine implements DEFINE name [formals body] (spec §4.4): it
// re-parses the body's bare words (stored as plain Word atoms inside
// the list) through the real lexer rules so operators/brackets inside
// the body text behave the same as if typed after TO.
func primDefine(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	e := ev.Env
	name, ok := args[0].(Word)
	if !ok {
		return nil, e.TypeError("DEFINE expects a word name")
	}
	spec, ok := args[1].(*List)
	if !ok || len(spec.Items) != 2 {
		return nil, e.TypeError("DEFINE expects a list of length 2")
	}
	formalsList, ok := spec.Items[0].(*List)
	if !ok {
		return nil, e.TypeError("DEFINE expects a list of formal names")
	}
	inputs := make([]string, 0, len(formalsList.Items))
	for _, f := range formalsList.Items {
		w, ok := f.(Word)
		if !ok {
			return nil, e.TypeError("DEFINE formals must be words")
		}
		inputs = append(inputs, strings.TrimPrefix(string(w), ":"))
	}
	bodyList, ok := spec.Items[1].(*List)
	if !ok {
		return nil, e.TypeError("DEFINE expects a list of body lines")
	}
	body, err := relexBareWords(bodyList.Items)
	if err != nil {
		return nil, err
	}
	if err := e.DefineUserProcedure(string(name), inputs, body); err != nil {
		return nil, err
	}
	return nil, nil
}

// relexBareWords re-tokenizes a list of bare Words (as stored by the
// lexer's bracket grouping, spec §4.2) back into real atoms, so
// unary-minus, operators, and nested brackets behave identically to
// source typed directly after TO.
func relexBareWords(items []Value) ([]Value, error) {
	return Tokenize(ReprList(items))
}

func primDef(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	e := ev.Env
	name, ok := args[0].(Word)
	if !ok {
		return nil, e.TypeError("DEF expects a word name")
	}
	r, ok := e.LookupRoutine(string(name))
	if !ok || !r.UserDefined {
		return nil, e.NameError("%s is not a procedure", string(name))
	}
	return Word(DefinitionText(string(name), r.Inputs, r.Body)), nil
}

func primErase(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	w, ok := args[0].(Word)
	if !ok {
		return nil, ev.Env.TypeError("ERASE expects a word name")
	}
	return nil, ev.Env.EraseProcedure(string(w))
}

// evalCondition implements the condition rule shared by IF/IFELSE/
// WHILE/UNTIL (spec §4.6): a pre-evaluated truthy/falsy word, or a list
// re-parsed and evaluated as an expression.
func (ev *Evaluator) evalCondition(v Value) (bool, error) {
	e := ev.Env
	if l, ok := v.(*List); ok {
		result, err := ev.EvalAtomsAsExpression(l.Items)
		if err != nil {
			return false, err
		}
		v = result
	}
	t, ok := Truthy(v)
	if !ok {
		return false, e.TypeError("{_PROC_} expects TRUE or FALSE, got %s", Repr(v))
	}
	return t, nil
}

func primIf(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	cond, err := ev.evalCondition(args[0])
	if err != nil {
		return nil, err
	}
	if !cond {
		return nil, nil
	}
	list, ok := args[1].(*List)
	if !ok {
		return nil, ev.Env.TypeError("IF expects a list")
	}
	return ev.RunList(list, false)
}

func primIfElse(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	cond, err := ev.evalCondition(args[0])
	if err != nil {
		return nil, err
	}
	branch := args[1]
	if !cond {
		branch = args[2]
	}
	list, ok := branch.(*List)
	if !ok {
		return nil, ev.Env.TypeError("IFELSE expects lists")
	}
	return ev.RunList(list, false)
}

func primTest(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	cond, err := ev.evalCondition(args[0])
	if err != nil {
		return nil, err
	}
	ev.Env.SetTest(cond)
	return nil, nil
}

func primIft(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	b, ok := ev.Env.Test()
	if !ok {
		return nil, ev.Env.DomainError("IFT used without TEST")
	}
	if !b {
		return nil, nil
	}
	list, ok := args[0].(*List)
	if !ok {
		return nil, ev.Env.TypeError("IFT expects a list")
	}
	return ev.RunList(list, false)
}

func primIff(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	b, ok := ev.Env.Test()
	if !ok {
		return nil, ev.Env.DomainError("IFF used without TEST")
	}
	if b {
		return nil, nil
	}
	list, ok := args[0].(*List)
	if !ok {
		return nil, ev.Env.TypeError("IFF expects a list")
	}
	return ev.RunList(list, false)
}

func primRepeat(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	e := ev.Env
	n, ok := asNumber(args[0])
	if !ok {
		return nil, e.TypeError("REPEAT expects a number")
	}
	body, ok := args[1].(*List)
	if !ok {
		return nil, e.TypeError("REPEAT expects a list")
	}
	e.PushRepcount()
	defer e.PopRepcount()
	for i := int64(0); i < int64(n); i++ {
		if e.ForceBye() {
			return nil, ByeSignal{}
		}
		if _, err := ev.RunList(body, false); err != nil {
			return nil, err
		}
		e.BumpRepcount()
		ev.yield()
	}
	return nil, nil
}

func primForever(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	e := ev.Env
	body, ok := args[0].(*List)
	if !ok {
		return nil, e.TypeError("FOREVER expects a list")
	}
	e.PushRepcount()
	defer e.PopRepcount()
	for {
		if e.ForceBye() {
			return nil, ByeSignal{}
		}
		if _, err := ev.RunList(body, false); err != nil {
			return nil, err
		}
		e.BumpRepcount()
		ev.yield()
	}
}

func primRepcount(ev *Evaluator, _ []Value, _ *Cursor) (Value, error) {
	return NumberWord(float64(ev.Env.Repcount())), nil
}

// primFor implements FOR [var start limit step?] body (spec §4.6): the
// control list's start/limit are evaluated once; step is re-evaluated
// from a saved copy of the remaining control tokens on every iteration
// if present, else defaults to sign(limit-start).
func primFor(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	e := ev.Env
	control, ok := args[0].(*List)
	if !ok || len(control.Items) < 3 {
		return nil, e.TypeError("FOR expects a control list [var start limit step?]")
	}
	body, ok := args[1].(*List)
	if !ok {
		return nil, e.TypeError("FOR expects a list body")
	}
	varName, ok := control.Items[0].(Word)
	if !ok {
		return nil, e.TypeError("FOR expects a variable name")
	}

	controlAtoms, err := relexBareWords(control.Items[1:])
	if err != nil {
		return nil, err
	}
	startCur := NewCursor(controlAtoms)
	startThunk, err := ev.ParseExpression(startCur)
	if err != nil {
		return nil, err
	}
	start, err := startThunk()
	if err != nil {
		return nil, err
	}
	limitThunk, err := ev.ParseExpression(startCur)
	if err != nil {
		return nil, err
	}
	limit, err := limitThunk()
	if err != nil {
		return nil, err
	}
	stepAtoms := startCur.Rest()

	startN, ok := asNumber(start)
	if !ok {
		return nil, e.TypeError("FOR expects numeric start")
	}
	limitN, ok := asNumber(limit)
	if !ok {
		return nil, e.TypeError("FOR expects numeric limit")
	}

	computeStep := func() (float64, error) {
		if len(stepAtoms) == 0 {
			if limitN > startN {
				return 1, nil
			} else if limitN < startN {
				return -1, nil
			}
			return 0, nil
		}
		stepCur := NewCursor(stepAtoms)
		stepThunk, err := ev.ParseExpression(stepCur)
		if err != nil {
			return 0, err
		}
		v, err := stepThunk()
		if err != nil {
			return 0, err
		}
		n, ok := asNumber(v)
		if !ok {
			return 0, e.TypeError("FOR expects a numeric step")
		}
		return n, nil
	}

	current := startN
	e.PushRepcount()
	defer e.PopRepcount()
	for {
		step, err := computeStep()
		if err != nil {
			return nil, err
		}
		if sign(current-limitN) == sign(step) {
			return nil, nil
		}
		e.Global(string(varName))
		e.Make(string(varName), NumberWord(current))
		if e.ForceBye() {
			return nil, ByeSignal{}
		}
		if _, err := ev.RunList(body, false); err != nil {
			return nil, err
		}
		e.BumpRepcount()
		current += step
		ev.yield()
	}
}

func sign(f float64) float64 {
	if f > 0 {
		return 1
	}
	if f < 0 {
		return -1
	}
	return 0
}

// conditionFromThunk evaluates a WHILE/UNTIL condition thunk per spec
// §4.6: "If the thunk returns a list, it is re-parsed and evaluated as
// an expression."
func (ev *Evaluator) conditionFromThunk(t Thunk) (bool, error) {
	v, err := t()
	if err != nil {
		return false, err
	}
	if l, ok := v.(*List); ok {
		v, err = ev.EvalAtomsAsExpression(l.Items)
		if err != nil {
			return false, err
		}
	}
	truth, ok := Truthy(v)
	if !ok {
		return false, ev.Env.TypeError("{_PROC_} expects TRUE or FALSE, got %s", Repr(v))
	}
	return truth, nil
}

func asThunk(v Value) (Thunk, bool) {
	t, ok := v.(Thunk)
	return t, ok
}

func loopBodyList(e *Env, v Value) (*List, error) {
	t, ok := asThunk(v)
	if !ok {
		return nil, e.TypeError("expected a deferred body")
	}
	bv, err := t()
	if err != nil {
		return nil, err
	}
	l, ok := bv.(*List)
	if !ok {
		return nil, e.TypeError("expected a list body")
	}
	return l, nil
}

func primWhile(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	return ev.runConditionalLoop(args, true, false)
}
func primUntil(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	return ev.runConditionalLoop(args, false, false)
}
func primDoWhile(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	return ev.runConditionalLoop(args, true, true)
}
func primDoUntil(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	return ev.runConditionalLoop(args, false, true)
}

// runConditionalLoop backs WHILE/UNTIL/DO.WHILE/DO.UNTIL. want is the
// truth value that keeps the loop running; doFirst makes it a
// do-while/do-until (body runs once unconditionally before the first
// test).
func (ev *Evaluator) runConditionalLoop(args []Value, want, doFirst bool) (Value, error) {
	e := ev.Env
	condThunk, ok := asThunk(args[0])
	if !ok {
		return nil, e.TypeError("expected a deferred condition")
	}
	body, err := loopBodyList(e, args[1])
	if err != nil {
		return nil, err
	}
	runOnce := func() error {
		if e.ForceBye() {
			return ByeSignal{}
		}
		_, err := ev.RunList(body, false)
		ev.yield()
		return err
	}
	if doFirst {
		if err := runOnce(); err != nil {
			return nil, err
		}
	}
	for {
		truth, err := ev.conditionFromThunk(condThunk)
		if err != nil {
			return nil, err
		}
		if truth != want {
			return nil, nil
		}
		if err := runOnce(); err != nil {
			return nil, err
		}
	}
}

// primAnd / primOr implement short-circuit evaluation over argument
// thunks (spec §4.6, §8 "Short-circuit AND/OR"): walk left to right,
// stopping at the first decisive result.
func primAnd(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	for _, a := range args {
		t, ok := asThunk(a)
		if !ok {
			return nil, ev.Env.TypeError("AND expects deferred arguments")
		}
		v, err := t()
		if err != nil {
			return nil, err
		}
		truth, ok := Truthy(v)
		if !ok {
			return nil, ev.Env.TypeError("AND expects TRUE or FALSE, got %s", Repr(v))
		}
		if !truth {
			return BoolWord(false), nil
		}
	}
	return BoolWord(true), nil
}

func primOr(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	for _, a := range args {
		t, ok := asThunk(a)
		if !ok {
			return nil, ev.Env.TypeError("OR expects deferred arguments")
		}
		v, err := t()
		if err != nil {
			return nil, err
		}
		truth, ok := Truthy(v)
		if !ok {
			return nil, ev.Env.TypeError("OR expects TRUE or FALSE, got %s", Repr(v))
		}
		if truth {
			return BoolWord(true), nil
		}
	}
	return BoolWord(false), nil
}

// primCase implements CASE value clauses (spec §4.6): each clause head
// is a list of candidates, or the keyword ELSE; first match wins.
func primCase(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	e := ev.Env
	value := args[0]
	clauses, ok := args[1].(*List)
	if !ok {
		return nil, e.TypeError("CASE expects a list of clauses")
	}
	for _, c := range clauses.Items {
		clause, ok := c.(*List)
		if !ok || len(clause.Items) < 2 {
			return nil, e.TypeError("CASE expects clauses of the form [candidates result]")
		}
		matched := false
		if isKeyword(e, clause.Items[0], "ELSE") {
			matched = true
		} else if candidates, ok := clause.Items[0].(*List); ok {
			for _, cand := range candidates.Items {
				if Equal(cand, value) {
					matched = true
					break
				}
			}
		}
		if matched {
			return ev.EvalAtomsAsExpression(clause.Items[1:])
		}
	}
	return nil, nil
}

func primRun(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	list, ok := args[0].(*List)
	if !ok {
		return nil, ev.Env.TypeError("RUN expects a list")
	}
	return ev.RunList(list, true)
}

// primRunResult implements RUNRESULT: returns [] or [value] depending
// on whether the run produced output (spec §4.6).
func primRunResult(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	list, ok := args[0].(*List)
	if !ok {
		return nil, ev.Env.TypeError("RUNRESULT expects a list")
	}
	result, err := ev.RunList(list, true)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return NewList(), nil
	}
	return NewList(result), nil
}

func primStop(ev *Evaluator, _ []Value, _ *Cursor) (Value, error) {
	return nil, StopSignal{}
}

func primOutput(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	return nil, &OutputSignal{Value: args[0]}
}

func primBye(ev *Evaluator, _ []Value, _ *Cursor) (Value, error) {
	return nil, ByeSignal{}
}

// primWait implements WAIT n, pausing n/60ths of a second (spec §4.6).
// It blocks the calling goroutine directly rather than going through the
// Turtle contract: waiting is a core timing primitive, not a graphics
// delegation, so it has no business touching the backend.
func primWait(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	n, ok := asNumber(args[0])
	if !ok {
		return nil, ev.Env.TypeError("WAIT expects a number")
	}
	time.Sleep(time.Duration(n/60.0*float64(time.Second)))
	return nil, nil
}
