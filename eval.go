package logo

import (
	"math"
	"strings"
)

// Cursor is an index-advancing view over a shared atom slice (spec §9:
// "model this as an index-advancing cursor over an arena-allocated
// vector of atoms rather than a linked list"). Parsing a sub-expression
// just advances the same cursor a caller is holding — there is no
// separate "remaining tokens" allocation at each recursion level, unlike
// the teacher's langsam reader which re-slices args ([]Value) per call.
type Cursor struct {
	atoms []Value
	pos   int
}

// NewCursor wraps atoms for parsing.
func NewCursor(atoms []Value) *Cursor { return &Cursor{atoms: atoms} }

func (c *Cursor) AtEnd() bool { return c.pos >= len(c.atoms) }

func (c *Cursor) Peek() (Value, bool) {
	if c.AtEnd() {
		return nil, false
	}
	return c.atoms[c.pos], true
}

func (c *Cursor) PeekAt(off int) (Value, bool) {
	i := c.pos + off
	if i >= len(c.atoms) {
		return nil, false
	}
	return c.atoms[i], true
}

func (c *Cursor) Next() (Value, bool) {
	v, ok := c.Peek()
	if ok {
		c.pos++
	}
	return v, ok
}

// Rest returns every atom not yet consumed, the shape a Special form
// receives to parse for itself (spec §4.3).
func (c *Cursor) Rest() []Value { return c.atoms[c.pos:] }

// Thunk is a deferred computation: the evaluator builds one per parsed
// expression node instead of computing eagerly, per spec §4.3's
// "Deferred evaluation". In a host with real turtle animation a Thunk
// might suspend; in Go, suspension is just an ordinary blocking call
// inside the Thunk (see turtle.go) — no futures/promises needed, only
// the uniform (Value, error) result shape langsam's IsRuntimeException
// check plays the same role for.
type Thunk func() (Value, error)

// Evaluator drives expression parsing and procedure dispatch against one
// Env (spec §4.3). It is created fresh per top-level Run call but
// shares the Env across the whole program.
type Evaluator struct {
	Env *Env
}

// NewEvaluator builds an Evaluator over env.
func NewEvaluator(env *Env) *Evaluator { return &Evaluator{Env: env} }

func isInfixOp(v Value) bool {
	op, ok := v.(Op)
	if !ok {
		return false
	}
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv, OpMod, OpPow, OpEq, OpLt, OpGt, OpLe, OpGe, OpNe:
		return true
	}
	return false
}

// ParseExpression parses one Expression per the grammar in spec §4.3 and
// returns a Thunk for it. This is the lowest-precedence entry point
// (Expression := Relational).
func (ev *Evaluator) ParseExpression(cur *Cursor) (Thunk, error) {
	return ev.parseRelational(cur)
}

func (ev *Evaluator) parseRelational(cur *Cursor) (Thunk, error) {
	left, err := ev.parseAdditive(cur)
	if err != nil {
		return nil, err
	}
	for {
		op, ok := cur.Peek()
		if !ok {
			return left, nil
		}
		o, ok := op.(Op)
		if !ok || !isRelOp(o) {
			return left, nil
		}
		cur.Next()
		right, err := ev.parseAdditive(cur)
		if err != nil {
			return nil, err
		}
		left = relThunk(ev, o, left, right)
	}
}

func isRelOp(o Op) bool {
	switch o {
	case OpEq, OpLt, OpGt, OpLe, OpGe, OpNe:
		return true
	}
	return false
}

func relThunk(ev *Evaluator, op Op, lt, rt Thunk) Thunk {
	return func() (Value, error) {
		lv, err := lt()
		if err != nil {
			return nil, err
		}
		rv, err := rt()
		if err != nil {
			return nil, err
		}
		return applyRel(ev.Env, op, lv, rv)
	}
}

func applyRel(e *Env, op Op, lv, rv Value) (Value, error) {
	if op == OpEq {
		return BoolWord(Equal(lv, rv)), nil
	}
	if op == OpNe {
		return BoolWord(!Equal(lv, rv)), nil
	}
	ln, lok := asNumber(lv)
	rn, rok := asNumber(rv)
	if !lok || !rok {
		return nil, e.TypeError("{_PROC_}: expected number, got %s", Repr(pickNonNumeric(lv, rv, lok)))
	}
	switch op {
	case OpLt:
		return BoolWord(ln < rn), nil
	case OpGt:
		return BoolWord(ln > rn), nil
	case OpLe:
		return BoolWord(ln <= rn), nil
	case OpGe:
		return BoolWord(ln >= rn), nil
	}
	return nil, e.DomainError("unknown relational operator %s", string(op))
}

func pickNonNumeric(lv, rv Value, lok bool) Value {
	if !lok {
		return lv
	}
	return rv
}

func (ev *Evaluator) parseAdditive(cur *Cursor) (Thunk, error) {
	left, err := ev.parseMultiplicative(cur)
	if err != nil {
		return nil, err
	}
	for {
		op, ok := cur.Peek()
		if !ok {
			return left, nil
		}
		o, ok := op.(Op)
		if !ok || (o != OpAdd && o != OpSub) {
			return left, nil
		}
		cur.Next()
		right, err := ev.parseMultiplicative(cur)
		if err != nil {
			return nil, err
		}
		left = arithThunk(ev, o, left, right)
	}
}

func (ev *Evaluator) parseMultiplicative(cur *Cursor) (Thunk, error) {
	left, err := ev.parsePower(cur)
	if err != nil {
		return nil, err
	}
	for {
		op, ok := cur.Peek()
		if !ok {
			return left, nil
		}
		o, ok := op.(Op)
		if !ok || (o != OpMul && o != OpDiv && o != OpMod) {
			return left, nil
		}
		cur.Next()
		right, err := ev.parsePower(cur)
		if err != nil {
			return nil, err
		}
		left = arithThunk(ev, o, left, right)
	}
}

func (ev *Evaluator) parsePower(cur *Cursor) (Thunk, error) {
	left, err := ev.parseUnary(cur)
	if err != nil {
		return nil, err
	}
	op, ok := cur.Peek()
	if !ok {
		return left, nil
	}
	o, ok := op.(Op)
	if !ok || o != OpPow {
		return left, nil
	}
	cur.Next()
	// right-folding: repeated ^ re-enters Unary on the right side
	// (spec §4.3).
	right, err := ev.parsePower(cur)
	if err != nil {
		return nil, err
	}
	return arithThunk(ev, OpPow, left, right), nil
}

func (ev *Evaluator) parseUnary(cur *Cursor) (Thunk, error) {
	if v, ok := cur.Peek(); ok {
		if _, isUnary := v.(UnaryMinus); isUnary {
			cur.Next()
			inner, err := ev.parseUnary(cur)
			if err != nil {
				return nil, err
			}
			return negateThunk(ev.Env, inner), nil
		}
	}
	return ev.parseFinal(cur)
}

func negateThunk(e *Env, t Thunk) Thunk {
	return func() (Value, error) {
		v, err := t()
		if err != nil {
			return nil, err
		}
		n, ok := asNumber(v)
		if !ok {
			return nil, e.TypeError("{_PROC_}: expected number, got %s", Repr(v))
		}
		return NumberWord(-n), nil
	}
}

func arithThunk(ev *Evaluator, op Op, lt, rt Thunk) Thunk {
	return func() (Value, error) {
		lv, err := lt()
		if err != nil {
			return nil, err
		}
		rv, err := rt()
		if err != nil {
			return nil, err
		}
		return applyArith(ev.Env, op, lv, rv)
	}
}

func asNumber(v Value) (float64, bool) {
	w, ok := v.(Word)
	if !ok {
		return 0, false
	}
	return w.Number()
}

func applyArith(e *Env, op Op, lv, rv Value) (Value, error) {
	ln, lok := asNumber(lv)
	rn, rok := asNumber(rv)
	if !lok {
		return nil, e.TypeError("{_PROC_}: expected number, got %s", Repr(lv))
	}
	if !rok {
		return nil, e.TypeError("{_PROC_}: expected number, got %s", Repr(rv))
	}
	switch op {
	case OpAdd:
		return NumberWord(ln + rn), nil
	case OpSub:
		return NumberWord(ln - rn), nil
	case OpMul:
		return NumberWord(ln * rn), nil
	case OpDiv:
		if rn == 0 {
			return nil, e.DomainError("Division by zero")
		}
		return NumberWord(ln / rn), nil
	case OpMod:
		if rn == 0 {
			return nil, e.DomainError("Division by zero")
		}
		return NumberWord(math.Mod(ln, rn)), nil
	case OpPow:
		return NumberWord(math.Pow(ln, rn)), nil
	}
	return nil, e.DomainError("unknown arithmetic operator %s", string(op))
}

// parseFinal implements spec §4.3's Final production: literals,
// variable references, parenthesized forms, and procedure dispatch.
func (ev *Evaluator) parseFinal(cur *Cursor) (Thunk, error) {
	atom, ok := cur.Next()
	if !ok {
		return nil, ev.Env.ParseError("unexpected end of input, expected an expression")
	}
	switch v := atom.(type) {
	case Word:
		s := string(v)
		if strings.HasPrefix(s, `"`) {
			lit := Word(s[1:])
			return func() (Value, error) { return lit, nil }, nil
		}
		if strings.HasPrefix(s, ":") {
			name := s[1:]
			return func() (Value, error) { return ev.Env.Lookup(name) }, nil
		}
		if v.IsNumeric() {
			lit := v
			return func() (Value, error) { return lit, nil }, nil
		}
		return ev.dispatch(cur, s, NaturalArity)
	case *List:
		return func() (Value, error) { return v, nil }, nil
	case *Array:
		return func() (Value, error) { return v, nil }, nil
	case Op:
		if v == OpLParen {
			return ev.parseParenForm(cur)
		}
		return nil, ev.Env.ParseError("Couldn't parse: '%s'", string(v))
	default:
		return nil, ev.Env.ParseError("Couldn't parse: '%v'", v)
	}
}

// parseParenForm implements the two branches of spec §4.3 rule 3: an
// explicit-arity procedure call, or a parenthesized sub-expression.
func (ev *Evaluator) parseParenForm(cur *Cursor) (Thunk, error) {
	nameAtom, hasName := cur.Peek()
	if hasName {
		if w, ok := nameAtom.(Word); ok && !strings.HasPrefix(string(w), `"`) && !strings.HasPrefix(string(w), ":") {
			if _, known := ev.Env.LookupRoutine(string(w)); known {
				next, _ := cur.PeekAt(1)
				if !isInfixOp(next) {
					cur.Next() // consume name
					return ev.dispatch(cur, string(w), ExplicitArity)
				}
			}
		}
	}
	inner, err := ev.ParseExpression(cur)
	if err != nil {
		return nil, err
	}
	closing, ok := cur.Next()
	if !ok {
		return nil, ev.Env.ParseError("Expected ')'")
	}
	if op, ok := closing.(Op); !ok || op != OpRParen {
		return nil, ev.Env.ParseError("Expected ')'")
	}
	return inner, nil
}

// ArityMode tells dispatch how many argument expressions to parse.
type ArityMode int

const (
	NaturalArity ArityMode = iota
	ExplicitArity
)

// dispatch implements the dispatch protocol of spec §4.3: routine
// lookup, the "Need a space between X and N" diagnostic, and the four
// argument-reading strategies (special/noeval/natural/explicit).
func (ev *Evaluator) dispatch(cur *Cursor, name string, mode ArityMode) (Thunk, error) {
	e := ev.Env
	routine, ok := e.LookupRoutine(name)
	if !ok {
		if alt, n, stripped := stripTrailingDigits(name); stripped {
			if _, known := e.LookupRoutine(alt); known {
				return nil, e.NameError("Need a space between %s and %s", alt, n)
			}
		}
		return nil, e.NameError("I don't know how to %s", name)
	}

	if routine.Special {
		e.PushProc(routine.Name)
		v, err := routine.Primitive(ev, nil, cur)
		e.PopProc()
		if err != nil {
			return nil, err
		}
		return func() (Value, error) { return v, nil }, nil
	}

	var argThunks []Thunk
	if mode == ExplicitArity {
		for {
			next, ok := cur.Peek()
			if !ok {
				return nil, e.ParseError("Expected ')'")
			}
			if op, ok := next.(Op); ok && op == OpRParen {
				cur.Next()
				break
			}
			t, err := ev.ParseExpression(cur)
			if err != nil {
				return nil, err
			}
			argThunks = append(argThunks, t)
		}
	} else {
		for i := 0; i < routine.Arity; i++ {
			if cur.AtEnd() {
				return nil, e.ParseError("not enough inputs to %s", name)
			}
			t, err := ev.ParseExpression(cur)
			if err != nil {
				return nil, err
			}
			argThunks = append(argThunks, t)
		}
	}

	if routine.NoEval {
		return func() (Value, error) {
			e.PushProc(routine.Name)
			defer e.PopProc()
			return routine.Primitive(ev, thunksToValues(argThunks), nil)
		}, nil
	}

	if routine.UserDefined {
		return ev.callUserProcedure(routine, argThunks), nil
	}

	return func() (Value, error) {
		values := make([]Value, len(argThunks))
		for i, t := range argThunks {
			v, err := t()
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		e.PushProc(routine.Name)
		defer e.PopProc()
		return routine.Primitive(ev, values, nil)
	}, nil
}

// thunksToValues wraps Thunks as opaque Values (of type Thunk) for
// NoEval primitives, which re-invoke them on their own schedule (AND/OR
// short-circuiting, WHILE/UNTIL re-testing their condition).
func thunksToValues(thunks []Thunk) []Value {
	values := make([]Value, len(thunks))
	for i, t := range thunks {
		values[i] = t
	}
	return values
}

// stripTrailingDigits splits "FD90" into ("FD", "90", true); used for
// the "Need a space between X and N" diagnostic (spec §4.3).
func stripTrailingDigits(name string) (prefix, digits string, ok bool) {
	i := len(name)
	for i > 0 && name[i-1] >= '0' && name[i-1] <= '9' {
		i--
	}
	if i == len(name) || i == 0 {
		return "", "", false
	}
	return name[:i], name[i:], true
}

// callUserProcedure builds the Thunk that invokes a user-defined
// procedure: push a fresh scope frame, bind formals to evaluated actual
// arguments (missing args left unbound, extra args ignored, per spec
// §4.4), run the body, and translate OUTPUT/STOP signals into the call's
// result while letting BYE keep propagating.
func (ev *Evaluator) callUserProcedure(routine *Routine, argThunks []Thunk) Thunk {
	return func() (Value, error) {
		e := ev.Env
		values := make([]Value, len(argThunks))
		for i, t := range argThunks {
			v, err := t()
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		e.PushProc(routine.Name)
		e.PushFrame()
		for i, formal := range routine.Inputs {
			if i < len(values) {
				e.LocalMake(formal, values[i])
			} else {
				e.Local(formal)
			}
		}
		result, err := ev.RunBody(routine.Body)
		e.PopFrame()
		e.PopProc()
		if err != nil {
			switch sig := err.(type) {
			case *OutputSignal:
				return sig.Value, nil
			case StopSignal:
				return nil, nil
			default:
				return nil, err // ByeSignal or *LogoError keep propagating
			}
		}
		return result, nil
	}
}

// RunBody executes a procedure body or bracketed statement list as a
// statement sequence (spec §4.7), yielding between statements. It is a
// thin wrapper over the driver's RunSequence with returnResult=false,
// since a body produces its value only via OUTPUT/STOP, never by a bare
// expression at the end.
func (ev *Evaluator) RunBody(body []Value) (Value, error) {
	return ev.RunSequence(body, false)
}

// EvalAtomsAsExpression parses and forces a single expression from a raw
// atom slice — the shape IF/WHILE/CASE use when a condition or clause
// arrives as a *List that must be "re-parsed and evaluated as an
// expression" rather than run as a statement sequence (spec §4.6).
func (ev *Evaluator) EvalAtomsAsExpression(atoms []Value) (Value, error) {
	relexed, err := relexBareWords(atoms)
	if err != nil {
		return nil, err
	}
	cur := NewCursor(relexed)
	t, err := ev.ParseExpression(cur)
	if err != nil {
		return nil, err
	}
	return t()
}
