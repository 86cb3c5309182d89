package logo

import "strings"

// registerPredicates wires the type- and order-testing primitives of
// spec §4.6.
func registerPredicates(e *Env) {
	e.DefinePrimitive("NUMBERP", 1, primNumberp)
	e.DefinePrimitive("WORDP", 1, primWordp)
	e.DefinePrimitive("LISTP", 1, primListp)
	e.DefinePrimitive("ARRAYP", 1, primArrayp)
	e.DefinePrimitive("EMPTYP", 1, primEmptyp)
	e.DefinePrimitive("EQUALP", 2, primEqualp)
	e.DefinePrimitive("NOTEQUALP", 2, primNotEqualp)
	e.DefinePrimitive("LESSP", 2, primLessp)
	e.DefinePrimitive("GREATERP", 2, primGreaterp)
	e.DefinePrimitive("LESSEQUALP", 2, primLessEqualp)
	e.DefinePrimitive("GREATEREQUALP", 2, primGreaterEqualp)
	e.DefinePrimitive("MEMBERP", 2, primMemberp)
	e.DefinePrimitive("BEFOREP", 2, primBeforep)
	e.DefinePrimitive("SUBSTRINGP", 2, primSubstringp)
	e.DefinePrimitive("BACKSLASHEDP", 1, primBackslashedp)
}

func primNumberp(_ *Evaluator, args []Value, _ *Cursor) (Value, error) {
	w, ok := args[0].(Word)
	return BoolWord(ok && w.IsNumeric()), nil
}

func primWordp(_ *Evaluator, args []Value, _ *Cursor) (Value, error) {
	_, ok := args[0].(Word)
	return BoolWord(ok), nil
}

func primListp(_ *Evaluator, args []Value, _ *Cursor) (Value, error) {
	_, ok := args[0].(*List)
	return BoolWord(ok), nil
}

func primArrayp(_ *Evaluator, args []Value, _ *Cursor) (Value, error) {
	_, ok := args[0].(*Array)
	return BoolWord(ok), nil
}

func primEmptyp(_ *Evaluator, args []Value, _ *Cursor) (Value, error) {
	return BoolWord(IsEmpty(args[0])), nil
}

func primEqualp(_ *Evaluator, args []Value, _ *Cursor) (Value, error) {
	return BoolWord(Equal(args[0], args[1])), nil
}

func primNotEqualp(_ *Evaluator, args []Value, _ *Cursor) (Value, error) {
	return BoolWord(!Equal(args[0], args[1])), nil
}

func primLessp(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	a, b, err := twoNumbers(ev.Env, "LESSP", args)
	if err != nil {
		return nil, err
	}
	return BoolWord(a < b), nil
}

func primGreaterp(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	a, b, err := twoNumbers(ev.Env, "GREATERP", args)
	if err != nil {
		return nil, err
	}
	return BoolWord(a > b), nil
}

func primLessEqualp(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	a, b, err := twoNumbers(ev.Env, "LESSEQUALP", args)
	if err != nil {
		return nil, err
	}
	return BoolWord(a <= b), nil
}

func primGreaterEqualp(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	a, b, err := twoNumbers(ev.Env, "GREATEREQUALP", args)
	if err != nil {
		return nil, err
	}
	return BoolWord(a >= b), nil
}

func twoNumbers(e *Env, proc string, args []Value) (float64, float64, error) {
	a, ok := asNumber(args[0])
	if !ok {
		return 0, 0, e.TypeError("%s doesn't like %s as input", proc, Repr(args[0]))
	}
	b, ok := asNumber(args[1])
	if !ok {
		return 0, 0, e.TypeError("%s doesn't like %s as input", proc, Repr(args[1]))
	}
	return a, b, nil
}

// primMemberp reports whether item occurs in a list (by Equal) or as a
// substring in a word (spec §4.6 "MEMBERP works on words too").
func primMemberp(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	switch container := args[1].(type) {
	case *List:
		for _, it := range container.Items {
			if Equal(args[0], it) {
				return BoolWord(true), nil
			}
		}
		return BoolWord(false), nil
	case Word:
		item, ok := args[0].(Word)
		if !ok {
			return BoolWord(false), nil
		}
		return BoolWord(strings.Contains(string(container), string(item))), nil
	default:
		return nil, ev.Env.TypeError("MEMBERP expects a word or a list")
	}
}

// primBeforep implements BEFOREP, UCBLogo's lexicographic word order
// test used by sorting idioms (spec §4.6 ordering predicates).
func primBeforep(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	a, ok := args[0].(Word)
	if !ok {
		return nil, ev.Env.TypeError("BEFOREP expects words")
	}
	b, ok := args[1].(Word)
	if !ok {
		return nil, ev.Env.TypeError("BEFOREP expects words")
	}
	return BoolWord(string(a) < string(b)), nil
}

func primSubstringp(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	sub, ok := args[0].(Word)
	if !ok {
		return nil, ev.Env.TypeError("SUBSTRINGP expects words")
	}
	whole, ok := args[1].(Word)
	if !ok {
		return nil, ev.Env.TypeError("SUBSTRINGP expects words")
	}
	return BoolWord(strings.Contains(string(whole), string(sub))), nil
}

func primBackslashedp(_ *Evaluator, args []Value, _ *Cursor) (Value, error) {
	w, ok := args[0].(Word)
	if !ok {
		return BoolWord(false), nil
	}
	return BoolWord(strings.Contains(string(w), `\`)), nil
}
