package logo

import "strings"

// registerWordsLists wires word- and list-construction/deconstruction
// primitives (spec §4.6).
func registerWordsLists(e *Env) {
	e.DefinePrimitive("WORD", 2, primWord)
	e.DefinePrimitive("LIST", 2, primList2)
	e.DefinePrimitive("SENTENCE", 2, primSentence)
	e.DefinePrimitive("FPUT", 2, primFput)
	e.DefinePrimitive("LPUT", 2, primLput)
	e.DefinePrimitive("COMBINE", 2, primCombine)
	e.DefinePrimitive("FIRST", 1, primFirst)
	e.DefinePrimitive("LAST", 1, primLast)
	e.DefinePrimitive("BUTFIRST", 1, primButfirst)
	e.DefinePrimitive("BUTLAST", 1, primButlast)
	e.DefinePrimitive("ITEM", 2, primItem)
	e.DefinePrimitive("COUNT", 1, primCount)
	e.DefinePrimitive("FIRSTS", 1, primFirsts)
	e.DefinePrimitive("BUTFIRSTS", 1, primButfirsts)
	e.DefinePrimitive(".SETFIRST", 2, primSetfirst)
	e.DefinePrimitive(".SETBF", 2, primSetbf)
	e.DefinePrimitive("REVERSE", 1, primReverse)
	e.DefinePrimitive("UPPERCASE", 1, primUppercase)
	e.DefinePrimitive("LOWERCASE", 1, primLowercase)
	e.DefinePrimitive("ASCII", 1, primAscii)
	e.DefinePrimitive("CHAR", 1, primChar)
}

func primWord(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	a, ok := args[0].(Word)
	if !ok {
		return nil, ev.Env.TypeError("WORD doesn't like %s as input", Repr(args[0]))
	}
	b, ok := args[1].(Word)
	if !ok {
		return nil, ev.Env.TypeError("WORD doesn't like %s as input", Repr(args[1]))
	}
	return Word(string(a) + string(b)), nil
}

func primList2(_ *Evaluator, args []Value, _ *Cursor) (Value, error) {
	return NewList(args[0], args[1]), nil
}

// primSentence flattens one level of list structure into its result,
// the way UCBLogo's SENTENCE differs from LIST (spec §4.6).
func primSentence(_ *Evaluator, args []Value, _ *Cursor) (Value, error) {
	var items []Value
	for _, a := range args {
		if l, ok := a.(*List); ok {
			items = append(items, l.Items...)
		} else {
			items = append(items, a)
		}
	}
	return &List{Items: items}, nil
}

func primFput(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	switch container := args[1].(type) {
	case *List:
		items := make([]Value, 0, len(container.Items)+1)
		items = append(items, args[0])
		items = append(items, container.Items...)
		return &List{Items: items}, nil
	case Word:
		item, ok := args[0].(Word)
		if !ok {
			return nil, ev.Env.TypeError("FPUT doesn't like %s as input", Repr(args[0]))
		}
		return Word(string(item) + string(container)), nil
	default:
		return nil, ev.Env.TypeError("FPUT expects a word or a list")
	}
}

func primLput(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	switch container := args[1].(type) {
	case *List:
		items := make([]Value, 0, len(container.Items)+1)
		items = append(items, container.Items...)
		items = append(items, args[0])
		return &List{Items: items}, nil
	case Word:
		item, ok := args[0].(Word)
		if !ok {
			return nil, ev.Env.TypeError("LPUT doesn't like %s as input", Repr(args[0]))
		}
		return Word(string(container) + string(item)), nil
	default:
		return nil, ev.Env.TypeError("LPUT expects a word or a list")
	}
}

// primCombine is FPUT when the second input is a word, SENTENCE-like
// concatenation when it's a list — UCBLogo's COMBINE.
func primCombine(ev *Evaluator, args []Value, c *Cursor) (Value, error) {
	if _, ok := args[1].(*List); ok {
		return primSentence(ev, args, c)
	}
	return primFput(ev, args, c)
}

func primFirst(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	switch v := args[0].(type) {
	case Word:
		if v == "" {
			return nil, ev.Env.DomainError("FIRST expects a non-empty word")
		}
		r := []rune(string(v))
		return Word(string(r[0])), nil
	case *List:
		if len(v.Items) == 0 {
			return nil, ev.Env.DomainError("FIRST expects a non-empty list")
		}
		return v.Items[0], nil
	default:
		return nil, ev.Env.TypeError("FIRST expects a word or a list")
	}
}

func primLast(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	switch v := args[0].(type) {
	case Word:
		if v == "" {
			return nil, ev.Env.DomainError("LAST expects a non-empty word")
		}
		r := []rune(string(v))
		return Word(string(r[len(r)-1])), nil
	case *List:
		if len(v.Items) == 0 {
			return nil, ev.Env.DomainError("LAST expects a non-empty list")
		}
		return v.Items[len(v.Items)-1], nil
	default:
		return nil, ev.Env.TypeError("LAST expects a word or a list")
	}
}

func primButfirst(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	switch v := args[0].(type) {
	case Word:
		if v == "" {
			return nil, ev.Env.DomainError("BUTFIRST expects a non-empty word")
		}
		r := []rune(string(v))
		return Word(string(r[1:])), nil
	case *List:
		if len(v.Items) == 0 {
			return nil, ev.Env.DomainError("BUTFIRST expects a non-empty list")
		}
		items := make([]Value, len(v.Items)-1)
		copy(items, v.Items[1:])
		return &List{Items: items}, nil
	default:
		return nil, ev.Env.TypeError("BUTFIRST expects a word or a list")
	}
}

func primButlast(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	switch v := args[0].(type) {
	case Word:
		if v == "" {
			return nil, ev.Env.DomainError("BUTLAST expects a non-empty word")
		}
		r := []rune(string(v))
		return Word(string(r[:len(r)-1])), nil
	case *List:
		if len(v.Items) == 0 {
			return nil, ev.Env.DomainError("BUTLAST expects a non-empty list")
		}
		items := make([]Value, len(v.Items)-1)
		copy(items, v.Items[:len(v.Items)-1])
		return &List{Items: items}, nil
	default:
		return nil, ev.Env.TypeError("BUTLAST expects a word or a list")
	}
}

// primItem reads the n'th element (1-based for words/lists, origin-based
// for arrays, spec §3 array origin).
func primItem(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	n, ok := asNumber(args[0])
	if !ok {
		return nil, ev.Env.TypeError("ITEM expects a number")
	}
	idx := int(n)
	switch v := args[1].(type) {
	case Word:
		r := []rune(string(v))
		if idx < 1 || idx > len(r) {
			return nil, ev.Env.DomainError("ITEM index out of range")
		}
		return Word(string(r[idx-1])), nil
	case *List:
		if idx < 1 || idx > len(v.Items) {
			return nil, ev.Env.DomainError("ITEM index out of range")
		}
		return v.Items[idx-1], nil
	case *Array:
		i := idx - v.Origin
		if i < 0 || i >= len(v.Items) {
			return nil, ev.Env.DomainError("ITEM index out of range")
		}
		return v.Items[i], nil
	default:
		return nil, ev.Env.TypeError("ITEM expects a word, list, or array")
	}
}

func primCount(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	switch v := args[0].(type) {
	case Word:
		return NumberWord(float64(len([]rune(string(v))))), nil
	case *List:
		return NumberWord(float64(len(v.Items))), nil
	case *Array:
		return NumberWord(float64(len(v.Items))), nil
	default:
		return nil, ev.Env.TypeError("COUNT expects a word, list, or array")
	}
}

// primFirsts/primButfirsts map FIRST/BUTFIRST across a list of words or
// lists, per UCBLogo's FIRSTS/BUTFIRSTS list-of-lists transpose helpers.
func primFirsts(ev *Evaluator, args []Value, c *Cursor) (Value, error) {
	l, ok := args[0].(*List)
	if !ok {
		return nil, ev.Env.TypeError("FIRSTS expects a list")
	}
	items := make([]Value, len(l.Items))
	for i, it := range l.Items {
		v, err := primFirst(ev, []Value{it}, c)
		if err != nil {
			return nil, err
		}
		items[i] = v
	}
	return &List{Items: items}, nil
}

func primButfirsts(ev *Evaluator, args []Value, c *Cursor) (Value, error) {
	l, ok := args[0].(*List)
	if !ok {
		return nil, ev.Env.TypeError("BUTFIRSTS expects a list")
	}
	items := make([]Value, len(l.Items))
	for i, it := range l.Items {
		v, err := primButfirst(ev, []Value{it}, c)
		if err != nil {
			return nil, err
		}
		items[i] = v
	}
	return &List{Items: items}, nil
}

// primSetfirst/primSetbf mutate a list in place through its existing
// pointer identity (spec §3 "Lists are always referenced through a
// pointer" — the aliasing invariant these two low-level primitives rely
// on and every higher FPUT-style rebuild deliberately avoids).
func primSetfirst(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	l, ok := args[0].(*List)
	if !ok || len(l.Items) == 0 {
		return nil, ev.Env.DomainError(".SETFIRST expects a non-empty list")
	}
	l.Items[0] = args[1]
	return nil, nil
}

func primSetbf(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	l, ok := args[0].(*List)
	if !ok || len(l.Items) == 0 {
		return nil, ev.Env.DomainError(".SETBF expects a non-empty list")
	}
	rest, ok := args[1].(*List)
	if !ok {
		return nil, ev.Env.TypeError(".SETBF expects a list")
	}
	l.Items = append(l.Items[:1:1], rest.Items...)
	return nil, nil
}

func primReverse(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	l, ok := args[0].(*List)
	if !ok {
		return nil, ev.Env.TypeError("REVERSE expects a list")
	}
	items := make([]Value, len(l.Items))
	for i, v := range l.Items {
		items[len(items)-1-i] = v
	}
	return &List{Items: items}, nil
}

func primUppercase(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	w, ok := args[0].(Word)
	if !ok {
		return nil, ev.Env.TypeError("UPPERCASE expects a word")
	}
	return Word(strings.ToUpper(string(w))), nil
}

func primLowercase(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	w, ok := args[0].(Word)
	if !ok {
		return nil, ev.Env.TypeError("LOWERCASE expects a word")
	}
	return Word(strings.ToLower(string(w))), nil
}

func primAscii(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	w, ok := args[0].(Word)
	if !ok || len(w) == 0 {
		return nil, ev.Env.DomainError("ASCII expects a one-character word")
	}
	r := []rune(string(w))
	return NumberWord(float64(r[0])), nil
}

func primChar(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	n, ok := asNumber(args[0])
	if !ok {
		return nil, ev.Env.TypeError("CHAR expects a number")
	}
	return Word(string(rune(int(n)))), nil
}
