package logo

// registerArrays wires array construction and in-place mutation
// primitives (spec §3 Array, §4.6).
func registerArrays(e *Env) {
	e.DefinePrimitive("ARRAY", 1, primArray)
	e.DefinePrimitive("LISTTOARRAY", 1, primListToArray)
	e.DefinePrimitive("ARRAYTOLIST", 1, primArrayToList)
	e.DefinePrimitive("SETITEM", 3, primSetItem)
	e.DefinePrimitive("MDARRAY", 1, primMdArray)
	e.DefinePrimitive("MDSETITEM", 3, primMdSetItem)
}

func primArray(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	n, ok := asNumber(args[0])
	if !ok || n < 0 {
		return nil, ev.Env.TypeError("ARRAY expects a non-negative size")
	}
	return NewArray(int(n), 1), nil
}

func primListToArray(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	l, ok := args[0].(*List)
	if !ok {
		return nil, ev.Env.TypeError("LISTTOARRAY expects a list")
	}
	items := make([]Value, len(l.Items))
	copy(items, l.Items)
	return &Array{Items: items, Origin: 1}, nil
}

func primArrayToList(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	a, ok := args[0].(*Array)
	if !ok {
		return nil, ev.Env.TypeError("ARRAYTOLIST expects an array")
	}
	items := make([]Value, len(a.Items))
	copy(items, a.Items)
	return &List{Items: items}, nil
}

// primSetItem mutates an array slot in place. It refuses to store the
// array into one of its own slots, the circular-reference invariant
// spec §3 calls out, detected via value.go's ContainsArray.
func primSetItem(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	n, ok := asNumber(args[0])
	if !ok {
		return nil, ev.Env.TypeError("SETITEM expects a number")
	}
	a, ok := args[1].(*Array)
	if !ok {
		return nil, ev.Env.TypeError("SETITEM expects an array")
	}
	i := int(n) - a.Origin
	if i < 0 || i >= len(a.Items) {
		return nil, ev.Env.DomainError("SETITEM index out of range")
	}
	if ContainsArray(args[2], a, nil) {
		return nil, ev.Env.DomainError("SETITEM can't store an array inside itself")
	}
	a.Items[i] = args[2]
	return nil, nil
}

// primMdArray builds a multi-dimensional array as nested *Array values,
// one dimension per entry in the size list (spec §3 generalizes Array
// to "possibly multi-dimensional"; UCBLogo represents this as arrays of
// arrays, which is what we do here too).
func primMdArray(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	dims, ok := args[0].(*List)
	if !ok || len(dims.Items) == 0 {
		return nil, ev.Env.TypeError("MDARRAY expects a list of dimension sizes")
	}
	return buildMdArray(ev.Env, dims.Items)
}

func buildMdArray(e *Env, dims []Value) (*Array, error) {
	n, ok := asNumber(dims[0])
	if !ok || n < 0 {
		return nil, e.TypeError("MDARRAY expects non-negative dimension sizes")
	}
	arr := NewArray(int(n), 1)
	if len(dims) == 1 {
		return arr, nil
	}
	for i := range arr.Items {
		sub, err := buildMdArray(e, dims[1:])
		if err != nil {
			return nil, err
		}
		arr.Items[i] = sub
	}
	return arr, nil
}

// primMdSetItem walks a list of indices through nested arrays before
// delegating the final SETITEM, spec §3's multi-dimensional access path.
func primMdSetItem(ev *Evaluator, args []Value, c *Cursor) (Value, error) {
	idxList, ok := args[0].(*List)
	if !ok || len(idxList.Items) == 0 {
		return nil, ev.Env.TypeError("MDSETITEM expects a list of indices")
	}
	arr, ok := args[1].(*Array)
	if !ok {
		return nil, ev.Env.TypeError("MDSETITEM expects an array")
	}
	cur := arr
	for _, idx := range idxList.Items[:len(idxList.Items)-1] {
		n, ok := asNumber(idx)
		if !ok {
			return nil, ev.Env.TypeError("MDSETITEM expects numeric indices")
		}
		i := int(n) - cur.Origin
		if i < 0 || i >= len(cur.Items) {
			return nil, ev.Env.DomainError("MDSETITEM index out of range")
		}
		next, ok := cur.Items[i].(*Array)
		if !ok {
			return nil, ev.Env.TypeError("MDSETITEM dimension mismatch")
		}
		cur = next
	}
	last := idxList.Items[len(idxList.Items)-1]
	return primSetItem(ev, []Value{last, cur, args[2]}, c)
}
