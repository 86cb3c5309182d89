package logo

import (
	"fmt"
	"strings"

	"github.com/goforj/godump"
)

// registerWorkspace wires the workspace-introspection and property-list
// primitives of SPEC_FULL.md §3: PROCEDURES/PRIMITIVES/GLOBALS/CONTENTS,
// PPROP/GPROP/REMPROP/PLIST/PLISTS, PO/POALL, and ERASE's sibling ERNS/ERN.
func registerWorkspace(e *Env) {
	e.DefinePrimitive("PROCEDURES", 0, primProcedures)
	e.DefinePrimitive("PRIMITIVES", 0, primPrimitives)
	e.DefinePrimitive("GLOBALS", 0, primGlobals)
	e.DefinePrimitive("CONTENTS", 0, primContents)
	e.DefinePrimitive("PROCEDUREP", 1, primProcedureP)
	e.DefinePrimitive("PRIMITIVEP", 1, primPrimitiveP)
	e.DefinePrimitive("DEFINEDP", 1, primDefinedP)

	e.DefinePrimitive("PPROP", 3, primPprop)
	e.DefinePrimitive("GPROP", 2, primGprop)
	e.DefinePrimitive("REMPROP", 2, primRemprop)
	e.DefinePrimitive("PLIST", 1, primPlist)
	e.DefinePrimitive("PLISTS", 0, primPlists)

	e.DefinePrimitive("PO", 1, primPo)
	e.DefinePrimitive("POALL", 0, primPoAll)

	e.DefinePrimitive("ERNS", 0, primErns)
	e.DefinePrimitive("ERN", 1, primErn)
	e.DefinePrimitive("ERPS", 0, primErps)
}

// dumpTracedBinding prints a traced assignment's new value with godump,
// the way the teacher's debug tooling dumps arbitrary Go values —
// adapted here to a single namespaced variable rather than a whole
// struct (spec §9 "TRACE ... should, at minimum, print the new value").
func dumpTracedBinding(name string, v Value) {
	godump.Dump(map[string]Value{name: v})
}

func primProcedures(ev *Evaluator, _ []Value, _ *Cursor) (Value, error) {
	names := ev.Env.sortedRoutineNames(func(r *Routine) bool { return r.UserDefined && !r.Buried })
	items := make([]Value, len(names))
	for i, n := range names {
		items[i] = Word(strings.ToLower(n))
	}
	return NewList(items...), nil
}

func primPrimitives(ev *Evaluator, _ []Value, _ *Cursor) (Value, error) {
	names := ev.Env.sortedRoutineNames(func(r *Routine) bool { return !r.UserDefined && !r.Buried })
	items := make([]Value, len(names))
	for i, n := range names {
		items[i] = Word(strings.ToLower(n))
	}
	return NewList(items...), nil
}

func primGlobals(ev *Evaluator, _ []Value, _ *Cursor) (Value, error) {
	return ev.Env.globalVariableNames(), nil
}

// primContents reports [[procedures][globals][plists]] per UCBLogo's
// CONTENTS (spec §3 workspace queries grouping), reusing PROCEDURES/
// GLOBALS/PLISTS.
func primContents(ev *Evaluator, _ []Value, c *Cursor) (Value, error) {
	procs, _ := primProcedures(ev, nil, c)
	globals, _ := primGlobals(ev, nil, c)
	plists, _ := primPlists(ev, nil, c)
	return NewList(procs, globals, plists), nil
}

func primProcedureP(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	w, ok := args[0].(Word)
	if !ok {
		return nil, ev.Env.TypeError("PROCEDUREP expects a word")
	}
	_, ok = ev.Env.LookupRoutine(string(w))
	return BoolWord(ok), nil
}

func primPrimitiveP(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	w, ok := args[0].(Word)
	if !ok {
		return nil, ev.Env.TypeError("PRIMITIVEP expects a word")
	}
	r, ok := ev.Env.LookupRoutine(string(w))
	return BoolWord(ok && !r.UserDefined), nil
}

func primDefinedP(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	w, ok := args[0].(Word)
	if !ok {
		return nil, ev.Env.TypeError("DEFINEDP expects a word")
	}
	r, ok := ev.Env.LookupRoutine(string(w))
	return BoolWord(ok && r.UserDefined), nil
}

func primPprop(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	plistName, ok := args[0].(Word)
	if !ok {
		return nil, ev.Env.TypeError("PPROP expects a word name")
	}
	propName, ok := args[1].(Word)
	if !ok {
		return nil, ev.Env.TypeError("PPROP expects a word property name")
	}
	ev.Env.PList(string(plistName))[foldName(string(propName))] = args[2]
	return nil, nil
}

func primGprop(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	plistName, ok := args[0].(Word)
	if !ok {
		return nil, ev.Env.TypeError("GPROP expects a word name")
	}
	propName, ok := args[1].(Word)
	if !ok {
		return nil, ev.Env.TypeError("GPROP expects a word property name")
	}
	v, ok := ev.Env.PList(string(plistName))[foldName(string(propName))]
	if !ok {
		return Word(""), nil
	}
	return v, nil
}

func primRemprop(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	plistName, ok := args[0].(Word)
	if !ok {
		return nil, ev.Env.TypeError("REMPROP expects a word name")
	}
	propName, ok := args[1].(Word)
	if !ok {
		return nil, ev.Env.TypeError("REMPROP expects a word property name")
	}
	delete(ev.Env.PList(string(plistName)), foldName(string(propName)))
	return nil, nil
}

func primPlist(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	plistName, ok := args[0].(Word)
	if !ok {
		return nil, ev.Env.TypeError("PLIST expects a word name")
	}
	pl := ev.Env.PList(string(plistName))
	items := make([]Value, 0, len(pl)*2)
	for _, k := range sortedKeys(pl) {
		items = append(items, Word(strings.ToLower(k)), pl[k])
	}
	return NewList(items...), nil
}

func sortedKeys(m map[string]Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// small maps; a plain insertion sort keeps this file free of another
	// btree import for what is, in practice, a handful of properties.
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

func primPlists(ev *Evaluator, _ []Value, _ *Cursor) (Value, error) {
	names := ev.Env.PListNames()
	items := make([]Value, len(names))
	for i, n := range names {
		items[i] = Word(strings.ToLower(n))
	}
	return NewList(items...), nil
}

// primPo prints a procedure's definition text via DEF (spec §6 "PO").
func primPo(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	if _, ok := args[0].(Word); !ok {
		return nil, ev.Env.TypeError("PO expects a word name")
	}
	text, err := primDef(ev, args, nil)
	if err != nil {
		return nil, err
	}
	return nil, ev.Env.stream.Write(fmt.Sprintf("%s\n", text))
}

func primPoAll(ev *Evaluator, _ []Value, c *Cursor) (Value, error) {
	names := ev.Env.sortedRoutineNames(func(r *Routine) bool { return r.UserDefined })
	for _, n := range names {
		if _, err := primPo(ev, []Value{Word(n)}, c); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

// primErns erases every variable name, deleting its binding from
// every scope frame including buried ones (spec §9 Open Question
// decision, DESIGN.md).
func primErns(ev *Evaluator, _ []Value, _ *Cursor) (Value, error) {
	for _, f := range ev.Env.scopes {
		for name := range f.bindings {
			delete(f.bindings, name)
		}
	}
	return nil, nil
}

// primErn erases a single bound name from every scope frame in the
// current stack, not just the one dynamic lookup would find first —
// the same "all frames, even buried" rule ERNS applies per-name.
func primErn(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	w, ok := args[0].(Word)
	if !ok {
		return nil, ev.Env.TypeError("ERN expects a word name")
	}
	ev.Env.eraseNameEverywhere(string(w))
	return nil, nil
}

// primErps erases every user-defined procedure.
func primErps(ev *Evaluator, _ []Value, _ *Cursor) (Value, error) {
	names := ev.Env.sortedRoutineNames(func(r *Routine) bool { return r.UserDefined })
	for _, n := range names {
		if err := ev.Env.EraseProcedure(n); err != nil {
			return nil, err
		}
	}
	return nil, nil
}
