package logo

import (
	"strings"

	"github.com/google/btree"
)

// Routine is the procedure machinery's single representation of
// "something callable": a primitive (eager, noeval, or special) or a
// user-defined procedure (spec §3 "Routine", §9 "model routines as a
// variant over {primitive-eager, primitive-lazy, primitive-special,
// user-defined}"). This mirrors the teacher's *Function, which carries
// EvalArgs/EvalResult flags over a Body that's either a NativeFn or a
// List (langsam.go Function/Call) — Special/NoEval below play the role
// of EvalArgs=false, generalized to cover raw-token special forms too.
type Routine struct {
	Name string

	// Arity is the natural number of inputs a non-special routine
	// reads when called without parentheses (spec §4.3, §4.4).
	Arity int

	Primitive PrimitiveFn
	Special   bool // receives the raw remaining atom cursor directly
	NoEval    bool // receives argument Thunks, not evaluated Values

	Buried bool

	// User-defined procedures only:
	UserDefined bool
	Inputs      []string
	Body        []Value
}

// PrimitiveFn is a built-in routine's Go implementation. For a Special
// routine, args is nil and cur is the live cursor over the remaining
// statement; for a NoEval routine, args holds unevaluated Thunks; for a
// normal routine, args holds already-evaluated Values.
type PrimitiveFn func(ev *Evaluator, args []Value, cur *Cursor) (Value, error)

// routineKey adapts a procedure name into a btree.Item for the sorted
// PROCEDURES/PRIMITIVES listings (SPEC_FULL.md §3), grounded the same
// way as nameItem in env.go.
type routineKey string

func (a routineKey) Less(than btree.Item) bool { return string(a) < string(than.(routineKey)) }

// DefinePrimitive registers a normal (eager-argument) primitive.
func (e *Env) DefinePrimitive(name string, arity int, fn PrimitiveFn) {
	e.routines[foldName(name)] = &Routine{Name: foldName(name), Arity: arity, Primitive: fn}
}

// DefineSpecialForm registers a special form, which always receives the
// raw cursor and can never be redefined by user code (spec §3 "Special
// procedures cannot be overwritten ever").
func (e *Env) DefineSpecialForm(name string, fn PrimitiveFn) {
	e.routines[foldName(name)] = &Routine{Name: foldName(name), Special: true, Primitive: fn}
}

// DefineNoEvalForm registers a noeval primitive (AND/OR/WHILE/UNTIL use
// this: they need the argument Thunks themselves, not their values).
func (e *Env) DefineNoEvalForm(name string, arity int, fn PrimitiveFn) {
	e.routines[foldName(name)] = &Routine{Name: foldName(name), Arity: arity, NoEval: true, Primitive: fn}
}

// LookupRoutine finds a routine by case-folded name.
func (e *Env) LookupRoutine(name string) (*Routine, bool) {
	r, ok := e.routines[foldName(name)]
	return r, ok
}

// sortedRoutineNames returns names of routines matching pred, in
// alphabetical order via a btree, per SPEC_FULL.md §3.
func (e *Env) sortedRoutineNames(pred func(*Routine) bool) []string {
	bt := btree.New(4)
	for name, r := range e.routines {
		if pred(r) {
			bt.ReplaceOrInsert(routineKey(name))
		}
	}
	var names []string
	bt.Ascend(func(item btree.Item) bool {
		names = append(names, string(item.(routineKey)))
		return true
	})
	return names
}

// DefineUserProcedure registers a user-defined procedure's formals and
// body (called from TO and DEFINE, spec §4.4). It enforces the
// redefinition rules: a special form can never be overwritten; a
// primitive can only be overwritten when REDEFP is truthy.
func (e *Env) DefineUserProcedure(name string, inputs []string, body []Value) error {
	key := foldName(name)
	if existing, ok := e.routines[key]; ok {
		if existing.Special {
			return e.RedefError("%s is a special form and cannot be redefined", name)
		}
		if existing.Primitive != nil && !existing.UserDefined && !e.redefpTruthy() {
			return e.RedefError("%s is a primitive; set REDEFP to redefine it", name)
		}
	}
	e.routines[key] = &Routine{
		Name:        key,
		Arity:       len(inputs),
		UserDefined: true,
		Inputs:      inputs,
		Body:        body,
	}
	if e.saveHook != nil {
		text := DefinitionText(name, inputs, body)
		e.saveHook(name, &text)
	}
	return nil
}

// EraseProcedure removes a procedure. Special forms can never be erased;
// a primitive can only be erased when REDEFP is truthy.
func (e *Env) EraseProcedure(name string) error {
	key := foldName(name)
	r, ok := e.routines[key]
	if !ok {
		return e.NameError("%s is not a procedure", name)
	}
	if r.Special {
		return e.RedefError("%s is a special form and cannot be erased", name)
	}
	if !r.UserDefined && !e.redefpTruthy() {
		return e.RedefError("%s is a primitive; set REDEFP to erase it", name)
	}
	delete(e.routines, key)
	if e.saveHook != nil {
		e.saveHook(name, nil)
	}
	return nil
}

// DefinitionText renders a user procedure's textual form as DEF/the save
// hook would persist it (spec §6 "Textual procedure format"). Unary
// minus sentinels render as bare "-" without a trailing space, matching
// how the lexer reads them back.
func DefinitionText(name string, inputs []string, body []Value) string {
	var sb strings.Builder
	sb.WriteString("to ")
	sb.WriteString(name)
	for _, in := range inputs {
		sb.WriteString(" :")
		sb.WriteString(in)
	}
	sb.WriteString("\n")
	if len(body) > 0 {
		sb.WriteString("  ")
		sb.WriteString(renderBody(body))
		sb.WriteString("\n")
	}
	sb.WriteString("end")
	return sb.String()
}

func renderBody(body []Value) string {
	var sb strings.Builder
	for i, v := range body {
		if i > 0 {
			if _, afterUnary := body[i-1].(UnaryMinus); !afterUnary {
				sb.WriteByte(' ')
			}
		}
		switch v.(type) {
		case UnaryMinus:
			sb.WriteString("-")
		default:
			sb.WriteString(Repr(v))
		}
	}
	return sb.String()
}

// parseToFormals reads the ":input" formals that follow a TO name, up to
// (but not including) the body, per spec §4.4.
func parseToFormals(atoms []Value, i int) (inputs []string, next int) {
	for i < len(atoms) {
		w, ok := atoms[i].(Word)
		if !ok || !strings.HasPrefix(string(w), ":") {
			break
		}
		inputs = append(inputs, string(w)[1:])
		i++
	}
	return inputs, i
}

// isKeyword reports whether atom, after the keyword-alias hook, matches
// keyword (e.g. "END") case-insensitively (spec §4.4).
func isKeyword(e *Env, atom Value, keyword string) bool {
	w, ok := atom.(Word)
	if !ok {
		return false
	}
	return e.applyKeywordAlias(string(w)) == foldName(keyword)
}
