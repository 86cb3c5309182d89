package logo

import (
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/google/btree"
)

// Binding is a mutable cell reachable by a case-insensitive name within
// one scope Frame (spec §3). Bindings are owned by their Frame, the way
// the teacher's Map cells are owned by a `let` (langsam.go Map.Lookup
// walks a prototype chain of Maps); here the chain is an explicit stack
// rather than a linked prototype, because Logo scoping is dynamic, not
// lexical closures over definition-time environments.
type Binding struct {
	Value   Value
	Buried  bool
	Traced  bool
	Stepped bool
	bound   bool // false for LOCAL'd names with no value yet
}

// Frame is one level of the dynamic scope stack: a case-folded
// name->Binding map, plus TEST's hidden sidecar slot (spec §4.6, §9 —
// "TEST's hidden slot on the frame itself, not inside the cell").
type Frame struct {
	bindings map[string]*Binding
	testFlag *bool
}

func newFrame() *Frame {
	return &Frame{bindings: make(map[string]*Binding)}
}

func foldName(name string) string {
	return strings.ToUpper(name)
}

// nameItem adapts a string into a btree.Item for the sorted workspace
// listings (GLOBALS/PLISTS; PROCEDURES/PRIMITIVES use routineKey in
// procs.go), grounded on
// other_examples/leftmike-basic__basic.go's btree.BTree of program lines.
type nameItem string

func (a nameItem) Less(than btree.Item) bool {
	return string(a) < string(than.(nameItem))
}

// Env is the interpreter's full mutable state (spec §3 "Interpreter
// state"): scope stack, routine table, plists, PRNG, procedure call
// stack, repcount, and the forceBye flag, plus the pluggable hooks
// (keyword alias, localize, save) and the external Turtle/Stream
// consumers.
type Env struct {
	scopes   []*Frame
	routines map[string]*Routine
	plists   map[string]map[string]Value

	rng *rand.Rand

	procStack []string
	repcount  []int
	forceBye  bool

	keywordAlias func(name string) string
	localize     Localizer
	saveHook     SaveHook

	turtle Turtle
	stream Stream

	logger *slog.Logger

	runMu sync.Mutex // serializes top-level Run invocations; admission order of waiting calls is not defined
}

// NewEnv builds an Env with an empty global frame, ready for primitive
// registration (see RegisterCore in vm.go).
func NewEnv(opts ...EnvOption) *Env {
	e := &Env{
		scopes:   []*Frame{newFrame()},
		routines: make(map[string]*Routine),
		plists:   make(map[string]map[string]Value),
		rng:      rand.New(rand.NewPCG(1, 2)),
		logger:   slog.Default(),
		turtle:   NewNullTurtle(),
		stream:   NullStream{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EnvOption configures an Env at construction time.
type EnvOption func(*Env)

// WithTurtle installs the Turtle backend.
func WithTurtle(t Turtle) EnvOption { return func(e *Env) { e.turtle = t } }

// WithStream installs the Stream backend.
func WithStream(s Stream) EnvOption { return func(e *Env) { e.stream = s } }

// WithSaveHook installs the persistence save hook.
func WithSaveHook(h SaveHook) EnvOption { return func(e *Env) { e.saveHook = h } }

// WithKeywordAlias installs the keyword-localization lookup (spec §6).
func WithKeywordAlias(f func(string) string) EnvOption {
	return func(e *Env) { e.keywordAlias = f }
}

// WithLocalizer installs the error-message localizer (spec §6).
func WithLocalizer(f Localizer) EnvOption {
	return func(e *Env) { e.localize = f }
}

// WithLogger overrides the default slog.Logger.
func WithLogger(l *slog.Logger) EnvOption {
	return func(e *Env) { e.logger = l }
}

func (e *Env) global() *Frame { return e.scopes[0] }
func (e *Env) current() *Frame { return e.scopes[len(e.scopes)-1] }

// PushFrame pushes a fresh scope frame (called when entering a user
// procedure) and logs at Debug, grounded on
// other_examples/babyman-slug-lang__task.go's PushEnv/PopEnv logging.
func (e *Env) PushFrame() *Frame {
	f := newFrame()
	e.scopes = append(e.scopes, f)
	e.logger.Debug("push scope frame", slog.Int("depth", len(e.scopes)))
	return f
}

// PopFrame pops the innermost scope frame.
func (e *Env) PopFrame() {
	if len(e.scopes) <= 1 {
		return
	}
	e.scopes = e.scopes[:len(e.scopes)-1]
	e.logger.Debug("pop scope frame", slog.Int("depth", len(e.scopes)))
}

// lookupBinding walks the scope stack from top to bottom, returning the
// first Binding found under the case-folded name (spec §4.5).
func (e *Env) lookupBinding(name string) (*Binding, bool) {
	key := foldName(name)
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if b, ok := e.scopes[i].bindings[key]; ok {
			return b, true
		}
	}
	return nil, false
}

// Lookup reads a variable, per spec §4.5: error "Don't know about
// variable X" if undefined or never assigned.
func (e *Env) Lookup(name string) (Value, error) {
	b, ok := e.lookupBinding(name)
	if !ok || !b.bound {
		return nil, e.NameError("Don't know about variable %s", name)
	}
	return b.Value, nil
}

// Make assigns to the first existing binding found by dynamic-scope
// lookup, or creates one in the global frame if none exists (spec §4.5).
// List values are deep-copied; everything else (including Arrays) is
// aliased.
func (e *Env) Make(name string, value Value) {
	key := foldName(name)
	if b, ok := e.lookupBinding(name); ok {
		b.Value = copyForAssignment(value)
		b.bound = true
		e.traceAssignment(name, b)
		return
	}
	b := &Binding{Value: copyForAssignment(value), bound: true}
	e.global().bindings[key] = b
	e.traceAssignment(name, b)
}

func copyForAssignment(v Value) Value {
	if l, ok := v.(*List); ok {
		return l.DeepCopy()
	}
	return v
}

func (e *Env) traceAssignment(name string, b *Binding) {
	if b.Traced {
		e.logger.Info("traced assignment", slog.String("name", name), slog.String("value", Repr(b.Value)))
		dumpTracedBinding(name, b.Value)
	}
}

// Local creates an uninitialized binding in the current frame (spec §4.5).
func (e *Env) Local(name string) {
	key := foldName(name)
	e.current().bindings[key] = &Binding{}
}

// LocalMake creates and assigns a binding in the current frame.
func (e *Env) LocalMake(name string, value Value) {
	key := foldName(name)
	e.current().bindings[key] = &Binding{Value: copyForAssignment(value), bound: true}
}

// Global creates an uninitialized binding in the global frame.
func (e *Env) Global(name string) {
	key := foldName(name)
	if _, exists := e.global().bindings[key]; !exists {
		e.global().bindings[key] = &Binding{}
	}
}

// SetTest stores TEST's boolean on the current frame's hidden slot
// (spec §4.6, §9).
func (e *Env) SetTest(b bool) {
	e.current().testFlag = &b
}

// Test reads TEST's hidden slot on the current frame only (the frame, not
// a binding); ok is false when TEST has not run in this frame.
func (e *Env) Test() (bool, bool) {
	f := e.current()
	if f.testFlag == nil {
		return false, false
	}
	return *f.testFlag, true
}

// PushProc pushes a procedure name onto the in-flight call stack used for
// error-message {_PROC_} interpolation (spec §7).
func (e *Env) PushProc(name string) { e.procStack = append(e.procStack, name) }

// PopProc pops the in-flight call stack.
func (e *Env) PopProc() {
	if len(e.procStack) > 0 {
		e.procStack = e.procStack[:len(e.procStack)-1]
	}
}

// CurrentProc returns the top of the in-flight procedure stack, or ""
// at top level.
func (e *Env) CurrentProc() string {
	if len(e.procStack) == 0 {
		return ""
	}
	return e.procStack[len(e.procStack)-1]
}

// PushRepcount / PopRepcount / Repcount implement the nested #/REPCOUNT
// counter used by REPEAT/FOREVER (spec §4.6): each nested loop saves and
// restores the interpreter-wide counter.
func (e *Env) PushRepcount() { e.repcount = append(e.repcount, 1) }

func (e *Env) PopRepcount() {
	if len(e.repcount) > 0 {
		e.repcount = e.repcount[:len(e.repcount)-1]
	}
}

func (e *Env) Repcount() int {
	if len(e.repcount) == 0 {
		return -1
	}
	return e.repcount[len(e.repcount)-1]
}

func (e *Env) BumpRepcount() {
	if len(e.repcount) > 0 {
		e.repcount[len(e.repcount)-1]++
	}
}

// SetForceBye / ForceBye implement the BYE cancellation flag (spec §5):
// the driver checks it at its next statement boundary and unwinds with a
// ByeSignal.
func (e *Env) SetForceBye() {
	e.forceBye = true
	e.logger.Debug("forceBye set")
}

func (e *Env) ForceBye() bool { return e.forceBye }

// globalVariableNames returns every bound name in the global frame,
// sorted, the listing GLOBALS/CONTENTS report (SPEC_FULL.md §3).
func (e *Env) globalVariableNames() *List {
	bt := btree.New(4)
	for name, b := range e.global().bindings {
		if b.bound && !b.Buried {
			bt.ReplaceOrInsert(nameItem(name))
		}
	}
	var items []Value
	bt.Ascend(func(item btree.Item) bool {
		items = append(items, Word(strings.ToLower(string(item.(nameItem)))))
		return true
	})
	return &List{Items: items}
}

// eraseNameEverywhere deletes name's binding from every scope frame on
// the stack, not just the first one dynamic lookup would find — ERN's
// decision for the spec §9 Open Question on whether erasing reaches
// buried bindings in outer frames (documented in DESIGN.md).
func (e *Env) eraseNameEverywhere(name string) {
	key := foldName(name)
	for _, f := range e.scopes {
		delete(f.bindings, key)
	}
}

// --- property lists (spec §3 "Property list") ---

func (e *Env) PList(name string) map[string]Value {
	key := foldName(name)
	pl, ok := e.plists[key]
	if !ok {
		pl = make(map[string]Value)
		e.plists[key] = pl
	}
	return pl
}

func (e *Env) PListNames() []string {
	names := make([]string, 0, len(e.plists))
	bt := btree.New(4)
	for name := range e.plists {
		bt.ReplaceOrInsert(nameItem(name))
	}
	bt.Ascend(func(item btree.Item) bool {
		names = append(names, string(item.(nameItem)))
		return true
	})
	return names
}

// RemovePList deletes an entire property list by name.
func (e *Env) RemovePList(name string) {
	delete(e.plists, foldName(name))
}

// --- PRNG (spec §3 "pseudo-random generator") ---

// Random returns a non-negative integer in [0, n).
func (e *Env) Random(n int64) int64 {
	if n <= 0 {
		return 0
	}
	return e.rng.Int64N(n)
}

// RandomRange returns an integer in [lo, hi].
func (e *Env) RandomRange(lo, hi int64) int64 {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + e.rng.Int64N(hi-lo+1)
}

// Reseed reinitializes the PRNG (RERANDOM).
func (e *Env) Reseed(seed1, seed2 uint64) {
	e.rng = rand.New(rand.NewPCG(seed1, seed2))
}

// --- error construction helpers bound to this Env's hooks ---

func (e *Env) ParseError(format string, args ...any) *LogoError {
	return newLogoError(ErrParse, e.localize, e.CurrentProc(), format, args...)
}

func (e *Env) NameError(format string, args ...any) *LogoError {
	return newLogoError(ErrName, e.localize, e.CurrentProc(), format, args...)
}

func (e *Env) TypeError(format string, args ...any) *LogoError {
	return newLogoError(ErrType, e.localize, e.CurrentProc(), format, args...)
}

func (e *Env) DomainError(format string, args ...any) *LogoError {
	return newLogoError(ErrDomain, e.localize, e.CurrentProc(), format, args...)
}

func (e *Env) RedefError(format string, args ...any) *LogoError {
	return newLogoError(ErrRedefinition, e.localize, e.CurrentProc(), format, args...)
}

func (e *Env) UnexpectedValueError(format string, args ...any) *LogoError {
	return newLogoError(ErrUnexpectedValue, e.localize, e.CurrentProc(), format, args...)
}

// applyKeywordAlias maps a case-folded name through the pluggable
// keyword-alias hook (spec §6), falling back to identity.
func (e *Env) applyKeywordAlias(name string) string {
	if e.keywordAlias == nil {
		return foldName(name)
	}
	if canon := e.keywordAlias(foldName(name)); canon != "" {
		return foldName(canon)
	}
	return foldName(name)
}

// REDEFP is a global variable (spec §4.4); ordinary scoping rules apply
// to it, we just provide a convenience reader used by procedure
// registration.
func (e *Env) redefpTruthy() bool {
	v, err := e.Lookup("REDEFP")
	if err != nil {
		return false
	}
	t, ok := Truthy(v)
	return ok && t
}
