package logo

import "log/slog"

// RunSequence executes atoms as a statement sequence (spec §4.7): parse
// one expression at a time from the front, require it to produce no
// value unless returnResult is true, and yield control between
// statements. forceBye is checked at every statement boundary and
// unwinds with a ByeSignal.
//
// The teacher's analogous loop (langsam.go VM.Load) just calls Eval
// once per top-level form and bails on the first runtime exception;
// ours additionally tracks "did this statement produce an unconsumed
// value" (spec's "Don't know what to do with X") and threads the
// cooperative yield point, because Logo statements are (by definition)
// called for effect, not for their value.
func (ev *Evaluator) RunSequence(atoms []Value, returnResult bool) (Value, error) {
	cur := NewCursor(atoms)
	var last Value
	for {
		if ev.Env.ForceBye() {
			return nil, ByeSignal{}
		}
		if cur.AtEnd() {
			return last, nil
		}
		thunk, err := ev.ParseExpression(cur)
		if err != nil {
			return nil, err
		}
		result, err := thunk()
		if err != nil {
			return nil, err
		}
		if result != nil {
			if !returnResult {
				return nil, ev.Env.UnexpectedValueError("You don't say what to do with %s", Repr(result))
			}
			last = result
		}
		ev.yield()
	}
}

// yield is the driver's cooperative suspension point between statements
// (spec §5). The core has no graphics loop of its own to hand control
// back to, so it only emits a Debug log line; a blocking Go call already
// yields the OS thread fairly.
func (ev *Evaluator) yield() {
	ev.Env.logger.Debug("yield", slog.Int("scope-depth", len(ev.Env.scopes)))
}

// Run parses and executes src as a full program. Concurrent top-level Run
// calls on the same Env are serialized by a mutex, so they never
// interleave; the order in which waiting calls are admitted is not
// defined. Every top-level statement must be called for effect: a
// statement that produces a value is an error. This is the entry point
// an embedder calls for each chunk of typed-in or loaded source.
func (e *Env) Run(src string) (Value, error) {
	e.runMu.Lock()
	defer e.runMu.Unlock()

	atoms, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	ev := NewEvaluator(e)
	result, err := ev.RunSequence(atoms, false)
	if err != nil && IsSignal(err) {
		e.logger.Debug("signal reached top level", slog.String("signal", err.Error()))
	}
	if _, isBye := err.(ByeSignal); isBye {
		return result, nil
	}
	return result, err
}

// RunList executes a *List's items as a statement sequence. The items
// are bare Words as stored by the lexer's bracket grouping (spec §4.2),
// so they are re-lexed first — the same treatment relexBareWords gives a
// TO body — before running them; otherwise an operator or unary-minus
// inside the list would be misread as a plain word (used by RUN/RUNRESULT
// and by control-flow primitives that take a bracketed body, spec §4.6).
func (ev *Evaluator) RunList(list *List, returnResult bool) (Value, error) {
	if list == nil {
		return nil, nil
	}
	atoms, err := relexBareWords(list.Items)
	if err != nil {
		return nil, err
	}
	return ev.RunSequence(atoms, returnResult)
}
