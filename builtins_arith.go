package logo

import "math"

// registerArith wires the arithmetic and numeric primitives of spec §4.6:
// the infix operators are handled directly by the
// evaluator's precedence climb (eval.go); these are the prefix-form
// equivalents plus the transcendental and rounding functions.
func registerArith(e *Env) {
	e.DefinePrimitive("SUM", 2, primSum)
	e.DefinePrimitive("DIFFERENCE", 2, primDifference)
	e.DefinePrimitive("PRODUCT", 2, primProduct)
	e.DefinePrimitive("QUOTIENT", 2, primQuotient)
	e.DefinePrimitive("REMAINDER", 2, primRemainder)
	e.DefinePrimitive("MODULO", 2, primModulo)
	e.DefinePrimitive("POWER", 2, primPower)
	e.DefinePrimitive("MINUS", 1, primMinus)
	e.DefinePrimitive("ABS", 1, primAbs)
	e.DefinePrimitive("SQRT", 1, primSqrt)
	e.DefinePrimitive("EXP", 1, primExp)
	e.DefinePrimitive("LOG10", 1, primLog10)
	e.DefinePrimitive("LN", 1, primLn)
	e.DefinePrimitive("INT", 1, primInt)
	e.DefinePrimitive("ROUND", 1, primRound)
	e.DefinePrimitive("SIN", 1, primSin)
	e.DefinePrimitive("COS", 1, primCos)
	e.DefinePrimitive("TAN", 1, primTan)
	e.DefinePrimitive("ARCTAN", 1, primArctan)
	e.DefinePrimitive("RADARCTAN", 1, primRadArctan)
	e.DefinePrimitive("RADSIN", 1, primRadSin)
	e.DefinePrimitive("RADCOS", 1, primRadCos)
	e.DefinePrimitive("PI", 0, primPi)
	e.DefinePrimitive("RANDOM", 1, primRandom)
	e.DefinePrimitive("RERANDOM", 0, primRerandom)

	// NUMBERWANG is a joke primitive some Logo implementations carry as
	// an easter egg: it picks a random truth value and is otherwise
	// useless, kept here verbatim rather than dressed up as something
	// meaningful (spec §9 Open Question decision, DESIGN.md).
	e.DefinePrimitive("NUMBERWANG", 1, primNumberwang)
}

func numArg(e *Env, v Value, proc string) (float64, error) {
	n, ok := asNumber(v)
	if !ok {
		return 0, e.TypeError("%s doesn't like %s as input", proc, Repr(v))
	}
	return n, nil
}

func primSum(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	total := 0.0
	for _, a := range args {
		n, err := numArg(ev.Env, a, "SUM")
		if err != nil {
			return nil, err
		}
		total += n
	}
	return NumberWord(total), nil
}

func primDifference(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	a, err := numArg(ev.Env, args[0], "DIFFERENCE")
	if err != nil {
		return nil, err
	}
	b, err := numArg(ev.Env, args[1], "DIFFERENCE")
	if err != nil {
		return nil, err
	}
	return NumberWord(a - b), nil
}

func primProduct(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	a, err := numArg(ev.Env, args[0], "PRODUCT")
	if err != nil {
		return nil, err
	}
	b, err := numArg(ev.Env, args[1], "PRODUCT")
	if err != nil {
		return nil, err
	}
	return NumberWord(a * b), nil
}

func primQuotient(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	a, err := numArg(ev.Env, args[0], "QUOTIENT")
	if err != nil {
		return nil, err
	}
	b, err := numArg(ev.Env, args[1], "QUOTIENT")
	if err != nil {
		return nil, err
	}
	if b == 0 {
		return nil, ev.Env.DomainError("Division by zero")
	}
	return NumberWord(a / b), nil
}

func primRemainder(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	a, err := numArg(ev.Env, args[0], "REMAINDER")
	if err != nil {
		return nil, err
	}
	b, err := numArg(ev.Env, args[1], "REMAINDER")
	if err != nil {
		return nil, err
	}
	if b == 0 {
		return nil, ev.Env.DomainError("Division by zero")
	}
	return NumberWord(math.Mod(a, b)), nil
}

// primModulo differs from REMAINDER in sign: the result always takes
// the sign of the divisor, per UCBLogo's MODULO (as opposed to
// REMAINDER, which takes the sign of the dividend).
func primModulo(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	a, err := numArg(ev.Env, args[0], "MODULO")
	if err != nil {
		return nil, err
	}
	b, err := numArg(ev.Env, args[1], "MODULO")
	if err != nil {
		return nil, err
	}
	if b == 0 {
		return nil, ev.Env.DomainError("Division by zero")
	}
	m := math.Mod(a, b)
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return NumberWord(m), nil
}

func primPower(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	a, err := numArg(ev.Env, args[0], "POWER")
	if err != nil {
		return nil, err
	}
	b, err := numArg(ev.Env, args[1], "POWER")
	if err != nil {
		return nil, err
	}
	return NumberWord(math.Pow(a, b)), nil
}

func primMinus(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	a, err := numArg(ev.Env, args[0], "MINUS")
	if err != nil {
		return nil, err
	}
	return NumberWord(-a), nil
}

func primAbs(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	a, err := numArg(ev.Env, args[0], "ABS")
	if err != nil {
		return nil, err
	}
	return NumberWord(math.Abs(a)), nil
}

func primSqrt(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	a, err := numArg(ev.Env, args[0], "SQRT")
	if err != nil {
		return nil, err
	}
	if a < 0 {
		return nil, ev.Env.DomainError("SQRT of a negative number")
	}
	return NumberWord(math.Sqrt(a)), nil
}

func primExp(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	a, err := numArg(ev.Env, args[0], "EXP")
	if err != nil {
		return nil, err
	}
	return NumberWord(math.Exp(a)), nil
}

func primLog10(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	a, err := numArg(ev.Env, args[0], "LOG10")
	if err != nil {
		return nil, err
	}
	return NumberWord(math.Log10(a)), nil
}

func primLn(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	a, err := numArg(ev.Env, args[0], "LN")
	if err != nil {
		return nil, err
	}
	return NumberWord(math.Log(a)), nil
}

func primInt(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	a, err := numArg(ev.Env, args[0], "INT")
	if err != nil {
		return nil, err
	}
	return NumberWord(math.Trunc(a)), nil
}

func primRound(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	a, err := numArg(ev.Env, args[0], "ROUND")
	if err != nil {
		return nil, err
	}
	return NumberWord(math.Round(a)), nil
}

func primSin(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	a, err := numArg(ev.Env, args[0], "SIN")
	if err != nil {
		return nil, err
	}
	return NumberWord(math.Sin(a * math.Pi / 180)), nil
}

func primCos(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	a, err := numArg(ev.Env, args[0], "COS")
	if err != nil {
		return nil, err
	}
	return NumberWord(math.Cos(a * math.Pi / 180)), nil
}

func primTan(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	a, err := numArg(ev.Env, args[0], "TAN")
	if err != nil {
		return nil, err
	}
	return NumberWord(math.Tan(a * math.Pi / 180)), nil
}

func primArctan(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	a, err := numArg(ev.Env, args[0], "ARCTAN")
	if err != nil {
		return nil, err
	}
	return NumberWord(math.Atan(a) * 180 / math.Pi), nil
}

func primRadArctan(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	a, err := numArg(ev.Env, args[0], "RADARCTAN")
	if err != nil {
		return nil, err
	}
	return NumberWord(math.Atan(a)), nil
}

func primRadSin(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	a, err := numArg(ev.Env, args[0], "RADSIN")
	if err != nil {
		return nil, err
	}
	return NumberWord(math.Sin(a)), nil
}

func primRadCos(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	a, err := numArg(ev.Env, args[0], "RADCOS")
	if err != nil {
		return nil, err
	}
	return NumberWord(math.Cos(a)), nil
}

func primPi(_ *Evaluator, _ []Value, _ *Cursor) (Value, error) {
	return NumberWord(math.Pi), nil
}

// primRandom implements RANDOM n using the Env's PRNG (spec §3
// "pseudo-random generator").
func primRandom(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	n, err := numArg(ev.Env, args[0], "RANDOM")
	if err != nil {
		return nil, err
	}
	return NumberWord(float64(ev.Env.Random(int64(n)))), nil
}

func primRerandom(ev *Evaluator, _ []Value, _ *Cursor) (Value, error) {
	ev.Env.Reseed(1, 2)
	return nil, nil
}

func primNumberwang(ev *Evaluator, _ []Value, _ *Cursor) (Value, error) {
	return BoolWord(ev.Env.Random(2) == 0), nil
}
