package logo

// registerTurtle wires the turtle-graphics delegation primitives: thin
// argument-marshaling wrappers over the Turtle contract (spec §6,
// SPEC_FULL.md §4). None of these implement graphics themselves — they
// only translate Logo arguments into Turtle calls and wrap Turtle errors
// with wrapHostError (a zero scrunch factor becomes a DomainError).
func registerTurtle(e *Env) {
	e.DefinePrimitive("FORWARD", 1, primForward)
	e.DefinePrimitive("FD", 1, primForward)
	e.DefinePrimitive("BACK", 1, primBack)
	e.DefinePrimitive("BK", 1, primBack)
	e.DefinePrimitive("RIGHT", 1, primRight)
	e.DefinePrimitive("RT", 1, primRight)
	e.DefinePrimitive("LEFT", 1, primLeft)
	e.DefinePrimitive("LT", 1, primLeft)
	e.DefinePrimitive("SETPOS", 1, primSetPos)
	e.DefinePrimitive("SETXY", 2, primSetXY)
	e.DefinePrimitive("SETX", 1, primSetX)
	e.DefinePrimitive("SETY", 1, primSetY)
	e.DefinePrimitive("SETHEADING", 1, primSetHeading)
	e.DefinePrimitive("SETH", 1, primSetHeading)
	e.DefinePrimitive("HOME", 0, primHome)
	e.DefinePrimitive("ARC", 2, primArc)
	e.DefinePrimitive("POS", 0, primPos)
	e.DefinePrimitive("HEADING", 0, primHeading)
	e.DefinePrimitive("TOWARDS", 1, primTowards)

	e.DefinePrimitive("SHOWTURTLE", 0, primShowTurtle)
	e.DefinePrimitive("ST", 0, primShowTurtle)
	e.DefinePrimitive("HIDETURTLE", 0, primHideTurtle)
	e.DefinePrimitive("HT", 0, primHideTurtle)
	e.DefinePrimitive("SHOWNP", 0, primShownP)

	e.DefinePrimitive("CLEARSCREEN", 0, primClearScreen)
	e.DefinePrimitive("CS", 0, primClearScreen)
	e.DefinePrimitive("CLEAN", 0, primClean)

	e.DefinePrimitive("PENDOWN", 0, primPenDown)
	e.DefinePrimitive("PD", 0, primPenDown)
	e.DefinePrimitive("PENUP", 0, primPenUp)
	e.DefinePrimitive("PU", 0, primPenUp)
	e.DefinePrimitive("PENDOWNP", 0, primPenDownP)

	e.DefinePrimitive("SETPENCOLOR", 1, primSetPenColor)
	e.DefinePrimitive("SETCOLOR", 1, primSetPenColor)
	e.DefinePrimitive("PENCOLOR", 0, primPenColor)
	e.DefinePrimitive("SETBACKGROUND", 1, primSetBackground)
	e.DefinePrimitive("SETWIDTH", 1, primSetWidth)
	e.DefinePrimitive("SETSCRUNCH", 2, primSetScrunch)

	e.DefinePrimitive("FILL", 0, primFill)
}

func xyArg(ev *Evaluator, v Value, proc string) (float64, error) {
	n, ok := asNumber(v)
	if !ok {
		return 0, ev.Env.TypeError("%s expects a number", proc)
	}
	return n, nil
}

func primForward(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	n, err := xyArg(ev, args[0], "FORWARD")
	if err != nil {
		return nil, err
	}
	return nil, wrapHostError(ev.Env.turtle.Move(n), "FORWARD")
}

func primBack(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	n, err := xyArg(ev, args[0], "BACK")
	if err != nil {
		return nil, err
	}
	return nil, wrapHostError(ev.Env.turtle.Move(-n), "BACK")
}

func primRight(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	n, err := xyArg(ev, args[0], "RIGHT")
	if err != nil {
		return nil, err
	}
	return nil, wrapHostError(ev.Env.turtle.Turn(n), "RIGHT")
}

func primLeft(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	n, err := xyArg(ev, args[0], "LEFT")
	if err != nil {
		return nil, err
	}
	return nil, wrapHostError(ev.Env.turtle.Turn(-n), "LEFT")
}

func primSetPos(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	l, ok := args[0].(*List)
	if !ok || len(l.Items) != 2 {
		return nil, ev.Env.TypeError("SETPOS expects a list of two coordinates")
	}
	x, err := xyArg(ev, l.Items[0], "SETPOS")
	if err != nil {
		return nil, err
	}
	y, err := xyArg(ev, l.Items[1], "SETPOS")
	if err != nil {
		return nil, err
	}
	return nil, wrapHostError(ev.Env.turtle.SetPosition(&x, &y), "SETPOS")
}

func primSetXY(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	x, err := xyArg(ev, args[0], "SETXY")
	if err != nil {
		return nil, err
	}
	y, err := xyArg(ev, args[1], "SETXY")
	if err != nil {
		return nil, err
	}
	return nil, wrapHostError(ev.Env.turtle.SetPosition(&x, &y), "SETXY")
}

func primSetX(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	x, err := xyArg(ev, args[0], "SETX")
	if err != nil {
		return nil, err
	}
	return nil, wrapHostError(ev.Env.turtle.SetPosition(&x, nil), "SETX")
}

func primSetY(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	y, err := xyArg(ev, args[0], "SETY")
	if err != nil {
		return nil, err
	}
	return nil, wrapHostError(ev.Env.turtle.SetPosition(nil, &y), "SETY")
}

func primSetHeading(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	n, err := xyArg(ev, args[0], "SETHEADING")
	if err != nil {
		return nil, err
	}
	return nil, wrapHostError(ev.Env.turtle.SetHeading(n), "SETHEADING")
}

func primHome(ev *Evaluator, _ []Value, _ *Cursor) (Value, error) {
	return nil, wrapHostError(ev.Env.turtle.Home(), "HOME")
}

func primArc(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	angle, err := xyArg(ev, args[0], "ARC")
	if err != nil {
		return nil, err
	}
	radius, err := xyArg(ev, args[1], "ARC")
	if err != nil {
		return nil, err
	}
	return nil, wrapHostError(ev.Env.turtle.Arc(angle, radius), "ARC")
}

func primPos(ev *Evaluator, _ []Value, _ *Cursor) (Value, error) {
	x, y, err := ev.Env.turtle.GetXY()
	if err != nil {
		return nil, wrapHostError(err, "POS")
	}
	return NewList(NumberWord(x), NumberWord(y)), nil
}

func primHeading(ev *Evaluator, _ []Value, _ *Cursor) (Value, error) {
	h, err := ev.Env.turtle.GetHeading()
	if err != nil {
		return nil, wrapHostError(err, "HEADING")
	}
	return NumberWord(h), nil
}

func primTowards(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	l, ok := args[0].(*List)
	if !ok || len(l.Items) != 2 {
		return nil, ev.Env.TypeError("TOWARDS expects a list of two coordinates")
	}
	x, err := xyArg(ev, l.Items[0], "TOWARDS")
	if err != nil {
		return nil, err
	}
	y, err := xyArg(ev, l.Items[1], "TOWARDS")
	if err != nil {
		return nil, err
	}
	deg, err := ev.Env.turtle.Towards(x, y)
	if err != nil {
		return nil, wrapHostError(err, "TOWARDS")
	}
	return NumberWord(deg), nil
}

func primShowTurtle(ev *Evaluator, _ []Value, _ *Cursor) (Value, error) {
	return nil, wrapHostError(ev.Env.turtle.ShowTurtle(), "SHOWTURTLE")
}

func primHideTurtle(ev *Evaluator, _ []Value, _ *Cursor) (Value, error) {
	return nil, wrapHostError(ev.Env.turtle.HideTurtle(), "HIDETURTLE")
}

func primShownP(ev *Evaluator, _ []Value, _ *Cursor) (Value, error) {
	v, err := ev.Env.turtle.IsTurtleVisible()
	if err != nil {
		return nil, wrapHostError(err, "SHOWNP")
	}
	return BoolWord(v), nil
}

func primClearScreen(ev *Evaluator, _ []Value, _ *Cursor) (Value, error) {
	return nil, wrapHostError(ev.Env.turtle.ClearScreen(), "CLEARSCREEN")
}

func primClean(ev *Evaluator, _ []Value, _ *Cursor) (Value, error) {
	return nil, wrapHostError(ev.Env.turtle.Clear(), "CLEAN")
}

func primPenDown(ev *Evaluator, _ []Value, _ *Cursor) (Value, error) {
	return nil, wrapHostError(ev.Env.turtle.PenDown(), "PENDOWN")
}

func primPenUp(ev *Evaluator, _ []Value, _ *Cursor) (Value, error) {
	return nil, wrapHostError(ev.Env.turtle.PenUp(), "PENUP")
}

func primPenDownP(ev *Evaluator, _ []Value, _ *Cursor) (Value, error) {
	v, err := ev.Env.turtle.IsPenDown()
	if err != nil {
		return nil, wrapHostError(err, "PENDOWNP")
	}
	return BoolWord(v), nil
}

func primSetPenColor(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	return nil, wrapHostError(ev.Env.turtle.SetColor(args[0]), "SETPENCOLOR")
}

func primPenColor(ev *Evaluator, _ []Value, _ *Cursor) (Value, error) {
	v, err := ev.Env.turtle.GetColor()
	if err != nil {
		return nil, wrapHostError(err, "PENCOLOR")
	}
	return v, nil
}

func primSetBackground(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	return nil, wrapHostError(ev.Env.turtle.SetBackgroundColor(args[0]), "SETBACKGROUND")
}

func primSetWidth(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	n, err := xyArg(ev, args[0], "SETWIDTH")
	if err != nil {
		return nil, err
	}
	return nil, wrapHostError(ev.Env.turtle.SetWidth(n), "SETWIDTH")
}

func primSetScrunch(ev *Evaluator, args []Value, _ *Cursor) (Value, error) {
	x, err := xyArg(ev, args[0], "SETSCRUNCH")
	if err != nil {
		return nil, err
	}
	y, err := xyArg(ev, args[1], "SETSCRUNCH")
	if err != nil {
		return nil, err
	}
	if err := ev.Env.turtle.SetScrunch(x, y); err != nil {
		if err == ErrZeroScrunch {
			return nil, ev.Env.DomainError("SETSCRUNCH doesn't like 0 as input")
		}
		return nil, wrapHostError(err, "SETSCRUNCH")
	}
	return nil, nil
}

func primFill(ev *Evaluator, _ []Value, _ *Cursor) (Value, error) {
	return nil, wrapHostError(ev.Env.turtle.Fill(), "FILL")
}
