package logo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func evalExpr(t *testing.T, e *Env, src string) Value {
	t.Helper()
	atoms, err := Tokenize(src)
	require.NoError(t, err)
	ev := NewEvaluator(e)
	cur := NewCursor(atoms)
	thunk, err := ev.ParseExpression(cur)
	require.NoError(t, err)
	v, err := thunk()
	require.NoError(t, err)
	return v
}

func TestArithmeticPrecedence(t *testing.T) {
	e := NewInterpreter()
	require.Equal(t, Word("14"), evalExpr(t, e, "2 + 3 * 4"))
	require.Equal(t, Word("20"), evalExpr(t, e, "(2 + 3) * 4"))
	require.Equal(t, Word("8"), evalExpr(t, e, "2 ^ 3"))
}

func TestPowerRightAssociativity(t *testing.T) {
	e := NewInterpreter()
	require.Equal(t, Word("512"), evalExpr(t, e, "2 ^ 3 ^ 2"))
}

func TestUnaryMinusBindsTighterThanBinary(t *testing.T) {
	e := NewInterpreter()
	require.Equal(t, Word("-2"), evalExpr(t, e, "3 + -5"))
}

func TestRelationalOperators(t *testing.T) {
	e := NewInterpreter()
	require.Equal(t, Word("true"), evalExpr(t, e, "3 < 5"))
	require.Equal(t, Word("false"), evalExpr(t, e, "3 > 5"))
	require.Equal(t, Word("true"), evalExpr(t, e, "3 = 3"))
}

func TestVariableLookupViaColon(t *testing.T) {
	e := NewInterpreter()
	e.Make("X", Word("7"))
	require.Equal(t, Word("7"), evalExpr(t, e, ":X"))
}

func TestExplicitArityCallInParens(t *testing.T) {
	e := NewInterpreter()
	require.Equal(t, Word("6"), evalExpr(t, e, "(sum 1 2 3)"))
}

func TestNaturalArityDispatch(t *testing.T) {
	e := NewInterpreter()
	require.Equal(t, Word("5"), evalExpr(t, e, "sum 2 3"))
}

func TestUserProcedureOutput(t *testing.T) {
	e := NewInterpreter()
	_, err := e.Run("to square :n\noutput :n * :n\nend")
	require.NoError(t, err)
	require.Equal(t, Word("25"), evalExpr(t, e, "square 5"))
}

func TestUserProcedureStopProducesNoValue(t *testing.T) {
	e := NewInterpreter()
	_, err := e.Run("to nothing\nstop\nend")
	require.NoError(t, err)
	_, err = e.Run("nothing")
	require.NoError(t, err)
}

func TestNeedSpaceDiagnostic(t *testing.T) {
	e := NewInterpreter()
	_, err := e.Run("fd90")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Need a space between")
}
