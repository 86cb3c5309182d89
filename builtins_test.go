package logo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// captureStream is a Stream test double recording writes, grounded the
// same way the teacher's tests drive VM methods directly rather than
// through any real I/O (jcorbin-gothird first_test.go vmTest fixtures).
type captureStream struct {
	out   []string
	words []Word
}

func (c *captureStream) Write(text ...string) error {
	c.out = append(c.out, text...)
	return nil
}

func (c *captureStream) Read(prompt string) (Word, error) {
	if len(c.words) == 0 {
		return "", nil
	}
	w := c.words[0]
	c.words = c.words[1:]
	return w, nil
}

func (c *captureStream) Clear() error { c.out = nil; return nil }

func runOK(t *testing.T, e *Env, src string) Value {
	t.Helper()
	v, err := e.Run(src)
	require.NoError(t, err)
	return v
}

func TestRepeatAccumulatesViaMake(t *testing.T) {
	e := NewInterpreter()
	runOK(t, e, `make "total 0
repeat 5 [make "total :total + 1]`)
	v, err := e.Lookup("total")
	require.NoError(t, err)
	require.Equal(t, Word("5"), v)
}

func TestRepcountInsideRepeat(t *testing.T) {
	e := NewInterpreter()
	runOK(t, e, `make "last 0
repeat 3 [make "last repcount]`)
	v, _ := e.Lookup("last")
	require.Equal(t, Word("3"), v)
}

func TestIfElseBranches(t *testing.T) {
	e := NewInterpreter()
	runOK(t, e, `make "r 0
if 3 < 5 [make "r 1]
ifelse 3 > 5 [make "r 2] [make "r 3]`)
	v, _ := e.Lookup("r")
	require.Equal(t, Word("3"), v)
}

func TestWhileLoop(t *testing.T) {
	e := NewInterpreter()
	runOK(t, e, `make "n 0
while [:n < 5] [make "n :n + 1]`)
	v, _ := e.Lookup("n")
	require.Equal(t, Word("5"), v)
}

func TestForLoop(t *testing.T) {
	e := NewInterpreter()
	runOK(t, e, `make "sum 0
for [i 1 3] [make "sum :sum + :i]`)
	v, _ := e.Lookup("sum")
	require.Equal(t, Word("6"), v)
}

func TestAndOrShortCircuit(t *testing.T) {
	e := NewInterpreter()
	runOK(t, e, `make "touched "no
to sideeffect
make "touched "yes
output "false
end
make "r (and "false (sideeffect))`)
	touched, _ := e.Lookup("touched")
	require.Equal(t, Word("no"), touched)
	r, _ := e.Lookup("r")
	require.Equal(t, Word("false"), r)
}

func TestCaseFirstMatchWins(t *testing.T) {
	e := NewInterpreter()
	runOK(t, e, `make "r case 2 [ [[1] "one] [[2 3] "two-or-three] [else "other] ]`)
	v, _ := e.Lookup("r")
	require.Equal(t, Word("two-or-three"), v)
}

func TestWordsAndListsPrimitives(t *testing.T) {
	e := NewInterpreter()
	require.Equal(t, Word("ab"), evalExpr(t, e, `word "a "b`))
	require.Equal(t, Word("a"), evalExpr(t, e, `first "abc`))
	require.Equal(t, Word("c"), evalExpr(t, e, `last "abc`))
	require.Equal(t, NumberWord(3), evalExpr(t, e, `count "abc`))
}

func TestFputLputOnLists(t *testing.T) {
	e := NewInterpreter()
	v := evalExpr(t, e, `fput 1 [2 3]`)
	require.Equal(t, NewList(Word("1"), Word("2"), Word("3")), v)
	v = evalExpr(t, e, `lput 3 [1 2]`)
	require.Equal(t, NewList(Word("1"), Word("2"), Word("3")), v)
}

func TestSetfirstMutatesInPlace(t *testing.T) {
	e := NewInterpreter()
	e.Make("L", NewList(Word("a"), Word("b")))
	runOK(t, e, `.setfirst :L "z`)
	v, _ := e.Lookup("L")
	require.Equal(t, Word("z"), v.(*List).Items[0])
}

func TestArraySetItemRejectsSelfContainment(t *testing.T) {
	e := NewInterpreter()
	e.Make("A", NewArray(2, 1))
	_, err := e.Run(`setitem 1 :A :A`)
	require.Error(t, err)
}

func TestArraySetItemMutatesSharedIdentity(t *testing.T) {
	e := NewInterpreter()
	arr := NewArray(2, 1)
	e.Make("A", arr)
	runOK(t, e, `setitem 1 :A "hello`)
	require.Equal(t, Word("hello"), arr.Items[0])
}

func TestProceduresAndPrimitivesListing(t *testing.T) {
	e := NewInterpreter()
	runOK(t, e, "to square :n\noutput :n * :n\nend")
	v := evalExpr(t, e, "procedures")
	list := v.(*List)
	require.Contains(t, list.Items, Word("square"))

	v = evalExpr(t, e, "primitives")
	list = v.(*List)
	require.Contains(t, list.Items, Word("sum"))
}

func TestPropertyListPrimitives(t *testing.T) {
	e := NewInterpreter()
	runOK(t, e, `pprop "turtle "shape "arrow`)
	v := evalExpr(t, e, `gprop "turtle "shape`)
	require.Equal(t, Word("arrow"), v)
	runOK(t, e, `remprop "turtle "shape`)
	v = evalExpr(t, e, `gprop "turtle "shape`)
	require.Equal(t, Word(""), v)
}

func TestPrintWritesToStream(t *testing.T) {
	cap := &captureStream{}
	e := NewInterpreter(WithStream(cap))
	runOK(t, e, `print [hello world]`)
	require.Equal(t, []string{"hello world", "\n"}, cap.out)
}

func TestTurtleForwardUpdatesDefaultPosition(t *testing.T) {
	e := NewInterpreter()
	runOK(t, e, "forward 10")
	v := evalExpr(t, e, "pos")
	list := v.(*List)
	y, ok := list.Items[1].(Word).Number()
	require.True(t, ok)
	require.InDelta(t, 10.0, y, 1e-9)
}

func TestStopPropagatesThroughProcedures(t *testing.T) {
	e := NewInterpreter()
	runOK(t, e, `to earlyexit
if "true [stop]
make "reached "yes
end`)
	e.Make("reached", Word("no"))
	runOK(t, e, "earlyexit")
	v, _ := e.Lookup("reached")
	require.Equal(t, Word("no"), v)
}
