package logo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMakeCreatesGlobalWhenUnbound(t *testing.T) {
	e := NewEnv()
	e.Make("X", Word("1"))
	v, err := e.Lookup("X")
	require.NoError(t, err)
	require.Equal(t, Word("1"), v)
}

func TestMakeIsCaseInsensitive(t *testing.T) {
	e := NewEnv()
	e.Make("Foo", Word("1"))
	v, err := e.Lookup("FOO")
	require.NoError(t, err)
	require.Equal(t, Word("1"), v)
}

func TestLookupUndefinedVariableErrors(t *testing.T) {
	e := NewEnv()
	_, err := e.Lookup("NOPE")
	require.Error(t, err)
}

func TestDynamicScopingFindsOuterBinding(t *testing.T) {
	e := NewEnv()
	e.Make("X", Word("outer"))
	e.PushFrame()
	defer e.PopFrame()
	// Make without a local binding should update the outer frame's cell,
	// since Logo scoping is dynamic rather than lexical (spec §4.5).
	e.Make("X", Word("changed"))
	v, err := e.Lookup("X")
	require.NoError(t, err)
	require.Equal(t, Word("changed"), v)
}

func TestLocalMakeShadowsOuterBinding(t *testing.T) {
	e := NewEnv()
	e.Make("X", Word("outer"))
	e.PushFrame()
	e.LocalMake("X", Word("inner"))
	v, err := e.Lookup("X")
	require.NoError(t, err)
	require.Equal(t, Word("inner"), v)
	e.PopFrame()
	v, err = e.Lookup("X")
	require.NoError(t, err)
	require.Equal(t, Word("outer"), v)
}

func TestMakeDeepCopiesLists(t *testing.T) {
	e := NewEnv()
	l := NewList(Word("a"))
	e.Make("L", l)
	l.Items[0] = Word("mutated")
	v, _ := e.Lookup("L")
	require.Equal(t, Word("a"), v.(*List).Items[0])
}

func TestRepcountNestsPerLoop(t *testing.T) {
	e := NewEnv()
	e.PushRepcount()
	e.BumpRepcount()
	require.Equal(t, 2, e.Repcount())
	e.PushRepcount()
	require.Equal(t, 1, e.Repcount())
	e.PopRepcount()
	require.Equal(t, 2, e.Repcount())
	e.PopRepcount()
}

func TestPropertyLists(t *testing.T) {
	e := NewEnv()
	e.PList("turtle")["SHAPE"] = Word("arrow")
	require.Equal(t, Word("arrow"), e.PList("turtle")["SHAPE"])
	e.RemovePList("turtle")
	require.Empty(t, e.PList("turtle"))
}

func TestRoutineRedefinitionRulesForPrimitives(t *testing.T) {
	e := NewInterpreter()
	err := e.DefineUserProcedure("SUM", nil, nil)
	require.Error(t, err)
	e.Make("REDEFP", BoolWord(true))
	err = e.DefineUserProcedure("SUM", nil, nil)
	require.NoError(t, err)
}

func TestSpecialFormsCanNeverBeRedefined(t *testing.T) {
	e := NewInterpreter()
	e.Make("REDEFP", BoolWord(true))
	err := e.DefineUserProcedure("TO", nil, nil)
	require.Error(t, err)
}
