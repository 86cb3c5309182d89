package logo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenizeBareWordsAndNumbers(t *testing.T) {
	atoms, err := Tokenize("forward 100")
	require.NoError(t, err)
	require.Equal(t, []Value{Word("forward"), Word("100")}, atoms)
}

func TestTokenizeQuotedWord(t *testing.T) {
	atoms, err := Tokenize(`make "x 5`)
	require.NoError(t, err)
	require.Equal(t, []Value{Word("make"), Word(`"x`), Word("5")}, atoms)
}

func TestTokenizeBracketedList(t *testing.T) {
	atoms, err := Tokenize("[1 2 [3 4]]")
	require.NoError(t, err)
	require.Len(t, atoms, 1)
	list, ok := atoms[0].(*List)
	require.True(t, ok)
	require.Len(t, list.Items, 3)
	inner, ok := list.Items[2].(*List)
	require.True(t, ok)
	require.Equal(t, []Value{Word("3"), Word("4")}, inner.Items)
}

func TestTokenizeBracedArrayWithOrigin(t *testing.T) {
	atoms, err := Tokenize("{1 2 3}@0")
	require.NoError(t, err)
	require.Len(t, atoms, 1)
	arr, ok := atoms[0].(*Array)
	require.True(t, ok)
	require.Equal(t, 0, arr.Origin)
	require.Equal(t, []Value{Word("1"), Word("2"), Word("3")}, arr.Items)
}

func TestUnaryMinusAtStartOfInput(t *testing.T) {
	atoms, err := Tokenize("-5")
	require.NoError(t, err)
	require.Equal(t, []Value{UnaryMinus{}, Word("5")}, atoms)
}

func TestUnaryMinusAfterInfixOperator(t *testing.T) {
	atoms, err := Tokenize("3 + -5")
	require.NoError(t, err)
	require.Equal(t, []Value{Word("3"), OpAdd, UnaryMinus{}, Word("5")}, atoms)
}

func TestBinaryMinusBetweenWords(t *testing.T) {
	atoms, err := Tokenize("3-5")
	require.NoError(t, err)
	require.Equal(t, []Value{Word("3"), OpSub, Word("5")}, atoms)
}

func TestUnaryMinusWithLeadingSpaceNoTrailingSpace(t *testing.T) {
	atoms, err := Tokenize("print -5")
	require.NoError(t, err)
	require.Equal(t, []Value{Word("print"), UnaryMinus{}, Word("5")}, atoms)
}

func TestBinaryMinusWithSpaceOnBothSides(t *testing.T) {
	atoms, err := Tokenize("3 - 5")
	require.NoError(t, err)
	require.Equal(t, []Value{Word("3"), OpSub, Word("5")}, atoms)
}

func TestUnclosedBracketIsParseError(t *testing.T) {
	_, err := Tokenize("[1 2")
	require.Error(t, err)
}
