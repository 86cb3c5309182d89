package logo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWordIsNumeric(t *testing.T) {
	require.True(t, Word("42").IsNumeric())
	require.True(t, Word("-3.5").IsNumeric())
	require.True(t, Word("1e10").IsNumeric())
	require.False(t, Word("hello").IsNumeric())
	require.False(t, Word("").IsNumeric())
}

func TestNumberWordFormatting(t *testing.T) {
	require.Equal(t, Word("3"), NumberWord(3.0))
	require.Equal(t, Word("-3"), NumberWord(-3.0))
	require.Equal(t, Word("3.5"), NumberWord(3.5))
}

func TestListDeepCopyIndependence(t *testing.T) {
	inner := NewList(Word("a"), Word("b"))
	outer := NewList(inner, Word("c"))
	copied := outer.DeepCopy()

	inner.Items[0] = Word("mutated")
	require.Equal(t, Word("a"), copied.Items[0].(*List).Items[0])
}

func TestArraysAreNeverDeepCopied(t *testing.T) {
	arr := NewArray(3, 1)
	list := NewList(arr)
	copied := list.DeepCopy()
	require.Same(t, arr, copied.Items[0].(*Array))
}

func TestContainsArrayDetectsCycleCandidate(t *testing.T) {
	arr := NewArray(2, 1)
	nested := NewList(Word("x"), arr)
	require.True(t, ContainsArray(nested, arr, nil))
	other := NewArray(2, 1)
	require.False(t, ContainsArray(nested, other, nil))
}

func TestEqualNumericWordsCompareByValue(t *testing.T) {
	require.True(t, Equal(Word("3"), Word("3.0")))
	require.False(t, Equal(Word("3"), Word("abc")))
}

func TestEqualArraysByIdentityOnly(t *testing.T) {
	a := NewArray(1, 1)
	b := NewArray(1, 1)
	require.True(t, Equal(a, a))
	require.False(t, Equal(a, b))
}

func TestTruthyRecognizesLogoBooleans(t *testing.T) {
	truth, ok := Truthy(Word("true"))
	require.True(t, ok)
	require.True(t, truth)

	truth, ok = Truthy(Word("FALSE"))
	require.True(t, ok)
	require.False(t, truth)

	_, ok = Truthy(Word("maybe"))
	require.False(t, ok)
}

func TestIsEmpty(t *testing.T) {
	require.True(t, IsEmpty(Word("")))
	require.True(t, IsEmpty(NewList()))
	require.False(t, IsEmpty(Word("x")))
	require.False(t, IsEmpty(NewList(Word("x"))))
}
