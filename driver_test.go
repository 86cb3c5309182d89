package logo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunSequenceRejectsUnconsumedValue(t *testing.T) {
	e := NewInterpreter()
	_, err := e.Run("5")
	require.Error(t, err)
	require.Contains(t, err.Error(), "don't say what to do with")
}

func TestRunSequenceAllowsStatementsForEffect(t *testing.T) {
	e := NewInterpreter()
	_, err := e.Run("make \"x 5")
	require.NoError(t, err)
	v, err := e.Lookup("x")
	require.NoError(t, err)
	require.Equal(t, Word("5"), v)
}

func TestByeUnwindsCleanly(t *testing.T) {
	e := NewInterpreter()
	_, err := e.Run("bye")
	require.NoError(t, err)
}

func TestForceByeStopsAFollowingLoop(t *testing.T) {
	e := NewInterpreter()
	e.SetForceBye()
	_, err := e.Run("repeat 3 [print 1]")
	require.NoError(t, err)
}

func TestRunSerializesConcurrentCalls(t *testing.T) {
	e := NewInterpreter()
	done := make(chan struct{}, 2)
	go func() {
		e.Run("repeat 100 [make \"x 1]")
		done <- struct{}{}
	}()
	go func() {
		e.Run("repeat 100 [make \"y 1]")
		done <- struct{}{}
	}()
	<-done
	<-done
	_, err := e.Lookup("x")
	require.NoError(t, err)
	_, err = e.Lookup("y")
	require.NoError(t, err)
}
