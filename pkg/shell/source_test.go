package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptSource_ReadOutsideScopeFails(t *testing.T) {
	src := NewScriptSource("hello")

	_, err := src.ReadLine()
	assert.ErrorIs(t, err, ErrNotStarted)

	require.NoError(t, src.Start())
	line, err := src.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "hello", line)

	require.NoError(t, src.Stop())
	_, err = src.ReadLine()
	assert.ErrorIs(t, err, ErrNotStarted)
}

func TestScriptSource_ExhaustionSignalsInterrupt(t *testing.T) {
	src := NewScriptSource("one")
	require.NoError(t, src.Start())

	_, err := src.ReadLine()
	require.NoError(t, err)

	_, err = src.ReadLine()
	assert.ErrorIs(t, err, ErrInterrupted)

	// The condition is sticky.
	_, err = src.ReadLine()
	assert.ErrorIs(t, err, ErrInterrupted)
}

func TestScriptSource_InterruptPreemptsRemainingLines(t *testing.T) {
	src := NewScriptSource("one", "two")
	require.NoError(t, src.Start())
	src.Interrupt()

	_, err := src.ReadLine()
	assert.ErrorIs(t, err, ErrInterrupted)
}
