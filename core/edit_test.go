package core_test

import (
	"testing"

	"github.com/CodMac/ng-di-transform/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEdits(t *testing.T) {
	src := []byte("constructor(a: A, b: B) {}")

	b := core.NewEditBuilder()
	b.Delete(12, 18)
	b.Insert(0, "x;")
	b.Insert(0, "\n")
	b.ReplaceRange(24, 26, "{ }")
	require.Equal(t, 4, b.Len())

	out, err := core.ApplyEdits(src, b.Edits)
	require.NoError(t, err)
	assert.Equal(t, "x;\nconstructor(b: B) { }", string(out))
	assert.Equal(t, "constructor(a: A, b: B) {}", string(src), "source must not be modified")
}

func TestApplyEdits_InsertAtReplacedRangeStart(t *testing.T) {
	out, err := core.ApplyEdits([]byte("(a)"), []core.TextEdit{
		{StartOffset: 0, EndOffset: 3, NewText: "()"},
		{StartOffset: 0, EndOffset: 0, NewText: "f"},
	})
	require.NoError(t, err)
	assert.Equal(t, "f()", string(out))
}

func TestApplyEdits_Errors(t *testing.T) {
	src := []byte("abcdef")

	_, err := core.ApplyEdits(src, []core.TextEdit{
		{StartOffset: 1, EndOffset: 4},
		{StartOffset: 3, EndOffset: 5},
	})
	assert.ErrorIs(t, err, core.ErrOverlappingEdits)

	_, err = core.ApplyEdits(src, []core.TextEdit{{StartOffset: 2, EndOffset: 10}})
	assert.Error(t, err)

	_, err = core.ApplyEdits(src, []core.TextEdit{{StartOffset: 4, EndOffset: 2}})
	assert.Error(t, err)
}

func TestApplyEdits_Empty(t *testing.T) {
	src := []byte("abc")
	out, err := core.ApplyEdits(src, nil)
	require.NoError(t, err)
	assert.Equal(t, src, out)
}
