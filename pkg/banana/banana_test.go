package banana

import (
	"errors"
	"math"
	"testing"

	"github.com/l3aro/pantry/pkg/arith"
	"github.com/l3aro/pantry/pkg/pantry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counting(n *int, f func(int32) int32) pantry.Applier {
	return pantry.ApplyFunc(func(x int32) (int32, error) {
		*n++
		return f(x), nil
	})
}

func TestApply_CarrotTimesDurian(t *testing.T) {
	carrot := func(x int32) int32 { return x - 2 }
	durian := func(x int32) int32 { return x + 1 }

	for _, x := range []int32{-9, 0, 2, 5, 1000} {
		var carrotCalls, durianCalls int
		b := New(counting(&carrotCalls, carrot), counting(&durianCalls, durian), nil)

		got, err := b.Apply(x)
		require.NoError(t, err)
		assert.Equal(t, carrot(x)*durian(x), got)
		assert.Equal(t, 1, carrotCalls)
		assert.Equal(t, 1, durianCalls)
	}
}

func TestApply_CarrotErrorSkipsDurian(t *testing.T) {
	boom := errors.New("boom")
	var durianCalls int
	b := New(
		pantry.ApplyFunc(func(int32) (int32, error) { return 0, boom }),
		counting(&durianCalls, func(x int32) int32 { return x }),
		nil,
	)

	_, err := b.Apply(3)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, durianCalls)
}

func TestApply_CheckedOverflow(t *testing.T) {
	big := pantry.ApplyFunc(func(int32) (int32, error) { return math.MaxInt32, nil })
	two := pantry.ApplyFunc(func(int32) (int32, error) { return 2, nil })

	got, err := New(big, two, arith.Wrapping{}).Apply(0)
	require.NoError(t, err)
	assert.Equal(t, int32(-2), got)

	_, err = New(big, two, arith.Checked{}).Apply(0)
	require.Error(t, err)
	assert.ErrorIs(t, err, arith.ErrOverflow)
	assert.Contains(t, err.Error(), "banana: integer overflow")
}
