package carrot

import (
	"errors"
	"math"
	"testing"

	"github.com/l3aro/pantry/pkg/arith"
	"github.com/l3aro/pantry/pkg/pantry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder appends the name of each leaf as it is called.
type recorder struct {
	calls []string
}

func (r *recorder) leaf(name string, f func(int32) int32) pantry.Applier {
	return pantry.ApplyFunc(func(x int32) (int32, error) {
		r.calls = append(r.calls, name)
		return f(x), nil
	})
}

func TestApply_DurianMinusEgg(t *testing.T) {
	durian := func(x int32) int32 { return 3*x + 2 }
	egg := func(x int32) int32 { return x - 4 }

	for _, x := range []int32{-100, -1, 0, 1, 5, 999} {
		rec := &recorder{}
		c := New(rec.leaf("durian", durian), rec.leaf("egg", egg), nil)

		got, err := c.Apply(x)
		require.NoError(t, err)
		assert.Equal(t, durian(x)-egg(x), got)
		assert.Equal(t, []string{"durian", "egg"}, rec.calls)
	}
}

func TestApply_LeafErrorIsWrapped(t *testing.T) {
	boom := errors.New("boom")
	failing := pantry.ApplyFunc(func(int32) (int32, error) { return 0, boom })
	ok := pantry.ApplyFunc(func(x int32) (int32, error) { return x, nil })

	_, err := New(failing, ok, nil).Apply(1)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "carrot: boom", err.Error())
}

func TestApply_Overflow(t *testing.T) {
	durian := pantry.ApplyFunc(func(int32) (int32, error) { return math.MinInt32, nil })
	egg := pantry.ApplyFunc(func(int32) (int32, error) { return 1, nil })

	got, err := New(durian, egg, arith.Wrapping{}).Apply(0)
	require.NoError(t, err)
	assert.Equal(t, int32(math.MaxInt32), got)

	_, err = New(durian, egg, arith.Checked{}).Apply(0)
	require.Error(t, err)
	assert.ErrorIs(t, err, arith.ErrOverflow)
}
