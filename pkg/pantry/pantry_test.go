package pantry

import (
	"errors"
	"math"
	"testing"

	"github.com/l3aro/pantry/pkg/arith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyFunc(t *testing.T) {
	var a Applier = ApplyFunc(func(x int32) (int32, error) { return x * 3, nil })

	got, err := a.Apply(7)
	require.NoError(t, err)
	assert.Equal(t, int32(21), got)
}

func TestLinear_Bind(t *testing.T) {
	tests := []struct {
		name string
		l    Linear
		x    int32
		want int32
	}{
		{"identity", Linear{Scale: 1}, 5, 5},
		{"offset", Linear{Scale: 1, Offset: 1}, 5, 6},
		{"scaled", Linear{Scale: -2, Offset: 3}, 4, -5},
		{"zero", Linear{}, 123, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.l.Bind(arith.Wrapping{}).Apply(tt.x)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLinear_BindOverflow(t *testing.T) {
	l := Linear{Scale: 1, Offset: 1}

	got, err := l.Bind(arith.Wrapping{}).Apply(math.MaxInt32)
	require.NoError(t, err)
	assert.Equal(t, int32(math.MinInt32), got)

	_, err = l.Bind(arith.Checked{}).Apply(math.MaxInt32)
	require.Error(t, err)
	assert.True(t, errors.Is(err, arith.ErrOverflow))
}

func TestLinear_String(t *testing.T) {
	assert.Equal(t, "2*x + -1", Linear{Scale: 2, Offset: -1}.String())
}
