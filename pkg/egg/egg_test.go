package egg

import (
	"testing"

	"github.com/l3aro/pantry/pkg/arith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsIdentity(t *testing.T) {
	e := New(Default, arith.Wrapping{})
	for _, x := range []int32{-7, 0, 5, 1 << 20} {
		got, err := e.Apply(x)
		require.NoError(t, err)
		assert.Equal(t, x, got)
	}
}
