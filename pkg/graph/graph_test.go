package graph

import (
	"math"
	"testing"

	"github.com/l3aro/pantry/pkg/arith"
	"github.com/l3aro/pantry/pkg/pantry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_DefaultAnswer(t *testing.T) {
	g, err := Build(DefaultRecipe())
	require.NoError(t, err)

	got, err := g.Answer(5)
	require.NoError(t, err)
	assert.Equal(t, int32(11), got)
	assert.Equal(t, arith.PolicyWrap, g.Policy())
}

func TestBuild_InvalidPolicy(t *testing.T) {
	r := DefaultRecipe()
	r.Policy = "saturate"

	_, err := Build(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid overflow policy")
}

func TestBuild_EmptyPolicyMeansWrap(t *testing.T) {
	r := DefaultRecipe()
	r.Policy = ""

	g, err := Build(r)
	require.NoError(t, err)
	assert.Equal(t, arith.PolicyWrap, g.Recipe().Policy)
}

func TestBuild_NormalizesPolicyName(t *testing.T) {
	r := DefaultRecipe()
	r.Policy = " Checked "

	g, err := Build(r)
	require.NoError(t, err)
	assert.Equal(t, arith.PolicyChecked, g.Policy())
	assert.Equal(t, arith.PolicyChecked, g.Recipe().Policy)
	assert.NoError(t, r.Validate())
}

func TestBuild_InjectedLeaves(t *testing.T) {
	square := pantry.ApplyFunc(func(x int32) (int32, error) { return x * x, nil })
	double := pantry.ApplyFunc(func(x int32) (int32, error) { return 2 * x, nil })

	g, err := Build(DefaultRecipe(), WithEgg(double), WithDurian(square))
	require.NoError(t, err)

	for _, x := range []int32{-3, 0, 1, 5, 10} {
		e, d := 2*x, x*x
		want := (d-e)*d + e

		got, err := g.Answer(x)
		require.NoError(t, err)
		assert.Equal(t, want, got, "x=%d", x)
	}
}

func TestEvaluate_Trace(t *testing.T) {
	g, err := Build(DefaultRecipe())
	require.NoError(t, err)

	res, err := g.Evaluate(5)
	require.NoError(t, err)

	assert.Equal(t, int32(5), res.Input)
	assert.Equal(t, int32(11), res.Answer)
	assert.Equal(t, "The answer is 11.", res.Line())

	want := []Step{
		{Module: "apple", Depth: 0, Input: 5, Output: 11},
		{Module: "banana", Depth: 1, Input: 5, Output: 6},
		{Module: "carrot", Depth: 2, Input: 5, Output: 1},
		{Module: "durian", Depth: 3, Input: 5, Output: 6},
		{Module: "egg", Depth: 3, Input: 5, Output: 5},
		{Module: "durian", Depth: 2, Input: 5, Output: 6},
		{Module: "egg", Depth: 1, Input: 5, Output: 5},
	}
	assert.Equal(t, want, res.Steps)
}

func TestEvaluate_MatchesAnswer(t *testing.T) {
	g, err := Build(Recipe{
		Egg:    pantry.Linear{Scale: 3, Offset: -7},
		Durian: pantry.Linear{Scale: -2, Offset: 11},
		Policy: arith.PolicyWrap,
	})
	require.NoError(t, err)

	for _, x := range []int32{math.MinInt32, -1, 0, 1, 5, math.MaxInt32} {
		want, err := g.Answer(x)
		require.NoError(t, err)

		res, err := g.Evaluate(x)
		require.NoError(t, err)
		assert.Equal(t, want, res.Answer, "x=%d", x)
	}
}

func TestEvaluate_CheckedOverflowKeepsPartialTrace(t *testing.T) {
	r := DefaultRecipe()
	r.Policy = arith.PolicyChecked
	g, err := Build(r)
	require.NoError(t, err)

	res, err := g.Evaluate(math.MaxInt32)
	require.Error(t, err)
	assert.ErrorIs(t, err, arith.ErrOverflow)
	assert.Equal(t, "apple: banana: carrot: integer overflow: 2147483647 + 1", err.Error())

	require.Len(t, res.Steps, 4)
	assert.Equal(t, "durian", res.Steps[3].Module)
	assert.NotEmpty(t, res.Steps[3].Error)
	assert.NotEmpty(t, res.Steps[0].Error)
}

func TestEvaluate_WrapAtMax(t *testing.T) {
	g, err := Build(DefaultRecipe())
	require.NoError(t, err)

	// durian(max) wraps to min; carrot = min - max wraps to 1;
	// banana = 1 * min = min; apple = min + max = -1.
	got, err := g.Answer(math.MaxInt32)
	require.NoError(t, err)
	assert.Equal(t, int32(-1), got)
}

func TestRecipe_Fingerprint(t *testing.T) {
	a, err := DefaultRecipe().Fingerprint()
	require.NoError(t, err)
	assert.Len(t, a, 16)

	b, err := DefaultRecipe().Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, a, b)

	empty := DefaultRecipe()
	empty.Policy = ""
	c, err := empty.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, a, c, "empty policy is the same recipe as wrap")

	other := DefaultRecipe()
	other.Durian.Offset = 2
	d, err := other.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, a, d)

	checked := DefaultRecipe()
	checked.Policy = arith.PolicyChecked
	e, err := checked.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, a, e)

	bad := DefaultRecipe()
	bad.Policy = "nope"
	_, err = bad.Fingerprint()
	require.Error(t, err)
}
