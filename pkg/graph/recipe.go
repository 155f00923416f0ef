package graph

import (
	"fmt"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/l3aro/pantry/pkg/arith"
	"github.com/l3aro/pantry/pkg/durian"
	"github.com/l3aro/pantry/pkg/egg"
	"github.com/l3aro/pantry/pkg/pantry"
)

// Recipe is everything that determines the graph's results: the two leaf
// formulas and the overflow policy.
type Recipe struct {
	Egg    pantry.Linear
	Durian pantry.Linear
	Policy arith.Policy
}

// DefaultRecipe returns egg(x) = x, durian(x) = x + 1 with wrapping arithmetic.
func DefaultRecipe() Recipe {
	return Recipe{
		Egg:    egg.Default,
		Durian: durian.Default,
		Policy: arith.PolicyWrap,
	}
}

// Validate checks the policy name.
func (r Recipe) Validate() error {
	_, err := r.normalize()
	return err
}

// normalize returns r with its policy name canonicalized.
func (r Recipe) normalize() (Recipe, error) {
	p, err := arith.ParsePolicy(string(r.Policy))
	if err != nil {
		return r, err
	}
	r.Policy = p
	return r, nil
}

// Fingerprint returns a stable hex digest of the recipe. Two recipes with
// the same fingerprint produce the same answers.
func (r Recipe) Fingerprint() (string, error) {
	r, err := r.normalize()
	if err != nil {
		return "", err
	}

	h, err := hashstructure.Hash(r, hashstructure.FormatV2, nil)
	if err != nil {
		return "", fmt.Errorf("hashing recipe: %w", err)
	}
	return fmt.Sprintf("%016x", h), nil
}
