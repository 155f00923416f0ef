// Package apple is the top of the call graph: banana(x) + egg(x).
package apple

import (
	"fmt"

	"github.com/l3aro/pantry/pkg/arith"
	"github.com/l3aro/pantry/pkg/pantry"
)

// Name identifies the module in traces and errors.
const Name = "apple"

// DefaultInput is the argument the program evaluates when none is configured.
const DefaultInput int32 = 5

// Apple combines banana with the egg leaf.
type Apple struct {
	banana pantry.Applier
	egg    pantry.Applier
	ops    arith.Ops
}

// New creates an Apple. A nil ops means wrapping arithmetic.
func New(banana, egg pantry.Applier, ops arith.Ops) *Apple {
	if ops == nil {
		ops = arith.Wrapping{}
	}
	return &Apple{banana: banana, egg: egg, ops: ops}
}

// Apply returns banana(x) + egg(x). Each dependency is called exactly once.
func (a *Apple) Apply(x int32) (int32, error) {
	b, err := a.banana.Apply(x)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", Name, err)
	}
	e, err := a.egg.Apply(x)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", Name, err)
	}
	r, err := a.ops.Add(b, e)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", Name, err)
	}
	return r, nil
}

// Answer formats the program's output line for result.
func Answer(result int32) string {
	return fmt.Sprintf("The answer is %d.", result)
}
