// Package carrot computes durian(x) - egg(x).
package carrot

import (
	"fmt"

	"github.com/l3aro/pantry/pkg/arith"
	"github.com/l3aro/pantry/pkg/pantry"
)

// Name identifies the module in traces and errors.
const Name = "carrot"

// Carrot combines the durian and egg leaves.
type Carrot struct {
	durian pantry.Applier
	egg    pantry.Applier
	ops    arith.Ops
}

// New creates a Carrot. A nil ops means wrapping arithmetic.
func New(durian, egg pantry.Applier, ops arith.Ops) *Carrot {
	if ops == nil {
		ops = arith.Wrapping{}
	}
	return &Carrot{durian: durian, egg: egg, ops: ops}
}

// Apply returns durian(x) - egg(x), evaluating durian first.
func (c *Carrot) Apply(x int32) (int32, error) {
	d, err := c.durian.Apply(x)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", Name, err)
	}
	e, err := c.egg.Apply(x)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", Name, err)
	}
	r, err := c.ops.Sub(d, e)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", Name, err)
	}
	return r, nil
}
