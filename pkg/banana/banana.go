// Package banana computes carrot(x) * durian(x).
package banana

import (
	"fmt"

	"github.com/l3aro/pantry/pkg/arith"
	"github.com/l3aro/pantry/pkg/pantry"
)

// Name identifies the module in traces and errors.
const Name = "banana"

// Banana combines carrot with the durian leaf.
type Banana struct {
	carrot pantry.Applier
	durian pantry.Applier
	ops    arith.Ops
}

// New creates a Banana. A nil ops means wrapping arithmetic.
func New(carrot, durian pantry.Applier, ops arith.Ops) *Banana {
	if ops == nil {
		ops = arith.Wrapping{}
	}
	return &Banana{carrot: carrot, durian: durian, ops: ops}
}

// Apply returns carrot(x) * durian(x). Each dependency is called exactly once.
func (b *Banana) Apply(x int32) (int32, error) {
	c, err := b.carrot.Apply(x)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", Name, err)
	}
	d, err := b.durian.Apply(x)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", Name, err)
	}
	r, err := b.ops.Mul(c, d)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", Name, err)
	}
	return r, nil
}
