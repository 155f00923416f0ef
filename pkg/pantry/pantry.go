// Package pantry defines the contract shared by the egg, durian, carrot,
// banana and apple modules.
package pantry

import (
	"fmt"

	"github.com/l3aro/pantry/pkg/arith"
)

// Applier maps one integer to another. Implementations must be pure.
type Applier interface {
	Apply(x int32) (int32, error)
}

// ApplyFunc adapts a plain function to the Applier interface.
type ApplyFunc func(x int32) (int32, error)

// Apply calls f(x).
func (f ApplyFunc) Apply(x int32) (int32, error) {
	return f(x)
}

// Linear is the leaf formula Scale*x + Offset.
type Linear struct {
	Scale  int32 `yaml:"scale" json:"scale" msgpack:"scale"`
	Offset int32 `yaml:"offset" json:"offset" msgpack:"offset"`
}

// String renders the formula, e.g. "1*x + 0".
func (l Linear) String() string {
	return fmt.Sprintf("%d*x + %d", l.Scale, l.Offset)
}

// Bind returns an Applier evaluating l with ops.
func (l Linear) Bind(ops arith.Ops) Applier {
	return ApplyFunc(func(x int32) (int32, error) {
		scaled, err := ops.Mul(l.Scale, x)
		if err != nil {
			return 0, err
		}
		return ops.Add(scaled, l.Offset)
	})
}
