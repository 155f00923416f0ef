// Package durian provides the durian leaf. Its formula is injected; Default
// is x + 1.
package durian

import (
	"github.com/l3aro/pantry/pkg/arith"
	"github.com/l3aro/pantry/pkg/pantry"
)

// Name identifies the module in traces and errors.
const Name = "durian"

// Default is durian(x) = x + 1.
var Default = pantry.Linear{Scale: 1, Offset: 1}

// New returns the durian leaf for formula f.
func New(f pantry.Linear, ops arith.Ops) pantry.Applier {
	return f.Bind(ops)
}
