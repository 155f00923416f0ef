// Package egg provides the egg leaf. Its formula is injected; Default is
// the identity.
package egg

import (
	"github.com/l3aro/pantry/pkg/arith"
	"github.com/l3aro/pantry/pkg/pantry"
)

// Name identifies the module in traces and errors.
const Name = "egg"

// Default is egg(x) = x.
var Default = pantry.Linear{Scale: 1, Offset: 0}

// New returns the egg leaf for formula f.
func New(f pantry.Linear, ops arith.Ops) pantry.Applier {
	return f.Bind(ops)
}
