// Package arith provides the int32 arithmetic used to combine apply results.
//
// Two policies are available. Wrapping follows two's-complement wraparound,
// the same behavior as an unchecked fixed-width int. Checked reports an
// *OverflowError instead of producing a wrapped value.
package arith

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrOverflow is matched by every *OverflowError via errors.Is.
var ErrOverflow = errors.New("integer overflow")

// Policy selects how overflow is handled.
type Policy string

const (
	PolicyWrap    Policy = "wrap"
	PolicyChecked Policy = "checked"
)

// Ops combines two int32 operands.
type Ops interface {
	Add(a, b int32) (int32, error)
	Sub(a, b int32) (int32, error)
	Mul(a, b int32) (int32, error)
	Policy() Policy
}

// OverflowError describes an operation whose exact result does not fit in int32.
type OverflowError struct {
	Op   string // "+", "-" or "*"
	A, B int32
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("integer overflow: %d %s %d", e.A, e.Op, e.B)
}

// Is reports whether target is ErrOverflow.
func (e *OverflowError) Is(target error) bool {
	return target == ErrOverflow
}

// ParsePolicy parses a policy name. An empty string yields PolicyWrap.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyWrap:
		return PolicyWrap, nil
	case PolicyChecked:
		return PolicyChecked, nil
	default:
		return "", fmt.Errorf("invalid overflow policy: %s (must be 'wrap' or 'checked')", s)
	}
}

// New returns the Ops for the given policy. Unknown policies fall back to wrapping.
func New(p Policy) Ops {
	if p == PolicyChecked {
		return Checked{}
	}
	return Wrapping{}
}

// Wrapping implements two's-complement wraparound. It never returns an error.
type Wrapping struct{}

func (Wrapping) Add(a, b int32) (int32, error) { return a + b, nil }
func (Wrapping) Sub(a, b int32) (int32, error) { return a - b, nil }
func (Wrapping) Mul(a, b int32) (int32, error) { return a * b, nil }
func (Wrapping) Policy() Policy                { return PolicyWrap }

// Checked computes in int64 and rejects results outside the int32 range.
type Checked struct{}

func (Checked) Add(a, b int32) (int32, error) {
	return narrow("+", a, b, int64(a)+int64(b))
}

func (Checked) Sub(a, b int32) (int32, error) {
	return narrow("-", a, b, int64(a)-int64(b))
}

// Mul cannot overflow int64: |a*b| <= 2^62.
func (Checked) Mul(a, b int32) (int32, error) {
	return narrow("*", a, b, int64(a)*int64(b))
}

func (Checked) Policy() Policy { return PolicyChecked }

func narrow(op string, a, b int32, wide int64) (int32, error) {
	if wide < math.MinInt32 || wide > math.MaxInt32 {
		return 0, &OverflowError{Op: op, A: a, B: b}
	}
	return int32(wide), nil
}
