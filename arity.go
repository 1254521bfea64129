package gpnode

import (
	"fmt"
	"math/rand"
)

// ArityPolicy holds the arity bounds of a dynamic-arity node together with
// the arity currently in effect.
//
// Invariants:
//
//	0 <= min <= initial <= max
//	min <= current <= max
//
// The zero value is a valid policy for a node without operands.
type ArityPolicy struct {
	initial, min, max int
	current           int
}

// NewArityPolicy creates an arity policy. The current arity is set to initial.
// It returns ErrInvalidConfiguration if any bound is negative or if the bounds
// are not ordered.
func NewArityPolicy(initial, min, max int) (ArityPolicy, error) {
	if initial < 0 || min < 0 || max < 0 {
		return ArityPolicy{}, fmt.Errorf("%w: negative arity bound in (%d,%d,%d)",
			ErrInvalidConfiguration, initial, min, max)
	}
	if min > initial || initial > max {
		return ArityPolicy{}, fmt.Errorf("%w: arity bounds must satisfy min <= initial <= max, have (%d,%d,%d)",
			ErrInvalidConfiguration, initial, min, max)
	}
	return ArityPolicy{
		initial: initial,
		min:     min,
		max:     max,
		current: initial,
	}, nil
}

// Current returns the arity in effect.
func (ap ArityPolicy) Current() int {
	return ap.current
}

// Bounds returns the configured (initial, min, max) arity bounds.
func (ap ArityPolicy) Bounds() (initial, min, max int) {
	return ap.initial, ap.min, ap.max
}

// SetCurrent changes the arity in effect. Values outside of [min, max] are
// rejected with ErrInvalidConfiguration and leave the policy unchanged.
func (ap *ArityPolicy) SetCurrent(n int) error {
	if n < ap.min || n > ap.max {
		return fmt.Errorf("%w: arity %d out of range [%d,%d]", ErrInvalidConfiguration,
			n, ap.min, ap.max)
	}
	ap.current = n
	return nil
}

// Randomize sets the current arity to a value drawn uniformly from [min, max].
func (ap *ArityPolicy) Randomize(rnd *rand.Rand) error {
	if rnd == nil {
		return fmt.Errorf("%w: no random source for arity mutation", ErrInvalidConfiguration)
	}
	return ap.SetCurrent(ap.min + rnd.Intn(ap.max-ap.min+1))
}

func (ap ArityPolicy) String() string {
	return fmt.Sprintf("arity %d of [%d,%d] (initial %d)", ap.current, ap.min, ap.max, ap.initial)
}
