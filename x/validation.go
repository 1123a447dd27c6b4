package x

import (
	"math"

	"github.com/iov-one/rentbook/errors"
)

// Validater is any struct that can be validated.
// Not the same as a Validator, which votes on the blocks.
type Validater interface {
	Validate() error
}

// MulUint64 returns a*b or ErrOverflow if the product does not fit into
// uint64.
func MulUint64(a, b uint64) (uint64, error) {
	if a != 0 && b > math.MaxUint64/a {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d * %d", a, b)
	}
	return a * b, nil
}

// AddUint64 returns a+b or ErrOverflow if the sum does not fit into uint64.
func AddUint64(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d + %d", a, b)
	}
	return a + b, nil
}

// SubUint64 returns a-b or ErrInsufficientFunds if b is greater than a.
func SubUint64(a, b uint64) (uint64, error) {
	if b > a {
		return 0, errors.Wrapf(errors.ErrInsufficientFunds, "%d - %d", a, b)
	}
	return a - b, nil
}
