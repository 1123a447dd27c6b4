package rental

import "github.com/iov-one/rentbook/errors"

var (
	ErrNotRented           = errors.Register(1100, "not rented")
	ErrRentalPeriodNotOver = errors.Register(1101, "rental period not over")
	ErrAlreadyInitialized  = errors.Register(1102, "already initialized")
	ErrAlreadyRented       = errors.Register(1103, "already rented")
)
