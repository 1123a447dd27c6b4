package sigs

import "github.com/iov-one/rentbook/errors"

var (
	ErrInvalidSequence = errors.Register(120, "invalid sequence number")
)
