package sigs

import "github.com/iov-one/weave-treasury/errors"

var (
	// ErrInvalidSequence is returned when a signature carries a nonce
	// other than the one expected for the signer.
	ErrInvalidSequence = errors.Register(120, "invalid sequence number")
)
