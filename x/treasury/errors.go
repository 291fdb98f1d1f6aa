package treasury

import "github.com/iov-one/weave-treasury/errors"

var (
	// ErrPercentTooLarge is returned when a recipient is granted more than
	// the configured per recipient maximum.
	ErrPercentTooLarge = errors.Register(600, "percent too large")

	// ErrInvariant is returned when an operation would leave the ledger in
	// an inconsistent state. Such operation is rejected as a whole.
	ErrInvariant = errors.Register(601, "ledger invariant violated")
)
