package weavetest

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/iov-one/weave-treasury"
)

var condSeq uint64

// NewCondition returns a new, unique condition. Conditions are derived from
// a process wide sequence, so that each call returns a value never seen
// before in this test binary.
func NewCondition() weave.Condition {
	var raw [8]byte
	binary.BigEndian.PutUint64(raw[:], atomic.AddUint64(&condSeq, 1))
	return weave.NewCondition("weavetest", "seq", raw[:])
}

// NewAddress returns the address of a new, unique condition.
func NewAddress() weave.Address {
	return NewCondition().Address()
}
