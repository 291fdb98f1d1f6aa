package sigs

import (
	"github.com/iov-one/weave-treasury"
	"github.com/iov-one/weave-treasury/errors"
	amino "github.com/tendermint/go-amino"
)

// BucketName is where we store the accounts
const BucketName = "sigs"

var cdc = amino.NewCodec()

// UserData is the state kept for every signer ever seen.
type UserData struct {
	Pubkey   PublicKey
	Sequence int64
}

// Validate returns an error if the user state is inconsistent.
func (u *UserData) Validate() error {
	var errs error
	if seq := u.Sequence; seq < 0 {
		errs = errors.AppendField(errs, "Sequence", ErrInvalidSequence)
	} else if seq > 0 && u.Pubkey == nil {
		errs = errors.Append(errs, errors.Field("Sequence", ErrInvalidSequence, "needs Pubkey"))
	}
	return errs
}

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
// Before incrementing the sequence, this function is testing for a value
// overflow.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	}

	next := u.Sequence + 1

	// maxSequenceValue is limited by the client. The greatest supported
	// nonce value at client side is
	//   Number.MAX_SAFE_INTEGER = 9007199254740991 = 2^53 - 1
	const maxSequenceValue = (1 << 53) - 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// Bucket stores UserData under the signer address.
type Bucket struct {
	prefix []byte
}

// NewBucket creates the proper bucket for this extension
func NewBucket() Bucket {
	return Bucket{prefix: []byte(BucketName + ":")}
}

func (b Bucket) key(addr weave.Address) []byte {
	return append(append([]byte{}, b.prefix...), addr...)
}

// Get returns the user data stored under given address or nil.
func (b Bucket) Get(db weave.ReadOnlyKVStore, addr weave.Address) (*UserData, error) {
	raw, err := db.Get(b.key(addr))
	if err != nil {
		return nil, errors.Wrap(err, "load user")
	}
	if raw == nil {
		return nil, nil
	}
	var u UserData
	if err := cdc.UnmarshalBinaryBare(raw, &u); err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	return &u, nil
}

// GetOrCreate initializes a UserData if none exist for that key
func (b Bucket) GetOrCreate(db weave.ReadOnlyKVStore, pubkey PublicKey) (*UserData, error) {
	u, err := b.Get(db, pubkey.Address())
	if err != nil {
		return nil, err
	}
	if u == nil {
		u = &UserData{Pubkey: pubkey}
	}
	return u, nil
}

// Save validates and stores the user data under its key address.
func (b Bucket) Save(db weave.KVStore, u *UserData) error {
	if err := u.Validate(); err != nil {
		return errors.Wrap(err, "invalid user")
	}
	raw, err := cdc.MarshalBinaryBare(u)
	if err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	return db.Set(b.key(u.Pubkey.Address()), raw)
}
