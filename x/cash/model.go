package cash

import (
	"github.com/iov-one/weave-treasury"
	"github.com/iov-one/weave-treasury/errors"
	amino "github.com/tendermint/go-amino"
)

// BucketName is where we store the balances
const BucketName = "cash"

var cdc = amino.NewCodec()

// Wallet is the balance of a single account.
type Wallet struct {
	Address weave.Address `json:"address"`
	Balance uint64        `json:"balance"`
}

// Validate ensures the wallet belongs to a valid account.
func (w *Wallet) Validate() error {
	return errors.Field("Address", w.Address.Validate(), "")
}

// Add increases the balance, failing if the result would overflow.
func (w *Wallet) Add(amount uint64) error {
	total := w.Balance + amount
	if total < w.Balance {
		return errors.Wrapf(errors.ErrOverflow, "%d + %d", w.Balance, amount)
	}
	w.Balance = total
	return nil
}

// Bucket stores wallets under the account address.
type Bucket struct {
	prefix []byte
}

// NewBucket returns a bucket for managing wallets.
func NewBucket() Bucket {
	return Bucket{prefix: []byte(BucketName + ":")}
}

func (b Bucket) key(addr weave.Address) []byte {
	return append(append([]byte{}, b.prefix...), addr...)
}

// Get returns the wallet of given account or nil if it never received any
// funds.
func (b Bucket) Get(db weave.ReadOnlyKVStore, addr weave.Address) (*Wallet, error) {
	raw, err := db.Get(b.key(addr))
	if err != nil {
		return nil, errors.Wrap(err, "load wallet")
	}
	if raw == nil {
		return nil, nil
	}
	var w Wallet
	if err := cdc.UnmarshalBinaryBare(raw, &w); err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	return &w, nil
}

// GetOrCreate returns the wallet of given account, creating an empty one if
// it does not exist yet.
func (b Bucket) GetOrCreate(db weave.ReadOnlyKVStore, addr weave.Address) (*Wallet, error) {
	w, err := b.Get(db, addr)
	if err == nil && w == nil {
		w = &Wallet{Address: addr}
	}
	return w, err
}

// Save validates and writes the wallet.
func (b Bucket) Save(db weave.KVStore, w *Wallet) error {
	if err := w.Validate(); err != nil {
		return errors.Wrap(err, "invalid wallet")
	}
	raw, err := cdc.MarshalBinaryBare(w)
	if err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	return db.Set(b.key(w.Address), raw)
}
