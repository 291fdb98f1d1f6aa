package cash

import (
	"github.com/iov-one/weave-treasury"
	"github.com/iov-one/weave-treasury/errors"
)

// Controller is the functionality needed by other extensions to create
// funds and read balances.
type Controller interface {
	// CoinMint adds amount to the balance of dest. Fails if it overflows
	// the wallet.
	CoinMint(db weave.KVStore, dest weave.Address, amount uint64) error
	// Balance returns the current balance of an account. An unknown
	// account has zero balance.
	Balance(db weave.ReadOnlyKVStore, addr weave.Address) (uint64, error)
}

// BaseController is a simple implementation of Controller
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a controller operating on the default bucket.
func NewController() BaseController {
	return BaseController{bucket: NewBucket()}
}

// CoinMint attempts to add the given amount to the destination address.
func (c BaseController) CoinMint(db weave.KVStore, dest weave.Address, amount uint64) error {
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	w, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if err := w.Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(db, w)
}

// Balance returns the balance of given account.
func (c BaseController) Balance(db weave.ReadOnlyKVStore, addr weave.Address) (uint64, error) {
	w, err := c.bucket.Get(db, addr)
	if err != nil || w == nil {
		return 0, err
	}
	return w.Balance, nil
}
