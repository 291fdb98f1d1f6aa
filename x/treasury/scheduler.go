package treasury

import (
	"github.com/iov-one/weave-treasury"
	"github.com/iov-one/weave-treasury/errors"
)

// Minter is the currency functionality required to pay out rewards.
// It is implemented by the x/cash extension.
type Minter interface {
	CoinMint(db weave.KVStore, dest weave.Address, amount uint64) error
	Balance(db weave.ReadOnlyKVStore, addr weave.Address) (uint64, error)
}

// Scheduler mints the current payout every minting interval.
type Scheduler struct {
	minter Minter
	bucket Bucket
}

var _ weave.Ticker = (*Scheduler)(nil)

// NewScheduler returns a scheduler minting with given minter.
func NewScheduler(minter Minter) *Scheduler {
	return &Scheduler{
		minter: minter,
		bucket: NewBucket(),
	}
}

// Tick pays out the current payout if the block height is a multiple of the
// minting interval. Recipients are paid in order, the treasury last.
//
// Any minting failure aborts the tick. The caller is expected to discard all
// changes in such case.
func (s *Scheduler) Tick(ctx weave.Context, db weave.KVStore) (*weave.TickResult, error) {
	height, ok := weave.GetHeight(ctx)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "height not in context")
	}
	params, err := s.bucket.Params(db)
	if err != nil {
		return nil, err
	}
	if !params.Due(height) {
		return &weave.TickResult{}, nil
	}

	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, err
	}
	ledger, err := s.bucket.Ledger(db, conf.MaxRecipientPct)
	if err != nil {
		return nil, err
	}

	payout := Split(params.CurrentPayout, conf.MinTreasuryPct, ledger.Allocations())
	events := make([]Event, 0, len(payout.Recipients)+1)
	for _, r := range payout.Recipients {
		e, err := s.mint(db, r.Recipient, r.Amount, height)
		if err != nil {
			return nil, errors.Wrapf(err, "recipient %s", r.Recipient)
		}
		events = append(events, e)
	}
	e, err := s.mint(db, conf.Treasury, payout.Treasury, height)
	if err != nil {
		return nil, errors.Wrap(err, "treasury")
	}
	events = append(events, e)

	weave.GetLogger(ctx).Info("treasury payout",
		"height", height,
		"reward", params.CurrentPayout,
		"treasury", payout.Treasury,
		"recipients", len(payout.Recipients))

	return &weave.TickResult{Tags: Tags(events...)}, nil
}

func (s *Scheduler) mint(db weave.KVStore, account weave.Address, amount uint64, height int64) (Event, error) {
	if err := s.minter.CoinMint(db, account, amount); err != nil {
		return nil, errors.Wrap(err, "cannot mint")
	}
	balance, err := s.minter.Balance(db, account)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read balance")
	}
	return TreasuryMinting{Balance: balance, Tick: height, Account: account}, nil
}
