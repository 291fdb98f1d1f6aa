package treasury

import (
	"github.com/iov-one/weave-treasury"
	"github.com/iov-one/weave-treasury/errors"
)

// MintingParams controls how often and how much is minted.
type MintingParams struct {
	// MintingInterval is the number of blocks between two payouts.
	MintingInterval int64 `json:"minting_interval"`
	// CurrentPayout is the amount split on every payout.
	CurrentPayout uint64 `json:"current_payout"`
}

// Validate rejects a zero or negative interval.
func (p *MintingParams) Validate() error {
	if p.MintingInterval < 1 {
		return errors.Field("MintingInterval", errors.ErrInput, "must be positive, got %d", p.MintingInterval)
	}
	return nil
}

// Due returns true if a payout must happen at given height.
func (p *MintingParams) Due(height int64) bool {
	return p.MintingInterval > 0 && height%p.MintingInterval == 0
}

// ledgerState is the persisted form of a Ledger. The per recipient maximum
// is part of the configuration.
type ledgerState struct {
	Allocations []RecipientAllocation
}

// Bucket persists the ledger and the minting parameters.
type Bucket struct {
	ledgerKey []byte
	paramsKey []byte
}

// NewBucket returns a bucket using the package keys.
func NewBucket() Bucket {
	return Bucket{
		ledgerKey: []byte(PackageName + ":ledger"),
		paramsKey: []byte(PackageName + ":params"),
	}
}

// Ledger loads the ledger, using maxRecipientPct as its per recipient
// maximum. An empty ledger is returned if none was saved yet.
func (b Bucket) Ledger(db weave.ReadOnlyKVStore, maxRecipientPct weave.Percent) (*Ledger, error) {
	raw, err := db.Get(b.ledgerKey)
	if err != nil {
		return nil, errors.Wrap(err, "load ledger")
	}
	l := NewLedger(maxRecipientPct)
	if raw == nil {
		return l, nil
	}
	var state ledgerState
	if err := cdc.UnmarshalBinaryBare(raw, &state); err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	l.allocations = state.Allocations
	if err := l.Validate(); err != nil {
		return nil, errors.Wrap(err, "stored ledger")
	}
	return l, nil
}

// SaveLedger validates and writes the ledger. An empty ledger is stored as
// a missing key, as its encoding is empty and a commit store rejects empty
// values.
func (b Bucket) SaveLedger(db weave.KVStore, l *Ledger) error {
	if err := l.Validate(); err != nil {
		return err
	}
	if len(l.allocations) == 0 {
		if err := db.Delete(b.ledgerKey); err != nil {
			return errors.Wrap(err, "delete ledger")
		}
		return nil
	}
	raw, err := cdc.MarshalBinaryBare(ledgerState{Allocations: l.allocations})
	if err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	return db.Set(b.ledgerKey, raw)
}

// Params loads the minting parameters.
func (b Bucket) Params(db weave.ReadOnlyKVStore) (*MintingParams, error) {
	raw, err := db.Get(b.paramsKey)
	if err != nil {
		return nil, errors.Wrap(err, "load params")
	}
	if raw == nil {
		return nil, errors.Wrap(errors.ErrNotFound, "minting params")
	}
	var p MintingParams
	if err := cdc.UnmarshalBinaryBare(raw, &p); err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	return &p, nil
}

// SaveParams validates and writes the minting parameters.
func (b Bucket) SaveParams(db weave.KVStore, p *MintingParams) error {
	if err := p.Validate(); err != nil {
		return err
	}
	raw, err := cdc.MarshalBinaryBare(p)
	if err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	return db.Set(b.paramsKey, raw)
}
