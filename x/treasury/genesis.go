package treasury

import (
	"github.com/iov-one/weave-treasury"
	"github.com/iov-one/weave-treasury/errors"
	"github.com/iov-one/weave-treasury/gconf"
)

// GenesisState is the "treasury" section of the genesis file.
type GenesisState struct {
	Recipients      []weave.Address `json:"recipients"`
	Percentages     []weave.Percent `json:"percentages"`
	MintingInterval int64           `json:"minting_interval"`
	CurrentPayout   uint64          `json:"current_payout"`
}

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ weave.Initializer = Initializer{}

// FromGenesis stores the configuration, the minting parameters and the
// initial recipients. Minting interval defaults to one block.
func (Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	conf := DefaultConfiguration()
	if err := gconf.InitConfig(db, opts, PackageName, conf); err != nil {
		return errors.Wrap(err, "init config")
	}

	state := GenesisState{MintingInterval: 1}
	if err := opts.ReadOptions(PackageName, &state); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	bucket := NewBucket()
	params := MintingParams{
		MintingInterval: state.MintingInterval,
		CurrentPayout:   state.CurrentPayout,
	}
	if err := bucket.SaveParams(db, &params); err != nil {
		return errors.Wrap(err, "minting params")
	}

	ledger, err := InitLedger(conf.MaxRecipientPct, state.Recipients, state.Percentages)
	if err != nil {
		return errors.Wrap(err, "recipients")
	}
	if err := bucket.SaveLedger(db, ledger); err != nil {
		return errors.Wrap(err, "recipients")
	}
	return nil
}
