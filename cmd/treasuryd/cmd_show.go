package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/weave-treasury"
	"github.com/iov-one/weave-treasury/errors"
	"github.com/iov-one/weave-treasury/x/cash"
	"github.com/iov-one/weave-treasury/x/treasury"
	"github.com/tendermint/tendermint/libs/log"
)

// stateView is the output of the show command.
type stateView struct {
	ChainID         string                         `json:"chain_id"`
	Height          int64                          `json:"height"`
	Configuration   *treasury.Configuration        `json:"configuration"`
	Params          *treasury.MintingParams        `json:"params"`
	Allocations     []treasury.RecipientAllocation `json:"allocations"`
	TreasuryBalance uint64                         `json:"treasury_balance"`
	Balances        map[string]uint64              `json:"balances"`
}

// cmdShow prints the state of the last committed block. The store is opened
// exclusively, so it cannot run next to a node using goleveldb.
func cmdShow(_ log.Logger, home string, args []string, out io.Writer) error {
	fl := flag.NewFlagSet("show", flag.ContinueOnError)
	fl.SetOutput(out)
	if err := fl.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	conf, err := loadConfig(home)
	if err != nil {
		return err
	}
	db, closeDB := openStore(conf)
	defer closeDB()

	// Logs of the loading chain would mix with the printed state.
	chain, err := newChain(db, log.NewNopLogger())
	if err != nil {
		return err
	}
	view := stateView{
		ChainID:  chain.ChainID(),
		Height:   chain.Height(),
		Balances: make(map[string]uint64),
	}
	if view.ChainID == "" {
		return errors.Wrap(errors.ErrState, "chain not initialized, run start first")
	}

	err = chain.View(func(db weave.ReadOnlyKVStore) error {
		c, err := treasury.LoadConfiguration(db)
		if err != nil {
			return err
		}
		view.Configuration = c

		bucket := treasury.NewBucket()
		if view.Params, err = bucket.Params(db); err != nil {
			return err
		}
		ledger, err := bucket.Ledger(db, c.MaxRecipientPct)
		if err != nil {
			return err
		}
		view.Allocations = ledger.Allocations()

		ctrl := cash.NewController()
		if view.TreasuryBalance, err = ctrl.Balance(db, c.Treasury); err != nil {
			return err
		}
		for _, a := range view.Allocations {
			balance, err := ctrl.Balance(db, a.Recipient)
			if err != nil {
				return err
			}
			view.Balances[a.Recipient.String()] = balance
		}
		return nil
	})
	if err != nil {
		return err
	}

	raw, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	fmt.Fprintln(out, string(raw))
	return nil
}
