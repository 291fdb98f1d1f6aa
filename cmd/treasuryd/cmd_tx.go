package main

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"

	"github.com/iov-one/weave-treasury"
	"github.com/iov-one/weave-treasury/errors"
	"github.com/iov-one/weave-treasury/x/treasury"
	"github.com/tendermint/tendermint/libs/log"
)

const txUsage = "tx <add|remove|update|set-interval|set-payout|configure> [flags]"

func cmdTx(logger log.Logger, home string, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.Wrapf(errors.ErrInput, "missing transaction kind: %s", txUsage)
	}
	kind := args[0]

	fl := flag.NewFlagSet("tx "+kind, flag.ContinueOnError)
	fl.SetOutput(out)
	var (
		keyPath   = fl.String("key", filepath.Join(home, keyFile), "hex encoded ed25519 key file of the signer")
		seq       = fl.Int64("seq", 0, "sequence of the signer, incremented by every signed transaction")
		recipient = fl.String("recipient", "", "recipient address")
		percent   = fl.String("percent", "", "recipient share, for example 20%")
		interval  = fl.Int64("interval", 0, "number of blocks between payouts")
		amount    = fl.Uint64("amount", 0, "amount minted on every payout")
		admin     = fl.String("admin", "", "new admin address")
		treasuryF = fl.String("treasury", "", "new treasury address")
		minPct    = fl.String("min-treasury", "", "new minimal treasury share")
		maxPct    = fl.String("max-recipient", "", "new maximal recipient share")
	)
	if err := fl.Parse(args[1:]); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	var msg weave.Msg
	switch kind {
	case "add", "update":
		addr, err := weave.ParseAddress(*recipient)
		if err != nil {
			return errors.Wrap(err, "recipient")
		}
		pct, err := weave.ParsePercent(*percent)
		if err != nil {
			return errors.Wrap(err, "percent")
		}
		if kind == "add" {
			msg = &treasury.AddRecipientMsg{Recipient: addr, Percent: pct}
		} else {
			msg = &treasury.UpdateRecipientMsg{Recipient: addr, Percent: pct}
		}
	case "remove":
		addr, err := weave.ParseAddress(*recipient)
		if err != nil {
			return errors.Wrap(err, "recipient")
		}
		msg = &treasury.RemoveRecipientMsg{Recipient: addr}
	case "set-interval":
		msg = &treasury.SetMintingIntervalMsg{Interval: *interval}
	case "set-payout":
		msg = &treasury.SetCurrentPayoutMsg{Amount: *amount}
	case "configure":
		patch, err := configurationPatch(*admin, *treasuryF, *minPct, *maxPct)
		if err != nil {
			return err
		}
		msg = &treasury.UpdateConfigurationMsg{Patch: patch}
	default:
		return errors.Wrapf(errors.ErrInput, "unknown transaction kind %q: %s", kind, txUsage)
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}

	conf, err := loadConfig(home)
	if err != nil {
		return err
	}
	key, err := loadKey(*keyPath)
	if err != nil {
		return err
	}

	codec := newTxCodec()
	tx := codec.NewTx(msg)
	if err := tx.Sign(key, conf.ChainID, *seq); err != nil {
		return errors.Wrap(err, "sign")
	}
	pool, err := newMempool(conf.MempoolDir, codec)
	if err != nil {
		return err
	}
	path, err := pool.Submit(tx)
	if err != nil {
		return err
	}
	logger.Debug("transaction submitted", "path", msg.Path(), "file", path)
	fmt.Fprintln(out, path)
	return nil
}

// configurationPatch builds a patch from the non empty values.
func configurationPatch(admin, treasuryAddr, minPct, maxPct string) (*treasury.Configuration, error) {
	var (
		patch treasury.Configuration
		err   error
	)
	if admin != "" {
		if patch.Admin, err = weave.ParseAddress(admin); err != nil {
			return nil, errors.Wrap(err, "admin")
		}
	}
	if treasuryAddr != "" {
		if patch.Treasury, err = weave.ParseAddress(treasuryAddr); err != nil {
			return nil, errors.Wrap(err, "treasury")
		}
	}
	if minPct != "" {
		if patch.MinTreasuryPct, err = weave.ParsePercent(minPct); err != nil {
			return nil, errors.Wrap(err, "min treasury")
		}
	}
	if maxPct != "" {
		if patch.MaxRecipientPct, err = weave.ParsePercent(maxPct); err != nil {
			return nil, errors.Wrap(err, "max recipient")
		}
	}
	return &patch, nil
}
