package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/iov-one/weave-treasury"
	"github.com/iov-one/weave-treasury/app"
	"github.com/iov-one/weave-treasury/errors"
	"github.com/iov-one/weave-treasury/x/sigs"
	"github.com/iov-one/weave-treasury/x/treasury"
	"github.com/tendermint/tendermint/libs/log"
)

func cmdInit(logger log.Logger, home string, args []string, out io.Writer) error {
	fl := flag.NewFlagSet("init", flag.ContinueOnError)
	fl.SetOutput(out)
	var (
		chainID   = fl.String("chain-id", "treasury-local", "chain id of the new chain")
		adminKey  = fl.String("admin-key", "", "hex encoded ed25519 key file of the admin, generated if empty")
		treasuryF = fl.String("treasury", "", "address of the treasury account, admin address if empty")
		interval  = fl.Int64("interval", 1, "number of blocks between payouts")
		payout    = fl.Uint64("payout", 0, "amount minted on every payout")
		blockTime = fl.Duration("block-time", 0, "time between blocks, configuration default if zero")
		dbBackend = fl.String("db-backend", backendGoLevelDB, "state database backend: goleveldb or memdb")
	)
	if err := fl.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	if _, err := os.Stat(filepath.Join(home, configFile)); err == nil {
		return errors.Wrapf(errors.ErrDuplicate, "%s already initialized", home)
	}
	if err := os.MkdirAll(home, 0700); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	values := map[string]interface{}{
		keyChainID:   *chainID,
		keyDBBackend: *dbBackend,
	}
	if *blockTime > 0 {
		values[keyBlockTime] = blockTime.String()
	}
	if err := writeConfig(home, values); err != nil {
		return err
	}
	conf, err := loadConfig(home)
	if err != nil {
		return err
	}

	var key sigs.PrivateKey
	if *adminKey != "" {
		key, err = loadKey(*adminKey)
	} else {
		key, err = sigs.GenPrivateKey()
	}
	if err != nil {
		return errors.Wrap(err, "admin key")
	}
	if err := saveKey(filepath.Join(home, keyFile), key); err != nil {
		return err
	}
	admin := key.PublicKey().Address()

	treasuryAddr := admin
	if *treasuryF != "" {
		treasuryAddr, err = weave.ParseAddress(*treasuryF)
		if err != nil {
			return errors.Wrap(err, "treasury address")
		}
	}

	gen, err := genesis(conf.ChainID, admin, treasuryAddr, *interval, *payout)
	if err != nil {
		return err
	}
	if err := app.SaveGenesis(filepath.Join(home, genesisFile), gen); err != nil {
		return err
	}

	logger.Info("initialized", "home", home, "chainID", conf.ChainID, "admin", admin)
	fmt.Fprintf(out, "admin address: %s\n", admin)
	return nil
}

// genesis returns the genesis of a chain administrated by admin, with no
// recipients and default percentages.
func genesis(chainID string, admin, treasuryAddr weave.Address, interval int64, payout uint64) (*app.Genesis, error) {
	conf := treasury.DefaultConfiguration()
	conf.Admin = admin
	conf.Treasury = treasuryAddr
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration")
	}
	params := treasury.MintingParams{MintingInterval: interval, CurrentPayout: payout}
	if err := params.Validate(); err != nil {
		return nil, errors.Wrap(err, "minting params")
	}

	confRaw, err := json.Marshal(map[string]interface{}{treasury.PackageName: conf})
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	stateRaw, err := json.Marshal(treasury.GenesisState{
		Recipients:      []weave.Address{},
		Percentages:     []weave.Percent{},
		MintingInterval: params.MintingInterval,
		CurrentPayout:   params.CurrentPayout,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return &app.Genesis{
		ChainID: chainID,
		AppState: weave.Options{
			"conf":               confRaw,
			treasury.PackageName: stateRaw,
			"cash":               json.RawMessage(`[]`),
		},
	}, nil
}
