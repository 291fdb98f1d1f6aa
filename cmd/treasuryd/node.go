package main

import (
	"encoding/hex"
	"io"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/iov-one/weave-treasury"
	"github.com/iov-one/weave-treasury/app"
	"github.com/iov-one/weave-treasury/errors"
	"github.com/iov-one/weave-treasury/store/iavl"
	"github.com/iov-one/weave-treasury/x/cash"
	"github.com/iov-one/weave-treasury/x/sigs"
	"github.com/iov-one/weave-treasury/x/treasury"
	"github.com/iov-one/weave-treasury/x/utils"
	"github.com/tendermint/tendermint/libs/log"
	"golang.org/x/crypto/ed25519"
)

// newTxCodec returns the codec of all messages the node understands.
func newTxCodec() *app.TxCodec {
	return app.NewTxCodec(treasury.RegisterAmino)
}

// newChain wires all extensions together on top of db.
func newChain(db weave.CommitKVStore, logger log.Logger) (*app.Chain, error) {
	rt := app.NewRouter()
	treasury.RegisterRoutes(rt, sigs.Authenticate{})

	handler := app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		sigs.NewDecorator(),
		utils.NewSavepoint().OnDeliver(),
		utils.NewActionTagger(),
	).WithHandler(rt)

	initializers := weave.ChainInitializers{
		cash.Initializer{},
		treasury.Initializer{},
	}
	scheduler := treasury.NewScheduler(cash.NewController())
	return app.NewChain(db, handler, initializers, logger, scheduler)
}

// openStore opens the commit store configured for the node. The returned
// function releases it.
func openStore(conf *nodeConfig) (weave.CommitKVStore, func()) {
	var db iavl.CommitStore
	switch conf.DBBackend {
	case backendMemDB:
		db = iavl.NewMemCommitStore()
	default:
		db = iavl.NewCommitStore(filepath.Join(conf.Home, dataDir), "state")
	}
	return db, db.Close
}

// newLogger writes to out, filtered by the configured level.
func newLogger(out io.Writer, level string) (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(out))
	option, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return log.NewFilter(logger, option).With("module", "treasuryd"), nil
}

func loadKey(path string) (sigs.PrivateKey, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrNotFound, err.Error())
	}
	key, err := hex.DecodeString(strings.TrimSpace(string(raw)))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "key file %s: %s", path, err)
	}
	if len(key) != ed25519.PrivateKeySize {
		return nil, errors.Wrapf(errors.ErrInput, "key file %s: want %d bytes, got %d", path, ed25519.PrivateKeySize, len(key))
	}
	return sigs.PrivateKey(key), nil
}

func saveKey(path string, key sigs.PrivateKey) error {
	if err := ioutil.WriteFile(path, []byte(hex.EncodeToString(key)), 0600); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}
