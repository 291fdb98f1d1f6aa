package main

import (
	"flag"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/iov-one/weave-treasury"
	"github.com/iov-one/weave-treasury/app"
	"github.com/iov-one/weave-treasury/errors"
	"github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

func cmdStart(logger log.Logger, home string, args []string, out io.Writer) error {
	fl := flag.NewFlagSet("start", flag.ContinueOnError)
	fl.SetOutput(out)
	blocks := fl.Int("blocks", 0, "stop after producing this many blocks, run forever if zero")
	if err := fl.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	conf, err := loadConfig(home)
	if err != nil {
		return err
	}
	logger, err = newLogger(out, conf.LogLevel)
	if err != nil {
		return err
	}

	db, closeDB := openStore(conf)
	defer closeDB()

	chain, err := newChain(db, logger)
	if err != nil {
		return err
	}
	if chain.ChainID() == "" {
		gen, err := app.LoadGenesis(filepath.Join(home, genesisFile))
		if err != nil {
			return err
		}
		if gen.ChainID != conf.ChainID {
			return errors.Wrapf(errors.ErrInput, "genesis chain id %q does not match configuration %q", gen.ChainID, conf.ChainID)
		}
		if err := initChain(chain, *gen); err != nil {
			return err
		}
	}

	pool, err := newMempool(conf.MempoolDir, newTxCodec())
	if err != nil {
		return err
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	ticker := time.NewTicker(conf.BlockTime)
	defer ticker.Stop()

	logger.Info("starting", "chainID", chain.ChainID(), "height", chain.Height(), "blockTime", conf.BlockTime)
	for produced := 0; *blocks == 0 || produced < *blocks; produced++ {
		select {
		case <-stop:
			logger.Info("stopping", "height", chain.Height())
			return nil
		case <-ticker.C:
		}
		if err := produceBlock(chain, pool, logger); err != nil {
			return err
		}
	}
	return nil
}

// initChain loads the genesis. An invalid genesis is returned as an error.
func initChain(chain *app.Chain, gen app.Genesis) (err error) {
	defer errors.Recover(&err)
	chain.InitChain(gen)
	return nil
}

// produceBlock builds a block with all pending transactions and removes
// them from the mempool, including those that failed.
func produceBlock(chain *app.Chain, pool *mempool, logger log.Logger) error {
	pending, err := pool.Pending()
	if err != nil {
		return err
	}
	var (
		txs   []weave.Tx
		files []string
		done  []string
	)
	for _, p := range pending {
		done = append(done, p.Path)
		if p.Err != nil {
			logger.Error("invalid transaction file", "file", filepath.Base(p.Path), "err", p.Err)
			continue
		}
		txs = append(txs, p.Tx)
		files = append(files, p.Path)
	}

	res, err := chain.ProduceBlock(txs)
	if err != nil {
		return err
	}
	for i, r := range res.Txs {
		name := filepath.Base(files[i])
		if r.Err != nil {
			logger.Error("transaction failed", "height", res.Height, "file", name, "err", r.Err)
			continue
		}
		logger.Info("transaction", append([]interface{}{"height", res.Height, "file", name}, tagKeyvals(r.Result.Tags)...)...)
	}
	if len(res.Tags) > 0 {
		logger.Info("block events", append([]interface{}{"height", res.Height}, tagKeyvals(res.Tags)...)...)
	}
	return pool.Remove(done...)
}

func tagKeyvals(tags []common.KVPair) []interface{} {
	keyvals := make([]interface{}, 0, 2*len(tags))
	for _, t := range tags {
		keyvals = append(keyvals, string(t.Key), string(t.Value))
	}
	return keyvals
}
