package app

import (
	"context"

	"github.com/iov-one/weave-treasury"
	"github.com/iov-one/weave-treasury/errors"
	deadlock "github.com/sasha-s/go-deadlock"
	"github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

// Chain is a single node block producer. Transactions are delivered into the
// block being built, tickers run at its end and Commit persists it.
//
// All state access goes through the mutex, so a payout can never observe a
// half applied administrative change.
type Chain struct {
	mu deadlock.Mutex

	store       *CommitStore
	handler     weave.Handler
	initializer weave.Initializer
	tickers     []weave.Ticker
	logger      log.Logger

	chainID string
	// height of the last committed block
	height int64
}

// TxResult is the outcome of delivering a single transaction.
type TxResult struct {
	Result *weave.DeliverResult
	Err    error
}

// BlockResult describes a produced block.
type BlockResult struct {
	Height int64
	Hash   []byte
	Txs    []TxResult
	// Tags emitted by tickers at the end of the block.
	Tags []common.KVPair
}

// NewChain loads the latest state of db.
func NewChain(
	db weave.CommitKVStore,
	handler weave.Handler,
	initializer weave.Initializer,
	logger log.Logger,
	tickers ...weave.Ticker,
) (*Chain, error) {
	store, err := NewCommitStore(db)
	if err != nil {
		return nil, err
	}
	info, err := store.CommitInfo()
	if err != nil {
		return nil, errors.Wrap(err, "commit info")
	}
	chainID, err := loadChainID(store.CheckStore())
	if err != nil {
		return nil, err
	}
	return &Chain{
		store:       store,
		handler:     handler,
		initializer: initializer,
		tickers:     tickers,
		logger:      logger,
		chainID:     chainID,
		height:      info.Version,
	}, nil
}

// ChainID returns the chain id or an empty string if the chain was not
// initialized yet.
func (c *Chain) ChainID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.chainID
}

// Height returns the height of the last committed block.
func (c *Chain) Height() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.height
}

// InitChain stores the chain id and loads the genesis state. It panics on
// any error as a node must not start from an invalid genesis.
func (c *Chain) InitChain(gen Genesis) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.chainID != "" {
		panic(errors.Wrapf(errors.ErrState, "chain %q already initialized", c.chainID))
	}
	db := c.store.DeliverStore()
	if err := saveChainID(db, gen.ChainID); err != nil {
		panic(err)
	}
	if err := c.initializer.FromGenesis(gen.AppState, db); err != nil {
		panic(errors.Wrap(err, "genesis"))
	}
	c.chainID = gen.ChainID
	c.logger.Info("chain initialized", "chainID", gen.ChainID)
}

// CheckTx runs the transaction against the check state without affecting
// the block being built.
func (c *Chain) CheckTx(tx weave.Tx) (*weave.CheckResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx, err := c.context()
	if err != nil {
		return nil, err
	}
	return c.handler.Check(ctx, c.store.CheckStore(), tx)
}

// DeliverTx executes the transaction as part of the block being built.
func (c *Chain) DeliverTx(tx weave.Tx) (*weave.DeliverResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deliverTx(tx)
}

func (c *Chain) deliverTx(tx weave.Tx) (*weave.DeliverResult, error) {
	ctx, err := c.context()
	if err != nil {
		return nil, err
	}
	return c.handler.Deliver(ctx, c.store.DeliverStore(), tx)
}

// EndBlock runs all tickers for the block being built. Tickers run in a
// savepoint: if any fails, none of their changes is kept.
func (c *Chain) EndBlock() (*weave.TickResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.endBlock()
}

func (c *Chain) endBlock() (*weave.TickResult, error) {
	ctx, err := c.context()
	if err != nil {
		return nil, err
	}
	cache := c.store.DeliverStore().CacheWrap()
	var tags []common.KVPair
	for _, t := range c.tickers {
		res, err := t.Tick(ctx, cache)
		if err != nil {
			cache.Discard()
			return nil, errors.Wrap(err, "tick")
		}
		tags = append(tags, res.Tags...)
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "write tick changes")
	}
	return &weave.TickResult{Tags: tags}, nil
}

// Commit persists the block being built.
func (c *Chain) Commit() (weave.CommitID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commit()
}

func (c *Chain) commit() (weave.CommitID, error) {
	id, err := c.store.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	c.height = id.Version
	c.logger.Info("commit", "height", id.Version, "hash", common.HexBytes(id.Hash))
	return id, nil
}

// ProduceBlock builds and commits the next block. A failing transaction is
// recorded in the result and does not prevent the block. A failing tick is
// logged and its changes are dropped.
func (c *Chain) ProduceBlock(txs []weave.Tx) (*BlockResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.chainID == "" {
		return nil, errors.Wrap(errors.ErrState, "chain not initialized")
	}
	res := BlockResult{
		Height: c.height + 1,
		Txs:    make([]TxResult, len(txs)),
	}
	for i, tx := range txs {
		r, err := c.deliverTx(tx)
		res.Txs[i] = TxResult{Result: r, Err: err}
	}
	tick, err := c.endBlock()
	if err != nil {
		c.logger.Error("end block", "height", res.Height, "err", err)
	} else {
		res.Tags = tick.Tags
	}
	id, err := c.commit()
	if err != nil {
		return nil, err
	}
	res.Hash = id.Hash
	return &res, nil
}

// View calls fn with the last committed state.
func (c *Chain) View(fn func(db weave.ReadOnlyKVStore) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn(c.store.committed.CacheWrap())
}

// context returns the context of the block being built.
func (c *Chain) context() (weave.Context, error) {
	if c.chainID == "" {
		return nil, errors.Wrap(errors.ErrState, "chain not initialized")
	}
	ctx := weave.WithHeight(context.Background(), c.height+1)
	ctx = weave.WithChainID(ctx, c.chainID)
	ctx = weave.WithLogger(ctx, c.logger)
	return ctx, nil
}
