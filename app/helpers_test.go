package app

import (
	"github.com/iov-one/weave-treasury"
	"github.com/iov-one/weave-treasury/errors"
	amino "github.com/tendermint/go-amino"
	"github.com/tendermint/tendermint/libs/common"
)

// writeMsg requests a single key to be written.
type writeMsg struct {
	Key   []byte
	Value []byte
}

func (writeMsg) Path() string { return "test/write" }

func (m *writeMsg) Validate() error {
	if len(m.Key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	return nil
}

func registerTestMsgs(c *amino.Codec) {
	c.RegisterConcrete(&writeMsg{}, "test/writeMsg", nil)
}

// writeHandler stores the key and value of a writeMsg.
type writeHandler struct{}

func (writeHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	var msg writeMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

func (writeHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	var msg writeMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	if err := db.Set(msg.Key, msg.Value); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{
		Tags: []common.KVPair{{Key: []byte("key"), Value: msg.Key}},
	}, nil
}

// heightTicker writes the height of every block it runs in, and fails at
// the configured height after writing.
type heightTicker struct {
	failAt int64
}

func (t heightTicker) Tick(ctx weave.Context, db weave.KVStore) (*weave.TickResult, error) {
	height, _ := weave.GetHeight(ctx)
	key := []byte{'h', byte(height)}
	if err := db.Set(key, []byte("tick")); err != nil {
		return nil, err
	}
	if height == t.failAt {
		return nil, errors.Wrap(errors.ErrHuman, "failing tick")
	}
	return &weave.TickResult{
		Tags: []common.KVPair{{Key: []byte("tick"), Value: key}},
	}, nil
}

// genesisInit writes every app state key into the store.
type genesisInit struct {
	err error
}

func (g genesisInit) FromGenesis(opts weave.Options, db weave.KVStore) error {
	if g.err != nil {
		return g.err
	}
	for k, v := range opts {
		if err := db.Set([]byte(k), v); err != nil {
			return err
		}
	}
	return nil
}
