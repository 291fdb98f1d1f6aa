package treasury

import (
	"testing"

	"github.com/iov-one/weave-treasury"
	"github.com/iov-one/weave-treasury/errors"
	"github.com/iov-one/weave-treasury/store"
	"github.com/iov-one/weave-treasury/store/iavl"
	"github.com/iov-one/weave-treasury/weavetest"
	"github.com/iov-one/weave-treasury/weavetest/assert"
)

func TestMintingParams(t *testing.T) {
	p := MintingParams{MintingInterval: 3, CurrentPayout: 10}
	assert.Nil(t, p.Validate())
	assert.Equal(t, false, p.Due(1))
	assert.Equal(t, true, p.Due(3))
	assert.Equal(t, true, p.Due(9))

	p.MintingInterval = 0
	assert.FieldError(t, p.Validate(), "MintingInterval", errors.ErrInput)
	assert.Equal(t, false, p.Due(3))
}

func TestBucket(t *testing.T) {
	db := store.MemStore()
	b := NewBucket()

	_, err := b.Params(db)
	assert.IsErr(t, errors.ErrNotFound, err)
	assert.IsErr(t, errors.ErrInput, b.SaveParams(db, &MintingParams{}))

	assert.Nil(t, b.SaveParams(db, &MintingParams{MintingInterval: 2, CurrentPayout: 7}))
	p, err := b.Params(db)
	assert.Nil(t, err)
	assert.Equal(t, MintingParams{MintingInterval: 2, CurrentPayout: 7}, *p)

	empty, err := b.Ledger(db, 40)
	assert.Nil(t, err)
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, weave.Percent(40), empty.MaxRecipientPct())

	addr := weavetest.NewAddress()
	l := NewLedger(40)
	_, err = l.Add(addr, 30)
	assert.Nil(t, err)
	assert.Nil(t, b.SaveLedger(db, l))

	loaded, err := b.Ledger(db, 40)
	assert.Nil(t, err)
	assert.Equal(t, l.Allocations(), loaded.Allocations())
}

func TestBucketLedgerCommit(t *testing.T) {
	db := iavl.NewMemCommitStore()
	defer db.Close()
	b := NewBucket()
	alice := weavetest.NewAddress()
	bob := weavetest.NewAddress()

	// commit writes the ledger in a new version and reads it back.
	commit := func(l *Ledger) *Ledger {
		t.Helper()
		cache := db.CacheWrap()
		assert.Nil(t, b.SaveLedger(cache, l))
		assert.Nil(t, cache.Write())
		_, err := db.Commit()
		assert.Nil(t, err)
		loaded, err := b.Ledger(db.CacheWrap(), l.MaxRecipientPct())
		assert.Nil(t, err)
		return loaded
	}

	loaded := commit(NewLedger(50))
	assert.Equal(t, 0, loaded.Len())

	l := NewLedger(50)
	_, err := l.Add(alice, 50)
	assert.Nil(t, err)
	_, err = l.Add(bob, 0)
	assert.Nil(t, err)
	loaded = commit(l)
	assert.Equal(t, l.Allocations(), loaded.Allocations())

	// Removing the last recipient leaves no ledger behind.
	_, err = l.Remove(alice)
	assert.Nil(t, err)
	_, err = l.Remove(bob)
	assert.Nil(t, err)
	loaded = commit(l)
	assert.Equal(t, 0, loaded.Len())
	raw, err := db.Get(b.ledgerKey)
	assert.Nil(t, err)
	assert.Nil(t, raw)
}
