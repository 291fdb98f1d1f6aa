package main

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/iov-one/weave-treasury/errors"
	"github.com/iov-one/weave-treasury/weavetest"
	"github.com/iov-one/weave-treasury/x/sigs"
	"github.com/iov-one/weave-treasury/x/treasury"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMempool(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "pool")
	pool, err := newMempool(dir, newTxCodec())
	require.NoError(t, err)

	pending, err := pool.Pending()
	require.NoError(t, err)
	assert.Empty(t, pending)

	msgs := []*treasury.SetCurrentPayoutMsg{{Amount: 1}, {Amount: 2}, {Amount: 3}}
	for _, msg := range msgs {
		_, err := pool.Submit(pool.codec.NewTx(msg))
		require.NoError(t, err)
	}
	// Ignored files.
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, ".partial.tx"), []byte("x"), 0600))
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0600))
	// Reported as invalid.
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "zzz.tx"), []byte("not a transaction"), 0600))

	pending, err = pool.Pending()
	require.NoError(t, err)
	require.Len(t, pending, 4)
	for i, want := range msgs {
		require.NoError(t, pending[i].Err)
		msg, err := pending[i].Tx.GetMsg()
		require.NoError(t, err)
		assert.Equal(t, want, msg)
	}
	assert.True(t, errors.ErrInput.Is(pending[3].Err), "got %+v", pending[3].Err)

	require.NoError(t, pool.Remove(pending[0].Path, pending[3].Path))
	// Removing a missing file is not an error.
	require.NoError(t, pool.Remove(pending[0].Path))

	pending, err = pool.Pending()
	require.NoError(t, err)
	require.Len(t, pending, 2)
}

func TestMempoolSignedTx(t *testing.T) {
	codec := newTxCodec()
	pool, err := newMempool(t.TempDir(), codec)
	require.NoError(t, err)

	key, err := sigs.GenPrivateKey()
	require.NoError(t, err)
	tx := codec.NewTx(&treasury.RemoveRecipientMsg{Recipient: weavetest.NewAddress()})
	require.NoError(t, tx.Sign(key, "test-chain", 4))
	_, err = pool.Submit(tx)
	require.NoError(t, err)

	pending, err := pool.Pending()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.NoError(t, pending[0].Err)
	signatures := pending[0].Tx.GetSignatures()
	require.Len(t, signatures, 1)
	assert.Equal(t, int64(4), signatures[0].Sequence)
	assert.Equal(t, key.PublicKey(), signatures[0].Pubkey)
}
