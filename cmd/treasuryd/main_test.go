package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iov-one/weave-treasury"
	"github.com/iov-one/weave-treasury/errors"
	"github.com/iov-one/weave-treasury/weavetest"
	"github.com/iov-one/weave-treasury/x/treasury"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestNodeLifecycle(t *testing.T) {
	home := t.TempDir()
	logger := log.NewNopLogger()
	run := func(cmd command, args ...string) string {
		t.Helper()
		var out bytes.Buffer
		require.NoError(t, cmd(logger, home, args, &out), out.String())
		return out.String()
	}

	out := run(cmdInit, "-chain-id", "lifecycle-test", "-payout", "1000", "-block-time", "10ms")
	key, err := loadKey(filepath.Join(home, keyFile))
	require.NoError(t, err)
	admin := key.PublicKey().Address()
	assert.Contains(t, out, admin.String())

	var buf bytes.Buffer
	err = cmdInit(logger, home, nil, &buf)
	require.True(t, errors.ErrDuplicate.Is(err), "got %+v", err)

	err = cmdShow(logger, home, nil, &buf)
	require.True(t, errors.ErrState.Is(err), "got %+v", err)

	alice := weavetest.NewAddress()
	bob := weavetest.NewAddress()
	run(cmdTx, "add", "-recipient", alice.String(), "-percent", "20%", "-seq", "0")
	run(cmdTx, "add", "-recipient", bob.String(), "-percent", "10", "-seq", "1")
	// Signed with a wrong sequence, rejected by the node.
	run(cmdTx, "remove", "-recipient", alice.String(), "-seq", "7")

	run(cmdStart, "-blocks", "2")

	var view stateView
	require.NoError(t, json.Unmarshal([]byte(run(cmdShow)), &view))
	assert.Equal(t, "lifecycle-test", view.ChainID)
	assert.Equal(t, int64(2), view.Height)
	assert.Equal(t, admin, view.Configuration.Admin)
	assert.Equal(t, admin, view.Configuration.Treasury)
	assert.Equal(t, treasury.MintingParams{MintingInterval: 1, CurrentPayout: 1000}, *view.Params)
	assert.Equal(t, []treasury.RecipientAllocation{
		{Recipient: alice, Proposed: 20, Current: 20},
		{Recipient: bob, Proposed: 10, Current: 10},
	}, view.Allocations)

	// Every block pays 1000: half is reserved for the treasury, alice
	// gets 20% and bob 10% of the other half.
	assert.Equal(t, uint64(2*850), view.TreasuryBalance)
	assert.Equal(t, uint64(2*100), view.Balances[alice.String()])
	assert.Equal(t, uint64(2*50), view.Balances[bob.String()])

	// All transactions were consumed, including the rejected one.
	conf, err := loadConfig(home)
	require.NoError(t, err)
	pool, err := newMempool(conf.MempoolDir, newTxCodec())
	require.NoError(t, err)
	pending, err := pool.Pending()
	require.NoError(t, err)
	assert.Empty(t, pending)

	// A restarted node continues the chain.
	run(cmdTx, "set-payout", "-amount", "10", "-seq", "2")
	run(cmdStart, "-blocks", "1")
	require.NoError(t, json.Unmarshal([]byte(run(cmdShow)), &view))
	assert.Equal(t, int64(3), view.Height)
	assert.Equal(t, uint64(2*850+9), view.TreasuryBalance)
}

func TestTxCommandErrors(t *testing.T) {
	home := t.TempDir()
	logger := log.NewNopLogger()
	var out bytes.Buffer
	require.NoError(t, cmdInit(logger, home, []string{"-db-backend", "memdb"}, &out))

	cases := map[string]struct {
		args    []string
		wantErr *errors.Error
	}{
		"missing kind": {
			args:    nil,
			wantErr: errors.ErrInput,
		},
		"unknown kind": {
			args:    []string{"burn"},
			wantErr: errors.ErrInput,
		},
		"missing recipient": {
			args:    []string{"add", "-percent", "10"},
			wantErr: errors.ErrEmpty,
		},
		"percent too large": {
			args:    []string{"update", "-recipient", weavetest.NewAddress().String(), "-percent", "101"},
			wantErr: errors.ErrInput,
		},
		"zero interval": {
			args:    []string{"set-interval", "-interval", "0"},
			wantErr: errors.ErrInput,
		},
		"missing key": {
			args:    []string{"set-payout", "-amount", "5", "-key", filepath.Join(home, "missing.key")},
			wantErr: errors.ErrNotFound,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var out bytes.Buffer
			err := cmdTx(logger, home, tc.args, &out)
			require.True(t, tc.wantErr.Is(err), "got %+v", err)
		})
	}

	var buf bytes.Buffer
	require.NoError(t, cmdTx(logger, home, []string{"configure", "-max-recipient", "60%"}, &buf))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(buf.String()), txExt))
}

func TestGenesisFile(t *testing.T) {
	admin := weavetest.NewAddress()
	gen, err := genesis("genesis-test", admin, admin, 3, 77)
	require.NoError(t, err)

	var confs map[string]treasury.Configuration
	require.NoError(t, json.Unmarshal(gen.AppState["conf"], &confs))
	assert.Equal(t, admin, confs[treasury.PackageName].Admin)
	assert.Equal(t, weave.Percent(50), confs[treasury.PackageName].MinTreasuryPct)

	var state treasury.GenesisState
	require.NoError(t, gen.AppState.ReadOptions(treasury.PackageName, &state))
	assert.Equal(t, int64(3), state.MintingInterval)
	assert.Equal(t, uint64(77), state.CurrentPayout)

	_, err = genesis("genesis-test", admin, admin, 0, 77)
	require.True(t, errors.ErrInput.Is(err), "got %+v", err)
	_, err = genesis("genesis-test", nil, admin, 1, 77)
	require.True(t, errors.ErrEmpty.Is(err), "got %+v", err)
}
