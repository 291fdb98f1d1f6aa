package treasury

import (
	"testing"

	"github.com/iov-one/weave-treasury"
	"github.com/iov-one/weave-treasury/app"
	"github.com/iov-one/weave-treasury/weavetest"
	"github.com/iov-one/weave-treasury/weavetest/assert"
)

func TestTxCodecRoundTrip(t *testing.T) {
	codec := app.NewTxCodec(RegisterAmino)
	addr := weavetest.NewAddress()

	msgs := []weave.Msg{
		&AddRecipientMsg{Recipient: addr, Percent: 10},
		&RemoveRecipientMsg{Recipient: addr},
		&UpdateRecipientMsg{Recipient: addr, Percent: 33},
		&SetMintingIntervalMsg{Interval: 12},
		&SetCurrentPayoutMsg{Amount: 9500000},
		&UpdateConfigurationMsg{Patch: &Configuration{MinTreasuryPct: 20}},
	}
	for _, msg := range msgs {
		raw, err := codec.EncodeTx(codec.NewTx(msg))
		assert.Nil(t, err)
		tx, err := codec.DecodeTx(raw)
		assert.Nil(t, err)
		got, err := tx.GetMsg()
		assert.Nil(t, err)
		assert.Equal(t, msg, got)
	}
}
