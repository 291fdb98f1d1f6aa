package app

import (
	"github.com/iov-one/weave-treasury"
	"github.com/iov-one/weave-treasury/errors"
	"github.com/iov-one/weave-treasury/x/sigs"
	amino "github.com/tendermint/go-amino"
)

// Tx is the transaction format of the chain: a single message signed by any
// number of signers.
type Tx struct {
	Msg        weave.Msg
	Signatures []*sigs.StdSignature

	// codec is used to compute sign bytes. It is not serialized.
	codec *TxCodec
}

var _ weave.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// GetMsg returns the single message of this transaction.
func (tx *Tx) GetMsg() (weave.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrState, "missing message")
	}
	return tx.Msg, nil
}

// GetSignatures returns all attached signatures.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the serialized message. Signatures are never part of
// the signed content.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	if tx.codec == nil {
		return nil, errors.Wrap(errors.ErrHuman, "transaction not bound to a codec")
	}
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrState, "missing message")
	}
	bz, err := tx.codec.cdc.MarshalBinaryBare(tx.Msg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return bz, nil
}

// Sign appends a signature of given signer created for the sequence.
func (tx *Tx) Sign(signer sigs.Signer, chainID string, seq int64) error {
	sig, err := sigs.SignTx(signer, tx, chainID, seq)
	if err != nil {
		return errors.Wrap(err, "sign")
	}
	tx.Signatures = append(tx.Signatures, sig)
	return nil
}

// TxCodec serializes transactions. Each extension contributes its messages
// through a register function.
type TxCodec struct {
	cdc *amino.Codec
}

// NewTxCodec returns a codec aware of all messages registered by given
// functions.
func NewTxCodec(registers ...func(*amino.Codec)) *TxCodec {
	cdc := amino.NewCodec()
	cdc.RegisterInterface((*weave.Msg)(nil), nil)
	for _, register := range registers {
		register(cdc)
	}
	cdc.Seal()
	return &TxCodec{cdc: cdc}
}

// NewTx returns an unsigned transaction carrying msg.
func (c *TxCodec) NewTx(msg weave.Msg) *Tx {
	return &Tx{Msg: msg, codec: c}
}

// EncodeTx serializes a transaction.
func (c *TxCodec) EncodeTx(tx *Tx) ([]byte, error) {
	bz, err := c.cdc.MarshalBinaryLengthPrefixed(tx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return bz, nil
}

// DecodeTx parses a serialized transaction.
func (c *TxCodec) DecodeTx(raw []byte) (*Tx, error) {
	var tx Tx
	if err := c.cdc.UnmarshalBinaryLengthPrefixed(raw, &tx); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrState, "missing message")
	}
	tx.codec = c
	return &tx, nil
}

// MarshalJSON renders a value using the registered type names.
func (c *TxCodec) MarshalJSON(o interface{}) ([]byte, error) {
	return c.cdc.MarshalJSONIndent(o, "", "  ")
}
