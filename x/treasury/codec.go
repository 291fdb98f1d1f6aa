package treasury

import (
	amino "github.com/tendermint/go-amino"
)

// RegisterAmino registers all messages of this package with given codec.
// The weave.Msg interface itself must be registered by the caller.
func RegisterAmino(c *amino.Codec) {
	c.RegisterConcrete(&AddRecipientMsg{}, "treasury/AddRecipientMsg", nil)
	c.RegisterConcrete(&RemoveRecipientMsg{}, "treasury/RemoveRecipientMsg", nil)
	c.RegisterConcrete(&UpdateRecipientMsg{}, "treasury/UpdateRecipientMsg", nil)
	c.RegisterConcrete(&SetMintingIntervalMsg{}, "treasury/SetMintingIntervalMsg", nil)
	c.RegisterConcrete(&SetCurrentPayoutMsg{}, "treasury/SetCurrentPayoutMsg", nil)
	c.RegisterConcrete(&UpdateConfigurationMsg{}, "treasury/UpdateConfigurationMsg", nil)
}
