package treasury

import (
	"github.com/iov-one/weave-treasury"
	"github.com/iov-one/weave-treasury/errors"
)

const (
	pathAddRecipientMsg        = "treasury/add_recipient"
	pathRemoveRecipientMsg     = "treasury/remove_recipient"
	pathUpdateRecipientMsg     = "treasury/update_recipient"
	pathSetMintingIntervalMsg  = "treasury/set_minting_interval"
	pathSetCurrentPayoutMsg    = "treasury/set_current_payout"
	pathUpdateConfigurationMsg = "treasury/update_configuration"
)

// AddRecipientMsg grants a new recipient a share of every payout.
type AddRecipientMsg struct {
	Recipient weave.Address `json:"recipient"`
	Percent   weave.Percent `json:"percent"`
}

var _ weave.Msg = (*AddRecipientMsg)(nil)

func (AddRecipientMsg) Path() string {
	return pathAddRecipientMsg
}

func (m *AddRecipientMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Recipient", m.Recipient.Validate())
	errs = errors.AppendField(errs, "Percent", m.Percent.Validate())
	return errs
}

// RemoveRecipientMsg revokes the share of a recipient.
type RemoveRecipientMsg struct {
	Recipient weave.Address `json:"recipient"`
}

var _ weave.Msg = (*RemoveRecipientMsg)(nil)

func (RemoveRecipientMsg) Path() string {
	return pathRemoveRecipientMsg
}

func (m *RemoveRecipientMsg) Validate() error {
	return errors.Field("Recipient", m.Recipient.Validate(), "")
}

// UpdateRecipientMsg changes the share granted to an existing recipient.
type UpdateRecipientMsg struct {
	Recipient weave.Address `json:"recipient"`
	Percent   weave.Percent `json:"percent"`
}

var _ weave.Msg = (*UpdateRecipientMsg)(nil)

func (UpdateRecipientMsg) Path() string {
	return pathUpdateRecipientMsg
}

func (m *UpdateRecipientMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Recipient", m.Recipient.Validate())
	errs = errors.AppendField(errs, "Percent", m.Percent.Validate())
	return errs
}

// SetMintingIntervalMsg changes the number of blocks between payouts.
type SetMintingIntervalMsg struct {
	Interval int64 `json:"interval"`
}

var _ weave.Msg = (*SetMintingIntervalMsg)(nil)

func (SetMintingIntervalMsg) Path() string {
	return pathSetMintingIntervalMsg
}

func (m *SetMintingIntervalMsg) Validate() error {
	if m.Interval < 1 {
		return errors.Field("Interval", errors.ErrInput, "must be positive, got %d", m.Interval)
	}
	return nil
}

// SetCurrentPayoutMsg changes the amount minted on every payout.
type SetCurrentPayoutMsg struct {
	Amount uint64 `json:"amount"`
}

var _ weave.Msg = (*SetCurrentPayoutMsg)(nil)

func (SetCurrentPayoutMsg) Path() string {
	return pathSetCurrentPayoutMsg
}

// Validate accepts any amount, including zero.
func (m *SetCurrentPayoutMsg) Validate() error {
	return nil
}

// UpdateConfigurationMsg patches the configuration. Zero value fields of the
// patch are ignored, so neither MinTreasuryPct nor MaxRecipientPct can be
// patched to 0%. Use the smallest non zero share, 1%, instead.
type UpdateConfigurationMsg struct {
	Patch *Configuration `json:"patch"`
}

var _ weave.Msg = (*UpdateConfigurationMsg)(nil)

func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfigurationMsg
}

func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Field("Patch", errors.ErrEmpty, "")
	}
	var errs error
	if m.Patch.Admin != nil {
		errs = errors.AppendField(errs, "Patch.Admin", m.Patch.Admin.Validate())
	}
	if m.Patch.Treasury != nil {
		errs = errors.AppendField(errs, "Patch.Treasury", m.Patch.Treasury.Validate())
	}
	errs = errors.AppendField(errs, "Patch.MinTreasuryPct", m.Patch.MinTreasuryPct.Validate())
	errs = errors.AppendField(errs, "Patch.MaxRecipientPct", m.Patch.MaxRecipientPct.Validate())
	return errs
}
