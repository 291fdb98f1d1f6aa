package treasury

import (
	"github.com/iov-one/weave-treasury"
	"github.com/iov-one/weave-treasury/errors"
	"github.com/iov-one/weave-treasury/gconf"
	amino "github.com/tendermint/go-amino"
)

// PackageName is the name of this extension. It is used as the configuration
// key and as the message path prefix.
const PackageName = "treasury"

var cdc = amino.NewCodec()

// Configuration is the chain level setup of the treasury.
type Configuration struct {
	// Admin is the only address allowed to change recipients, minting
	// parameters and this configuration.
	Admin weave.Address `json:"admin"`
	// Treasury is the account receiving the treasury part of every payout.
	Treasury weave.Address `json:"treasury"`
	// MinTreasuryPct is the minimal share of every payout granted to the
	// treasury.
	MinTreasuryPct weave.Percent `json:"min_treasury_pct"`
	// MaxRecipientPct is the maximal share a single recipient can be
	// granted.
	MaxRecipientPct weave.Percent `json:"max_recipient_pct"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

// DefaultConfiguration returns a configuration with default percentages.
// Addresses must be provided.
func DefaultConfiguration() *Configuration {
	return &Configuration{
		MinTreasuryPct:  50,
		MaxRecipientPct: 50,
	}
}

// Validate ensures the configuration is usable.
func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Admin", c.Admin.Validate())
	errs = errors.AppendField(errs, "Treasury", c.Treasury.Validate())
	errs = errors.AppendField(errs, "MinTreasuryPct", c.MinTreasuryPct.Validate())
	errs = errors.AppendField(errs, "MaxRecipientPct", c.MaxRecipientPct.Validate())
	return errs
}

// GetAdmin returns the configuration admin.
func (c *Configuration) GetAdmin() weave.Address {
	return c.Admin
}

func (c *Configuration) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	// Decoding into a zero value, so that fields missing in raw are not
	// inherited from a previous load.
	var fresh Configuration
	if err := cdc.UnmarshalBinaryBare(raw, &fresh); err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	*c = fresh
	return nil
}

// LoadConfiguration returns the current configuration.
func LoadConfiguration(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, PackageName, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}
