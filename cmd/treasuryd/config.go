package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/iov-one/weave-treasury"
	"github.com/iov-one/weave-treasury/errors"
	"github.com/spf13/viper"
)

// Files and directories of a node home.
const (
	configFile  = "config.yaml"
	genesisFile = "genesis.json"
	keyFile     = "admin.key"
	dataDir     = "data"
)

// Node configuration keys.
const (
	keyChainID    = "chain_id"
	keyBlockTime  = "block_time"
	keyLogLevel   = "log_level"
	keyDBBackend  = "db_backend"
	keyMempoolDir = "mempool_dir"
)

const (
	backendGoLevelDB = "goleveldb"
	backendMemDB     = "memdb"
)

// nodeConfig is the validated content of the node configuration file.
type nodeConfig struct {
	Home       string
	ChainID    string
	BlockTime  time.Duration
	LogLevel   string
	DBBackend  string
	MempoolDir string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyChainID, "treasury-local")
	v.SetDefault(keyBlockTime, "5s")
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyDBBackend, backendGoLevelDB)
	v.SetDefault(keyMempoolDir, "mempool")
}

// newViper returns a viper instance bound to the configuration file of home.
func newViper(home string) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	v.SetConfigFile(filepath.Join(home, configFile))
	return v
}

// writeConfig creates the configuration file of home with the defaults
// overridden by given values.
func writeConfig(home string, values map[string]interface{}) error {
	v := newViper(home)
	for key, val := range values {
		v.Set(key, val)
	}
	for _, key := range []string{keyChainID, keyBlockTime, keyLogLevel, keyDBBackend, keyMempoolDir} {
		v.Set(key, v.Get(key))
	}
	if err := v.WriteConfigAs(filepath.Join(home, configFile)); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

// loadConfig reads and validates the configuration file of home.
func loadConfig(home string) (*nodeConfig, error) {
	v := newViper(home)
	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(filepath.Join(home, configFile)); os.IsNotExist(statErr) {
			return nil, errors.Wrapf(errors.ErrNotFound, "no configuration in %s, run init first", home)
		}
		return nil, errors.Wrapf(errors.ErrInput, "cannot read configuration: %s", err)
	}

	conf := nodeConfig{
		Home:       home,
		ChainID:    v.GetString(keyChainID),
		BlockTime:  v.GetDuration(keyBlockTime),
		LogLevel:   v.GetString(keyLogLevel),
		DBBackend:  v.GetString(keyDBBackend),
		MempoolDir: v.GetString(keyMempoolDir),
	}
	if !filepath.IsAbs(conf.MempoolDir) {
		conf.MempoolDir = filepath.Join(home, conf.MempoolDir)
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

func (c *nodeConfig) Validate() error {
	var errs error
	if !weave.IsValidChainID(c.ChainID) {
		errs = errors.AppendField(errs, "ChainID", errors.ErrInput)
	}
	if c.BlockTime <= 0 {
		errs = errors.AppendField(errs, "BlockTime", errors.ErrInput)
	}
	switch c.DBBackend {
	case backendGoLevelDB, backendMemDB:
	default:
		errs = errors.AppendField(errs, "DBBackend", errors.ErrInput)
	}
	return errs
}
