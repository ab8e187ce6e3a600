// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"os"
	"strconv"
	"time"

	tml "github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config client configuration
type Config struct {
	Title    string    `toml:"Title"`
	RPC      *RPC      `toml:"rpc"`
	Contract *Contract `toml:"contract"`
	Wallet   *Wallet   `toml:"wallet"`
	Log      *Log      `toml:"log"`
	Metrics  *Metrics  `toml:"metrics"`
}

// RPC node connection
type RPC struct {
	Laddr    string   `toml:"laddr"`
	Finality string   `toml:"finality"`
	Timeout  Duration `toml:"timeout"`
}

// Contract game contract parameters
type Contract struct {
	ContractID    string `toml:"contractID"`
	CreateDeposit string `toml:"createDeposit"`
	Gas           uint64 `toml:"gas"`
	ListAmount    int    `toml:"listAmount"`
}

// Wallet signing account
type Wallet struct {
	AccountID       string `toml:"accountID"`
	PrivateKey      string `toml:"privateKey"`
	CredentialsFile string `toml:"credentialsFile"`
}

// Log logging configuration
type Log struct {
	// console level, one of debug info warn error crit
	LogConsoleLevel string `toml:"logConsoleLevel"`
	// file level
	Loglevel string `toml:"loglevel"`
	// empty disables the file log
	LogFile string `toml:"logFile"`
	// MB
	MaxFileSize uint32 `toml:"maxFileSize"`
	MaxBackups  uint32 `toml:"maxBackups"`
	// days
	MaxAge         uint32 `toml:"maxAge"`
	LocalTime      bool   `toml:"localTime"`
	Compress       bool   `toml:"compress"`
	CallerFile     bool   `toml:"callerFile"`
	CallerFunction bool   `toml:"callerFunction"`
}

// Metrics rpc metrics output
type Metrics struct {
	EnableMetrics bool `toml:"enableMetrics"`
}

// Duration is a toml friendly time.Duration ("30s")
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// InitCfg reads the config file at path over the defaults
func InitCfg(path string) (*Config, error) {
	cfg, err := InitCfgString(DefaultConfig)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return cfg, nil
	}
	if _, err := tml.DecodeFile(path, cfg); err != nil {
		return nil, errors.Wrapf(err, "decode config %s", path)
	}
	return cfg, nil
}

// InitCfgString parses a config from a toml string
func InitCfgString(cfgstring string) (*Config, error) {
	var cfg Config
	if _, err := tml.Decode(cfgstring, &cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	fillDefaults(&cfg)
	return &cfg, nil
}

func fillDefaults(cfg *Config) {
	if cfg.RPC == nil {
		cfg.RPC = &RPC{}
	}
	if cfg.RPC.Finality == "" {
		cfg.RPC.Finality = FinalityOptimistic
	}
	if cfg.Contract == nil {
		cfg.Contract = &Contract{}
	}
	if cfg.Contract.CreateDeposit == "" {
		cfg.Contract.CreateDeposit = DefaultCreateDeposit
	}
	if cfg.Contract.Gas == 0 {
		cfg.Contract.Gas = DefaultGas
	}
	if cfg.Contract.ListAmount <= 0 {
		cfg.Contract.ListAmount = DefaultListAmount
	}
	if cfg.Wallet == nil {
		cfg.Wallet = &Wallet{}
	}
	if cfg.Log == nil {
		cfg.Log = &Log{}
	}
	if cfg.Metrics == nil {
		cfg.Metrics = &Metrics{}
	}
}

// environment overrides
const (
	EnvRPCLaddr   = "SPLITSTEAL_RPC_LADDR"
	EnvContractID = "SPLITSTEAL_CONTRACT_ID"
	EnvAccountID  = "SPLITSTEAL_ACCOUNT_ID"
	EnvPrivateKey = "SPLITSTEAL_PRIVATE_KEY"
	EnvListAmount = "SPLITSTEAL_LIST_AMOUNT"
)

// ApplyEnv overrides config values from the process environment
func ApplyEnv(cfg *Config) error {
	return ApplyLookup(cfg, os.LookupEnv)
}

// ApplyLookup overrides config values from lookup
func ApplyLookup(cfg *Config, lookup func(string) (string, bool)) error {
	fillDefaults(cfg)
	if v, ok := lookup(EnvRPCLaddr); ok && v != "" {
		cfg.RPC.Laddr = v
	}
	if v, ok := lookup(EnvContractID); ok && v != "" {
		cfg.Contract.ContractID = v
	}
	if v, ok := lookup(EnvAccountID); ok && v != "" {
		cfg.Wallet.AccountID = v
	}
	if v, ok := lookup(EnvPrivateKey); ok && v != "" {
		cfg.Wallet.PrivateKey = v
	}
	if v, ok := lookup(EnvListAmount); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return errors.Errorf("%s must be a positive integer, got %q", EnvListAmount, v)
		}
		cfg.Contract.ListAmount = n
	}
	return nil
}
