// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands cobra commands of splitsteal-cli
package commands

import (
	"github.com/33cn/splitsteal/common/log"
	"github.com/33cn/splitsteal/metrics"
	"github.com/33cn/splitsteal/types"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var clilog = log.New("module", "cli")

// config of the running command, set before any subcommand runs
var current *types.Config

// persistent flag names
const (
	flagRPCLaddr = "rpc_laddr"
	flagConf     = "conf"
	flagContract = "contract"
	flagAccount  = "account"
	flagEnvFile  = "env"
	flagMetrics  = "metrics"
)

// RootCmd builds the command tree
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "splitsteal-cli",
		Short:         "split or steal game client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			current = cfg
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if current != nil {
				metrics.StartMetrics(current.Metrics, nil, cmd.ErrOrStderr())
			}
		},
	}
	cmd.PersistentFlags().String(flagRPCLaddr, "", "node json-rpc url, overrides config")
	cmd.PersistentFlags().String(flagConf, "", "config file")
	cmd.PersistentFlags().String(flagContract, "", "game contract account, overrides config")
	cmd.PersistentFlags().String(flagAccount, "", "signer account, overrides config")
	cmd.PersistentFlags().String(flagEnvFile, ".env", "dotenv file, ignored when missing")
	cmd.PersistentFlags().Bool(flagMetrics, false, "print rpc metrics to stderr after the command")

	cmd.AddCommand(
		GameCmd(),
		NetCmd(),
	)
	return cmd
}

// loadConfig builds the config in order: defaults, config file, dotenv and
// environment, command line flags
func loadConfig(cmd *cobra.Command) (*types.Config, error) {
	conf, _ := cmd.Flags().GetString(flagConf)
	cfg, err := types.InitCfg(conf)
	if err != nil {
		return nil, err
	}
	envFile, _ := cmd.Flags().GetString(flagEnvFile)
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			clilog.Debug("loadConfig", "env", envFile, "err", err)
		}
	}
	if err := types.ApplyEnv(cfg); err != nil {
		return nil, errors.WithMessage(types.ErrValidation, err.Error())
	}
	if v, _ := cmd.Flags().GetString(flagRPCLaddr); v != "" {
		cfg.RPC.Laddr = v
	}
	if v, _ := cmd.Flags().GetString(flagContract); v != "" {
		cfg.Contract.ContractID = v
	}
	if v, _ := cmd.Flags().GetString(flagAccount); v != "" {
		cfg.Wallet.AccountID = v
	}
	if v, _ := cmd.Flags().GetBool(flagMetrics); v {
		cfg.Metrics.EnableMetrics = true
	}
	log.SetFileLog(cfg.Log)
	return cfg, nil
}
