// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"github.com/33cn/splitsteal/rpc/jsonclient"
	"github.com/spf13/cobra"
)

// NetCmd node operation
func NetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "net",
		Short: "Node operation",
		Args:  cobra.MinimumNArgs(1),
	}

	cmd.AddCommand(
		GetNodeStatusCmd(),
	)

	return cmd
}

// GetNodeStatusCmd get node status
func GetNodeStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Get chain id and sync state of the node",
		RunE:  nodeStatus,
	}
	return cmd
}

type syncInfo struct {
	LatestBlockHash   string `json:"latest_block_hash"`
	LatestBlockHeight uint64 `json:"latest_block_height"`
	LatestBlockTime   string `json:"latest_block_time"`
	Syncing           bool   `json:"syncing"`
}

type nodeVersion struct {
	Version string `json:"version"`
	Build   string `json:"build"`
}

// NodeStatus the part of the status result the client shows
type NodeStatus struct {
	ChainID  string      `json:"chain_id"`
	Version  nodeVersion `json:"version"`
	SyncInfo syncInfo    `json:"sync_info"`
}

func nodeStatus(cmd *cobra.Command, args []string) error {
	var res NodeStatus
	ctx := jsonclient.NewRpcCtx(current.RPC.Laddr, "status", []interface{}{}, &res)
	ctx.Opts = []jsonclient.Option{jsonclient.WithTimeout(current.RPC.Timeout.Duration)}
	ctx.Out = cmd.OutOrStdout()
	return ctx.Run(cmdContext(cmd))
}
