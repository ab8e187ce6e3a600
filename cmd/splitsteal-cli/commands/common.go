// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/33cn/splitsteal/client"
	"github.com/33cn/splitsteal/rpc"
	"github.com/33cn/splitsteal/rpc/jsonclient"
	"github.com/33cn/splitsteal/types"
	"github.com/33cn/splitsteal/wallet"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// cmdContext the context the command was executed with, canceled on interrupt
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func newNode(cfg *types.Config) (*rpc.Client, error) {
	jc, err := jsonclient.NewJSONClient(cfg.RPC.Laddr, jsonclient.WithTimeout(cfg.RPC.Timeout.Duration))
	if err != nil {
		return nil, err
	}
	return rpc.NewClient(jc, cfg.RPC.Finality), nil
}

// newGateway read only unless withSigner is set
func newGateway(cfg *types.Config, withSigner bool) (*client.Gateway, error) {
	if cfg.Contract.ContractID == "" {
		return nil, errors.WithMessage(types.ErrValidation, "contract id is not configured")
	}
	node, err := newNode(cfg)
	if err != nil {
		return nil, err
	}
	deposit, err := types.ParseNearAmount(cfg.Contract.CreateDeposit)
	if err != nil {
		return nil, errors.WithMessage(err, "createDeposit")
	}
	opts := []client.GatewayOption{
		client.WithGas(cfg.Contract.Gas),
		client.WithCreateDeposit(deposit),
	}
	if withSigner {
		w, err := wallet.NewFromConfig(cfg.Wallet, node)
		if err != nil {
			return nil, err
		}
		opts = append(opts, client.WithSigner(w))
	}
	return client.NewGateway(cfg.Contract.ContractID, node, opts...), nil
}

func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// readSalt returns the --salt flag, or prompts for it. A terminal gets a
// prompt without echo, anything else is read up to the first newline.
func readSalt(cmd *cobra.Command) (string, error) {
	salt, _ := cmd.Flags().GetString("salt")
	if salt != "" {
		return salt, nil
	}
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "salt: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", errors.Wrap(err, "read salt")
		}
		salt = string(b)
	} else {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && err != io.EOF {
			return "", errors.Wrap(err, "read salt")
		}
		salt = strings.TrimRight(line, "\r\n")
	}
	if salt == "" {
		return "", types.ErrEmptySalt
	}
	return salt, nil
}
