// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rpc NEAR node methods used by the game client
package rpc

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"github.com/33cn/splitsteal/rpc/jsonclient"
	"github.com/33cn/splitsteal/types"
	"github.com/pkg/errors"
)

// IClient node methods the client and the wallet need
type IClient interface {
	CallFunction(ctx context.Context, accountID, method string, args []byte) ([]byte, error)
	ViewAccessKey(ctx context.Context, accountID, publicKey string) (*AccessKeyView, error)
	SendTx(ctx context.Context, signedTx []byte) (*FinalExecutionOutcome, error)
}

// Client IClient over JSON-RPC
type Client struct {
	json     *jsonclient.JSONClient
	finality string
}

// NewClient finality is used for call_function queries, access keys are
// always read at final
func NewClient(jc *jsonclient.JSONClient, finality string) *Client {
	if finality == "" {
		finality = types.FinalityOptimistic
	}
	return &Client{json: jc, finality: finality}
}

// ByteArray bytes encoded as a JSON array of numbers
type ByteArray []byte

// UnmarshalJSON implements json.Unmarshaler
func (b *ByteArray) UnmarshalJSON(data []byte) error {
	var raw []int
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make([]byte, len(raw))
	for i, v := range raw {
		if v < 0 || v > 255 {
			return errors.Errorf("byte %d out of range: %d", i, v)
		}
		out[i] = byte(v)
	}
	*b = out
	return nil
}

type callFunctionRequest struct {
	RequestType string `json:"request_type"`
	Finality    string `json:"finality"`
	AccountID   string `json:"account_id"`
	MethodName  string `json:"method_name"`
	ArgsBase64  string `json:"args_base64"`
}

// CallResult call_function query result
type CallResult struct {
	Result      ByteArray `json:"result"`
	Logs        []string  `json:"logs"`
	BlockHeight uint64    `json:"block_height"`
	BlockHash   string    `json:"block_hash"`
	// older nodes report contract failures here instead of a JSON-RPC error
	Error string `json:"error,omitempty"`
}

// CallFunction runs a view method. args is the JSON argument object; it is
// sent base64 encoded. The raw result bytes are returned undecoded.
func (c *Client) CallFunction(ctx context.Context, accountID, method string, args []byte) ([]byte, error) {
	req := &callFunctionRequest{
		RequestType: "call_function",
		Finality:    c.finality,
		AccountID:   accountID,
		MethodName:  method,
		ArgsBase64:  base64.StdEncoding.EncodeToString(args),
	}
	var res CallResult
	if err := c.json.CallContext(ctx, "query", req, &res); err != nil {
		return nil, err
	}
	if res.Error != "" {
		return nil, &ContractError{Method: method, Message: res.Error}
	}
	return res.Result, nil
}

type viewAccessKeyRequest struct {
	RequestType string `json:"request_type"`
	Finality    string `json:"finality"`
	AccountID   string `json:"account_id"`
	PublicKey   string `json:"public_key"`
}

// AccessKeyView view_access_key query result
type AccessKeyView struct {
	Nonce       uint64          `json:"nonce"`
	Permission  json.RawMessage `json:"permission"`
	BlockHeight uint64          `json:"block_height"`
	BlockHash   string          `json:"block_hash"`
	Error       string          `json:"error,omitempty"`
}

// ViewAccessKey reads the nonce of an access key and a recent block hash
func (c *Client) ViewAccessKey(ctx context.Context, accountID, publicKey string) (*AccessKeyView, error) {
	req := &viewAccessKeyRequest{
		RequestType: "view_access_key",
		Finality:    types.FinalityFinal,
		AccountID:   accountID,
		PublicKey:   publicKey,
	}
	var res AccessKeyView
	if err := c.json.CallContext(ctx, "query", req, &res); err != nil {
		return nil, err
	}
	if res.Error != "" {
		return nil, errors.WithMessage(types.ErrTransport, res.Error)
	}
	return &res, nil
}

// TxView transaction part of an outcome
type TxView struct {
	Hash       string `json:"hash"`
	SignerID   string `json:"signer_id"`
	ReceiverID string `json:"receiver_id"`
	Nonce      uint64 `json:"nonce"`
}

// FinalExecutionOutcome broadcast_tx_commit result
type FinalExecutionOutcome struct {
	Status             json.RawMessage `json:"status"`
	Transaction        TxView          `json:"transaction"`
	TransactionOutcome json.RawMessage `json:"transaction_outcome"`
	ReceiptsOutcome    json.RawMessage `json:"receipts_outcome"`
}

// Failure returns the failure object of the status, nil on success
func (o *FinalExecutionOutcome) Failure() json.RawMessage {
	var status struct {
		Failure json.RawMessage `json:"Failure"`
	}
	if err := json.Unmarshal(o.Status, &status); err != nil {
		return nil
	}
	if len(status.Failure) == 0 || string(status.Failure) == "null" {
		return nil
	}
	return status.Failure
}

// SendTx broadcasts a borsh serialized signed transaction and waits for the
// node to return its outcome
func (c *Client) SendTx(ctx context.Context, signedTx []byte) (*FinalExecutionOutcome, error) {
	params := []string{base64.StdEncoding.EncodeToString(signedTx)}
	var res FinalExecutionOutcome
	if err := c.json.CallContext(ctx, "broadcast_tx_commit", params, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
