// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// RpcCtx one rpc call run from the command line
type RpcCtx struct {
	Addr   string
	Method string
	Params interface{}
	Res    interface{}
	Opts   []Option
	Out    io.Writer
	cb     Callback
}

// Callback a callback function
type Callback func(res interface{}) (interface{}, error)

// NewRpcCtx produce a object of rpcctx
func NewRpcCtx(laddr, method string, params, res interface{}) *RpcCtx {
	return &RpcCtx{
		Addr:   laddr,
		Method: method,
		Params: params,
		Res:    res,
		Out:    os.Stdout,
	}
}

// SetResultCb rpcctx callback
func (c *RpcCtx) SetResultCb(cb Callback) {
	c.cb = cb
}

// RunResult format rpc result
func (c *RpcCtx) RunResult(ctx context.Context) (interface{}, error) {
	rpc, err := NewJSONClient(c.Addr, c.Opts...)
	if err != nil {
		return nil, err
	}

	err = rpc.CallContext(ctx, c.Method, c.Params, c.Res)
	if err != nil {
		return nil, err
	}
	// maybe format rpc result
	if c.cb != nil {
		return c.cb(c.Res)
	}
	return c.Res, nil
}

// Run prints the indented result to Out
func (c *RpcCtx) Run(ctx context.Context) error {
	result, err := c.RunResult(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(result, "", "    ")
	if err != nil {
		return err
	}
	fmt.Fprintln(c.Out, string(data))
	return nil
}
