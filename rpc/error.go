// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	"github.com/33cn/splitsteal/rpc/jsonclient"
	"github.com/33cn/splitsteal/types"
	"github.com/pkg/errors"
)

// cause names a node gives when the contract itself failed
const (
	causeContractExecution = "CONTRACT_EXECUTION_ERROR"
)

// ContractError the view method panicked or aborted
type ContractError struct {
	Method  string
	Message string
}

func (e *ContractError) Error() string {
	return "contract method " + e.Method + " failed: " + e.Message
}

// Unwrap a contract failure is reported by the node, so it is a transport error
func (e *ContractError) Unwrap() error {
	return types.ErrTransport
}

// IsContractError reports whether err comes from the contract rather than
// from the node or the network
func IsContractError(err error) bool {
	var ce *ContractError
	if errors.As(err, &ce) {
		return true
	}
	var re *jsonclient.RPCError
	if errors.As(err, &re) {
		return re.Cause != nil && re.Cause.Name == causeContractExecution
	}
	return false
}
