// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wallet

import (
	"crypto/ed25519"
	"math/big"

	"github.com/33cn/splitsteal/types"
	"github.com/near/borsh-go"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// action variants, in chain order
const (
	actionCreateAccount borsh.Enum = iota
	actionDeployContract
	actionFunctionCall
)

const keyTypeTagED25519 = 0

var maxU128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// PublicKey key type tag followed by the key bytes
type PublicKey struct {
	KeyType uint8
	Data    [ed25519.PublicKeySize]byte
}

// Signature key type tag followed by the signature bytes
type Signature struct {
	KeyType uint8
	Data    [ed25519.SignatureSize]byte
}

// CreateAccountAction carries nothing
type CreateAccountAction struct{}

// DeployContractAction wasm code
type DeployContractAction struct {
	Code []byte
}

// FunctionCallAction a contract call with attached gas and deposit
type FunctionCallAction struct {
	MethodName string
	Args       []byte
	Gas        uint64
	Deposit    big.Int
}

// Action tagged union; only FunctionCall is ever built here
type Action struct {
	Enum           borsh.Enum `borsh_enum:"true"`
	CreateAccount  CreateAccountAction
	DeployContract DeployContractAction
	FunctionCall   FunctionCallAction
}

// Transaction the unsigned NEAR transaction
type Transaction struct {
	SignerID   string
	PublicKey  PublicKey
	Nonce      uint64
	ReceiverID string
	BlockHash  [32]byte
	Actions    []Action
}

// SignedTransaction what broadcast_tx_commit accepts
type SignedTransaction struct {
	Transaction Transaction
	Signature   Signature
}

// toU128 checks that a yocto amount fits the u128 deposit field
func toU128(d decimal.Decimal) (*big.Int, error) {
	if !d.Equal(d.Truncate(0)) {
		return nil, errors.WithMessagef(types.ErrAmount, "%s is not a whole yocto amount", d)
	}
	v := d.BigInt()
	if v.Sign() < 0 || v.Cmp(maxU128) > 0 {
		return nil, errors.WithMessagef(types.ErrAmount, "%s does not fit in u128", d)
	}
	return v, nil
}

// NewTransaction builds a transaction of function call actions
func NewTransaction(signerID string, pub ed25519.PublicKey, nonce uint64, receiverID string, blockHash [32]byte, calls []*types.FunctionCall) (*Transaction, error) {
	tx := &Transaction{
		SignerID:   signerID,
		PublicKey:  PublicKey{KeyType: keyTypeTagED25519},
		Nonce:      nonce,
		ReceiverID: receiverID,
		BlockHash:  blockHash,
		Actions:    make([]Action, 0, len(calls)),
	}
	copy(tx.PublicKey.Data[:], pub)
	for _, call := range calls {
		deposit, err := toU128(call.Deposit)
		if err != nil {
			return nil, err
		}
		tx.Actions = append(tx.Actions, Action{
			Enum: actionFunctionCall,
			FunctionCall: FunctionCallAction{
				MethodName: call.MethodName,
				Args:       []byte(call.Args),
				Gas:        call.Gas,
				Deposit:    *deposit,
			},
		})
	}
	return tx, nil
}

// Serialize borsh encoding of the transaction, the bytes that get signed
func (tx *Transaction) Serialize() ([]byte, error) {
	data, err := borsh.Serialize(*tx)
	if err != nil {
		return nil, errors.Wrap(err, "serialize transaction")
	}
	return data, nil
}

// SerializeSigned borsh encoding of the transaction followed by its signature
func (tx *Transaction) SerializeSigned(sig []byte) ([]byte, error) {
	if len(sig) != ed25519.SignatureSize {
		return nil, errors.Errorf("signature has %d bytes", len(sig))
	}
	signed := SignedTransaction{Transaction: *tx, Signature: Signature{KeyType: keyTypeTagED25519}}
	copy(signed.Signature.Data[:], sig)
	data, err := borsh.Serialize(signed)
	if err != nil {
		return nil, errors.Wrap(err, "serialize signed transaction")
	}
	return data, nil
}
