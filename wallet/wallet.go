// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wallet signs and broadcasts function call transactions with a
// single ed25519 access key
package wallet

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"sync"

	"github.com/33cn/splitsteal/common/address"
	"github.com/33cn/splitsteal/common/log"
	"github.com/33cn/splitsteal/rpc"
	"github.com/33cn/splitsteal/types"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

var walletlog = log.New("module", "wallet")

// Wallet one account and one full access key
type Wallet struct {
	accountID string
	priv      ed25519.PrivateKey
	publicKey string
	node      rpc.IClient
	// nonce reads and broadcasts are serialized per wallet
	mtx sync.Mutex
}

// New builds a wallet for accountID
func New(accountID string, priv ed25519.PrivateKey, node rpc.IClient) (*Wallet, error) {
	if err := address.CheckAccountID(accountID); err != nil {
		return nil, err
	}
	if len(priv) != ed25519.PrivateKeySize {
		return nil, errors.WithMessagef(types.ErrPrivateKey, "key has %d bytes", len(priv))
	}
	return &Wallet{
		accountID: accountID,
		priv:      priv,
		publicKey: FormatPublicKey(priv.Public().(ed25519.PublicKey)),
		node:      node,
	}, nil
}

// NewFromConfig uses the inline private key when set, the credentials file
// otherwise. The configured account id wins over the one in the file.
func NewFromConfig(cfg *types.Wallet, node rpc.IClient) (*Wallet, error) {
	if cfg == nil {
		return nil, types.ErrNoSigner
	}
	accountID := cfg.AccountID
	var priv ed25519.PrivateKey
	switch {
	case cfg.PrivateKey != "":
		key, err := ParsePrivateKey(cfg.PrivateKey)
		if err != nil {
			return nil, err
		}
		priv = key
	case cfg.CredentialsFile != "":
		cred, key, err := LoadCredentials(cfg.CredentialsFile)
		if err != nil {
			return nil, err
		}
		if accountID == "" {
			accountID = cred.AccountID
		}
		priv = key
	default:
		return nil, types.ErrNoSigner
	}
	return New(accountID, priv, node)
}

// AccountID the signer account
func (w *Wallet) AccountID() string {
	return w.accountID
}

// SignAndSendTransaction reads the access key nonce, signs one transaction
// holding all actions and waits for the node to execute it
func (w *Wallet) SignAndSendTransaction(ctx context.Context, receiverID string, actions []*types.FunctionCall) (*types.TxReceipt, error) {
	if len(actions) == 0 {
		return nil, errors.WithMessage(types.ErrValidation, "no actions")
	}
	w.mtx.Lock()
	defer w.mtx.Unlock()

	key, err := w.node.ViewAccessKey(ctx, w.accountID, w.publicKey)
	if err != nil {
		return nil, errors.WithMessage(err, "view access key")
	}
	var blockHash [32]byte
	raw, err := base58.Decode(key.BlockHash)
	if err != nil || len(raw) != len(blockHash) {
		return nil, errors.WithMessagef(types.ErrDecode, "block hash %q", key.BlockHash)
	}
	copy(blockHash[:], raw)
	tx, err := NewTransaction(w.accountID, w.priv.Public().(ed25519.PublicKey), key.Nonce+1, receiverID, blockHash, actions)
	if err != nil {
		return nil, err
	}

	signed, hash, err := w.sign(tx)
	if err != nil {
		return nil, err
	}
	walletlog.Info("SignAndSendTransaction", "signer", w.accountID, "receiver", receiverID, "nonce", tx.Nonce, "hash", hash)
	outcome, err := w.node.SendTx(ctx, signed)
	if err != nil {
		return nil, err
	}
	receipt := &types.TxReceipt{
		Hash:    hash,
		Signer:  w.accountID,
		Status:  outcome.Status,
		Outcome: outcome.TransactionOutcome,
	}
	if outcome.Transaction.Hash != "" {
		receipt.Hash = outcome.Transaction.Hash
	}
	if failure := outcome.Failure(); failure != nil {
		walletlog.Error("SignAndSendTransaction", "hash", receipt.Hash, "failure", string(failure))
		return receipt, errors.WithMessagef(types.ErrTxFailure, "%s: %s", receipt.Hash, failure)
	}
	return receipt, nil
}

// sign returns the signed transaction bytes and the base58 transaction hash
func (w *Wallet) sign(tx *Transaction) ([]byte, string, error) {
	msg, err := tx.Serialize()
	if err != nil {
		return nil, "", err
	}
	digest := sha256.Sum256(msg)
	sig := ed25519.Sign(w.priv, digest[:])
	signed, err := tx.SerializeSigned(sig)
	if err != nil {
		return nil, "", err
	}
	return signed, base58.Encode(digest[:]), nil
}
