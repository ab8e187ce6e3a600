// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// FunctionCall is a single contract call action handed to a signer.
type FunctionCall struct {
	MethodName string
	Args       json.RawMessage
	Gas        uint64
	// Deposit in yoctoNEAR
	Deposit decimal.Decimal
}

// CreateGameArgs create_game arguments
type CreateGameArgs struct {
	PlayerOneAddress string `json:"player_one_address"`
	PlayerTwoAddress string `json:"player_two_address"`
}

// SubmitDecisionArgs submit_decision arguments
type SubmitDecisionArgs struct {
	GameID       string     `json:"game_id"`
	DecisionHash CryptoHash `json:"decision_hash"`
	SaltHash     CryptoHash `json:"salt_hash"`
}

// RevealDecisionArgs reveal_decision arguments. Salt is the raw pre-image.
type RevealDecisionArgs struct {
	GameID string `json:"game_id"`
	Salt   string `json:"salt"`
}

// ReleaseFundsArgs release_funds_after_expiration arguments
type ReleaseFundsArgs struct {
	GameID string `json:"game_id"`
}

// ReqGame get_game arguments
type ReqGame struct {
	ID string `json:"id"`
}

// ReqLatestGames get_latest_some_games arguments
type ReqLatestGames struct {
	Amount string `json:"amount"`
}

// TxReceipt is what the signer returns after broadcast. The core does not
// interpret it beyond printing.
type TxReceipt struct {
	Hash    string          `json:"hash"`
	Signer  string          `json:"signer"`
	Status  json.RawMessage `json:"status,omitempty"`
	Outcome json.RawMessage `json:"outcome,omitempty"`
}
