// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// contract methods
const (
	FuncNameGetGame            = "get_game"
	FuncNameGetLatestSomeGames = "get_latest_some_games"
	FuncNameGetGameID          = "get_game_id"

	ActionCreateGame     = "create_game"
	ActionSubmitDecision = "submit_decision"
	ActionRevealDecision = "reveal_decision"
	ActionReleaseFunds   = "release_funds_after_expiration"
)

// amounts are in yoctoNEAR
const (
	NearDecimals int32 = 24

	// DefaultGas is 30 Tgas
	DefaultGas uint64 = 30000000000000

	// DefaultCreateDeposit is 0.1 NEAR
	DefaultCreateDeposit = "0.1"

	DefaultListAmount = 10

	HashLength = 32
)

// finality values accepted by the query method
const (
	FinalityOptimistic = "optimistic"
	FinalityFinal      = "final"
)
