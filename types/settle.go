// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "github.com/shopspring/decimal"

// Payout is an amount of yoctoNEAR sent to an account.
type Payout struct {
	Account string          `json:"account"`
	Amount  decimal.Decimal `json:"amount"`
}

// Settlement is the transfer set the contract makes once both players have
// revealed.
type Settlement struct {
	PlayerOne Decision `json:"player_one"`
	PlayerTwo Decision `json:"player_two"`
	Payouts   []Payout `json:"payouts"`
}

// Settle previews the settlement of a game. ok is false until both decisions
// are revealed.
func Settle(g *Game) (s *Settlement, ok bool) {
	one, two := g.PlayerOne.Decision, g.PlayerTwo.Decision
	if one == DecisionNone || two == DecisionNone {
		return nil, false
	}
	pool := g.PrizePoolAmount
	s = &Settlement{PlayerOne: one, PlayerTwo: two}
	switch {
	case one == two && one == DecisionSplit:
		half := pool.Div(decimal.NewFromInt(2)).Truncate(0)
		s.Payouts = []Payout{
			{Account: g.PlayerOne.PlayAddress, Amount: half},
			{Account: g.PlayerTwo.PlayAddress, Amount: pool.Sub(half)},
		}
	case one != two:
		stealer := g.PlayerOne.PlayAddress
		if one == DecisionSplit {
			stealer = g.PlayerTwo.PlayAddress
		}
		s.Payouts = []Payout{{Account: stealer, Amount: pool}}
	default:
		s.Payouts = []Payout{{Account: g.OwnerID, Amount: pool}}
	}
	return s, true
}
