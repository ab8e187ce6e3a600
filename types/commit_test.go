// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hashes the contract tests are written against
const (
	splitHash = "c36562c53838cb8ed23e9de694b67c8f42ebd246ce5073a43a8eac6535122504"
	stealHash = "113ad07c970a19b82940b83944f90310daeb8c50c6a57bcf8641e69e9246d7c6"
	saltHash  = "03ac674216f3e15c761ee1a5e255f067953623c8b388b4459e13f978d7c846f4"
	salt      = "1234"
)

func TestNewCommitment(t *testing.T) {
	c, err := NewCommitment(DecisionSplit, salt)
	require.NoError(t, err)
	assert.Equal(t, splitHash, c.DecisionHash.String())
	assert.Equal(t, saltHash, c.SaltHash.String())

	c, err = NewCommitment(DecisionSteal, salt)
	require.NoError(t, err)
	assert.Equal(t, stealHash, c.DecisionHash.String())
	assert.Equal(t, saltHash, c.SaltHash.String())
}

func TestNewCommitmentInvalid(t *testing.T) {
	_, err := NewCommitment(DecisionNone, salt)
	assert.True(t, errors.Is(err, ErrValidation))
	_, err = NewCommitment(DecisionSplit, "")
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestCheckReveal(t *testing.T) {
	for _, d := range []Decision{DecisionSplit, DecisionSteal} {
		c, err := NewCommitment(d, "pepper")
		require.NoError(t, err)
		p := &PlayerData{PlayAddress: "alice", DecisionHash: &c.DecisionHash, SaltHash: &c.SaltHash}
		got, err := CheckReveal(p, "pepper")
		require.NoError(t, err)
		assert.Equal(t, d, got)

		_, err = CheckReveal(p, "salt")
		assert.True(t, errors.Is(err, ErrValidation))
	}
}

func TestCheckRevealUnknownDecision(t *testing.T) {
	sh := SaltHash(salt)
	dh := DecisionHash(Decision(3), salt)
	p := &PlayerData{DecisionHash: &dh, SaltHash: &sh}
	_, err := CheckReveal(p, salt)
	assert.Equal(t, ErrDecisionUnknown, err)

	_, err = CheckReveal(&PlayerData{}, salt)
	assert.Equal(t, ErrNotCommitted, err)
}

func TestParseDecision(t *testing.T) {
	d, err := ParseDecision("Split")
	require.NoError(t, err)
	assert.Equal(t, DecisionSplit, d)
	d, err = ParseDecision("2")
	require.NoError(t, err)
	assert.Equal(t, DecisionSteal, d)
	_, err = ParseDecision("share")
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestSettle(t *testing.T) {
	g := newTestGame()
	g.PrizePoolAmount = decimal.NewFromInt(5)
	_, ok := Settle(g)
	assert.False(t, ok)

	g.PlayerOne.Decision = DecisionSplit
	g.PlayerTwo.Decision = DecisionSplit
	s, ok := Settle(g)
	require.True(t, ok)
	require.Len(t, s.Payouts, 2)
	assert.Equal(t, "2", s.Payouts[0].Amount.String())
	assert.Equal(t, "bob", s.Payouts[1].Account)
	assert.Equal(t, "3", s.Payouts[1].Amount.String())

	g.PlayerTwo.Decision = DecisionSteal
	s, _ = Settle(g)
	assert.Equal(t, []Payout{{Account: "bob", Amount: g.PrizePoolAmount}}, s.Payouts)

	g.PlayerOne.Decision = DecisionSteal
	s, _ = Settle(g)
	assert.Equal(t, "carol", s.Payouts[0].Account)
}
