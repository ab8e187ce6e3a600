// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"crypto/sha256"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Decision is the hidden choice of a player. Values match the contract.
type Decision uint64

// decisions
const (
	DecisionNone  Decision = 0
	DecisionSplit Decision = 1
	DecisionSteal Decision = 2
)

func (d Decision) String() string {
	switch d {
	case DecisionNone:
		return "none"
	case DecisionSplit:
		return "split"
	case DecisionSteal:
		return "steal"
	}
	return "Decision(" + strconv.FormatUint(uint64(d), 10) + ")"
}

// ParseDecision accepts "split", "steal", "1" or "2".
func ParseDecision(s string) (Decision, error) {
	switch strings.ToLower(s) {
	case "split", "1":
		return DecisionSplit, nil
	case "steal", "2":
		return DecisionSteal, nil
	}
	return DecisionNone, errors.WithMessagef(ErrDecisionValue, "got %q", s)
}

// Commitment is the pair of hashes sent with submit_decision.
type Commitment struct {
	DecisionHash CryptoHash `json:"decision_hash"`
	SaltHash     CryptoHash `json:"salt_hash"`
}

// SaltHash is sha256(salt).
func SaltHash(salt string) CryptoHash {
	return sha256.Sum256([]byte(salt))
}

// DecisionHash is sha256(decimal decision || salt), the layout the contract
// rebuilds on reveal.
func DecisionHash(d Decision, salt string) CryptoHash {
	return sha256.Sum256([]byte(strconv.FormatUint(uint64(d), 10) + salt))
}

// NewCommitment builds the hashes for a decision hidden behind salt.
func NewCommitment(d Decision, salt string) (*Commitment, error) {
	if d != DecisionSplit && d != DecisionSteal {
		return nil, errors.WithMessagef(ErrDecisionValue, "got %s", d)
	}
	if salt == "" {
		return nil, ErrEmptySalt
	}
	return &Commitment{
		DecisionHash: DecisionHash(d, salt),
		SaltHash:     SaltHash(salt),
	}, nil
}

// CheckReveal returns the decision that salt opens for a committed slot. It
// fails with a validation error in every case where the contract would abort
// reveal_decision on the hash checks.
func CheckReveal(p *PlayerData, salt string) (Decision, error) {
	if salt == "" {
		return DecisionNone, ErrEmptySalt
	}
	if !p.Committed() || p.SaltHash == nil {
		return DecisionNone, ErrNotCommitted
	}
	if SaltHash(salt) != *p.SaltHash {
		return DecisionNone, ErrSaltMismatch
	}
	for _, d := range []Decision{DecisionSplit, DecisionSteal} {
		if DecisionHash(d, salt) == *p.DecisionHash {
			return d, nil
		}
	}
	return DecisionNone, ErrDecisionUnknown
}
