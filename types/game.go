// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// CryptoHash is a 32 byte hash. On the wire it is an array of 32 numbers.
type CryptoHash [HashLength]byte

// UnmarshalJSON rejects arrays that are not exactly 32 bytes long.
func (h *CryptoHash) UnmarshalJSON(data []byte) error {
	var raw []int
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != HashLength {
		return errors.Errorf("hash has %d bytes, want %d", len(raw), HashLength)
	}
	for i, v := range raw {
		if v < 0 || v > 255 {
			return errors.Errorf("hash byte %d out of range: %d", i, v)
		}
		h[i] = byte(v)
	}
	return nil
}

func (h CryptoHash) String() string {
	return hex.EncodeToString(h[:])
}

// PlayerData is one of the two slots of a game
type PlayerData struct {
	PlayAddress  string      `json:"play_address"`
	DecisionHash *CryptoHash `json:"decision_hash"`
	SaltHash     *CryptoHash `json:"salt_hash"`
	Decision     Decision    `json:"decision"`
}

// UnmarshalJSON reads an absent, null or empty hash as not committed.
func (p *PlayerData) UnmarshalJSON(data []byte) error {
	type plain PlayerData
	var raw struct {
		plain
		DecisionHash json.RawMessage `json:"decision_hash"`
		SaltHash     json.RawMessage `json:"salt_hash"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decisionHash, err := optionalHash(raw.DecisionHash)
	if err != nil {
		return errors.WithMessage(err, "decision_hash")
	}
	saltHash, err := optionalHash(raw.SaltHash)
	if err != nil {
		return errors.WithMessage(err, "salt_hash")
	}
	*p = PlayerData(raw.plain)
	p.DecisionHash, p.SaltHash = decisionHash, saltHash
	return nil
}

func optionalHash(data json.RawMessage) (*CryptoHash, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) || bytes.Equal(bytes.Join(bytes.Fields(data), nil), []byte("[]")) {
		return nil, nil
	}
	var h CryptoHash
	if err := h.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return &h, nil
}

// Committed reports whether the player has submitted a decision hash.
func (p *PlayerData) Committed() bool {
	return p != nil && p.DecisionHash != nil
}

// Revealed reports whether the contract has accepted the player's salt.
func (p *PlayerData) Revealed() bool {
	return p != nil && p.Decision != DecisionNone
}

// Game is a read snapshot of a contract game record.
type Game struct {
	GameID                       string          `json:"game_id"`
	OwnerID                      string          `json:"owner_id"`
	IsEnd                        bool            `json:"is_end"`
	PrizePoolAmount              decimal.Decimal `json:"prize_pool_amount"`
	PlayerOne                    PlayerData      `json:"player_one"`
	PlayerTwo                    PlayerData      `json:"player_two"`
	ExpirationTimestampInSeconds uint64          `json:"expiration_timestamp_in_seconds"`
}

// Deadline converts the expiration field to a time. The contract fills the
// field from block_timestamp_ms, so the unit is milliseconds.
func (g *Game) Deadline() time.Time {
	return time.UnixMilli(int64(g.ExpirationTimestampInSeconds))
}

// Expired reports whether now is at or past the deadline.
func (g *Game) Expired(now time.Time) bool {
	return now.UnixMilli() >= int64(g.ExpirationTimestampInSeconds)
}

// Slots returns the viewer's slot and the opponent's slot. ok is false when
// the viewer is empty or plays in neither slot.
func (g *Game) Slots(viewer string) (self, op *PlayerData, ok bool) {
	if viewer == "" {
		return nil, nil, false
	}
	switch viewer {
	case g.PlayerOne.PlayAddress:
		return &g.PlayerOne, &g.PlayerTwo, true
	case g.PlayerTwo.PlayAddress:
		return &g.PlayerTwo, &g.PlayerOne, true
	}
	return nil, nil, false
}
