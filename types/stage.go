// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "time"

// Stage is the interaction stage of a game seen by one account.
type Stage int

// stages
const (
	StageNotFound Stage = iota
	StageEnded
	StageExpired
	StageNotAPlayer
	StageAwaitingOwnCommit
	StageAwaitingOpponentCommit
	StageReadyToReveal
)

var stageNames = map[Stage]string{
	StageNotFound:               "NotFound",
	StageEnded:                  "Ended",
	StageExpired:                "Expired",
	StageNotAPlayer:             "NotAPlayer",
	StageAwaitingOwnCommit:      "AwaitingOwnCommit",
	StageAwaitingOpponentCommit: "AwaitingOpponentCommit",
	StageReadyToReveal:          "ReadyToReveal",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "Unknown"
}

// Terminal reports whether no further interaction is possible from the stage.
func (s Stage) Terminal() bool {
	return s == StageEnded || s == StageExpired || s == StageNotAPlayer || s == StageNotFound
}

// ResolveStage selects the stage of game for viewer at now. Resolution order
// is ended, expired, membership, commit state. A nil game resolves to
// StageNotFound, which callers must not treat as StageNotAPlayer.
func ResolveStage(game *Game, viewer string, now time.Time) Stage {
	if game == nil {
		return StageNotFound
	}
	if game.IsEnd {
		return StageEnded
	}
	if game.Expired(now) {
		return StageExpired
	}
	self, op, ok := game.Slots(viewer)
	if !ok {
		return StageNotAPlayer
	}
	switch {
	case !self.Committed():
		return StageAwaitingOwnCommit
	case !op.Committed():
		return StageAwaitingOpponentCommit
	default:
		return StageReadyToReveal
	}
}

// ListStatus is the viewer independent summary shown in game listings.
type ListStatus string

// listing statuses
const (
	ListStatusEnded    ListStatus = "ended"
	ListStatusExpired  ListStatus = "expired"
	ListStatusWaitPlay ListStatus = "waiting"
)

// StatusOf gives the listing summary of a game.
func StatusOf(game *Game, now time.Time) ListStatus {
	switch {
	case game.IsEnd:
		return ListStatusEnded
	case game.Expired(now):
		return ListStatusExpired
	}
	return ListStatusWaitPlay
}
