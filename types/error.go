// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "github.com/pkg/errors"

// error taxonomy, inspect with errors.Is
var (
	ErrValidation = errors.New("ErrValidation")
	ErrNotFound   = errors.New("ErrNotFound")
	ErrDecode     = errors.New("ErrDecode")
	ErrTransport  = errors.New("ErrTransport")
)

// validation errors
var (
	ErrHashFormat      = errors.WithMessage(ErrValidation, "hash must be 32 bytes of hex, optionally 0x prefixed")
	ErrAccountID       = errors.WithMessage(ErrValidation, "invalid account id")
	ErrEmptyGameID     = errors.WithMessage(ErrValidation, "game id is empty")
	ErrEmptySalt       = errors.WithMessage(ErrValidation, "salt is empty")
	ErrDecisionValue   = errors.WithMessage(ErrValidation, "decision must be split or steal")
	ErrSaltMismatch    = errors.WithMessage(ErrValidation, "salt does not match the committed salt hash")
	ErrDecisionUnknown = errors.WithMessage(ErrValidation, "decision hash matches neither split nor steal for this salt")
	ErrNotCommitted    = errors.WithMessage(ErrValidation, "player has not committed a decision")
	ErrAmount          = errors.WithMessage(ErrValidation, "invalid amount")
	ErrNoSigner        = errors.WithMessage(ErrValidation, "no signer configured for write calls")
	ErrPrivateKey      = errors.WithMessage(ErrValidation, "invalid private key")
)

// decode errors
var (
	ErrListLength = errors.WithMessage(ErrDecode, "game id and game record counts differ")
	ErrListShape  = errors.WithMessage(ErrDecode, "listing result is not an [ids, games] pair")
)

// transport errors
var (
	ErrTxFailure = errors.WithMessage(ErrTransport, "transaction failed")
)
