// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var oneNear = decimal.New(1, NearDecimals)

// ParseNearAmount converts a NEAR amount like "0.1" to yoctoNEAR.
func ParseNearAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.WithMessage(ErrAmount, err.Error())
	}
	if d.IsNegative() {
		return decimal.Zero, errors.WithMessagef(ErrAmount, "negative amount %s", s)
	}
	y := d.Mul(oneNear)
	if !y.Equal(y.Truncate(0)) {
		return decimal.Zero, errors.WithMessagef(ErrAmount, "%s has more than %d decimals", s, NearDecimals)
	}
	return y.Truncate(0), nil
}

// FormatNearAmount renders yoctoNEAR as NEAR without trailing zeros.
func FormatNearAmount(yocto decimal.Decimal) string {
	return yocto.DivRound(oneNear, NearDecimals).String()
}
