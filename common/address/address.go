// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package address validates account ids before they are sent to the chain
package address

import (
	"regexp"

	"github.com/33cn/splitsteal/types"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
)

// account id length bounds
const (
	MinAccountIDLen = 2
	MaxAccountIDLen = 64
)

// lowercase alphanumeric parts joined by single '-', '_' or '.'
var accountIDRegexp = regexp.MustCompile(`^(([a-z\d]+[-_])*[a-z\d]+\.)*([a-z\d]+[-_])*[a-z\d]+$`)

var checkAddressCache *lru.Cache

func init() {
	checkAddressCache, _ = lru.New(10240)
}

// CheckAccountID checks the named account id rules. Implicit accounts (64
// lowercase hex chars) satisfy them as well.
func CheckAccountID(id string) error {
	if value, ok := checkAddressCache.Get(id); ok {
		if value == nil {
			return nil
		}
		return value.(error)
	}
	err := checkAccountID(id)
	checkAddressCache.Add(id, err)
	return err
}

func checkAccountID(id string) error {
	if len(id) < MinAccountIDLen || len(id) > MaxAccountIDLen {
		return errors.WithMessagef(types.ErrAccountID, "%q length must be %d to %d", id, MinAccountIDLen, MaxAccountIDLen)
	}
	if !accountIDRegexp.MatchString(id) {
		return errors.WithMessagef(types.ErrAccountID, "%q", id)
	}
	return nil
}
