// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package common

import (
	"encoding/hex"
	"regexp"

	"github.com/33cn/splitsteal/types"
	"github.com/pkg/errors"
)

var hash32Hex = regexp.MustCompile(`^[0-9a-fA-F]{64}$`)

// ParseHash decodes a user entered 32 byte hash. One leading 0x or 0X is
// accepted; nothing else, whitespace included, is trimmed.
func ParseHash(s string) (types.CryptoHash, error) {
	var h types.CryptoHash
	body := s
	if HasHexPrefix(body) {
		body = body[2:]
	}
	if !hash32Hex.MatchString(body) {
		return h, errors.WithMessagef(types.ErrHashFormat, "got %q", s)
	}
	if _, err := hex.Decode(h[:], []byte(body)); err != nil {
		return h, errors.WithMessage(types.ErrHashFormat, err.Error())
	}
	return h, nil
}

// HashToHex canonical lowercase hex of h, no prefix
func HashToHex(h types.CryptoHash) string {
	return hex.EncodeToString(h[:])
}

// HasHexPrefix reports a 0x or 0X prefix
func HasHexPrefix(str string) bool {
	return len(str) >= 2 && str[0] == '0' && (str[1] == 'x' || str[1] == 'X')
}
