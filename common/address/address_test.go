// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package address

import (
	"strings"
	"testing"

	"github.com/33cn/splitsteal/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAccountID(t *testing.T) {
	for _, id := range []string{
		"alice.testnet",
		"bob",
		"a1",
		"game_1.splitsteal.testnet",
		"my-account.near",
		strings.Repeat("ab", 32),
	} {
		require.NoError(t, CheckAccountID(id), id)
	}
}

func TestCheckAccountIDInvalid(t *testing.T) {
	for _, id := range []string{
		"",
		"a",
		"Alice.testnet",
		"alice..testnet",
		".alice",
		"alice.",
		"alice--bob",
		"alice bob",
		"-alice",
		strings.Repeat("a", 65),
	} {
		err := CheckAccountID(id)
		require.Error(t, err, id)
		assert.True(t, errors.Is(err, types.ErrValidation), id)
	}
}

func TestCheckAccountIDCached(t *testing.T) {
	assert.Error(t, CheckAccountID("Bad"))
	assert.Error(t, CheckAccountID("Bad"))
	assert.NoError(t, CheckAccountID("good.near"))
	assert.NoError(t, CheckAccountID("good.near"))
}
