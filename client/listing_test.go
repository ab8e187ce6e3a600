// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package client

import (
	"context"
	"testing"

	"github.com/33cn/splitsteal/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingEmpty(t *testing.T) {
	q := &mockQuerier{result: []byte(`[[],[]]`)}
	games, err := NewListingService(NewGateway(testContract, q), 0).Latest(context.Background(), 0)
	require.NoError(t, err)
	assert.NotNil(t, games)
	assert.Empty(t, games)
	assert.Equal(t, `{"amount":"10"}`, q.calls[0].args)
}

func TestListingMismatch(t *testing.T) {
	q := &mockQuerier{result: []byte(`[["1"],[]]`)}
	_, err := NewListingService(NewGateway(testContract, q), 5).Latest(context.Background(), 3)
	assert.True(t, errors.Is(err, types.ErrDecode))
	assert.Equal(t, `{"amount":"3"}`, q.calls[0].args)
}

func TestListingGames(t *testing.T) {
	q := &mockQuerier{result: []byte(`[["7"],[` + gameJSON + `]]`)}
	games, err := NewListingService(NewGateway(testContract, q), 5).Latest(context.Background(), -1)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "7", games[0].GameID)
	assert.Equal(t, `{"amount":"5"}`, q.calls[0].args)
}

func TestListingTransportError(t *testing.T) {
	q := &mockQuerier{err: errors.Wrap(types.ErrTransport, "timeout")}
	games, err := NewListingService(NewGateway(testContract, q), 5).Latest(context.Background(), 1)
	assert.Nil(t, games)
	assert.True(t, errors.Is(err, types.ErrTransport))
}
