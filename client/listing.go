// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package client

import (
	"context"
	"strconv"

	"github.com/33cn/splitsteal/types"
)

// ListingService reads the most recent games
type ListingService struct {
	gateway       *Gateway
	defaultAmount int
}

// NewListingService defaultAmount is used when callers ask for n <= 0
func NewListingService(g *Gateway, defaultAmount int) *ListingService {
	if defaultAmount <= 0 {
		defaultAmount = types.DefaultListAmount
	}
	return &ListingService{gateway: g, defaultAmount: defaultAmount}
}

// Latest returns up to n games, newest first, each with its id attached. An
// empty slice means there are no games; failures are returned as errors.
func (s *ListingService) Latest(ctx context.Context, n int) ([]*types.Game, error) {
	if n <= 0 {
		n = s.defaultAmount
	}
	games, err := s.gateway.GetLatestSomeGames(ctx, strconv.Itoa(n))
	if err != nil {
		return nil, err
	}
	if games == nil {
		games = []*types.Game{}
	}
	return games, nil
}
