// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package client typed access to the split or steal game contract
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"unicode/utf8"

	"github.com/33cn/splitsteal/common/address"
	"github.com/33cn/splitsteal/common/log"
	"github.com/33cn/splitsteal/rpc"
	"github.com/33cn/splitsteal/types"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var clog = log.New("module", "client")

// Querier runs contract view methods. args is the JSON argument object and
// the raw result bytes come back undecoded.
type Querier interface {
	CallFunction(ctx context.Context, contractID, method string, args []byte) ([]byte, error)
}

// Signer signs and broadcasts function calls on behalf of an account. It is
// the only way the gateway writes to the chain.
type Signer interface {
	AccountID() string
	SignAndSendTransaction(ctx context.Context, receiverID string, actions []*types.FunctionCall) (*types.TxReceipt, error)
}

// Gateway translates typed game calls into contract calls
type Gateway struct {
	contractID    string
	querier       Querier
	signer        Signer
	gas           uint64
	createDeposit decimal.Decimal
}

// GatewayOption configures a Gateway
type GatewayOption func(*Gateway)

// WithSigner enables the write path
func WithSigner(s Signer) GatewayOption {
	return func(g *Gateway) {
		g.signer = s
	}
}

// WithGas sets the gas attached to every write
func WithGas(gas uint64) GatewayOption {
	return func(g *Gateway) {
		g.gas = gas
	}
}

// WithCreateDeposit sets the yoctoNEAR deposit attached to create_game
func WithCreateDeposit(d decimal.Decimal) GatewayOption {
	return func(g *Gateway) {
		g.createDeposit = d
	}
}

// NewGateway builds a gateway for contractID
func NewGateway(contractID string, q Querier, opts ...GatewayOption) *Gateway {
	deposit, _ := types.ParseNearAmount(types.DefaultCreateDeposit)
	g := &Gateway{
		contractID:    contractID,
		querier:       q,
		gas:           types.DefaultGas,
		createDeposit: deposit,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Signer the configured signer, may be nil
func (g *Gateway) Signer() Signer {
	return g.signer
}

func (g *Gateway) view(ctx context.Context, method string, req interface{}) ([]byte, error) {
	args, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrapf(err, "marshal %s args", method)
	}
	raw, err := g.querier.CallFunction(ctx, g.contractID, method, args)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(raw) {
		return nil, errors.WithMessagef(types.ErrDecode, "%s result is not utf-8", method)
	}
	return raw, nil
}

// GetGame reads one game. Anything short of a transport failure that leaves
// no usable record, the contract aborting on an unknown id included, is
// reported as types.ErrNotFound.
func (g *Gateway) GetGame(ctx context.Context, id string) (*types.Game, error) {
	if id == "" {
		return nil, types.ErrEmptyGameID
	}
	raw, err := g.view(ctx, types.FuncNameGetGame, &types.ReqGame{ID: id})
	if err != nil {
		if rpc.IsContractError(err) || errors.Is(err, types.ErrDecode) {
			clog.Debug("GetGame", "id", id, "err", err)
			return nil, errors.Wrapf(types.ErrNotFound, "game %s: %v", id, err)
		}
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, errors.Wrapf(types.ErrNotFound, "game %s", id)
	}
	var game types.Game
	if err := json.Unmarshal(raw, &game); err != nil {
		return nil, errors.Wrapf(types.ErrNotFound, "game %s: undecodable record: %v", id, err)
	}
	game.GameID = id
	return &game, nil
}

// GetLatestSomeGames reads up to amount of the newest games, newest first.
// The contract answers with parallel id and record lists; they are joined by
// position and must be the same length.
func (g *Gateway) GetLatestSomeGames(ctx context.Context, amount string) ([]*types.Game, error) {
	if _, err := strconv.ParseUint(amount, 10, 64); err != nil {
		return nil, errors.WithMessagef(types.ErrValidation, "amount %q is not a count", amount)
	}
	raw, err := g.view(ctx, types.FuncNameGetLatestSomeGames, &types.ReqLatestGames{Amount: amount})
	if err != nil {
		return nil, err
	}
	return decodeGameList(raw)
}

func decodeGameList(raw []byte) ([]*types.Game, error) {
	var pair []json.RawMessage
	if err := json.Unmarshal(raw, &pair); err != nil {
		return nil, errors.WithMessage(types.ErrListShape, err.Error())
	}
	if len(pair) != 2 {
		return nil, errors.WithMessagef(types.ErrListShape, "got %d elements", len(pair))
	}
	var ids []string
	if err := json.Unmarshal(pair[0], &ids); err != nil {
		return nil, errors.WithMessagef(types.ErrListShape, "ids: %v", err)
	}
	var games []*types.Game
	if err := json.Unmarshal(pair[1], &games); err != nil {
		return nil, errors.WithMessagef(types.ErrListShape, "games: %v", err)
	}
	if len(ids) != len(games) {
		return nil, errors.WithMessagef(types.ErrListLength, "%d ids, %d games", len(ids), len(games))
	}
	for i, game := range games {
		if game == nil {
			return nil, errors.WithMessagef(types.ErrListShape, "game %d is null", i)
		}
		game.GameID = ids[i]
	}
	return games, nil
}

// LatestGameID the id of the newest game, "0" before any game exists
func (g *Gateway) LatestGameID(ctx context.Context) (string, error) {
	raw, err := g.view(ctx, types.FuncNameGetGameID, struct{}{})
	if err != nil {
		return "", err
	}
	var id string
	if err := json.Unmarshal(raw, &id); err != nil {
		return "", errors.WithMessagef(types.ErrDecode, "game id: %v", err)
	}
	return id, nil
}

// CreateGame creates a game between two accounts with the fixed deposit
func (g *Gateway) CreateGame(ctx context.Context, args *types.CreateGameArgs) (*types.TxReceipt, error) {
	if args == nil {
		return nil, errors.WithMessage(types.ErrValidation, "nil create_game args")
	}
	if err := address.CheckAccountID(args.PlayerOneAddress); err != nil {
		return nil, errors.WithMessage(err, "player one")
	}
	if err := address.CheckAccountID(args.PlayerTwoAddress); err != nil {
		return nil, errors.WithMessage(err, "player two")
	}
	return g.send(ctx, types.ActionCreateGame, args, g.createDeposit)
}

// SubmitDecision commits the hashes of the signer's decision and salt
func (g *Gateway) SubmitDecision(ctx context.Context, args *types.SubmitDecisionArgs) (*types.TxReceipt, error) {
	if args == nil {
		return nil, errors.WithMessage(types.ErrValidation, "nil submit_decision args")
	}
	if args.GameID == "" {
		return nil, types.ErrEmptyGameID
	}
	return g.send(ctx, types.ActionSubmitDecision, args, decimal.Zero)
}

// RevealDecision sends the raw salt used at commit time
func (g *Gateway) RevealDecision(ctx context.Context, args *types.RevealDecisionArgs) (*types.TxReceipt, error) {
	if args == nil {
		return nil, errors.WithMessage(types.ErrValidation, "nil reveal_decision args")
	}
	if args.GameID == "" {
		return nil, types.ErrEmptyGameID
	}
	if args.Salt == "" {
		return nil, types.ErrEmptySalt
	}
	return g.send(ctx, types.ActionRevealDecision, args, decimal.Zero)
}

// ReleaseFunds asks the contract to pay out an expired game
func (g *Gateway) ReleaseFunds(ctx context.Context, gameID string) (*types.TxReceipt, error) {
	if gameID == "" {
		return nil, types.ErrEmptyGameID
	}
	return g.send(ctx, types.ActionReleaseFunds, &types.ReleaseFundsArgs{GameID: gameID}, decimal.Zero)
}

// send hands one call to the signer. It is not retried.
func (g *Gateway) send(ctx context.Context, method string, args interface{}, deposit decimal.Decimal) (*types.TxReceipt, error) {
	if g.signer == nil {
		return nil, types.ErrNoSigner
	}
	data, err := json.Marshal(args)
	if err != nil {
		return nil, errors.Wrapf(err, "marshal %s args", method)
	}
	call := &types.FunctionCall{
		MethodName: method,
		Args:       data,
		Gas:        g.gas,
		Deposit:    deposit,
	}
	clog.Info("send", "method", method, "contract", g.contractID, "signer", g.signer.AccountID())
	receipt, err := g.signer.SignAndSendTransaction(ctx, g.contractID, []*types.FunctionCall{call})
	if err != nil {
		clog.Error("send", "method", method, "err", err)
		if errors.Is(err, types.ErrValidation) || errors.Is(err, types.ErrDecode) || errors.Is(err, types.ErrTransport) {
			return nil, err
		}
		return nil, errors.Wrap(types.ErrTransport, err.Error())
	}
	return receipt, nil
}
