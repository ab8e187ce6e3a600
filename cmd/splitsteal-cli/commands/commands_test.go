// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/33cn/splitsteal/types"
	"github.com/33cn/splitsteal/wallet"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	hashSplit1234 = "c36562c53838cb8ed23e9de694b67c8f42ebd246ce5073a43a8eac6535122504"
	hashSalt1234  = "03ac674216f3e15c761ee1a5e255f067953623c8b388b4459e13f978d7c846f4"
)

var testNow = time.Date(2023, 11, 14, 22, 0, 0, 0, time.UTC)

// fakeNode answers the json-rpc methods the client uses
type fakeNode struct {
	mu      sync.Mutex
	games   map[string]*types.Game
	methods []string
	sent    int
}

type rpcRequest struct {
	ID     string          `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

type queryParams struct {
	RequestType string `json:"request_type"`
	MethodName  string `json:"method_name"`
	ArgsBase64  string `json:"args_base64"`
}

func byteArray(b []byte) []int {
	out := make([]int, len(b))
	for i, v := range b {
		out[i] = int(v)
	}
	return out
}

func (f *fakeNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	reply := func(result interface{}, rpcErr interface{}) {
		json.NewEncoder(w).Encode(map[string]interface{}{"jsonrpc": "2.0", "id": req.ID, "result": result, "error": rpcErr})
	}
	switch req.Method {
	case "status":
		f.methods = append(f.methods, "status")
		reply(map[string]interface{}{"chain_id": "testnet", "sync_info": map[string]interface{}{"latest_block_height": 99}}, nil)
	case "broadcast_tx_commit":
		f.methods = append(f.methods, "broadcast_tx_commit")
		f.sent++
		reply(map[string]interface{}{"status": map[string]string{"SuccessValue": ""}, "transaction": map[string]string{"hash": "txhash"}}, nil)
	case "query":
		var q queryParams
		json.Unmarshal(req.Params, &q)
		if q.RequestType == "view_access_key" {
			f.methods = append(f.methods, "view_access_key")
			reply(map[string]interface{}{"nonce": 1, "block_hash": base58.Encode(make([]byte, 32))}, nil)
			return
		}
		f.methods = append(f.methods, q.MethodName)
		args, _ := base64.StdEncoding.DecodeString(q.ArgsBase64)
		var result interface{}
		switch q.MethodName {
		case types.FuncNameGetGame:
			var a types.ReqGame
			json.Unmarshal(args, &a)
			game, ok := f.games[a.ID]
			if !ok {
				reply(nil, map[string]interface{}{
					"name":    "HANDLER_ERROR",
					"cause":   map[string]string{"name": "CONTRACT_EXECUTION_ERROR"},
					"code":    -32000,
					"message": "Server error",
				})
				return
			}
			result = game
		case types.FuncNameGetLatestSomeGames:
			ids := []string{}
			games := []*types.Game{}
			for _, id := range []string{"2", "1"} {
				if g, ok := f.games[id]; ok {
					ids = append(ids, id)
					games = append(games, g)
				}
			}
			result = []interface{}{ids, games}
		case types.FuncNameGetGameID:
			result = "2"
		}
		data, _ := json.Marshal(result)
		reply(map[string]interface{}{"result": byteArray(data), "logs": []string{}}, nil)
	default:
		reply(nil, map[string]interface{}{"code": -32601, "message": "Method not found"})
	}
}

func hashPtr(h types.CryptoHash) *types.CryptoHash {
	return &h
}

func newFakeNode() *fakeNode {
	pool, _ := types.ParseNearAmount("0.1")
	exp := uint64(testNow.Add(10 * time.Minute).UnixMilli())
	return &fakeNode{games: map[string]*types.Game{
		"1": {
			OwnerID:                      "carol.testnet",
			IsEnd:                        true,
			PrizePoolAmount:              pool,
			PlayerOne:                    types.PlayerData{PlayAddress: "alice.testnet", Decision: types.DecisionSplit},
			PlayerTwo:                    types.PlayerData{PlayAddress: "bob.testnet", Decision: types.DecisionSteal},
			ExpirationTimestampInSeconds: exp,
		},
		"2": {
			OwnerID:         "carol.testnet",
			PrizePoolAmount: pool,
			PlayerOne: types.PlayerData{
				PlayAddress:  "alice.testnet",
				DecisionHash: hashPtr(types.DecisionHash(types.DecisionSplit, "1234")),
				SaltHash:     hashPtr(types.SaltHash("1234")),
			},
			PlayerTwo: types.PlayerData{
				PlayAddress:  "bob.testnet",
				DecisionHash: hashPtr(types.DecisionHash(types.DecisionSteal, "abcd")),
				SaltHash:     hashPtr(types.SaltHash("abcd")),
			},
			ExpirationTimestampInSeconds: exp,
		},
	}}
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	return runContext(context.Background(), stdin, args...)
}

func runContext(ctx context.Context, stdin string, args ...string) (string, error) {
	now = func() time.Time { return testNow }
	cmd := RootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--env", ""}, args...))
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func writeConf(t *testing.T, laddr string) string {
	seed := make([]byte, ed25519.SeedSize)
	seed[0] = 1
	priv := ed25519.NewKeyFromSeed(seed)
	conf := `
[rpc]
laddr="` + laddr + `"
timeout="5s"

[contract]
contractID="splitsteal.testnet"

[wallet]
accountID="alice.testnet"
privateKey="` + wallet.FormatPrivateKey(priv) + `"
`
	path := filepath.Join(t.TempDir(), "splitsteal.toml")
	require.NoError(t, os.WriteFile(path, []byte(conf), 0600))
	return path
}

func TestGameCommit(t *testing.T) {
	out, err := run(t, "", "game", "commit", "-d", "split", "-s", "1234")
	require.NoError(t, err)
	var res commitResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "split", res.Decision)
	assert.Equal(t, hashSplit1234, res.DecisionHash)
	assert.Equal(t, hashSalt1234, res.SaltHash)
}

func TestGameCommitSaltFromStdin(t *testing.T) {
	out, err := run(t, "1234\n", "game", "commit", "-d", "1")
	require.NoError(t, err)
	assert.Contains(t, out, hashSplit1234)

	_, err = run(t, "", "game", "commit", "-d", "split")
	assert.True(t, errors.Is(err, types.ErrEmptySalt))

	_, err = run(t, "", "game", "commit", "-d", "share", "-s", "1234")
	assert.True(t, errors.Is(err, types.ErrDecisionValue))
}

func TestGameShow(t *testing.T) {
	node := newFakeNode()
	srv := httptest.NewServer(node)
	defer srv.Close()

	out, err := run(t, "", "--rpc_laddr", srv.URL, "--account", "bob.testnet", "game", "show", "-g", "2")
	require.NoError(t, err)
	var v gameView
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, "2", v.GameID)
	assert.Equal(t, "ReadyToReveal", v.Stage)
	assert.Equal(t, "0.1 NEAR", v.PrizePool)
	assert.Equal(t, hashSplit1234, v.PlayerOne.DecisionHash)
	assert.Empty(t, v.Settlement)

	out, err = run(t, "", "--rpc_laddr", srv.URL, "game", "show", "-g", "1")
	require.NoError(t, err)
	v = gameView{}
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, "Ended", v.Stage)
	require.Len(t, v.Settlement, 1)
	assert.Equal(t, "bob.testnet", v.Settlement[0].Account)
	assert.True(t, v.PlayerOne.Revealed)
	assert.False(t, v.PlayerOne.Committed)
	assert.Equal(t, "0.1 NEAR", v.Settlement[0].Amount)

	_, err = run(t, "", "--rpc_laddr", srv.URL, "game", "show", "-g", "7")
	assert.True(t, errors.Is(err, types.ErrNotFound))
}

func TestGameStage(t *testing.T) {
	srv := httptest.NewServer(newFakeNode())
	defer srv.Close()

	out, err := run(t, "", "--rpc_laddr", srv.URL, "--account", "dave.testnet", "game", "stage", "-g", "2")
	require.NoError(t, err)
	assert.Equal(t, "NotAPlayer\n", out)

	out, err = run(t, "", "--rpc_laddr", srv.URL, "--account", "alice.testnet", "game", "stage", "-g", "7")
	require.NoError(t, err)
	assert.Equal(t, "NotFound\n", out)
}

func TestGameListAndID(t *testing.T) {
	srv := httptest.NewServer(newFakeNode())
	defer srv.Close()

	out, err := run(t, "", "--rpc_laddr", srv.URL, "game", "list")
	require.NoError(t, err)
	var rows []*gameRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "2", rows[0].GameID)
	assert.Equal(t, types.ListStatusWaitPlay, rows[0].Status)
	assert.Equal(t, types.ListStatusEnded, rows[1].Status)

	out, err = run(t, "", "--rpc_laddr", srv.URL, "game", "id")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
}

func TestGameSubmitFlags(t *testing.T) {
	_, err := run(t, "", "game", "submit", "-g", "2", "-d", "split", "-s", "1234", "--salt_hash", hashSalt1234)
	assert.True(t, errors.Is(err, types.ErrValidation))

	_, err = run(t, "", "game", "submit", "-g", "2", "--decision_hash", hashSplit1234)
	assert.True(t, errors.Is(err, types.ErrValidation))

	_, err = run(t, "", "game", "submit", "-g", "2", "--decision_hash", "xyz", "--salt_hash", hashSalt1234)
	assert.True(t, errors.Is(err, types.ErrHashFormat))

	_, err = run(t, "", "game", "submit", "-g", "2", "-d", "steal", "-s", "1234")
	assert.Equal(t, types.ErrNoSigner, err)
}

func TestGameReveal(t *testing.T) {
	node := newFakeNode()
	srv := httptest.NewServer(node)
	defer srv.Close()
	conf := writeConf(t, srv.URL)

	_, err := run(t, "", "--conf", conf, "game", "reveal", "-g", "2", "-s", "abcd")
	assert.True(t, errors.Is(err, types.ErrSaltMismatch))
	assert.Equal(t, 0, node.sent)

	out, err := run(t, "1234\n", "--conf", conf, "game", "reveal", "-g", "2")
	require.NoError(t, err)
	assert.Equal(t, 1, node.sent)
	var receipt types.TxReceipt
	require.NoError(t, json.Unmarshal([]byte(out), &receipt))
	assert.Equal(t, "txhash", receipt.Hash)
	assert.Equal(t, "alice.testnet", receipt.Signer)
	assert.Equal(t, []string{types.FuncNameGetGame, types.FuncNameGetGame, "view_access_key", "broadcast_tx_commit"}, node.methods)

	_, err = run(t, "", "--conf", conf, "game", "reveal", "-g", "1", "-s", "1234")
	assert.True(t, errors.Is(err, types.ErrValidation))
	assert.Contains(t, err.Error(), "Ended")
	assert.Contains(t, err.Error(), "nothing can be revealed")
	assert.Equal(t, 1, node.sent)
}

func TestGameCreate(t *testing.T) {
	node := newFakeNode()
	srv := httptest.NewServer(node)
	defer srv.Close()
	conf := writeConf(t, srv.URL)

	_, err := run(t, "", "--conf", conf, "game", "create", "--playerOne", "bob.testnet", "--playerTwo", "Not Valid")
	assert.True(t, errors.Is(err, types.ErrAccountID))
	assert.Equal(t, 0, node.sent)

	_, err = run(t, "", "--conf", conf, "game", "create", "--playerOne", "bob.testnet", "--playerTwo", "dunny.testnet")
	require.NoError(t, err)
	assert.Equal(t, 1, node.sent)
}

func TestCanceledContextStopsRPC(t *testing.T) {
	node := newFakeNode()
	srv := httptest.NewServer(node)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := runContext(ctx, "", "--rpc_laddr", srv.URL, "game", "id")
	assert.True(t, errors.Is(err, types.ErrTransport))
	assert.Empty(t, node.methods)
}

func TestNetStatus(t *testing.T) {
	srv := httptest.NewServer(newFakeNode())
	defer srv.Close()

	out, err := run(t, "", "--rpc_laddr", srv.URL, "net", "status")
	require.NoError(t, err)
	var status NodeStatus
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	assert.Equal(t, "testnet", status.ChainID)
	assert.Equal(t, uint64(99), status.SyncInfo.LatestBlockHeight)
}

func TestLoadConfigPrecedence(t *testing.T) {
	conf := writeConf(t, "http://127.0.0.1:1")
	t.Setenv(types.EnvContractID, "env.testnet")
	t.Setenv(types.EnvListAmount, "3")

	cmd := RootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--conf", conf, "--env", "", "--rpc_laddr", "http://127.0.0.1:2"}))
	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:2", cfg.RPC.Laddr)
	assert.Equal(t, "env.testnet", cfg.Contract.ContractID)
	assert.Equal(t, 3, cfg.Contract.ListAmount)
	assert.Equal(t, "alice.testnet", cfg.Wallet.AccountID)
	assert.Equal(t, 5*time.Second, cfg.RPC.Timeout.Duration)
}
