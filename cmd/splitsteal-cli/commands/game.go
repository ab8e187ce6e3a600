// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/33cn/splitsteal/client"
	"github.com/33cn/splitsteal/common"
	"github.com/33cn/splitsteal/types"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// GameCmd split or steal game management
func GameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "split or steal game management",
		Args:  cobra.MinimumNArgs(1),
	}

	cmd.AddCommand(
		GameCreateCmd(),
		GameCommitCmd(),
		GameSubmitCmd(),
		GameRevealCmd(),
		GameReleaseCmd(),
		GameShowCmd(),
		GameListCmd(),
		GameStageCmd(),
		GameIDCmd(),
	)

	return cmd
}

func addGameIDFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("gameID", "g", "", "game ID")
	cmd.MarkFlagRequired("gameID")
}

// now is replaced in tests
var now = time.Now

// GameCreateCmd create a game between two accounts
func GameCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a game, the configured deposit becomes the prize pool",
		RunE:  gameCreate,
	}
	cmd.Flags().String("playerOne", "", "player one account")
	cmd.MarkFlagRequired("playerOne")
	cmd.Flags().String("playerTwo", "", "player two account")
	cmd.MarkFlagRequired("playerTwo")
	return cmd
}

func gameCreate(cmd *cobra.Command, args []string) error {
	one, _ := cmd.Flags().GetString("playerOne")
	two, _ := cmd.Flags().GetString("playerTwo")
	g, err := newGateway(current, true)
	if err != nil {
		return err
	}
	receipt, err := g.CreateGame(cmdContext(cmd), &types.CreateGameArgs{PlayerOneAddress: one, PlayerTwoAddress: two})
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), receipt)
}

// GameCommitCmd compute the commitment hashes locally
func GameCommitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Compute decision and salt hashes without sending anything",
		RunE:  gameCommit,
	}
	cmd.Flags().StringP("decision", "d", "", "split or steal")
	cmd.MarkFlagRequired("decision")
	cmd.Flags().StringP("salt", "s", "", "secret salt, prompted when empty")
	return cmd
}

type commitResult struct {
	Decision     string `json:"decision"`
	DecisionHash string `json:"decision_hash"`
	SaltHash     string `json:"salt_hash"`
}

func gameCommit(cmd *cobra.Command, args []string) error {
	c, d, err := commitFromFlags(cmd)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), &commitResult{
		Decision:     d.String(),
		DecisionHash: common.HashToHex(c.DecisionHash),
		SaltHash:     common.HashToHex(c.SaltHash),
	})
}

func commitFromFlags(cmd *cobra.Command) (*types.Commitment, types.Decision, error) {
	s, _ := cmd.Flags().GetString("decision")
	d, err := types.ParseDecision(s)
	if err != nil {
		return nil, types.DecisionNone, err
	}
	salt, err := readSalt(cmd)
	if err != nil {
		return nil, types.DecisionNone, err
	}
	c, err := types.NewCommitment(d, salt)
	if err != nil {
		return nil, types.DecisionNone, err
	}
	return c, d, nil
}

// GameSubmitCmd submit a commitment
func GameSubmitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a decision commitment",
		RunE:  gameSubmit,
	}
	addGameIDFlag(cmd)
	cmd.Flags().StringP("decision", "d", "", "split or steal, hashed locally with --salt")
	cmd.Flags().StringP("salt", "s", "", "secret salt, prompted when --decision is set and this is empty")
	cmd.Flags().String("decision_hash", "", "precomputed decision hash, hex")
	cmd.Flags().String("salt_hash", "", "precomputed salt hash, hex")
	return cmd
}

func gameSubmit(cmd *cobra.Command, args []string) error {
	gameID, _ := cmd.Flags().GetString("gameID")
	decision, _ := cmd.Flags().GetString("decision")
	decisionHash, _ := cmd.Flags().GetString("decision_hash")
	saltHash, _ := cmd.Flags().GetString("salt_hash")

	req := &types.SubmitDecisionArgs{GameID: gameID}
	switch {
	case decision != "" && (decisionHash != "" || saltHash != ""):
		return errors.WithMessage(types.ErrValidation, "use either --decision or the raw hashes, not both")
	case decision != "":
		c, _, err := commitFromFlags(cmd)
		if err != nil {
			return err
		}
		req.DecisionHash, req.SaltHash = c.DecisionHash, c.SaltHash
	case decisionHash != "" && saltHash != "":
		dh, err := common.ParseHash(decisionHash)
		if err != nil {
			return errors.WithMessage(err, "decision_hash")
		}
		sh, err := common.ParseHash(saltHash)
		if err != nil {
			return errors.WithMessage(err, "salt_hash")
		}
		req.DecisionHash, req.SaltHash = dh, sh
	default:
		return errors.WithMessage(types.ErrValidation, "--decision or both --decision_hash and --salt_hash are required")
	}

	g, err := newGateway(current, true)
	if err != nil {
		return err
	}
	receipt, err := g.SubmitDecision(cmdContext(cmd), req)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), receipt)
}

// GameRevealCmd reveal the salt
func GameRevealCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reveal",
		Short: "Reveal the salt of a submitted decision",
		RunE:  gameReveal,
	}
	addGameIDFlag(cmd)
	cmd.Flags().StringP("salt", "s", "", "secret salt, prompted when empty")
	cmd.Flags().Bool("force", false, "send even when the salt does not open the stored commitment")
	return cmd
}

func gameReveal(cmd *cobra.Command, args []string) error {
	gameID, _ := cmd.Flags().GetString("gameID")
	force, _ := cmd.Flags().GetBool("force")
	salt, err := readSalt(cmd)
	if err != nil {
		return err
	}
	g, err := newGateway(current, true)
	if err != nil {
		return err
	}
	ctx := cmdContext(cmd)
	if !force {
		if err := checkReveal(ctx, g, gameID, salt); err != nil {
			return err
		}
	}
	receipt, err := g.RevealDecision(ctx, &types.RevealDecisionArgs{GameID: gameID, Salt: salt})
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), receipt)
}

// checkReveal refuses a reveal the contract would reject
func checkReveal(ctx context.Context, g *client.Gateway, gameID, salt string) error {
	game, err := g.GetGame(ctx, gameID)
	if err != nil {
		return err
	}
	account := g.Signer().AccountID()
	stage := types.ResolveStage(game, account, now())
	if stage.Terminal() {
		return errors.WithMessagef(types.ErrValidation, "game %s is %s for %s, nothing can be revealed", gameID, stage, account)
	}
	if stage != types.StageReadyToReveal {
		return errors.WithMessagef(types.ErrValidation, "game %s is %s for %s, wait before revealing", gameID, stage, account)
	}
	self, _, _ := game.Slots(account)
	d, err := types.CheckReveal(self, salt)
	if err != nil {
		return err
	}
	clilog.Info("checkReveal", "game", gameID, "decision", d)
	return nil
}

// GameReleaseCmd release the pool of an expired game
func GameReleaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "release",
		Short: "Release the funds of an expired game",
		RunE:  gameRelease,
	}
	addGameIDFlag(cmd)
	return cmd
}

func gameRelease(cmd *cobra.Command, args []string) error {
	gameID, _ := cmd.Flags().GetString("gameID")
	g, err := newGateway(current, true)
	if err != nil {
		return err
	}
	receipt, err := g.ReleaseFunds(cmdContext(cmd), gameID)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), receipt)
}

// GameShowCmd show one game
func GameShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a game, its stage and its settlement",
		RunE:  gameShow,
	}
	addGameIDFlag(cmd)
	return cmd
}

type playerView struct {
	PlayAddress  string `json:"play_address"`
	Committed    bool   `json:"committed"`
	Revealed     bool   `json:"revealed"`
	DecisionHash string `json:"decision_hash,omitempty"`
	SaltHash     string `json:"salt_hash,omitempty"`
	Decision     string `json:"decision"`
}

type payoutView struct {
	Account string `json:"account"`
	Amount  string `json:"amount"`
}

type gameView struct {
	GameID     string        `json:"game_id"`
	OwnerID    string        `json:"owner_id"`
	IsEnd      bool          `json:"is_end"`
	PrizePool  string        `json:"prize_pool"`
	PlayerOne  *playerView   `json:"player_one"`
	PlayerTwo  *playerView   `json:"player_two"`
	Deadline   string        `json:"deadline"`
	Viewer     string        `json:"viewer,omitempty"`
	Stage      string        `json:"stage"`
	Settlement []*payoutView `json:"settlement,omitempty"`
}

func newPlayerView(p *types.PlayerData) *playerView {
	v := &playerView{
		PlayAddress: p.PlayAddress,
		Committed:   p.Committed(),
		Revealed:    p.Revealed(),
		Decision:    p.Decision.String(),
	}
	if p.DecisionHash != nil {
		v.DecisionHash = common.HashToHex(*p.DecisionHash)
	}
	if p.SaltHash != nil {
		v.SaltHash = common.HashToHex(*p.SaltHash)
	}
	return v
}

func newGameView(game *types.Game, viewer string, at time.Time) *gameView {
	v := &gameView{
		GameID:    game.GameID,
		OwnerID:   game.OwnerID,
		IsEnd:     game.IsEnd,
		PrizePool: types.FormatNearAmount(game.PrizePoolAmount) + " NEAR",
		PlayerOne: newPlayerView(&game.PlayerOne),
		PlayerTwo: newPlayerView(&game.PlayerTwo),
		Deadline:  game.Deadline().UTC().Format(time.RFC3339),
		Viewer:    viewer,
		Stage:     types.ResolveStage(game, viewer, at).String(),
	}
	if game.IsEnd {
		if s, ok := types.Settle(game); ok {
			for _, p := range s.Payouts {
				v.Settlement = append(v.Settlement, &payoutView{Account: p.Account, Amount: types.FormatNearAmount(p.Amount) + " NEAR"})
			}
		}
	}
	return v
}

func gameShow(cmd *cobra.Command, args []string) error {
	gameID, _ := cmd.Flags().GetString("gameID")
	g, err := newGateway(current, false)
	if err != nil {
		return err
	}
	game, err := g.GetGame(cmdContext(cmd), gameID)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), newGameView(game, current.Wallet.AccountID, now()))
}

// GameListCmd list the latest games
func GameListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the latest games, newest first",
		RunE:  gameList,
	}
	cmd.Flags().IntP("count", "n", 0, "number of games, config listAmount when 0")
	return cmd
}

type gameRow struct {
	GameID    string           `json:"game_id"`
	Status    types.ListStatus `json:"status"`
	OwnerID   string           `json:"owner_id"`
	PlayerOne string           `json:"player_one"`
	PlayerTwo string           `json:"player_two"`
	PrizePool string           `json:"prize_pool"`
}

func gameList(cmd *cobra.Command, args []string) error {
	n, _ := cmd.Flags().GetInt("count")
	g, err := newGateway(current, false)
	if err != nil {
		return err
	}
	games, err := client.NewListingService(g, current.Contract.ListAmount).Latest(cmdContext(cmd), n)
	if err != nil {
		return err
	}
	at := now()
	rows := make([]*gameRow, 0, len(games))
	for _, game := range games {
		rows = append(rows, &gameRow{
			GameID:    game.GameID,
			Status:    types.StatusOf(game, at),
			OwnerID:   game.OwnerID,
			PlayerOne: game.PlayerOne.PlayAddress,
			PlayerTwo: game.PlayerTwo.PlayAddress,
			PrizePool: types.FormatNearAmount(game.PrizePoolAmount) + " NEAR",
		})
	}
	return printJSON(cmd.OutOrStdout(), rows)
}

// GameStageCmd print the stage of a game for an account
func GameStageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stage",
		Short: "Print the stage of a game for the configured account",
		RunE:  gameStage,
	}
	addGameIDFlag(cmd)
	return cmd
}

func gameStage(cmd *cobra.Command, args []string) error {
	gameID, _ := cmd.Flags().GetString("gameID")
	g, err := newGateway(current, false)
	if err != nil {
		return err
	}
	game, err := g.GetGame(cmdContext(cmd), gameID)
	if err != nil && !errors.Is(err, types.ErrNotFound) {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), types.ResolveStage(game, current.Wallet.AccountID, now()))
	return nil
}

// GameIDCmd print the latest game id
func GameIDCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "id",
		Short: "Print the id of the latest game",
		RunE:  latestGameID,
	}
	return cmd
}

func latestGameID(cmd *cobra.Command, args []string) error {
	g, err := newGateway(current, false)
	if err != nil {
		return err
	}
	id, err := g.LatestGameID(cmdContext(cmd))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), id)
	return nil
}
