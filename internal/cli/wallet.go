package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

// parseAmount parses a positive candy amount argument
func parseAmount(s string) (int64, error) {
	amount, err := strconv.ParseInt(s, 10, 64)
	if err != nil || amount <= 0 {
		return 0, fmt.Errorf("amount must be a positive integer, got %q", s)
	}
	return amount, nil
}

func newDailyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daily",
		Short: "Claim the daily candy reward",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result DailyResult

			if err := client.Post("/api/v1/daily", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show your candy balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result BalanceResult

			if err := client.Get("/api/v1/balance", &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "give <player> <amount>",
		Short: "Give candy to another player",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}

			req := map[string]any{"target": args[0], "amount": amount}
			var result GiveResult

			if err := client.Post("/api/v1/give", req, &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile [player]",
		Short: "Show your profile or another player's",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/profile"
			if len(args) == 1 {
				path += "/" + url.PathEscape(args[0])
			}

			var result Profile
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newLeaderboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the leaderboards",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "players",
		Short: "Top players by total candy earned",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PlayerLeaderboard

			if err := client.Get("/api/v1/leaderboard/players", &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clans",
		Short: "Top clans by treasury",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ClanLeaderboard

			if err := client.Get("/api/v1/leaderboard/clans", &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	})

	return cmd
}

func newChallengesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "challenges",
		Short: "Show today's challenge progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Challenges

			if err := client.Get("/api/v1/challenges", &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "claim",
		Short: "Claim rewards for completed challenges",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ClaimResult

			if err := client.Post("/api/v1/challenges/claim", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	})

	return cmd
}

func newPromoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "promo",
		Short: "Promo code commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "redeem <code>",
		Short: "Redeem a promo code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"code": args[0]}
			var result PromoResult

			if err := client.Post("/api/v1/promos/redeem", req, &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	})

	return cmd
}
