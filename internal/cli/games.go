package cli

import (
	"net/url"

	"github.com/spf13/cobra"
)

func newStealCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "steal",
		Short: "Steal candy from another player",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "start <player>",
		Short: "Attempt to steal from a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"target": args[0]}
			var result StealInitiated

			if err := client.Post("/api/v1/steals", req, &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "answer <token> <sweet|trick>",
		Short: "Answer a steal attempt aimed at you",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"choice": args[1]}
			var result StealResolution

			if err := client.Post("/api/v1/steals/"+url.PathEscape(args[0])+"/resolve", req, &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	})

	return cmd
}

func newDuelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "duel",
		Short: "Rock-paper-scissors duels",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "start <player>",
		Short: "Challenge a player to a duel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"target": args[0]}
			var result DuelInitiated

			if err := client.Post("/api/v1/duels", req, &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "answer <token> <rock|paper|scissors>",
		Short: "Answer a duel challenge",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"choice": args[1]}
			var result DuelResolution

			if err := client.Post("/api/v1/duels/"+url.PathEscape(args[0])+"/resolve", req, &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	})

	return cmd
}
