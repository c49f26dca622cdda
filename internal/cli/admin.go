package cli

import (
	"net/url"

	"github.com/spf13/cobra"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Privileged commands (requires --privileged)",
	}

	cmd.AddCommand(newAdminAdjustCmd("credit", "Credit candy to a player"))
	cmd.AddCommand(newAdminAdjustCmd("debit", "Debit candy from a player"))
	cmd.AddCommand(newAdminPromoCmd())
	cmd.AddCommand(newAdminResetCooldownCmd())
	cmd.AddCommand(newAdminStatsCmd())

	return cmd
}

func newAdminResetCooldownCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "reset-cooldown <steal|clan_war> <player-or-clan>",
		Short:     "Clear a steal or clan war cooldown",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"steal", "clan_war"},
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"kind": args[0], "subject": args[1]}
			var result CooldownReset

			if err := client.Post("/api/v1/admin/cooldowns/reset", req, &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newAdminAdjustCmd(action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <player> <amount>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}

			req := map[string]any{"target": args[0], "amount": amount}
			var result AdjustResult

			if err := client.Post("/api/v1/admin/"+action, req, &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newAdminPromoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "promo",
		Short: "Manage promo codes",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List promo codes",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Promos

			if err := client.Get("/api/v1/admin/promos", &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	})
	cmd.AddCommand(newAdminPromoCreateCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <code>",
		Short: "Delete a promo code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/admin/promos/" + url.PathEscape(args[0])); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.PrintMessage("Deleted promo " + args[0])
			return nil
		},
	})

	return cmd
}

func newAdminPromoCreateCmd() *cobra.Command {
	var maxUses int

	cmd := &cobra.Command{
		Use:   "create <code> <reward>",
		Short: "Create a promo code",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reward, err := parseAmount(args[1])
			if err != nil {
				return err
			}

			req := map[string]any{"code": args[0], "reward": reward, "max_uses": maxUses}
			var result Promo

			if err := client.Post("/api/v1/admin/promos", req, &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxUses, "max-uses", 0, "Maximum redemptions (0 for unlimited)")

	return cmd
}

func newAdminStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show ledger statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Stats

			if err := client.Get("/api/v1/admin/stats", &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
