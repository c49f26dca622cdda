package cli

import (
	"github.com/spf13/cobra"
)

func newShopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shop",
		Short: "Browse the shop",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Shop

			if err := client.Get("/api/v1/shop", &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "buy <item>",
		Short: "Buy a costume, potion, licorice or clan-licorice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"item": args[0]}
			var result PurchaseResult

			if err := client.Post("/api/v1/shop/purchase", req, &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	})

	return cmd
}

func newInventoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Show what you own",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Inventory

			if err := client.Get("/api/v1/inventory", &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "use <item>",
		Short: "Equip a costume or drink a potion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"item": args[0]}
			var result UseResult

			if err := client.Post("/api/v1/inventory/use", req, &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	})

	return cmd
}
