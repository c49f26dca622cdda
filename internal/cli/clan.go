package cli

import (
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

func newClanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clan",
		Short: "Clan commands",
	}

	cmd.AddCommand(newClanCreateCmd())
	cmd.AddCommand(newClanShowCmd())
	cmd.AddCommand(newClanJoinCmd())
	cmd.AddCommand(newClanLeaveCmd())
	cmd.AddCommand(newClanDisbandCmd())
	cmd.AddCommand(newClanWarCmd())

	return cmd
}

func newClanCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Found a new clan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"name": args[0]}
			var result Clan

			if err := client.Post("/api/v1/clans", req, &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newClanShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "Show your clan or another one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/clans/mine"
			if len(args) == 1 {
				path = "/api/v1/clans/" + url.PathEscape(args[0])
			}

			var result Clan
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newClanJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <name>",
		Short: "Join a clan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Clan

			if err := client.Post("/api/v1/clans/"+url.PathEscape(args[0])+"/join", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newClanLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave",
		Short: "Leave your clan",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ClanLeft

			if err := client.Post("/api/v1/clans/mine/leave", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newClanDisbandCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disband",
		Short: "Disband the clan you own",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ClanLeft

			if err := client.Do(http.MethodDelete, "/api/v1/clans/mine", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.PrintMessage("Disbanded clan " + result.Clan)
			return nil
		},
	}
}

func newClanWarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "war <clan>",
		Short: "Raid another clan's treasury",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"target": args[0]}
			var result RaidResult

			if err := client.Post("/api/v1/clans/mine/war", req, &result); err != nil {
				return err
			}

			out := NewOutput(cmd.OutOrStdout(), cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
