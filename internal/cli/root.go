package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "candyctl",
		Short: "CLI tool for the candy ledger API",
		Long: `candyctl is a CLI tool for interacting with the candy ledger JSON API.

Every command runs as the player named by --actor, the way the chat
transport would forward it. Admin commands additionally need --privileged.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load token from file if not provided via flag/env
			if err := cfg.LoadToken(); err != nil {
				return err
			}

			// Create HTTP client
			client = NewClient(cfg.ServerURL, cfg.Token, Identity{
				Actor:      cfg.Actor,
				Chat:       cfg.Chat,
				Privileged: cfg.Privileged,
			})
			if cfg.Verbose {
				client.SetTrace(cmd.ErrOrStderr())
			}
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: CANDY_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Token, "token", cfg.Token, "API token (env: CANDY_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "Token file path (env: CANDY_TOKEN_FILE)")
	rootCmd.PersistentFlags().StringVar(&cfg.Actor, "actor", cfg.Actor, "Player ID to act as (env: CANDY_ACTOR)")
	rootCmd.PersistentFlags().StringVar(&cfg.Chat, "chat", cfg.Chat, "Chat ID the command comes from (env: CANDY_CHAT)")
	rootCmd.PersistentFlags().BoolVar(&cfg.Privileged, "privileged", cfg.Privileged, "Act as a privileged admin")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newTokenCmd())
	rootCmd.AddCommand(newDailyCmd())
	rootCmd.AddCommand(newBalanceCmd())
	rootCmd.AddCommand(newGiveCmd())
	rootCmd.AddCommand(newProfileCmd())
	rootCmd.AddCommand(newLeaderboardCmd())
	rootCmd.AddCommand(newChallengesCmd())
	rootCmd.AddCommand(newPromoCmd())
	rootCmd.AddCommand(newShopCmd())
	rootCmd.AddCommand(newInventoryCmd())
	rootCmd.AddCommand(newStealCmd())
	rootCmd.AddCommand(newDuelCmd())
	rootCmd.AddCommand(newClanCmd())
	rootCmd.AddCommand(newAdminCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
