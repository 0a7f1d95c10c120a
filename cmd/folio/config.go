package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/folio/internal/api"
	"github.com/jackzampolin/folio/internal/config"
	"github.com/jackzampolin/folio/internal/home"
	"github.com/jackzampolin/folio/internal/svcctx"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage folio configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	Long: `Write the default configuration to --config, or to ~/.folio/config.yaml.
An existing file is only replaced with --force.`,
	Args: cobra.NoArgs,
	// Runs without loading config, so a broken file can be replaced.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return setupOutput() },
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			h, err := home.New(homeDir)
			if err != nil {
				return err
			}
			if err := h.EnsureExists(); err != nil {
				return err
			}
			path = h.ConfigPath()
		}

		if _, err := os.Stat(path); err == nil && !configForce {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
		}
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		return api.Output(map[string]string{"written": path})
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return api.Output(svcctx.ConfigFrom(cmd.Context()).Get())
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List config keys with their defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return api.Output(config.DefaultEntries())
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> [value...]",
	Short: "Set a config value and save the config file",
	Long: `Set a config value and save the config file.

List keys (heading_patterns) take every remaining argument as an element;
pass no values to reset to the built-in patterns.

Examples:
  folio config set segmentation.min_chapters 3
  folio config set heading_patterns '^part\s+(\d+)\s*(.*)$'`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		mgr := svcctx.ConfigFrom(ctx)

		path := mgr.Path()
		if path == "" {
			h := svcctx.HomeFrom(ctx)
			if err := h.EnsureExists(); err != nil {
				return err
			}
			path = h.ConfigPath()
		}

		if err := mgr.Set(path, args[0], args[1:]); err != nil {
			return err
		}
		return api.Output(map[string]any{"key": args[0], "file": path})
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing config file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configKeysCmd)
	configCmd.AddCommand(configSetCmd)
}
