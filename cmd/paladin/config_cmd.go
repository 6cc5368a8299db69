package main

import (
	"fmt"
	"os"

	"paladin/internal/config"
	"paladin/internal/security"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	configCmd.AddCommand(newConfigInitCmd())
	configCmd.AddCommand(newConfigCheckCmd())
	return configCmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration for a local Ollama model",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(cfgFile); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", cfgFile)
			}
			if err := config.StarterConfig().Save(cfgFile); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", cfgFile)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func newConfigCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load and validate the configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			fmt.Printf("Provider: %s | Model: %s | Mode: %s\n", cfg.Provider, cfg.Model, cfg.Mode)
			if cfg.Provider == config.ProviderGemini {
				fmt.Printf("API key: %s\n", security.MaskKey(cfg.APIKey))
			}
			return nil
		},
	}
}
