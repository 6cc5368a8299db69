package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"paladin/internal/app"
	"paladin/internal/config"
	"paladin/internal/logging"
	"paladin/internal/ui"

	"github.com/spf13/cobra"
)

var (
	version  = "0.1.0"
	cfgFile  string
	logLevel string
)

func main() {
	err := newRootCmd().Execute()
	logging.Close()
	if err != nil {
		reportError(os.Stderr, err)
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		os.Exit(1)
	}
}

// reportError prints err unless it only says the user interrupted.
func reportError(w io.Writer, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	ui.NewPrinter(w).Error(err)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "paladin",
		Short: "Natural-language shell assistant",
		Long: `Paladin turns a request into one shell command, runs it under a
command policy and a timeout, and summarizes the result.

Providers: ollama (local) and gemini (remote, requires an API key).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runREPL,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file (TOML, or YAML by extension)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log to stderr at this level (debug, info, warn, error)")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newAuditCmd())
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("paladin version %s\n", version)
		},
	})

	return rootCmd
}

func runREPL(cmd *cobra.Command, args []string) error {
	printer := ui.NewPrinter(cmd.OutOrStdout())
	printer.Status("Loading config...")

	cfg, err := config.Load(cfgFile)
	if err != nil {
		// A missing or broken config is not a failure of the tool itself.
		fmt.Fprintf(cmd.ErrOrStderr(), "Error loading config: %v\n", err)
		return nil
	}
	printer.Banner(cfg.Provider, cfg.Model, cfg.Mode)

	if err := setupLogging(cfg); err != nil {
		return err
	}

	application, err := app.NewBuilder(cfg).
		WithIO(cmd.InOrStdin(), cmd.OutOrStdout()).
		WithSignalHandling().
		Build()
	if err != nil {
		return err
	}
	defer application.Close()

	return application.Run(cmd.Context())
}

// setupLogging sends records to stderr when --log-level is given and to
// log_file when configured. Otherwise logs are discarded.
func setupLogging(cfg *config.Config) error {
	opts := logging.Options{
		Level:    logging.ParseLevel(cfg.LogLevel),
		FilePath: cfg.LogFile,
	}
	if logLevel != "" {
		opts.Level = logging.ParseLevel(logLevel)
		opts.Console = os.Stderr
	}
	if err := logging.Configure(opts); err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	return nil
}
