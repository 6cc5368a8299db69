package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"paladin/internal/agent"
	"paladin/internal/audit"
	"paladin/internal/client"
	"paladin/internal/config"
	"paladin/internal/executor"
	"paladin/internal/ratelimit"
	"paladin/internal/server"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		addr  string
		limit ratelimit.Config
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the assistant over HTTP",
		Long: `Serve GET /health and POST /chat. A chat request runs one full turn
and returns the summary, the command and the raw command output.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if err := setupLogging(cfg); err != nil {
				return err
			}

			llm, err := client.NewClient(cfg, nil)
			if err != nil {
				return err
			}
			shell := executor.New(cfg)
			if cfg.AuditFile != "" {
				auditLog, err := audit.Open(cfg.AuditFile)
				if err != nil {
					return err
				}
				defer auditLog.Close()
				shell.SetAuditLog(auditLog)
			}
			pipeline := agent.NewPipeline(llm, shell, nil, cfg.StepLimit())

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Printf("Paladin server (%s/%s, %s mode) listening on %s\n", cfg.Provider, cfg.Model, cfg.Mode, addr)
			srv := server.New(pipeline, server.WithLimiter(ratelimit.NewLimiter(limit)))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().IntVar(&limit.RequestsPerMinute, "rate", 0, "max chat requests per minute (0 = unlimited)")
	cmd.Flags().IntVar(&limit.Burst, "burst", 1, "chat requests admitted at once before --rate applies")
	return cmd
}
