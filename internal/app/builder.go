package app

import (
	"fmt"
	"io"
	"os"

	"paladin/internal/agent"
	"paladin/internal/audit"
	"paladin/internal/client"
	"paladin/internal/config"
	"paladin/internal/executor"
	"paladin/internal/logging"
	"paladin/internal/ui"
)

// Builder assembles an App from its parts. Unset parts are derived from
// the configuration.
type Builder struct {
	cfg     *config.Config
	client  client.Client
	runner  agent.CommandRunner
	in      io.Reader
	out     io.Writer
	signals bool
}

// NewBuilder starts a builder for cfg reading stdin and writing stdout.
func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{
		cfg: cfg,
		in:  os.Stdin,
		out: os.Stdout,
	}
}

// WithClient uses c instead of constructing a client from the config.
func (b *Builder) WithClient(c client.Client) *Builder {
	b.client = c
	return b
}

// WithRunner replaces the shell executor.
func (b *Builder) WithRunner(r agent.CommandRunner) *Builder {
	b.runner = r
	return b
}

// WithIO sets the input and output streams.
func (b *Builder) WithIO(in io.Reader, out io.Writer) *Builder {
	b.in = in
	b.out = out
	return b
}

// WithSignalHandling makes Run cancel the current turn on SIGINT/SIGTERM.
func (b *Builder) WithSignalHandling() *Builder {
	b.signals = true
	return b
}

// Build constructs the App. Client construction errors are returned
// unchanged so callers can match them with errors.Is.
func (b *Builder) Build() (*App, error) {
	if b.cfg == nil {
		return nil, fmt.Errorf("app: configuration is required")
	}

	llm := b.client
	if llm == nil {
		var err error
		llm, err = client.NewClient(b.cfg, nil)
		if err != nil {
			return nil, err
		}
	}

	var auditLog *audit.Logger
	runner := b.runner
	if runner == nil {
		shell := executor.New(b.cfg)
		if b.cfg.AuditFile != "" {
			var err error
			auditLog, err = audit.Open(b.cfg.AuditFile)
			if err != nil {
				return nil, err
			}
			shell.SetAuditLog(auditLog)
		}
		runner = shell
	}

	printer := ui.NewPrinter(b.out)
	a := &App{
		cfg:      b.cfg,
		client:   llm,
		pipeline: agent.NewPipeline(llm, runner, printer, b.cfg.StepLimit()),
		printer:  printer,
		in:       b.in,
		auditLog: auditLog,
	}
	if b.signals {
		a.interrupted = make(chan struct{})
		a.signalCleanup = a.setupSignalHandler()
	}

	logging.Debug("app built",
		"provider", llm.Provider(),
		"model", llm.Model(),
		"mode", b.cfg.Mode)
	return a, nil
}

// Close releases the signal handler and the audit log.
func (a *App) Close() {
	if a.signalCleanup != nil {
		a.signalCleanup()
		a.signalCleanup = nil
	}
	if a.auditLog != nil {
		if err := a.auditLog.Close(); err != nil {
			logging.Warn("failed to close audit log", "error", err)
		}
		a.auditLog = nil
	}
}
