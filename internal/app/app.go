// Package app runs the interactive read-eval-print loop.
package app

import (
	"bufio"
	"context"
	"io"
	"strings"

	"paladin/internal/agent"
	"paladin/internal/audit"
	"paladin/internal/client"
	"paladin/internal/config"
	"paladin/internal/logging"
	"paladin/internal/ui"
)

// maxLineBytes bounds a single line of user input.
const maxLineBytes = 1 << 20

// App is the interactive shell assistant. Turns run strictly one after
// another.
type App struct {
	cfg      *config.Config
	client   client.Client
	pipeline *agent.Pipeline
	printer  *ui.Printer
	in       io.Reader
	auditLog *audit.Logger

	// interrupted is closed by the signal handler.
	interrupted   chan struct{}
	signalCleanup func()
}

// Run serves turns until exit, quit or EOF. An error
// from the planner or presenter ends the loop and is returned.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.interrupted != nil {
		go func() {
			select {
			case <-a.interrupted:
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	lines, readErr := a.readLines(ctx)
	for {
		a.printer.Prompt()

		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				// EOF ends the session like "exit" does.
				if err := <-readErr; err != nil {
					return err
				}
				return nil
			}
			line = l
		}

		input := strings.TrimSpace(line)
		if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
			logging.Debug("repl exit requested")
			return nil
		}
		if input == "" {
			continue
		}

		a.printer.Status("Running agent...")
		if _, err := a.pipeline.Run(ctx, input); err != nil {
			return err
		}
	}
}

// readLines scans input on its own goroutine so an interrupt is noticed
// while the loop is waiting for the user.
func (a *App) readLines(ctx context.Context) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(a.in)
		scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- nil
				return
			}
		}
		errc <- scanner.Err()
	}()

	return lines, errc
}
