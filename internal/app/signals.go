package app

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"paladin/internal/logging"
)

// ForcedShutdownTimeout is how long an interrupted turn may take to unwind
// before the process exits anyway.
const ForcedShutdownTimeout = 5 * time.Second

// setupSignalHandler cancels the running turn on SIGINT or SIGTERM. The
// context cancellation kills any command still running. Returns a cleanup
// function that should be called when the app exits.
func (a *App) setupSignalHandler() func() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})

	go func() {
		select {
		case sig := <-sigChan:
			logging.Debug("received signal", "signal", sig)

			time.AfterFunc(ForcedShutdownTimeout, func() {
				logging.Warn("forced shutdown due to timeout")
				os.Exit(130)
			})

			close(a.interrupted)
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigChan)
		close(done)
	}
}
