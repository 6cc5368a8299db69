// Package executor runs approved shell commands under a wall-clock timeout.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"paladin/internal/audit"
	"paladin/internal/config"
	"paladin/internal/logging"
	"paladin/internal/security"
)

// Messages surfaced in place of command output. The executor never returns
// an error; every outcome is one of these or the captured streams.
const (
	NoOutputMessage = "[INFO] Command executed with no output"
	TimeoutMessage  = "[ERROR] Command timed out"
	stderrHeader    = "[STDERR]"
)

// killGrace bounds how long Wait may block on inherited pipes after the
// process group has been killed.
const killGrace = 2 * time.Second

// Executor runs commands through the policy gate and a POSIX shell.
type Executor struct {
	policy  *security.Policy
	mode    string
	shell   string
	timeout time.Duration
	workDir string
	audit   *audit.Logger
}

// New creates an executor bound to cfg. The policy tables are resolved once.
func New(cfg *config.Config) *Executor {
	return &Executor{
		policy:  security.NewPolicy(cfg),
		mode:    cfg.Mode,
		shell:   cfg.ShellPath(),
		timeout: cfg.Timeout(),
	}
}

// SetWorkDir sets the directory commands run in. Empty means the current
// process directory.
func (e *Executor) SetWorkDir(dir string) {
	e.workDir = dir
}

// SetAuditLog records every attempt to l. Nil disables auditing.
func (e *Executor) SetAuditLog(l *audit.Logger) {
	e.audit = l
}

// DeniedMessage is the output for a command the gate rejects.
func DeniedMessage(mode string) string {
	return fmt.Sprintf("[DENIED] Command not allowed in %s mode", mode)
}

// FailedMessage is the output for a command that could not be spawned.
func FailedMessage(reason error) string {
	return fmt.Sprintf("[ERROR] Execution failed: %v", reason)
}

// Run checks command against the policy, runs it as `<shell> -c command`
// and returns the composed output. The result is never empty.
func (e *Executor) Run(ctx context.Context, command string) string {
	entry := audit.NewEntry(command, e.mode)
	start := time.Now()

	output, outcome := e.run(ctx, command, entry)

	entry.Complete(outcome, output, time.Since(start))
	if err := e.audit.Log(entry); err != nil {
		logging.Warn("audit write failed", "error", err)
	}
	return output
}

func (e *Executor) run(ctx context.Context, command string, entry *audit.Entry) (string, audit.Outcome) {
	if result := e.policy.Check(command); !result.Valid {
		logging.Info("command denied",
			"command", command,
			"mode", e.mode,
			"reason", result.Reason)
		entry.Reason = result.Reason
		return DeniedMessage(e.mode), audit.OutcomeDenied
	}

	execCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(execCtx, e.shell, "-c", command)
	cmd.Dir = e.workDir
	cmd.Env = buildSafeEnv()
	setProcessGroup(cmd)
	cmd.Cancel = func() error { return killProcessGroup(cmd) }
	cmd.WaitDelay = killGrace

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Start(); err != nil {
		logging.Warn("command spawn failed", "command", command, "error", err)
		entry.Reason = err.Error()
		return FailedMessage(err), audit.OutcomeFailed
	}

	err := cmd.Wait()
	logging.Debug("command finished",
		"command", command,
		"duration", time.Since(start),
		"error", err)

	if errors.Is(execCtx.Err(), context.DeadlineExceeded) {
		logging.Warn("command timed out", "command", command, "timeout", e.timeout)
		return TimeoutMessage, audit.OutcomeTimeout
	}
	if err != nil && ctx.Err() != nil {
		entry.Reason = ctx.Err().Error()
		return FailedMessage(ctx.Err()), audit.OutcomeFailed
	}

	// Exit status is not inspected; stderr content is the failure signal.
	if err != nil {
		entry.Reason = err.Error()
	}
	return composeOutput(stdout.String(), stderr.String()), audit.OutcomeOK
}

func composeOutput(stdout, stderr string) string {
	stdout = strings.TrimSpace(stdout)
	stderr = strings.TrimSpace(stderr)

	switch {
	case stdout != "" && stderr != "":
		return stdout + "\n\n" + stderrHeader + "\n" + stderr
	case stdout != "":
		return stdout
	case stderr != "":
		return stderrHeader + "\n" + stderr
	default:
		return NoOutputMessage
	}
}
