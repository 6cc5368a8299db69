package security

import (
	"sort"
	"strings"

	"paladin/internal/config"
)

type commandSet map[string]struct{}

func newCommandSet(names ...string) commandSet {
	set := make(commandSet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

func (s commandSet) has(name string) bool {
	_, ok := s[name]
	return ok
}

func (s commandSet) sorted() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// stableAllowlist holds read-only, non-interactive base commands permitted in
// stable mode when the configuration does not supply its own list.
var stableAllowlist = newCommandSet(
	// system info
	"fastfetch", "neofetch", "uname", "uptime", "lsb_release", "hostname",
	// memory / cpu
	"free", "vmstat", "mpstat", "lscpu", "lsmem",
	// disk
	"df", "lsblk", "mount", "findmnt",
	// processes
	"ps",
	// networking
	"ip", "ss", "iw",
	// files
	"ls", "stat", "du", "tree", "cat", "head", "tail", "wc",
)

// interactiveCommands need a controlling terminal and are denied in every mode.
var interactiveCommands = newCommandSet(
	"vim", "vi", "nvim", "nano", "emacs",
	"top", "htop", "btop", "nvtop",
	"less", "more", "man",
	"ssh", "ftp", "telnet",
	"tmux", "screen",
	"watch",
)

// StableAllowlist returns the built-in stable allowlist, sorted.
func StableAllowlist() []string {
	return stableAllowlist.sorted()
}

// InteractiveCommands returns the interactive denylist, sorted.
func InteractiveCommands() []string {
	return interactiveCommands.sorted()
}

// IsInteractive reports whether base names a command that needs a terminal.
func IsInteractive(base string) bool {
	return interactiveCommands.has(base)
}

// BaseCommand returns the first whitespace-delimited token of command,
// or "" when there is none.
func BaseCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Policy decides whether a model-produced command may run.
//
// Only the base command is inspected. Pipelines, substitutions and
// redirections are judged by their first token alone unless Strict is set.
type Policy struct {
	Mode      string
	allowlist commandSet
	strict    bool
}

// NewPolicy builds the policy for cfg. A non-empty allowed_commands list
// replaces the built-in stable allowlist.
func NewPolicy(cfg *config.Config) *Policy {
	p := &Policy{
		Mode:      cfg.Mode,
		allowlist: stableAllowlist,
		strict:    cfg.StrictCommands,
	}
	if len(cfg.AllowedCommands) > 0 {
		p.allowlist = newCommandSet(cfg.AllowedCommands...)
	}
	return p
}

// Allowed reports whether command is permitted.
func (p *Policy) Allowed(command string) bool {
	return p.Check(command).Valid
}

// Check is Allowed with a reason attached.
func (p *Policy) Check(command string) ValidationResult {
	base := BaseCommand(command)
	if base == "" {
		return ValidationResult{Valid: false, Reason: "empty command"}
	}

	if p.strict {
		if result := ValidateComposition(command); !result.Valid {
			return result
		}
	}

	// Interactive commands are denied in every mode, even when a user
	// allowlist names them.
	if interactiveCommands.has(base) {
		return ValidationResult{Valid: false, Reason: "interactive command", Pattern: base}
	}

	if p.Mode == config.ModeExperimental {
		return ValidationResult{Valid: true, Reason: "not interactive"}
	}

	// Unknown modes fall through to stable
	if p.allowlist.has(base) {
		return ValidationResult{Valid: true, Reason: "allowlisted", Pattern: base}
	}
	return ValidationResult{Valid: false, Reason: "not in allowlist", Pattern: base}
}
