package security

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"paladin/internal/config"
)

func stable(names ...string) *config.Config {
	return &config.Config{Mode: config.ModeStable, AllowedCommands: names}
}

func allowed(command string, cfg *config.Config) bool {
	return NewPolicy(cfg).Allowed(command)
}

func experimental() *config.Config {
	return &config.Config{Mode: config.ModeExperimental}
}

func TestPolicy_Stable_BuiltIn(t *testing.T) {
	cfg := stable()
	for _, cmd := range []string{"fastfetch", "ls -la", "  df -h", "cat /etc/os-release", "uname -a"} {
		assert.True(t, allowed(cmd, cfg), cmd)
	}
	for _, cmd := range []string{"rm -rf /tmp/x", "vim config.toml", "LS", "curl example.com", "sudo ls"} {
		assert.False(t, allowed(cmd, cfg), cmd)
	}
}

func TestPolicy_EmptyDenied(t *testing.T) {
	for _, cfg := range []*config.Config{stable(), stable("ls"), experimental()} {
		assert.False(t, allowed("", cfg))
		assert.False(t, allowed(" \t\n", cfg))
	}
}

func TestPolicy_Stable_UserAllowlistReplacesBuiltIn(t *testing.T) {
	cfg := stable("git", "ls")
	assert.True(t, allowed("git status", cfg))
	assert.True(t, allowed("ls", cfg))
	assert.False(t, allowed("df -h", cfg), "built-in list no longer applies")
}

func TestPolicy_Experimental(t *testing.T) {
	cfg := experimental()
	assert.True(t, allowed("sleep 60", cfg))
	assert.True(t, allowed("rm -rf build", cfg))
	for _, name := range InteractiveCommands() {
		assert.False(t, allowed(name+" arg", cfg), name)
	}
}

func TestPolicy_UnknownModeIsStable(t *testing.T) {
	cfg := &config.Config{Mode: "Experimental"}
	assert.False(t, allowed("sleep 1", cfg))
	assert.True(t, allowed("ls", cfg))
}

func TestPolicy_FirstTokenOnly(t *testing.T) {
	// Known limitation: composition is judged by the base command alone.
	assert.True(t, allowed("ls; rm -rf ~/tmp", stable()))
	assert.True(t, allowed("cat file | sh", stable()))
}

func TestPolicy_Strict(t *testing.T) {
	cfg := stable()
	cfg.StrictCommands = true
	assert.True(t, allowed("ls -la /tmp", cfg))
	for _, cmd := range []string{"ls; rm x", "ls && rm x", "ls || rm x", "cat f | sh", "ls `pwd`", "ls $(pwd)", "ls\nrm x"} {
		assert.False(t, allowed(cmd, cfg), cmd)
	}

	exp := experimental()
	exp.StrictCommands = true
	assert.False(t, allowed("echo hi && vim", exp))
	assert.True(t, allowed("echo hi", exp))
}

func TestPolicy_AllowlistMonotonic(t *testing.T) {
	commands := []string{"ls", "df -h", "git log", "make", "vim x", "ps aux"}
	lists := [][]string{{"ls"}, {"ls", "git"}, {"ls", "git", "make"}, {"ls", "git", "make", "vim"}}

	var prev map[string]bool
	for _, list := range lists {
		cfg := stable(list...)
		cur := map[string]bool{}
		for _, cmd := range commands {
			cur[cmd] = allowed(cmd, cfg)
		}
		for cmd, ok := range prev {
			if ok {
				assert.True(t, cur[cmd], "adding to %v revoked %q", list, cmd)
			}
		}
		prev = cur
	}
}

func TestPolicy_ExperimentalDenialImpliesStableDenial(t *testing.T) {
	candidates := append(InteractiveCommands(), StableAllowlist()...)
	candidates = append(candidates, "sleep", "rm", "curl")

	for _, base := range candidates {
		cmd := base + " --flag"
		if !allowed(cmd, experimental()) {
			assert.False(t, allowed(cmd, stable()), base)
		}
	}
}

func TestPolicy_UserAllowlistCannotAdmitInteractive(t *testing.T) {
	cfg := stable("vim", "ls", "top")
	assert.True(t, allowed("ls -la", cfg))
	for _, cmd := range []string{"vim notes.txt", "top"} {
		assert.False(t, allowed(cmd, cfg), cmd)
		assert.False(t, allowed(cmd, experimental()), cmd)
	}

	result := NewPolicy(cfg).Check("vim notes.txt")
	assert.Equal(t, "interactive command", result.Reason)
}

func TestPolicy_ExperimentalDenialImpliesStableDenial_UserAllowlist(t *testing.T) {
	// A user list naming every interactive command plus some ordinary ones.
	names := append(InteractiveCommands(), "git", "make", "sleep")
	userList := stable(names...)

	for _, base := range names {
		cmd := base + " --flag"
		if !allowed(cmd, experimental()) {
			assert.False(t, allowed(cmd, userList), base)
		}
	}
}

func TestTablesDisjoint(t *testing.T) {
	for _, name := range StableAllowlist() {
		assert.False(t, IsInteractive(name), name)
	}
	assert.Len(t, StableAllowlist(), 27)
	assert.Len(t, InteractiveCommands(), 18)
}

func TestPolicy_CheckReason(t *testing.T) {
	result := NewPolicy(stable()).Check("vim notes.txt")
	assert.False(t, result.Valid)
	assert.Equal(t, "vim", result.Pattern)
}

func TestBaseCommand(t *testing.T) {
	assert.Equal(t, "ls", BaseCommand("  ls -la  "))
	assert.Equal(t, "", BaseCommand("   "))
	assert.Equal(t, "echo", BaseCommand("echo\thi"))
}
