package agent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractThink(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		thought string
		residue string
	}{
		{"no span", "  ls -la \n", "", "ls -la"},
		{"empty input", "", "", ""},
		{"leading span", "<think>wants files</think>\nls -la", "wants files", "ls -la"},
		{"multiline payload", "<think>\nline one\nline two\n</think> df -h", "line one\nline two", "df -h"},
		{"span after command", "uptime <think>why</think>", "why", "uptime"},
		{"first span wins, all removed", "<think>a</think>x<think>b</think>y", "a", "xy"},
		{"empty span", "<think></think>free -h", "", "free -h"},
		{"case sensitive", "<THINK>a</THINK>ls", "", "<THINK>a</THINK>ls"},
		{"unterminated", "<think>oops ls", "", "<think>oops ls"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			thought, residue := ExtractThink(tt.input)
			assert.Equal(t, tt.thought, thought)
			assert.Equal(t, tt.residue, residue)
		})
	}
}

func TestExtractThink_Idempotent(t *testing.T) {
	inputs := []string{
		"ls",
		"  cat /etc/os-release  ",
		"<think>x</think> uname -a",
		"<think>a\nb</think>\n\n<think>c</think>lsblk\n",
	}
	for _, in := range inputs {
		_, residue := ExtractThink(in)
		thought, again := ExtractThink(residue)
		assert.Equal(t, "", thought, in)
		assert.Equal(t, residue, again, in)
	}
}

func TestExtractThink_SingleSpanDeletion(t *testing.T) {
	prefixes := []string{"", "  ", "cmd "}
	payloads := []string{"plan", " spaced ", "multi\nline"}
	suffixes := []string{"", " ls -la", "\nps aux\n"}

	for _, pre := range prefixes {
		for _, x := range payloads {
			for _, suf := range suffixes {
				in := pre + "<think>" + x + "</think>" + suf
				thought, residue := ExtractThink(in)
				assert.Equal(t, strings.TrimSpace(x), thought, in)
				assert.Equal(t, strings.TrimSpace(pre+suf), residue, in)
			}
		}
	}
}
