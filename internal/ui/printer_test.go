package ui

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinter_PlainOutput(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Banner("ollama", "llama3.2", "stable")
	p.Planner("ls -la")
	p.Executor("total 0\ndrwxr-xr-x 2 root root 4096 .")
	p.FinalAnswer("The directory is **empty**.")

	want := "Provider: ollama | Model: llama3.2 | Mode: stable\n" +
		"PLANNER: ls -la\n" +
		"EXECUTOR:\n" +
		"total 0\ndrwxr-xr-x 2 root root 4096 .\n" +
		"FINAL ANSWER:\n" +
		"The directory is **empty**.\n"
	assert.Equal(t, want, buf.String())
}

func TestPrinter_PromptAndErrors(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Prompt()
	assert.Equal(t, "\nUser> ", buf.String())

	buf.Reset()
	p.Error(errors.New("planner: ollama API error 404"))
	p.Safety("[SAFETY] Maximum steps exceeded")
	p.Status("Running agent...")
	assert.Equal(t, "Error: planner: ollama API error 404\n[SAFETY] Maximum steps exceeded\nRunning agent...\n", buf.String())
}

func TestPrinter_MarkdownRendering(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, WithMarkdown(true), WithWordWrap(0))

	p.FinalAnswer("# Disk usage\n\n- `/` is 40% full")
	out := buf.String()
	assert.Contains(t, out, "FINAL ANSWER:")
	assert.Contains(t, out, "Disk")
	assert.NotContains(t, out, "- `/` is 40% full")
}
