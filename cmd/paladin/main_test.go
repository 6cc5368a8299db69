package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paladin/internal/client"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func execRoot(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(""))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestReportError(t *testing.T) {
	var buf bytes.Buffer
	reportError(&buf, fmt.Errorf("turn: %w", context.Canceled))
	assert.Empty(t, buf.String())

	reportError(&buf, errors.New("planner: ollama API error 500"))
	assert.Equal(t, "Error: planner: ollama API error 500\n", buf.String())
}

func TestRoot_BannerPrecedesClientConstruction(t *testing.T) {
	path := writeConfig(t, `provider = "openai"
model = "gpt"
temperature = 0.1
timeout_seconds = 5
mode = "stable"`)

	stdout, _, err := execRoot(t, "--config", path)
	assert.ErrorIs(t, err, client.ErrUnknownProvider)
	assert.Contains(t, stdout, "Loading config...\nProvider: openai | Model: gpt | Mode: stable\n")
}

func TestRoot_ConfigLoadErrorExitsCleanly(t *testing.T) {
	path := writeConfig(t, `model = "llama3"
timeout_seconds = 5
mode = "stable"`)

	stdout, stderr, err := execRoot(t, "--config", path)
	require.NoError(t, err)
	assert.NotContains(t, stdout, "Provider:")
	assert.Contains(t, stderr, "Error loading config")
	assert.Contains(t, stderr, "provider, temperature")
}

func TestRoot_EOFEndsSession(t *testing.T) {
	path := writeConfig(t, `provider = "ollama"
model = "llama3.2"
temperature = 0.1
timeout_seconds = 5
mode = "stable"`)

	stdout, _, err := execRoot(t, "--config", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Provider: ollama | Model: llama3.2 | Mode: stable\n")
	assert.Contains(t, stdout, "User> ")
}
