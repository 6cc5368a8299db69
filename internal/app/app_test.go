package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paladin/internal/audit"
	"paladin/internal/client"
	"paladin/internal/config"
)

type stubClient struct {
	responses []string
	err       error
	calls     int
}

func (c *stubClient) Invoke(context.Context, string) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	if len(c.responses) == 0 {
		return "", nil
	}
	r := c.responses[0]
	c.responses = c.responses[1:]
	return r, nil
}

func (c *stubClient) Provider() string { return "ollama" }
func (c *stubClient) Model() string    { return "llama3.2" }

type stubRunner struct {
	commands []string
}

func (r *stubRunner) Run(_ context.Context, command string) string {
	r.commands = append(r.commands, command)
	return "Arch Linux\nKernel 6.1"
}

func newTestApp(t *testing.T, llm client.Client, runner *stubRunner, input io.Reader) (*App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	a, err := NewBuilder(config.StarterConfig()).
		WithClient(llm).
		WithRunner(runner).
		WithIO(input, &out).
		Build()
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a, &out
}

func TestRun_TurnThenExit(t *testing.T) {
	llm := &stubClient{responses: []string{"fastfetch", "Arch Linux, kernel 6.1."}}
	runner := &stubRunner{}
	a, out := newTestApp(t, llm, runner, strings.NewReader("\n   \nuse fastfetch\nEXIT\nuse fastfetch\n"))

	require.NoError(t, a.Run(context.Background()))

	assert.Equal(t, 2, llm.calls)
	assert.Equal(t, []string{"fastfetch"}, runner.commands)

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "\nUser> "), text)
	assert.Contains(t, text, "User> ")
	assert.Contains(t, text, "Running agent...")
	assert.Contains(t, text, "PLANNER: fastfetch")
	assert.Contains(t, text, "EXECUTOR:\nArch Linux\nKernel 6.1")
	assert.Contains(t, text, "FINAL ANSWER:\nArch Linux, kernel 6.1.")
}

func TestRun_QuitIsCaseInsensitive(t *testing.T) {
	for _, word := range []string{"quit", "QUIT", "  Quit  ", "exit", "eXiT"} {
		llm := &stubClient{}
		a, _ := newTestApp(t, llm, &stubRunner{}, strings.NewReader(word+"\nuptime\n"))
		require.NoError(t, a.Run(context.Background()), word)
		assert.Zero(t, llm.calls, word)
	}
}

func TestRun_EOFExitsCleanly(t *testing.T) {
	llm := &stubClient{responses: []string{"uptime", "up 3 days"}}
	a, _ := newTestApp(t, llm, &stubRunner{}, strings.NewReader("uptime"))

	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, 2, llm.calls)
}

func TestRun_LLMErrorPropagates(t *testing.T) {
	llm := &stubClient{err: &client.APIError{Provider: "ollama", StatusCode: 500, Message: "boom"}}
	runner := &stubRunner{}
	a, _ := newTestApp(t, llm, runner, strings.NewReader("uptime\nuptime\n"))

	err := a.Run(context.Background())
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 1, llm.calls)
	assert.Empty(t, runner.commands)
}

func TestRun_ContextCancelStopsWaitingForInput(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	a, _ := newTestApp(t, &stubClient{}, &stubRunner{}, pr)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- a.Run(ctx) }()

	cancel()
	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestBuild_ClientConstructionErrorPropagates(t *testing.T) {
	cfg := config.StarterConfig()
	cfg.Provider = config.ProviderGemini
	cfg.APIKey = ""

	_, err := NewBuilder(cfg).WithIO(strings.NewReader(""), io.Discard).Build()
	assert.ErrorIs(t, err, client.ErrMissingCredential)

	cfg.Provider = "openai"
	_, err = NewBuilder(cfg).WithIO(strings.NewReader(""), io.Discard).Build()
	assert.ErrorIs(t, err, client.ErrUnknownProvider)
}

func TestBuild_AuditFileRecordsCommands(t *testing.T) {
	cfg := config.StarterConfig()
	cfg.AllowedCommands = []string{"echo"}
	cfg.AuditFile = filepath.Join(t.TempDir(), "audit", "commands.jsonl")

	llm := &stubClient{responses: []string{"echo audited", "It printed a word."}}
	var out bytes.Buffer
	a, err := NewBuilder(cfg).
		WithClient(llm).
		WithIO(strings.NewReader("say something\nexit\n"), &out).
		Build()
	require.NoError(t, err)

	require.NoError(t, a.Run(context.Background()))
	a.Close()

	entries, err := audit.Query(cfg.AuditFile, audit.QueryFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "echo audited", entries[0].Command)
	assert.Equal(t, audit.OutcomeOK, entries[0].Outcome)
	assert.Equal(t, "audited", strings.TrimSpace(entries[0].Output))
}
