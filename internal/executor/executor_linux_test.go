package executor

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paladin/internal/config"
)

// processGone reports whether pid has exited. Zombies count as gone: once
// killed, a reparented child may wait for init to reap it.
func processGone(pid int) bool {
	data, err := os.ReadFile(filepath.Join("/proc", strconv.Itoa(pid), "stat"))
	if err != nil {
		return true
	}
	// Format: pid (comm) state ...
	stat := string(data)
	idx := strings.LastIndexByte(stat, ')')
	if idx < 0 || idx+2 >= len(stat) {
		return true
	}
	return stat[idx+2] == 'Z'
}

func TestRun_TimeoutKillsProcessGroup(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "pids")
	e := New(testConfig(config.ModeExperimental, 1))

	out := e.Run(context.Background(), "sleep 60 & echo $! > "+pidFile+"; echo $$ >> "+pidFile+"; wait")
	require.Equal(t, TimeoutMessage, out)

	data, err := os.ReadFile(pidFile)
	require.NoError(t, err)
	fields := strings.Fields(string(data))
	require.Len(t, fields, 2)

	for _, field := range fields {
		pid, err := strconv.Atoi(field)
		require.NoError(t, err)
		assert.Eventually(t, func() bool { return processGone(pid) }, 2*time.Second, 20*time.Millisecond,
			"pid %d still running", pid)
	}
}
