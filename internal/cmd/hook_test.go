package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/stratum/internal/hook"
	"github.com/felixgeelhaar/stratum/internal/log"
)

func TestRunHookWritesDecision(t *testing.T) {
	// A project without a task specification blocks session start
	dir := t.TempDir()

	c := newTestCommand()
	c.SetIn(strings.NewReader(`{"session_id":"s1"}`))
	var out bytes.Buffer
	c.SetOut(&out)

	handler := hook.NewSessionStartHandler(dir, log.Default())
	require.NoError(t, runHook(c, handler))

	assert.Contains(t, out.String(), `"decision":"block"`)
	assert.Contains(t, out.String(), "No task specification found")
}

func TestRunHookSilentDecision(t *testing.T) {
	c := newTestCommand()
	c.SetIn(strings.NewReader(`{"stop_hook_active":true}`))
	var out bytes.Buffer
	c.SetOut(&out)

	handler := hook.NewVerifyHandler(t.TempDir(), log.Default())
	require.NoError(t, runHook(c, handler))

	assert.Zero(t, out.Len())
}

func TestRunHookToleratesGarbageInput(t *testing.T) {
	c := newTestCommand()
	c.SetIn(strings.NewReader("definitely not json"))
	var out bytes.Buffer
	c.SetOut(&out)

	handler := hook.NewGateCheckHandler(t.TempDir(), log.Default())
	require.NoError(t, runHook(c, handler))

	assert.Contains(t, out.String(), `"continue":true`)
}
