package hook

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/stratum/internal/log"
	"github.com/felixgeelhaar/stratum/internal/session"
)

func testLogger() *log.Logger {
	config := log.DefaultConfig()
	config.Level = log.LevelError
	return log.New(config)
}

func writeTaskSpec(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".stratum"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".stratum", "tasks.yaml"), []byte(content), 0o644))
}

const readySpec = `version: 1
status: ready_for_implementation
project:
  name: demo
tasks:
  - id: core
    title: Build the core
    acceptance: Core tests pass
    status: complete
  - id: api
    title: Expose the API
    acceptance: API tests pass
    deps: [core]
  - id: docs
    title: Write docs
    acceptance: Docs reviewed
    deps: [api]
`

func TestSessionStartMissingSpec(t *testing.T) {
	response := NewSessionStartHandler(t.TempDir(), testLogger()).Handle(context.Background(), &Input{})

	require.NotNil(t, response)
	assert.Equal(t, "block", response.Decision)
	assert.Contains(t, response.Reason, "No task specification found")
	assert.Contains(t, response.Reason, "version: 1")
}

func TestSessionStartInvalidSpec(t *testing.T) {
	dir := t.TempDir()
	writeTaskSpec(t, dir, "version: 1\nstatus: ready_for_implementation\ntasks:\n  - id: a\n")

	response := NewSessionStartHandler(dir, testLogger()).Handle(context.Background(), &Input{})

	require.NotNil(t, response)
	assert.Equal(t, "block", response.Decision)
	assert.Contains(t, response.Reason, "Invalid task specification")
}

func TestSessionStartSpecNotReady(t *testing.T) {
	dir := t.TempDir()
	writeTaskSpec(t, dir, `version: 1
status: draft
tasks:
  - id: a
    title: A
    acceptance: Done
`)

	response := NewSessionStartHandler(dir, testLogger()).Handle(context.Background(), &Input{})

	require.NotNil(t, response)
	assert.Equal(t, "block", response.Decision)
	assert.Contains(t, response.Reason, `"draft"`)
}

func TestSessionStartCycle(t *testing.T) {
	dir := t.TempDir()
	writeTaskSpec(t, dir, `version: 1
status: ready_for_implementation
tasks:
  - id: a
    title: A
    acceptance: Done
    deps: [b]
  - id: b
    title: B
    acceptance: Done
    deps: [a]
`)

	response := NewSessionStartHandler(dir, testLogger()).Handle(context.Background(), &Input{})

	require.NotNil(t, response)
	assert.Equal(t, "block", response.Decision)
	assert.Contains(t, response.Reason, "dependency cycle detected")
}

func TestSessionStartAllComplete(t *testing.T) {
	dir := t.TempDir()
	writeTaskSpec(t, dir, `version: 1
status: ready_for_implementation
tasks:
  - id: a
    title: A
    acceptance: Done
    status: complete
`)

	response := NewSessionStartHandler(dir, testLogger()).Handle(context.Background(), &Input{})

	require.NotNil(t, response)
	assert.Equal(t, "allow", response.Decision)
	assert.Equal(t, "All tasks complete.", response.Reason)
}

func TestSessionStartReadyTasks(t *testing.T) {
	dir := t.TempDir()
	writeTaskSpec(t, dir, readySpec)

	response := NewSessionStartHandler(dir, testLogger()).Handle(context.Background(), &Input{})

	require.NotNil(t, response)
	assert.Equal(t, "block", response.Decision)

	// api is ready (core complete); docs is blocked behind api
	assert.Contains(t, response.Reason, "### api: Expose the API")
	assert.NotContains(t, response.Reason, "### docs")
	assert.Contains(t, response.Reason, filepath.Join(".worktrees", "api"))
	assert.Contains(t, response.Reason, "**Acceptance:** API tests pass")
	assert.Contains(t, response.Reason, "**Dependencies:** core")
	assert.Contains(t, response.Reason, "## Workflow")
}

func TestSessionStartIncludesTaskSpecFile(t *testing.T) {
	dir := t.TempDir()
	writeTaskSpec(t, dir, `version: 1
status: ready_for_implementation
tasks:
  - id: a
    title: A
    acceptance: Done
    spec_file: docs/a.md
`)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "a.md"), []byte("detailed design"), 0o644))

	response := NewSessionStartHandler(dir, testLogger()).Handle(context.Background(), &Input{})

	require.NotNil(t, response)
	assert.Contains(t, response.Reason, "detailed design")
}

func TestSessionStartShowsPausedLoop(t *testing.T) {
	dir := t.TempDir()
	writeTaskSpec(t, dir, readySpec)

	state := session.NewState()
	state.LoopPaused = true
	state.CurrentLayer = 2
	state.RecordLayer(1, session.LayerPass)
	require.NoError(t, session.NewStore(dir).Save(state))

	response := NewSessionStartHandler(dir, testLogger()).Handle(context.Background(), &Input{})

	require.NotNil(t, response)
	assert.Contains(t, response.Reason, "LOOP PAUSED")
	assert.Contains(t, response.Reason, "**Current Layer:** 2 - tdd")
	assert.Contains(t, response.Reason, "Layer 1 (requirements): pass")
}
