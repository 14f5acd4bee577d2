package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/stratum/internal/gate"
)

// newTestCommand returns a command with a context already attached,
// as ExecuteContext would have done.
func newTestCommand() *cobra.Command {
	c := &cobra.Command{}
	c.SetContext(context.Background())
	return c
}

func writeProjectFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestBuildStatusReportEmptyProject(t *testing.T) {
	dir := t.TempDir()

	report, err := buildStatusReport(newTestCommand(), dir)
	require.NoError(t, err)

	assert.Nil(t, report.Tasks)
	assert.Nil(t, report.Gates)
	require.Len(t, report.Issues, 1)
	assert.Contains(t, report.Issues[0], "no task specification")
}

func TestBuildStatusReportFullProject(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, filepath.Join(".stratum", "tasks.yaml"), `version: 1
status: ready_for_implementation
project:
  name: demo
tasks:
  - id: core
    title: Core
    acceptance: Done
    status: complete
  - id: api
    title: API
    acceptance: Done
    deps: [core]
`)
	require.NoError(t, gate.WriteReport(&gate.Report{
		Meta: gate.Meta{GitHash: "abc1234def", Timestamp: "2026-08-29T00:00:00Z"},
		Layers: map[string]gate.LayerResult{
			"requirements": {Status: gate.StatusPass},
			"tdd":          {Status: gate.StatusFail, Message: "no tests"},
		},
	}, gate.ReportPath(dir)))

	report, err := buildStatusReport(newTestCommand(), dir)
	require.NoError(t, err)

	assert.Equal(t, "demo", report.Project.Name)
	assert.Equal(t, "tasks.yaml", report.Project.SpecFile)

	require.NotNil(t, report.Tasks)
	assert.Equal(t, 2, report.Tasks.Total)
	assert.Equal(t, 1, report.Tasks.Complete)
	assert.Equal(t, []string{"core", "api"}, report.Tasks.Order)
	assert.Equal(t, []string{"api"}, report.Tasks.Ready)

	require.NotNil(t, report.Gates)
	require.Len(t, report.Gates.Layers, 4)
	assert.Equal(t, "PASS", report.Gates.Layers[0].Status)
	assert.Equal(t, "FAIL", report.Gates.Layers[1].Status)
	assert.Equal(t, "NOT_RUN", report.Gates.Layers[2].Status)
	// temp dir is not a repository: no live hash, so never stale
	assert.False(t, report.Gates.Stale)
}

func TestBuildStatusReportCycleReported(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, filepath.Join(".stratum", "tasks.yaml"), `version: 1
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

	report, err := buildStatusReport(newTestCommand(), dir)
	require.NoError(t, err)

	assert.Nil(t, report.Tasks)
	require.NotEmpty(t, report.Issues)
	assert.Contains(t, report.Issues[0], "dependency cycle detected")
}

func TestRenderStatusText(t *testing.T) {
	report := &StatusReport{
		Project: ProjectStatus{Directory: "/work/demo", Name: "demo", SpecFile: "tasks.yaml", SpecStatus: "ready_for_implementation"},
		Tasks: &TaskSummary{
			Total: 2, Complete: 1, Pending: 1,
			Order: []string{"core", "api"},
			Ready: []string{"api"},
		},
		Gates: &GateSummary{
			Layers: []LayerStatus{
				{Layer: 1, Name: "requirements", Status: "PASS"},
				{Layer: 2, Name: "tdd", Status: "FAIL"},
			},
			Stale:       true,
			ReportHash:  "abc1234",
			CurrentHash: "def5678",
		},
	}

	text := renderStatusText(report)
	assert.Contains(t, text, "Stratum Status")
	assert.Contains(t, text, "core -> api")
	assert.Contains(t, text, "Ready:")
	assert.Contains(t, text, "Layer 2 (tdd)")
	assert.Contains(t, text, "stale")
}
