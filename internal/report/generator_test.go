package report

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/stratum/internal/gate"
	"github.com/felixgeelhaar/stratum/internal/log"
)

func requireMake(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("make"); err != nil {
		t.Skip("make not available in test environment")
	}
}

func testLogger() *log.Logger {
	config := log.DefaultConfig()
	config.Output = os.Stderr
	config.Level = log.LevelError
	return log.New(config)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(filepath.Join(dir, name)), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestGenerateWithoutMakefile(t *testing.T) {
	dir := t.TempDir()

	report, err := NewGenerator(dir, testLogger()).Generate(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Layers, 4)
	for name, layer := range report.Layers {
		assert.Equal(t, gate.StatusNotRun, layer.Status, "layer %s", name)
	}
	assert.False(t, AnyFailed(report))

	written, err := gate.ReadReport(gate.ReportPath(dir))
	require.NoError(t, err)
	require.NotNil(t, written)
	assert.Equal(t, GeneratorVersion, written.Meta.GeneratorVersion)
	assert.NotEmpty(t, written.Meta.ReportID)
}

func TestGenerateMixedOutcomes(t *testing.T) {
	requireMake(t)
	dir := t.TempDir()
	writeFile(t, dir, "Makefile", ""+
		"validate-requirements:\n\t@echo ok\n"+
		"validate-tdd:\n\t@echo missing tests >&2\n\t@exit 1\n")

	report, err := NewGenerator(dir, testLogger()).Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, gate.StatusPass, report.Layers["requirements"].Status)
	assert.Equal(t, gate.StatusFail, report.Layers["tdd"].Status)
	assert.Contains(t, report.Layers["tdd"].Output, "missing tests")
	assert.Equal(t, gate.StatusNotRun, report.Layers["implementation"].Status)
	assert.Equal(t, gate.StatusNotRun, report.Layers["verify"].Status)
	assert.True(t, AnyFailed(report))
}

func TestGenerateCollectsMetrics(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, filepath.Join(".stratum", "reports", "coverage.json"),
		`{"line_percent": 91.5, "threshold": 80, "meets_threshold": true}`)
	writeFile(t, dir, filepath.Join(".stratum", "reports", "test_results.json"),
		`{"total": 12, "passed": 12, "all_passed": true}`)

	report, err := NewGenerator(dir, testLogger()).Generate(context.Background())
	require.NoError(t, err)

	require.NotNil(t, report.Coverage)
	assert.InDelta(t, 91.5, report.Coverage.LinePercent, 0.001)
	require.NotNil(t, report.Tests)
	assert.Equal(t, 12, report.Tests.Passed)
	assert.Nil(t, report.Traceability)
}

func TestGenerateStampsSpecHash(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, filepath.Join(".stratum", "tasks.yaml"), ""+
		"version: 1\n"+
		"status: ready_for_implementation\n"+
		"project:\n  name: demo\n"+
		"tasks:\n"+
		"  - id: t1\n    title: First\n    acceptance: Works\n")

	report, err := NewGenerator(dir, testLogger()).Generate(context.Background())
	require.NoError(t, err)
	assert.Len(t, report.Meta.SpecHash, 64)
}
