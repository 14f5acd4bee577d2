package gate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadReportAbsent(t *testing.T) {
	report, err := ReadReport(filepath.Join(t.TempDir(), "validation_report.json"))
	require.NoError(t, err)
	assert.Nil(t, report)
}

func TestReadReportCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "validation_report.json")
	require.NoError(t, os.WriteFile(path, []byte("{{{"), 0644))

	report, err := ReadReport(path)
	require.NoError(t, err)
	assert.Nil(t, report, "a corrupt report is treated as absent")
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := ReportPath(t.TempDir())

	report := &Report{
		Meta: Meta{
			GitHash:          "abcdef0123456789",
			GitHashShort:     "abcdef0",
			Timestamp:        "2026-01-02T03:04:05Z",
			GeneratorVersion: "1.0.0",
		},
		Layers: map[string]LayerResult{
			"requirements": {Status: StatusPass, CheckedAt: "2026-01-02T03:04:05Z"},
			"tdd":          {Status: StatusFail, Output: "FAIL: TestThing"},
		},
		Tests: &TestRunMetrics{Total: 10, Passed: 9, Failed: 1},
	}

	require.NoError(t, WriteReport(report, path))

	loaded, err := ReadReport(path)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, "abcdef0", loaded.Meta.GitHashShort)
	assert.Equal(t, StatusFail, loaded.Layers["tdd"].Status)
	assert.Equal(t, "FAIL: TestThing", loaded.Layers["tdd"].Output)
	require.NotNil(t, loaded.Tests)
	assert.Equal(t, 9, loaded.Tests.Passed)
	assert.Nil(t, loaded.Coverage, "unset blocks stay unset")
}

func TestWriteReportOmitsEmptyBlocks(t *testing.T) {
	path := ReportPath(t.TempDir())

	report := &Report{
		Meta:   Meta{GitHash: "x", GitHashShort: "x", Timestamp: "t", GeneratorVersion: "v"},
		Layers: map[string]LayerResult{"verify": {Status: StatusNotRun}},
	}
	require.NoError(t, WriteReport(report, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(raw)
	assert.NotContains(t, content, "null", "absent blocks are omitted, not null")
	assert.NotContains(t, content, `"coverage"`)
	assert.NotContains(t, content, `"message"`)
	assert.True(t, strings.HasSuffix(content, "\n"))
}
