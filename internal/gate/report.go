package gate

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/stratum/internal/errors"
)

// Status is the recorded outcome of one layer's gate
type Status string

const (
	// StatusPass means the gate passed
	StatusPass Status = "PASS"
	// StatusFail means the gate failed
	StatusFail Status = "FAIL"
	// StatusNotRun means the gate was never executed
	StatusNotRun Status = "NOT_RUN"
)

// Valid reports whether the status is one of the allowed values
func (s Status) Valid() bool {
	switch s {
	case StatusPass, StatusFail, StatusNotRun:
		return true
	default:
		return false
	}
}

// LayerResult describes one layer's outcome within a report. Produced
// fresh on every generation; never mutated afterwards.
type LayerResult struct {
	Status    Status `json:"status"`
	CheckedAt string `json:"checked_at,omitempty"`
	Message   string `json:"message,omitempty"`
	Output    string `json:"output,omitempty"`
}

// CoverageMetrics holds code coverage numbers collected by the generator
type CoverageMetrics struct {
	LinePercent    float64 `json:"line_percent"`
	BranchPercent  float64 `json:"branch_percent"`
	Threshold      int     `json:"threshold"`
	MeetsThreshold bool    `json:"meets_threshold"`
}

// TestRunMetrics summarizes a test run
type TestRunMetrics struct {
	Total     int  `json:"total"`
	Passed    int  `json:"passed"`
	Failed    int  `json:"failed"`
	Skipped   int  `json:"skipped"`
	AllPassed bool `json:"all_passed"`
}

// TraceabilityMetrics maps requirements to the tests covering them
type TraceabilityMetrics struct {
	RequirementsCount     int      `json:"requirements_count"`
	RequirementsWithTests int      `json:"requirements_with_tests"`
	CoveragePercent       float64  `json:"coverage_percent"`
	UnmappedRequirements  []string `json:"unmapped_requirements,omitempty"`
}

// Meta identifies when and against what the report was generated
type Meta struct {
	ReportID         string `json:"report_id,omitempty"`
	GitHash          string `json:"git_hash"`
	GitHashShort     string `json:"git_hash_short"`
	SpecHash         string `json:"spec_hash,omitempty"`
	Timestamp        string `json:"timestamp"`
	GeneratorVersion string `json:"generator_version"`
}

// Report is a persisted validation snapshot. The generator writes it
// wholesale; the gate checker only reads it. Staleness is derived at
// read time, never stored.
type Report struct {
	Meta         Meta                   `json:"meta"`
	Layers       map[string]LayerResult `json:"layers"`
	Coverage     *CoverageMetrics       `json:"coverage,omitempty"`
	Tests        *TestRunMetrics        `json:"tests,omitempty"`
	Traceability *TraceabilityMetrics   `json:"traceability,omitempty"`
}

// ReportPath returns the canonical report location for a project
func ReportPath(projectDir string) string {
	return filepath.Join(projectDir, ".stratum", "reports", "validation_report.json")
}

// ReadReport loads a previously written report. A missing or corrupt
// file yields (nil, nil): no report simply means no gate validation has
// happened, which must never block the workflow.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil
	}

	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, nil
	}
	if report.Layers == nil {
		report.Layers = make(map[string]LayerResult)
	}

	return &report, nil
}

// WriteReport persists a report at the canonical path, creating the
// reports directory if needed. Optional blocks are omitted from the
// JSON rather than written as null.
func WriteReport(report *Report, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(errors.ErrCodeDirectoryFailed, "create reports directory", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileMarshal, "marshal report", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "write report", err)
	}

	return nil
}
