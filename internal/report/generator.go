// Package report generates validation reports: it runs every layer's
// make target, folds in optional metrics files, stamps the repository
// and task-spec identity, and persists the snapshot the gate checker
// reads on each prompt.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/stratum/internal/gate"
	"github.com/felixgeelhaar/stratum/internal/gitx"
	"github.com/felixgeelhaar/stratum/internal/log"
	"github.com/felixgeelhaar/stratum/internal/runner"
	"github.com/felixgeelhaar/stratum/internal/taskspec"
)

// GeneratorVersion is stamped into every report's meta block
const GeneratorVersion = "1.0.0"

// shortHashLen matches the staleness comparison width in the gate checker
const shortHashLen = 7

// Metrics file names the generator picks up from .stratum/reports/ when
// a validation target has left them behind.
const (
	coverageFile     = "coverage.json"
	testResultsFile  = "test_results.json"
	traceabilityFile = "traceability.json"
)

// Generator runs the validation pipeline for one project
type Generator struct {
	projectDir string
	runner     *runner.Runner
	repo       *gitx.Repo
	logger     *log.Logger
}

// NewGenerator creates a Generator for the given project directory
func NewGenerator(projectDir string, logger *log.Logger) *Generator {
	return &Generator{
		projectDir: projectDir,
		runner:     runner.NewRunner(projectDir),
		repo:       gitx.NewRepo(projectDir),
		logger:     logger,
	}
}

// Generate runs all layer targets, assembles the report, and writes it
// to the canonical path. The returned report may contain FAIL layers;
// that is not an error here, callers map it to an exit code.
func (g *Generator) Generate(ctx context.Context) (*gate.Report, error) {
	report := &gate.Report{
		Layers: make(map[string]gate.LayerResult),
	}

	hasMakefile := g.runner.HasMakefile()
	for _, layer := range gate.Layers {
		report.Layers[layer.Name] = g.runLayer(ctx, layer, hasMakefile)
	}

	g.collectMetrics(report)
	g.stampMeta(ctx, report)

	path := gate.ReportPath(g.projectDir)
	if err := gate.WriteReport(report, path); err != nil {
		return nil, err
	}
	g.logger.Info("validation report written",
		"path", path,
		"report_id", report.Meta.ReportID)

	return report, nil
}

func (g *Generator) runLayer(ctx context.Context, layer gate.Layer, hasMakefile bool) gate.LayerResult {
	checkedAt := time.Now().UTC().Format(time.RFC3339)

	if !hasMakefile || !g.runner.TargetExists(ctx, layer.Target) {
		return gate.LayerResult{
			Status:    gate.StatusNotRun,
			CheckedAt: checkedAt,
			Message:   fmt.Sprintf("make target %s not found", layer.Target),
		}
	}

	g.logger.Debug("running validation layer", "layer", layer.Name, "target", layer.Target)

	result, err := g.runner.Run(ctx, layer.Target)
	if err != nil {
		return gate.LayerResult{
			Status:    gate.StatusFail,
			CheckedAt: checkedAt,
			Message:   err.Error(),
		}
	}

	if result.Passed() {
		return gate.LayerResult{
			Status:    gate.StatusPass,
			CheckedAt: checkedAt,
		}
	}

	return gate.LayerResult{
		Status:    gate.StatusFail,
		CheckedAt: checkedAt,
		Message:   fmt.Sprintf("%s exited with code %d", layer.Target, result.ExitCode),
		Output:    result.Output,
	}
}

// collectMetrics folds in metrics files that validation targets leave
// under .stratum/reports/. Each file is optional and skipped when
// missing or malformed.
func (g *Generator) collectMetrics(report *gate.Report) {
	dir := filepath.Join(g.projectDir, ".stratum", "reports")

	var coverage gate.CoverageMetrics
	if readMetrics(filepath.Join(dir, coverageFile), &coverage) {
		report.Coverage = &coverage
	}

	var tests gate.TestRunMetrics
	if readMetrics(filepath.Join(dir, testResultsFile), &tests) {
		report.Tests = &tests
	}

	var traceability gate.TraceabilityMetrics
	if readMetrics(filepath.Join(dir, traceabilityFile), &traceability) {
		report.Traceability = &traceability
	}
}

func (g *Generator) stampMeta(ctx context.Context, report *gate.Report) {
	hash := g.repo.Head(ctx)
	short := hash
	if len(short) > shortHashLen {
		short = short[:shortHashLen]
	}

	report.Meta = gate.Meta{
		ReportID:         uuid.NewString(),
		GitHash:          hash,
		GitHashShort:     short,
		SpecHash:         g.specHash(),
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
		GeneratorVersion: GeneratorVersion,
	}
}

// specHash returns the content hash of the task specification, or an
// empty string when the project has none.
func (g *Generator) specHash() string {
	path := taskspec.FindSpecFile(g.projectDir)
	if path == "" {
		return ""
	}
	spec, err := taskspec.Load(path)
	if err != nil {
		return ""
	}
	hash, err := taskspec.Hash(spec)
	if err != nil {
		return ""
	}
	return hash
}

func readMetrics(path string, v any) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

// AnyFailed reports whether any layer in the report recorded a failure
func AnyFailed(report *gate.Report) bool {
	for _, layer := range report.Layers {
		if layer.Status == gate.StatusFail {
			return true
		}
	}
	return false
}
