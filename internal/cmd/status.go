package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/stratum/internal/gate"
	"github.com/felixgeelhaar/stratum/internal/gitx"
	"github.com/felixgeelhaar/stratum/internal/schedule"
	"github.com/felixgeelhaar/stratum/internal/session"
	"github.com/felixgeelhaar/stratum/internal/taskspec"
	"github.com/felixgeelhaar/stratum/internal/ux"
)

var statusFormatFlag string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show task graph, session, and gate status",
	Long: `Display an overview of the current project: parsed task graph with
execution order and ready tasks, persisted session state, and the latest
validation report with staleness.

Examples:
  # Display status in default text format
  stratum status

  # Output as JSON for scripting
  stratum status --format json

  # Output as YAML
  stratum status --format yaml
`,
	RunE: runStatus,
}

// StatusReport is the merged view the status command renders
type StatusReport struct {
	Timestamp string         `json:"timestamp" yaml:"timestamp"`
	Project   ProjectStatus  `json:"project" yaml:"project"`
	Tasks     *TaskSummary   `json:"tasks,omitempty" yaml:"tasks,omitempty"`
	Session   *SessionStatus `json:"session,omitempty" yaml:"session,omitempty"`
	Gates     *GateSummary   `json:"gates,omitempty" yaml:"gates,omitempty"`
	Issues    []string       `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// ProjectStatus describes the project and its task specification
type ProjectStatus struct {
	Directory  string `json:"directory" yaml:"directory"`
	Name       string `json:"name,omitempty" yaml:"name,omitempty"`
	SpecFile   string `json:"spec_file,omitempty" yaml:"spec_file,omitempty"`
	SpecStatus string `json:"spec_status,omitempty" yaml:"spec_status,omitempty"`
}

// TaskSummary aggregates the task graph
type TaskSummary struct {
	Total      int      `json:"total" yaml:"total"`
	Complete   int      `json:"complete" yaml:"complete"`
	InProgress int      `json:"in_progress" yaml:"in_progress"`
	Pending    int      `json:"pending" yaml:"pending"`
	Order      []string `json:"order" yaml:"order"`
	Ready      []string `json:"ready" yaml:"ready"`
}

// SessionStatus mirrors the persisted session state
type SessionStatus struct {
	LoopActive   bool   `json:"loop_active" yaml:"loop_active"`
	LoopPaused   bool   `json:"loop_paused" yaml:"loop_paused"`
	CurrentLayer int    `json:"current_layer" yaml:"current_layer"`
	LastUpdated  string `json:"last_updated,omitempty" yaml:"last_updated,omitempty"`
}

// GateSummary aggregates the latest validation report
type GateSummary struct {
	Layers      []LayerStatus `json:"layers" yaml:"layers"`
	Stale       bool          `json:"stale" yaml:"stale"`
	ReportHash  string        `json:"report_hash,omitempty" yaml:"report_hash,omitempty"`
	CurrentHash string        `json:"current_hash,omitempty" yaml:"current_hash,omitempty"`
	GeneratedAt string        `json:"generated_at,omitempty" yaml:"generated_at,omitempty"`
}

// LayerStatus is one pipeline layer's recorded outcome
type LayerStatus struct {
	Layer  int    `json:"layer" yaml:"layer"`
	Name   string `json:"name" yaml:"name"`
	Status string `json:"status" yaml:"status"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	dir := projectDir()

	report, err := buildStatusReport(cmd, dir)
	if err != nil {
		return err
	}

	formatter, err := ux.NewFormatter(statusFormatFlag, &ux.Options{Writer: cmd.OutOrStdout()})
	if err != nil {
		return err
	}

	if statusFormatFlag == "text" || statusFormatFlag == "" {
		return formatter.Format(renderStatusText(report))
	}
	return formatter.Format(report)
}

func buildStatusReport(cmd *cobra.Command, dir string) (*StatusReport, error) {
	report := &StatusReport{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Project:   ProjectStatus{Directory: dir},
	}

	specPath := taskspec.FindSpecFile(dir)
	if specPath == "" {
		report.Issues = append(report.Issues, "no task specification found under .stratum/")
	} else {
		report.Project.SpecFile = filepath.Base(specPath)
		spec, err := taskspec.Load(specPath)
		if err != nil {
			report.Issues = append(report.Issues, err.Error())
		} else {
			report.Project.Name = spec.Project.Name
			report.Project.SpecStatus = string(spec.Status)

			summary, err := buildTaskSummary(spec)
			if err != nil {
				report.Issues = append(report.Issues, err.Error())
			} else {
				report.Tasks = summary
			}
		}
	}

	if state, err := session.NewStore(dir).Load(); err == nil && state != nil {
		sessionStatus := &SessionStatus{
			LoopActive:   state.LoopActive,
			LoopPaused:   state.LoopPaused,
			CurrentLayer: state.CurrentLayer,
		}
		if !state.LastUpdated.IsZero() {
			sessionStatus.LastUpdated = state.LastUpdated.Format(time.RFC3339)
		}
		report.Session = sessionStatus
	}

	if validation, err := gate.ReadReport(gate.ReportPath(dir)); err == nil && validation != nil {
		report.Gates = buildGateSummary(cmd, dir, validation)
	}

	return report, nil
}

func buildTaskSummary(spec *taskspec.TaskSpec) (*TaskSummary, error) {
	sorted, err := schedule.Sort(spec.Tasks)
	if err != nil {
		return nil, err
	}

	summary := &TaskSummary{
		Total: len(sorted),
		Order: make([]string, 0, len(sorted)),
		Ready: []string{},
	}
	for _, task := range sorted {
		summary.Order = append(summary.Order, task.ID)
		switch task.Status {
		case taskspec.StatusComplete:
			summary.Complete++
		case taskspec.StatusInProgress:
			summary.InProgress++
		default:
			summary.Pending++
		}
	}
	for _, task := range schedule.Ready(sorted) {
		summary.Ready = append(summary.Ready, task.ID)
	}

	return summary, nil
}

func buildGateSummary(cmd *cobra.Command, dir string, validation *gate.Report) *GateSummary {
	staleness := gate.CheckStaleness(validation.Meta.GitHash,
		gitx.NewRepo(dir).Head(cmd.Context()))

	summary := &GateSummary{
		Stale:       staleness.IsStale,
		ReportHash:  staleness.ReportHash,
		CurrentHash: staleness.CurrentHash,
		GeneratedAt: validation.Meta.Timestamp,
	}
	for _, layer := range gate.Layers {
		status := gate.StatusNotRun
		if result, ok := validation.Layers[layer.Name]; ok && result.Status.Valid() {
			status = result.Status
		}
		summary.Layers = append(summary.Layers, LayerStatus{
			Layer:  layer.Num,
			Name:   layer.Name,
			Status: string(status),
		})
	}

	return summary
}

var (
	statusTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	statusHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	statusLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusPassStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	statusFailStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	statusWarnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

func renderStatusText(report *StatusReport) string {
	var b strings.Builder

	b.WriteString(statusTitleStyle.Render("Stratum Status") + "\n\n")

	b.WriteString(statusHeaderStyle.Render("Project") + "\n")
	b.WriteString(fmt.Sprintf("  %s %s\n", statusLabelStyle.Render("Directory:"), report.Project.Directory))
	if report.Project.Name != "" {
		b.WriteString(fmt.Sprintf("  %s %s\n", statusLabelStyle.Render("Name:"), report.Project.Name))
	}
	if report.Project.SpecFile != "" {
		b.WriteString(fmt.Sprintf("  %s %s (%s)\n", statusLabelStyle.Render("Spec:"), report.Project.SpecFile, report.Project.SpecStatus))
	}

	if report.Tasks != nil {
		b.WriteString("\n" + statusHeaderStyle.Render("Tasks") + "\n")
		b.WriteString(fmt.Sprintf("  %s %d complete, %d in progress, %d pending (of %d)\n",
			statusLabelStyle.Render("Progress:"),
			report.Tasks.Complete, report.Tasks.InProgress, report.Tasks.Pending, report.Tasks.Total))
		b.WriteString(fmt.Sprintf("  %s %s\n", statusLabelStyle.Render("Order:"), strings.Join(report.Tasks.Order, " -> ")))
		if len(report.Tasks.Ready) > 0 {
			b.WriteString(fmt.Sprintf("  %s %s\n", statusLabelStyle.Render("Ready:"), strings.Join(report.Tasks.Ready, ", ")))
		}
	}

	if report.Session != nil {
		b.WriteString("\n" + statusHeaderStyle.Render("Session") + "\n")
		switch {
		case report.Session.LoopPaused:
			b.WriteString("  " + statusWarnStyle.Render("Loop paused") + "\n")
		case report.Session.LoopActive:
			b.WriteString("  " + statusPassStyle.Render("Loop active") + "\n")
		default:
			b.WriteString("  No active loop\n")
		}
		b.WriteString(fmt.Sprintf("  %s %d\n", statusLabelStyle.Render("Current layer:"), report.Session.CurrentLayer))
	}

	if report.Gates != nil {
		b.WriteString("\n" + statusHeaderStyle.Render("Gates") + "\n")
		for _, layer := range report.Gates.Layers {
			style := statusLabelStyle
			switch layer.Status {
			case string(gate.StatusPass):
				style = statusPassStyle
			case string(gate.StatusFail):
				style = statusFailStyle
			}
			b.WriteString(fmt.Sprintf("  Layer %d (%s): %s\n", layer.Layer, layer.Name, style.Render(layer.Status)))
		}
		if report.Gates.Stale {
			b.WriteString("  " + statusWarnStyle.Render(fmt.Sprintf("Report is stale (report: %s, HEAD: %s)",
				report.Gates.ReportHash, report.Gates.CurrentHash)) + "\n")
		}
	} else {
		b.WriteString("\n" + statusLabelStyle.Render("No validation report. Run `stratum report generate`.") + "\n")
	}

	for _, issue := range report.Issues {
		b.WriteString("\n" + statusFailStyle.Render("Issue: "+issue) + "\n")
	}

	return b.String()
}

func init() {
	statusCmd.Flags().StringVar(&statusFormatFlag, "format", "text", "output format (text, json, yaml)")
	rootCmd.AddCommand(statusCmd)
}
