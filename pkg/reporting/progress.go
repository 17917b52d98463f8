package reporting

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// OutputFormat represents the progress output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatTUI  OutputFormat = "tui"
)

// ProgressReporter reports sweep execution progress: job starts,
// per-job outcomes and the final sweep summary.
type ProgressReporter struct {
	format OutputFormat
	logger *Logger
}

// NewProgressReporter creates a new progress reporter
func NewProgressReporter(format OutputFormat, logger *Logger) *ProgressReporter {
	return &ProgressReporter{
		format: format,
		logger: logger,
	}
}

// JobOutcome summarizes one completed job for reporting.
type JobOutcome struct {
	JobID   int
	Title   string
	Points  int
	Failed  bool
	Error   string
}

// SweepSummary summarizes a whole sweep run for the final report.
type SweepSummary struct {
	TotalJobs     int
	CompletedJobs int
	FailedJobs    int
	StoppedEarly  bool
	Duration      time.Duration
}

// ReportJobStarted reports that a job has been submitted to the pool.
func (pr *ProgressReporter) ReportJobStarted(jobID, total int, title string) {
	switch pr.format {
	case FormatJSON:
		data, _ := json.Marshal(map[string]interface{}{
			"event":     "job_started",
			"job_id":    jobID,
			"total":     total,
			"title":     title,
			"timestamp": time.Now(),
		})
		fmt.Println(string(data))
	case FormatTUI:
		pr.clearLine()
		fmt.Printf("▶ [%d/%d] %s\n", jobID+1, total, title)
	default:
		fmt.Printf("[JOB] started %d/%d: %s\n", jobID+1, total, title)
	}
}

// ReportJobCompleted reports a job's outcome.
func (pr *ProgressReporter) ReportJobCompleted(jobID, total int, outcome JobOutcome) {
	switch pr.format {
	case FormatJSON:
		data, _ := json.Marshal(map[string]interface{}{
			"event":     "job_completed",
			"total":     total,
			"outcome":   outcome,
			"timestamp": time.Now(),
		})
		fmt.Println(string(data))
	case FormatTUI:
		pr.clearLine()
		status := "✅"
		if outcome.Failed {
			status = "❌"
		}
		fmt.Printf("%s [%d/%d] %s (%d points)\n", status, jobID+1, total, outcome.Title, outcome.Points)
		if outcome.Failed {
			fmt.Printf("   %s\n", outcome.Error)
		}
	default:
		if outcome.Failed {
			fmt.Printf("[JOB] failed %d/%d: %s: %s\n", jobID+1, total, outcome.Title, outcome.Error)
		} else {
			fmt.Printf("[JOB] done %d/%d: %s (%d points)\n", jobID+1, total, outcome.Title, outcome.Points)
		}
	}
}

// ReportSweepCompleted reports the sweep's final summary.
func (pr *ProgressReporter) ReportSweepCompleted(summary SweepSummary) {
	switch pr.format {
	case FormatJSON:
		data, err := json.Marshal(map[string]interface{}{
			"event":     "sweep_completed",
			"summary":   summary,
			"timestamp": time.Now(),
		})
		if err != nil {
			pr.logger.Error("failed to marshal sweep summary", "error", err)
			return
		}
		fmt.Println(string(data))
	case FormatTUI:
		pr.clearLine()
		pr.printSweepSummaryTUI(summary)
	default:
		pr.printSweepSummaryText(summary)
	}
}

func (pr *ProgressReporter) printSweepSummaryTUI(summary SweepSummary) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("   SWEEP SUMMARY")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println()

	statusIcon := "✅"
	if summary.FailedJobs > 0 {
		statusIcon = "⚠️"
	}
	if summary.StoppedEarly {
		statusIcon = "🛑"
	}

	fmt.Printf("%s Jobs: %d/%d completed, %d failed\n", statusIcon, summary.CompletedJobs, summary.TotalJobs, summary.FailedJobs)
	if summary.StoppedEarly {
		fmt.Println("   stopped early")
	}
	fmt.Printf("   Duration: %s\n", summary.Duration.Round(time.Second))
	fmt.Println()
	fmt.Println(strings.Repeat("=", 80))
}

func (pr *ProgressReporter) printSweepSummaryText(summary SweepSummary) {
	status := "DONE"
	if summary.StoppedEarly {
		status = "STOPPED"
	}
	fmt.Printf("\n[SWEEP %s] %d/%d jobs completed, %d failed, duration %s\n",
		status, summary.CompletedJobs, summary.TotalJobs, summary.FailedJobs, summary.Duration.Round(time.Second))
}

// clearLine clears the current line
func (pr *ProgressReporter) clearLine() {
	// ANSI escape code to clear current line
	fmt.Print("\033[K")
}
