package reporting_test

import (
	"os"
	"time"

	"github.com/jihwankim/dregsplat/pkg/reporting"
)

// Example demonstrates the reporting package usage.
func Example() {
	logger := reporting.NewLogger(reporting.LoggerConfig{
		Level:  reporting.LogLevelInfo,
		Format: reporting.LogFormatText,
		Output: os.Stdout,
	})

	logger.Info("profiler starting", "jobs", 12)

	progress := reporting.NewProgressReporter(reporting.FormatText, logger)
	progress.ReportJobStarted(0, 12, "vanilla/DD/voronoi radius sweep")
	progress.ReportJobCompleted(0, 12, reporting.JobOutcome{JobID: 0, Title: "vanilla/DD/voronoi radius sweep", Points: 5})
	progress.ReportSweepCompleted(reporting.SweepSummary{
		TotalJobs:     12,
		CompletedJobs: 12,
		FailedJobs:    0,
		Duration:      3 * time.Second,
	})
}
