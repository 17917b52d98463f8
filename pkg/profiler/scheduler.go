package profiler

import (
	"fmt"
	"math"
	"path/filepath"
	"time"

	"github.com/jihwankim/dregsplat/pkg/config"
	"github.com/jihwankim/dregsplat/pkg/drrerr"
	"github.com/jihwankim/dregsplat/pkg/generator"
	"github.com/jihwankim/dregsplat/pkg/pool"
	"github.com/jihwankim/dregsplat/pkg/regionfield"
	"github.com/jihwankim/dregsplat/pkg/reporting"
	"github.com/jihwankim/dregsplat/pkg/splatting"
)

// Scheduler drives the whole sweep: building jobs, submitting each to
// the pool, benchmarking every sweep point and writing CSVs.
type Scheduler struct {
	cfg       *config.Config
	pool      *pool.Pool
	outputDir string
	logger    *reporting.Logger
	index     *IndexWriter
	progress  *reporting.ProgressReporter
}

// NewScheduler wires the pool, output directory and logger a Run needs.
// Progress is reported as plain text; use WithProgressFormat to change it.
func NewScheduler(cfg *config.Config, p *pool.Pool, outputDir string, logger *reporting.Logger) (*Scheduler, error) {
	idx, err := NewIndexWriter(outputDir)
	if err != nil {
		return nil, err
	}
	progress := reporting.NewProgressReporter(reporting.FormatText, logger)
	return &Scheduler{cfg: cfg, pool: p, outputDir: outputDir, logger: logger, index: idx, progress: progress}, nil
}

// WithProgressFormat switches the sweep's progress reporting format.
func (s *Scheduler) WithProgressFormat(format reporting.OutputFormat) {
	s.progress = reporting.NewProgressReporter(format, s.logger)
}

// Run builds every job and submits it to the pool, waiting for each to
// finish before checking ctrl for an early stop. Per-job failures are
// logged and do not abort the sweep; ctrl may be nil to disable early
// stop.
func (s *Scheduler) Run(ctrl *Controller) error {
	defer s.index.Close()

	start := time.Now()
	jobs := BuildJobs(s.cfg)
	futures := make([]*pool.Future[jobOutcome], 0, len(jobs))
	for _, j := range jobs {
		j := j
		s.progress.ReportJobStarted(j.ID, len(jobs), j.Title())
		futures = append(futures, pool.Submit(s.pool, func(info pool.ThreadInfo) jobOutcome {
			rows, err := s.runJob(j)
			return jobOutcome{job: j, rows: rows, err: err}
		}))
	}

	completed, failed := 0, 0
	stoppedEarly := false
	for _, f := range futures {
		outcome := f.Get()
		if outcome.err != nil {
			failed++
			s.logger.Error("job failed", "job_id", outcome.job.ID, "title", outcome.job.Title(), "error", outcome.err)
			s.progress.ReportJobCompleted(outcome.job.ID, len(jobs), reporting.JobOutcome{
				JobID: outcome.job.ID, Title: outcome.job.Title(), Failed: true, Error: outcome.err.Error(),
			})
			continue
		}
		if err := s.writeJob(outcome.job, outcome.rows); err != nil {
			s.logger.Error("failed to write job output", "job_id", outcome.job.ID, "error", err)
		}
		completed++
		s.progress.ReportJobCompleted(outcome.job.ID, len(jobs), reporting.JobOutcome{
			JobID: outcome.job.ID, Title: outcome.job.Title(), Points: len(outcome.rows),
		})
		if ctrl != nil && ctrl.Stopped() {
			s.logger.Warn("sweep stopped early", "completed_jobs", outcome.job.ID+1, "total_jobs", len(jobs))
			stoppedEarly = true
			break
		}
	}
	s.progress.ReportSweepCompleted(reporting.SweepSummary{
		TotalJobs: len(jobs), CompletedJobs: completed, FailedJobs: failed,
		StoppedEarly: stoppedEarly, Duration: time.Since(start),
	})
	return nil
}

type jobOutcome struct {
	job  Job
	rows []JobRow
	err  error
}

func (s *Scheduler) writeJob(j Job, rows []JobRow) error {
	path := filepath.Join(s.outputDir, fmt.Sprintf("%d.csv", j.ID))
	if err := WriteJobCSV(path, rows); err != nil {
		return err
	}
	return s.index.Append(IndexRow{
		JobID:        j.ID,
		Title:        j.Title(),
		Generator:    string(j.GenFamily),
		Splatting:    string(j.EngineFamily),
		ContainerTag: j.Trait.Tag(),
		CustomTag:    j.SweepSet,
	})
}

// runJob benchmarks every sweep point in j, skipping (logging) points
// whose swept value makes the configuration invalid rather than
// aborting the whole job.
func (s *Scheduler) runJob(j Job) ([]JobRow, error) {
	rows := make([]JobRow, 0, len(j.Points))

	sharedRF, reuseRF := s.sharedRegionfield(j)

	for _, point := range j.Points {
		radius := int(j.Radius)
		regionCount := int(j.RegionCount)
		centroidCount := int(j.CentroidCount)
		switch j.Dimension {
		case DimensionRadius:
			radius = int(point)
		case DimensionRegionCount:
			regionCount = int(point)
		case DimensionCentroidCount:
			centroidCount = int(point)
		}
		if centroidCount <= 0 {
			centroidCount = defaultCentroidCount
		}

		rf := sharedRF
		if !reuseRF {
			built, err := s.buildRegionfield(j, regionCount, centroidCount)
			if err != nil {
				s.logger.Warn("skipping sweep point", "job_id", j.ID, "variable", point, "error", err)
				continue
			}
			rf = built
		}

		engine := buildEngine(j.EngineFamily, radius, s.cfg.Seed)
		scratch := splatting.NewScratch(j.Trait)

		offset := engine.MinimumOffset()
		w, h := rf.Extent()
		extent := [2]int{h - 2*offset[0], w - 2*offset[1]}
		if extent[0] <= 0 || extent[1] <= 0 {
			s.logger.Warn("skipping sweep point: regionfield too small for radius", "job_id", j.ID, "variable", point)
			continue
		}

		if _, err := engine.Invoke(rf, offset, extent, scratch); err != nil {
			s.logger.Warn("skipping sweep point", "job_id", j.ID, "variable", point, "error", err)
			continue
		}

		median := benchmark(func() {
			_, _ = engine.Invoke(rf, offset, extent, scratch)
		})
		memoryKB := math.Round(float64(scratch.SizeBytes()) * 1e-3)
		rows = append(rows, JobRow{Variable: point, TMedian: median, MemoryKB: memoryKB})
	}

	if len(rows) == 0 {
		return nil, drrerr.New(drrerr.InvalidParameter, fmt.Sprintf("job %d: every sweep point was invalid", j.ID))
	}
	return rows, nil
}

// sharedRegionfield builds the regionfield once for a radius sweep,
// since its content does not depend on radius; other dimensions rebuild
// per point in runJob.
func (s *Scheduler) sharedRegionfield(j Job) (*regionfield.Regionfield, bool) {
	if j.Dimension != DimensionRadius {
		return nil, false
	}
	centroidCount := int(j.CentroidCount)
	if centroidCount <= 0 {
		centroidCount = defaultCentroidCount
	}
	rf, err := s.buildRegionfield(j, int(j.RegionCount), centroidCount)
	if err != nil {
		return nil, false
	}
	return rf, true
}

func (s *Scheduler) buildRegionfield(j Job, regionCount, centroidCount int) (*regionfield.Regionfield, error) {
	rf, err := regionfield.NewSized(int(j.Extent[0]), int(j.Extent[1]))
	if err != nil {
		return nil, err
	}
	if err := rf.SetRegionCount(regionCount); err != nil {
		return nil, err
	}
	gen := buildGenerator(j.GenFamily, centroidCount)
	if err := gen.Generate(rf, generator.Info{Seed: s.cfg.Seed}); err != nil {
		return nil, err
	}
	return rf, nil
}
