package profiler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jihwankim/dregsplat/pkg/config"
)

func sampleConfig() *config.Config {
	return &config.Config{
		Seed:               42,
		ThreadAffinityMask: 0,
		ParameterSet: config.ParameterSet{
			Default: config.DefaultSet{
				Fixed: config.Fixed{Extent: [2]uint32{24, 24}, Radius: 2, RegionCount: 4, CentroidCount: 6},
				Variable: config.Variable{
					Radius:        config.Sweep{From: 1, To: 3, Step: 3},
					RegionCount:   config.Sweep{From: 2, To: 6, Step: 3},
					CentroidCount: config.Sweep{From: 4, To: 8, Step: 2},
				},
			},
			Stress: config.StressSet{
				Fixed:    config.StressFixed{Extent: [2]uint32{24, 24}, RegionCount: 4},
				Variable: config.StressVariable{Radius: config.Sweep{From: 1, To: 8, Step: 4}},
			},
		},
	}
}

func TestBuildJobsCount(t *testing.T) {
	jobs := BuildJobs(sampleConfig())
	// 3 default dimensions x 3 traits x 5 engines x 3 generators, plus
	// 1 stress dimension x 3 traits x 5 engines x 3 generators.
	want := (3 + 1) * 3 * 5 * 3
	if len(jobs) != want {
		t.Fatalf("len(jobs) = %d, want %d", len(jobs), want)
	}
}

func TestBuildJobsTitleIsStable(t *testing.T) {
	jobs := BuildJobs(sampleConfig())
	seen := make(map[string]bool)
	for _, j := range jobs {
		title := j.Title()
		if seen[title] {
			t.Fatalf("duplicate job title %q", title)
		}
		seen[title] = true
	}
}

func TestBenchmarkReturnsPositiveMedian(t *testing.T) {
	calls := 0
	median := benchmark(func() { calls++ })
	if median <= 0 {
		t.Fatalf("median = %v, want > 0", median)
	}
	if calls < benchEpochs {
		t.Fatalf("calls = %d, want at least %d", calls, benchEpochs)
	}
}

func TestWriteJobCSVRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "0.csv")
	rows := []JobRow{{Variable: 1, TMedian: 1.5, MemoryKB: 2}, {Variable: 2, TMedian: 2.25, MemoryKB: 4}}
	if err := WriteJobCSV(path, rows); err != nil {
		t.Fatalf("WriteJobCSV: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got := string(data); got == "" {
		t.Fatalf("expected non-empty CSV")
	}
}

func TestIndexWriterAppend(t *testing.T) {
	dir := t.TempDir()
	iw, err := NewIndexWriter(dir)
	if err != nil {
		t.Fatalf("NewIndexWriter: %v", err)
	}
	if err := iw.Append(IndexRow{JobID: 0, Title: "t", Generator: "uniform", Splatting: "vanilla", ContainerTag: "DD", CustomTag: "default"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := iw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "Content.csv"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected non-empty index CSV")
	}
}

func TestSchedulerRunProducesOutput(t *testing.T) {
	dir := t.TempDir()
	cfg := sampleConfig()
	// Shrink the sweep so the test runs quickly.
	cfg.ParameterSet.Default.Variable.Radius = config.Sweep{From: 1, To: 1, Step: 1}
	cfg.ParameterSet.Default.Variable.RegionCount = config.Sweep{From: 2, To: 2, Step: 1}
	cfg.ParameterSet.Default.Variable.CentroidCount = config.Sweep{From: 4, To: 4, Step: 1}
	cfg.ParameterSet.Stress.Variable.Radius = config.Sweep{From: 1, To: 1, Step: 1}

	p, err := newTestPool(t)
	if err != nil {
		t.Fatalf("pool: %v", err)
	}
	defer p.Close()

	logger := testLogger()
	sched, err := NewScheduler(cfg, p, dir, logger)
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	if err := sched.Run(nil); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "Content.csv")); err != nil {
		t.Fatalf("expected Content.csv: %v", err)
	}
}
