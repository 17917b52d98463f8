package profiler

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/jihwankim/dregsplat/pkg/drrerr"
)

// JobRow is one sweep point's measurement.
type JobRow struct {
	Variable uint32
	TMedian  float64 // milliseconds
	MemoryKB float64
}

// WriteJobCSV writes a per-job CSV with header variable,t_median,memory.
func WriteJobCSV(path string, rows []JobRow) error {
	f, err := os.Create(path)
	if err != nil {
		return drrerr.Wrap(drrerr.SystemFailure, fmt.Sprintf("profiler: creating %s", path), err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"variable", "t_median", "memory"}); err != nil {
		return drrerr.Wrap(drrerr.SystemFailure, "profiler: writing job CSV header", err)
	}
	for _, r := range rows {
		record := []string{
			strconv.FormatUint(uint64(r.Variable), 10),
			strconv.FormatFloat(r.TMedian, 'f', -1, 64),
			strconv.FormatFloat(r.MemoryKB, 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return drrerr.Wrap(drrerr.SystemFailure, "profiler: writing job CSV row", err)
		}
	}
	w.Flush()
	return w.Error()
}

// IndexRow is one entry in the run-wide index CSV.
type IndexRow struct {
	JobID       int
	Title       string
	Generator   string
	Splatting   string
	ContainerTag string
	CustomTag   string
}

// IndexWriter appends rows to the index CSV under a mutex, since jobs
// complete concurrently across the pool.
type IndexWriter struct {
	mu sync.Mutex
	w  *csv.Writer
	f  *os.File
}

// NewIndexWriter creates outputDir/Content.csv and writes its header.
func NewIndexWriter(outputDir string) (*IndexWriter, error) {
	path := filepath.Join(outputDir, "Content.csv")
	f, err := os.Create(path)
	if err != nil {
		return nil, drrerr.Wrap(drrerr.SystemFailure, fmt.Sprintf("profiler: creating %s", path), err)
	}
	w := csv.NewWriter(f)
	header := []string{"job id", "job title", "regionfield generator name", "splatting name", "container trait tag", "custom tag"}
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, drrerr.Wrap(drrerr.SystemFailure, "profiler: writing index CSV header", err)
	}
	w.Flush()
	return &IndexWriter{w: w, f: f}, nil
}

// Append writes one row and flushes immediately, so a SIGINT mid-sweep
// leaves a valid, readable index file.
func (iw *IndexWriter) Append(row IndexRow) error {
	iw.mu.Lock()
	defer iw.mu.Unlock()
	record := []string{
		strconv.Itoa(row.JobID),
		row.Title,
		row.Generator,
		row.Splatting,
		row.ContainerTag,
		row.CustomTag,
	}
	if err := iw.w.Write(record); err != nil {
		return drrerr.Wrap(drrerr.SystemFailure, "profiler: writing index CSV row", err)
	}
	iw.w.Flush()
	return iw.w.Error()
}

// Close flushes and closes the underlying file.
func (iw *IndexWriter) Close() error {
	iw.mu.Lock()
	defer iw.mu.Unlock()
	iw.w.Flush()
	return iw.f.Close()
}
