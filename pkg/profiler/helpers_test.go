package profiler

import (
	"io"
	"testing"

	"github.com/jihwankim/dregsplat/pkg/pool"
	"github.com/jihwankim/dregsplat/pkg/reporting"
)

func newTestPool(t *testing.T) (*pool.Pool, error) {
	t.Helper()
	return pool.New(2)
}

func testLogger() *reporting.Logger {
	return reporting.NewLogger(reporting.LoggerConfig{Level: reporting.LogLevelError, Format: reporting.LogFormatJSON, Output: io.Discard})
}
