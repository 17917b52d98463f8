package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/bits-and-blooms/bitset"
	"github.com/spf13/cobra"

	"github.com/jihwankim/dregsplat/pkg/config"
	"github.com/jihwankim/dregsplat/pkg/pool"
	"github.com/jihwankim/dregsplat/pkg/profiler"
	"github.com/jihwankim/dregsplat/pkg/reporting"
)

var profileCmd = &cobra.Command{
	Use:   "profile <config-path>",
	Args:  cobra.ExactArgs(1),
	Short: "Sweep the splatting engines and write per-job CSVs",
	Long:  `Loads a profiler configuration and runs every default and stress sweep, writing one CSV per job plus a global index.`,
	RunE:  runProfile,
}

func init() {
	profileCmd.Flags().String("output", ".", "directory to write CSV output into")
	profileCmd.Flags().IntP("threads", "t", runtime.NumCPU(), "worker pool size")
}

func runProfile(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	outputDir, _ := cmd.Flags().GetString("output")
	threads, _ := cmd.Flags().GetInt("threads")

	logLevel := reporting.LogLevelInfo
	if verbose {
		logLevel = reporting.LogLevelDebug
	}
	logger := reporting.NewLogger(reporting.LoggerConfig{
		Level:  logLevel,
		Format: reporting.LogFormatText,
		Output: os.Stdout,
	})

	logger.Info("dregsplat profiler starting", "version", version)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	restore := elevateMainThread(logger)
	defer restore()

	p, err := pool.New(threads)
	if err != nil {
		return fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer p.Close()

	if cfg.ThreadAffinityMask != 0 {
		mask := bitset.From([]uint64{cfg.ThreadAffinityMask})
		if err := p.SetAffinityMask(mask); err != nil {
			logger.Warn("failed to set thread affinity mask", "error", err)
		}
	}

	sched, err := profiler.NewScheduler(cfg, p, outputDir, logger)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	ctrl := profiler.NewController()
	ctrl.Start(cmd.Context())

	if err := sched.Run(ctrl); err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}

	logger.Info("dregsplat profiler finished")
	return nil
}

// elevateMainThread pins the calling goroutine to its OS thread and
// raises that thread's scheduling priority for the run, returning a
// restore function. Failure to elevate is logged and otherwise
// ignored: the sweep still runs correctly, just without priority boost.
func elevateMainThread(logger *reporting.Logger) func() {
	runtime.LockOSThread()
	restore, err := pool.ElevateCurrentThread(255)
	if err != nil {
		logger.Warn("failed to elevate main thread priority", "error", err)
		return func() { runtime.UnlockOSThread() }
	}
	return func() {
		if err := restore(); err != nil {
			logger.Warn("failed to restore main thread priority", "error", err)
		}
		runtime.UnlockOSThread()
	}
}
