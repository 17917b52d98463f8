package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
	version = "dev" // Will be set by build flags
)

var rootCmd = &cobra.Command{
	Use:   "dregsplat",
	Short: "Region feature splatting coefficient profiler",
	Long: `dregsplat sweeps the splatting engines across container traits,
regionfield generators and swept parameter values, benchmarking each
combination and writing the results to CSV.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (not read; the profile subcommand takes the config path as its argument)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(profileCmd)
}

// Commands are defined in separate files:
// - profileCmd in profile.go

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
