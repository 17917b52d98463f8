// Package config loads and validates the profiler's YAML configuration:
// a seed, a thread affinity mask, and two parameter sets (default,
// stress) each describing a fixed baseline plus one or more swept
// dimensions.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jihwankim/dregsplat/pkg/drrerr"
)

// Sweep describes `step` evenly-spaced sample points over [From, To]
// inclusive.
type Sweep struct {
	From uint32 `yaml:"from"`
	To   uint32 `yaml:"to"`
	Step uint8  `yaml:"step"`
}

// Points expands the sweep into its sample points. Step <= 1 yields a
// single point at From.
func (s Sweep) Points() []uint32 {
	if s.Step <= 1 {
		return []uint32{s.From}
	}
	points := make([]uint32, s.Step)
	span := float64(s.To) - float64(s.From)
	for i := range points {
		frac := float64(i) / float64(s.Step-1)
		points[i] = s.From + uint32(span*frac+0.5)
	}
	return points
}

// Fixed carries the baseline (extent, radius, region count, centroid
// count) the default parameter set holds constant while sweeping one
// dimension at a time.
type Fixed struct {
	Extent        [2]uint32 `yaml:"extent"`
	Radius        uint32    `yaml:"radius"`
	RegionCount   uint8     `yaml:"region_count"`
	CentroidCount uint16    `yaml:"centroid_count"`
}

// Variable names the default parameter set's three sweepable
// dimensions.
type Variable struct {
	Radius        Sweep `yaml:"radius"`
	RegionCount   Sweep `yaml:"region_count"`
	CentroidCount Sweep `yaml:"centroid_count"`
}

// DefaultSet sweeps radius, region count, and centroid count
// independently around a shared fixed baseline.
type DefaultSet struct {
	Fixed    Fixed    `yaml:"fixed"`
	Variable Variable `yaml:"variable"`
}

// StressFixed is the stress parameter set's baseline: no radius (it is
// the swept dimension) or centroid count (stress never drives Voronoi).
type StressFixed struct {
	Extent      [2]uint32 `yaml:"extent"`
	RegionCount uint8     `yaml:"region_count"`
}

// StressVariable sweeps only radius, typically across a wider range
// than the default set, to find the point the engines degrade.
type StressVariable struct {
	Radius Sweep `yaml:"radius"`
}

// StressSet sweeps radius alone, for finding an engine's breaking
// point at a fixed extent and region count.
type StressSet struct {
	Fixed    StressFixed    `yaml:"fixed"`
	Variable StressVariable `yaml:"variable"`
}

// ParameterSet bundles the two sweep profiles a run can execute.
type ParameterSet struct {
	Default DefaultSet `yaml:"default"`
	Stress  StressSet  `yaml:"stress"`
}

// Config is the top-level profiler configuration.
type Config struct {
	Seed               uint64       `yaml:"seed"`
	ThreadAffinityMask uint64       `yaml:"thread_affinity_mask"`
	ParameterSet       ParameterSet `yaml:"parameter_set"`
}

// Load reads and parses a YAML configuration file, expanding
// environment variable references before unmarshalling.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, drrerr.Wrap(drrerr.SystemFailure, fmt.Sprintf("config: reading %s", path), err)
	}
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, drrerr.Wrap(drrerr.SystemFailure, fmt.Sprintf("config: parsing %s", path), err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration back out as YAML, e.g. for the
// profiler to snapshot the resolved run configuration alongside its
// output.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return drrerr.Wrap(drrerr.SystemFailure, "config: marshalling", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return drrerr.Wrap(drrerr.SystemFailure, fmt.Sprintf("config: writing %s", path), err)
	}
	return nil
}

// Validate checks the fixed baselines are usable; the profiler catches
// any further per-job validation failures (an out-of-range sweep
// point) from the engines themselves.
func (c *Config) Validate() error {
	if c.ParameterSet.Default.Fixed.Extent[0] == 0 || c.ParameterSet.Default.Fixed.Extent[1] == 0 {
		return drrerr.New(drrerr.InvalidParameter, "config: parameter_set.default.fixed.extent must be positive in both dimensions")
	}
	if c.ParameterSet.Default.Fixed.RegionCount == 0 {
		return drrerr.New(drrerr.InvalidParameter, "config: parameter_set.default.fixed.region_count must be positive")
	}
	if c.ParameterSet.Stress.Fixed.Extent[0] == 0 || c.ParameterSet.Stress.Fixed.Extent[1] == 0 {
		return drrerr.New(drrerr.InvalidParameter, "config: parameter_set.stress.fixed.extent must be positive in both dimensions")
	}
	if c.ParameterSet.Stress.Fixed.RegionCount == 0 {
		return drrerr.New(drrerr.InvalidParameter, "config: parameter_set.stress.fixed.region_count must be positive")
	}
	return nil
}
