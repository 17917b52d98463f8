// Package profiler schedules sweeps of the splatting engines across
// container traits, regionfield generators and swept parameter values,
// benchmarking each and writing the results to CSV.
package profiler

import (
	"fmt"

	"github.com/jihwankim/dregsplat/pkg/config"
	"github.com/jihwankim/dregsplat/pkg/generator"
	"github.com/jihwankim/dregsplat/pkg/splatting"
)

// Dimension names the parameter a job sweeps while holding the rest of
// the baseline fixed.
type Dimension string

const (
	DimensionRadius        Dimension = "radius"
	DimensionRegionCount   Dimension = "region_count"
	DimensionCentroidCount Dimension = "centroid_count"
)

// EngineFamily names one of the five convolution algorithms,
// independent of the radius/seed a particular sweep point needs it
// built with.
type EngineFamily string

const (
	EngineVanilla    EngineFamily = "vanilla"
	EngineFast       EngineFamily = "fast"
	EngineSystematic EngineFamily = "systematic"
	EngineStratified EngineFamily = "stratified"
	EngineStochastic EngineFamily = "stochastic"
)

func engineFamilies() []EngineFamily {
	return []EngineFamily{EngineVanilla, EngineFast, EngineSystematic, EngineStratified, EngineStochastic}
}

// buildEngine constructs the concrete Engine for family at radius,
// keyed by seed for the sampled algorithms.
func buildEngine(family EngineFamily, radius int, seed uint64) splatting.Engine {
	d := splatting.Diameter(radius)
	switch family {
	case EngineVanilla:
		return splatting.Vanilla{Radius: radius}
	case EngineFast:
		return splatting.Fast{Radius: radius}
	case EngineSystematic:
		return splatting.Systematic{Radius: radius, FirstSample: [2]int{0, 0}, Interval: [2]int{2, 2}}
	case EngineStratified:
		return splatting.Stratified{Radius: radius, StratumCount: 2, Seed: seed}
	default:
		sample := (d * d) / 2
		if sample < 1 {
			sample = 1
		}
		return splatting.Stochastic{Radius: radius, Sample: sample, Seed: seed}
	}
}

// GeneratorFamily names one of the three regionfield generators.
type GeneratorFamily string

const (
	GeneratorUniform       GeneratorFamily = "uniform"
	GeneratorVoronoi       GeneratorFamily = "voronoi"
	GeneratorDiamondSquare GeneratorFamily = "diamond-square"
)

func generatorFamilies() []GeneratorFamily {
	return []GeneratorFamily{GeneratorUniform, GeneratorVoronoi, GeneratorDiamondSquare}
}

// defaultCentroidCount seeds Voronoi generation for jobs that do not
// themselves sweep centroid count.
const defaultCentroidCount = 8

// buildGenerator constructs the concrete Generator for family given the
// centroid count in effect for this sweep point (ignored outside Voronoi).
func buildGenerator(family GeneratorFamily, centroidCount int) generator.Generator {
	switch family {
	case GeneratorVoronoi:
		return generator.Voronoi{CentroidCount: centroidCount}
	case GeneratorDiamondSquare:
		return generator.DiamondSquare{InitialExtent: [2]int{2, 2}, Iteration: []int{1, 1, 1, 1, 1, 1}}
	default:
		return generator.Uniform{}
	}
}

// Job is one sweep: a fixed (engine family, trait, generator family)
// triple, varying Dimension across Points while holding the rest of the
// baseline still.
type Job struct {
	ID            int
	SweepSet      string // "default" or "stress"
	Dimension     Dimension
	EngineFamily  EngineFamily
	Trait         splatting.Trait
	GenFamily     GeneratorFamily
	Extent        [2]uint32 // (width, height), as config stores it
	Radius        uint32
	RegionCount   uint8
	CentroidCount uint16
	Points        []uint32
}

// Title is the job's human-readable label for the index CSV.
func (j Job) Title() string {
	return fmt.Sprintf("%s/%s/%s/%s/%s", j.SweepSet, j.Dimension, j.GenFamily, j.EngineFamily, j.Trait.Tag())
}

func traits() []splatting.Trait { return []splatting.Trait{splatting.DD, splatting.DS, splatting.SS} }

// BuildJobs expands cfg's default and stress parameter sets into the
// full job list: one job per (dimension, trait, engine, generator)
// combination, per spec.
func BuildJobs(cfg *config.Config) []Job {
	var jobs []Job
	next := 0
	newID := func() int { id := next; next++; return id }

	def := cfg.ParameterSet.Default
	defaultDims := []struct {
		dim   Dimension
		sweep config.Sweep
	}{
		{DimensionRadius, def.Variable.Radius},
		{DimensionRegionCount, def.Variable.RegionCount},
		{DimensionCentroidCount, def.Variable.CentroidCount},
	}
	for _, dd := range defaultDims {
		points := dd.sweep.Points()
		for _, trait := range traits() {
			for _, eng := range engineFamilies() {
				for _, gen := range generatorFamilies() {
					jobs = append(jobs, Job{
						ID: newID(), SweepSet: "default", Dimension: dd.dim,
						EngineFamily: eng, Trait: trait, GenFamily: gen,
						Extent: def.Fixed.Extent, Radius: def.Fixed.Radius,
						RegionCount: def.Fixed.RegionCount, CentroidCount: def.Fixed.CentroidCount,
						Points: points,
					})
				}
			}
		}
	}

	stress := cfg.ParameterSet.Stress
	for _, trait := range traits() {
		for _, eng := range engineFamilies() {
			for _, gen := range generatorFamilies() {
				jobs = append(jobs, Job{
					ID: newID(), SweepSet: "stress", Dimension: DimensionRadius,
					EngineFamily: eng, Trait: trait, GenFamily: gen,
					Extent: stress.Fixed.Extent, RegionCount: stress.Fixed.RegionCount,
					Points: stress.Variable.Radius.Points(),
				})
			}
		}
	}

	return jobs
}
