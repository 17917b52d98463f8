// Package generator implements the regionfield generators: Uniform,
// Voronoi diagram, and Diamond-Square. Each fully overwrites every cell
// of its target Regionfield, deterministically in (seed, extent,
// region count), independent of how the work is scheduled.
package generator

import (
	"github.com/jihwankim/dregsplat/pkg/regionfield"
	"github.com/jihwankim/dregsplat/pkg/rng"
)

// Info carries the per-call generation parameters shared by every
// generator.
type Info struct {
	Seed uint64
}

// Generator fills a Regionfield deterministically given Info.
type Generator interface {
	// Name is a short tag identifying the generator, used by the
	// profiler's job titles and CSV rows.
	Name() string
	Generate(rf *regionfield.Regionfield, info Info) error
}

// applicationSecret is the fixed entropy baked into the engine,
// independent of any run's seed; it exists only so that two different
// seeds cannot collide on a predictable secret. It has no meaning
// beyond being a fixed, non-zero byte sequence.
var applicationSecret = func() rng.ApplicationSecret {
	var s rng.ApplicationSecret
	for i := range s {
		s[i] = byte(i*37 + 11)
	}
	return s
}()

// secretFor derives the xxHash3 secret for a generation run from Info.
func secretFor(info Info) rng.Secret {
	return rng.GenerateSecret(applicationSecret, info.Seed)
}
