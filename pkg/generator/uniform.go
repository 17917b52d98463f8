package generator

import (
	"github.com/jihwankim/dregsplat/pkg/drrerr"
	"github.com/jihwankim/dregsplat/pkg/regionfield"
	"github.com/jihwankim/dregsplat/pkg/rng"
)

// Uniform draws each cell independently from UniformInt[0, RegionCount)
// using an engine keyed by the flat index, making it parallel-safe: any
// cell's value depends only on its own coordinate, never on iteration
// order.
type Uniform struct{}

func (Uniform) Name() string { return "uniform" }

func (Uniform) Generate(rf *regionfield.Regionfield, info Info) error {
	secret := secretFor(info)
	w, h := rf.Extent()
	regionCount := uint32(rf.RegionCount())
	if regionCount == 0 {
		return drrerr.New(drrerr.InvalidParameter, "uniform: target regionfield has no region count set")
	}

	for i := 0; i < w*h; i++ {
		e := rng.NewEngine(secret, uint64(i))
		rf.Span()[i] = regionfield.Identifier(rng.UniformUint32(e, regionCount))
	}
	return nil
}
