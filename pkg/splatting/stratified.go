package splatting

import (
	"math"

	"github.com/jihwankim/dregsplat/pkg/kernel"
	"github.com/jihwankim/dregsplat/pkg/regionfield"
	"github.com/jihwankim/dregsplat/pkg/rng"
)

// Stratified divides the kernel window into StratumCount×StratumCount
// equal-size strata and draws one random coordinate per stratum, per
// output cell — the engine is keyed by both the cell's absolute
// position and the stratum's floored origin, so overlapping strata
// across neighbouring cells never share RNG state.
type Stratified struct {
	Radius       int
	StratumCount int
	Seed         uint64
}

func (Stratified) Name() string       { return "stratified" }
func (Stratified) IsTransposed() bool { return false }

func (s Stratified) MinimumOffset() [2]int {
	return [2]int{s.Radius, s.Radius}
}

func (s Stratified) MinimumRegionfieldDimension(offset, extent [2]int) [2]int {
	return [2]int{offset[0] + extent[0] + s.Radius, offset[1] + extent[1] + s.Radius}
}

func (s Stratified) Invoke(rf *regionfield.Regionfield, offset, extent [2]int, scratch *Scratch) (Output, error) {
	if s.Radius <= 0 {
		return Output{}, invalidRadius("stratified", s.Radius)
	}
	if s.StratumCount <= 0 {
		return Output{}, invalidParameter("stratified", "stratum_count must be positive")
	}
	if err := checkOffsetExtent("stratified", offset, extent, s.MinimumOffset()); err != nil {
		return Output{}, err
	}
	minDim := s.MinimumRegionfieldDimension(offset, extent)
	if err := checkDimension("stratified", rf, minDim[0], minDim[1]); err != nil {
		return Output{}, err
	}

	d := Diameter(s.Radius)
	secret := secretFor(s.Seed)
	stratumWidth := float64(d) / float64(s.StratumCount)
	norm := float32(s.StratumCount * s.StratumCount)

	regionCount := rf.RegionCount()
	if err := scratch.resizeKernel(regionCount); err != nil {
		return Output{}, err
	}
	if err := scratch.resizeOutput(extent[1], extent[0], regionCount); err != nil {
		return Output{}, err
	}

	acc := scratch.accumulator()
	mask := make([]kernel.Mask, regionCount)
	cellIndex := 0
	for dr := 0; dr < extent[0]; dr++ {
		row := offset[0] + dr
		for dc := 0; dc < extent[1]; dc++ {
			col := offset[1] + dc
			acc.Clear()
			for si := 0; si < s.StratumCount; si++ {
				beginR := float64(si) * stratumWidth
				flooredR := int(math.Floor(beginR))
				for sj := 0; sj < s.StratumCount; sj++ {
					beginC := float64(sj) * stratumWidth
					flooredC := int(math.Floor(beginC))

					engine := rng.NewEngine(secret, uint64(row), uint64(col), uint32(flooredR), uint32(flooredC))
					fracR := float64(engine.Next()) / (float64(math.MaxUint64) + 1)
					fracC := float64(engine.Next()) / (float64(math.MaxUint64) + 1)

					lr := clampLocal(int(math.Floor(beginR+fracR*stratumWidth)), d)
					lc := clampLocal(int(math.Floor(beginC+fracC*stratumWidth)), d)

					wr := row - s.Radius + lr
					wc := col - s.Radius + lc
					acc.Increment(rf.At(wc, wr))
				}
			}
			maskToDense(acc, norm, mask)
			if err := scratch.writeCellMask(cellIndex, dc, dr, mask); err != nil {
				return Output{}, err
			}
			cellIndex++
		}
	}
	return scratch.Output(), nil
}

func clampLocal(v, d int) int {
	if v < 0 {
		return 0
	}
	if v >= d {
		return d - 1
	}
	return v
}
