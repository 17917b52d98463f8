package splatting

import (
	"github.com/jihwankim/dregsplat/pkg/kernel"
	"github.com/jihwankim/dregsplat/pkg/regionfield"
)

// Systematic samples the kernel window on a regular grid starting at
// FirstSample and stepping by Interval, instead of visiting every
// cell.
type Systematic struct {
	Radius      int
	FirstSample [2]int
	Interval    [2]int
}

func (Systematic) Name() string       { return "systematic" }
func (Systematic) IsTransposed() bool { return false }

func (s Systematic) MinimumOffset() [2]int {
	return [2]int{s.Radius, s.Radius}
}

func (s Systematic) MinimumRegionfieldDimension(offset, extent [2]int) [2]int {
	return [2]int{offset[0] + extent[0] + s.Radius, offset[1] + extent[1] + s.Radius}
}

func (s Systematic) Invoke(rf *regionfield.Regionfield, offset, extent [2]int, scratch *Scratch) (Output, error) {
	if s.Radius <= 0 {
		return Output{}, invalidRadius("systematic", s.Radius)
	}
	d := Diameter(s.Radius)
	if s.Interval[0] <= 0 || s.Interval[1] <= 0 {
		return Output{}, invalidParameter("systematic", "interval components must be positive")
	}
	if s.FirstSample[0] >= d || s.FirstSample[1] >= d {
		return Output{}, invalidParameter("systematic", "first_sample must be less than the kernel diameter")
	}
	if err := checkOffsetExtent("systematic", offset, extent, s.MinimumOffset()); err != nil {
		return Output{}, err
	}
	minDim := s.MinimumRegionfieldDimension(offset, extent)
	if err := checkDimension("systematic", rf, minDim[0], minDim[1]); err != nil {
		return Output{}, err
	}

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
			samples := 0
			for lr := s.FirstSample[0]; lr < d; lr += s.Interval[0] {
				for lc := s.FirstSample[1]; lc < d; lc += s.Interval[1] {
					wr := row - s.Radius + lr
					wc := col - s.Radius + lc
					acc.Increment(rf.At(wc, wr))
					samples++
				}
			}
			maskToDense(acc, float32(samples), mask)
			if err := scratch.writeCellMask(cellIndex, dc, dr, mask); err != nil {
				return Output{}, err
			}
			cellIndex++
		}
	}
	return scratch.Output(), nil
}
