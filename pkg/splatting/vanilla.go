package splatting

import (
	"github.com/jihwankim/dregsplat/pkg/kernel"
	"github.com/jihwankim/dregsplat/pkg/regionfield"
)

// Vanilla is the brute-force full convolution: every cell of the d×d
// window is visited for every output cell.
type Vanilla struct {
	Radius int
}

func (Vanilla) Name() string        { return "vanilla" }
func (Vanilla) IsTransposed() bool  { return false }
func (v Vanilla) MinimumOffset() [2]int {
	return [2]int{v.Radius, v.Radius}
}

// MinimumRegionfieldDimension returns (rows, cols) needed, matching
// offset/extent's (row, col) ordering.
func (v Vanilla) MinimumRegionfieldDimension(offset, extent [2]int) [2]int {
	return [2]int{offset[0] + extent[0] + v.Radius, offset[1] + extent[1] + v.Radius}
}

// Invoke fills scratch's output SCM with the normalised occupancy mask
// of every extent[0]×extent[1] output cell's d×d window, and returns a
// reference to it.
func (v Vanilla) Invoke(rf *regionfield.Regionfield, offset, extent [2]int, scratch *Scratch) (Output, error) {
	if v.Radius <= 0 {
		return Output{}, invalidRadius("vanilla", v.Radius)
	}
	if err := checkOffsetExtent("vanilla", offset, extent, v.MinimumOffset()); err != nil {
		return Output{}, err
	}
	minDim := v.MinimumRegionfieldDimension(offset, extent)
	if err := checkDimension("vanilla", rf, minDim[0], minDim[1]); err != nil {
		return Output{}, err
	}

	area := float32(Area(v.Radius))
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
			for wr := row - v.Radius; wr <= row+v.Radius; wr++ {
				for wc := col - v.Radius; wc <= col+v.Radius; wc++ {
					acc.Increment(rf.At(wc, wr))
				}
			}
			maskToDense(acc, area, mask)
			if err := scratch.writeCellMask(cellIndex, dc, dr, mask); err != nil {
				return Output{}, err
			}
			cellIndex++
		}
	}
	return scratch.Output(), nil
}
