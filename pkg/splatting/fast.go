package splatting

import (
	"github.com/jihwankim/dregsplat/pkg/kernel"
	"github.com/jihwankim/dregsplat/pkg/regionfield"
)

// Fast is the separated, sliding-window full convolution: a vertical
// pass of running row sums followed by a horizontal pass of running
// column sums, sharing one kernel accumulator. Because the horizontal
// pass's natural (row-outer, column-inner) computation order does not
// match the output SCM's own row-major write order once the axes are
// swapped, masks are buffered during the sliding computation and
// emitted to the SCM in a second, transposed-order pass.
type Fast struct {
	Radius int
}

func (Fast) Name() string       { return "fast" }
func (Fast) IsTransposed() bool { return true }

func (f Fast) MinimumOffset() [2]int {
	return [2]int{f.Radius, f.Radius}
}

func (f Fast) MinimumRegionfieldDimension(offset, extent [2]int) [2]int {
	return [2]int{offset[0] + extent[0] + f.Radius, offset[1] + extent[1] + f.Radius}
}

// Invoke fills scratch's output SCM with the same normalised occupancy
// masks as Vanilla, but the SCM's own (width, height) are swapped
// (width = extent[0], height = extent[1]): cell (dr, oc) of the output
// holds the mask for regionfield row offset[0]+dr, column offset[1]+oc.
func (f Fast) Invoke(rf *regionfield.Regionfield, offset, extent [2]int, scratch *Scratch) (Output, error) {
	if f.Radius <= 0 {
		return Output{}, invalidRadius("fast", f.Radius)
	}
	if err := checkOffsetExtent("fast", offset, extent, f.MinimumOffset()); err != nil {
		return Output{}, err
	}
	minDim := f.MinimumRegionfieldDimension(offset, extent)
	if err := checkDimension("fast", rf, minDim[0], minDim[1]); err != nil {
		return Output{}, err
	}

	d := Diameter(f.Radius)
	area := float32(d * d)
	regionCount := rf.RegionCount()
	if err := scratch.resizeKernel(regionCount); err != nil {
		return Output{}, err
	}
	rowsOut, colsOut := extent[0], extent[1]
	if err := scratch.resizeOutput(rowsOut, colsOut, regionCount); err != nil {
		return Output{}, err
	}

	rowOffset, colOffset := offset[0], offset[1]
	haloCols := colsOut + 2*f.Radius
	acc := scratch.accumulator()

	// Vertical pass: one running row-sum per column of the halo range,
	// each holding rowsOut dense region vectors (one per output row).
	vert := make([][]kernel.Importance, haloCols)
	for ci := 0; ci < haloCols; ci++ {
		col := colOffset - f.Radius + ci
		buf := make([]kernel.Importance, rowsOut*regionCount)
		acc.Clear()
		for wr := rowOffset - f.Radius; wr <= rowOffset+f.Radius; wr++ {
			acc.Increment(rf.At(col, wr))
		}
		acc.Snapshot(buf[0:regionCount])
		for dr := 1; dr < rowsOut; dr++ {
			leaving := rowOffset - f.Radius + dr - 1
			entering := rowOffset + f.Radius + dr
			if err := acc.Decrement(rf.At(col, leaving)); err != nil {
				return Output{}, err
			}
			acc.Increment(rf.At(col, entering))
			acc.Snapshot(buf[dr*regionCount : (dr+1)*regionCount])
		}
		vert[ci] = buf
	}

	// Horizontal pass: reuse acc, row by row, sliding across columns.
	maskBuf := make([]kernel.Mask, rowsOut*colsOut*regionCount)
	for dr := 0; dr < rowsOut; dr++ {
		acc.Clear()
		for ci := 0; ci < d; ci++ {
			acc.IncrementDenseRange(vert[ci][dr*regionCount : (dr+1)*regionCount])
		}
		maskToDense(acc, area, maskBuf[(dr*colsOut)*regionCount:(dr*colsOut+1)*regionCount])
		for oc := 1; oc < colsOut; oc++ {
			leaving := vert[oc-1][dr*regionCount : (dr+1)*regionCount]
			entering := vert[oc-1+d][dr*regionCount : (dr+1)*regionCount]
			if err := acc.DecrementDenseRange(leaving); err != nil {
				return Output{}, err
			}
			acc.IncrementDenseRange(entering)
			start := (dr*colsOut + oc) * regionCount
			maskToDense(acc, area, maskBuf[start:start+regionCount])
		}
	}

	// Emit in the output SCM's own row-major order: y = oc outer, x = dr
	// inner, since the SCM's width is rowsOut.
	cellIndex := 0
	for oc := 0; oc < colsOut; oc++ {
		for dr := 0; dr < rowsOut; dr++ {
			start := (dr*colsOut + oc) * regionCount
			if err := scratch.writeCellMask(cellIndex, dr, oc, maskBuf[start:start+regionCount]); err != nil {
				return Output{}, err
			}
			cellIndex++
		}
	}
	return scratch.Output(), nil
}
