package splatting

import (
	"github.com/jihwankim/dregsplat/pkg/kernel"
	"github.com/jihwankim/dregsplat/pkg/regionfield"
	"github.com/jihwankim/dregsplat/pkg/rng"
)

// Stochastic samples Sample cells of the kernel window without
// replacement per output cell, by Fisher-Yates shuffling a buffer of
// the d² local window offsets keyed by the cell's absolute position.
type Stochastic struct {
	Radius int
	Sample int
	Seed   uint64
}

func (Stochastic) Name() string       { return "stochastic" }
func (Stochastic) IsTransposed() bool { return false }

func (s Stochastic) MinimumOffset() [2]int {
	return [2]int{s.Radius, s.Radius}
}

func (s Stochastic) MinimumRegionfieldDimension(offset, extent [2]int) [2]int {
	return [2]int{offset[0] + extent[0] + s.Radius, offset[1] + extent[1] + s.Radius}
}

func (s Stochastic) Invoke(rf *regionfield.Regionfield, offset, extent [2]int, scratch *Scratch) (Output, error) {
	if s.Radius <= 0 {
		return Output{}, invalidRadius("stochastic", s.Radius)
	}
	d := Diameter(s.Radius)
	if s.Sample <= 0 || s.Sample > d*d {
		return Output{}, invalidParameter("stochastic", "sample must be in (0, d^2]")
	}
	if err := checkOffsetExtent("stochastic", offset, extent, s.MinimumOffset()); err != nil {
		return Output{}, err
	}
	minDim := s.MinimumRegionfieldDimension(offset, extent)
	if err := checkDimension("stochastic", rf, minDim[0], minDim[1]); err != nil {
		return Output{}, err
	}

	secret := secretFor(s.Seed)
	master := make([][2]int, 0, d*d)
	for lr := 0; lr < d; lr++ {
		for lc := 0; lc < d; lc++ {
			master = append(master, [2]int{lr, lc})
		}
	}
	buf := make([][2]int, len(master))

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
			copy(buf, master)
			engine := rng.NewEngine(secret, uint64(row), uint64(col))
			for i := len(buf) - 1; i > 0; i-- {
				j := int(rng.UniformUint32(engine, uint32(i+1)))
				buf[i], buf[j] = buf[j], buf[i]
			}

			acc.Clear()
			for k := 0; k < s.Sample; k++ {
				lr, lc := buf[k][0], buf[k][1]
				wr := row - s.Radius + lr
				wc := col - s.Radius + lc
				acc.Increment(rf.At(wc, wr))
			}
			maskToDense(acc, float32(s.Sample), mask)
			if err := scratch.writeCellMask(cellIndex, dc, dr, mask); err != nil {
				return Output{}, err
			}
			cellIndex++
		}
	}
	return scratch.Output(), nil
}
