// Package splatting implements the convolution engines that turn a
// Regionfield window into a normalised splatting coefficient matrix
// (SCM): vanilla and fast full convolution, plus systematic,
// stratified and stochastic sampled convolution.
//
// Every algorithm shares the same coordinate convention as the rest of
// the package suite's reference scenarios: offset and extent tuples
// are (row, column) against the regionfield, i.e. component 0 walks
// the field's y axis and component 1 its x axis — matching the
// glossary's "Regionfield. 2D matrix s[r,c]", not Regionfield.At's own
// (x, y) argument order.
package splatting

import (
	"fmt"
	"iter"

	"github.com/jihwankim/dregsplat/pkg/drrerr"
	"github.com/jihwankim/dregsplat/pkg/kernel"
	"github.com/jihwankim/dregsplat/pkg/regionfield"
	"github.com/jihwankim/dregsplat/pkg/rng"
	"github.com/jihwankim/dregsplat/pkg/scm"
)

// applicationSecret is the fixed entropy baked into the sampled
// algorithms' engines, independent of the caller's seed; kept separate
// from the generator package's own constant since the two are
// unrelated entropy domains.
var applicationSecret = func() rng.ApplicationSecret {
	var s rng.ApplicationSecret
	for i := range s {
		s[i] = byte(i*53 + 7)
	}
	return s
}()

// secretFor derives the xxHash3 secret for a sampled algorithm's run.
func secretFor(seed uint64) rng.Secret {
	return rng.GenerateSecret(applicationSecret, seed)
}

// Trait selects the (kernel storage, output storage) pair an algorithm
// is invoked with. The SD combination (sparse kernel, dense output) is
// not supported.
type Trait int

const (
	DD Trait = iota // dense kernel, dense output
	DS              // dense kernel, sparse output
	SS              // sparse kernel, sparse output
)

// Tag is the two-character container trait tag used by CSV reporting.
func (t Trait) Tag() string {
	switch t {
	case DD:
		return "DD"
	case DS:
		return "DS"
	case SS:
		return "SS"
	default:
		return "??"
	}
}

// Diameter and Area convert a radius into the square kernel window's
// side length and cell count.
func Diameter(radius int) int { return 2*radius + 1 }
func Area(radius int) int     { d := Diameter(radius); return d * d }

// Output is the result of an Invoke call: exactly one of Dense or
// Sparse is set, matching the trait the algorithm ran under.
type Output struct {
	Dense  *scm.Dense
	Sparse *scm.Sparse
}

// Engine is the common shape of Vanilla, Fast, Systematic, Stratified
// and Stochastic, letting the profiler drive any of them uniformly.
type Engine interface {
	Name() string
	IsTransposed() bool
	MinimumOffset() [2]int
	MinimumRegionfieldDimension(offset, extent [2]int) [2]int
	Invoke(rf *regionfield.Regionfield, offset, extent [2]int, scratch *Scratch) (Output, error)
}

var (
	_ Engine = Vanilla{}
	_ Engine = Fast{}
	_ Engine = Systematic{}
	_ Engine = Stratified{}
	_ Engine = Stochastic{}
)

// accumulator generalises kernel.Dense and kernel.Sparse so the
// algorithms below can drive either without a type switch in every
// inner loop.
type accumulator interface {
	Clear()
	Increment(id uint8)
	Decrement(id uint8) error
	IncrementDenseRange(values []kernel.Importance)
	DecrementDenseRange(values []kernel.Importance) error
	Snapshot(dst []kernel.Importance)
	Mask(normFactor float32) iter.Seq2[uint8, kernel.Mask]
}

var (
	_ accumulator = (*kernel.Dense)(nil)
	_ accumulator = (*kernel.Sparse)(nil)
)

// maskToDense materialises acc's current mask into dst, which must be
// RegionCount() long; absent regions are zeroed.
func maskToDense(acc accumulator, normFactor float32, dst []kernel.Mask) {
	for i := range dst {
		dst[i] = 0
	}
	for id, m := range acc.Mask(normFactor) {
		dst[id] = m
	}
}

// Scratch holds the reusable kernel accumulator and output SCM for a
// fixed container trait, so a profiler sweep can call Invoke
// repeatedly without reallocating on every call.
type Scratch struct {
	trait Trait
	kd    *kernel.Dense
	ks    *kernel.Sparse
	od    *scm.Dense
	os    *scm.Sparse
}

// NewScratch allocates an empty scratch for trait; Invoke resizes it
// lazily on first use.
func NewScratch(trait Trait) *Scratch {
	s := &Scratch{trait: trait}
	switch trait {
	case SS:
		s.ks = kernel.NewSparse()
		s.os = scm.NewSparse()
	case DS:
		s.kd = kernel.NewDense()
		s.os = scm.NewSparse()
	default:
		s.kd = kernel.NewDense()
		s.od = scm.NewDense()
	}
	return s
}

func (s *Scratch) accumulator() accumulator {
	if s.trait == SS {
		return s.ks
	}
	return s.kd
}

func (s *Scratch) resizeKernel(regionCount int) error {
	if s.trait == SS {
		return s.ks.Resize(regionCount)
	}
	return s.kd.Resize(regionCount)
}

func (s *Scratch) resizeOutput(width, height, regionCount int) error {
	if s.trait == DD {
		return s.od.Resize(width, height, regionCount)
	}
	return s.os.Resize(width, height, regionCount)
}

// writeCellMask writes a length-regionCount dense mask to output cell
// (x, y); cellIndex is the row-major index required by sparse output's
// sequential-write contract.
func (s *Scratch) writeCellMask(cellIndex, x, y int, mask []kernel.Mask) error {
	if s.trait == DD {
		copy(s.od.Cell(x, y), mask)
		return nil
	}
	return s.os.WriteCellDense(cellIndex, mask)
}

// Output returns a reference to the scratch's output SCM.
func (s *Scratch) Output() Output {
	if s.trait == DD {
		return Output{Dense: s.od}
	}
	return Output{Sparse: s.os}
}

// SizeBytes approximates the reusable scratch footprint, for the
// profiler's memory column.
func (s *Scratch) SizeBytes() int {
	n := 0
	if s.kd != nil {
		n += len(s.kd.Span()) * 4
	}
	if s.ks != nil {
		n += len(s.ks.Span()) * 5
	}
	if s.od != nil {
		n += len(s.od.Span()) * 4
	}
	if s.os != nil {
		w, h, _ := s.os.Extent()
		n += (w*h + 1) * 4
	}
	return n
}

// checkDimension validates that rf is at least (minRows, minCols) —
// note the (row, col) order, not Regionfield.Extent's (w, h) — and
// carries a positive region count.
func checkDimension(name string, rf *regionfield.Regionfield, minRows, minCols int) error {
	w, h := rf.Extent()
	if h < minRows || w < minCols {
		return drrerr.New(drrerr.InvalidParameter, fmt.Sprintf("%s: regionfield (%d rows, %d cols) smaller than required (%d rows, %d cols)", name, h, w, minRows, minCols))
	}
	if rf.RegionCount() <= 0 {
		return drrerr.New(drrerr.InvalidParameter, fmt.Sprintf("%s: regionfield has no region count set", name))
	}
	return nil
}

func checkOffsetExtent(name string, offset, extent, minOffset [2]int) error {
	if extent[0] <= 0 || extent[1] <= 0 {
		return drrerr.New(drrerr.InvalidParameter, fmt.Sprintf("%s: extent %v must be positive in both components", name, extent))
	}
	if offset[0] < minOffset[0] || offset[1] < minOffset[1] {
		return drrerr.New(drrerr.InvalidParameter, fmt.Sprintf("%s: offset %v smaller than minimum %v", name, offset, minOffset))
	}
	return nil
}
