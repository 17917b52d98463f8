// Package scm implements the splatting coefficient matrix: a logical
// 3D tensor M[width, height, region] with the region axis contiguous,
// in dense and sparse (CSR-along-region-axis) storage.
package scm

import (
	"fmt"
	"iter"

	"github.com/jihwankim/dregsplat/pkg/drrerr"
	"github.com/jihwankim/dregsplat/pkg/kernel"
)

// Value is a normalised splatting coefficient.
type Value = kernel.Mask

// Dense is a contiguous width*height*regionCount array with the region
// axis stride 1.
type Dense struct {
	width, height, regionCount int
	data                       []Value
}

// NewDense returns an unresized Dense SCM.
func NewDense() *Dense {
	return &Dense{}
}

// Resize invalidates contents and pre-allocates width*height*regionCount
// storage.
func (s *Dense) Resize(width, height, regionCount int) error {
	if err := checkExtent(width, height); err != nil {
		return err
	}
	if err := checkRegionCount(regionCount); err != nil {
		return err
	}
	cells := width * height * regionCount
	if cap(s.data) >= cells {
		s.data = s.data[:cells]
	} else {
		s.data = make([]Value, cells)
	}
	for i := range s.data {
		s.data[i] = 0
	}
	s.width, s.height, s.regionCount = width, height, regionCount
	return nil
}

// Extent reports (width, height, regionCount).
func (s *Dense) Extent() (width, height, regionCount int) {
	return s.width, s.height, s.regionCount
}

// Span returns the flat backing storage.
func (s *Dense) Span() []Value {
	return s.data
}

// Cell returns the length-regionCount view for cell (x, y); mutating it
// mutates the SCM in place.
func (s *Dense) Cell(x, y int) []Value {
	i := (y*s.width + x) * s.regionCount
	return s.data[i : i+s.regionCount]
}

// SetCell copies values into cell (x, y); len(values) must equal
// regionCount.
func (s *Dense) SetCell(x, y int, values []Value) error {
	if len(values) != s.regionCount {
		return drrerr.New(drrerr.InvalidParameter, fmt.Sprintf("scm: SetCell given %d values, want %d", len(values), s.regionCount))
	}
	copy(s.Cell(x, y), values)
	return nil
}

// Range2D returns a lazy view over every cell coordinate and its
// length-regionCount view, in row-major order.
func (s *Dense) Range2D() iter.Seq2[[2]int, []Value] {
	return func(yield func([2]int, []Value) bool) {
		for y := 0; y < s.height; y++ {
			for x := 0; x < s.width; x++ {
				if !yield([2]int{x, y}, s.Cell(x, y)) {
					return
				}
			}
		}
	}
}

func checkExtent(width, height int) error {
	if width <= 0 || height <= 0 {
		return drrerr.New(drrerr.InvalidExtent, fmt.Sprintf("scm: extent (%d, %d) must be positive in both dimensions", width, height))
	}
	return nil
}

func checkRegionCount(regionCount int) error {
	if regionCount <= 0 {
		return drrerr.New(drrerr.InvalidParameter, fmt.Sprintf("scm: region count %d must be positive", regionCount))
	}
	return nil
}
