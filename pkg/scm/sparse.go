package scm

import (
	"fmt"
	"iter"
	"slices"

	"github.com/jihwankim/dregsplat/pkg/drrerr"
	"github.com/jihwankim/dregsplat/pkg/sparse"
)

// Element is a sparse SCM entry.
type Element = sparse.Element[Value]

// Sparse is partially sparse on the region axis only: an offset array O
// of size width*height+1 indexes into a flat array V of Element. Cell i's
// entries are V[O[i]:O[i+1]].
type Sparse struct {
	width, height, regionCount int
	o                          []int32
	v                          []Element
	nextCell                   int
}

// NewSparse returns an unresized Sparse SCM.
func NewSparse() *Sparse {
	return &Sparse{}
}

// Resize invalidates contents: it zeroes every offset and empties V,
// reserving one V entry per cell as a starting-capacity heuristic (grown
// by append thereafter). Every cell must then be written exactly once,
// in row-major order, via WriteCellSparse/WriteCellDense before the SCM
// is read.
func (s *Sparse) Resize(width, height, regionCount int) error {
	if err := checkExtent(width, height); err != nil {
		return err
	}
	if err := checkRegionCount(regionCount); err != nil {
		return err
	}
	cells := width * height
	if cap(s.o) >= cells+1 {
		s.o = s.o[:cells+1]
	} else {
		s.o = make([]int32, cells+1)
	}
	for i := range s.o {
		s.o[i] = 0
	}
	s.v = make([]Element, 0, cells)
	s.width, s.height, s.regionCount = width, height, regionCount
	s.nextCell = 0
	return nil
}

// Extent reports (width, height, regionCount).
func (s *Sparse) Extent() (width, height, regionCount int) {
	return s.width, s.height, s.regionCount
}

// Cells returns width*height.
func (s *Sparse) Cells() int {
	return s.width * s.height
}

// CellAt returns cell (x, y)'s compact entries, V[O[i]:O[i+1]].
func (s *Sparse) CellAt(x, y int) []Element {
	return s.CellIndex(y*s.width + x)
}

// CellIndex returns the i'th cell's compact entries in row-major order.
func (s *Sparse) CellIndex(i int) []Element {
	return s.v[s.o[i]:s.o[i+1]]
}

// WriteCellSparse appends elems to V for the next cell in row-major
// order and advances O accordingly. Calling it out of order, or more
// than once per cell, is reported as UndefinedBehaviour.
func (s *Sparse) WriteCellSparse(cellIndex int, elems []Element) error {
	if cellIndex != s.nextCell {
		return drrerr.New(drrerr.UndefinedBehaviour, fmt.Sprintf("scm: out-of-order sparse cell write: got %d, want %d", cellIndex, s.nextCell))
	}
	s.v = append(s.v, elems...)
	s.o[cellIndex+1] = int32(len(s.v))
	s.nextCell++
	return nil
}

// WriteCellDense is WriteCellSparse after routing dense through
// sparse.ToSparse(0).
func (s *Sparse) WriteCellDense(cellIndex int, dense []Value) error {
	return s.WriteCellSparse(cellIndex, slices.Collect(sparse.ToSparse(dense, Value(0))))
}

// Range2D returns a lazy view over every cell coordinate and its
// compact entries, in row-major order.
func (s *Sparse) Range2D() iter.Seq2[[2]int, []Element] {
	return func(yield func([2]int, []Element) bool) {
		for y := 0; y < s.height; y++ {
			for x := 0; x < s.width; x++ {
				if !yield([2]int{x, y}, s.CellAt(x, y)) {
					return
				}
			}
		}
	}
}

// Sort sorts every cell's segment of V ascending by Identifier.
func (s *Sparse) Sort() {
	for i := 0; i < s.Cells(); i++ {
		seg := s.CellIndex(i)
		slices.SortFunc(seg, func(a, b Element) int {
			return int(a.Identifier) - int(b.Identifier)
		})
	}
}

// IsSorted reports whether every cell's segment is already ascending by
// Identifier.
func (s *Sparse) IsSorted() bool {
	for i := 0; i < s.Cells(); i++ {
		seg := s.CellIndex(i)
		if !slices.IsSortedFunc(seg, func(a, b Element) int {
			return int(a.Identifier) - int(b.Identifier)
		}) {
			return false
		}
	}
	return true
}

// Equal sorts sp in place, then reports whether, at every cell, sp's
// view expanded via sparse.ToDense(regionCount, 0) equals d's dense
// view.
func Equal(d *Dense, sp *Sparse) bool {
	dw, dh, dr := d.Extent()
	sw, sh, sr := sp.Extent()
	if dw != sw || dh != sh || dr != sr {
		return false
	}
	sp.Sort()
	for i := 0; i < sp.Cells(); i++ {
		x, y := i%sw, i/sw
		dense := d.Cell(x, y)
		j := 0
		for got := range sparse.ToDense(sp.CellIndex(i), sr, Value(0)) {
			if dense[j] != got {
				return false
			}
			j++
		}
	}
	return true
}
