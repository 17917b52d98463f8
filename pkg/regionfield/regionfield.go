// Package regionfield implements the Regionfield container: a 2D matrix
// of region identifiers, column-stride 1, row-major in the outer axis.
package regionfield

import (
	"fmt"
	"iter"

	"github.com/jihwankim/dregsplat/pkg/drrerr"
)

// Identifier is a region identifier in [0, 255].
type Identifier = uint8

// Regionfield owns a 2D matrix of Identifier. Zero value is an empty,
// unresized field; call Resize before use.
type Regionfield struct {
	width, height int
	regionCount   int
	data          []Identifier
}

// New returns an empty Regionfield. Resize must be called before it is
// usable.
func New() *Regionfield {
	return &Regionfield{}
}

// NewSized is a convenience constructor equivalent to New().Resize(w, h).
func NewSized(w, h int) (*Regionfield, error) {
	r := New()
	if err := r.Resize(w, h); err != nil {
		return nil, err
	}
	return r, nil
}

// Resize sets the field's extent to w by h, failing with InvalidExtent
// when either dimension is zero. Existing backing storage is reused
// when its capacity already covers w*h; only insufficient capacity
// triggers a reallocation. Resize does not preserve prior contents.
func (r *Regionfield) Resize(w, h int) error {
	if w <= 0 || h <= 0 {
		return drrerr.New(drrerr.InvalidExtent, fmt.Sprintf("regionfield: extent (%d, %d) must be positive in both dimensions", w, h))
	}
	cells := w * h
	if cap(r.data) >= cells {
		r.data = r.data[:cells]
	} else {
		r.data = make([]Identifier, cells)
	}
	r.width, r.height = w, h
	return nil
}

// Extent reports the current (width, height).
func (r *Regionfield) Extent() (w, h int) {
	return r.width, r.height
}

// RegionCount reports the number of distinct regions this field's
// values are drawn from. It is set independently of Resize via
// SetRegionCount, typically by a generator before it fills the field.
func (r *Regionfield) RegionCount() int {
	return r.regionCount
}

// SetRegionCount records the region count, failing with InvalidParameter
// when n is not positive.
func (r *Regionfield) SetRegionCount(n int) error {
	if n <= 0 {
		return drrerr.New(drrerr.InvalidParameter, fmt.Sprintf("regionfield: region count %d must be positive", n))
	}
	r.regionCount = n
	return nil
}

// Size returns width * height.
func (r *Regionfield) Size() int {
	return r.width * r.height
}

// Span returns the flat, row-major backing slice. Mutations through it
// are visible through At/Set and vice versa.
func (r *Regionfield) Span() []Identifier {
	return r.data
}

// At returns the identifier at (x, y). x indexes columns, y indexes rows.
func (r *Regionfield) At(x, y int) Identifier {
	return r.data[y*r.width+x]
}

// Set stores v at (x, y).
func (r *Regionfield) Set(x, y int, v Identifier) {
	r.data[y*r.width+x] = v
}

// Row returns the mdspan row y: a column-stride-1 slice of width
// elements, aliasing the backing storage.
func (r *Regionfield) Row(y int) []Identifier {
	start := y * r.width
	return r.data[start : start+r.width]
}

// Transpose returns a new Regionfield with swapped extent and physically
// reordered data; the receiver is unchanged. In-place transposition is
// not offered: for a non-square matrix it requires a full permutation
// whose parallel cost equals an out-of-place copy.
func (r *Regionfield) Transpose() *Regionfield {
	out, _ := NewSized(r.height, r.width)
	out.regionCount = r.regionCount
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			out.Set(y, x, r.At(x, y))
		}
	}
	return out
}

// Range2D returns a lazy view over every (x, y) coordinate in row-major
// order together with its stored value, for use by splatting algorithms
// that want to iterate the field without materialising coordinate pairs.
func (r *Regionfield) Range2D() iter.Seq2[[2]int, Identifier] {
	return func(yield func([2]int, Identifier) bool) {
		for y := 0; y < r.height; y++ {
			row := r.Row(y)
			for x, v := range row {
				if !yield([2]int{x, y}, v) {
					return
				}
			}
		}
	}
}
