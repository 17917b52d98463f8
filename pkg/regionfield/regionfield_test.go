package regionfield

import (
	"testing"

	"github.com/jihwankim/dregsplat/pkg/drrerr"
)

func TestResizeRejectsZeroExtent(t *testing.T) {
	r := New()
	for _, extent := range [][2]int{{0, 4}, {4, 0}, {0, 0}} {
		if err := r.Resize(extent[0], extent[1]); !drrerr.Is(err, drrerr.InvalidExtent) {
			t.Fatalf("Resize(%d, %d) = %v, want InvalidExtent", extent[0], extent[1], err)
		}
	}
}

func TestResizeReusesCapacity(t *testing.T) {
	r, err := NewSized(4, 4)
	if err != nil {
		t.Fatalf("NewSized: %v", err)
	}
	backing := r.Span()
	if err := r.Resize(2, 2); err != nil {
		t.Fatalf("Resize shrink: %v", err)
	}
	if &r.Span()[0] != &backing[0] {
		t.Fatalf("Resize to a smaller extent reallocated backing storage")
	}
}

func TestSetAndAt(t *testing.T) {
	r, err := NewSized(3, 2)
	if err != nil {
		t.Fatalf("NewSized: %v", err)
	}
	r.Set(2, 1, 7)
	if got := r.At(2, 1); got != 7 {
		t.Fatalf("At(2, 1) = %d, want 7", got)
	}
	if got := r.Size(); got != 6 {
		t.Fatalf("Size() = %d, want 6", got)
	}
}

func TestSetRegionCountRejectsNonPositive(t *testing.T) {
	r := New()
	if err := r.SetRegionCount(0); !drrerr.Is(err, drrerr.InvalidParameter) {
		t.Fatalf("SetRegionCount(0) = %v, want InvalidParameter", err)
	}
	if err := r.SetRegionCount(4); err != nil {
		t.Fatalf("SetRegionCount(4): %v", err)
	}
	if r.RegionCount() != 4 {
		t.Fatalf("RegionCount() = %d, want 4", r.RegionCount())
	}
}

func TestTransposeSwapsExtentAndPreservesSource(t *testing.T) {
	r, _ := NewSized(3, 2)
	// r (w=3, h=2):
	// 0 1 2
	// 3 4 5
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			r.Set(x, y, Identifier(y*3+x))
		}
	}

	tr := r.Transpose()
	w, h := tr.Extent()
	if w != 2 || h != 3 {
		t.Fatalf("Transpose extent = (%d, %d), want (2, 3)", w, h)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			if got, want := tr.At(y, x), r.At(x, y); got != want {
				t.Fatalf("tr.At(%d, %d) = %d, want %d", y, x, got, want)
			}
		}
	}

	// source is untouched
	if rw, rh := r.Extent(); rw != 3 || rh != 2 {
		t.Fatalf("source extent changed after Transpose: (%d, %d)", rw, rh)
	}
}

func TestRange2DVisitsRowMajorOrder(t *testing.T) {
	r, _ := NewSized(2, 2)
	r.Set(0, 0, 1)
	r.Set(1, 0, 2)
	r.Set(0, 1, 3)
	r.Set(1, 1, 4)

	var coords [][2]int
	var values []Identifier
	for coord, v := range r.Range2D() {
		coords = append(coords, coord)
		values = append(values, v)
	}

	wantCoords := [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	wantValues := []Identifier{1, 2, 3, 4}
	for i := range wantCoords {
		if coords[i] != wantCoords[i] || values[i] != wantValues[i] {
			t.Fatalf("Range2D()[%d] = (%v, %d), want (%v, %d)", i, coords[i], values[i], wantCoords[i], wantValues[i])
		}
	}
}

func TestRange2DEarlyStop(t *testing.T) {
	r, _ := NewSized(4, 4)
	count := 0
	for range r.Range2D() {
		count++
		if count == 3 {
			break
		}
	}
	if count != 3 {
		t.Fatalf("Range2D did not stop early: visited %d cells", count)
	}
}
