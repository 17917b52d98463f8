package generator

import (
	"slices"
	"testing"

	"github.com/jihwankim/dregsplat/pkg/drrerr"
	"github.com/jihwankim/dregsplat/pkg/regionfield"
)

func newField(t *testing.T, w, h, regionCount int) *regionfield.Regionfield {
	t.Helper()
	rf, err := regionfield.NewSized(w, h)
	if err != nil {
		t.Fatalf("NewSized: %v", err)
	}
	if err := rf.SetRegionCount(regionCount); err != nil {
		t.Fatalf("SetRegionCount: %v", err)
	}
	return rf
}

func TestUniformDeterministic(t *testing.T) {
	info := Info{Seed: 0x1CD4C39A662BF9CA}
	a := newField(t, 8, 8, 4)
	b := newField(t, 8, 8, 4)

	if err := (Uniform{}).Generate(a, info); err != nil {
		t.Fatalf("Generate a: %v", err)
	}
	if err := (Uniform{}).Generate(b, info); err != nil {
		t.Fatalf("Generate b: %v", err)
	}
	if !slices.Equal(a.Span(), b.Span()) {
		t.Fatalf("Uniform generator is not deterministic for the same seed/extent/region_count")
	}
	for _, v := range a.Span() {
		if v >= 4 {
			t.Fatalf("Uniform produced region %d, want < 4", v)
		}
	}
}

func TestUniformDifferentSeeds(t *testing.T) {
	a := newField(t, 8, 8, 4)
	b := newField(t, 8, 8, 4)
	_ = (Uniform{}).Generate(a, Info{Seed: 1})
	_ = (Uniform{}).Generate(b, Info{Seed: 2})
	if slices.Equal(a.Span(), b.Span()) {
		t.Fatalf("different seeds produced identical output")
	}
}

func TestVoronoiDeterministicAndBounded(t *testing.T) {
	info := Info{Seed: 0x1CD4C39A662BF9CA}
	a := newField(t, 64, 64, 8)
	b := newField(t, 64, 64, 8)

	v := Voronoi{CentroidCount: 30}
	if err := v.Generate(a, info); err != nil {
		t.Fatalf("Generate a: %v", err)
	}
	if err := v.Generate(b, info); err != nil {
		t.Fatalf("Generate b: %v", err)
	}
	if !slices.Equal(a.Span(), b.Span()) {
		t.Fatalf("Voronoi generator is not deterministic for the same seed")
	}
	for _, val := range a.Span() {
		if val >= 8 {
			t.Fatalf("Voronoi produced region %d, want < 8", val)
		}
	}
}

func TestUniformRejectsZeroRegionCount(t *testing.T) {
	rf, err := regionfield.NewSized(4, 4)
	if err != nil {
		t.Fatalf("NewSized: %v", err)
	}
	if err := (Uniform{}).Generate(rf, Info{Seed: 1}); !drrerr.Is(err, drrerr.InvalidParameter) {
		t.Fatalf("RegionCount=0 = %v, want InvalidParameter", err)
	}
}

func TestVoronoiRejectsZeroCentroidCount(t *testing.T) {
	rf := newField(t, 4, 4, 2)
	if err := (Voronoi{CentroidCount: 0}).Generate(rf, Info{Seed: 1}); !drrerr.Is(err, drrerr.InvalidParameter) {
		t.Fatalf("CentroidCount=0 = %v, want InvalidParameter", err)
	}
}

func TestDiamondSquareBoundedAndDeterministic(t *testing.T) {
	info := Info{Seed: 0x1CD4C39A662BF9CA}
	gen := DiamondSquare{InitialExtent: [2]int{3, 3}, Iteration: []int{1, 1}}

	a := newField(t, 9, 9, 4)
	b := newField(t, 9, 9, 4)
	if err := gen.Generate(a, info); err != nil {
		t.Fatalf("Generate a: %v", err)
	}
	if err := gen.Generate(b, info); err != nil {
		t.Fatalf("Generate b: %v", err)
	}
	if !slices.Equal(a.Span(), b.Span()) {
		t.Fatalf("Diamond-Square is not deterministic for the same seed")
	}
	for _, val := range a.Span() {
		if val >= 4 {
			t.Fatalf("Diamond-Square produced region %d, want < 4", val)
		}
	}
}

func TestDiamondSquareWithResizePass(t *testing.T) {
	// final extent from (3,3) with two iterations is (9,9); request a
	// different output extent to exercise the nearest-neighbour resize.
	info := Info{Seed: 7}
	gen := DiamondSquare{InitialExtent: [2]int{3, 3}, Iteration: []int{1, 1}}
	rf := newField(t, 5, 5, 4)
	if err := gen.Generate(rf, info); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, val := range rf.Span() {
		if val >= 4 {
			t.Fatalf("resized Diamond-Square produced region %d, want < 4", val)
		}
	}
}

func TestDiamondSquareRejectsSmallInitialExtent(t *testing.T) {
	rf := newField(t, 9, 9, 4)
	gen := DiamondSquare{InitialExtent: [2]int{1, 3}, Iteration: []int{1}}
	if err := gen.Generate(rf, Info{Seed: 1}); !drrerr.Is(err, drrerr.InvalidParameter) {
		t.Fatalf("small initial extent = %v, want InvalidParameter", err)
	}
}

func TestDiamondSquareRejectsEmptyIteration(t *testing.T) {
	rf := newField(t, 9, 9, 4)
	gen := DiamondSquare{InitialExtent: [2]int{3, 3}, Iteration: nil}
	if err := gen.Generate(rf, Info{Seed: 1}); !drrerr.Is(err, drrerr.InvalidParameter) {
		t.Fatalf("empty iteration list = %v, want InvalidParameter", err)
	}
}
