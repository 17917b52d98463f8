package splatting

import (
	"math"
	"testing"

	"github.com/jihwankim/dregsplat/pkg/regionfield"
	"github.com/jihwankim/dregsplat/pkg/scm"
)

// referenceField builds the 6-row, 8-column matrix R used by the
// fixed end-to-end scenarios, region_count = 4.
func referenceField(t *testing.T) *regionfield.Regionfield {
	t.Helper()
	rows := [][]regionfield.Identifier{
		{0, 2, 1, 2, 1, 2, 3, 2},
		{0, 3, 0, 2, 2, 3, 3, 0},
		{0, 3, 2, 3, 0, 3, 0, 1},
		{0, 3, 1, 0, 3, 2, 0, 2},
		{0, 2, 3, 3, 1, 1, 1, 3},
		{0, 2, 3, 1, 1, 2, 3, 2},
	}
	rf, err := regionfield.NewSized(8, 6)
	if err != nil {
		t.Fatalf("NewSized: %v", err)
	}
	if err := rf.SetRegionCount(4); err != nil {
		t.Fatalf("SetRegionCount: %v", err)
	}
	for y, row := range rows {
		for x, v := range row {
			rf.Set(x, y, v)
		}
	}
	return rf
}

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func checkCell(t *testing.T, label string, got []float32, want [4]float32) {
	t.Helper()
	for id := 0; id < 4; id++ {
		if !almostEqual(float64(got[id]), float64(want[id]), 1e-6) {
			t.Errorf("%s region %d = %v, want %v", label, id, got[id], want[id])
		}
	}
}

func TestVanillaFullConvolutionS1(t *testing.T) {
	rf := referenceField(t)
	scratch := NewScratch(DD)
	out, err := (Vanilla{Radius: 2}).Invoke(rf, [2]int{2, 3}, [2]int{2, 3}, scratch)
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if out.Dense == nil {
		t.Fatalf("expected dense output")
	}

	expected := map[[2]int][4]float32{
		{0, 0}: {3.0 / 25, 5.0 / 25, 8.0 / 25, 9.0 / 25},  // row 2, col 3
		{1, 0}: {5.0 / 25, 6.0 / 25, 6.0 / 25, 8.0 / 25},  // row 2, col 4
		{2, 0}: {5.0 / 25, 5.0 / 25, 7.0 / 25, 8.0 / 25},  // row 2, col 5
		{0, 1}: {3.0 / 25, 5.0 / 25, 7.0 / 25, 10.0 / 25}, // row 3, col 3
		{1, 1}: {5.0 / 25, 6.0 / 25, 5.0 / 25, 9.0 / 25},  // row 3, col 4
		{2, 1}: {5.0 / 25, 6.0 / 25, 6.0 / 25, 8.0 / 25},  // row 3, col 5
	}
	for dc := 0; dc < 3; dc++ {
		for dr := 0; dr < 2; dr++ {
			want := expected[[2]int{dc, dr}]
			checkCell(t, "vanilla", out.Dense.Cell(dc, dr), want)
		}
	}
}

func TestFastFullConvolutionMatchesVanillaTransposed(t *testing.T) {
	rf := referenceField(t)

	vscratch := NewScratch(DD)
	vout, err := (Vanilla{Radius: 2}).Invoke(rf, [2]int{2, 3}, [2]int{2, 3}, vscratch)
	if err != nil {
		t.Fatalf("vanilla Invoke: %v", err)
	}

	rt := rf.Transpose()
	fscratch := NewScratch(DD)
	fast := Fast{Radius: 2}
	fout, err := fast.Invoke(rt, [2]int{3, 2}, [2]int{3, 2}, fscratch)
	if err != nil {
		t.Fatalf("fast Invoke: %v", err)
	}
	if !fast.IsTransposed() {
		t.Fatalf("Fast.IsTransposed() = false, want true")
	}

	// fast cell (dr, oc) must equal vanilla cell (x=dr, y=oc).
	for dr := 0; dr < 3; dr++ {
		for oc := 0; oc < 2; oc++ {
			got := fout.Dense.Cell(dr, oc)
			want := vout.Dense.Cell(dr, oc)
			for id := 0; id < 4; id++ {
				if !almostEqual(float64(got[id]), float64(want[id]), 1e-6) {
					t.Errorf("fast(%d,%d)[%d] = %v, want vanilla(%d,%d)[%d] = %v", dr, oc, id, got[id], dr, oc, id, want[id])
				}
			}
		}
	}
}

func TestFastFullConvolutionSparseMatchesDense(t *testing.T) {
	rf := referenceField(t)
	dscratch := NewScratch(DD)
	fast := Fast{Radius: 2}
	dout, err := fast.Invoke(rf, [2]int{2, 3}, [2]int{2, 3}, dscratch)
	if err != nil {
		t.Fatalf("dense Invoke: %v", err)
	}

	sscratch := NewScratch(DS)
	sout, err := fast.Invoke(rf, [2]int{2, 3}, [2]int{2, 3}, sscratch)
	if err != nil {
		t.Fatalf("sparse Invoke: %v", err)
	}
	if !scm.Equal(dout.Dense, sout.Sparse) {
		t.Fatalf("sparse output diverges from dense output")
	}
}

func TestSystematicSampledS3(t *testing.T) {
	rf := referenceField(t)
	scratch := NewScratch(DD)
	sys := Systematic{Radius: 2, FirstSample: [2]int{0, 0}, Interval: [2]int{2, 2}}
	out, err := sys.Invoke(rf, [2]int{2, 2}, [2]int{1, 1}, scratch)
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	cell := out.Dense.Cell(0, 0)
	sum := float64(0)
	for _, v := range cell {
		sum += float64(v)
	}
	if !almostEqual(sum, 1.0, 1e-6) {
		t.Fatalf("mask sum = %v, want 1", sum)
	}
}

func TestSystematicRejectsZeroInterval(t *testing.T) {
	rf := referenceField(t)
	scratch := NewScratch(DD)
	sys := Systematic{Radius: 2, FirstSample: [2]int{0, 0}, Interval: [2]int{0, 1}}
	if _, err := sys.Invoke(rf, [2]int{2, 2}, [2]int{1, 1}, scratch); err == nil {
		t.Fatalf("expected InvalidParameter for zero interval")
	}
}

func TestSystematicRejectsFirstSampleAtOrPastDiameter(t *testing.T) {
	rf := referenceField(t)
	scratch := NewScratch(DD)
	sys := Systematic{Radius: 2, FirstSample: [2]int{5, 0}, Interval: [2]int{1, 1}}
	if _, err := sys.Invoke(rf, [2]int{2, 2}, [2]int{1, 1}, scratch); err == nil {
		t.Fatalf("expected InvalidParameter for first_sample >= d")
	}
}

func TestStratifiedMaskSumsToOneAndIsDeterministic(t *testing.T) {
	rf := referenceField(t)
	strat := Stratified{Radius: 2, StratumCount: 3, Seed: 0x1CD4C39A662BF9CA}

	a, err := strat.Invoke(rf, [2]int{2, 3}, [2]int{2, 3}, NewScratch(DD))
	if err != nil {
		t.Fatalf("Invoke a: %v", err)
	}
	b, err := strat.Invoke(rf, [2]int{2, 3}, [2]int{2, 3}, NewScratch(DD))
	if err != nil {
		t.Fatalf("Invoke b: %v", err)
	}

	for dc := 0; dc < 3; dc++ {
		for dr := 0; dr < 2; dr++ {
			ca, cb := a.Dense.Cell(dc, dr), b.Dense.Cell(dc, dr)
			sum := float64(0)
			for id := range ca {
				sum += float64(ca[id])
				if ca[id] != cb[id] {
					t.Fatalf("stratified is not deterministic at (%d,%d)", dc, dr)
				}
			}
			if !almostEqual(sum, 1.0, 1e-6) {
				t.Fatalf("mask sum at (%d,%d) = %v, want 1", dc, dr, sum)
			}
		}
	}
}

func TestStochasticMaskSumsToOneAndIsDeterministic(t *testing.T) {
	rf := referenceField(t)
	sto := Stochastic{Radius: 2, Sample: 9, Seed: 0x1CD4C39A662BF9CA}

	a, err := sto.Invoke(rf, [2]int{2, 3}, [2]int{2, 3}, NewScratch(DD))
	if err != nil {
		t.Fatalf("Invoke a: %v", err)
	}
	b, err := sto.Invoke(rf, [2]int{2, 3}, [2]int{2, 3}, NewScratch(DD))
	if err != nil {
		t.Fatalf("Invoke b: %v", err)
	}

	for dc := 0; dc < 3; dc++ {
		for dr := 0; dr < 2; dr++ {
			ca, cb := a.Dense.Cell(dc, dr), b.Dense.Cell(dc, dr)
			sum := float64(0)
			for id := range ca {
				sum += float64(ca[id])
				if ca[id] != cb[id] {
					t.Fatalf("stochastic is not deterministic at (%d,%d)", dc, dr)
				}
			}
			if !almostEqual(sum, 1.0, 1e-6) {
				t.Fatalf("mask sum at (%d,%d) = %v, want 1", dc, dr, sum)
			}
		}
	}
}

func TestStochasticRejectsSampleAboveArea(t *testing.T) {
	rf := referenceField(t)
	sto := Stochastic{Radius: 2, Sample: 26, Seed: 1}
	if _, err := sto.Invoke(rf, [2]int{2, 3}, [2]int{2, 3}, NewScratch(DD)); err == nil {
		t.Fatalf("expected InvalidParameter for sample > d^2")
	}
}

func TestVanillaRejectsOffsetSmallerThanRadius(t *testing.T) {
	rf := referenceField(t)
	v := Vanilla{Radius: 2}
	if _, err := v.Invoke(rf, [2]int{1, 3}, [2]int{2, 3}, NewScratch(DD)); err == nil {
		t.Fatalf("expected InvalidParameter for offset < radius")
	}
}

func TestVanillaRejectsUndersizedRegionfield(t *testing.T) {
	small, err := regionfield.NewSized(4, 4)
	if err != nil {
		t.Fatalf("NewSized: %v", err)
	}
	if err := small.SetRegionCount(4); err != nil {
		t.Fatalf("SetRegionCount: %v", err)
	}
	v := Vanilla{Radius: 2}
	if _, err := v.Invoke(small, [2]int{2, 3}, [2]int{2, 3}, NewScratch(DD)); err == nil {
		t.Fatalf("expected InvalidParameter for undersized regionfield")
	}
}
