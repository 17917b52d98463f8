package imageio

import (
	"testing"

	"github.com/jihwankim/dregsplat/pkg/bitpack"
	"github.com/jihwankim/dregsplat/pkg/regionfield"
	"github.com/jihwankim/dregsplat/pkg/scm"
)

func TestPackRegionfieldRoundTrip(t *testing.T) {
	rf, err := regionfield.NewSized(3, 2)
	if err != nil {
		t.Fatalf("NewSized: %v", err)
	}
	if err := rf.SetRegionCount(4); err != nil {
		t.Fatalf("SetRegionCount: %v", err)
	}
	want := []regionfield.Identifier{0, 1, 2, 3, 1, 0}
	i := 0
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			rf.Set(x, y, want[i])
			i++
		}
	}

	packed, bps, err := PackRegionfield(rf)
	if err != nil {
		t.Fatalf("PackRegionfield: %v", err)
	}
	if bps <= 0 {
		t.Fatalf("bitsPerSample = %d, want > 0", bps)
	}
	if len(packed) == 0 {
		t.Fatalf("expected non-empty packed output")
	}
	got, err := bitpack.Unpack(packed, len(want), bps)
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	for i := range want {
		if got[i] != uint64(want[i]) {
			t.Fatalf("unpacked[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestPackSparseIdentifiersSortsFirst(t *testing.T) {
	sp := scm.NewSparse()
	if err := sp.Resize(2, 1, 4); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if err := sp.WriteCellSparse(0, []scm.Element{{Identifier: 3, Value: 1}, {Identifier: 1, Value: 2}}); err != nil {
		t.Fatalf("WriteCellSparse: %v", err)
	}
	if err := sp.WriteCellSparse(1, []scm.Element{{Identifier: 2, Value: 1}}); err != nil {
		t.Fatalf("WriteCellSparse: %v", err)
	}

	if _, _, err := PackSparseIdentifiers(sp); err != nil {
		t.Fatalf("PackSparseIdentifiers: %v", err)
	}
	if !sp.IsSorted() {
		t.Fatalf("expected sp to be sorted after PackSparseIdentifiers")
	}
}
