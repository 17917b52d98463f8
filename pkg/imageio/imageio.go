// Package imageio defines the contract a TIFF image serialiser on the
// other side of this boundary expects from a Regionfield and from a
// sparse splatting coefficient matrix, plus the minimum-bits packing
// the boundary applies before handing samples to that serialiser. No
// image codec lives here; encoding raster data into TIFF is out of
// scope.
package imageio

import (
	"iter"

	"github.com/jihwankim/dregsplat/pkg/bitpack"
	"github.com/jihwankim/dregsplat/pkg/regionfield"
	"github.com/jihwankim/dregsplat/pkg/scm"
)

// RegionfieldSource is what the serialiser needs from a region
// container: its region count and a row-major walk over every cell.
type RegionfieldSource interface {
	RegionCount() int
	Extent() (w, h int)
	Range2D() iter.Seq2[[2]int, regionfield.Identifier]
}

// SparseSCMSource is what the serialiser needs from a sparse
// splatting coefficient matrix: its extent, a row-major walk over
// every cell's compact entries, and the ability to sort each cell's
// entries into a canonical order before they are packed.
type SparseSCMSource interface {
	Extent() (width, height, regionCount int)
	Range2D() iter.Seq2[[2]int, []scm.Element]
	Sort()
}

var (
	_ RegionfieldSource = (*regionfield.Regionfield)(nil)
	_ SparseSCMSource   = (*scm.Sparse)(nil)
)

// PackRegionfield derives the minimum bits-per-sample covering every
// identifier in src, then packs them MSB-to-LSB at that width. This is
// the only logic the image boundary performs itself; the remaining
// TIFF-specific work belongs to the (unimplemented) codec.
func PackRegionfield(src RegionfieldSource) (packed []uint64, bitsPerSample int, err error) {
	w, h := src.Extent()
	samples := make([]uint64, 0, w*h)
	for _, id := range src.Range2D() {
		samples = append(samples, uint64(id))
	}
	return packSamples(samples)
}

// PackSparseIdentifiers sorts src into canonical per-cell order, then
// derives and applies the minimum-bits packing to every cell's
// identifier keys, flattened in row-major cell order.
func PackSparseIdentifiers(src SparseSCMSource) (packed []uint64, bitsPerSample int, err error) {
	src.Sort()
	var samples []uint64
	for _, elems := range src.Range2D() {
		for _, e := range elems {
			samples = append(samples, uint64(e.Identifier))
		}
	}
	return packSamples(samples)
}

func packSamples(samples []uint64) ([]uint64, int, error) {
	bps := bitpack.MinimumBitsFor(samples)
	packed, err := bitpack.Pack(samples, bps)
	if err != nil {
		return nil, 0, err
	}
	return packed, bps, nil
}
