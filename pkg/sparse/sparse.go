// Package sparse implements the SparseMatrixElement primitive and the
// ToDense/ToSparse view adapters that translate between dense and
// sparse region-indexed ranges.
package sparse

import "iter"

// Element pairs a region Identifier with a value of arbitrary type V.
// Both the sparse splat kernel and the sparse SCM store their compact
// data as ranges of Element.
type Element[V any] struct {
	Identifier uint8
	Value      V
}

// ToDense consumes sorted, a sparse range ascending by Identifier, and
// returns a lazy length-count sequence where any identifier absent from
// sorted yields fill.
func ToDense[V any](sorted []Element[V], count int, fill V) iter.Seq[V] {
	return func(yield func(V) bool) {
		idx := 0
		for id := 0; id < count; id++ {
			v := fill
			if idx < len(sorted) && int(sorted[idx].Identifier) == id {
				v = sorted[idx].Value
				idx++
			}
			if !yield(v) {
				return
			}
		}
	}
}

// ToSparse consumes a dense range, enumerates it, drops entries equal to
// ignore, and yields sparse Element values whose Identifier is the
// position in dense.
func ToSparse[V comparable](dense []V, ignore V) iter.Seq[Element[V]] {
	return func(yield func(Element[V]) bool) {
		for i, v := range dense {
			if v == ignore {
				continue
			}
			if !yield(Element[V]{Identifier: uint8(i), Value: v}) {
				return
			}
		}
	}
}
