package kernel

import (
	"fmt"
	"iter"

	"github.com/jihwankim/dregsplat/pkg/drrerr"
)

// absent marks an O entry with no corresponding V index.
const absent = -1

// Sparse is a splat kernel stored as a compact list V of non-zero
// (identifier, importance) entries plus an offset table O mapping a
// region identifier to its index in V, or absent.
type Sparse struct {
	v []Element
	o []int32
}

// NewSparse returns an unresized Sparse kernel.
func NewSparse() *Sparse {
	return &Sparse{}
}

// Resize sets the region count, discarding prior contents.
func (k *Sparse) Resize(regionCount int) error {
	if err := checkRegionCount(regionCount); err != nil {
		return err
	}
	if cap(k.o) >= regionCount {
		k.o = k.o[:regionCount]
	} else {
		k.o = make([]int32, regionCount)
	}
	k.v = k.v[:0]
	k.Clear()
	return nil
}

// RegionCount reports the configured region count.
func (k *Sparse) RegionCount() int {
	return len(k.o)
}

// Clear empties V and resets every offset to absent, without changing
// the region count.
func (k *Sparse) Clear() {
	k.v = k.v[:0]
	for i := range k.o {
		k.o[i] = absent
	}
}

// Increment adds 1 to region id's importance, appending a fresh V entry
// if id was absent.
func (k *Sparse) Increment(id uint8) {
	k.IncrementBy(Element{Identifier: id, Value: 1})
}

// IncrementBy adds elem.Value to region elem.Identifier's importance,
// appending a fresh V entry if the region was absent.
func (k *Sparse) IncrementBy(elem Element) {
	idx := k.o[elem.Identifier]
	if idx == absent {
		k.o[elem.Identifier] = int32(len(k.v))
		k.v = append(k.v, elem)
		return
	}
	k.v[idx].Value += elem.Value
}

// Decrement subtracts 1 from region id's importance, erasing its V
// entry and fixing up later offsets if the result reaches zero.
func (k *Sparse) Decrement(id uint8) error {
	return k.DecrementBy(Element{Identifier: id, Value: 1})
}

// DecrementBy subtracts elem.Value from region elem.Identifier's
// importance. If the region is absent, or the subtraction would
// underflow, it reports UndefinedBehaviour. If the result reaches zero,
// the V entry is erased and every later offset is shifted down by one
// to keep O consistent.
func (k *Sparse) DecrementBy(elem Element) error {
	idx := k.o[elem.Identifier]
	if idx == absent {
		return drrerr.New(drrerr.UndefinedBehaviour, fmt.Sprintf("kernel: decrement of absent region %d", elem.Identifier))
	}
	cur := k.v[idx].Value
	if elem.Value > cur {
		return drrerr.New(drrerr.UndefinedBehaviour, fmt.Sprintf("kernel: decrement of region %d by %d underflows", elem.Identifier, elem.Value))
	}
	if elem.Value == cur {
		k.erase(idx)
		return nil
	}
	k.v[idx].Value -= elem.Value
	return nil
}

// erase removes V[idx], marks its identifier absent, and shifts every
// offset pointing past idx down by one.
func (k *Sparse) erase(idx int32) {
	removed := k.v[idx].Identifier
	k.v = append(k.v[:idx], k.v[idx+1:]...)
	k.o[removed] = absent
	for id := range k.o {
		if k.o[id] > idx {
			k.o[id]--
		}
	}
}

// IncrementSparseRange applies IncrementBy for every element.
func (k *Sparse) IncrementSparseRange(elems []Element) {
	for _, e := range elems {
		k.IncrementBy(e)
	}
}

// DecrementSparseRange applies DecrementBy for every element, stopping
// at the first error.
func (k *Sparse) DecrementSparseRange(elems []Element) error {
	for _, e := range elems {
		if err := k.DecrementBy(e); err != nil {
			return err
		}
	}
	return nil
}

// IncrementDenseRange adds every non-zero entry of values, indexed by
// region identifier, converting through the dense-to-sparse adapter
// rather than walking every absent slot.
func (k *Sparse) IncrementDenseRange(values []Importance) {
	for e := range sparseFromDense(values) {
		k.IncrementBy(e)
	}
}

// DecrementDenseRange subtracts every non-zero entry of values; see
// DecrementBy for underflow/absence behaviour.
func (k *Sparse) DecrementDenseRange(values []Importance) error {
	for e := range sparseFromDense(values) {
		if err := k.DecrementBy(e); err != nil {
			return err
		}
	}
	return nil
}

// sparseFromDense yields a (identifier, value) pair for every non-zero
// entry of values, indexed by position.
func sparseFromDense(values []Importance) iter.Seq[Element] {
	return func(yield func(Element) bool) {
		for id, v := range values {
			if v == 0 {
				continue
			}
			if !yield(Element{Identifier: uint8(id), Value: v}) {
				return
			}
		}
	}
}

// Span returns the compact V list: the read-only sequence of non-zero
// (identifier, importance) entries, in no particular identifier order.
func (k *Sparse) Span() []Element {
	return k.v
}

// Snapshot expands the compact V list into dst, which must be at least
// RegionCount() long; absent identifiers are zeroed.
func (k *Sparse) Snapshot(dst []Importance) {
	for i := range dst {
		dst[i] = 0
	}
	for _, e := range k.v {
		dst[e.Identifier] = e.Value
	}
}

// ToMaskSparse returns a lazy view of (id, value/normFactor) for every
// entry of k's compact V list.
func ToMaskSparse(k *Sparse, normFactor float32) iter.Seq2[uint8, Mask] {
	return func(yield func(uint8, Mask) bool) {
		for _, e := range k.v {
			if !yield(e.Identifier, Mask(e.Value)/normFactor) {
				return
			}
		}
	}
}

// Mask is the method form of ToMaskSparse, letting Sparse satisfy the
// splatting package's accumulator interface alongside Dense.
func (k *Sparse) Mask(normFactor float32) iter.Seq2[uint8, Mask] {
	return ToMaskSparse(k, normFactor)
}
