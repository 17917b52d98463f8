package kernel

import (
	"fmt"
	"iter"

	"github.com/jihwankim/dregsplat/pkg/drrerr"
)

// Dense is a fixed-length array K[RegionCount] of Importance, indexed
// directly by region identifier.
type Dense struct {
	data []Importance
}

// NewDense returns an unresized Dense kernel.
func NewDense() *Dense {
	return &Dense{}
}

// Resize sets the region count, discarding prior contents.
func (k *Dense) Resize(regionCount int) error {
	if err := checkRegionCount(regionCount); err != nil {
		return err
	}
	if cap(k.data) >= regionCount {
		k.data = k.data[:regionCount]
	} else {
		k.data = make([]Importance, regionCount)
	}
	k.Clear()
	return nil
}

// RegionCount reports the configured region count.
func (k *Dense) RegionCount() int {
	return len(k.data)
}

// Clear zeroes every entry without changing the region count.
func (k *Dense) Clear() {
	for i := range k.data {
		k.data[i] = 0
	}
}

// Increment adds 1 to region id's importance.
func (k *Dense) Increment(id uint8) {
	k.data[id]++
}

// Decrement subtracts 1 from region id's importance. Decrementing a
// region already at zero is undefined behaviour and is reported as such
// rather than silently wrapping.
func (k *Dense) Decrement(id uint8) error {
	if k.data[id] == 0 {
		return drrerr.New(drrerr.UndefinedBehaviour, fmt.Sprintf("kernel: decrement of region %d below zero", id))
	}
	k.data[id]--
	return nil
}

// IncrementBy adds elem.Value to region elem.Identifier's importance.
func (k *Dense) IncrementBy(elem Element) {
	k.data[elem.Identifier] += elem.Value
}

// DecrementBy subtracts elem.Value from region elem.Identifier's
// importance; underflow is reported as UndefinedBehaviour.
func (k *Dense) DecrementBy(elem Element) error {
	if k.data[elem.Identifier] < elem.Value {
		return drrerr.New(drrerr.UndefinedBehaviour, fmt.Sprintf("kernel: decrement of region %d by %d underflows", elem.Identifier, elem.Value))
	}
	k.data[elem.Identifier] -= elem.Value
	return nil
}

// IncrementDenseRange adds values element-wise; len(values) must equal
// RegionCount().
func (k *Dense) IncrementDenseRange(values []Importance) {
	for id, v := range values {
		k.data[id] += v
	}
}

// DecrementDenseRange subtracts values element-wise; len(values) must
// equal RegionCount(). Underflow is reported as UndefinedBehaviour and
// aborts at the first offending entry, leaving earlier entries applied.
func (k *Dense) DecrementDenseRange(values []Importance) error {
	for id, v := range values {
		if k.data[id] < v {
			return drrerr.New(drrerr.UndefinedBehaviour, fmt.Sprintf("kernel: decrement of region %d by %d underflows", id, v))
		}
		k.data[id] -= v
	}
	return nil
}

// IncrementSparseRange adds every elem.Value to its identifier's slot.
func (k *Dense) IncrementSparseRange(elems []Element) {
	for _, e := range elems {
		k.data[e.Identifier] += e.Value
	}
}

// DecrementSparseRange subtracts every elem.Value from its identifier's
// slot; see DecrementDenseRange for underflow behaviour.
func (k *Dense) DecrementSparseRange(elems []Element) error {
	for _, e := range elems {
		if k.data[e.Identifier] < e.Value {
			return drrerr.New(drrerr.UndefinedBehaviour, fmt.Sprintf("kernel: decrement of region %d by %d underflows", e.Identifier, e.Value))
		}
		k.data[e.Identifier] -= e.Value
	}
	return nil
}

// Span returns the read-only backing sequence of importance values,
// indexed by region identifier.
func (k *Dense) Span() []Importance {
	return k.data
}

// Snapshot copies the current importance vector into dst, which must be
// at least RegionCount() long.
func (k *Dense) Snapshot(dst []Importance) {
	copy(dst, k.data)
}

// ToMaskDense returns a lazy view of (id, value/normFactor) for every
// non-zero entry of k.
func ToMaskDense(k *Dense, normFactor float32) iter.Seq2[uint8, Mask] {
	return func(yield func(uint8, Mask) bool) {
		for id, v := range k.data {
			if v == 0 {
				continue
			}
			if !yield(uint8(id), Mask(v)/normFactor) {
				return
			}
		}
	}
}

// Mask is the method form of ToMaskDense, letting Dense satisfy the
// splatting package's accumulator interface alongside Sparse.
func (k *Dense) Mask(normFactor float32) iter.Seq2[uint8, Mask] {
	return ToMaskDense(k, normFactor)
}
