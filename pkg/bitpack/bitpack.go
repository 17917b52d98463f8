// Package bitpack implements minimum-bits-per-sample analysis and
// MSB-to-LSB bit packing into 64-bit words, used by the Diamond-Square
// generator's random-bit draws and by the image I/O boundary.
package bitpack

import (
	"fmt"
	"math/bits"

	"github.com/jihwankim/dregsplat/pkg/drrerr"
)

const wordBits = 64

// MinimumBits returns the number of bits needed to represent any value
// in [0, max] (at least 1, even when max is 0).
func MinimumBits(max uint64) int {
	n := bits.Len64(max)
	if n == 0 {
		return 1
	}
	return n
}

// MinimumBitsFor scans xs and returns MinimumBits(maxOf(xs)). It returns
// 1 for an empty xs.
func MinimumBitsFor(xs []uint64) int {
	var max uint64
	for _, x := range xs {
		if x > max {
			max = x
		}
	}
	return MinimumBits(max)
}

func checkBitsPerSample(bps int) error {
	if bps <= 0 || bps > wordBits {
		return drrerr.New(drrerr.InvalidParameter, fmt.Sprintf("bitpack: bits-per-sample %d must be in [1, %d]", bps, wordBits))
	}
	return nil
}

// Pack packs xs, bps low bits taken from each sample, MSB-to-LSB,
// packingFactor = wordBits/bps samples per 64-bit word.
func Pack(xs []uint64, bps int) ([]uint64, error) {
	if err := checkBitsPerSample(bps); err != nil {
		return nil, err
	}
	packingFactor := wordBits / bps
	words := (len(xs) + packingFactor - 1) / packingFactor
	out := make([]uint64, words)

	for i, x := range xs {
		writeBits(out, (i/packingFactor)*wordBits+(i%packingFactor)*bps, bps, x)
	}
	return out, nil
}

// Unpack reverses Pack, recovering count samples of bps bits each.
func Unpack(words []uint64, count, bps int) ([]uint64, error) {
	if err := checkBitsPerSample(bps); err != nil {
		return nil, err
	}
	packingFactor := wordBits / bps
	out := make([]uint64, count)
	for i := range out {
		out[i] = readBits(words, (i/packingFactor)*wordBits+(i%packingFactor)*bps, bps)
	}
	return out, nil
}

// writeBits stores the bps low bits of value into words, MSB of value
// first, starting at the global bit position startBit (bit 0 is the MSB
// of words[0]).
func writeBits(words []uint64, startBit, bps int, value uint64) {
	for b := 0; b < bps; b++ {
		bit := (value >> uint(bps-1-b)) & 1
		if bit == 0 {
			continue
		}
		pos := startBit + b
		wordIdx, shift := pos/wordBits, wordBits-1-pos%wordBits
		words[wordIdx] |= 1 << uint(shift)
	}
}

// readBits is the inverse of writeBits.
func readBits(words []uint64, startBit, bps int) uint64 {
	var v uint64
	for b := 0; b < bps; b++ {
		pos := startBit + b
		wordIdx, shift := pos/wordBits, wordBits-1-pos%wordBits
		bit := (words[wordIdx] >> uint(shift)) & 1
		v = (v << 1) | bit
	}
	return v
}
