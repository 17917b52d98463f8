package generator

import (
	"fmt"
	"math"

	"github.com/jihwankim/dregsplat/pkg/bitpack"
	"github.com/jihwankim/dregsplat/pkg/drrerr"
	"github.com/jihwankim/dregsplat/pkg/regionfield"
	"github.com/jihwankim/dregsplat/pkg/rng"
)

// DiamondSquare produces fractal-like region fields by stochastic
// upscaling from a small initial grid, with an independent smoothing
// pass count per upscale iteration.
type DiamondSquare struct {
	// InitialExtent is the starting grid size, each dimension >= 2.
	InitialExtent [2]int
	// Iteration holds one smoothing-pass count per upscale step; it
	// must be non-empty. A zero entry skips smoothing for that step.
	Iteration []int
}

func (DiamondSquare) Name() string { return "diamond-square" }

// firstPassSalt, secondPassSalt and smoothPassSalt are fixed 32-byte
// constants that key the three passes' random-bit streams independently
// of one another, by being XOR-mixed into the low 32 bytes of the
// run's secret before hashing.
var (
	firstPassSalt = [32]byte{
		0xfe, 0xab, 0x32, 0xd2, 0xaf, 0x0d, 0xc2, 0xe9, 0x9c, 0x1f, 0x67, 0xbe, 0x74, 0x6c, 0x97, 0x58,
		0x05, 0x97, 0x58, 0xf2, 0x29, 0x99, 0xef, 0x10, 0x34, 0x58, 0x8b, 0xbc, 0x81, 0xcc, 0x80, 0xe1,
	}
	secondPassSalt = [32]byte{
		0x29, 0x5c, 0xe5, 0x97, 0xb8, 0x07, 0x99, 0x82, 0xf8, 0x5c, 0x14, 0xa5, 0x1d, 0x1b, 0xf4, 0x67,
		0x04, 0x2a, 0x65, 0x17, 0xf1, 0x2a, 0xb2, 0xf3, 0x16, 0xb1, 0x56, 0xea, 0xd5, 0xd2, 0x71, 0x53,
	}
	smoothPassSalt = [32]byte{
		0x26, 0xce, 0xa9, 0x63, 0xd3, 0x74, 0x48, 0xb8, 0x30, 0x65, 0x58, 0xa8, 0x76, 0xb5, 0x6f, 0x9a,
		0x9e, 0x71, 0x78, 0xb2, 0x43, 0x2f, 0x0f, 0x32, 0xbc, 0x44, 0x4e, 0xc2, 0x3c, 0xd9, 0x7a, 0x9b,
	}
)

func saltSecret(secret rng.Secret, salt [32]byte) rng.Secret {
	out := secret
	for i := range salt {
		out[i] ^= salt[i]
	}
	return out
}

// blockBits draws bps random bits for the block moving from inOffset to
// outOffset, under secret salted by salt.
func blockBits(secret rng.Secret, salt [32]byte, inOffset, outOffset [2]int, bps int) uint64 {
	salted := saltSecret(secret, salt)
	word := rng.HashValues(salted, uint32(inOffset[0]), uint32(inOffset[1]), uint32(outOffset[0]), uint32(outOffset[1]))
	sample, err := bitpack.Unpack([]uint64{word}, 1, bps)
	if err != nil {
		panic(err)
	}
	return sample[0]
}

func choose2(bit uint64, a, b regionfield.Identifier) regionfield.Identifier {
	if bit&1 == 0 {
		return a
	}
	return b
}

func choose4(bits uint64, a, b, c, d regionfield.Identifier) regionfield.Identifier {
	switch bits & 3 {
	case 0:
		return a
	case 1:
		return b
	case 2:
		return c
	default:
		return d
	}
}

func (d DiamondSquare) Generate(rf *regionfield.Regionfield, info Info) error {
	if d.InitialExtent[0] < 2 || d.InitialExtent[1] < 2 {
		return drrerr.New(drrerr.InvalidParameter, fmt.Sprintf("diamond-square: initial extent %v must be >= (2, 2)", d.InitialExtent))
	}
	if len(d.Iteration) == 0 {
		return drrerr.New(drrerr.InvalidParameter, "diamond-square: iteration list must be non-empty")
	}
	regionCount := rf.RegionCount()
	if regionCount <= 0 {
		return drrerr.New(drrerr.InvalidParameter, "diamond-square: target regionfield has no region count set")
	}

	secret := secretFor(info)
	outW, outH := rf.Extent()

	cur, err := regionfield.NewSized(d.InitialExtent[0], d.InitialExtent[1])
	if err != nil {
		return err
	}
	if err := cur.SetRegionCount(regionCount); err != nil {
		return err
	}
	if err := (Uniform{}).Generate(cur, info); err != nil {
		return err
	}

	for _, smoothIterations := range d.Iteration {
		w, h := cur.Extent()
		next, err := regionfield.NewSized(2*w-1, 2*h-1)
		if err != nil {
			return err
		}
		if err := next.SetRegionCount(regionCount); err != nil {
			return err
		}
		upscale(cur, next, secret)
		cur = next

		for s := 0; s < smoothIterations; s++ {
			w, h := cur.Extent()
			smoothed, err := regionfield.NewSized(w, h)
			if err != nil {
				return err
			}
			if err := smoothed.SetRegionCount(regionCount); err != nil {
				return err
			}
			copyHalo(cur, smoothed)
			smooth(cur, smoothed, secret)
			cur = smoothed
		}
	}

	finalW, finalH := cur.Extent()
	if finalW == outW && finalH == outH {
		copy(rf.Span(), cur.Span())
		return nil
	}
	resizeNearest(cur, rf)
	return nil
}

// upscale doubles each dimension minus one, decomposed into two
// sub-passes so that no output cell is written by more than one
// goroutine were this parallelised: the first sub-pass produces the
// top-left 2x2 of every output 3x3 block, the second fills in the
// bottom row and rightmost column those blocks left blank.
func upscale(input, output *regionfield.Regionfield, secret rng.Secret) {
	w, h := input.Extent()

	for iy := 0; iy < h-1; iy++ {
		for ix := 0; ix < w-1; ix++ {
			nw := input.At(ix, iy)
			ne := input.At(ix+1, iy)
			sw := input.At(ix, iy+1)
			se := input.At(ix+1, iy+1)

			ox, oy := 2*ix, 2*iy
			bits := blockBits(secret, firstPassSalt, [2]int{ix, iy}, [2]int{ox, oy}, 4)
			bRight, bBelow, bDiag := bits&1, (bits>>1)&1, (bits>>2)&3

			output.Set(ox, oy, nw)
			output.Set(ox+1, oy, choose2(bRight, nw, ne))
			output.Set(ox, oy+1, choose2(bBelow, nw, sw))
			output.Set(ox+1, oy+1, choose4(bDiag, nw, ne, sw, se))
		}
	}

	for ix := 0; ix < w-1; ix++ {
		sw := input.At(ix, h-1)
		se := input.At(ix+1, h-1)
		ox, oy := 2*ix, 2*(h-1)
		bit := blockBits(secret, secondPassSalt, [2]int{ix, h - 1}, [2]int{ox, oy}, 2)
		output.Set(ox, oy, sw)
		output.Set(ox+1, oy, choose2(bit, sw, se))
	}
	for iy := 0; iy < h-1; iy++ {
		ne := input.At(w-1, iy)
		se := input.At(w-1, iy+1)
		ox, oy := 2*(w-1), 2*iy
		bit := blockBits(secret, secondPassSalt, [2]int{w - 1, iy}, [2]int{ox, oy}, 2)
		output.Set(ox, oy, ne)
		output.Set(ox, oy+1, choose2(bit, ne, se))
	}
	cw, ch := output.Extent()
	output.Set(cw-1, ch-1, input.At(w-1, h-1))
}

// copyHalo copies the border rows and columns of input into output
// verbatim; both must share the same extent.
func copyHalo(input, output *regionfield.Regionfield) {
	w, h := input.Extent()
	for x := 0; x < w; x++ {
		output.Set(x, 0, input.At(x, 0))
		output.Set(x, h-1, input.At(x, h-1))
	}
	for y := 0; y < h; y++ {
		output.Set(0, y, input.At(0, y))
		output.Set(w-1, y, input.At(w-1, y))
	}
}

// smooth fills every strictly interior cell of output from input's
// cardinal neighbourhood, reducing the output's randomness.
func smooth(input, output *regionfield.Regionfield, secret rng.Secret) {
	w, h := input.Extent()
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			c := input.At(x, y)
			n := input.At(x, y-1)
			s := input.At(x, y+1)
			e := input.At(x+1, y)
			west := input.At(x-1, y)

			eqHorizontal := e == west
			eqVertical := n == s

			var v regionfield.Identifier
			switch {
			case eqHorizontal && eqVertical:
				bit := blockBits(secret, smoothPassSalt, [2]int{x, y}, [2]int{x, y}, 1)
				v = choose2(bit, n, e)
			case eqHorizontal:
				v = e
			case eqVertical:
				v = n
			default:
				v = c
			}
			output.Set(x, y, v)
		}
	}
}

// resizeNearest fills output by nearest-neighbour sampling of input,
// scaled to output's extent.
func resizeNearest(input, output *regionfield.Regionfield) {
	inW, inH := input.Extent()
	outW, outH := output.Extent()

	xScale, yScale := 0.0, 0.0
	if outW > 1 {
		xScale = float64(inW-1) / float64(outW-1)
	}
	if outH > 1 {
		yScale = float64(inH-1) / float64(outH-1)
	}

	for y := 0; y < outH; y++ {
		iy := int(math.Round(float64(y) * yScale))
		for x := 0; x < outW; x++ {
			ix := int(math.Round(float64(x) * xScale))
			output.Set(x, y, input.At(ix, iy))
		}
	}
}
