// Package kernel implements the splat kernel accumulator: a running
// histogram of region counts over the current convolution window, in
// dense and sparse variants.
package kernel

import (
	"fmt"

	"github.com/jihwankim/dregsplat/pkg/drrerr"
	"github.com/jihwankim/dregsplat/pkg/sparse"
)

// Importance is an unnormalised region occurrence count.
type Importance = uint32

// Mask is a normalised importance value in [0, 1].
type Mask = float32

// Element is a sparse kernel entry: a region identifier paired with its
// current importance.
type Element = sparse.Element[Importance]

func checkRegionCount(regionCount int) error {
	if regionCount <= 0 {
		return drrerr.New(drrerr.InvalidParameter, fmt.Sprintf("kernel: region count %d must be positive", regionCount))
	}
	return nil
}
