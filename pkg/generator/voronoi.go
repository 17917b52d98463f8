package generator

import (
	"fmt"
	"math"

	"github.com/jihwankim/dregsplat/pkg/drrerr"
	"github.com/jihwankim/dregsplat/pkg/regionfield"
	"github.com/jihwankim/dregsplat/pkg/rng"
)

// Voronoi assigns each cell the region of its nearest (Euclidean)
// centroid among CentroidCount randomly placed centroids.
type Voronoi struct {
	CentroidCount int
}

func (Voronoi) Name() string { return "voronoi" }

type voronoiCentroid struct {
	x, y   int
	region regionfield.Identifier
}

func (v Voronoi) Generate(rf *regionfield.Regionfield, info Info) error {
	if v.CentroidCount <= 0 {
		return drrerr.New(drrerr.InvalidParameter, fmt.Sprintf("voronoi: centroid count %d must be positive", v.CentroidCount))
	}
	regionCount := uint32(rf.RegionCount())
	if regionCount == 0 {
		return drrerr.New(drrerr.InvalidParameter, "voronoi: target regionfield has no region count set")
	}

	secret := secretFor(info)
	w, h := rf.Extent()

	coordEngine := rng.NewEngine(secret)
	centroids := make([]voronoiCentroid, v.CentroidCount)
	for i := range centroids {
		cx := int(rng.UniformUint32(coordEngine, uint32(w)))
		cy := int(rng.UniformUint32(coordEngine, uint32(h)))
		regionEngine := rng.NewEngine(secret, uint32(cx), uint32(cy))
		centroids[i] = voronoiCentroid{
			x:      cx,
			y:      cy,
			region: regionfield.Identifier(rng.UniformUint32(regionEngine, regionCount)),
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			best := 0
			bestDist := math.MaxFloat64
			for i, c := range centroids {
				dx := float64(x - c.x)
				dy := float64(y - c.y)
				dist := dx*dx + dy*dy
				if dist < bestDist {
					bestDist = dist
					best = i
				}
			}
			rf.Set(x, y, centroids[best].region)
		}
	}
	return nil
}
