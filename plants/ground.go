package plants

import (
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	DefaultGroundTolerance = 0.02
	DefaultGroundDeviation = 0.05
)

// GroundContact estimates the point at which a Y-up plant touches the
// ground.
//
// Every vertex within tolerance of the lowest Y value is a candidate.
// Candidates whose X or Z coordinate is at least maxDeviation away from the
// candidates' median are dropped as outliers, and the remaining candidates
// are averaged. If every candidate is an outlier, all candidates are
// averaged instead.
func GroundContact(vertices []model3d.Coord3D, tolerance, maxDeviation float64) (model3d.Coord3D,
	error) {
	if len(vertices) == 0 {
		return model3d.Coord3D{}, errors.New("ground contact: no vertices")
	}
	ys := make([]float64, len(vertices))
	for i, v := range vertices {
		ys[i] = v.Y
	}
	minY := floats.Min(ys)

	var candidates []model3d.Coord3D
	for _, v := range vertices {
		if v.Y <= minY+tolerance {
			candidates = append(candidates, v)
		}
	}
	center := model3d.XYZ(
		median(coordComponents(candidates, 0)),
		median(coordComponents(candidates, 1)),
		median(coordComponents(candidates, 2)),
	)

	var inliers []model3d.Coord3D
	for _, c := range candidates {
		diff := c.Sub(center).Abs()
		if diff.X < maxDeviation && diff.Z < maxDeviation {
			inliers = append(inliers, c)
		}
	}
	if len(inliers) == 0 {
		inliers = candidates
	}
	return model3d.XYZ(
		stat.Mean(coordComponents(inliers, 0), nil),
		stat.Mean(coordComponents(inliers, 1), nil),
		stat.Mean(coordComponents(inliers, 2), nil),
	), nil
}

func coordComponents(coords []model3d.Coord3D, axis int) []float64 {
	res := make([]float64, len(coords))
	for i, c := range coords {
		res[i] = c.Array()[axis]
	}
	return res
}

// median computes the median of a non-empty slice, averaging the two
// middle values for even lengths.
func median[F constraints.Float](values []F) F {
	sorted := append([]F{}, values...)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
