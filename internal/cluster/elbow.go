package cluster

import (
	"fmt"
	"math"
)

// ElbowK fits base with every k in [minK, maxK] and returns the k at the
// knee of the inertia curve together with the inertias it measured. The
// knee is the point farthest from the chord joining the curve's ends, with
// both axes normalised to [0, 1].
func ElbowK(data [][]float64, minK, maxK int, base KMeans) (int, []float64, error) {
	if minK < 1 || maxK < minK {
		return 0, nil, fmt.Errorf("cluster: invalid k range [%d, %d]", minK, maxK)
	}
	if maxK >= len(data) {
		maxK = len(data) - 1
	}
	if maxK < minK {
		return 0, nil, fmt.Errorf("cluster: %d rows are too few to search k from %d", len(data), minK)
	}

	inertias := make([]float64, 0, maxK-minK+1)
	for k := minK; k <= maxK; k++ {
		km := base
		km.K = k
		res, err := km.Fit(data)
		if err != nil {
			return 0, nil, fmt.Errorf("fit k=%d: %w", k, err)
		}
		inertias = append(inertias, res.Inertia)
	}

	return minK + knee(inertias), inertias, nil
}

func knee(ys []float64) int {
	n := len(ys)
	if n < 3 {
		return 0
	}
	first, last := ys[0], ys[n-1]
	span := first - last
	if span <= 0 {
		return 0
	}

	best, bestDist := 0, -1.0
	for i, y := range ys {
		x := float64(i) / float64(n-1)
		yn := (y - last) / span
		// chord runs from (0, 1) to (1, 0)
		d := math.Abs(x+yn-1) / math.Sqrt2
		if d > bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
