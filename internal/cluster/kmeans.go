package cluster

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

const DefaultTolerance = 1e-4

// ErrNoNearest means a row is not closer to any centroid than +Inf,
// which only happens with NaN or infinite values.
var ErrNoNearest = errors.New("cluster: row has no nearest centroid")

// KMeans runs Lloyd's algorithm from k-means++ seeds. NInit independent
// runs are made and the one with the lowest inertia is kept.
type KMeans struct {
	K       int
	MaxIter int
	NInit   int
	Tol     float64
	Seed    int64
}

type Result struct {
	Centroids  [][]float64
	Labels     []int
	Sizes      []int
	Inertia    float64
	Iterations int
}

func (km KMeans) Fit(data [][]float64) (*Result, error) {
	if km.K < 1 {
		return nil, fmt.Errorf("cluster: k must be positive, got %d", km.K)
	}
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	if len(data) < km.K {
		return nil, fmt.Errorf("cluster: %d rows cannot form %d clusters", len(data), km.K)
	}
	if err := checkDims(data, len(data[0])); err != nil {
		return nil, err
	}
	if err := checkFinite(data); err != nil {
		return nil, err
	}

	maxIter := km.MaxIter
	if maxIter <= 0 {
		maxIter = 300
	}
	nInit := km.NInit
	if nInit <= 0 {
		nInit = 1
	}
	tol := km.Tol
	if tol <= 0 {
		tol = DefaultTolerance
	}

	rng := rand.New(rand.NewSource(km.Seed))
	var best *Result
	for run := 0; run < nInit; run++ {
		res, err := lloyd(data, seedPlusPlus(data, km.K, rng), maxIter, tol)
		if err != nil {
			return nil, err
		}
		if best == nil || res.Inertia < best.Inertia {
			best = res
		}
	}
	return best, nil
}

// Nearest returns the index of the centroid closest to x and the squared
// distance to it.
func Nearest(centroids [][]float64, x []float64) (int, float64) {
	best, bestDist := -1, math.Inf(1)
	for c, centroid := range centroids {
		d := sqDist(centroid, x)
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, bestDist
}

func lloyd(data, centroids [][]float64, maxIter int, tol float64) (*Result, error) {
	k, dim := len(centroids), len(data[0])
	labels := make([]int, len(data))

	iter := 0
	for iter < maxIter {
		iter++
		if _, err := assign(data, centroids, labels); err != nil {
			return nil, err
		}

		next := make([][]float64, k)
		sizes := make([]int, k)
		for c := range next {
			next[c] = make([]float64, dim)
		}
		for i, row := range data {
			floats.Add(next[labels[i]], row)
			sizes[labels[i]]++
		}
		for c := range next {
			if sizes[c] > 0 {
				floats.Scale(1/float64(sizes[c]), next[c])
			}
		}
		reseedEmpty(data, next, labels, sizes)

		shift := 0.0
		for c := range next {
			shift += sqDist(centroids[c], next[c])
		}
		centroids = next
		if shift <= tol {
			break
		}
	}

	inertia, err := assign(data, centroids, labels)
	if err != nil {
		return nil, err
	}
	sizes := make([]int, k)
	for _, l := range labels {
		sizes[l]++
	}
	return &Result{
		Centroids:  centroids,
		Labels:     labels,
		Sizes:      sizes,
		Inertia:    inertia,
		Iterations: iter,
	}, nil
}

func assign(data, centroids [][]float64, labels []int) (float64, error) {
	inertia := 0.0
	for i, row := range data {
		l, d := Nearest(centroids, row)
		if l < 0 {
			return 0, fmt.Errorf("%w: row %d", ErrNoNearest, i)
		}
		labels[i] = l
		inertia += d
	}
	return inertia, nil
}

func checkFinite(data [][]float64) error {
	for i, row := range data {
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("cluster: row %d column %d is not finite (%v)", i, j, v)
			}
		}
	}
	return nil
}

// reseedEmpty moves every empty centroid onto the point that is farthest
// from its own centroid, taken from a cluster that can spare it.
func reseedEmpty(data, centroids [][]float64, labels, sizes []int) {
	for c := range centroids {
		if sizes[c] > 0 {
			continue
		}
		far, farDist := -1, -1.0
		for i, row := range data {
			if sizes[labels[i]] < 2 {
				continue
			}
			if d := sqDist(row, centroids[labels[i]]); d > farDist {
				far, farDist = i, d
			}
		}
		if far < 0 {
			return
		}
		sizes[labels[far]]--
		labels[far] = c
		sizes[c] = 1
		copy(centroids[c], data[far])
	}
}

func seedPlusPlus(data [][]float64, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, clone(data[rng.Intn(len(data))]))

	d2 := make([]float64, len(data))
	for i, row := range data {
		d2[i] = sqDist(row, centroids[0])
	}

	for len(centroids) < k {
		total := floats.Sum(d2)
		idx := rng.Intn(len(data))
		if total > 0 {
			r := rng.Float64() * total
			acc := 0.0
			for i, w := range d2 {
				acc += w
				if acc >= r {
					idx = i
					break
				}
			}
		}
		next := clone(data[idx])
		centroids = append(centroids, next)
		for i, row := range data {
			if d := sqDist(row, next); d < d2[i] {
				d2[i] = d
			}
		}
	}
	return centroids
}

func sqDist(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return d * d
}

func clone(x []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	return out
}
