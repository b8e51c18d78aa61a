package cluster_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/customer-segmentation/internal/cluster"
)

// blobs returns n points around each centre and the blob index of each point.
func blobs(centres [][]float64, n int, spread float64, seed int64) ([][]float64, []int) {
	rng := rand.New(rand.NewSource(seed))
	var data [][]float64
	var truth []int
	for b, c := range centres {
		for i := 0; i < n; i++ {
			p := make([]float64, len(c))
			for j := range c {
				p[j] = c[j] + rng.NormFloat64()*spread
			}
			data = append(data, p)
			truth = append(truth, b)
		}
	}
	return data, truth
}

var threeCentres = [][]float64{{0, 0}, {10, 10}, {-10, 10}}

func TestFitScaler(t *testing.T) {
	data := [][]float64{
		{1, 10, 5},
		{2, 20, 5},
		{3, 30, 5},
		{4, 40, 5},
	}

	s, err := cluster.FitScaler(data)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{2.5, 25, 5}, s.Means, 1e-9)
	assert.InDelta(t, math.Sqrt(1.25), s.Scales[0], 1e-9)
	assert.Equal(t, 1.0, s.Scales[2], "constant column keeps unit scale")

	scaled, err := s.TransformAll(data)
	require.NoError(t, err)
	for j := 0; j < 2; j++ {
		var sum, sq float64
		for _, row := range scaled {
			sum += row[j]
			sq += row[j] * row[j]
		}
		assert.InDelta(t, 0, sum/4, 1e-9)
		assert.InDelta(t, 1, sq/4, 1e-9)
	}
}

func TestScalerErrors(t *testing.T) {
	_, err := cluster.FitScaler(nil)
	assert.ErrorIs(t, err, cluster.ErrEmptyData)

	_, err = cluster.FitScaler([][]float64{{1, 2}, {1}})
	assert.Error(t, err)

	s, err := cluster.FitScaler([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	_, err = s.Transform([]float64{1})
	assert.Error(t, err)
}

func TestKMeansRejectsNonFinite(t *testing.T) {
	data := [][]float64{{0, 0}, {1, 1}, {math.NaN(), 2}, {5, 5}}
	_, err := cluster.KMeans{K: 2, Seed: 1}.Fit(data)
	assert.ErrorContains(t, err, "not finite")

	data[2][0] = math.Inf(1)
	_, err = cluster.KMeans{K: 2, Seed: 1}.Fit(data)
	assert.ErrorContains(t, err, "not finite")
}

func TestNearestWithNaN(t *testing.T) {
	l, _ := cluster.Nearest([][]float64{{0}, {1}}, []float64{math.NaN()})
	assert.Equal(t, -1, l)
}

func TestKMeansRecoversBlobs(t *testing.T) {
	data, truth := blobs(threeCentres, 30, 0.5, 1)

	res, err := cluster.KMeans{K: 3, MaxIter: 100, NInit: 5, Seed: 42}.Fit(data)
	require.NoError(t, err)
	require.Len(t, res.Centroids, 3)
	assert.Equal(t, 90, res.Sizes[0]+res.Sizes[1]+res.Sizes[2])

	blobLabel := map[int]int{}
	for i, l := range res.Labels {
		if want, ok := blobLabel[truth[i]]; ok {
			assert.Equal(t, want, l, "point %d split from its blob", i)
		} else {
			blobLabel[truth[i]] = l
		}
	}
	assert.Len(t, blobLabel, 3)
	seen := map[int]bool{}
	for _, l := range blobLabel {
		assert.False(t, seen[l], "two blobs share label %d", l)
		seen[l] = true
	}

	for b, c := range threeCentres {
		l, _ := cluster.Nearest(res.Centroids, c)
		assert.Equal(t, blobLabel[b], l)
	}
}

func TestKMeansDeterministic(t *testing.T) {
	data, _ := blobs(threeCentres, 20, 2, 7)
	km := cluster.KMeans{K: 4, MaxIter: 50, NInit: 3, Seed: 11}

	a, err := km.Fit(data)
	require.NoError(t, err)
	b, err := km.Fit(data)
	require.NoError(t, err)

	assert.Equal(t, a.Labels, b.Labels)
	assert.Equal(t, a.Inertia, b.Inertia)
}

func TestKMeansEdgeCases(t *testing.T) {
	_, err := cluster.KMeans{K: 0}.Fit([][]float64{{1}})
	assert.Error(t, err)

	_, err = cluster.KMeans{K: 3}.Fit([][]float64{{1}, {2}})
	assert.Error(t, err)

	// identical rows still yield k non-empty clusters
	same := [][]float64{{1, 1}, {1, 1}, {1, 1}, {1, 1}}
	res, err := cluster.KMeans{K: 2, Seed: 1}.Fit(same)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Inertia)
	assert.Equal(t, 4, res.Sizes[0]+res.Sizes[1])
}

func TestElbowFindsThreeBlobs(t *testing.T) {
	data, _ := blobs(threeCentres, 30, 0.5, 3)

	k, inertias, err := cluster.ElbowK(data, 2, 10, cluster.KMeans{MaxIter: 100, NInit: 5, Seed: 42})
	require.NoError(t, err)
	assert.Equal(t, 3, k)
	assert.Len(t, inertias, 9)
	assert.Greater(t, inertias[0], inertias[1])
}

func TestElbowClampsRange(t *testing.T) {
	data := [][]float64{{0}, {1}, {10}, {11}}

	k, inertias, err := cluster.ElbowK(data, 2, 10, cluster.KMeans{Seed: 1})
	require.NoError(t, err)
	assert.Len(t, inertias, 2, "k stops at rows-1")
	assert.Equal(t, 2, k)

	_, _, err = cluster.ElbowK(data, 5, 3, cluster.KMeans{})
	assert.Error(t, err)
}
