package cluster

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssignReportsUnassignableRow(t *testing.T) {
	data := [][]float64{{0}, {math.NaN()}}
	labels := make([]int, len(data))

	_, err := assign(data, [][]float64{{0}, {1}}, labels)
	assert.ErrorIs(t, err, ErrNoNearest)
	assert.ErrorContains(t, err, "row 1")
}
