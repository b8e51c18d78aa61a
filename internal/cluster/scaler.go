package cluster

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"
)

var ErrEmptyData = errors.New("cluster: no rows to fit")

// StandardScaler centres every column on its mean and divides by its
// population standard deviation. Constant columns get a scale of 1.
type StandardScaler struct {
	Means  []float64
	Scales []float64
}

func FitScaler(data [][]float64) (*StandardScaler, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	dim := len(data[0])
	if err := checkDims(data, dim); err != nil {
		return nil, err
	}

	s := &StandardScaler{
		Means:  make([]float64, dim),
		Scales: make([]float64, dim),
	}
	col := make([]float64, len(data))
	for j := 0; j < dim; j++ {
		for i, row := range data {
			col[i] = row[j]
		}
		mean, std := stat.PopMeanStdDev(col, nil)
		if std == 0 {
			std = 1
		}
		s.Means[j] = mean
		s.Scales[j] = std
	}
	return s, nil
}

// Transform returns a scaled copy of x.
func (s *StandardScaler) Transform(x []float64) ([]float64, error) {
	if len(x) != len(s.Means) {
		return nil, fmt.Errorf("cluster: scaler fitted on %d columns, got %d", len(s.Means), len(x))
	}
	out := make([]float64, len(x))
	for j, v := range x {
		out[j] = (v - s.Means[j]) / s.Scales[j]
	}
	return out, nil
}

func (s *StandardScaler) TransformAll(data [][]float64) ([][]float64, error) {
	out := make([][]float64, len(data))
	for i, row := range data {
		scaled, err := s.Transform(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = scaled
	}
	return out, nil
}

func checkDims(data [][]float64, dim int) error {
	if dim == 0 {
		return errors.New("cluster: rows have no columns")
	}
	for i, row := range data {
		if len(row) != dim {
			return fmt.Errorf("cluster: row %d has %d columns, expected %d", i, len(row), dim)
		}
	}
	return nil
}
