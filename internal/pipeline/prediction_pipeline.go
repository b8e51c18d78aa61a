// internal/pipeline/prediction_pipeline.go
package pipeline

import (
	"context"
	"fmt"

	"github.com/unclebandit/customer-segmentation/internal/cluster"
	appErrors "github.com/unclebandit/customer-segmentation/internal/errors"
	"github.com/unclebandit/customer-segmentation/internal/repository"
)

// PredictionPipeline assigns a raw feature vector to a cluster of the
// latest trained model.
type PredictionPipeline struct {
	Models repository.ModelRepositoryInterface
}

func NewPredictionPipeline(models repository.ModelRepositoryInterface) *PredictionPipeline {
	return &PredictionPipeline{Models: models}
}

// RunPipeline returns one label per call, as a slice so callers index [0].
func (p *PredictionPipeline) RunPipeline(ctx context.Context, input []float64) ([]int, error) {
	m, err := p.Models.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if len(input) != len(m.Features) {
		return nil, appErrors.NewFeatureMismatch(len(input), len(m.Features))
	}

	scaler := cluster.StandardScaler{Means: m.Means, Scales: m.Scales}
	x, err := scaler.Transform(input)
	if err != nil {
		return nil, fmt.Errorf("scale input: %w", err)
	}

	label, _ := cluster.Nearest(m.Centroids, x)
	if label < 0 {
		return nil, fmt.Errorf("model %s has no centroids", m.Version)
	}
	return []int{label}, nil
}
