// internal/pipeline/train_pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/unclebandit/customer-segmentation/internal/cluster"
	"github.com/unclebandit/customer-segmentation/internal/config"
	appErrors "github.com/unclebandit/customer-segmentation/internal/errors"
	"github.com/unclebandit/customer-segmentation/internal/model"
	"github.com/unclebandit/customer-segmentation/internal/repository"
)

const minElbowK = 2

// TrainPipeline retrains the segmentation model from the stored customers:
// ingest, scale, choose k, fit k-means, persist.
type TrainPipeline struct {
	Customers repository.CustomerRepositoryInterface
	Models    repository.ModelRepositoryInterface
	Config    config.ModelConfig
}

func NewTrainPipeline(customers repository.CustomerRepositoryInterface, models repository.ModelRepositoryInterface, cfg config.ModelConfig) *TrainPipeline {
	return &TrainPipeline{Customers: customers, Models: models, Config: cfg}
}

func (p *TrainPipeline) RunPipeline(ctx context.Context) (*model.ClusterModel, error) {
	start := time.Now()

	log.Println("--- Stage 1: Data ingestion ---")
	customers, err := p.Customers.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("data ingestion: %w", err)
	}

	log.Println("--- Stage 2: Data validation ---")
	if required := p.requiredSamples(); len(customers) < required {
		return nil, appErrors.NewInsufficientData(len(customers), required)
	}
	if err := validateFinite(customers); err != nil {
		return nil, err
	}

	log.Println("--- Stage 3: Data transformation ---")
	raw := make([][]float64, len(customers))
	for i, c := range customers {
		raw[i] = c.Vector()
	}
	scaler, err := cluster.FitScaler(raw)
	if err != nil {
		return nil, fmt.Errorf("data transformation: %w", err)
	}
	scaled, err := scaler.TransformAll(raw)
	if err != nil {
		return nil, fmt.Errorf("data transformation: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Println("--- Stage 4: Model training ---")
	km := cluster.KMeans{
		K:       p.Config.Clusters,
		MaxIter: p.Config.MaxIter,
		NInit:   p.Config.NInit,
		Seed:    p.Config.Seed,
	}
	if km.K <= 0 {
		k, inertias, err := cluster.ElbowK(scaled, minElbowK, p.Config.MaxClusters, km)
		if err != nil {
			return nil, fmt.Errorf("model training: %w", err)
		}
		log.Printf("Elbow search over k=%d..%d picked k=%d (inertias %v)\n", minElbowK, minElbowK+len(inertias)-1, k, inertias)
		km.K = k
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := km.Fit(scaled)
	if err != nil {
		return nil, fmt.Errorf("model training: %w", err)
	}

	m := &model.ClusterModel{
		Version:      uuid.New().String(),
		K:            km.K,
		Features:     append([]string(nil), model.FeatureNames...),
		Means:        scaler.Means,
		Scales:       scaler.Scales,
		Centroids:    res.Centroids,
		ClusterSizes: res.Sizes,
		Inertia:      res.Inertia,
		Samples:      len(customers),
		TrainedAt:    time.Now().UTC(),
	}

	log.Println("--- Stage 5: Model pusher ---")
	if err := p.Models.Save(ctx, m); err != nil {
		return nil, fmt.Errorf("model pusher: %w", err)
	}

	log.Printf("✅ Trained model %s: k=%d samples=%d inertia=%.3f in %s\n",
		m.Version, m.K, m.Samples, m.Inertia, time.Since(start).Round(time.Millisecond))
	return m, nil
}

// requiredSamples is the smallest dataset the configured search can use.
func (p *TrainPipeline) requiredSamples() int {
	if p.Config.Clusters > 0 {
		return max(p.Config.Clusters, 2)
	}
	return max(p.Config.MaxClusters, minElbowK) + 1
}

func validateFinite(customers []model.CustomerRecord) error {
	for i, c := range customers {
		for j, v := range c.Vector() {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return appErrors.NewNonFiniteValue(i, model.FeatureNames[j], v)
			}
		}
	}
	return nil
}
