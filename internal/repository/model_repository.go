package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	appErrors "github.com/unclebandit/customer-segmentation/internal/errors"
	"github.com/unclebandit/customer-segmentation/internal/model"
)

type ModelRepositoryInterface interface {
	Save(ctx context.Context, m *model.ClusterModel) error
	// Latest returns appErrors.ErrModelNotFound when nothing was trained yet
	Latest(ctx context.Context) (*model.ClusterModel, error)
}

// ModelRepository persists cluster models in Postgres, vectors as JSONB
type ModelRepository struct {
	DB *sql.DB
}

func (r *ModelRepository) Save(ctx context.Context, m *model.ClusterModel) error {
	features, err := json.Marshal(m.Features)
	if err != nil {
		return err
	}
	means, err := json.Marshal(m.Means)
	if err != nil {
		return err
	}
	scales, err := json.Marshal(m.Scales)
	if err != nil {
		return err
	}
	centroids, err := json.Marshal(m.Centroids)
	if err != nil {
		return err
	}
	sizes, err := json.Marshal(m.ClusterSizes)
	if err != nil {
		return err
	}

	query := `
        INSERT INTO cluster_models (version, k, features, means, scales, centroids, cluster_sizes, inertia, samples, trained_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `
	_, err = r.DB.ExecContext(ctx, query,
		m.Version, m.K, features, means, scales, centroids, sizes, m.Inertia, m.Samples, m.TrainedAt)
	return err
}

func (r *ModelRepository) Latest(ctx context.Context) (*model.ClusterModel, error) {
	query := `
        SELECT version, k, features, means, scales, centroids, cluster_sizes, inertia, samples, trained_at
        FROM cluster_models
        ORDER BY trained_at DESC
        LIMIT 1
    `
	var m model.ClusterModel
	var features, means, scales, centroids, sizes []byte
	err := r.DB.QueryRowContext(ctx, query).Scan(
		&m.Version, &m.K, &features, &means, &scales, &centroids, &sizes,
		&m.Inertia, &m.Samples, &m.TrainedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewModelNotFound()
		}
		return nil, err
	}

	for _, col := range []struct {
		raw []byte
		dst any
	}{
		{features, &m.Features},
		{means, &m.Means},
		{scales, &m.Scales},
		{centroids, &m.Centroids},
		{sizes, &m.ClusterSizes},
	} {
		if err := json.Unmarshal(col.raw, col.dst); err != nil {
			return nil, fmt.Errorf("decode model %s: %w", m.Version, err)
		}
	}
	return &m, nil
}

var _ ModelRepositoryInterface = (*ModelRepository)(nil)
