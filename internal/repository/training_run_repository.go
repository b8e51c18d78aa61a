package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	appErrors "github.com/unclebandit/customer-segmentation/internal/errors"
	"github.com/unclebandit/customer-segmentation/internal/model"
)

type TrainingRunRepositoryInterface interface {
	Create(ctx context.Context, run *model.TrainingRun) error
	GetByID(ctx context.Context, id string) (*model.TrainingRun, error)
	UpdateStatus(ctx context.Context, id, status, modelVersion, lastError string) error
}

type TrainingRunRepository struct {
	DB *sql.DB
}

func (r *TrainingRunRepository) Create(ctx context.Context, run *model.TrainingRun) error {
	now := time.Now()
	run.CreatedAt = now
	run.UpdatedAt = now
	if run.Status == "" {
		run.Status = model.RunPending
	}
	query := `
        INSERT INTO training_runs (id, status, model_version, error, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	_, err := r.DB.ExecContext(ctx, query, run.ID, run.Status, run.ModelVersion, run.Error, run.CreatedAt, run.UpdatedAt)
	return err
}

func (r *TrainingRunRepository) GetByID(ctx context.Context, id string) (*model.TrainingRun, error) {
	query := `
        SELECT id, status, model_version, error, created_at, updated_at
        FROM training_runs
        WHERE id=$1
    `
	var run model.TrainingRun
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&run.ID, &run.Status, &run.ModelVersion, &run.Error, &run.CreatedAt, &run.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewTrainingRunNotFound(id)
		}
		return nil, err
	}
	return &run, nil
}

func (r *TrainingRunRepository) UpdateStatus(ctx context.Context, id, status, modelVersion, lastError string) error {
	query := `UPDATE training_runs SET status=$1, model_version=$2, error=$3, updated_at=NOW() WHERE id=$4`
	res, err := r.DB.ExecContext(ctx, query, status, modelVersion, lastError, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return appErrors.NewTrainingRunNotFound(id)
	}
	return nil
}

var _ TrainingRunRepositoryInterface = (*TrainingRunRepository)(nil)
