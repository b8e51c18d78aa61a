package repository

import (
	"context"
	"sync"
	"time"

	appErrors "github.com/unclebandit/customer-segmentation/internal/errors"
	"github.com/unclebandit/customer-segmentation/internal/model"
)

type TrainingRunRepositoryMemory struct {
	mu   sync.RWMutex
	runs map[string]model.TrainingRun
}

func NewTrainingRunRepositoryMemory() *TrainingRunRepositoryMemory {
	return &TrainingRunRepositoryMemory{runs: make(map[string]model.TrainingRun)}
}

func (r *TrainingRunRepositoryMemory) Create(ctx context.Context, run *model.TrainingRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	run.CreatedAt = now
	run.UpdatedAt = now
	if run.Status == "" {
		run.Status = model.RunPending
	}
	r.runs[run.ID] = *run
	return nil
}

func (r *TrainingRunRepositoryMemory) GetByID(ctx context.Context, id string) (*model.TrainingRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	run, ok := r.runs[id]
	if !ok {
		return nil, appErrors.NewTrainingRunNotFound(id)
	}
	return &run, nil
}

func (r *TrainingRunRepositoryMemory) UpdateStatus(ctx context.Context, id, status, modelVersion, lastError string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	run, ok := r.runs[id]
	if !ok {
		return appErrors.NewTrainingRunNotFound(id)
	}
	run.Status = status
	run.ModelVersion = modelVersion
	run.Error = lastError
	run.UpdatedAt = time.Now()
	r.runs[id] = run
	return nil
}

var _ TrainingRunRepositoryInterface = (*TrainingRunRepositoryMemory)(nil)
