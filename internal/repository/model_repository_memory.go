package repository

import (
	"context"
	"sync"

	appErrors "github.com/unclebandit/customer-segmentation/internal/errors"
	"github.com/unclebandit/customer-segmentation/internal/model"
)

type ModelRepositoryMemory struct {
	mu     sync.RWMutex
	latest *model.ClusterModel
	saved  int
}

func NewModelRepositoryMemory() *ModelRepositoryMemory {
	return &ModelRepositoryMemory{}
}

func (r *ModelRepositoryMemory) Save(ctx context.Context, m *model.ClusterModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.latest = m
	r.saved++
	return nil
}

func (r *ModelRepositoryMemory) Latest(ctx context.Context) (*model.ClusterModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.latest == nil {
		return nil, appErrors.NewModelNotFound()
	}
	return r.latest, nil
}

// Saved reports how many models have been stored
func (r *ModelRepositoryMemory) Saved() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saved
}

var _ ModelRepositoryInterface = (*ModelRepositoryMemory)(nil)
