package repository

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/unclebandit/customer-segmentation/internal/model"
)

const (
	latestModelKey = "segmentation:model:latest"
	latestModelTTL = 10 * time.Minute
)

// CachedModelRepository fronts a model store with a cache so predictions
// do not hit the database on every request.
type CachedModelRepository struct {
	Repo  ModelRepositoryInterface
	Cache CacheRepository
	TTL   time.Duration
}

func NewCachedModelRepository(repo ModelRepositoryInterface, cache CacheRepository) *CachedModelRepository {
	return &CachedModelRepository{Repo: repo, Cache: cache, TTL: latestModelTTL}
}

func (r *CachedModelRepository) Save(ctx context.Context, m *model.ClusterModel) error {
	if err := r.Repo.Save(ctx, m); err != nil {
		return err
	}
	r.store(ctx, m)
	return nil
}

func (r *CachedModelRepository) Latest(ctx context.Context) (*model.ClusterModel, error) {
	if raw, ok := r.Cache.Get(ctx, latestModelKey); ok {
		var m model.ClusterModel
		if err := json.Unmarshal([]byte(raw), &m); err == nil {
			return &m, nil
		}
		log.Println("⚠️ discarding unreadable cached model")
	}

	m, err := r.Repo.Latest(ctx)
	if err != nil {
		return nil, err
	}
	r.store(ctx, m)
	return m, nil
}

// cache failures are logged, the store stays authoritative
func (r *CachedModelRepository) store(ctx context.Context, m *model.ClusterModel) {
	raw, err := json.Marshal(m)
	if err != nil {
		log.Println("⚠️ failed to encode model for cache:", err)
		return
	}
	if err := r.Cache.Set(ctx, latestModelKey, string(raw), r.TTL); err != nil {
		log.Println("⚠️ failed to cache model:", err)
	}
}

var _ ModelRepositoryInterface = (*CachedModelRepository)(nil)
