package repository

import (
	"context"
	"sync"

	"github.com/unclebandit/customer-segmentation/internal/model"
)

// CustomerRepositoryMemory keeps customers in process; used when no
// database is configured and in tests.
type CustomerRepositoryMemory struct {
	mu        sync.RWMutex
	customers []model.CustomerRecord
}

func NewCustomerRepositoryMemory(seed ...model.CustomerRecord) *CustomerRepositoryMemory {
	return &CustomerRepositoryMemory{customers: append([]model.CustomerRecord(nil), seed...)}
}

func (r *CustomerRepositoryMemory) Add(records ...model.CustomerRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers = append(r.customers, records...)
}

func (r *CustomerRepositoryMemory) ListAll(ctx context.Context) ([]model.CustomerRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.CustomerRecord, len(r.customers))
	copy(out, r.customers)
	return out, nil
}

var _ CustomerRepositoryInterface = (*CustomerRepositoryMemory)(nil)
