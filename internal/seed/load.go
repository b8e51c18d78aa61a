package seed

import (
	"context"
	"log"

	"github.com/unclebandit/customer-segmentation/internal/model"
)

// Store is the part of the customer repository seeding needs
type Store interface {
	Count(ctx context.Context) (int, error)
	BulkInsert(ctx context.Context, records []model.CustomerRecord) error
}

// Load inserts records only into an empty store, so running the seeder
// twice does not duplicate the training set. It returns the rows inserted.
func Load(ctx context.Context, store Store, records []model.CustomerRecord) (int, error) {
	n, err := store.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Printf("⚠️ customers already holds %d rows, skipping seed\n", n)
		return 0, nil
	}

	if err := store.BulkInsert(ctx, records); err != nil {
		return 0, err
	}
	return len(records), nil
}
