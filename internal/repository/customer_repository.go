package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/unclebandit/customer-segmentation/internal/model"
)

// CustomerRepositoryInterface is the training data source
type CustomerRepositoryInterface interface {
	ListAll(ctx context.Context) ([]model.CustomerRecord, error)
}

// CustomerRepository is the Postgres implementation
type CustomerRepository struct {
	DB *sql.DB
}

// ListAll fetches every stored customer row in feature order
func (r *CustomerRepository) ListAll(ctx context.Context) ([]model.CustomerRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers ORDER BY id`, strings.Join(model.FeatureColumns, ", "))
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []model.CustomerRecord{}
	for rows.Next() {
		var c model.CustomerRecord
		if err := rows.Scan(c.ScanTargets()...); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// Count returns the number of stored customers
func (r *CustomerRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n)
	return n, err
}

// BulkInsert loads records with COPY inside a single transaction
func (r *CustomerRepository) BulkInsert(ctx context.Context, records []model.CustomerRecord) (err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("customers", model.FeatureColumns...))
	if err != nil {
		return fmt.Errorf("prepare copy: %w", err)
	}
	for i, rec := range records {
		if _, err = stmt.ExecContext(ctx, rec.Values()...); err != nil {
			stmt.Close()
			return fmt.Errorf("copy row %d: %w", i, err)
		}
	}
	if _, err = stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return fmt.Errorf("flush copy: %w", err)
	}
	if err = stmt.Close(); err != nil {
		return err
	}
	return tx.Commit()
}

var _ CustomerRepositoryInterface = (*CustomerRepository)(nil)
