package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domcategory "example.com/productgrid/internal/domain/category"
)

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

func (r *CategoryRepository) List(ctx context.Context) ([]*domcategory.Category, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, name, description
        FROM categories
        ORDER BY id
    `)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domcategory.Category, error) {
		var c domcategory.Category
		if err := row.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		return &c, nil
	})
}
