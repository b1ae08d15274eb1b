package mysql

import (
	"context"
	"database/sql"

	domcategory "example.com/productgrid/internal/domain/category"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List(ctx context.Context) ([]*domcategory.Category, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name, description
        FROM categories
        ORDER BY id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*domcategory.Category
	for rows.Next() {
		var c domcategory.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}
