package mysql

import (
	"context"
	"database/sql"

	domproduct "example.com/productgrid/internal/domain/product"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) List(ctx context.Context) ([]*domproduct.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name, supplier_id, category_id, quantity_per_unit, unit_price,
               units_in_stock, units_on_order, reorder_level, discontinued
        FROM products
        ORDER BY id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*domproduct.Product
	for rows.Next() {
		var p domproduct.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.SupplierID, &p.CategoryID, &p.QuantityPerUnit, &p.UnitPrice,
			&p.UnitsInStock, &p.UnitsOnOrder, &p.ReorderLevel, &p.Discontinued,
		); err != nil {
			return nil, err
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}
