package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domproduct "example.com/productgrid/internal/domain/product"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func (r *ProductRepository) List(ctx context.Context) ([]*domproduct.Product, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, name, supplier_id, category_id, quantity_per_unit, unit_price::text,
               units_in_stock, units_on_order, reorder_level, discontinued
        FROM products
        ORDER BY id
    `)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domproduct.Product, error) {
		var (
			p     domproduct.Product
			price string
		)
		if err := row.Scan(
			&p.ID, &p.Name, &p.SupplierID, &p.CategoryID, &p.QuantityPerUnit, &price,
			&p.UnitsInStock, &p.UnitsOnOrder, &p.ReorderLevel, &p.Discontinued,
		); err != nil {
			return nil, err
		}
		unitPrice, err := decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("product %d unit price: %w", p.ID, err)
		}
		p.UnitPrice = unitPrice
		return &p, nil
	})
}
