package product

import (
	"github.com/shopspring/decimal"

	domcategory "example.com/productgrid/internal/domain/category"
)

// Product is one catalog item. JSON names follow the grid's field names.
type Product struct {
	ID              int64                 `json:"ProductID"`
	Name            string                `json:"ProductName"`
	SupplierID      int64                 `json:"SupplierID"`
	CategoryID      int64                 `json:"CategoryID"`
	QuantityPerUnit string                `json:"QuantityPerUnit"`
	UnitPrice       decimal.Decimal       `json:"UnitPrice"`
	UnitsInStock    int64                 `json:"UnitsInStock"`
	UnitsOnOrder    int64                 `json:"UnitsOnOrder"`
	ReorderLevel    int64                 `json:"ReorderLevel"`
	Discontinued    bool                  `json:"Discontinued"`
	Category        *domcategory.Category `json:"Category"`
}

// New returns the blank record created by "add new".
func New(id int64) Product {
	return Product{ID: id, UnitPrice: decimal.Zero}
}
