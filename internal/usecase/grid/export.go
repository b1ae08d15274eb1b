package grid

import (
	"context"

	domproduct "example.com/productgrid/internal/domain/product"
)

// Column describes one exported column. Format carries the grid's format
// hint, e.g. "{0:c}" for currency.
type Column struct {
	Field  string
	Title  string
	Format string
}

// DefaultColumns mirrors the columns shown by the grid.
func DefaultColumns() []Column {
	return []Column{
		{Field: domproduct.FieldID, Title: "Product ID"},
		{Field: domproduct.FieldName, Title: "Product name"},
		{Field: domproduct.FieldUnitPrice, Title: "Price", Format: "{0:c}"},
		{Field: domproduct.FieldUnitsInStock, Title: "Count"},
	}
}

// Document is a rendered export ready to be saved by the client.
type Document struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Exporter serializes a dataset into a document.
type Exporter interface {
	Export(ctx context.Context, products []domproduct.Product, columns []Column) (*Document, error)
}
