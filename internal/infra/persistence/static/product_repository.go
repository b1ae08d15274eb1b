// Package static serves the bundled sample catalog and the configured editor.
package static

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	domproduct "example.com/productgrid/internal/domain/product"
)

//go:embed products.json
var sampleProducts []byte

type ProductRepository struct {
	data []byte
}

// NewProductRepository serves the bundled sample products.
func NewProductRepository() *ProductRepository {
	return &ProductRepository{data: sampleProducts}
}

// NewFileProductRepository reads products from a JSON file with the same
// shape as the bundled sample.
func NewFileProductRepository(path string) (*ProductRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read products file: %w", err)
	}
	return &ProductRepository{data: data}, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]*domproduct.Product, error) {
	dec := json.NewDecoder(bytes.NewReader(r.data))
	dec.DisallowUnknownFields()
	var products []*domproduct.Product
	if err := dec.Decode(&products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}
