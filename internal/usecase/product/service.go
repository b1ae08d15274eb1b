package product

import (
	"context"
	"fmt"

	domcategory "example.com/productgrid/internal/domain/category"
	domproduct "example.com/productgrid/internal/domain/product"
)

type Service struct {
	repo       domproduct.Repository
	categories domcategory.Repository
}

// NewService builds the catalog loader. categories may be nil when the
// source already embeds categories in its products.
func NewService(repo domproduct.Repository, categories domcategory.Repository) *Service {
	return &Service{repo: repo, categories: categories}
}

// LoadCatalog reads the initial collection once. Products without a category
// get the one matching their CategoryID. IDs must be unique.
func (s *Service) LoadCatalog(ctx context.Context) ([]domproduct.Product, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	byID := map[int64]*domcategory.Category{}
	if s.categories != nil {
		cats, err := s.categories.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list categories: %w", err)
		}
		for _, c := range cats {
			byID[c.ID] = c
		}
	}

	seen := make(map[int64]struct{}, len(items))
	products := make([]domproduct.Product, 0, len(items))
	for _, p := range items {
		if p == nil {
			continue
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("%w: %d", domproduct.ErrDuplicateProductID, p.ID)
		}
		seen[p.ID] = struct{}{}

		if p.Category == nil {
			if c, ok := byID[p.CategoryID]; ok {
				cat := *c
				p.Category = &cat
			}
		}
		products = append(products, *p)
	}
	return products, nil
}
