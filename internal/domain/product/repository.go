package product

import "context"

// Repository supplies the initial collection. It is read once at startup.
type Repository interface {
	List(ctx context.Context) ([]*Product, error)
}
