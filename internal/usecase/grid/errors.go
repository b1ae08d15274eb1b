package grid

import (
	"errors"

	domproduct "example.com/productgrid/internal/domain/product"
)

// Conditions under which an event is dropped without changing state. The
// controller reports them so callers can decide whether to surface them.
var (
	ErrRecordNotFound  = domproduct.ErrProductNotFound
	ErrNoSelection     = errors.New("no row selected")
	ErrAdapterNotReady = errors.New("export adapter not ready")
)

// IsNoOp reports whether err is one of the silent no-op conditions.
func IsNoOp(err error) bool {
	return errors.Is(err, ErrRecordNotFound) ||
		errors.Is(err, ErrNoSelection) ||
		errors.Is(err, ErrAdapterNotReady) ||
		errors.Is(err, domproduct.ErrUnknownField) ||
		errors.Is(err, domproduct.ErrFieldReadOnly) ||
		errors.Is(err, domproduct.ErrInvalidFieldValue)
}
