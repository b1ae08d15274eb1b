package product

import "errors"

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrUnknownField       = errors.New("unknown product field")
	ErrFieldReadOnly      = errors.New("product field is read-only")
	ErrInvalidFieldValue  = errors.New("value cannot be stored in product field")
	ErrDuplicateProductID = errors.New("duplicate product id")
)
