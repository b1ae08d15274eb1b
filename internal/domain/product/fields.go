package product

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Grid field names.
const (
	FieldID              = "ProductID"
	FieldName            = "ProductName"
	FieldSupplierID      = "SupplierID"
	FieldCategoryID      = "CategoryID"
	FieldQuantityPerUnit = "QuantityPerUnit"
	FieldUnitPrice       = "UnitPrice"
	FieldUnitsInStock    = "UnitsInStock"
	FieldUnitsOnOrder    = "UnitsOnOrder"
	FieldReorderLevel    = "ReorderLevel"
	FieldDiscontinued    = "Discontinued"
	FieldCategory        = "Category"

	FieldCategoryRefID          = "Category.CategoryID"
	FieldCategoryRefName        = "Category.CategoryName"
	FieldCategoryRefDescription = "Category.Description"
)

// FieldValue resolves a field by its grid name. The returned value is one of
// int64, string, bool, decimal.Decimal or nil. Category resolves to the
// category name, or nil without a category. ok is false for unknown names.
func (p Product) FieldValue(name string) (any, bool) {
	switch name {
	case FieldID:
		return p.ID, true
	case FieldName:
		return p.Name, true
	case FieldSupplierID:
		return p.SupplierID, true
	case FieldCategoryID:
		return p.CategoryID, true
	case FieldQuantityPerUnit:
		return p.QuantityPerUnit, true
	case FieldUnitPrice:
		return p.UnitPrice, true
	case FieldUnitsInStock:
		return p.UnitsInStock, true
	case FieldUnitsOnOrder:
		return p.UnitsOnOrder, true
	case FieldReorderLevel:
		return p.ReorderLevel, true
	case FieldDiscontinued:
		return p.Discontinued, true
	case FieldCategory:
		if p.Category == nil {
			return nil, true
		}
		return p.Category.Name, true
	case FieldCategoryRefID, FieldCategoryRefName, FieldCategoryRefDescription:
		if p.Category == nil {
			return nil, true
		}
		switch name {
		case FieldCategoryRefID:
			return p.Category.ID, true
		case FieldCategoryRefName:
			return p.Category.Name, true
		default:
			return p.Category.Description, true
		}
	}
	return nil, false
}

// SetField writes value into the named field. Values are coerced to the
// field's representation but never range checked.
func (p *Product) SetField(name string, value any) error {
	var err error
	switch name {
	case FieldID, FieldCategory, FieldCategoryRefID, FieldCategoryRefName, FieldCategoryRefDescription:
		return fmt.Errorf("%w: %s", ErrFieldReadOnly, name)
	case FieldName:
		p.Name, err = toString(value)
	case FieldSupplierID:
		p.SupplierID, err = toInt64(value)
	case FieldCategoryID:
		p.CategoryID, err = toInt64(value)
	case FieldQuantityPerUnit:
		p.QuantityPerUnit, err = toString(value)
	case FieldUnitPrice:
		p.UnitPrice, err = toDecimal(value)
	case FieldUnitsInStock:
		p.UnitsInStock, err = toInt64(value)
	case FieldUnitsOnOrder:
		p.UnitsOnOrder, err = toInt64(value)
	case FieldReorderLevel:
		p.ReorderLevel, err = toInt64(value)
	case FieldDiscontinued:
		p.Discontinued, err = toBool(value)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidFieldValue, name, err)
	}
	return nil
}

func toString(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case bool:
		return strconv.FormatBool(t), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case json.Number:
		return t.String(), nil
	case fmt.Stringer:
		return t.String(), nil
	}
	return "", fmt.Errorf("unsupported type %T", v)
}

var (
	minInt64 = decimal.NewFromInt(math.MinInt64)
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
)

// toInt64 truncates fractional numbers toward zero. Numbers outside the int64
// range cannot be represented and are rejected.
func toInt64(v any) (int64, error) {
	switch t := v.(type) {
	case nil:
		return 0, nil
	case int:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case int64:
		return t, nil
	case float32:
		return floatToInt64(float64(t))
	case float64:
		return floatToInt64(t)
	case decimal.Decimal:
		return decimalToInt64(t)
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return 0, err
		}
		return decimalToInt64(d)
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		if err != nil {
			return 0, err
		}
		return decimalToInt64(d)
	}
	return 0, fmt.Errorf("unsupported type %T", v)
}

func floatToInt64(f float64) (int64, error) {
	f = math.Trunc(f)
	// 2^63 is exactly representable; MaxInt64 is not.
	if math.IsNaN(f) || f < math.MinInt64 || f >= -math.MinInt64 {
		return 0, fmt.Errorf("%v out of int64 range", f)
	}
	return int64(f), nil
}

func decimalToInt64(d decimal.Decimal) (int64, error) {
	d = d.Truncate(0)
	if d.LessThan(minInt64) || d.GreaterThan(maxInt64) {
		return 0, fmt.Errorf("%s out of int64 range", d)
	}
	return d.IntPart(), nil
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch t := v.(type) {
	case nil:
		return decimal.Zero, nil
	case decimal.Decimal:
		return t, nil
	case int:
		return decimal.NewFromInt(int64(t)), nil
	case int64:
		return decimal.NewFromInt(t), nil
	case float32:
		return decimal.NewFromFloat32(t), nil
	case float64:
		return decimal.NewFromFloat(t), nil
	case json.Number:
		return decimal.NewFromString(t.String())
	case string:
		return decimal.NewFromString(strings.TrimSpace(t))
	}
	return decimal.Zero, fmt.Errorf("unsupported type %T", v)
}

func toBool(v any) (bool, error) {
	switch t := v.(type) {
	case nil:
		return false, nil
	case bool:
		return t, nil
	case string:
		return strconv.ParseBool(strings.TrimSpace(t))
	case float64:
		return t != 0, nil
	case int:
		return t != 0, nil
	case int64:
		return t != 0, nil
	}
	return false, fmt.Errorf("unsupported type %T", v)
}
