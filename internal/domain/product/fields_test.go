package product

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	domcategory "example.com/productgrid/internal/domain/category"
)

func TestFieldValue(t *testing.T) {
	p := Product{
		ID:        11,
		Name:      "Queso Cabrales",
		UnitPrice: decimal.NewFromInt(21),
		Category:  &domcategory.Category{ID: 4, Name: "Dairy Products", Description: "Cheeses"},
	}

	v, ok := p.FieldValue(FieldName)
	require.True(t, ok)
	require.Equal(t, "Queso Cabrales", v)

	v, ok = p.FieldValue(FieldCategory)
	require.True(t, ok)
	require.Equal(t, "Dairy Products", v)

	v, ok = p.FieldValue(FieldCategoryRefID)
	require.True(t, ok)
	require.Equal(t, int64(4), v)

	_, ok = p.FieldValue("Colour")
	require.False(t, ok)

	p.Category = nil
	v, ok = p.FieldValue(FieldCategoryRefDescription)
	require.True(t, ok)
	require.Nil(t, v)
}

func TestSetField(t *testing.T) {
	tests := []struct {
		name   string
		field  string
		value  any
		verify func(t *testing.T, p Product)
	}{
		{"name", FieldName, "Tofu", func(t *testing.T, p Product) { require.Equal(t, "Tofu", p.Name) }},
		{"name from nil", FieldName, nil, func(t *testing.T, p Product) { require.Equal(t, "", p.Name) }},
		{"price from float", FieldUnitPrice, 23.25, func(t *testing.T, p Product) {
			require.True(t, decimal.RequireFromString("23.25").Equal(p.UnitPrice))
		}},
		{"price from string", FieldUnitPrice, " 7.5 ", func(t *testing.T, p Product) {
			require.True(t, decimal.RequireFromString("7.5").Equal(p.UnitPrice))
		}},
		{"stock truncates", FieldUnitsInStock, 12.9, func(t *testing.T, p Product) { require.Equal(t, int64(12), p.UnitsInStock) }},
		{"stock from json number", FieldUnitsInStock, json.Number("40"), func(t *testing.T, p Product) {
			require.Equal(t, int64(40), p.UnitsInStock)
		}},
		{"largest float below int64 range", FieldUnitsOnOrder, 9.2e18, func(t *testing.T, p Product) {
			require.Equal(t, int64(9200000000000000000), p.UnitsOnOrder)
		}},
		{"negative stock accepted", FieldUnitsInStock, -3, func(t *testing.T, p Product) { require.Equal(t, int64(-3), p.UnitsInStock) }},
		{"discontinued", FieldDiscontinued, "true", func(t *testing.T, p Product) { require.True(t, p.Discontinued) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{ID: 1, Name: "Chai", UnitPrice: decimal.NewFromInt(18), UnitsInStock: 39}
			require.NoError(t, p.SetField(tt.field, tt.value))
			require.Equal(t, int64(1), p.ID)
			tt.verify(t, p)
		})
	}
}

func TestSetField_Errors(t *testing.T) {
	p := New(5)

	require.ErrorIs(t, p.SetField("Colour", "red"), ErrUnknownField)
	require.ErrorIs(t, p.SetField(FieldID, 6), ErrFieldReadOnly)
	require.ErrorIs(t, p.SetField(FieldCategory, "Seafood"), ErrFieldReadOnly)
	require.ErrorIs(t, p.SetField(FieldUnitsInStock, "many"), ErrInvalidFieldValue)
	require.ErrorIs(t, p.SetField(FieldDiscontinued, []int{1}), ErrInvalidFieldValue)
	require.ErrorIs(t, p.SetField(FieldUnitsInStock, 1e300), ErrInvalidFieldValue)
	require.ErrorIs(t, p.SetField(FieldUnitsOnOrder, -1e19), ErrInvalidFieldValue)
	require.ErrorIs(t, p.SetField(FieldReorderLevel, math.NaN()), ErrInvalidFieldValue)
	require.ErrorIs(t, p.SetField(FieldSupplierID, "99999999999999999999"), ErrInvalidFieldValue)

	require.Equal(t, New(5), p)
}
