package query

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type row map[string]any

func (r row) FieldValue(name string) (any, bool) {
	v, ok := r[name]
	return v, ok
}

func names(rows []row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r["name"].(string))
	}
	return out
}

func TestFilterBy_ContainsIgnoreCase(t *testing.T) {
	rows := []row{{"name": "Jam"}, {"name": "apple"}, {"name": "Ajax"}}

	got := FilterBy(rows, And(Where("name", OpContains, "j")))

	require.Equal(t, []string{"Jam", "Ajax"}, names(got))
}

func TestFilterBy_CaseSensitive(t *testing.T) {
	rows := []row{{"name": "Jam"}, {"name": "apple"}, {"name": "Ajax"}}

	got := FilterBy(rows, And(Where("name", OpContains, "j").CaseSensitive()))

	require.Equal(t, []string{"Ajax"}, names(got))
}

func TestFilterBy_EmptyMatchesAll(t *testing.T) {
	rows := []row{{"name": "a"}, {"name": "b"}}

	require.Len(t, FilterBy(rows, Empty()), 2)
	require.Len(t, FilterBy(rows, Filter{}), 2)
}

func TestFilterBy_Logic(t *testing.T) {
	rows := []row{
		{"name": "a", "price": int64(5)},
		{"name": "b", "price": int64(15)},
		{"name": "c", "price": int64(25)},
	}

	and := And(Where("price", OpGt, 1.0), Where("price", OpLt, 20.0))
	require.Equal(t, []string{"a", "b"}, names(FilterBy(rows, and)))

	or := Or(Where("name", OpEq, "A"), Where("price", OpGte, 25))
	require.Equal(t, []string{"a", "c"}, names(FilterBy(rows, or)))

	nested := And(Or(Where("name", OpEq, "a"), Where("name", OpEq, "c")), Where("price", OpNeq, 5))
	require.Equal(t, []string{"c"}, names(FilterBy(rows, nested)))
}

func TestFilter_Operators(t *testing.T) {
	r := row{
		"name":  "Chai Tea",
		"price": decimal.RequireFromString("18.00"),
		"stock": int64(39),
		"empty": "",
		"flag":  true,
		"cat":   nil,
	}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"eq decimal vs float", Where("price", OpEq, 18.0), true},
		{"eq int vs string number", Where("stock", OpEq, "39"), true},
		{"neq", Where("stock", OpNeq, 40), true},
		{"lte", Where("price", OpLte, 18), true},
		{"lt", Where("price", OpLt, 18), false},
		{"gte", Where("stock", OpGte, 39.5), false},
		{"startswith", Where("name", OpStartsWith, "chai"), true},
		{"endswith", Where("name", OpEndsWith, "TEA"), true},
		{"doesnotcontain", Where("name", OpDoesNotContain, "coffee"), true},
		{"isnull", Where("cat", OpIsNull, nil), true},
		{"isnotnull", Where("name", OpIsNotNull, nil), true},
		{"isempty", Where("empty", OpIsEmpty, nil), true},
		{"isnotempty", Where("name", OpIsNotEmpty, nil), true},
		{"bool eq", Where("flag", OpEq, true), true},
		{"nil never less", Where("cat", OpLt, 1), false},
		{"unknown field is nil", Where("missing", OpIsNull, nil), true},
		{"unknown operator", Where("name", Operator("like"), "chai"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.filter.Match(r))
		})
	}
}

func TestFilterBy_EveryResultMatchesAndNoMatchIsDropped(t *testing.T) {
	rows := []row{
		{"name": "a", "price": int64(1)},
		{"name": "b", "price": int64(2)},
		{"name": "c", "price": int64(3)},
		{"name": "d", "price": int64(4)},
	}
	f := Or(Where("price", OpLt, 2), Where("name", OpEq, "d"))

	got := FilterBy(rows, f)

	for _, r := range got {
		require.True(t, f.Match(r))
	}
	for _, r := range rows {
		if !f.Match(r) {
			require.NotContains(t, got, r)
		}
	}
	require.Len(t, got, 2)
}

func TestFilter_JSONRoundTrip(t *testing.T) {
	raw := `{"logic":"and","filters":[{"field":"ProductName","operator":"contains","value":"j","ignoreCase":true},{"logic":"or","filters":[]}]}`

	var f Filter
	require.NoError(t, json.Unmarshal([]byte(raw), &f))
	require.True(t, f.IsComposite())
	require.Len(t, f.Filters, 2)
	require.Equal(t, "ProductName", f.Filters[0].Field)
	require.Equal(t, OpContains, f.Filters[0].Operator)
	require.True(t, f.Filters[1].IsEmpty())

	out, err := json.Marshal(f)
	require.NoError(t, err)
	require.JSONEq(t, raw, string(out))
}

func TestFilter_EmptyMarshalsWithFilterList(t *testing.T) {
	out, err := json.Marshal(Empty())
	require.NoError(t, err)
	require.JSONEq(t, `{"logic":"and","filters":[]}`, string(out))
}

func TestFilter_UnmarshalRejectsMixedNode(t *testing.T) {
	var f Filter
	err := json.Unmarshal([]byte(`{"logic":"and","field":"x","operator":"eq"}`), &f)
	require.ErrorIs(t, err, ErrInvalidFilter)
}

func TestFilter_Validate(t *testing.T) {
	require.NoError(t, And(Where("a", OpEq, 1)).Validate())
	require.ErrorIs(t, And(Where("a", "like", 1)).Validate(), ErrInvalidFilter)
	require.ErrorIs(t, Filter{Logic: "xor"}.Validate(), ErrInvalidFilter)
}
