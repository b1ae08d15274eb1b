// Package query filters, orders and pages grid records. It follows the
// semantics of the grid's data-query layer so that the server and the grid
// agree on what a filter or sort descriptor means.
package query

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidFilter = errors.New("invalid filter")

// Record is anything whose fields can be looked up by grid field name.
type Record interface {
	FieldValue(name string) (any, bool)
}

type Logic string

const (
	LogicAnd Logic = "and"
	LogicOr  Logic = "or"
)

type Operator string

const (
	OpEq             Operator = "eq"
	OpNeq            Operator = "neq"
	OpLt             Operator = "lt"
	OpLte            Operator = "lte"
	OpGt             Operator = "gt"
	OpGte            Operator = "gte"
	OpContains       Operator = "contains"
	OpDoesNotContain Operator = "doesnotcontain"
	OpStartsWith     Operator = "startswith"
	OpEndsWith       Operator = "endswith"
	OpIsNull         Operator = "isnull"
	OpIsNotNull      Operator = "isnotnull"
	OpIsEmpty        Operator = "isempty"
	OpIsNotEmpty     Operator = "isnotempty"
)

// Filter is a node of a filter tree. A node without a field is composite:
// its children are combined with Logic (and when unset). A node with a field
// is a leaf comparing that field to Value.
type Filter struct {
	Logic   Logic
	Filters []Filter

	Field    string
	Operator Operator
	Value    any
	// IgnoreCase defaults to true when nil.
	IgnoreCase *bool
}

// Empty returns the always-true filter.
func Empty() Filter {
	return Filter{Logic: LogicAnd, Filters: []Filter{}}
}

func And(filters ...Filter) Filter {
	return Filter{Logic: LogicAnd, Filters: filters}
}

func Or(filters ...Filter) Filter {
	return Filter{Logic: LogicOr, Filters: filters}
}

// Where builds a case-insensitive leaf.
func Where(field string, op Operator, value any) Filter {
	return Filter{Field: field, Operator: op, Value: value}
}

// CaseSensitive returns a copy of a leaf that compares text exactly.
func (f Filter) CaseSensitive() Filter {
	off := false
	f.IgnoreCase = &off
	return f
}

func (f Filter) IsComposite() bool {
	return f.Field == ""
}

// IsEmpty reports whether the filter matches everything by construction.
func (f Filter) IsEmpty() bool {
	return f.IsComposite() && len(f.Filters) == 0
}

func (f Filter) ignoresCase() bool {
	return f.IgnoreCase == nil || *f.IgnoreCase
}

// Match evaluates the tree against one record.
func (f Filter) Match(r Record) bool {
	if f.IsComposite() {
		if len(f.Filters) == 0 {
			return true
		}
		if f.Logic == LogicOr {
			for _, child := range f.Filters {
				if child.Match(r) {
					return true
				}
			}
			return false
		}
		for _, child := range f.Filters {
			if !child.Match(r) {
				return false
			}
		}
		return true
	}

	v, _ := r.FieldValue(f.Field)
	return f.Operator.apply(v, f.Value, f.ignoresCase())
}

// Validate reports structural problems such as unknown operators.
func (f Filter) Validate() error {
	if f.IsComposite() {
		if f.Logic != "" && f.Logic != LogicAnd && f.Logic != LogicOr {
			return fmt.Errorf("%w: unknown logic %q", ErrInvalidFilter, f.Logic)
		}
		for _, child := range f.Filters {
			if err := child.Validate(); err != nil {
				return err
			}
		}
		return nil
	}
	if !f.Operator.Known() {
		return fmt.Errorf("%w: unknown operator %q on %s", ErrInvalidFilter, f.Operator, f.Field)
	}
	return nil
}

// String renders the tree for logs.
func (f Filter) String() string {
	if f.IsComposite() {
		if len(f.Filters) == 0 {
			return "(all)"
		}
		logic := f.Logic
		if logic == "" {
			logic = LogicAnd
		}
		parts := make([]string, 0, len(f.Filters))
		for _, child := range f.Filters {
			parts = append(parts, child.String())
		}
		return "(" + strings.Join(parts, " "+string(logic)+" ") + ")"
	}
	return fmt.Sprintf("%s %s %v", f.Field, f.Operator, f.Value)
}

// FilterBy returns the records matching f, in their original order.
func FilterBy[T Record](items []T, f Filter) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if f.Match(item) {
			out = append(out, item)
		}
	}
	return out
}

type compositeJSON struct {
	Logic   Logic    `json:"logic"`
	Filters []Filter `json:"filters"`
}

type leafJSON struct {
	Field      string   `json:"field"`
	Operator   Operator `json:"operator"`
	Value      any      `json:"value,omitempty"`
	IgnoreCase *bool    `json:"ignoreCase,omitempty"`
}

func (f Filter) MarshalJSON() ([]byte, error) {
	if f.IsComposite() {
		logic := f.Logic
		if logic == "" {
			logic = LogicAnd
		}
		filters := f.Filters
		if filters == nil {
			filters = []Filter{}
		}
		return json.Marshal(compositeJSON{Logic: logic, Filters: filters})
	}
	return json.Marshal(leafJSON{Field: f.Field, Operator: f.Operator, Value: f.Value, IgnoreCase: f.IgnoreCase})
}

func (f *Filter) UnmarshalJSON(data []byte) error {
	var raw struct {
		Logic      Logic    `json:"logic"`
		Filters    []Filter `json:"filters"`
		Field      string   `json:"field"`
		Operator   Operator `json:"operator"`
		Value      any      `json:"value"`
		IgnoreCase *bool    `json:"ignoreCase"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Field != "" && (raw.Logic != "" || len(raw.Filters) > 0) {
		return fmt.Errorf("%w: node has both field and children", ErrInvalidFilter)
	}
	*f = Filter{
		Logic:      raw.Logic,
		Filters:    raw.Filters,
		Field:      raw.Field,
		Operator:   raw.Operator,
		Value:      raw.Value,
		IgnoreCase: raw.IgnoreCase,
	}
	return nil
}
