package query

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Known reports whether op is one of the supported operators.
func (op Operator) Known() bool {
	switch op {
	case OpEq, OpNeq, OpLt, OpLte, OpGt, OpGte,
		OpContains, OpDoesNotContain, OpStartsWith, OpEndsWith,
		OpIsNull, OpIsNotNull, OpIsEmpty, OpIsNotEmpty:
		return true
	}
	return false
}

func (op Operator) apply(field, arg any, ignoreCase bool) bool {
	switch op {
	case OpEq:
		return equal(field, arg, ignoreCase)
	case OpNeq:
		return !equal(field, arg, ignoreCase)
	case OpLt, OpLte, OpGt, OpGte:
		if field == nil || arg == nil {
			return false
		}
		c := compare(field, arg, ignoreCase)
		switch op {
		case OpLt:
			return c < 0
		case OpLte:
			return c <= 0
		case OpGt:
			return c > 0
		default:
			return c >= 0
		}
	case OpContains:
		return strings.Contains(text(field, ignoreCase), text(arg, ignoreCase))
	case OpDoesNotContain:
		return !strings.Contains(text(field, ignoreCase), text(arg, ignoreCase))
	case OpStartsWith:
		return strings.HasPrefix(text(field, ignoreCase), text(arg, ignoreCase))
	case OpEndsWith:
		return strings.HasSuffix(text(field, ignoreCase), text(arg, ignoreCase))
	case OpIsNull:
		return field == nil
	case OpIsNotNull:
		return field != nil
	case OpIsEmpty:
		s, ok := field.(string)
		return ok && s == ""
	case OpIsNotEmpty:
		s, ok := field.(string)
		return !ok || s != ""
	}
	return false
}

func equal(a, b any, ignoreCase bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if x, y, ok := numbers(a, b); ok {
		return x.Equal(y)
	}
	if x, ok := a.(bool); ok {
		if y, ok := b.(bool); ok {
			return x == y
		}
	}
	return text(a, ignoreCase) == text(b, ignoreCase)
}

// compare orders two non-nil values. Numbers compare exactly, booleans put
// false first, everything else compares as text.
func compare(a, b any, ignoreCase bool) int {
	if x, y, ok := numbers(a, b); ok {
		return x.Cmp(y)
	}
	if x, ok := a.(bool); ok {
		if y, ok := b.(bool); ok {
			switch {
			case x == y:
				return 0
			case !x:
				return -1
			default:
				return 1
			}
		}
	}
	return strings.Compare(text(a, ignoreCase), text(b, ignoreCase))
}

// newCollator returns the text ordering used by sorting. Collators keep
// internal buffers, so each sort gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.Und)
}

// compareNullsFirst is the ordering used by sorting: nil precedes any value
// and strings follow the collation order of col.
func compareNullsFirst(a, b any, col *collate.Collator) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if col != nil {
		if x, ok := a.(string); ok {
			if y, ok := b.(string); ok {
				return col.CompareString(x, y)
			}
		}
	}
	return compare(a, b, false)
}

// numbers converts both operands to decimals when at least one of them is
// natively numeric and the other one can be read as a number.
func numbers(a, b any) (decimal.Decimal, decimal.Decimal, bool) {
	if !isNumber(a) && !isNumber(b) {
		return decimal.Decimal{}, decimal.Decimal{}, false
	}
	x, ok := toDecimal(a)
	if !ok {
		return decimal.Decimal{}, decimal.Decimal{}, false
	}
	y, ok := toDecimal(b)
	if !ok {
		return decimal.Decimal{}, decimal.Decimal{}, false
	}
	return x, y, true
}

func isNumber(v any) bool {
	switch v.(type) {
	case int, int32, int64, float32, float64, decimal.Decimal, json.Number:
		return true
	}
	return false
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case int:
		return decimal.NewFromInt(int64(t)), true
	case int32:
		return decimal.NewFromInt32(t), true
	case int64:
		return decimal.NewFromInt(t), true
	case float32:
		return decimal.NewFromFloat32(t), true
	case float64:
		return decimal.NewFromFloat(t), true
	case decimal.Decimal:
		return t, true
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		return d, err == nil
	}
	return decimal.Decimal{}, false
}

// text renders a value for string operators; nil reads as "".
func text(v any, ignoreCase bool) string {
	var s string
	switch t := v.(type) {
	case nil:
	case string:
		s = t
	case bool:
		s = strconv.FormatBool(t)
	case int:
		s = strconv.Itoa(t)
	case int64:
		s = strconv.FormatInt(t, 10)
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case decimal.Decimal:
		s = t.String()
	case json.Number:
		s = t.String()
	default:
		if b, err := json.Marshal(t); err == nil {
			s = string(b)
		}
	}
	if ignoreCase {
		return strings.ToLower(s)
	}
	return s
}
