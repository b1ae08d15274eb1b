package query

import "slices"

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortDescriptor orders by one field. A descriptor without a direction is
// ignored.
type SortDescriptor struct {
	Field string    `json:"field" validate:"required"`
	Dir   Direction `json:"dir,omitempty" validate:"omitempty,oneof=asc desc"`
}

// OrderBy returns a sorted copy of items. The sort is stable, so records with
// equal keys (including records lacking the field) keep their input order.
// Text is ordered by locale collation, not by byte value.
func OrderBy[T Record](items []T, sort []SortDescriptor) []T {
	out := slices.Clone(items)
	active := make([]SortDescriptor, 0, len(sort))
	for _, d := range sort {
		if d.Dir == Asc || d.Dir == Desc {
			active = append(active, d)
		}
	}
	if len(active) == 0 {
		return out
	}
	col := newCollator()
	slices.SortStableFunc(out, func(a, b T) int {
		for _, d := range active {
			av, _ := a.FieldValue(d.Field)
			bv, _ := b.FieldValue(d.Field)
			c := compareNullsFirst(av, bv, col)
			if c == 0 {
				continue
			}
			if d.Dir == Desc {
				return -c
			}
			return c
		}
		return 0
	})
	return out
}
