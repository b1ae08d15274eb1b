package grid

import (
	domproduct "example.com/productgrid/internal/domain/product"
	"example.com/productgrid/internal/domain/query"
)

// EditField names the row flag the grid reads to put a row in edit mode.
const EditField = "inEditor"

// Row is a product annotated with its edit-mode flag.
type Row struct {
	domproduct.Product
	InEditor bool
}

// View is everything the grid needs to render one state.
type View struct {
	Data     []Row
	Total    int
	All      []Row
	Sort     []query.SortDescriptor
	Filter   query.Filter
	Page     query.Page
	EditedID *int64
	Version  uint64
}

func (v View) FinishDisabled() bool {
	return v.EditedID == nil
}

// Products returns the full filtered and sorted sequence without flags.
func (v View) Products() []domproduct.Product {
	out := make([]domproduct.Product, len(v.All))
	for i, r := range v.All {
		out[i] = r.Product
	}
	return out
}

// BuildView runs filter, sort, edit-flag annotation and paging, in that
// order, over the whole collection.
func BuildView(s State) View {
	filtered := query.FilterBy(s.Products, s.Filter)
	sorted := query.OrderBy(filtered, s.Sort)

	rows := make([]Row, len(sorted))
	for i, p := range sorted {
		rows[i] = Row{Product: p, InEditor: s.EditedID != nil && p.ID == *s.EditedID}
	}

	return View{
		Data:     query.Paginate(rows, s.Page),
		Total:    len(rows),
		All:      rows,
		Sort:     s.Sort,
		Filter:   s.Filter,
		Page:     s.Page,
		EditedID: s.EditedID,
	}
}
