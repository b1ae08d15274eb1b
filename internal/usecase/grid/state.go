package grid

import (
	"slices"

	domproduct "example.com/productgrid/internal/domain/product"
	"example.com/productgrid/internal/domain/query"
)

const DefaultPageSize = 10

// State is the canonical grid state. Transitions never modify the receiver;
// they return the next state.
type State struct {
	Products []domproduct.Product
	Filter   query.Filter
	Sort     []query.SortDescriptor
	Page     query.Page
	EditedID *int64

	nextID int64
}

// NewState builds the startup state: names containing "j", a single sort
// descriptor on "price" and the first page.
func NewState(products []domproduct.Product, pageSize int) State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	var maxID int64
	for _, p := range products {
		maxID = max(maxID, p.ID)
	}
	return State{
		Products: slices.Clone(products),
		Filter:   query.And(query.Where(domproduct.FieldName, query.OpContains, "j")),
		Sort:     []query.SortDescriptor{{Field: "price", Dir: query.Asc}},
		Page:     query.Page{Skip: 0, Take: pageSize},
		nextID:   maxID + 1,
	}
}

func (s State) SelectRow(id int64) State {
	s.EditedID = &id
	return s
}

func (s State) ChangeSort(sort []query.SortDescriptor) State {
	s.EditedID = nil
	s.Sort = slices.Clone(sort)
	return s
}

func (s State) ChangeFilter(f query.Filter) State {
	s.EditedID = nil
	s.Filter = f
	return s
}

func (s State) ChangePage(p query.Page) State {
	s.Page = p
	return s
}

// CommitFieldEdit replaces one field of the record with the given ID. The
// collection order and every other field stay as they are.
func (s State) CommitFieldEdit(id int64, field string, value any) (State, error) {
	idx := slices.IndexFunc(s.Products, func(p domproduct.Product) bool { return p.ID == id })
	if idx < 0 {
		return s, ErrRecordNotFound
	}
	edited := s.Products[idx]
	if err := edited.SetField(field, value); err != nil {
		return s, err
	}
	products := slices.Clone(s.Products)
	products[idx] = edited
	s.Products = products
	return s, nil
}

// AddNew prepends a blank record, clears the filter so it is visible and
// starts editing it. The sort stays active, so the paging offset moves to the
// page the new record sorts onto; without a sort that is the first page.
func (s State) AddNew() State {
	id := s.nextID
	s.nextID++
	products := make([]domproduct.Product, 0, len(s.Products)+1)
	products = append(products, domproduct.New(id))
	s.Products = append(products, s.Products...)
	s.Filter = query.Empty()
	s.Page.Skip = pageStartOf(s, id)
	s.EditedID = &id
	return s
}

// pageStartOf returns the offset of the page holding the record with id in
// the filtered and sorted sequence.
func pageStartOf(s State, id int64) int {
	if s.Page.Take <= 0 {
		return 0
	}
	ordered := query.OrderBy(query.FilterBy(s.Products, s.Filter), s.Sort)
	idx := slices.IndexFunc(ordered, func(p domproduct.Product) bool { return p.ID == id })
	if idx < 0 {
		return 0
	}
	return idx / s.Page.Take * s.Page.Take
}

func (s State) FinishEditing() State {
	s.EditedID = nil
	return s
}

// ToolbarClick ends editing only when the click hit the toolbar itself rather
// than one of its buttons.
func (s State) ToolbarClick(background bool) State {
	if background {
		s.EditedID = nil
	}
	return s
}
