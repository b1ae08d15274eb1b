package grid

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	domproduct "example.com/productgrid/internal/domain/product"
	"example.com/productgrid/internal/domain/query"
)

type Options struct {
	PageSize int
	Columns  []Column
	Excel    Exporter
	PDF      Exporter
	Logger   *slog.Logger
}

type observer struct {
	id int
	fn func(View)
}

// Controller owns the product table state. Every event runs to completion
// under the lock, then observers are notified with the resulting view.
type Controller struct {
	mu        sync.Mutex
	state     State
	version   uint64
	observers []observer
	nextObsID int

	columns []Column
	excel   Exporter
	pdf     Exporter
	logger  *slog.Logger
}

func NewController(products []domproduct.Product, opts Options) *Controller {
	columns := opts.Columns
	if len(columns) == 0 {
		columns = DefaultColumns()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		state:   NewState(products, opts.PageSize),
		columns: columns,
		excel:   opts.Excel,
		pdf:     opts.PDF,
		logger:  logger.With(slog.String("component", "grid")),
	}
}

// Subscribe registers fn to run after every completed transition. The
// returned function removes it.
func (c *Controller) Subscribe(fn func(View)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextObsID++
	id := c.nextObsID
	c.observers = append(c.observers, observer{id: id, fn: fn})
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.observers = slices.DeleteFunc(c.observers, func(o observer) bool { return o.id == id })
	}
}

func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Products = slices.Clone(s.Products)
	return s
}

// SelectRow puts the clicked row in edit mode. A click without a record
// changes nothing.
func (c *Controller) SelectRow(id *int64) (View, error) {
	if id == nil {
		c.logger.Debug("selected no product")
		return c.View(), ErrNoSelection
	}
	c.logger.Debug("selected product", slog.Int64("product_id", *id))
	return c.apply(func(s State) (State, error) { return s.SelectRow(*id), nil })
}

func (c *Controller) ChangeSort(sort []query.SortDescriptor) (View, error) {
	if len(sort) > 0 {
		c.logger.Debug("sort changed", slog.String("field", sort[0].Field), slog.String("dir", string(sort[0].Dir)))
	} else {
		c.logger.Debug("unsorted")
	}
	return c.apply(func(s State) (State, error) { return s.ChangeSort(sort), nil })
}

func (c *Controller) ChangeFilter(f query.Filter) (View, error) {
	c.logger.Debug("filter changed", slog.String("filter", f.String()))
	return c.apply(func(s State) (State, error) { return s.ChangeFilter(f), nil })
}

func (c *Controller) ChangePage(p query.Page) (View, error) {
	c.logger.Debug("page changed", slog.Int("skip", p.Skip), slog.Int("take", p.Take))
	return c.apply(func(s State) (State, error) { return s.ChangePage(p), nil })
}

// CommitFieldEdit writes value into one field of the record with the given
// ID. Missing records and unwritable values leave the state untouched.
func (c *Controller) CommitFieldEdit(id int64, field string, value any) (View, error) {
	view, err := c.apply(func(s State) (State, error) { return s.CommitFieldEdit(id, field, value) })
	if err != nil {
		c.logger.Debug("field edit dropped",
			slog.Int64("product_id", id), slog.String("field", field), slog.Any("error", err))
	}
	return view, err
}

func (c *Controller) AddNew() (View, error) {
	view, err := c.apply(func(s State) (State, error) { return s.AddNew(), nil })
	if view.EditedID != nil {
		c.logger.Info("product added", slog.Int64("product_id", *view.EditedID))
	}
	return view, err
}

func (c *Controller) FinishEditing() (View, error) {
	return c.apply(func(s State) (State, error) { return s.FinishEditing(), nil })
}

func (c *Controller) ToolbarClick(background bool) (View, error) {
	return c.apply(func(s State) (State, error) { return s.ToolbarClick(background), nil })
}

// ExportExcel serializes the full filtered and sorted sequence, not just the
// current page.
func (c *Controller) ExportExcel(ctx context.Context) (*Document, error) {
	return c.export(ctx, "excel", c.excel)
}

func (c *Controller) ExportPDF(ctx context.Context) (*Document, error) {
	return c.export(ctx, "pdf", c.pdf)
}

func (c *Controller) export(ctx context.Context, kind string, exporter Exporter) (*Document, error) {
	if exporter == nil {
		c.logger.Debug("export skipped", slog.String("format", kind))
		return nil, ErrAdapterNotReady
	}
	products := c.View().Products()
	doc, err := exporter.Export(ctx, products, c.columns)
	if err != nil {
		c.logger.Error("export failed", slog.String("format", kind), slog.Any("error", err))
		return nil, err
	}
	c.logger.Info("exported products", slog.String("format", kind), slog.Int("rows", len(products)))
	return doc, nil
}

func (c *Controller) apply(transition func(State) (State, error)) (View, error) {
	view, observers, err := c.commit(transition)
	if err != nil {
		return view, err
	}
	for _, o := range observers {
		o.fn(view)
	}
	return view, nil
}

// commit runs transition under the lock. The next state is only stored once
// its view has been built, so a failing transition leaves the state as it was.
func (c *Controller) commit(transition func(State) (State, error)) (View, []observer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := transition(c.state)
	if err != nil {
		return c.viewLocked(), nil, err
	}
	view := BuildView(next)
	view.Version = c.version + 1

	c.state = next
	c.version++
	return view, slices.Clone(c.observers), nil
}

func (c *Controller) viewLocked() View {
	view := BuildView(c.state)
	view.Version = c.version
	return view
}
