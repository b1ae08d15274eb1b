package http

import (
	"net/http"

	"example.com/productgrid/internal/domain/query"
	griduc "example.com/productgrid/internal/usecase/grid"
)

type rowClickRequest struct {
	ProductID *int64 `json:"productId"`
}

type sortRequest struct {
	Sort []query.SortDescriptor `json:"sort" validate:"max=1,dive"`
}

type filterRequest struct {
	Filter *query.Filter `json:"filter"`
}

type pageRequest struct {
	Skip int `json:"skip" validate:"min=0"`
	Take int `json:"take" validate:"required,min=1,max=1000"`
}

type itemChangeRequest struct {
	ProductID *int64 `json:"productId"`
	Field     string `json:"field"`
	Value     any    `json:"value"`
}

type toolbarClickRequest struct {
	Background bool `json:"background"`
}

func (a *API) handleGetView(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, mapView(a.grid.View()))
}

func (a *API) handleRowClick(w http.ResponseWriter, r *http.Request) {
	var req rowClickRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	view, err := a.grid.SelectRow(req.ProductID)
	a.respondView(w, view, err)
}

func (a *API) handleChangeSort(w http.ResponseWriter, r *http.Request) {
	var req sortRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	view, err := a.grid.ChangeSort(req.Sort)
	a.respondView(w, view, err)
}

func (a *API) handleChangeFilter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	filter := query.Empty()
	if req.Filter != nil {
		filter = *req.Filter
	}
	if err := filter.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	view, err := a.grid.ChangeFilter(filter)
	a.respondView(w, view, err)
}

func (a *API) handleChangePage(w http.ResponseWriter, r *http.Request) {
	var req pageRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	view, err := a.grid.ChangePage(query.Page{Skip: req.Skip, Take: req.Take})
	a.respondView(w, view, err)
}

func (a *API) handleItemChange(w http.ResponseWriter, r *http.Request) {
	var req itemChangeRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if req.ProductID == nil || req.Field == "" {
		a.respondView(w, a.grid.View(), griduc.ErrNoSelection)
		return
	}

	view, err := a.grid.CommitFieldEdit(*req.ProductID, req.Field, req.Value)
	if err == nil {
		a.logger.Info("grid item changed",
			"editor", editorName(r.Context()),
			"product_id", *req.ProductID,
			"field", req.Field,
		)
	}
	a.respondView(w, view, err)
}

func (a *API) handleAddNew(w http.ResponseWriter, r *http.Request) {
	view, err := a.grid.AddNew()
	if err == nil && view.EditedID != nil {
		a.logger.Info("grid record added", "editor", editorName(r.Context()), "product_id", *view.EditedID)
	}
	a.respondView(w, view, err)
}

func (a *API) handleFinishEditing(w http.ResponseWriter, r *http.Request) {
	view, err := a.grid.FinishEditing()
	a.respondView(w, view, err)
}

func (a *API) handleToolbarClick(w http.ResponseWriter, r *http.Request) {
	var req toolbarClickRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	view, err := a.grid.ToolbarClick(req.Background)
	a.respondView(w, view, err)
}
