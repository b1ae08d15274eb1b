package http

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"strconv"

	griduc "example.com/productgrid/internal/usecase/grid"
)

func (a *API) handleExportExcel(w http.ResponseWriter, r *http.Request) {
	a.serveExport(w, r, a.grid.ExportExcel)
}

func (a *API) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	a.serveExport(w, r, a.grid.ExportPDF)
}

func (a *API) serveExport(w http.ResponseWriter, r *http.Request, export func(context.Context) (*griduc.Document, error)) {
	doc, err := export(r.Context())
	if err != nil {
		if errors.Is(err, griduc.ErrAdapterNotReady) && !a.strict {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		handleDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.FileName}))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Data)
}
