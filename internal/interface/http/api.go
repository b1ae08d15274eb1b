package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"

	domcategory "example.com/productgrid/internal/domain/category"
	domproduct "example.com/productgrid/internal/domain/product"
	"example.com/productgrid/internal/domain/query"
	domuser "example.com/productgrid/internal/domain/user"
	authuc "example.com/productgrid/internal/usecase/auth"
	griduc "example.com/productgrid/internal/usecase/grid"
)

const defaultExportRateLimit = 10

type API struct {
	grid            *griduc.Controller
	authSvc         *authuc.Service
	validator       *validator.Validate
	logger          *slog.Logger
	strict          bool
	exportRateLimit int
}

type Dependencies struct {
	Grid        *griduc.Controller
	AuthService *authuc.Service
	Logger      *slog.Logger
	// StrictErrors surfaces dropped events as HTTP errors instead of
	// answering with the unchanged view.
	StrictErrors    bool
	ExportRateLimit int
}

func NewAPI(deps Dependencies) *API {
	validate := validator.New()
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	limit := deps.ExportRateLimit
	if limit <= 0 {
		limit = defaultExportRateLimit
	}
	return &API{
		grid:            deps.Grid,
		authSvc:         deps.AuthService,
		validator:       validate,
		logger:          logger,
		strict:          deps.StrictErrors,
		exportRateLimit: limit,
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.AllowContentType("application/json", "text/plain"))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		if a.authSvc != nil {
			r.Post("/auth/login", a.handleLogin)
		}

		r.Route("/grid", func(gr chi.Router) {
			gr.Get("/", a.handleGetView)

			gr.Group(func(er chi.Router) {
				if a.authSvc != nil {
					er.Use(a.authMiddleware)
				}
				er.Post("/row-click", a.handleRowClick)
				er.Put("/sort", a.handleChangeSort)
				er.Put("/filter", a.handleChangeFilter)
				er.Put("/page", a.handleChangePage)
				er.Patch("/items", a.handleItemChange)
				er.Post("/add", a.handleAddNew)
				er.Post("/finish", a.handleFinishEditing)
				er.Post("/toolbar-click", a.handleToolbarClick)
			})

			gr.Group(func(xr chi.Router) {
				xr.Use(httprate.Limit(a.exportRateLimit, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
				xr.Get("/export/excel", a.handleExportExcel)
				xr.Get("/export/pdf", a.handleExportPDF)
			})
		})
	})

	return r
}

func (a *API) decodeAndValidate(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return a.validator.Struct(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func respondError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func mapCategory(c *domcategory.Category) map[string]any {
	if c == nil {
		return nil
	}
	return map[string]any{
		"CategoryID":   c.ID,
		"CategoryName": c.Name,
		"Description":  c.Description,
	}
}

func mapRow(row griduc.Row) map[string]any {
	p := row.Product
	return map[string]any{
		"ProductID":       p.ID,
		"ProductName":     p.Name,
		"SupplierID":      p.SupplierID,
		"CategoryID":      p.CategoryID,
		"QuantityPerUnit": p.QuantityPerUnit,
		"UnitPrice":       p.UnitPrice.InexactFloat64(),
		"UnitsInStock":    p.UnitsInStock,
		"UnitsOnOrder":    p.UnitsOnOrder,
		"ReorderLevel":    p.ReorderLevel,
		"Discontinued":    p.Discontinued,
		"Category":        mapCategory(p.Category),
		griduc.EditField:  row.InEditor,
	}
}

func mapView(v griduc.View) map[string]any {
	rows := make([]map[string]any, 0, len(v.Data))
	for _, row := range v.Data {
		rows = append(rows, mapRow(row))
	}
	sort := v.Sort
	if sort == nil {
		sort = []query.SortDescriptor{}
	}
	return map[string]any{
		"data":           rows,
		"total":          v.Total,
		"sort":           sort,
		"filter":         v.Filter,
		"skip":           v.Page.Skip,
		"take":           v.Page.Take,
		"editField":      griduc.EditField,
		"editedId":       v.EditedID,
		"finishDisabled": v.FinishDisabled(),
		"version":        v.Version,
	}
}

// respondView answers an event with the re-rendered view. Dropped events
// answer with the unchanged view unless strict errors are enabled.
func (a *API) respondView(w http.ResponseWriter, v griduc.View, err error) {
	if err != nil && (a.strict || !griduc.IsNoOp(err)) {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapView(v))
}

func handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, griduc.ErrRecordNotFound):
		respondError(w, http.StatusNotFound, err)
	case errors.Is(err, griduc.ErrNoSelection),
		errors.Is(err, query.ErrInvalidFilter):
		respondError(w, http.StatusBadRequest, err)
	case errors.Is(err, domproduct.ErrUnknownField),
		errors.Is(err, domproduct.ErrFieldReadOnly),
		errors.Is(err, domproduct.ErrInvalidFieldValue),
		errors.Is(err, domuser.ErrInvalidCredential):
		respondError(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, domuser.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, err)
	case errors.Is(err, griduc.ErrAdapterNotReady):
		respondError(w, http.StatusServiceUnavailable, err)
	default:
		respondError(w, http.StatusInternalServerError, err)
	}
}
