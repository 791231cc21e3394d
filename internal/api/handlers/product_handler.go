package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ecommerce-backend/internal/models"
	"ecommerce-backend/internal/service"
	"ecommerce-backend/internal/views"
)

// --- Request / Response DTOs ---

type createProductRequest struct {
	Name     string   `json:"name"`
	Price    *float64 `json:"price"`
	Stock    *int     `json:"stock"`
	Category string   `json:"category"`
	Status   *bool    `json:"status"`
}

// listProductsResponse extends the success envelope with the pagination
// metadata fields the API contract requires.
type listProductsResponse struct {
	Status      string           `json:"status"`
	Payload     []models.Product `json:"payload"`
	TotalPages  int              `json:"totalPages"`
	PrevPage    *int             `json:"prevPage"`
	NextPage    *int             `json:"nextPage"`
	Page        int              `json:"page"`
	HasPrevPage bool             `json:"hasPrevPage"`
	HasNextPage bool             `json:"hasNextPage"`
	PrevLink    *string          `json:"prevLink"`
	NextLink    *string          `json:"nextLink"`
}

// productView adds the availability flag the rendered pages show.
type productView struct {
	models.Product
	IsAvailable bool
}

type ProductHandler struct {
	svc   *service.ProductService
	views *views.Renderer
	log   *slog.Logger
}

func NewProductHandler(svc *service.ProductService, v *views.Renderer, log *slog.Logger) *ProductHandler {
	return &ProductHandler{svc: svc, views: v, log: log}
}

func listParams(r *http.Request) service.ListParams {
	q := r.URL.Query()
	return service.ListParams{
		Limit: q.Get("limit"),
		Page:  q.Get("page"),
		Query: q.Get("query"),
		Sort:  q.Get("sort"),
	}
}

// List handles GET /api/products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.List(r.Context(), listParams(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	base := scheme + "://" + r.Host + "/api/products"

	resp := listProductsResponse{
		Status:      "success",
		Payload:     page.Docs,
		TotalPages:  page.TotalPages,
		PrevPage:    page.PrevPage,
		NextPage:    page.NextPage,
		Page:        page.Page,
		HasPrevPage: page.HasPrevPage,
		HasNextPage: page.HasNextPage,
	}
	if page.PrevPage != nil {
		l := service.PageLink(base, r.URL.Query(), *page.PrevPage)
		resp.PrevLink = &l
	}
	if page.NextPage != nil {
		l := service.PageLink(base, r.URL.Query(), *page.NextPage)
		resp.NextLink = &l
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetByID handles GET /api/products/{pid}.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(r.Context(), chi.URLParam(r, "pid"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, p)
}

// Create handles POST /api/products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	in := models.ProductInput{
		Name:     req.Name,
		Price:    req.Price,
		Category: req.Category,
		Status:   req.Status,
	}
	if req.Stock != nil {
		in.Stock = *req.Stock
	}

	p, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, p)
}

// ListView handles GET /products/views.
func (h *ProductHandler) ListView(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.List(r.Context(), listParams(r))
	if err != nil {
		h.log.Error("render product list", slog.Any("err", err))
		http.Error(w, "failed to load products", http.StatusInternalServerError)
		return
	}

	items := make([]productView, 0, len(page.Docs))
	for _, p := range page.Docs {
		items = append(items, productView{Product: p, IsAvailable: p.Stock > 0})
	}

	data := struct {
		Payload     []productView
		TotalPages  int
		Page        int
		HasPrevPage bool
		HasNextPage bool
		PrevLink    *string
		NextLink    *string
	}{
		Payload:     items,
		TotalPages:  page.TotalPages,
		Page:        page.Page,
		HasPrevPage: page.HasPrevPage,
		HasNextPage: page.HasNextPage,
	}
	if page.PrevPage != nil {
		l := service.PageLink("/products/views", r.URL.Query(), *page.PrevPage)
		data.PrevLink = &l
	}
	if page.NextPage != nil {
		l := service.PageLink("/products/views", r.URL.Query(), *page.NextPage)
		data.NextLink = &l
	}

	if err := h.views.Render(w, "products.html", data); err != nil {
		h.log.Error("render product list", slog.Any("err", err))
	}
}

// DetailView handles GET /products/views/{pid}.
func (h *ProductHandler) DetailView(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(r.Context(), chi.URLParam(r, "pid"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		h.log.Error("render product detail", slog.Any("err", err))
		http.Error(w, "failed to load product", http.StatusInternalServerError)
		return
	}

	data := struct{ Product productView }{
		Product: productView{Product: *p, IsAvailable: p.Stock > 0},
	}
	if err := h.views.Render(w, "product_detail.html", data); err != nil {
		h.log.Error("render product detail", slog.Any("err", err))
	}
}
