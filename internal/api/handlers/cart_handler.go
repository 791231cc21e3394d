package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ecommerce-backend/internal/models"
	"ecommerce-backend/internal/service"
	"ecommerce-backend/internal/views"
)

// --- Request DTOs ---

type replaceItemsRequest struct {
	Products json.RawMessage `json:"products"`
}

type setQuantityRequest struct {
	Quantity *json.Number `json:"quantity"`
}

type CartHandler struct {
	svc   *service.CartService
	views *views.Renderer
	log   *slog.Logger
}

func NewCartHandler(svc *service.CartService, v *views.Renderer, log *slog.Logger) *CartHandler {
	return &CartHandler{svc: svc, views: v, log: log}
}

// ListAll handles GET /api/carts.
func (h *CartHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	carts, err := h.svc.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, carts)
}

// Create handles POST /api/carts.
func (h *CartHandler) Create(w http.ResponseWriter, r *http.Request) {
	cart, err := h.svc.Create(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, cart)
}

// GetByID handles GET /api/carts/{cid}.
func (h *CartHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	cart, err := h.svc.Get(r.Context(), chi.URLParam(r, "cid"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, cart)
}

// AddProduct handles POST /api/carts/{cid}/product/{pid}.
func (h *CartHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	cart, err := h.svc.AddProduct(r.Context(), chi.URLParam(r, "cid"), chi.URLParam(r, "pid"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, cart)
}

// RemoveProduct handles DELETE /api/carts/{cid}/products/{pid}.
func (h *CartHandler) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	cart, err := h.svc.RemoveProduct(r.Context(), chi.URLParam(r, "cid"), chi.URLParam(r, "pid"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, cart)
}

// SetQuantity handles PUT /api/carts/{cid}/products/{pid}. The quantity must
// be a positive integer; anything else is a 400 and the cart is untouched.
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Quantity == nil {
		writeError(w, http.StatusBadRequest, "quantity must be a positive number")
		return
	}
	qty, err := req.Quantity.Int64()
	if err != nil || qty < 1 {
		writeError(w, http.StatusBadRequest, "quantity must be a positive number")
		return
	}

	cart, err := h.svc.SetQuantity(r.Context(), chi.URLParam(r, "cid"), chi.URLParam(r, "pid"), int(qty))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, cart)
}

// ReplaceItems handles PUT /api/carts/{cid}. The body must carry a products
// array; a missing or non-array value is a 400.
func (h *CartHandler) ReplaceItems(w http.ResponseWriter, r *http.Request) {
	var req replaceItemsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var items []models.CartItemInput
	if len(req.Products) == 0 || string(req.Products) == "null" ||
		json.Unmarshal(req.Products, &items) != nil {
		writeError(w, http.StatusBadRequest, "products must be an array")
		return
	}

	cart, err := h.svc.ReplaceItems(r.Context(), chi.URLParam(r, "cid"), items)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, cart)
}

// Clear handles DELETE /api/carts/{cid}: it empties the line-item list but
// keeps the cart document.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	cart, err := h.svc.Clear(r.Context(), chi.URLParam(r, "cid"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, cart)
}

// RenderView handles GET /carts/views: the latest cart with computed totals.
func (h *CartHandler) RenderView(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.View(r.Context())
	if err != nil {
		h.log.Error("render cart view", slog.Any("err", err))
		http.Error(w, "failed to load cart", http.StatusInternalServerError)
		return
	}
	if err := h.views.Render(w, "cart.html", view); err != nil {
		h.log.Error("render cart view", slog.Any("err", err))
	}
}
