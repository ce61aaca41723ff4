package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"brecho-backend/internal/domain"
	"brecho-backend/internal/service"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

type productListResponse struct {
	Products []domain.Product `json:"products"`
	Total    int32            `json:"total"`
	Page     int32            `json:"page"`
	PageSize int32            `json:"page_size"`
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := queryInt32(q.Get("page"), 1)
	pageSize := queryInt32(q.Get("page_size"), 20)
	includeInactive := q.Get("include_inactive") == "true" && isAdmin(r)

	products, total, err := h.catalogService.ListProducts(r.Context(), q.Get("category"), includeInactive, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, productListResponse{
		Products: products,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt32(w, r, "id")
	if !ok {
		return
	}

	product, err := h.catalogService.GetProduct(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !product.Active && !isAdmin(r) {
		writeError(w, service.ErrNotFound)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if !decodeBody(w, r, &product) {
		return
	}

	if err := h.catalogService.AddProduct(r.Context(), &product); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt32(w, r, "id")
	if !ok {
		return
	}

	var product domain.Product
	if !decodeBody(w, r, &product) {
		return
	}
	product.ID = id

	if err := h.catalogService.UpdateProduct(r.Context(), &product); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt32(w, r, "id")
	if !ok {
		return
	}

	if err := h.catalogService.RemoveProduct(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func isAdmin(r *http.Request) bool {
	claims := ClaimsFromContext(r.Context())
	return claims != nil && claims.Role == domain.RoleAdmin
}

func queryInt32(raw string, fallback int32) int32 {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return int32(v)
}

func pathInt32(w http.ResponseWriter, r *http.Request, name string) (int32, bool) {
	raw := mux.Vars(r)[name]
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "identificador inválido", Field: name})
		return 0, false
	}
	return int32(v), true
}
