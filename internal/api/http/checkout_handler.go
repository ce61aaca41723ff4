package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"brecho-backend/internal/domain"
	"brecho-backend/internal/service"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

type startCheckoutRequest struct {
	ProductID int32               `json:"product_id"`
	Kind      domain.CheckoutKind `json:"kind"`
}

func (h *CheckoutHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startCheckoutRequest
	if !decodeBody(w, r, &req) {
		return
	}

	claims := ClaimsFromContext(r.Context())
	session, err := h.checkoutService.Start(r.Context(), claims.CustomerID, req.ProductID, req.Kind)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

func (h *CheckoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	session, err := h.checkoutService.Get(r.Context(), claims.CustomerID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

type setAddressRequest struct {
	CEP string `json:"cep"`
}

type setAddressResponse struct {
	Session *domain.CheckoutSession     `json:"session"`
	Address *domain.AddressLookupResult `json:"address"`
}

func (h *CheckoutHandler) SetAddress(w http.ResponseWriter, r *http.Request) {
	var req setAddressRequest
	if !decodeBody(w, r, &req) {
		return
	}

	claims := ClaimsFromContext(r.Context())
	session, address, err := h.checkoutService.SetAddress(r.Context(), claims.CustomerID, mux.Vars(r)["id"], req.CEP)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, setAddressResponse{Session: session, Address: address})
}

type setDatesRequest struct {
	StartDate string `json:"start_date"`
}

func (h *CheckoutHandler) SetDates(w http.ResponseWriter, r *http.Request) {
	var req setDatesRequest
	if !decodeBody(w, r, &req) {
		return
	}

	claims := ClaimsFromContext(r.Context())
	session, err := h.checkoutService.SetDates(r.Context(), claims.CustomerID, mux.Vars(r)["id"], req.StartDate)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

func (h *CheckoutHandler) Advance(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	session, err := h.checkoutService.Advance(r.Context(), claims.CustomerID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

type orderListResponse struct {
	Orders   []domain.CheckoutSession `json:"orders"`
	Total    int32                    `json:"total"`
	Page     int32                    `json:"page"`
	PageSize int32                    `json:"page_size"`
}

func (h *CheckoutHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := queryInt32(q.Get("page"), 1)
	pageSize := queryInt32(q.Get("page_size"), 20)

	claims := ClaimsFromContext(r.Context())
	orders, total, err := h.checkoutService.ListOrders(r.Context(), claims.CustomerID, q.Get("status"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, orderListResponse{Orders: orders, Total: total, Page: page, PageSize: pageSize})
}
