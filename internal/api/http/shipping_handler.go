package http

import (
	"net/http"

	"brecho-backend/internal/domain"
	"brecho-backend/internal/service"
)

type ShippingHandler struct {
	shippingService service.ShippingService
}

func NewShippingHandler(shippingService service.ShippingService) *ShippingHandler {
	return &ShippingHandler{shippingService: shippingService}
}

type resolveAddressRequest struct {
	CEP string `json:"cep"`
}

type resolveAddressResponse struct {
	Address *domain.AddressLookupResult `json:"address"`
	Quote   *domain.ShippingQuote       `json:"quote"`
}

// Resolve runs the full CEP flow: normalization, shipping quote and the
// external address lookup. Rapid retyping is expected; a newer request
// cancels the previous one's lookup.
func (h *ShippingHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req resolveAddressRequest
	if !decodeBody(w, r, &req) {
		return
	}

	claims := ClaimsFromContext(r.Context())
	address, quote, err := h.shippingService.ResolveAddress(r.Context(), claims.CustomerID, req.CEP)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resolveAddressResponse{Address: address, Quote: quote})
}

func (h *ShippingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	quote, err := h.shippingService.Quote(r.URL.Query().Get("cep"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, quote)
}
