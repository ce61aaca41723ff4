package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"brecho-backend/internal/service"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// EnsureIntent is called on entry to the payment step, before the
// customer picks a method.
func (h *PaymentHandler) EnsureIntent(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	intent, err := h.paymentService.EnsureIntent(r.Context(), claims.CustomerID, mux.Vars(r)["session_id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, intent)
}

func (h *PaymentHandler) PayWithPix(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	intent, err := h.paymentService.PayWithPix(r.Context(), claims.CustomerID, mux.Vars(r)["session_id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, intent)
}

func (h *PaymentHandler) SelectDebitCard(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	intent, err := h.paymentService.SelectDebitCard(r.Context(), claims.CustomerID, mux.Vars(r)["session_id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, intent)
}

// ConfirmPix is the single explicit status poll behind the "já paguei"
// button. It never loops.
func (h *PaymentHandler) ConfirmPix(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	intent, err := h.paymentService.ConfirmPix(r.Context(), claims.CustomerID, mux.Vars(r)["session_id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, intent)
}
