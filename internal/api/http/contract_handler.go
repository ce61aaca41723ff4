package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"brecho-backend/internal/service"
)

type ContractHandler struct {
	contractService service.ContractService
}

func NewContractHandler(contractService service.ContractService) *ContractHandler {
	return &ContractHandler{contractService: contractService}
}

type contractTextResponse struct {
	Contract string `json:"contract"`
}

func (h *ContractHandler) Render(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	text, err := h.contractService.Render(r.Context(), claims.CustomerID, mux.Vars(r)["session_id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contractTextResponse{Contract: text})
}

type scrollReportRequest struct {
	ScrollHeight float64 `json:"scroll_height"`
	ClientHeight float64 `json:"client_height"`
	ScrollTop    float64 `json:"scroll_top"`
}

// ReportScroll feeds viewer metrics into the latch. Once the bottom has
// been reached the latch stays set whatever later reports say.
func (h *ContractHandler) ReportScroll(w http.ResponseWriter, r *http.Request) {
	var req scrollReportRequest
	if !decodeBody(w, r, &req) {
		return
	}

	claims := ClaimsFromContext(r.Context())
	acceptance, err := h.contractService.ReportScroll(r.Context(), claims.CustomerID, req.ScrollHeight, req.ClientHeight, req.ScrollTop)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, acceptance)
}

func (h *ContractHandler) Accept(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	acceptance, err := h.contractService.Accept(r.Context(), claims.CustomerID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, acceptance)
}

func (h *ContractHandler) Status(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	acceptance, err := h.contractService.Status(r.Context(), claims.CustomerID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, acceptance)
}

func (h *ContractHandler) Invalidate(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if err := h.contractService.Invalidate(r.Context(), claims.CustomerID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
