package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"brecho-backend/internal/logger"
	"brecho-backend/internal/service"
	"brecho-backend/internal/utils"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Step  string `json:"step,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			logger.Error("Failed to encode response body", "error", err)
		}
	}
}

// writeError maps service-layer errors onto HTTP statuses. Precondition
// and validation failures carry their field/step so the client can point
// at the offending form control.
func writeError(w http.ResponseWriter, err error) {
	var pre *service.PreconditionError
	if errors.As(err, &pre) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: pre.Message, Step: string(pre.Step)})
		return
	}
	var val *service.ValidationError
	if errors.As(err, &val) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: val.Message, Field: val.Field})
		return
	}

	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, sql.ErrNoRows):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "não encontrado"})
	case errors.Is(err, service.ErrUnauthorized):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "acesso negado"})
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrEmailTaken):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrContractNotRead),
		errors.Is(err, service.ErrPaymentNotConfirmed):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrLookupSuperseded):
		// The newer request's result wins; this caller just goes quiet.
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, utils.ErrInvalidCEP), errors.Is(err, utils.ErrInvalidDate), errors.Is(err, utils.ErrPastDate):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		logger.Error("Unhandled service error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "erro interno"})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "corpo da requisição inválido"})
		return false
	}
	return true
}
