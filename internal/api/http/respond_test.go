package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brecho-backend/internal/domain"
	"brecho-backend/internal/service"
	"brecho-backend/internal/utils"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWriteError(t *testing.T) {
	t.Run("PreconditionCarriesStep", func(t *testing.T) {
		rec := httptest.NewRecorder()
		writeError(rec, &service.PreconditionError{
			Step:    domain.StepAddress,
			Message: "entrega não disponível para esta região",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, "entrega não disponível para esta região", body.Error)
		assert.Equal(t, "ADDRESS", body.Step)
	})

	t.Run("ValidationCarriesField", func(t *testing.T) {
		rec := httptest.NewRecorder()
		writeError(rec, &service.ValidationError{Field: "cpf", Message: "CPF inválido"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, "cpf", body.Field)
		assert.Equal(t, "CPF inválido", body.Error)
	})

	t.Run("StatusMapping", func(t *testing.T) {
		cases := []struct {
			name   string
			err    error
			status int
		}{
			{"NotFound", service.ErrNotFound, http.StatusNotFound},
			{"Unauthorized", service.ErrUnauthorized, http.StatusForbidden},
			{"InvalidCredentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
			{"EmailTaken", service.ErrEmailTaken, http.StatusConflict},
			{"ContractNotRead", service.ErrContractNotRead, http.StatusUnprocessableEntity},
			{"PaymentNotConfirmed", service.ErrPaymentNotConfirmed, http.StatusUnprocessableEntity},
			{"LookupSuperseded", service.ErrLookupSuperseded, http.StatusConflict},
			{"InvalidCEP", utils.ErrInvalidCEP, http.StatusBadRequest},
			{"PastDate", utils.ErrPastDate, http.StatusBadRequest},
			{"Unknown", errors.New("boom"), http.StatusInternalServerError},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				rec := httptest.NewRecorder()
				writeError(rec, tc.err)
				assert.Equal(t, tc.status, rec.Code)
			})
		}
	})

	t.Run("InternalErrorIsOpaque", func(t *testing.T) {
		rec := httptest.NewRecorder()
		writeError(rec, errors.New("pq: connection refused"))

		body := decodeError(t, rec)
		assert.Equal(t, "erro interno", body.Error)
	})
}
