package mercadopago

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePreference(t *testing.T) {
	var captured preferenceRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/checkout/preferences", r.URL.Path)
		assert.Equal(t, "Bearer TEST-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": "pref-123"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "TEST-token", "payer@example.com", 5*time.Second)
	items := []PreferenceItem{{Title: "Vestido Caipira", Quantity: 1, CurrencyID: "BRL", UnitPrice: 90.00}}
	backURLs := BackURLs{Success: "https://loja.example/checkout/success", Failure: "https://loja.example/checkout/failure"}

	id, err := client.CreatePreference(context.Background(), items, backURLs)

	require.NoError(t, err)
	assert.Equal(t, "pref-123", id)
	assert.Equal(t, items, captured.Items)
	assert.Equal(t, backURLs, captured.BackURLs)
	assert.Equal(t, "approved", captured.AutoReturn)
	assert.Equal(t, "debit_card", captured.PaymentMethods.DefaultPaymentMethodID)
	assert.Equal(t, []map[string]string{{"id": "credit_card"}}, captured.PaymentMethods.ExcludedPaymentMethods)
	assert.Equal(t, 1, captured.PaymentMethods.Installments)
}

func TestCreatePix(t *testing.T) {
	var captured pixRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payments", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{
			"id": 114455667788,
			"point_of_interaction": {
				"transaction_data": {
					"qr_code_base64": "iVBORw0KGgo=",
					"qr_code": "00020126580014br.gov.bcb.pix"
				}
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "TEST-token", "payer@example.com", 5*time.Second)
	payment, err := client.CreatePix(context.Background(), 9000, "Pedido #abc")

	require.NoError(t, err)
	assert.Equal(t, "114455667788", payment.ID)
	assert.Equal(t, "iVBORw0KGgo=", payment.QRCodeBase64)
	assert.Equal(t, "00020126580014br.gov.bcb.pix", payment.CopyPaste)
	assert.Equal(t, 90.00, captured.TransactionAmount)
	assert.Equal(t, "Pedido #abc", captured.Description)
	assert.Equal(t, "pix", captured.PaymentMethodID)
	assert.Equal(t, "payer@example.com", captured.Payer.Email)
}

func TestGetPaymentStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payments/114455667788", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		w.Write([]byte(`{"status": "approved"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "TEST-token", "payer@example.com", 5*time.Second)
	status, err := client.GetPaymentStatus(context.Background(), "114455667788")

	require.NoError(t, err)
	assert.Equal(t, "approved", status)
}

func TestGetPaymentStatus_GatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad-token", "payer@example.com", 5*time.Second)
	_, err := client.GetPaymentStatus(context.Background(), "1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestCreatePreference_GatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(server.URL, "TEST-token", "payer@example.com", 5*time.Second)
	_, err := client.CreatePreference(context.Background(), nil, BackURLs{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}
