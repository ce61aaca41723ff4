package viacep

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ws/87047300/json/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"cep": "87047-300",
			"logradouro": "Rua das Palmeiras",
			"bairro": "Jardim Alvorada",
			"localidade": "Maringá",
			"uf": "PR"
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	result, err := client.Lookup(context.Background(), "87047300")

	require.NoError(t, err)
	assert.Equal(t, "Rua das Palmeiras", result.Street)
	assert.Equal(t, "Jardim Alvorada", result.Neighborhood)
	assert.Equal(t, "Maringá", result.City)
	assert.Equal(t, "PR", result.State)
}

func TestLookup_UnknownCEP(t *testing.T) {
	// ViaCEP answers 200 with "erro": true for a CEP that does not exist.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"erro": true}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	result, err := client.Lookup(context.Background(), "99999999")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, result)
}

func TestLookup_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.Lookup(context.Background(), "87047300")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestLookup_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.Lookup(context.Background(), "87047300")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode")
}
