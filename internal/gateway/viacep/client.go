// Package viacep wraps the ViaCEP address-lookup API. Given a normalized
// 8-digit CEP it resolves street, neighborhood, city and state.
package viacep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"brecho-backend/internal/domain"
	"brecho-backend/internal/logger"
)

var ErrNotFound = errors.New("CEP not found")

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// lookupResponse mirrors the ViaCEP payload. A bad CEP does not get an HTTP
// error status; the body carries "erro": true instead.
type lookupResponse struct {
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	Erro       bool   `json:"erro"`
}

// Lookup resolves a normalized 8-digit CEP. The caller is responsible for
// normalization; no lookup is attempted for partial input.
func (c *Client) Lookup(ctx context.Context, cep string) (*domain.AddressLookupResult, error) {
	url := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, cep)
	logger.ExternalServiceCall("viacep", "Lookup", "cep", cep)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.ExternalServiceResult("viacep", "Lookup", err)
		return nil, fmt.Errorf("address lookup request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("address lookup returned status %d", resp.StatusCode)
		logger.ExternalServiceResult("viacep", "Lookup", err)
		return nil, err
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		logger.ExternalServiceResult("viacep", "Lookup", err)
		return nil, fmt.Errorf("failed to decode address lookup response: %w", err)
	}

	if body.Erro {
		logger.ExternalServiceResult("viacep", "Lookup", ErrNotFound, "cep", cep)
		return nil, ErrNotFound
	}

	logger.ExternalServiceResult("viacep", "Lookup", nil, "city", body.Localidade)
	return &domain.AddressLookupResult{
		Street:       body.Logradouro,
		Neighborhood: body.Bairro,
		City:         body.Localidade,
		State:        body.UF,
	}, nil
}
