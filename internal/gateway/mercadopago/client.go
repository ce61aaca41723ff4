// Package mercadopago is a thin client for the three gateway operations the
// checkout flow needs: create a payment preference (backs the card wallet
// widget), create a Pix payment (QR image + copy-paste payload) and poll a
// payment's status by id.
package mercadopago

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"brecho-backend/internal/logger"
)

type Client struct {
	baseURL     string
	accessToken string
	payerEmail  string
	httpClient  *http.Client
}

func NewClient(baseURL, accessToken, payerEmail string, timeout time.Duration) *Client {
	return &Client{
		baseURL:     baseURL,
		accessToken: accessToken,
		payerEmail:  payerEmail,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// PreferenceItem is one cart line in a payment preference.
type PreferenceItem struct {
	Title      string  `json:"title"`
	Quantity   int     `json:"quantity"`
	CurrencyID string  `json:"currency_id"`
	UnitPrice  float64 `json:"unit_price"`
}

// BackURLs are where the wallet widget sends the customer after payment.
type BackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
}

type preferenceRequest struct {
	Items          []PreferenceItem `json:"items"`
	PaymentMethods struct {
		DefaultPaymentMethodID string              `json:"default_payment_method_id"`
		ExcludedPaymentMethods []map[string]string `json:"excluded_payment_methods"`
		Installments           int                 `json:"installments"`
	} `json:"payment_methods"`
	BackURLs   BackURLs `json:"back_urls"`
	AutoReturn string   `json:"auto_return"`
}

type preferenceResponse struct {
	ID string `json:"id"`
}

// CreatePreference registers a debit-card preference with the gateway and
// returns its id. Credit cards are excluded and installments fixed at one,
// matching the store's single-payment policy.
func (c *Client) CreatePreference(ctx context.Context, items []PreferenceItem, backURLs BackURLs) (string, error) {
	req := preferenceRequest{Items: items, BackURLs: backURLs, AutoReturn: "approved"}
	req.PaymentMethods.DefaultPaymentMethodID = "debit_card"
	req.PaymentMethods.ExcludedPaymentMethods = []map[string]string{{"id": "credit_card"}}
	req.PaymentMethods.Installments = 1

	var resp preferenceResponse
	if err := c.post(ctx, "/checkout/preferences", "CreatePreference", req, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// PixPayment is the gateway's answer to a Pix creation: the payment id for
// later polling, the QR code image (base64 PNG) and the copy-paste payload.
type PixPayment struct {
	ID           string
	QRCodeBase64 string
	CopyPaste    string
}

type pixRequest struct {
	TransactionAmount float64 `json:"transaction_amount"`
	Description       string  `json:"description"`
	PaymentMethodID   string  `json:"payment_method_id"`
	Payer             struct {
		Email string `json:"email"`
	} `json:"payer"`
}

type pixResponse struct {
	ID                 json.Number `json:"id"`
	PointOfInteraction struct {
		TransactionData struct {
			QRCodeBase64 string `json:"qr_code_base64"`
			QRCode       string `json:"qr_code"`
		} `json:"transaction_data"`
	} `json:"point_of_interaction"`
}

// CreatePix creates a Pix payment for the given amount in cents.
func (c *Client) CreatePix(ctx context.Context, amountCents int32, description string) (*PixPayment, error) {
	req := pixRequest{
		TransactionAmount: float64(amountCents) / 100,
		Description:       description,
		PaymentMethodID:   "pix",
	}
	req.Payer.Email = c.payerEmail

	var resp pixResponse
	if err := c.post(ctx, "/v1/payments", "CreatePix", req, &resp); err != nil {
		return nil, err
	}
	return &PixPayment{
		ID:           resp.ID.String(),
		QRCodeBase64: resp.PointOfInteraction.TransactionData.QRCodeBase64,
		CopyPaste:    resp.PointOfInteraction.TransactionData.QRCode,
	}, nil
}

type statusResponse struct {
	Status string `json:"status"`
}

// GetPaymentStatus polls a payment by id. Returns the gateway's raw status
// string ("pending", "approved", ...).
func (c *Client) GetPaymentStatus(ctx context.Context, paymentID string) (string, error) {
	url := fmt.Sprintf("%s/v1/payments/%s", c.baseURL, paymentID)
	logger.ExternalServiceCall("mercadopago", "GetPaymentStatus", "payment_id", paymentID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.ExternalServiceResult("mercadopago", "GetPaymentStatus", err)
		return "", fmt.Errorf("payment status request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("gateway returned status %d", resp.StatusCode)
		logger.ExternalServiceResult("mercadopago", "GetPaymentStatus", err)
		return "", err
	}

	var body statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		logger.ExternalServiceResult("mercadopago", "GetPaymentStatus", err)
		return "", fmt.Errorf("failed to decode payment status response: %w", err)
	}

	logger.ExternalServiceResult("mercadopago", "GetPaymentStatus", nil, "status", body.Status)
	return body.Status, nil
}

func (c *Client) post(ctx context.Context, path, operation string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	logger.ExternalServiceCall("mercadopago", operation)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.ExternalServiceResult("mercadopago", operation, err)
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		err := fmt.Errorf("gateway returned status %d", resp.StatusCode)
		logger.ExternalServiceResult("mercadopago", operation, err)
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		logger.ExternalServiceResult("mercadopago", operation, err)
		return fmt.Errorf("failed to decode gateway response: %w", err)
	}

	logger.ExternalServiceResult("mercadopago", operation, nil)
	return nil
}
