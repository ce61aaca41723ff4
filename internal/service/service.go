package service

import (
	"context"

	"brecho-backend/internal/domain"
	"brecho-backend/internal/gateway/mercadopago"
)

type AuthService interface {
	Register(ctx context.Context, fullName, email, password string) (*domain.Customer, string, string, error) // customer, access, refresh
	Login(ctx context.Context, email, password string) (string, string, error)                                // access, refresh
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
}

type CatalogService interface {
	ListProducts(ctx context.Context, category string, includeInactive bool, page, pageSize int32) ([]domain.Product, int32, error)
	GetProduct(ctx context.Context, id int32) (*domain.Product, error)
	AddProduct(ctx context.Context, product *domain.Product) error
	UpdateProduct(ctx context.Context, product *domain.Product) error
	RemoveProduct(ctx context.Context, id int32) error
}

// ProfileInput carries the identity fields collected during profile
// completion. Every field is validated before anything is stored.
type ProfileInput struct {
	FullName string         `json:"full_name"`
	CPF      string         `json:"cpf"`
	Phone    string         `json:"phone"`
	Email    string         `json:"email"`
	Address  domain.Address `json:"address"`
}

type CustomerService interface {
	GetProfile(ctx context.Context, customerID int32) (*domain.Customer, error)
	CompleteProfile(ctx context.Context, customerID int32, input ProfileInput) (*domain.Customer, error)
	RequestDocumentUpload(ctx context.Context, customerID int32, filename, contentType string) (uploadURL, key string, err error)
	ConfirmDocumentUpload(ctx context.Context, customerID int32, key string) error
}

type ShippingService interface {
	// Quote runs a raw CEP against the fixed prefix rule table. No
	// network involved.
	Quote(cep string) (*domain.ShippingQuote, error)
	// ResolveAddress normalizes the CEP, quotes shipping and resolves the
	// address via the external lookup. A newer call by the same customer
	// supersedes any lookup of theirs still in flight; the superseded
	// caller gets ErrLookupSuperseded.
	ResolveAddress(ctx context.Context, customerID int32, cep string) (*domain.AddressLookupResult, *domain.ShippingQuote, error)
}

type ContractService interface {
	// Render produces the contract text for a session, filled with the
	// customer's name, pickup date and value.
	Render(ctx context.Context, customerID int32, sessionID string) (string, error)
	// ReportScroll feeds viewer scroll metrics into the one-way latch.
	ReportScroll(ctx context.Context, customerID int32, scrollHeight, clientHeight, scrollTop float64) (*domain.ContractAcceptance, error)
	// Accept marks the contract accepted. Fails unless the latch is set.
	Accept(ctx context.Context, customerID int32) (*domain.ContractAcceptance, error)
	Status(ctx context.Context, customerID int32) (*domain.ContractAcceptance, error)
	// Invalidate clears a persisted acceptance so policy can force
	// re-acceptance.
	Invalidate(ctx context.Context, customerID int32) error
}

type CheckoutService interface {
	Start(ctx context.Context, customerID, productID int32, kind domain.CheckoutKind) (*domain.CheckoutSession, error)
	Get(ctx context.Context, customerID int32, sessionID string) (*domain.CheckoutSession, error)
	SetAddress(ctx context.Context, customerID int32, sessionID, cep string) (*domain.CheckoutSession, *domain.AddressLookupResult, error)
	SetDates(ctx context.Context, customerID int32, sessionID, startDate string) (*domain.CheckoutSession, error)
	// CanAdvance checks the current step's preconditions without mutating
	// anything. Returns nil when the session may move forward, otherwise a
	// *PreconditionError naming the single unmet precondition.
	CanAdvance(ctx context.Context, session *domain.CheckoutSession) error
	// Advance moves the session one step forward after CanAdvance passes.
	Advance(ctx context.Context, customerID int32, sessionID string) (*domain.CheckoutSession, error)
	ListOrders(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.CheckoutSession, int32, error)
}

type PaymentService interface {
	// EnsureIntent eagerly creates the payment intent (and gateway
	// preference) when the payment step is entered, regardless of the
	// method eventually chosen. Idempotent per session on the happy path;
	// a retry after a gateway failure may create a second preference.
	EnsureIntent(ctx context.Context, customerID int32, sessionID string) (*domain.PaymentIntent, error)
	// PayWithPix requests QR code and copy-paste payload from the gateway.
	PayWithPix(ctx context.Context, customerID int32, sessionID string) (*domain.PaymentIntent, error)
	// SelectDebitCard records the method; the embedded wallet widget
	// drives the gateway from the preference id.
	SelectDebitCard(ctx context.Context, customerID int32, sessionID string) (*domain.PaymentIntent, error)
	// ConfirmPix runs a single status poll. Approved marks the session
	// paid; anything else is ErrPaymentNotConfirmed.
	ConfirmPix(ctx context.Context, customerID int32, sessionID string) (*domain.PaymentIntent, error)
}

type EmailService interface {
	SendOrderConfirmation(ctx context.Context, email, name, productName, startDate, returnDate string, amountCents int32) error
	SendReturnReminder(ctx context.Context, email, name, productName, returnDate string) error
}

// AddressLookup is the external postal-code lookup collaborator.
type AddressLookup interface {
	Lookup(ctx context.Context, cep string) (*domain.AddressLookupResult, error)
}

// PaymentGateway is the external payment collaborator.
type PaymentGateway interface {
	CreatePreference(ctx context.Context, items []mercadopago.PreferenceItem, backURLs mercadopago.BackURLs) (string, error)
	CreatePix(ctx context.Context, amountCents int32, description string) (*mercadopago.PixPayment, error)
	GetPaymentStatus(ctx context.Context, paymentID string) (string, error)
}
