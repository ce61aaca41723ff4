package repository

import (
	"context"

	"brecho-backend/internal/domain"
)

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id int32) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, category string, activeOnly bool, page, pageSize int32) ([]domain.Product, int32, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id int32) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) error
	SetDocumentKey(ctx context.Context, customerID int32, key string) error
}

type CheckoutRepository interface {
	Create(ctx context.Context, session *domain.CheckoutSession) error
	GetByID(ctx context.Context, id string) (*domain.CheckoutSession, error)
	Update(ctx context.Context, session *domain.CheckoutSession) error
	ListByCustomer(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.CheckoutSession, int32, error)
	// ExpireIdleBefore marks open sessions last touched before the cutoff
	// as expired and returns how many were affected.
	ExpireIdleBefore(ctx context.Context, cutoff string) (int64, error)
	// ListPaidRentalsReturningOn lists paid rental sessions whose return
	// date equals the given date (2006-01-02).
	ListPaidRentalsReturningOn(ctx context.Context, date string) ([]domain.CheckoutSession, error)
}

type ContractRepository interface {
	// Get returns the acceptance record for a customer, or nil when the
	// customer has never interacted with the contract viewer.
	Get(ctx context.Context, customerID int32) (*domain.ContractAcceptance, error)
	Upsert(ctx context.Context, acceptance *domain.ContractAcceptance) error
	Delete(ctx context.Context, customerID int32) error
}

type PaymentIntentRepository interface {
	Create(ctx context.Context, intent *domain.PaymentIntent) error
	GetByID(ctx context.Context, id int32) (*domain.PaymentIntent, error)
	GetBySession(ctx context.Context, sessionID string) (*domain.PaymentIntent, error)
	Update(ctx context.Context, intent *domain.PaymentIntent) error
	// AbandonPendingBefore marks intents still pending past the cutoff as
	// abandoned and returns how many were affected.
	AbandonPendingBefore(ctx context.Context, cutoff string) (int64, error)
}
