package service

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"brecho-backend/internal/domain"
	"brecho-backend/internal/gateway/mercadopago"
)

type MockProductRepo struct{ mock.Mock }

func (m *MockProductRepo) Create(ctx context.Context, product *domain.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepo) GetByID(ctx context.Context, id int32) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*domain.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepo) Update(ctx context.Context, product *domain.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepo) Delete(ctx context.Context, id int32) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductRepo) List(ctx context.Context, category string, activeOnly bool, page, pageSize int32) ([]domain.Product, int32, error) {
	args := m.Called(ctx, category, activeOnly, page, pageSize)
	var products []domain.Product
	if p, ok := args.Get(0).([]domain.Product); ok {
		products = p
	}
	return products, args.Get(1).(int32), args.Error(2)
}

type MockCustomerRepo struct{ mock.Mock }

func (m *MockCustomerRepo) Create(ctx context.Context, customer *domain.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *MockCustomerRepo) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*domain.Customer); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCustomerRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	args := m.Called(ctx, email)
	if c, ok := args.Get(0).(*domain.Customer); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCustomerRepo) Update(ctx context.Context, customer *domain.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *MockCustomerRepo) SetDocumentKey(ctx context.Context, customerID int32, key string) error {
	return m.Called(ctx, customerID, key).Error(0)
}

type MockCheckoutRepo struct{ mock.Mock }

func (m *MockCheckoutRepo) Create(ctx context.Context, session *domain.CheckoutSession) error {
	return m.Called(ctx, session).Error(0)
}

func (m *MockCheckoutRepo) GetByID(ctx context.Context, id string) (*domain.CheckoutSession, error) {
	args := m.Called(ctx, id)
	if s, ok := args.Get(0).(*domain.CheckoutSession); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCheckoutRepo) Update(ctx context.Context, session *domain.CheckoutSession) error {
	return m.Called(ctx, session).Error(0)
}

func (m *MockCheckoutRepo) ListByCustomer(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.CheckoutSession, int32, error) {
	args := m.Called(ctx, customerID, status, page, pageSize)
	var sessions []domain.CheckoutSession
	if s, ok := args.Get(0).([]domain.CheckoutSession); ok {
		sessions = s
	}
	return sessions, args.Get(1).(int32), args.Error(2)
}

func (m *MockCheckoutRepo) ExpireIdleBefore(ctx context.Context, cutoff string) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCheckoutRepo) ListPaidRentalsReturningOn(ctx context.Context, date string) ([]domain.CheckoutSession, error) {
	args := m.Called(ctx, date)
	var sessions []domain.CheckoutSession
	if s, ok := args.Get(0).([]domain.CheckoutSession); ok {
		sessions = s
	}
	return sessions, args.Error(1)
}

type MockContractRepo struct{ mock.Mock }

func (m *MockContractRepo) Get(ctx context.Context, customerID int32) (*domain.ContractAcceptance, error) {
	args := m.Called(ctx, customerID)
	if a, ok := args.Get(0).(*domain.ContractAcceptance); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockContractRepo) Upsert(ctx context.Context, acceptance *domain.ContractAcceptance) error {
	return m.Called(ctx, acceptance).Error(0)
}

func (m *MockContractRepo) Delete(ctx context.Context, customerID int32) error {
	return m.Called(ctx, customerID).Error(0)
}

type MockIntentRepo struct{ mock.Mock }

func (m *MockIntentRepo) Create(ctx context.Context, intent *domain.PaymentIntent) error {
	return m.Called(ctx, intent).Error(0)
}

func (m *MockIntentRepo) GetByID(ctx context.Context, id int32) (*domain.PaymentIntent, error) {
	args := m.Called(ctx, id)
	if i, ok := args.Get(0).(*domain.PaymentIntent); ok {
		return i, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockIntentRepo) GetBySession(ctx context.Context, sessionID string) (*domain.PaymentIntent, error) {
	args := m.Called(ctx, sessionID)
	if i, ok := args.Get(0).(*domain.PaymentIntent); ok {
		return i, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockIntentRepo) Update(ctx context.Context, intent *domain.PaymentIntent) error {
	return m.Called(ctx, intent).Error(0)
}

func (m *MockIntentRepo) AbandonPendingBefore(ctx context.Context, cutoff string) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockAddressLookup struct{ mock.Mock }

func (m *MockAddressLookup) Lookup(ctx context.Context, cep string) (*domain.AddressLookupResult, error) {
	args := m.Called(ctx, cep)
	if a, ok := args.Get(0).(*domain.AddressLookupResult); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) CreatePreference(ctx context.Context, items []mercadopago.PreferenceItem, backURLs mercadopago.BackURLs) (string, error) {
	args := m.Called(ctx, items, backURLs)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentGateway) CreatePix(ctx context.Context, amountCents int32, description string) (*mercadopago.PixPayment, error) {
	args := m.Called(ctx, amountCents, description)
	if p, ok := args.Get(0).(*mercadopago.PixPayment); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPaymentGateway) GetPaymentStatus(ctx context.Context, paymentID string) (string, error) {
	args := m.Called(ctx, paymentID)
	return args.String(0), args.Error(1)
}

type MockEmailService struct{ mock.Mock }

func (m *MockEmailService) SendOrderConfirmation(ctx context.Context, email, name, productName, startDate, returnDate string, amountCents int32) error {
	return m.Called(ctx, email, name, productName, startDate, returnDate, amountCents).Error(0)
}

func (m *MockEmailService) SendReturnReminder(ctx context.Context, email, name, productName, returnDate string) error {
	return m.Called(ctx, email, name, productName, returnDate).Error(0)
}

type MockStorage struct{ mock.Mock }

func (m *MockStorage) GenerateUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error) {
	args := m.Called(ctx, key, contentType, expiresIn)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	args := m.Called(ctx, key, expiresIn)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) FileExists(ctx context.Context, key string) (bool, int64, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

func (m *MockStorage) DeleteFile(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockStorage) SaveFile(key string, reader io.Reader) error {
	return m.Called(key, reader).Error(0)
}

func (m *MockStorage) ReadFile(key string) (io.ReadCloser, error) {
	args := m.Called(key)
	if r, ok := args.Get(0).(io.ReadCloser); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}
