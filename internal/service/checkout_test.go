package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"brecho-backend/internal/domain"
)

func newCheckoutFixture() (*MockCheckoutRepo, *MockProductRepo, *MockCustomerRepo, *MockContractRepo, *MockIntentRepo, CheckoutService) {
	checkoutRepo := new(MockCheckoutRepo)
	productRepo := new(MockProductRepo)
	customerRepo := new(MockCustomerRepo)
	contractRepo := new(MockContractRepo)
	intentRepo := new(MockIntentRepo)
	shippingSvc := NewShippingService(new(MockAddressLookup))
	svc := NewCheckoutService(checkoutRepo, productRepo, customerRepo, contractRepo, intentRepo, shippingSvc)
	return checkoutRepo, productRepo, customerRepo, contractRepo, intentRepo, svc
}

func TestCheckoutService_Start(t *testing.T) {
	ctx := context.Background()

	t.Run("Rental Uses Rent Price", func(t *testing.T) {
		checkoutRepo, productRepo, _, _, _, svc := newCheckoutFixture()
		productRepo.On("GetByID", ctx, int32(3)).Return(&domain.Product{
			ID: 3, Active: true, ForRent: true, RentPriceCents: 8000, SalePriceCents: 20000,
		}, nil)
		checkoutRepo.On("Create", ctx, mock.AnythingOfType("*domain.CheckoutSession")).Return(nil)

		session, err := svc.Start(ctx, 7, 3, domain.KindRental)
		require.NoError(t, err)
		assert.Equal(t, domain.StepAddress, session.Step)
		assert.Equal(t, int32(8000), session.AmountCents)
		assert.Equal(t, domain.CheckoutStatusOpen, session.Status)
		assert.NotEmpty(t, session.ID)
	})

	t.Run("Rejects Rental On Sale Only Product", func(t *testing.T) {
		_, productRepo, _, _, _, svc := newCheckoutFixture()
		productRepo.On("GetByID", ctx, int32(3)).Return(&domain.Product{
			ID: 3, Active: true, ForSale: true, SalePriceCents: 20000,
		}, nil)

		_, err := svc.Start(ctx, 7, 3, domain.KindRental)
		var val *ValidationError
		assert.ErrorAs(t, err, &val)
		assert.Equal(t, "kind", val.Field)
	})

	t.Run("Inactive Product Is Not Found", func(t *testing.T) {
		_, productRepo, _, _, _, svc := newCheckoutFixture()
		productRepo.On("GetByID", ctx, int32(3)).Return(&domain.Product{ID: 3, Active: false}, nil)

		_, err := svc.Start(ctx, 7, 3, domain.KindRental)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestCheckoutService_SetDates(t *testing.T) {
	ctx := context.Background()

	t.Run("Return Is Start Plus Two Days", func(t *testing.T) {
		checkoutRepo, _, _, _, _, svc := newCheckoutFixture()
		checkoutRepo.On("GetByID", ctx, "sess-1").Return(&domain.CheckoutSession{
			ID: "sess-1", CustomerID: 7, Kind: domain.KindRental,
			Status: domain.CheckoutStatusOpen, ShippingAvailable: true,
		}, nil)
		checkoutRepo.On("Update", ctx, mock.AnythingOfType("*domain.CheckoutSession")).Return(nil)

		session, err := svc.SetDates(ctx, 7, "sess-1", "2099-06-20")
		require.NoError(t, err)
		assert.Equal(t, "2099-06-20", session.StartDate)
		assert.Equal(t, "2099-06-22", session.ReturnDate)
	})

	t.Run("Requires Available Shipping First", func(t *testing.T) {
		checkoutRepo, _, _, _, _, svc := newCheckoutFixture()
		checkoutRepo.On("GetByID", ctx, "sess-1").Return(&domain.CheckoutSession{
			ID: "sess-1", CustomerID: 7, Kind: domain.KindRental,
			Status: domain.CheckoutStatusOpen, ShippingAvailable: false,
		}, nil)

		_, err := svc.SetDates(ctx, 7, "sess-1", "2099-06-20")
		var pre *PreconditionError
		require.ErrorAs(t, err, &pre)
		assert.Equal(t, domain.StepAddress, pre.Step)
	})

	t.Run("Rejects Past Dates", func(t *testing.T) {
		checkoutRepo, _, _, _, _, svc := newCheckoutFixture()
		checkoutRepo.On("GetByID", ctx, "sess-1").Return(&domain.CheckoutSession{
			ID: "sess-1", CustomerID: 7, Kind: domain.KindRental,
			Status: domain.CheckoutStatusOpen, ShippingAvailable: true,
		}, nil)

		_, err := svc.SetDates(ctx, 7, "sess-1", "2020-01-01")
		var val *ValidationError
		require.ErrorAs(t, err, &val)
		assert.Equal(t, "start_date", val.Field)
		checkoutRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Purchases Have No Dates", func(t *testing.T) {
		checkoutRepo, _, _, _, _, svc := newCheckoutFixture()
		checkoutRepo.On("GetByID", ctx, "sess-1").Return(&domain.CheckoutSession{
			ID: "sess-1", CustomerID: 7, Kind: domain.KindPurchase,
			Status: domain.CheckoutStatusOpen,
		}, nil)

		_, err := svc.SetDates(ctx, 7, "sess-1", "2099-06-20")
		var val *ValidationError
		assert.ErrorAs(t, err, &val)
	})
}

func TestCheckoutService_CanAdvance(t *testing.T) {
	ctx := context.Background()

	completeCustomer := &domain.Customer{
		ID: 7, FullName: "Maria Silva", CPF: "52998224725", Phone: "44999990000",
		Email: "maria@example.com", DocumentKey: "customer-7/doc.pdf",
		Address: domain.Address{
			Street: "Rua A", Number: "10", Neighborhood: "Centro",
			City: "Maringá", State: "PR", ZipCode: "87047000",
		},
	}

	t.Run("Address Needs Available Shipping", func(t *testing.T) {
		_, _, _, _, _, svc := newCheckoutFixture()
		session := &domain.CheckoutSession{
			Step: domain.StepAddress, Status: domain.CheckoutStatusOpen,
			Kind: domain.KindRental, CEP: "99999999", ShippingAvailable: false,
		}
		var pre *PreconditionError
		require.ErrorAs(t, svc.CanAdvance(ctx, session), &pre)
		assert.Equal(t, "entrega não disponível para esta região", pre.Message)
	})

	t.Run("Dates Need Start Date", func(t *testing.T) {
		_, _, _, _, _, svc := newCheckoutFixture()
		session := &domain.CheckoutSession{
			Step: domain.StepDates, Status: domain.CheckoutStatusOpen,
			Kind: domain.KindRental, CEP: "87047000", ShippingAvailable: true,
		}
		var pre *PreconditionError
		require.ErrorAs(t, svc.CanAdvance(ctx, session), &pre)
		assert.Equal(t, domain.StepDates, pre.Step)
	})

	t.Run("Profile Needs Document For Rental", func(t *testing.T) {
		_, _, customerRepo, _, _, svc := newCheckoutFixture()
		customer := *completeCustomer
		customer.DocumentKey = ""
		customerRepo.On("GetByID", ctx, int32(7)).Return(&customer, nil)

		session := &domain.CheckoutSession{
			CustomerID: 7, Step: domain.StepProfile,
			Status: domain.CheckoutStatusOpen, Kind: domain.KindRental,
		}
		var pre *PreconditionError
		require.ErrorAs(t, svc.CanAdvance(ctx, session), &pre)
		assert.Contains(t, pre.Message, "documento")
	})

	t.Run("Profile Passes Without Document For Purchase", func(t *testing.T) {
		_, _, customerRepo, _, _, svc := newCheckoutFixture()
		customer := *completeCustomer
		customer.DocumentKey = ""
		customerRepo.On("GetByID", ctx, int32(7)).Return(&customer, nil)

		session := &domain.CheckoutSession{
			CustomerID: 7, Step: domain.StepProfile,
			Status: domain.CheckoutStatusOpen, Kind: domain.KindPurchase,
		}
		assert.NoError(t, svc.CanAdvance(ctx, session))
	})

	t.Run("Contract Needs Latched Acceptance", func(t *testing.T) {
		_, _, _, contractRepo, _, svc := newCheckoutFixture()
		contractRepo.On("Get", ctx, int32(7)).Return(&domain.ContractAcceptance{
			CustomerID: 7, ReachedBottom: true, Accepted: false,
		}, nil)

		session := &domain.CheckoutSession{
			CustomerID: 7, Step: domain.StepContract,
			Status: domain.CheckoutStatusOpen, Kind: domain.KindRental,
		}
		var pre *PreconditionError
		require.ErrorAs(t, svc.CanAdvance(ctx, session), &pre)
		assert.Equal(t, domain.StepContract, pre.Step)
	})

	t.Run("Payment Needs Approved Intent", func(t *testing.T) {
		_, _, _, _, intentRepo, svc := newCheckoutFixture()
		intentRepo.On("GetBySession", ctx, "sess-1").Return(&domain.PaymentIntent{
			SessionID: "sess-1", Method: domain.PaymentMethodPix,
			Status: domain.PaymentStatusPending,
		}, nil)

		session := &domain.CheckoutSession{
			ID: "sess-1", CustomerID: 7, Step: domain.StepPayment,
			Status: domain.CheckoutStatusOpen, Kind: domain.KindRental,
		}
		var pre *PreconditionError
		require.ErrorAs(t, svc.CanAdvance(ctx, session), &pre)
		assert.Equal(t, "pagamento ainda não confirmado", pre.Message)
	})

	t.Run("Payment Without Intent", func(t *testing.T) {
		_, _, _, _, intentRepo, svc := newCheckoutFixture()
		intentRepo.On("GetBySession", ctx, "sess-1").Return(nil, sql.ErrNoRows)

		session := &domain.CheckoutSession{
			ID: "sess-1", CustomerID: 7, Step: domain.StepPayment,
			Status: domain.CheckoutStatusOpen, Kind: domain.KindRental,
		}
		var pre *PreconditionError
		require.ErrorAs(t, svc.CanAdvance(ctx, session), &pre)
		assert.Equal(t, "selecione uma forma de pagamento", pre.Message)
	})

	t.Run("Closed Session Never Advances", func(t *testing.T) {
		_, _, _, _, _, svc := newCheckoutFixture()
		session := &domain.CheckoutSession{
			Step: domain.StepAddress, Status: domain.CheckoutStatusExpired,
		}
		var pre *PreconditionError
		assert.ErrorAs(t, svc.CanAdvance(ctx, session), &pre)
	})
}

func TestCheckoutService_Advance(t *testing.T) {
	ctx := context.Background()

	t.Run("Purchase Skips Contract Step", func(t *testing.T) {
		checkoutRepo, _, customerRepo, _, _, svc := newCheckoutFixture()
		customerRepo.On("GetByID", ctx, int32(7)).Return(&domain.Customer{
			ID: 7, FullName: "Maria Silva", CPF: "52998224725", Phone: "44999990000",
			Email: "maria@example.com",
			Address: domain.Address{
				Street: "Rua A", Number: "10", Neighborhood: "Centro",
				City: "Maringá", State: "PR", ZipCode: "87047000",
			},
		}, nil)
		checkoutRepo.On("GetByID", ctx, "sess-1").Return(&domain.CheckoutSession{
			ID: "sess-1", CustomerID: 7, Kind: domain.KindPurchase,
			Step: domain.StepProfile, Status: domain.CheckoutStatusOpen,
		}, nil)
		checkoutRepo.On("Update", ctx, mock.AnythingOfType("*domain.CheckoutSession")).Return(nil)

		session, err := svc.Advance(ctx, 7, "sess-1")
		require.NoError(t, err)
		assert.Equal(t, domain.StepPayment, session.Step)
	})

	t.Run("Failed Precondition Mutates Nothing", func(t *testing.T) {
		checkoutRepo, _, _, _, _, svc := newCheckoutFixture()
		checkoutRepo.On("GetByID", ctx, "sess-1").Return(&domain.CheckoutSession{
			ID: "sess-1", CustomerID: 7, Kind: domain.KindRental,
			Step: domain.StepAddress, Status: domain.CheckoutStatusOpen,
		}, nil)

		_, err := svc.Advance(ctx, 7, "sess-1")
		var pre *PreconditionError
		require.ErrorAs(t, err, &pre)
		checkoutRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Ownership Enforced", func(t *testing.T) {
		checkoutRepo, _, _, _, _, svc := newCheckoutFixture()
		checkoutRepo.On("GetByID", ctx, "sess-1").Return(&domain.CheckoutSession{
			ID: "sess-1", CustomerID: 7,
		}, nil)

		_, err := svc.Advance(ctx, 8, "sess-1")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}
