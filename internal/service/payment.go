package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"brecho-backend/internal/domain"
	"brecho-backend/internal/gateway/mercadopago"
	"brecho-backend/internal/logger"
	"brecho-backend/internal/repository"
)

type paymentService struct {
	intentRepo   repository.PaymentIntentRepository
	checkoutRepo repository.CheckoutRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	gateway      PaymentGateway
	emailSvc     EmailService
	baseURL      string
}

func NewPaymentService(
	intentRepo repository.PaymentIntentRepository,
	checkoutRepo repository.CheckoutRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	gateway PaymentGateway,
	emailSvc EmailService,
	baseURL string,
) PaymentService {
	return &paymentService{
		intentRepo:   intentRepo,
		checkoutRepo: checkoutRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		gateway:      gateway,
		emailSvc:     emailSvc,
		baseURL:      baseURL,
	}
}

// EnsureIntent creates the payment intent on entry to the payment step,
// before any method is chosen. The gateway preference backs the card wallet
// widget; Pix reuses the same intent. There is no idempotency key, so a
// retry after a transport failure can leave an orphan preference at the
// gateway.
func (s *paymentService) EnsureIntent(ctx context.Context, customerID int32, sessionID string) (*domain.PaymentIntent, error) {
	session, err := s.ownedSession(ctx, customerID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != domain.StepPayment {
		return nil, precondition(session.Step, "complete as etapas anteriores antes do pagamento")
	}

	intent, err := s.intentRepo.GetBySession(ctx, sessionID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if intent != nil && intent.Status != domain.PaymentStatusAbandoned {
		return intent, nil
	}

	product, err := s.productRepo.GetByID(ctx, session.ProductID)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Pedido #%s", session.ID)
	items := []mercadopago.PreferenceItem{{
		Title:      product.Name,
		Quantity:   1,
		CurrencyID: "BRL",
		UnitPrice:  float64(session.AmountCents) / 100,
	}}
	backURLs := mercadopago.BackURLs{
		Success: s.baseURL + "/checkout/success",
		Failure: s.baseURL + "/checkout/failure",
	}

	preferenceID, err := s.gateway.CreatePreference(ctx, items, backURLs)
	if err != nil {
		return nil, err
	}

	intent = &domain.PaymentIntent{
		SessionID:    session.ID,
		AmountCents:  session.AmountCents,
		Description:  description,
		PreferenceID: preferenceID,
		Status:       domain.PaymentStatusPending,
	}
	if err := s.intentRepo.Create(ctx, intent); err != nil {
		return nil, err
	}
	return intent, nil
}

func (s *paymentService) PayWithPix(ctx context.Context, customerID int32, sessionID string) (*domain.PaymentIntent, error) {
	intent, err := s.EnsureIntent(ctx, customerID, sessionID)
	if err != nil {
		return nil, err
	}

	pix, err := s.gateway.CreatePix(ctx, intent.AmountCents, intent.Description)
	if err != nil {
		return nil, err
	}

	intent.Method = domain.PaymentMethodPix
	intent.GatewayPaymentID = pix.ID
	intent.PixQRCode = pix.QRCodeBase64
	intent.PixCopyPaste = pix.CopyPaste
	if err := s.intentRepo.Update(ctx, intent); err != nil {
		return nil, err
	}
	return intent, nil
}

func (s *paymentService) SelectDebitCard(ctx context.Context, customerID int32, sessionID string) (*domain.PaymentIntent, error) {
	intent, err := s.EnsureIntent(ctx, customerID, sessionID)
	if err != nil {
		return nil, err
	}

	intent.Method = domain.PaymentMethodDebitCard
	if err := s.intentRepo.Update(ctx, intent); err != nil {
		return nil, err
	}
	return intent, nil
}

// ConfirmPix runs a single explicit status poll. There is no interval
// polling and no webhook; the status never changes without this call.
func (s *paymentService) ConfirmPix(ctx context.Context, customerID int32, sessionID string) (*domain.PaymentIntent, error) {
	session, err := s.ownedSession(ctx, customerID, sessionID)
	if err != nil {
		return nil, err
	}

	intent, err := s.intentRepo.GetBySession(ctx, sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if intent.Method != domain.PaymentMethodPix || intent.GatewayPaymentID == "" {
		return nil, invalidField("method", "nenhum pagamento Pix em andamento")
	}
	if intent.Status == domain.PaymentStatusApproved {
		return intent, nil
	}

	status, err := s.gateway.GetPaymentStatus(ctx, intent.GatewayPaymentID)
	if err != nil {
		return nil, err
	}

	switch status {
	case "approved":
		intent.Status = domain.PaymentStatusApproved
	case "pending", "in_process":
		intent.Status = domain.PaymentStatusPending
	default:
		intent.Status = domain.PaymentStatusOther
	}
	if err := s.intentRepo.Update(ctx, intent); err != nil {
		return nil, err
	}

	if intent.Status != domain.PaymentStatusApproved {
		return intent, ErrPaymentNotConfirmed
	}

	session.Step = domain.StepCompleted
	session.Status = domain.CheckoutStatusPaid
	if err := s.checkoutRepo.Update(ctx, session); err != nil {
		return nil, err
	}

	s.sendConfirmation(ctx, session)
	return intent, nil
}

// sendConfirmation emails the customer after an approved payment. Best
// effort; a failed email never fails the payment.
func (s *paymentService) sendConfirmation(ctx context.Context, session *domain.CheckoutSession) {
	customer, err := s.customerRepo.GetByID(ctx, session.CustomerID)
	if err != nil {
		logger.Warn("Could not load customer for confirmation email", "customer_id", session.CustomerID, "error", err)
		return
	}
	product, err := s.productRepo.GetByID(ctx, session.ProductID)
	if err != nil {
		logger.Warn("Could not load product for confirmation email", "product_id", session.ProductID, "error", err)
		return
	}
	if err := s.emailSvc.SendOrderConfirmation(ctx, customer.Email, customer.FullName, product.Name, session.StartDate, session.ReturnDate, session.AmountCents); err != nil {
		logger.Warn("Failed to send order confirmation email", "email", customer.Email, "error", err)
	}
}

func (s *paymentService) ownedSession(ctx context.Context, customerID int32, sessionID string) (*domain.CheckoutSession, error) {
	session, err := s.checkoutRepo.GetByID(ctx, sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if session.CustomerID != customerID {
		return nil, ErrUnauthorized
	}
	return session, nil
}
