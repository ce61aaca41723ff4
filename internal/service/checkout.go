package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"brecho-backend/internal/domain"
	"brecho-backend/internal/repository"
	"brecho-backend/internal/utils"

	"github.com/google/uuid"
)

type checkoutService struct {
	checkoutRepo repository.CheckoutRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	contractRepo repository.ContractRepository
	intentRepo   repository.PaymentIntentRepository
	shippingSvc  ShippingService
}

func NewCheckoutService(
	checkoutRepo repository.CheckoutRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	contractRepo repository.ContractRepository,
	intentRepo repository.PaymentIntentRepository,
	shippingSvc ShippingService,
) CheckoutService {
	return &checkoutService{
		checkoutRepo: checkoutRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		contractRepo: contractRepo,
		intentRepo:   intentRepo,
		shippingSvc:  shippingSvc,
	}
}

func (s *checkoutService) Start(ctx context.Context, customerID, productID int32, kind domain.CheckoutKind) (*domain.CheckoutSession, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !product.Active {
		return nil, ErrNotFound
	}

	var amount int32
	switch kind {
	case domain.KindRental:
		if !product.ForRent {
			return nil, invalidField("kind", "produto não disponível para aluguel")
		}
		amount = product.RentPriceCents
	case domain.KindPurchase:
		if !product.ForSale {
			return nil, invalidField("kind", "produto não disponível para compra")
		}
		amount = product.SalePriceCents
	default:
		return nil, invalidField("kind", "tipo de pedido inválido")
	}

	session := &domain.CheckoutSession{
		ID:          uuid.New().String(),
		CustomerID:  customerID,
		ProductID:   productID,
		Kind:        kind,
		Step:        domain.StepAddress,
		AmountCents: amount,
		Status:      domain.CheckoutStatusOpen,
	}
	if err := s.checkoutRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *checkoutService) Get(ctx context.Context, customerID int32, sessionID string) (*domain.CheckoutSession, error) {
	return s.getOwned(ctx, customerID, sessionID)
}

// SetAddress resolves the CEP and records the shipping outcome on the
// session. An unavailable region keeps the dates step gated; a not-found or
// failed lookup records nothing.
func (s *checkoutService) SetAddress(ctx context.Context, customerID int32, sessionID, cep string) (*domain.CheckoutSession, *domain.AddressLookupResult, error) {
	session, err := s.getOwned(ctx, customerID, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session.Status != domain.CheckoutStatusOpen {
		return nil, nil, precondition(session.Step, "pedido não está mais aberto")
	}

	addr, quote, err := s.shippingSvc.ResolveAddress(ctx, customerID, cep)
	if err != nil {
		return nil, nil, err
	}

	clean, _ := utils.NormalizeCEP(cep)
	product, err := s.productRepo.GetByID(ctx, session.ProductID)
	if err != nil {
		return nil, nil, err
	}

	base := product.SalePriceCents
	if session.Kind == domain.KindRental {
		base = product.RentPriceCents
	}

	session.CEP = clean
	session.ShippingAvailable = quote.Available
	session.ShippingFeeCents = quote.FeeCents
	session.ShippingCity = quote.City
	session.AmountCents = base + quote.FeeCents
	if err := s.checkoutRepo.Update(ctx, session); err != nil {
		return nil, nil, err
	}
	return session, addr, nil
}

// SetDates records the rental start date; the return date is always start
// plus the fixed two-day term.
func (s *checkoutService) SetDates(ctx context.Context, customerID int32, sessionID, startDate string) (*domain.CheckoutSession, error) {
	session, err := s.getOwned(ctx, customerID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Kind != domain.KindRental {
		return nil, invalidField("start_date", "datas só se aplicam a aluguéis")
	}
	if !session.ShippingAvailable {
		return nil, precondition(domain.StepAddress, "informe um CEP com entrega disponível antes de escolher a data")
	}

	start, err := utils.ParseStartDate(startDate, time.Now())
	if errors.Is(err, utils.ErrPastDate) {
		return nil, invalidField("start_date", "data de início não pode estar no passado")
	}
	if err != nil {
		return nil, invalidField("start_date", "data inválida")
	}

	session.StartDate = start.Format(utils.DateLayout)
	session.ReturnDate = utils.ReturnDate(start).Format(utils.DateLayout)
	if err := s.checkoutRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// CanAdvance enforces the linear precondition chain. It inspects state but
// never mutates it; on failure the returned error names the single unmet
// precondition for the current step.
func (s *checkoutService) CanAdvance(ctx context.Context, session *domain.CheckoutSession) error {
	if session.Status != domain.CheckoutStatusOpen {
		return precondition(session.Step, "pedido não está mais aberto")
	}

	switch session.Step {
	case domain.StepSelection:
		return nil

	case domain.StepAddress:
		if session.CEP == "" {
			return precondition(domain.StepAddress, "informe o CEP de entrega")
		}
		if !session.ShippingAvailable {
			return precondition(domain.StepAddress, "entrega não disponível para esta região")
		}
		return nil

	case domain.StepDates:
		if session.Kind != domain.KindRental {
			return nil
		}
		if session.StartDate == "" || session.ReturnDate == "" {
			return precondition(domain.StepDates, "escolha a data de retirada")
		}
		return nil

	case domain.StepProfile:
		customer, err := s.customerRepo.GetByID(ctx, session.CustomerID)
		if err != nil {
			return err
		}
		if !customer.ProfileComplete() {
			return precondition(domain.StepProfile, "complete seu cadastro para prosseguir")
		}
		if !utils.ValidCPF(customer.CPF) {
			return precondition(domain.StepProfile, "CPF inválido")
		}
		if session.Kind == domain.KindRental && customer.DocumentKey == "" {
			return precondition(domain.StepProfile, "upload de documento é obrigatório para aluguel")
		}
		return nil

	case domain.StepContract:
		acceptance, err := s.contractRepo.Get(ctx, session.CustomerID)
		if err != nil {
			return err
		}
		if acceptance == nil || !acceptance.ReachedBottom || !acceptance.Accepted {
			return precondition(domain.StepContract, "você precisa aceitar os termos do contrato para prosseguir")
		}
		return nil

	case domain.StepPayment:
		intent, err := s.intentRepo.GetBySession(ctx, session.ID)
		if errors.Is(err, sql.ErrNoRows) {
			return precondition(domain.StepPayment, "selecione uma forma de pagamento")
		}
		if err != nil {
			return err
		}
		if intent.Method == "" {
			return precondition(domain.StepPayment, "selecione uma forma de pagamento")
		}
		if intent.Status != domain.PaymentStatusApproved {
			return precondition(domain.StepPayment, "pagamento ainda não confirmado")
		}
		return nil

	default:
		return precondition(session.Step, "etapa desconhecida")
	}
}

func (s *checkoutService) Advance(ctx context.Context, customerID int32, sessionID string) (*domain.CheckoutSession, error) {
	session, err := s.getOwned(ctx, customerID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step == domain.StepCompleted {
		return session, nil
	}

	if err := s.CanAdvance(ctx, session); err != nil {
		return nil, err
	}

	session.Step = domain.NextStep(session.Step, session.Kind)
	if session.Step == domain.StepCompleted {
		session.Status = domain.CheckoutStatusPaid
	}
	if err := s.checkoutRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *checkoutService) ListOrders(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.CheckoutSession, int32, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return s.checkoutRepo.ListByCustomer(ctx, customerID, status, page, pageSize)
}

func (s *checkoutService) getOwned(ctx context.Context, customerID int32, sessionID string) (*domain.CheckoutSession, error) {
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
