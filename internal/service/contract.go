package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"text/template"
	"time"

	"brecho-backend/internal/domain"
	"brecho-backend/internal/repository"
)

// contractTemplate is the rental contract presented in the scrollable
// viewer, filled with the customer's name, pickup date and value.
var contractTemplate = template.Must(template.New("contract").Parse(`CONTRATO DE LOCAÇÃO DE TRAJE

LOCADOR: RL Brechó
LOCATÁRIO: {{.CustomerName}}

1. OBJETO
1.1 O presente contrato tem como objeto a locação de traje para festa junina.
1.2 Data de retirada: {{.PickupDate}}

2. PRAZO
2.1 O prazo de locação é de 2 (dois) dias corridos.
2.2 A devolução após o prazo incorrerá em multa diária.

3. RESPONSABILIDADES
3.1 O LOCATÁRIO se responsabiliza por qualquer dano causado ao traje.
3.2 Em caso de dano ou não devolução, o LOCATÁRIO pagará o valor integral do traje.

4. CONDIÇÕES DE USO
4.1 O traje deve ser devolvido nas mesmas condições em que foi retirado.
4.2 Não é permitido realizar alterações ou ajustes no traje sem autorização.

5. PAGAMENTO
5.1 Valor da locação: R$ {{printf "%.2f" .Value}}
5.2 Será cobrada caução, que será devolvida após a devolução do traje em perfeitas condições.
`))

type contractService struct {
	contractRepo repository.ContractRepository
	customerRepo repository.CustomerRepository
	checkoutRepo repository.CheckoutRepository
}

func NewContractService(
	contractRepo repository.ContractRepository,
	customerRepo repository.CustomerRepository,
	checkoutRepo repository.CheckoutRepository,
) ContractService {
	return &contractService{
		contractRepo: contractRepo,
		customerRepo: customerRepo,
		checkoutRepo: checkoutRepo,
	}
}

func (s *contractService) Render(ctx context.Context, customerID int32, sessionID string) (string, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return "", err
	}
	session, err := s.checkoutRepo.GetByID(ctx, sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	if session.CustomerID != customerID {
		return "", ErrUnauthorized
	}

	var buf bytes.Buffer
	err = contractTemplate.Execute(&buf, struct {
		CustomerName string
		PickupDate   string
		Value        float64
	}{
		CustomerName: customer.FullName,
		PickupDate:   session.StartDate,
		Value:        float64(session.AmountCents) / 100,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ReportScroll feeds viewer metrics into the acceptance record. The latch is
// one-way: once the bottom has been reached the record never reverts, even
// if the viewer later scrolls back up.
func (s *contractService) ReportScroll(ctx context.Context, customerID int32, scrollHeight, clientHeight, scrollTop float64) (*domain.ContractAcceptance, error) {
	acceptance, err := s.contractRepo.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if acceptance == nil {
		acceptance = &domain.ContractAcceptance{CustomerID: customerID}
	}

	if acceptance.ReachedBottom {
		return acceptance, nil
	}
	if !domain.ViewerReachedBottom(scrollHeight, clientHeight, scrollTop) {
		return acceptance, nil
	}

	acceptance.ReachedBottom = true
	if err := s.contractRepo.Upsert(ctx, acceptance); err != nil {
		return nil, err
	}
	return acceptance, nil
}

// Accept transitions the record to accepted. Only legal while the latch is
// set; the persisted flag has no expiry.
func (s *contractService) Accept(ctx context.Context, customerID int32) (*domain.ContractAcceptance, error) {
	acceptance, err := s.contractRepo.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if acceptance == nil || !acceptance.ReachedBottom {
		return nil, ErrContractNotRead
	}
	if acceptance.Accepted {
		return acceptance, nil
	}

	acceptance.Accepted = true
	acceptance.AcceptedOn = time.Now().Format(time.RFC3339)
	if err := s.contractRepo.Upsert(ctx, acceptance); err != nil {
		return nil, err
	}
	return acceptance, nil
}

func (s *contractService) Status(ctx context.Context, customerID int32) (*domain.ContractAcceptance, error) {
	acceptance, err := s.contractRepo.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if acceptance == nil {
		acceptance = &domain.ContractAcceptance{CustomerID: customerID}
	}
	return acceptance, nil
}

func (s *contractService) Invalidate(ctx context.Context, customerID int32) error {
	return s.contractRepo.Delete(ctx, customerID)
}
