package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"brecho-backend/internal/domain"
	"brecho-backend/internal/gateway/viacep"
	"brecho-backend/internal/utils"
)

// shippingRule maps a CEP prefix to a fixed delivery fee. The table is the
// whole delivery policy: anything outside these prefixes is not served.
type shippingRule struct {
	prefix   string
	feeCents int32
	city     string
}

var shippingRules = []shippingRule{
	{prefix: "87047", feeCents: 1000, city: "Maringá"},
	{prefix: "87111", feeCents: 1500, city: "Sarandi"},
}

type shippingService struct {
	lookup AddressLookup

	// Superseding state for in-flight lookups, keyed per customer: a new
	// ResolveAddress call cancels that customer's previous lookup and
	// bumps the sequence so only their newest request's result is ever
	// reported. Lookups of different customers never interfere.
	mu       sync.Mutex
	inflight map[int32]*inflightLookup
}

type inflightLookup struct {
	seq    uint64
	cancel context.CancelFunc
}

func NewShippingService(lookup AddressLookup) ShippingService {
	return &shippingService{
		lookup:   lookup,
		inflight: make(map[int32]*inflightLookup),
	}
}

func (s *shippingService) Quote(cep string) (*domain.ShippingQuote, error) {
	clean, err := utils.NormalizeCEP(cep)
	if err != nil {
		return nil, invalidField("cep", "CEP inválido")
	}
	return quoteFor(clean), nil
}

func quoteFor(cleanCEP string) *domain.ShippingQuote {
	for _, rule := range shippingRules {
		if strings.HasPrefix(cleanCEP, rule.prefix) {
			return &domain.ShippingQuote{
				Available: true,
				FeeCents:  rule.feeCents,
				City:      rule.city,
				Message:   fmt.Sprintf("Entrega disponível para %s - R$ %.2f", rule.city, float64(rule.feeCents)/100),
			}
		}
	}
	return &domain.ShippingQuote{
		Available: false,
		FeeCents:  0,
		Message:   "Entrega não disponível para esta região",
	}
}

func (s *shippingService) ResolveAddress(ctx context.Context, customerID int32, cep string) (*domain.AddressLookupResult, *domain.ShippingQuote, error) {
	clean, err := utils.NormalizeCEP(cep)
	if err != nil {
		return nil, nil, invalidField("cep", "CEP inválido")
	}
	quote := quoteFor(clean)

	s.mu.Lock()
	state, ok := s.inflight[customerID]
	if !ok {
		state = &inflightLookup{}
		s.inflight[customerID] = state
	}
	if state.cancel != nil {
		state.cancel()
	}
	lookupCtx, cancel := context.WithCancel(ctx)
	state.cancel = cancel
	state.seq++
	seq := state.seq
	s.mu.Unlock()

	addr, err := s.lookup.Lookup(lookupCtx, clean)

	s.mu.Lock()
	superseded := seq != state.seq
	if !superseded {
		delete(s.inflight, customerID)
		cancel()
	}
	s.mu.Unlock()

	if superseded {
		return nil, nil, ErrLookupSuperseded
	}
	if errors.Is(err, viacep.ErrNotFound) {
		return nil, nil, invalidField("cep", "CEP não encontrado")
	}
	if err != nil {
		return nil, nil, err
	}
	return addr, quote, nil
}
