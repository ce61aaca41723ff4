package service

import (
	"context"
	"database/sql"
	"errors"
	"net/mail"

	"brecho-backend/internal/domain"
	"brecho-backend/internal/repository"
	"brecho-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	customerRepo repository.CustomerRepository
	tokens       security.TokenManager
}

func NewAuthService(customerRepo repository.CustomerRepository, tokens security.TokenManager) AuthService {
	return &authService{
		customerRepo: customerRepo,
		tokens:       tokens,
	}
}

func (s *authService) Register(ctx context.Context, fullName, email, password string) (*domain.Customer, string, string, error) {
	if fullName == "" {
		return nil, "", "", invalidField("full_name", "nome completo é obrigatório")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, "", "", invalidField("email", "email inválido")
	}
	if len(password) < 8 {
		return nil, "", "", invalidField("password", "senha deve ter ao menos 8 caracteres")
	}

	existing, err := s.customerRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, "", "", err
	}
	if existing != nil {
		return nil, "", "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}

	customer := &domain.Customer{
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, "", "", err
	}

	access, refresh, err := s.issueTokens(customer)
	return customer, access, refresh, err
}

func (s *authService) Login(ctx context.Context, email, password string) (string, string, error) {
	customer, err := s.customerRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)); err != nil {
		return "", "", ErrInvalidCredentials
	}

	return s.issueTokens(customer)
}

func (s *authService) RefreshToken(ctx context.Context, refresh string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refresh)
	if err != nil {
		return "", "", err
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", security.ErrWrongTokenType
	}

	customer, err := s.customerRepo.GetByID(ctx, claims.CustomerID)
	if err != nil {
		return "", "", ErrUnauthorized
	}
	return s.issueTokens(customer)
}

func (s *authService) issueTokens(customer *domain.Customer) (string, string, error) {
	access, err := s.tokens.GenerateAccessToken(customer.ID, customer.Email, customer.Role)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(customer.ID, customer.Email)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
