package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"path/filepath"
	"strings"
	"time"

	"brecho-backend/internal/domain"
	"brecho-backend/internal/repository"
	"brecho-backend/internal/storage"
	"brecho-backend/internal/utils"

	"github.com/google/uuid"
)

const uploadURLExpiry = 15 * time.Minute

var allowedDocumentExts = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".pdf":  "application/pdf",
}

type customerService struct {
	customerRepo repository.CustomerRepository
	storageSvc   storage.StorageInterface
}

func NewCustomerService(customerRepo repository.CustomerRepository, storageSvc storage.StorageInterface) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		storageSvc:   storageSvc,
	}
}

func (s *customerService) GetProfile(ctx context.Context, customerID int32) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return customer, err
}

// CompleteProfile validates and stores the identity fields required before
// the contract and payment steps. Validation failures are field-scoped and
// nothing is persisted on failure.
func (s *customerService) CompleteProfile(ctx context.Context, customerID int32, input ProfileInput) (*domain.Customer, error) {
	customer, err := s.GetProfile(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if err := validateProfile(input); err != nil {
		return nil, err
	}

	customer.FullName = strings.TrimSpace(input.FullName)
	customer.CPF = utils.NormalizeCPF(input.CPF)
	customer.Phone = input.Phone
	customer.Email = input.Email
	customer.Address = input.Address

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func validateProfile(input ProfileInput) error {
	if len(strings.TrimSpace(input.FullName)) < 3 {
		return invalidField("full_name", "nome completo é obrigatório")
	}
	if !utils.ValidCPF(input.CPF) {
		return invalidField("cpf", "CPF inválido")
	}
	if len(input.Phone) < 10 {
		return invalidField("phone", "telefone inválido")
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return invalidField("email", "email inválido")
	}
	addr := input.Address
	if len(addr.Street) < 3 {
		return invalidField("address.street", "rua é obrigatória")
	}
	if addr.Number == "" {
		return invalidField("address.number", "número é obrigatório")
	}
	if len(addr.Neighborhood) < 3 {
		return invalidField("address.neighborhood", "bairro é obrigatório")
	}
	if len(addr.City) < 3 {
		return invalidField("address.city", "cidade é obrigatória")
	}
	if len(addr.State) != 2 {
		return invalidField("address.state", "estado inválido")
	}
	if _, err := utils.NormalizeCEP(addr.ZipCode); err != nil {
		return invalidField("address.zip_code", "CEP inválido")
	}
	return nil
}

// RequestDocumentUpload hands out a one-time URL for the identification
// document required on rental checkouts.
func (s *customerService) RequestDocumentUpload(ctx context.Context, customerID int32, filename, contentType string) (string, string, error) {
	if _, err := s.GetProfile(ctx, customerID); err != nil {
		return "", "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	expectedType, ok := allowedDocumentExts[ext]
	if !ok {
		return "", "", invalidField("filename", "documento deve ser JPEG, PNG ou PDF")
	}
	if contentType != expectedType {
		return "", "", invalidField("content_type", "tipo de conteúdo não corresponde ao arquivo")
	}

	key := fmt.Sprintf("customer-%d/%s%s", customerID, uuid.New().String(), ext)
	uploadURL, err := s.storageSvc.GenerateUploadURL(ctx, key, contentType, uploadURLExpiry)
	if err != nil {
		return "", "", err
	}
	return uploadURL, key, nil
}

// ConfirmDocumentUpload records the storage key on the profile once the
// document actually exists in storage.
func (s *customerService) ConfirmDocumentUpload(ctx context.Context, customerID int32, key string) error {
	if !strings.HasPrefix(key, fmt.Sprintf("customer-%d/", customerID)) {
		return ErrUnauthorized
	}

	exists, _, err := s.storageSvc.FileExists(ctx, key)
	if err != nil {
		return err
	}
	if !exists {
		return invalidField("key", "documento não encontrado no armazenamento")
	}

	return s.customerRepo.SetDocumentKey(ctx, customerID, key)
}
