package service

import (
	"context"
	"database/sql"
	"errors"

	"brecho-backend/internal/domain"
	"brecho-backend/internal/repository"
)

type catalogService struct {
	productRepo repository.ProductRepository
}

func NewCatalogService(productRepo repository.ProductRepository) CatalogService {
	return &catalogService{productRepo: productRepo}
}

func (s *catalogService) ListProducts(ctx context.Context, category string, includeInactive bool, page, pageSize int32) ([]domain.Product, int32, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return s.productRepo.List(ctx, category, !includeInactive, page, pageSize)
}

func (s *catalogService) GetProduct(ctx context.Context, id int32) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return product, err
}

func (s *catalogService) AddProduct(ctx context.Context, product *domain.Product) error {
	if product.Name == "" {
		return invalidField("name", "name is required")
	}
	if !product.ForSale && !product.ForRent {
		return invalidField("for_sale", "product must be for sale, for rent, or both")
	}
	if product.ForSale && product.SalePriceCents <= 0 {
		return invalidField("sale_price_cents", "sale price must be positive")
	}
	if product.ForRent && product.RentPriceCents <= 0 {
		return invalidField("rent_price_cents", "rent price must be positive")
	}
	return s.productRepo.Create(ctx, product)
}

func (s *catalogService) UpdateProduct(ctx context.Context, product *domain.Product) error {
	if _, err := s.GetProduct(ctx, product.ID); err != nil {
		return err
	}
	return s.productRepo.Update(ctx, product)
}

func (s *catalogService) RemoveProduct(ctx context.Context, id int32) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}
