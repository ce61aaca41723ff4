package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"brecho-backend/internal/domain"
	"brecho-backend/internal/repository"
)

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `INSERT INTO products (name, description, category, sale_price_cents, rent_price_cents, image_url, for_sale, for_rent, active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	return r.db.QueryRowContext(ctx, query, p.Name, p.Description, p.Category, p.SalePriceCents, p.RentPriceCents, p.ImageURL, p.ForSale, p.ForRent, p.Active, time.Now(), time.Now()).Scan(&p.ID)
}

func (r *productRepository) GetByID(ctx context.Context, id int32) (*domain.Product, error) {
	p := &domain.Product{}
	var createdOn, updatedOn time.Time
	query := `SELECT id, name, description, category, sale_price_cents, rent_price_cents, image_url, for_sale, for_rent, active, created_on, updated_on FROM products WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.SalePriceCents, &p.RentPriceCents, &p.ImageURL, &p.ForSale, &p.ForRent, &p.Active, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	p.CreatedOn = createdOn.Format(time.RFC3339)
	p.UpdatedOn = updatedOn.Format(time.RFC3339)
	return p, nil
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	query := `UPDATE products SET name=$1, description=$2, category=$3, sale_price_cents=$4, rent_price_cents=$5, image_url=$6, for_sale=$7, for_rent=$8, active=$9, updated_on=$10 WHERE id=$11`
	_, err := r.db.ExecContext(ctx, query, p.Name, p.Description, p.Category, p.SalePriceCents, p.RentPriceCents, p.ImageURL, p.ForSale, p.ForRent, p.Active, time.Now(), p.ID)
	return err
}

func (r *productRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	return err
}

func (r *productRepository) List(ctx context.Context, category string, activeOnly bool, page, pageSize int32) ([]domain.Product, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT id, name, description, category, sale_price_cents, rent_price_cents, image_url, for_sale, for_rent, active, created_on, updated_on FROM products WHERE 1=1`

	args := []interface{}{}
	argIdx := 1
	if category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, category)
		argIdx++
	}
	if activeOnly {
		query += " AND active = TRUE"
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		var createdOn, updatedOn time.Time
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.SalePriceCents, &p.RentPriceCents, &p.ImageURL, &p.ForSale, &p.ForRent, &p.Active, &createdOn, &updatedOn); err != nil {
			return nil, 0, err
		}
		p.CreatedOn = createdOn.Format(time.RFC3339)
		p.UpdatedOn = updatedOn.Format(time.RFC3339)
		products = append(products, p)
	}
	return products, count, rows.Err()
}
