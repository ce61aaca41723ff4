package postgres

import (
	"context"
	"database/sql"
	"time"

	"brecho-backend/internal/domain"
	"brecho-backend/internal/repository"
)

type customerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

const customerColumns = `id, full_name, cpf, phone, email, password_hash, role,
	addr_street, addr_number, addr_complement, addr_neighborhood, addr_city, addr_state, addr_zip_code,
	document_key, created_on, updated_on`

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (full_name, cpf, phone, email, password_hash, role,
	          addr_street, addr_number, addr_complement, addr_neighborhood, addr_city, addr_state, addr_zip_code,
	          document_key, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		c.FullName, c.CPF, c.Phone, c.Email, c.PasswordHash, c.Role,
		c.Address.Street, c.Address.Number, c.Address.Complement, c.Address.Neighborhood, c.Address.City, c.Address.State, c.Address.ZipCode,
		c.DocumentKey, time.Now(), time.Now()).Scan(&c.ID)
}

func (r *customerRepository) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE email = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *customerRepository) Update(ctx context.Context, c *domain.Customer) error {
	query := `UPDATE customers SET full_name=$1, cpf=$2, phone=$3, email=$4, role=$5,
	          addr_street=$6, addr_number=$7, addr_complement=$8, addr_neighborhood=$9, addr_city=$10, addr_state=$11, addr_zip_code=$12,
	          updated_on=$13 WHERE id=$14`
	_, err := r.db.ExecContext(ctx, query,
		c.FullName, c.CPF, c.Phone, c.Email, c.Role,
		c.Address.Street, c.Address.Number, c.Address.Complement, c.Address.Neighborhood, c.Address.City, c.Address.State, c.Address.ZipCode,
		time.Now(), c.ID)
	return err
}

func (r *customerRepository) SetDocumentKey(ctx context.Context, customerID int32, key string) error {
	query := `UPDATE customers SET document_key=$1, updated_on=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, key, time.Now(), customerID)
	return err
}

func (r *customerRepository) scanOne(row *sql.Row) (*domain.Customer, error) {
	c := &domain.Customer{}
	var createdOn, updatedOn time.Time
	err := row.Scan(&c.ID, &c.FullName, &c.CPF, &c.Phone, &c.Email, &c.PasswordHash, &c.Role,
		&c.Address.Street, &c.Address.Number, &c.Address.Complement, &c.Address.Neighborhood, &c.Address.City, &c.Address.State, &c.Address.ZipCode,
		&c.DocumentKey, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	c.CreatedOn = createdOn.Format(time.RFC3339)
	c.UpdatedOn = updatedOn.Format(time.RFC3339)
	return c, nil
}
