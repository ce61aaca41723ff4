package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"brecho-backend/internal/domain"
	"brecho-backend/internal/repository"
)

type checkoutRepository struct {
	db *sql.DB
}

func NewCheckoutRepository(db *sql.DB) repository.CheckoutRepository {
	return &checkoutRepository{db: db}
}

const checkoutColumns = `id, customer_id, product_id, kind, step,
	cep, shipping_available, shipping_fee_cents, shipping_city,
	start_date, return_date, amount_cents, status, created_on, updated_on`

func (r *checkoutRepository) Create(ctx context.Context, s *domain.CheckoutSession) error {
	query := `INSERT INTO checkout_sessions (id, customer_id, product_id, kind, step,
	          cep, shipping_available, shipping_fee_cents, shipping_city,
	          start_date, return_date, amount_cents, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.CustomerID, s.ProductID, s.Kind, s.Step,
		s.CEP, s.ShippingAvailable, s.ShippingFeeCents, s.ShippingCity,
		s.StartDate, s.ReturnDate, s.AmountCents, s.Status, time.Now(), time.Now())
	return err
}

func (r *checkoutRepository) GetByID(ctx context.Context, id string) (*domain.CheckoutSession, error) {
	query := `SELECT ` + checkoutColumns + ` FROM checkout_sessions WHERE id = $1`
	return scanCheckout(r.db.QueryRowContext(ctx, query, id))
}

func (r *checkoutRepository) Update(ctx context.Context, s *domain.CheckoutSession) error {
	query := `UPDATE checkout_sessions SET step=$1, cep=$2, shipping_available=$3, shipping_fee_cents=$4, shipping_city=$5,
	          start_date=$6, return_date=$7, amount_cents=$8, status=$9, updated_on=$10 WHERE id=$11`
	_, err := r.db.ExecContext(ctx, query,
		s.Step, s.CEP, s.ShippingAvailable, s.ShippingFeeCents, s.ShippingCity,
		s.StartDate, s.ReturnDate, s.AmountCents, s.Status, time.Now(), s.ID)
	return err
}

func (r *checkoutRepository) ListByCustomer(ctx context.Context, customerID int32, status string, page, pageSize int32) ([]domain.CheckoutSession, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + checkoutColumns + ` FROM checkout_sessions WHERE customer_id = $1`

	args := []interface{}{customerID}
	argIdx := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var sessions []domain.CheckoutSession
	for rows.Next() {
		s, err := scanCheckoutRows(rows)
		if err != nil {
			return nil, 0, err
		}
		sessions = append(sessions, *s)
	}
	return sessions, count, rows.Err()
}

func (r *checkoutRepository) ExpireIdleBefore(ctx context.Context, cutoff string) (int64, error) {
	query := `UPDATE checkout_sessions SET status=$1, updated_on=$2 WHERE status=$3 AND updated_on < $4`
	res, err := r.db.ExecContext(ctx, query, domain.CheckoutStatusExpired, time.Now(), domain.CheckoutStatusOpen, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *checkoutRepository) ListPaidRentalsReturningOn(ctx context.Context, date string) ([]domain.CheckoutSession, error) {
	query := `SELECT ` + checkoutColumns + ` FROM checkout_sessions WHERE status = $1 AND kind = $2 AND return_date = $3`
	rows, err := r.db.QueryContext(ctx, query, domain.CheckoutStatusPaid, domain.KindRental, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.CheckoutSession
	for rows.Next() {
		s, err := scanCheckoutRows(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

func scanCheckout(row *sql.Row) (*domain.CheckoutSession, error) {
	s := &domain.CheckoutSession{}
	var startDate, returnDate sql.NullString
	var createdOn, updatedOn time.Time
	err := row.Scan(&s.ID, &s.CustomerID, &s.ProductID, &s.Kind, &s.Step,
		&s.CEP, &s.ShippingAvailable, &s.ShippingFeeCents, &s.ShippingCity,
		&startDate, &returnDate, &s.AmountCents, &s.Status, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	s.StartDate = startDate.String
	s.ReturnDate = returnDate.String
	s.CreatedOn = createdOn.Format(time.RFC3339)
	s.UpdatedOn = updatedOn.Format(time.RFC3339)
	return s, nil
}

func scanCheckoutRows(rows *sql.Rows) (*domain.CheckoutSession, error) {
	s := &domain.CheckoutSession{}
	var startDate, returnDate sql.NullString
	var createdOn, updatedOn time.Time
	err := rows.Scan(&s.ID, &s.CustomerID, &s.ProductID, &s.Kind, &s.Step,
		&s.CEP, &s.ShippingAvailable, &s.ShippingFeeCents, &s.ShippingCity,
		&startDate, &returnDate, &s.AmountCents, &s.Status, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	s.StartDate = startDate.String
	s.ReturnDate = returnDate.String
	s.CreatedOn = createdOn.Format(time.RFC3339)
	s.UpdatedOn = updatedOn.Format(time.RFC3339)
	return s, nil
}
