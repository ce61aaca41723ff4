package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"brecho-backend/internal/domain"
	"brecho-backend/internal/repository"
)

type contractRepository struct {
	db *sql.DB
}

func NewContractRepository(db *sql.DB) repository.ContractRepository {
	return &contractRepository{db: db}
}

func (r *contractRepository) Get(ctx context.Context, customerID int32) (*domain.ContractAcceptance, error) {
	a := &domain.ContractAcceptance{}
	var acceptedOn sql.NullTime
	var updatedOn time.Time
	query := `SELECT customer_id, reached_bottom, accepted, accepted_on, updated_on FROM contract_acceptances WHERE customer_id = $1`
	err := r.db.QueryRowContext(ctx, query, customerID).Scan(&a.CustomerID, &a.ReachedBottom, &a.Accepted, &acceptedOn, &updatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if acceptedOn.Valid {
		a.AcceptedOn = acceptedOn.Time.Format(time.RFC3339)
	}
	a.UpdatedOn = updatedOn.Format(time.RFC3339)
	return a, nil
}

func (r *contractRepository) Upsert(ctx context.Context, a *domain.ContractAcceptance) error {
	var acceptedOn interface{}
	if a.AcceptedOn != "" {
		acceptedOn = a.AcceptedOn
	}
	query := `INSERT INTO contract_acceptances (customer_id, reached_bottom, accepted, accepted_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (customer_id) DO UPDATE SET reached_bottom=$2, accepted=$3, accepted_on=$4, updated_on=$5`
	_, err := r.db.ExecContext(ctx, query, a.CustomerID, a.ReachedBottom, a.Accepted, acceptedOn, time.Now())
	return err
}

func (r *contractRepository) Delete(ctx context.Context, customerID int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM contract_acceptances WHERE customer_id = $1`, customerID)
	return err
}
