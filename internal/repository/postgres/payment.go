package postgres

import (
	"context"
	"database/sql"
	"time"

	"brecho-backend/internal/domain"
	"brecho-backend/internal/repository"
)

type paymentIntentRepository struct {
	db *sql.DB
}

func NewPaymentIntentRepository(db *sql.DB) repository.PaymentIntentRepository {
	return &paymentIntentRepository{db: db}
}

const intentColumns = `id, session_id, method, amount_cents, description,
	preference_id, gateway_payment_id, pix_qr_code, pix_copy_paste, status, created_on, updated_on`

func (r *paymentIntentRepository) Create(ctx context.Context, i *domain.PaymentIntent) error {
	query := `INSERT INTO payment_intents (session_id, method, amount_cents, description,
	          preference_id, gateway_payment_id, pix_qr_code, pix_copy_paste, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		i.SessionID, i.Method, i.AmountCents, i.Description,
		i.PreferenceID, i.GatewayPaymentID, i.PixQRCode, i.PixCopyPaste, i.Status, time.Now(), time.Now()).Scan(&i.ID)
}

func (r *paymentIntentRepository) GetByID(ctx context.Context, id int32) (*domain.PaymentIntent, error) {
	query := `SELECT ` + intentColumns + ` FROM payment_intents WHERE id = $1`
	return scanIntent(r.db.QueryRowContext(ctx, query, id))
}

func (r *paymentIntentRepository) GetBySession(ctx context.Context, sessionID string) (*domain.PaymentIntent, error) {
	query := `SELECT ` + intentColumns + ` FROM payment_intents WHERE session_id = $1 ORDER BY created_on DESC LIMIT 1`
	return scanIntent(r.db.QueryRowContext(ctx, query, sessionID))
}

func (r *paymentIntentRepository) Update(ctx context.Context, i *domain.PaymentIntent) error {
	query := `UPDATE payment_intents SET method=$1, preference_id=$2, gateway_payment_id=$3, pix_qr_code=$4, pix_copy_paste=$5, status=$6, updated_on=$7 WHERE id=$8`
	_, err := r.db.ExecContext(ctx, query, i.Method, i.PreferenceID, i.GatewayPaymentID, i.PixQRCode, i.PixCopyPaste, i.Status, time.Now(), i.ID)
	return err
}

func (r *paymentIntentRepository) AbandonPendingBefore(ctx context.Context, cutoff string) (int64, error) {
	query := `UPDATE payment_intents SET status=$1, updated_on=$2 WHERE status=$3 AND created_on < $4`
	res, err := r.db.ExecContext(ctx, query, domain.PaymentStatusAbandoned, time.Now(), domain.PaymentStatusPending, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanIntent(row *sql.Row) (*domain.PaymentIntent, error) {
	i := &domain.PaymentIntent{}
	var createdOn, updatedOn time.Time
	err := row.Scan(&i.ID, &i.SessionID, &i.Method, &i.AmountCents, &i.Description,
		&i.PreferenceID, &i.GatewayPaymentID, &i.PixQRCode, &i.PixCopyPaste, &i.Status, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	i.CreatedOn = createdOn.Format(time.RFC3339)
	i.UpdatedOn = updatedOn.Format(time.RFC3339)
	return i, nil
}
