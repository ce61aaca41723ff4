package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"brecho-backend/internal/domain"
)

func TestContractRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewContractRepository(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		accepted := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
		rows := sqlmock.NewRows([]string{"customer_id", "reached_bottom", "accepted", "accepted_on", "updated_on"}).
			AddRow(7, true, true, accepted, accepted)
		mock.ExpectQuery("SELECT customer_id, reached_bottom, accepted").
			WithArgs(int32(7)).
			WillReturnRows(rows)

		a, err := repo.Get(ctx, 7)
		assert.NoError(t, err)
		assert.Equal(t, int32(7), a.CustomerID)
		assert.True(t, a.ReachedBottom)
		assert.True(t, a.Accepted)
		assert.Equal(t, "2025-06-10T14:00:00Z", a.AcceptedOn)
	})

	t.Run("NoRecord", func(t *testing.T) {
		mock.ExpectQuery("SELECT customer_id, reached_bottom, accepted").
			WithArgs(int32(8)).
			WillReturnRows(sqlmock.NewRows([]string{"customer_id", "reached_bottom", "accepted", "accepted_on", "updated_on"}))

		a, err := repo.Get(ctx, 8)
		assert.NoError(t, err)
		assert.Nil(t, a)
	})
}

func TestContractRepository_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewContractRepository(db)
	ctx := context.Background()

	t.Run("ScrollOnly", func(t *testing.T) {
		a := &domain.ContractAcceptance{CustomerID: 7, ReachedBottom: true}

		// accepted_on is stored as NULL until the customer accepts.
		mock.ExpectExec("INSERT INTO contract_acceptances").
			WithArgs(int32(7), true, false, nil, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Upsert(ctx, a)
		assert.NoError(t, err)
	})

	t.Run("Accepted", func(t *testing.T) {
		a := &domain.ContractAcceptance{
			CustomerID:    7,
			ReachedBottom: true,
			Accepted:      true,
			AcceptedOn:    "2025-06-10T14:00:00Z",
		}

		mock.ExpectExec("INSERT INTO contract_acceptances").
			WithArgs(int32(7), true, true, "2025-06-10T14:00:00Z", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Upsert(ctx, a)
		assert.NoError(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContractRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewContractRepository(db)

	mock.ExpectExec("DELETE FROM contract_acceptances").
		WithArgs(int32(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Delete(context.Background(), 7)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
