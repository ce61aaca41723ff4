package postgres

import (
	"database/sql"

	"brecho-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ProductRepository
	repository.CustomerRepository
	repository.CheckoutRepository
	repository.ContractRepository
	repository.PaymentIntentRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                      db,
		ProductRepository:       NewProductRepository(db),
		CustomerRepository:      NewCustomerRepository(db),
		CheckoutRepository:      NewCheckoutRepository(db),
		ContractRepository:      NewContractRepository(db),
		PaymentIntentRepository: NewPaymentIntentRepository(db),
	}
}
