package jobs

import (
	"context"
	"time"

	"brecho-backend/internal/logger"
	"brecho-backend/internal/utils"
)

// SendReturnReminders emails every customer whose paid rental is due back
// tomorrow. Runs each morning; a failed email is logged and skipped so one
// bad address never blocks the rest.
func (jr *JobRunner) SendReturnReminders() {
	jr.runWithRecovery("SendReturnReminders", func() {
		ctx := context.Background()

		tomorrow := time.Now().AddDate(0, 0, 1).Format(utils.DateLayout)
		sessions, err := jr.store.ListPaidRentalsReturningOn(ctx, tomorrow)
		if err != nil {
			logger.Error("Failed to list rentals due for return", "error", err)
			return
		}

		sent := 0
		for _, session := range sessions {
			customer, err := jr.store.CustomerRepository.GetByID(ctx, session.CustomerID)
			if err != nil {
				logger.Error("Failed to load customer for return reminder", "customer_id", session.CustomerID, "error", err)
				continue
			}
			product, err := jr.store.ProductRepository.GetByID(ctx, session.ProductID)
			if err != nil {
				logger.Error("Failed to load product for return reminder", "product_id", session.ProductID, "error", err)
				continue
			}

			if err := jr.services.Email.SendReturnReminder(ctx, customer.Email, customer.FullName, product.Name, session.ReturnDate); err != nil {
				logger.Error("Failed to send return reminder", "email", customer.Email, "error", err)
				continue
			}
			sent++
		}

		logger.Info("Sent return reminders", "due", len(sessions), "sent", sent)
	})
}
