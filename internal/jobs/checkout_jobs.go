package jobs

import (
	"context"
	"time"

	"brecho-backend/internal/logger"
)

// ExpireCheckoutSessions marks open sessions idle past the configured TTL
// as EXPIRED. An expired session cannot advance; the customer starts over.
func (jr *JobRunner) ExpireCheckoutSessions() {
	jr.runWithRecovery("ExpireCheckoutSessions", func() {
		ctx := context.Background()

		ttl := time.Duration(jr.config.Checkout.SessionTTLHours) * time.Hour
		cutoff := time.Now().Add(-ttl).Format(time.RFC3339)

		count, err := jr.store.ExpireIdleBefore(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to expire checkout sessions", "error", err)
			return
		}

		logger.Info("Expired idle checkout sessions", "count", count, "cutoff", cutoff)
	})
}

// AbandonStaleIntents marks payment intents still pending past the
// configured TTL as ABANDONED. A Pix that was never paid stays pending at
// the gateway; nothing further is owed on it.
func (jr *JobRunner) AbandonStaleIntents() {
	jr.runWithRecovery("AbandonStaleIntents", func() {
		ctx := context.Background()

		ttl := time.Duration(jr.config.Checkout.IntentTTLHours) * time.Hour
		cutoff := time.Now().Add(-ttl).Format(time.RFC3339)

		count, err := jr.store.AbandonPendingBefore(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to abandon stale payment intents", "error", err)
			return
		}

		logger.Info("Abandoned stale payment intents", "count", count, "cutoff", cutoff)
	})
}
