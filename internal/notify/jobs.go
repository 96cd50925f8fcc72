package notify

import (
	"context"
	"time"

	"github.com/Dauletnazarr/donation-project/internal/infra/logging"
	"github.com/Dauletnazarr/donation-project/internal/infra/queue"

	"github.com/shopspring/decimal"
)

const (
	JobCollectCreated   = "collect.created"
	JobDonationReceived = "donation.received"
)

const enqueueTimeout = 2 * time.Second

type CollectCreatedPayload struct {
	AuthorEmail  string `json:"author_email"`
	CollectTitle string `json:"collect_title"`
}

type DonationReceivedPayload struct {
	DonorEmail   string `json:"donor_email"`
	AuthorEmail  string `json:"author_email"`
	Amount       string `json:"amount"`
	CollectTitle string `json:"collect_title"`
}

// CollectCreated queues the "collect created" mail for the author.
func CollectCreated(ctx context.Context, authorEmail, title string) {
	enqueue(ctx, JobCollectCreated, CollectCreatedPayload{
		AuthorEmail:  authorEmail,
		CollectTitle: title,
	})
}

// DonationReceived queues the thank-you mail to the donor and the notice to
// the author.
func DonationReceived(ctx context.Context, donorEmail, authorEmail string, amount decimal.Decimal, title string) {
	enqueue(ctx, JobDonationReceived, DonationReceivedPayload{
		DonorEmail:   donorEmail,
		AuthorEmail:  authorEmail,
		Amount:       amount.StringFixed(2),
		CollectTitle: title,
	})
}

// enqueue never fails the caller: the write that triggered the job has
// already committed.
func enqueue(ctx context.Context, jobType string, payload interface{}) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), enqueueTimeout)
	defer cancel()

	env, err := queue.Enqueue(ctx, queue.Emails, jobType, payload)
	if err != nil {
		logging.Log.Error().Err(err).Str("job", jobType).Msg("failed to enqueue notification")
		return
	}
	logging.Log.Debug().Str("job", jobType).Str("id", env.ID).Msg("notification enqueued")
}
