package notify

import (
	"fmt"

	"github.com/Dauletnazarr/donation-project/internal/infra/mailer"
)

func collectCreatedMessages(p CollectCreatedPayload) []mailer.Message {
	return []mailer.Message{{
		To:      []string{p.AuthorEmail},
		Subject: "Your collect has been created",
		Body:    fmt.Sprintf("Your collect %q is live. Share the link and start collecting donations.", p.CollectTitle),
	}}
}

func donationReceivedMessages(p DonationReceivedPayload) []mailer.Message {
	var out []mailer.Message
	if p.DonorEmail != "" {
		out = append(out, mailer.Message{
			To:      []string{p.DonorEmail},
			Subject: "Thank you for your donation!",
			Body:    fmt.Sprintf("You donated %s ₽ to %q.", p.Amount, p.CollectTitle),
		})
	}
	if p.AuthorEmail != "" {
		out = append(out, mailer.Message{
			To:      []string{p.AuthorEmail},
			Subject: "New donation",
			Body:    fmt.Sprintf("You received a donation of %s ₽ to %q.", p.Amount, p.CollectTitle),
		})
	}
	return out
}
