package payments

import (
	"time"

	"github.com/Dauletnazarr/donation-project/internal/api/interactions"
	"github.com/Dauletnazarr/donation-project/internal/domain/donations"
	"github.com/Dauletnazarr/donation-project/internal/domain/users"

	"github.com/shopspring/decimal"
)

type CreatePaymentRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

type PaymentDTO struct {
	ID         uint                      `json:"id"`
	Amount     string                    `json:"amount"`
	CreatedAt  time.Time                 `json:"created_at"`
	Donor      *users.Brief              `json:"donor"`
	LikesCount int                       `json:"likes_count"`
	Comments   []interactions.CommentDTO `json:"comments"`
}

// ToPaymentDTO expects Donor, Likes and Comments to be preloaded.
func ToPaymentDTO(p donations.Payment) PaymentDTO {
	out := PaymentDTO{
		ID:         p.ID,
		Amount:     p.Amount.StringFixed(2),
		CreatedAt:  p.CreatedAt,
		LikesCount: len(p.Likes),
		Comments:   interactions.ToCommentDTOs(p.Comments),
	}
	if p.Donor != nil {
		b := p.Donor.Brief()
		out.Donor = &b
	}
	return out
}

func ToPaymentDTOs(in []donations.Payment) []PaymentDTO {
	out := make([]PaymentDTO, 0, len(in))
	for _, p := range in {
		out = append(out, ToPaymentDTO(p))
	}
	return out
}
