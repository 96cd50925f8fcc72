package interactions

import (
	"time"

	"github.com/Dauletnazarr/donation-project/internal/domain/donations"
)

type LikeDTO struct {
	ID        uint      `json:"id"`
	User      uint      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentDTO struct {
	ID        uint      `json:"id"`
	User      uint      `json:"user"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateCommentRequest struct {
	Text string `json:"text"`
}

func ToLikeDTO(l donations.PaymentLike) LikeDTO {
	return LikeDTO{ID: l.ID, User: l.UserID, CreatedAt: l.CreatedAt}
}

func ToCommentDTO(cm donations.PaymentComment) CommentDTO {
	return CommentDTO{ID: cm.ID, User: cm.UserID, Text: cm.Text, CreatedAt: cm.CreatedAt}
}

func ToCommentDTOs(in []donations.PaymentComment) []CommentDTO {
	out := make([]CommentDTO, 0, len(in))
	for _, cm := range in {
		out = append(out, ToCommentDTO(cm))
	}
	return out
}
