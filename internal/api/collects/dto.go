package collects

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/Dauletnazarr/donation-project/internal/api/payments"
	"github.com/Dauletnazarr/donation-project/internal/domain/donations"
	"github.com/Dauletnazarr/donation-project/internal/domain/users"

	"github.com/shopspring/decimal"
)

// OptionalDecimal tells an explicit null apart from an absent field.
type OptionalDecimal struct {
	Set   bool
	Value *decimal.Decimal
}

func (o *OptionalDecimal) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Value = nil
		return nil
	}
	var d decimal.Decimal
	if err := json.Unmarshal(b, &d); err != nil {
		return err
	}
	o.Value = &d
	return nil
}

// OptionalString is OptionalDecimal for nullable string fields.
type OptionalString struct {
	Set   bool
	Value *string
}

func (o *OptionalString) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

type CollectRequest struct {
	Title       *string         `json:"title"`
	Occasion    *string         `json:"occasion"`
	Description *string         `json:"description"`
	GoalAmount  OptionalDecimal `json:"goal_amount"`
	EndDatetime *time.Time      `json:"end_datetime"`
	CoverImage  OptionalString  `json:"cover_image"`
}

func (r CollectRequest) fields() donations.CollectFields {
	return donations.CollectFields{
		Title:       r.Title,
		Occasion:    r.Occasion,
		Description: r.Description,
		GoalAmount:  r.GoalAmount.Value,
		EndDatetime: r.EndDatetime,
	}
}

// updates maps the provided fields to columns.
func (r CollectRequest) updates() map[string]interface{} {
	out := map[string]interface{}{}
	if r.Title != nil {
		out["title"] = strings.TrimSpace(*r.Title)
	}
	if r.Occasion != nil {
		out["occasion"] = *r.Occasion
	}
	if r.Description != nil {
		out["description"] = *r.Description
	}
	if r.GoalAmount.Set {
		out["goal_amount"] = r.GoalAmount.Value
	}
	if r.EndDatetime != nil {
		out["end_datetime"] = *r.EndDatetime
	}
	if r.CoverImage.Set {
		out["cover_image_id"] = r.CoverImage.Value
	}
	return out
}

type CollectDTO struct {
	ID              uint                  `json:"id"`
	Author          users.Brief           `json:"author"`
	Title           string                `json:"title"`
	Occasion        string                `json:"occasion"`
	Description     string                `json:"description"`
	GoalAmount      *string               `json:"goal_amount"`
	CoverImage      *string               `json:"cover_image"`
	CollectedAmount string                `json:"collected_amount"`
	DonorsCount     uint                  `json:"donors_count"`
	EndDatetime     time.Time             `json:"end_datetime"`
	CreatedAt       time.Time             `json:"created_at"`
	ShortLink       *string               `json:"short_link"`
	Payments        []payments.PaymentDTO `json:"payments"`
}

type ShortLinkResponse struct {
	ShortLink string `json:"short-link"`
}

// toCollectDTO renders col. mediaBase is the absolute media URL prefix the
// cover image path is appended to.
func toCollectDTO(col donations.Collect, mediaBase string) CollectDTO {
	out := CollectDTO{
		ID:              col.ID,
		Author:          col.Author.Brief(),
		Title:           col.Title,
		Occasion:        string(col.Occasion),
		Description:     col.Description,
		CollectedAmount: col.CollectedAmount.StringFixed(2),
		DonorsCount:     col.DonorsCount,
		EndDatetime:     col.EndDatetime,
		CreatedAt:       col.CreatedAt,
		ShortLink:       col.ShortLink,
		Payments:        payments.ToPaymentDTOs(col.Payments),
	}
	if col.GoalAmount != nil {
		s := col.GoalAmount.StringFixed(2)
		out.GoalAmount = &s
	}
	if col.CoverImage != nil {
		u := strings.TrimSuffix(mediaBase, "/") + "/" + col.CoverImage.OriginalPath
		out.CoverImage = &u
	}
	return out
}

func toCollectDTOs(in []donations.Collect, mediaBase string) []CollectDTO {
	out := make([]CollectDTO, 0, len(in))
	for _, col := range in {
		out = append(out, toCollectDTO(col, mediaBase))
	}
	return out
}
