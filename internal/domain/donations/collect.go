package donations

import (
	"time"

	"github.com/Dauletnazarr/donation-project/internal/domain/media"
	"github.com/Dauletnazarr/donation-project/internal/domain/users"

	"github.com/shopspring/decimal"
)

type Occasion string

const (
	OccasionBirthday Occasion = "birthday"
	OccasionWedding  Occasion = "wedding"
	OccasionNewYear  Occasion = "new_year"
	OccasionOther    Occasion = "other"
)

func (o Occasion) Valid() bool {
	switch o {
	case OccasionBirthday, OccasionWedding, OccasionNewYear, OccasionOther:
		return true
	}
	return false
}

// Collect is a fundraising campaign. CollectedAmount and DonorsCount are only
// ever changed by payment writes, through SQL expressions.
type Collect struct {
	ID uint `gorm:"primaryKey"`

	AuthorID uint       `gorm:"not null;index"`
	Author   users.User `gorm:"constraint:OnDelete:CASCADE;"`

	Title       string           `gorm:"type:varchar(255);not null"`
	Occasion    Occasion         `gorm:"type:varchar(50);not null"`
	Description string           `gorm:"type:text"`
	GoalAmount  *decimal.Decimal `gorm:"type:decimal(12,2)"`

	CollectedAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	DonorsCount     uint            `gorm:"not null;default:0"`

	CoverImageID *string      `gorm:"type:varchar(36);index"`
	CoverImage   *media.Image `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`

	EndDatetime time.Time `gorm:"not null"`
	ShortLink   *string   `gorm:"type:varchar(8);uniqueIndex:idx_collects_short_link"`

	Payments []Payment `gorm:"foreignKey:CollectID;constraint:OnDelete:CASCADE;"`

	CreatedAt time.Time `gorm:"index"`
}
