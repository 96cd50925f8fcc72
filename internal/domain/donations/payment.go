package donations

import (
	"time"

	"github.com/Dauletnazarr/donation-project/internal/domain/users"

	"github.com/shopspring/decimal"
)

type Payment struct {
	ID uint `gorm:"primaryKey"`

	CollectID uint `gorm:"not null;index"`

	DonorID *uint       `gorm:"index"`
	Donor   *users.User `gorm:"foreignKey:DonorID;constraint:OnDelete:SET NULL;"`

	Amount decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Likes    []PaymentLike    `gorm:"foreignKey:PaymentID;constraint:OnDelete:CASCADE;"`
	Comments []PaymentComment `gorm:"foreignKey:PaymentID;constraint:OnDelete:CASCADE;"`

	CreatedAt time.Time `gorm:"index"`
}

// PaymentLike and PaymentComment share payment, user and created_at but are
// kept as separate tables, each with its own (payment, user) unique index.
type PaymentLike struct {
	ID uint `gorm:"primaryKey"`

	PaymentID uint       `gorm:"not null;uniqueIndex:idx_payment_likes_payment_user,priority:1"`
	UserID    uint       `gorm:"not null;uniqueIndex:idx_payment_likes_payment_user,priority:2"`
	User      users.User `gorm:"constraint:OnDelete:CASCADE;"`

	CreatedAt time.Time
}

type PaymentComment struct {
	ID uint `gorm:"primaryKey"`

	PaymentID uint       `gorm:"not null;uniqueIndex:idx_payment_comments_payment_user,priority:1"`
	UserID    uint       `gorm:"not null;uniqueIndex:idx_payment_comments_payment_user,priority:2"`
	User      users.User `gorm:"constraint:OnDelete:CASCADE;"`

	Text string `gorm:"type:text;not null"`

	CreatedAt time.Time
}
