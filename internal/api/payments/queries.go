package payments

import (
	"github.com/Dauletnazarr/donation-project/internal/domain/donations"

	"gorm.io/gorm"
)

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC, id DESC")
}

// WithDetails preloads what ToPaymentDTO renders. prefix is the association
// path leading to the payments, empty when querying payments directly.
func WithDetails(db *gorm.DB, prefix string) *gorm.DB {
	return db.
		Preload(prefix + "Donor").
		Preload(prefix + "Likes").
		Preload(prefix+"Comments", newestFirst)
}

func collectPaymentsQuery(db *gorm.DB, collectID uint) *gorm.DB {
	return db.Model(&donations.Payment{}).Where("collect_id = ?", collectID)
}
