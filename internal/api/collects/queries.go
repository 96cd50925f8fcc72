package collects

import (
	"github.com/Dauletnazarr/donation-project/internal/api/payments"
	"github.com/Dauletnazarr/donation-project/internal/domain/donations"
	"github.com/Dauletnazarr/donation-project/internal/domain/media"

	"gorm.io/gorm"
)

func collectsQuery(db *gorm.DB) *gorm.DB {
	return db.Model(&donations.Collect{})
}

// withDetails preloads the author, the cover image and the nested payments
// rendered by toCollectDTO.
func withDetails(db *gorm.DB) *gorm.DB {
	q := db.Preload("Author").Preload("CoverImage").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC, id DESC")
		})
	return payments.WithDetails(q, "Payments.")
}

// checkCoverImage rejects a cover_image id with no uploaded image behind it.
func checkCoverImage(db *gorm.DB, id *string) error {
	if id == nil {
		return nil
	}
	var n int64
	if err := db.Model(&media.Image{}).Where("id = ?", *id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		verr := donations.NewValidationError()
		verr.Add("cover_image", `Invalid pk "`+*id+`" - object does not exist.`)
		return verr
	}
	return nil
}

func loadCollect(db *gorm.DB, id string) (donations.Collect, error) {
	var col donations.Collect
	err := withDetails(db).First(&col, "id = ?", id).Error
	return col, err
}
