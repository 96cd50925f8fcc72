package interactions

import (
	"github.com/Dauletnazarr/donation-project/internal/domain/donations"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// loadPayment resolves :payment_id and requires it to belong to :id.
func loadPayment(db *gorm.DB, c *gin.Context) (donations.Payment, error) {
	var p donations.Payment
	err := db.First(&p, "id = ? AND collect_id = ?", c.Param("payment_id"), c.Param("id")).Error
	return p, err
}

func paymentLikesQuery(db *gorm.DB, paymentID uint) *gorm.DB {
	return db.Model(&donations.PaymentLike{}).Where("payment_id = ?", paymentID)
}

func paymentCommentsQuery(db *gorm.DB, paymentID uint) *gorm.DB {
	return db.Model(&donations.PaymentComment{}).Where("payment_id = ?", paymentID)
}
