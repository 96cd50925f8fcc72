package donations

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ApplyPayment adds a payment to the collect aggregates in a single UPDATE so
// concurrent payments never lose an increment. Every payment counts as a
// donor, including repeat donations by the same user.
func ApplyPayment(tx *gorm.DB, collectID uint, amount decimal.Decimal) error {
	return shiftAggregates(tx, collectID, amount, 1)
}

// RevertPayment undoes ApplyPayment for a deleted payment.
func RevertPayment(tx *gorm.DB, collectID uint, amount decimal.Decimal) error {
	return shiftAggregates(tx, collectID, amount.Neg(), -1)
}

func shiftAggregates(tx *gorm.DB, collectID uint, amount decimal.Decimal, donors int) error {
	res := tx.Model(&Collect{}).
		Where("id = ?", collectID).
		UpdateColumns(map[string]interface{}{
			"collected_amount": gorm.Expr("collected_amount + ?", amount),
			"donors_count":     gorm.Expr("donors_count + ?", donors),
		})
	if res.Error != nil {
		return fmt.Errorf("update collect %d aggregates: %w", collectID, res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// HasDonated reports whether userID has at least one payment on collectID.
func HasDonated(db *gorm.DB, userID, collectID uint) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	var n int64
	err := db.Model(&Payment{}).
		Where("collect_id = ? AND donor_id = ?", collectID, userID).
		Limit(1).
		Count(&n).Error
	return n > 0, err
}
