package users

import (
	"github.com/Dauletnazarr/donation-project/internal/domain/donations"
	"github.com/Dauletnazarr/donation-project/internal/domain/users"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func BuildUserDTO(u users.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsStaff:   u.IsStaff,
	}
}

// BuildActivityDTO counts the user's collects and payments.
func BuildActivityDTO(db *gorm.DB, userID uint) (ActivityDTO, error) {
	var out ActivityDTO
	if err := db.Model(&donations.Collect{}).Where("author_id = ?", userID).Count(&out.CollectsCount).Error; err != nil {
		return out, err
	}

	var paid []donations.Payment
	if err := db.Select("amount").Where("donor_id = ?", userID).Find(&paid).Error; err != nil {
		return out, err
	}
	total := decimal.Zero
	for _, p := range paid {
		total = total.Add(p.Amount)
	}
	out.PaymentsCount = int64(len(paid))
	out.TotalDonated = total.StringFixed(2)
	return out, nil
}
