package seed

import (
	"errors"
	"fmt"

	"github.com/Dauletnazarr/donation-project/internal/domain/users"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// EnsureSuperuser creates a staff account unless username is taken. It
// reports whether a row was inserted.
func EnsureSuperuser(db *gorm.DB, username, email, password string) (bool, error) {
	var u users.User
	err := db.Where("username = ?", username).First(&u).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	u = users.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		IsStaff:  true,
	}
	if err := db.Create(&u).Error; err != nil {
		return false, err
	}
	return true, nil
}
