package users

import "time"

type User struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"type:varchar(150);not null;uniqueIndex:idx_users_username"`
	Email     string `gorm:"type:varchar(254);not null;uniqueIndex:idx_users_email"`
	Password  string `gorm:"not null"`
	FirstName string `gorm:"type:varchar(150)"`
	LastName  string `gorm:"type:varchar(150)"`
	IsStaff   bool   `gorm:"not null;default:false"`

	CreatedAt time.Time
}

// Brief is the public projection of a user embedded in other resources.
type Brief struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (u User) Brief() Brief {
	return Brief{ID: u.ID, Username: u.Username, FirstName: u.FirstName, LastName: u.LastName}
}
