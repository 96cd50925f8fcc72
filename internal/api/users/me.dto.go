package users

type MeResponse struct {
	User     UserDTO     `json:"user"`
	Activity ActivityDTO `json:"activity"`
}

/* ---------- USER ---------- */

type UserDTO struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsStaff   bool   `json:"is_staff"`
}

/* ---------- ACTIVITY ---------- */

type ActivityDTO struct {
	CollectsCount int64  `json:"collects_count"`
	PaymentsCount int64  `json:"payments_count"`
	TotalDonated  string `json:"total_donated"`
}
