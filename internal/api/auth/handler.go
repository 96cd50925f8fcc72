package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Dauletnazarr/donation-project/database"
	"github.com/Dauletnazarr/donation-project/internal/api/respond"
	"github.com/Dauletnazarr/donation-project/internal/domain/donations"
	"github.com/Dauletnazarr/donation-project/internal/domain/users"
	"github.com/Dauletnazarr/donation-project/internal/infra/logging"
	"github.com/Dauletnazarr/donation-project/internal/infra/tokens"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// isEmailValid uses the same "email" rule as gin's binding tags.
func isEmailValid(email string) bool {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return false
	}
	return v.Var(email, "email") == nil
}

// passwordProblems lists every rule the password breaks.
func passwordProblems(password, username string) []string {
	var out []string
	if len(password) < 8 {
		out = append(out, "This password is too short. It must contain at least 8 characters.")
	}

	hasLetter, hasDigit, allDigits := false, false, password != ""
	for _, c := range password {
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
			hasLetter = true
			allDigits = false
		case '0' <= c && c <= '9':
			hasDigit = true
		default:
			allDigits = false
		}
	}
	if allDigits {
		out = append(out, "This password is entirely numeric.")
	} else if !hasLetter || !hasDigit {
		out = append(out, "Password must contain both letters and numbers.")
	}

	if username != "" && strings.Contains(strings.ToLower(password), strings.ToLower(username)) {
		out = append(out, "The password is too similar to the username.")
	}
	return out
}

type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func validateRegistration(db *gorm.DB, in RegisterRequest) error {
	verr := donations.NewValidationError()

	username := strings.TrimSpace(in.Username)
	if username == "" {
		verr.Add("username", "This field is required.")
	} else {
		var n int64
		if err := db.Model(&users.User{}).Where("username = ?", username).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			verr.Add("username", "A user with that username already exists.")
		}
	}

	email := strings.TrimSpace(in.Email)
	switch {
	case email == "":
		verr.Add("email", "This field is required.")
	case !isEmailValid(email):
		verr.Add("email", "Enter a valid email address.")
	default:
		var n int64
		if err := db.Model(&users.User{}).Where("LOWER(email) = LOWER(?)", email).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			verr.Add("email", "This field must be unique.")
		}
	}

	if in.Password == "" {
		verr.Add("password", "This field is required.")
	} else {
		for _, p := range passwordProblems(in.Password, username) {
			verr.Add("password", p)
		}
	}
	if in.Password != in.Password2 {
		verr.Add("password", "Password fields didn't match.")
	}

	return verr.Err()
}

// ------------------------------
// POST /register/
// ------------------------------
func Register(c *gin.Context) {
	var input RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respond.BadJSON(c, err)
		return
	}

	if err := validateRegistration(database.DB, input); err != nil {
		respond.Error(c, err)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := users.User{
		Username:  strings.TrimSpace(input.Username),
		Email:     strings.TrimSpace(input.Email),
		Password:  string(hashedPassword),
		FirstName: input.FirstName,
		LastName:  input.LastName,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			verr := donations.NewValidationError()
			verr.Add("username", "A user with that username or email already exists.")
			err = verr
		}
		respond.Error(c, err)
		return
	}

	logging.Log.Info().Uint("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	c.JSON(http.StatusCreated, gin.H{"message": "User created."})
}

// ------------------------------
// POST /login/
// ------------------------------
func Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user users.User
	if err := database.DB.Where("username = ?", input.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	access, err := tokens.Issue(user.ID, user.Username, tokens.Access)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}
	refresh, err := tokens.Issue(user.ID, user.Username, tokens.Refresh)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access": access, "refresh": refresh})
}

// ------------------------------
// POST /token/refresh/
// ------------------------------
func Refresh(c *gin.Context) {
	var input struct {
		Refresh string `json:"refresh" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claims, err := tokens.Parse(input.Refresh, tokens.Refresh)
	if err != nil {
		if errors.Is(err, tokens.ErrNoSecret) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is invalid or expired"})
		return
	}

	// The account may have been removed since the refresh token was issued.
	var user users.User
	if err := database.DB.First(&user, claims.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is invalid or expired"})
		return
	}

	access, err := tokens.Issue(user.ID, user.Username, tokens.Access)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": access})
}
