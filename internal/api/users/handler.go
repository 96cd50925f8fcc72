package users

import (
	"net/http"

	"github.com/Dauletnazarr/donation-project/database"
	"github.com/Dauletnazarr/donation-project/internal/api/respond"
	"github.com/Dauletnazarr/donation-project/internal/app/http/middleware"
	"github.com/Dauletnazarr/donation-project/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// ------------------------------
// GET /me/
// ------------------------------
func GetCurrentUser(c *gin.Context) {
	id := middleware.CurrentIdentity(c)
	if id.Anonymous() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user users.User
	if err := database.DB.First(&user, id.UserID).Error; err != nil {
		respond.Error(c, err)
		return
	}

	activity, err := BuildActivityDTO(database.DB, user.ID)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, MeResponse{
		User:     BuildUserDTO(user),
		Activity: activity,
	})
}
