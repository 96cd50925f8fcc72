package shortlink

import (
	"fmt"
	"net/http"

	"github.com/Dauletnazarr/donation-project/database"
	"github.com/Dauletnazarr/donation-project/internal/api/respond"
	"github.com/Dauletnazarr/donation-project/internal/domain/donations"

	"github.com/gin-gonic/gin"
)

// CollectPath is where a short link lands.
func CollectPath(id uint) string {
	return fmt.Sprintf("/api/v1/collects/%d/", id)
}

// ------------------------------
// GET /r/:short_link
// ------------------------------
func Redirect(c *gin.Context) {
	token := c.Param("short_link")
	if len(token) != donations.ShortLinkLength {
		respond.Error(c, respond.ErrNotFound)
		return
	}

	var col donations.Collect
	if err := database.DB.Select("id").First(&col, "short_link = ?", token).Error; err != nil {
		respond.Error(c, err)
		return
	}
	c.Redirect(http.StatusFound, CollectPath(col.ID))
}
