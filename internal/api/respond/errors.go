package respond

import (
	"errors"
	"net/http"

	"github.com/Dauletnazarr/donation-project/internal/domain/access"
	"github.com/Dauletnazarr/donation-project/internal/domain/donations"
	"github.com/Dauletnazarr/donation-project/internal/infra/logging"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")

// Error writes err using the API error taxonomy: validation 400, anonymous
// write 401, permission 403, missing row 404, duplicate 409, anything else 500.
func Error(c *gin.Context, err error) {
	var verr *donations.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, verr.Fields)
	case errors.Is(err, access.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, access.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
	case errors.Is(err, donations.ErrAlreadyLiked), errors.Is(err, donations.ErrAlreadyCommented):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrDuplicatedKey):
		c.JSON(http.StatusConflict, gin.H{"error": "Resource already exists."})
	default:
		logging.Log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// BadJSON reports a body that could not be bound.
func BadJSON(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
