package media

import (
	"errors"
	"net/http"

	"github.com/Dauletnazarr/donation-project/config"
	"github.com/Dauletnazarr/donation-project/database"
	"github.com/Dauletnazarr/donation-project/internal/api/respond"
	"github.com/Dauletnazarr/donation-project/internal/app/http/middleware"
	"github.com/Dauletnazarr/donation-project/internal/domain/donations"
	"github.com/Dauletnazarr/donation-project/internal/domain/media"

	"github.com/gin-gonic/gin"
)

type ImageDTO struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// ------------------------------
// POST /images/
// ------------------------------
func UploadImage(c *gin.Context) {
	id := middleware.CurrentIdentity(c)
	if id.Anonymous() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		fileError(c, "No file was submitted.")
		return
	}
	f, err := fh.Open()
	if err != nil {
		respond.Error(c, err)
		return
	}
	defer f.Close()

	img, err := media.Save(config.MEDIA_ROOT, f, config.MAX_UPLOAD_BYTES)
	switch {
	case errors.Is(err, media.ErrNotImage):
		fileError(c, "Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
		return
	case errors.Is(err, media.ErrTooLarge):
		fileError(c, "The submitted file is too large.")
		return
	case errors.Is(err, media.ErrEmpty):
		fileError(c, "The submitted file is empty.")
		return
	case err != nil:
		respond.Error(c, err)
		return
	}

	uploader := id.UserID
	img.UploaderID = &uploader
	if err := database.DB.Create(&img).Error; err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, ImageDTO{
		ID:  img.ID,
		URL: respond.AbsoluteURL(c, img.URL(config.MEDIA_URL)),
	})
}

func fileError(c *gin.Context, msg string) {
	verr := donations.NewValidationError()
	verr.Add("file", msg)
	respond.Error(c, verr)
}
