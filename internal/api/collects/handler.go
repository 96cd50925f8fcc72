package collects

import (
	"net/http"
	"strings"
	"time"

	"github.com/Dauletnazarr/donation-project/config"
	"github.com/Dauletnazarr/donation-project/database"
	"github.com/Dauletnazarr/donation-project/internal/api/respond"
	"github.com/Dauletnazarr/donation-project/internal/app/http/middleware"
	"github.com/Dauletnazarr/donation-project/internal/domain/access"
	"github.com/Dauletnazarr/donation-project/internal/domain/donations"
	"github.com/Dauletnazarr/donation-project/internal/domain/media"
	"github.com/Dauletnazarr/donation-project/internal/domain/users"
	"github.com/Dauletnazarr/donation-project/internal/infra/cache"
	"github.com/Dauletnazarr/donation-project/internal/notify"

	"github.com/gin-gonic/gin"
)

const jsonContentType = "application/json; charset=utf-8"

func mediaBase(c *gin.Context) string {
	return respond.AbsoluteURL(c, config.MEDIA_URL)
}

// ------------------------------
// GET /collects/
// ------------------------------
func ListCollects(c *gin.Context) {
	page, limit, err := respond.ParsePagination(c)
	if err != nil {
		respond.Error(c, err)
		return
	}

	ctx := c.Request.Context()
	key := cache.CollectsPageKey(page, limit)
	if b, ok := cache.GetRaw(ctx, key); ok {
		c.Header("X-Cache", "HIT")
		c.Data(http.StatusOK, jsonContentType, b)
		return
	}

	var count int64
	if err := collectsQuery(database.DB).Count(&count).Error; err != nil {
		respond.Error(c, err)
		return
	}
	if page > respond.LastPage(count, limit) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invalid page."})
		return
	}

	var list []donations.Collect
	if err := withDetails(collectsQuery(database.DB)).
		Order("created_at DESC, id DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&list).Error; err != nil {
		respond.Error(c, err)
		return
	}

	body := respond.NewPage(c, count, page, limit, toCollectDTOs(list, mediaBase(c)))
	b, err := cache.Set(ctx, key, body, config.CACHE_TTL)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.Header("X-Cache", "MISS")
	c.Data(http.StatusOK, jsonContentType, b)
}

// ------------------------------
// GET /collects/:id/
// ------------------------------
func GetCollect(c *gin.Context) {
	col, err := loadCollect(database.DB, c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toCollectDTO(col, mediaBase(c)))
}

// ------------------------------
// POST /collects/
// ------------------------------
func CreateCollect(c *gin.Context) {
	id := middleware.CurrentIdentity(c)
	if err := access.Authenticated(id).Err(); err != nil {
		respond.Error(c, err)
		return
	}

	var req CollectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadJSON(c, err)
		return
	}
	if err := donations.ValidateCollect(req.fields(), time.Now(), false); err != nil {
		respond.Error(c, err)
		return
	}
	if err := checkCoverImage(database.DB, req.CoverImage.Value); err != nil {
		respond.Error(c, err)
		return
	}

	var author users.User
	if err := database.DB.First(&author, id.UserID).Error; err != nil {
		respond.Error(c, err)
		return
	}

	col := donations.Collect{
		AuthorID:     author.ID,
		Title:        strings.TrimSpace(*req.Title),
		Occasion:     donations.Occasion(*req.Occasion),
		Description:  *req.Description,
		GoalAmount:   req.GoalAmount.Value,
		CoverImageID: req.CoverImage.Value,
		EndDatetime:  *req.EndDatetime,
	}
	if err := database.DB.Create(&col).Error; err != nil {
		respond.Error(c, err)
		return
	}

	cache.InvalidateCollects(c.Request.Context())
	notify.CollectCreated(c.Request.Context(), author.Email, col.Title)

	col.Author = author
	if col.CoverImageID != nil {
		var img media.Image
		if err := database.DB.First(&img, "id = ?", *col.CoverImageID).Error; err != nil {
			respond.Error(c, err)
			return
		}
		col.CoverImage = &img
	}
	c.JSON(http.StatusCreated, toCollectDTO(col, mediaBase(c)))
}

// ------------------------------
// PUT|PATCH /collects/:id/
// ------------------------------
func UpdateCollect(c *gin.Context) {
	col, err := loadCollect(database.DB, c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	if err := access.OwnerOrReadOnly(middleware.CurrentIdentity(c), c.Request.Method, &col.AuthorID).Err(); err != nil {
		respond.Error(c, err)
		return
	}

	var req CollectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadJSON(c, err)
		return
	}
	partial := c.Request.Method == http.MethodPatch
	if err := donations.ValidateCollect(req.fields(), time.Now(), partial); err != nil {
		respond.Error(c, err)
		return
	}
	if err := checkCoverImage(database.DB, req.CoverImage.Value); err != nil {
		respond.Error(c, err)
		return
	}

	if updates := req.updates(); len(updates) > 0 {
		if err := database.DB.Model(&donations.Collect{}).Where("id = ?", col.ID).Updates(updates).Error; err != nil {
			respond.Error(c, err)
			return
		}
	}

	cache.InvalidateCollects(c.Request.Context())

	col, err = loadCollect(database.DB, c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toCollectDTO(col, mediaBase(c)))
}

// ------------------------------
// DELETE /collects/:id/
// ------------------------------
func DeleteCollect(c *gin.Context) {
	var col donations.Collect
	if err := database.DB.First(&col, "id = ?", c.Param("id")).Error; err != nil {
		respond.Error(c, err)
		return
	}
	if err := access.OwnerOrReadOnly(middleware.CurrentIdentity(c), c.Request.Method, &col.AuthorID).Err(); err != nil {
		respond.Error(c, err)
		return
	}

	if err := database.DB.Delete(&col).Error; err != nil {
		respond.Error(c, err)
		return
	}

	cache.InvalidateCollects(c.Request.Context())
	c.Status(http.StatusNoContent)
}

// ------------------------------
// GET /collects/:id/get-link/
// ------------------------------
func GetLink(c *gin.Context) {
	var col donations.Collect
	if err := database.DB.First(&col, "id = ?", c.Param("id")).Error; err != nil {
		respond.Error(c, err)
		return
	}

	token, err := donations.EnsureShortLink(database.DB, &col)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, ShortLinkResponse{
		ShortLink: respond.AbsoluteURL(c, donations.ShortLinkPath(token)),
	})
}

