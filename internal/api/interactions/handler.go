package interactions

import (
	"errors"
	"net/http"

	"github.com/Dauletnazarr/donation-project/database"
	"github.com/Dauletnazarr/donation-project/internal/api/respond"
	"github.com/Dauletnazarr/donation-project/internal/app/http/middleware"
	"github.com/Dauletnazarr/donation-project/internal/domain/access"
	"github.com/Dauletnazarr/donation-project/internal/domain/donations"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// authorize applies the rule shared by likes and comments: only donors of
// the payment's collect may write, once per payment. model selects the table
// checked for an existing row and dup is returned when one is found.
func authorize(c *gin.Context, p donations.Payment, model interface{}, dup error) error {
	id := middleware.CurrentIdentity(c)

	donated, err := donations.HasDonated(database.DB, id.UserID, p.CollectID)
	if err != nil {
		return err
	}
	if err := access.DonatorOfCollect(id, c.Request.Method, donated).Err(); err != nil {
		return err
	}

	var n int64
	if err := database.DB.Model(model).
		Where("payment_id = ? AND user_id = ?", p.ID, id.UserID).
		Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return dup
	}
	return nil
}

// ------------------------------
// GET /collects/:id/payments/:payment_id/likes/
// ------------------------------
func ListLikes(c *gin.Context) {
	p, err := loadPayment(database.DB, c)
	if err != nil {
		respond.Error(c, err)
		return
	}
	page, limit, err := respond.ParsePagination(c)
	if err != nil {
		respond.Error(c, err)
		return
	}

	var count int64
	if err := paymentLikesQuery(database.DB, p.ID).Count(&count).Error; err != nil {
		respond.Error(c, err)
		return
	}
	if page > respond.LastPage(count, limit) {
		respond.Error(c, respond.ErrNotFound)
		return
	}

	var likes []donations.PaymentLike
	if err := paymentLikesQuery(database.DB, p.ID).
		Order("created_at DESC, id DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&likes).Error; err != nil {
		respond.Error(c, err)
		return
	}

	out := make([]LikeDTO, 0, len(likes))
	for _, l := range likes {
		out = append(out, ToLikeDTO(l))
	}
	c.JSON(http.StatusOK, respond.NewPage(c, count, page, limit, out))
}

// ------------------------------
// POST /collects/:id/payments/:payment_id/likes/
// ------------------------------
func CreateLike(c *gin.Context) {
	p, err := loadPayment(database.DB, c)
	if err != nil {
		respond.Error(c, err)
		return
	}
	if err := authorize(c, p, &donations.PaymentLike{}, donations.ErrAlreadyLiked); err != nil {
		respond.Error(c, err)
		return
	}

	like := donations.PaymentLike{PaymentID: p.ID, UserID: middleware.CurrentIdentity(c).UserID}
	if err := database.DB.Create(&like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			err = donations.ErrAlreadyLiked
		}
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, ToLikeDTO(like))
}

// ------------------------------
// DELETE /collects/:id/payments/:payment_id/likes/:like_id/
// ------------------------------
func DeleteLike(c *gin.Context) {
	p, err := loadPayment(database.DB, c)
	if err != nil {
		respond.Error(c, err)
		return
	}

	var like donations.PaymentLike
	if err := paymentLikesQuery(database.DB, p.ID).First(&like, "id = ?", c.Param("like_id")).Error; err != nil {
		respond.Error(c, err)
		return
	}
	if err := access.OwnerOrReadOnly(middleware.CurrentIdentity(c), c.Request.Method, &like.UserID).Err(); err != nil {
		respond.Error(c, err)
		return
	}

	if err := database.DB.Delete(&like).Error; err != nil {
		respond.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ------------------------------
// GET /collects/:id/payments/:payment_id/comments/
// ------------------------------
func ListComments(c *gin.Context) {
	p, err := loadPayment(database.DB, c)
	if err != nil {
		respond.Error(c, err)
		return
	}
	page, limit, err := respond.ParsePagination(c)
	if err != nil {
		respond.Error(c, err)
		return
	}

	var count int64
	if err := paymentCommentsQuery(database.DB, p.ID).Count(&count).Error; err != nil {
		respond.Error(c, err)
		return
	}
	if page > respond.LastPage(count, limit) {
		respond.Error(c, respond.ErrNotFound)
		return
	}

	var comments []donations.PaymentComment
	if err := paymentCommentsQuery(database.DB, p.ID).
		Order("created_at DESC, id DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&comments).Error; err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, respond.NewPage(c, count, page, limit, ToCommentDTOs(comments)))
}

// ------------------------------
// POST /collects/:id/payments/:payment_id/comments/
// ------------------------------
func CreateComment(c *gin.Context) {
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadJSON(c, err)
		return
	}

	p, err := loadPayment(database.DB, c)
	if err != nil {
		respond.Error(c, err)
		return
	}
	if err := authorize(c, p, &donations.PaymentComment{}, donations.ErrAlreadyCommented); err != nil {
		respond.Error(c, err)
		return
	}
	if err := donations.ValidateCommentText(req.Text); err != nil {
		respond.Error(c, err)
		return
	}

	comment := donations.PaymentComment{
		PaymentID: p.ID,
		UserID:    middleware.CurrentIdentity(c).UserID,
		Text:      req.Text,
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			err = donations.ErrAlreadyCommented
		}
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, ToCommentDTO(comment))
}

// ------------------------------
// DELETE /collects/:id/payments/:payment_id/comments/:comment_id/
// ------------------------------
func DeleteComment(c *gin.Context) {
	p, err := loadPayment(database.DB, c)
	if err != nil {
		respond.Error(c, err)
		return
	}

	var comment donations.PaymentComment
	if err := paymentCommentsQuery(database.DB, p.ID).First(&comment, "id = ?", c.Param("comment_id")).Error; err != nil {
		respond.Error(c, err)
		return
	}
	if err := access.OwnerOrReadOnly(middleware.CurrentIdentity(c), c.Request.Method, &comment.UserID).Err(); err != nil {
		respond.Error(c, err)
		return
	}

	if err := database.DB.Delete(&comment).Error; err != nil {
		respond.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
