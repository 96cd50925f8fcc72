package payments

import (
	"net/http"

	"github.com/Dauletnazarr/donation-project/database"
	"github.com/Dauletnazarr/donation-project/internal/api/respond"
	"github.com/Dauletnazarr/donation-project/internal/app/http/middleware"
	"github.com/Dauletnazarr/donation-project/internal/domain/access"
	"github.com/Dauletnazarr/donation-project/internal/domain/donations"
	"github.com/Dauletnazarr/donation-project/internal/domain/users"
	"github.com/Dauletnazarr/donation-project/internal/infra/cache"
	"github.com/Dauletnazarr/donation-project/internal/notify"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func loadCollect(c *gin.Context) (donations.Collect, error) {
	var col donations.Collect
	err := database.DB.Preload("Author").First(&col, "id = ?", c.Param("id")).Error
	return col, err
}

func loadPayment(c *gin.Context) (donations.Payment, error) {
	var p donations.Payment
	err := database.DB.First(&p, "id = ? AND collect_id = ?", c.Param("payment_id"), c.Param("id")).Error
	return p, err
}

// ------------------------------
// GET /collects/:id/payments/
// ------------------------------
func ListPayments(c *gin.Context) {
	col, err := loadCollect(c)
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
	if err := collectPaymentsQuery(database.DB, col.ID).Count(&count).Error; err != nil {
		respond.Error(c, err)
		return
	}
	if page > respond.LastPage(count, limit) {
		respond.Error(c, respond.ErrNotFound)
		return
	}

	var list []donations.Payment
	if err := newestFirst(WithDetails(collectPaymentsQuery(database.DB, col.ID), "")).
		Offset((page - 1) * limit).Limit(limit).
		Find(&list).Error; err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, respond.NewPage(c, count, page, limit, ToPaymentDTOs(list)))
}

// ------------------------------
// GET /collects/:id/payments/:payment_id/
// ------------------------------
func GetPayment(c *gin.Context) {
	var p donations.Payment
	if err := WithDetails(database.DB, "").
		First(&p, "id = ? AND collect_id = ?", c.Param("payment_id"), c.Param("id")).Error; err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, ToPaymentDTO(p))
}

// ------------------------------
// POST /collects/:id/payments/
// ------------------------------
func CreatePayment(c *gin.Context) {
	id := middleware.CurrentIdentity(c)
	if err := access.Authenticated(id).Err(); err != nil {
		respond.Error(c, err)
		return
	}

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadJSON(c, err)
		return
	}

	col, err := loadCollect(c)
	if err != nil {
		respond.Error(c, err)
		return
	}
	if err := donations.ValidateAmount(req.Amount); err != nil {
		respond.Error(c, err)
		return
	}

	var donor users.User
	if err := database.DB.First(&donor, id.UserID).Error; err != nil {
		respond.Error(c, err)
		return
	}

	donorID := donor.ID
	p := donations.Payment{CollectID: col.ID, DonorID: &donorID, Amount: *req.Amount}
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		return donations.ApplyPayment(tx, col.ID, p.Amount)
	})
	if err != nil {
		respond.Error(c, err)
		return
	}

	cache.InvalidateCollects(c.Request.Context())
	notify.DonationReceived(c.Request.Context(), donor.Email, col.Author.Email, p.Amount, col.Title)

	p.Donor = &donor
	c.JSON(http.StatusCreated, ToPaymentDTO(p))
}

// ------------------------------
// DELETE /collects/:id/payments/:payment_id/
// ------------------------------
func DeletePayment(c *gin.Context) {
	p, err := loadPayment(c)
	if err != nil {
		respond.Error(c, err)
		return
	}
	if err := access.OwnerOrReadOnly(middleware.CurrentIdentity(c), c.Request.Method, p.DonorID).Err(); err != nil {
		respond.Error(c, err)
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&p).Error; err != nil {
			return err
		}
		return donations.RevertPayment(tx, p.CollectID, p.Amount)
	})
	if err != nil {
		respond.Error(c, err)
		return
	}

	cache.InvalidateCollects(c.Request.Context())
	c.Status(http.StatusNoContent)
}
