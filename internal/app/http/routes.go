package routes

import (
	"strings"

	"github.com/Dauletnazarr/donation-project/config"
	authapi "github.com/Dauletnazarr/donation-project/internal/api/auth"
	collectsapi "github.com/Dauletnazarr/donation-project/internal/api/collects"
	"github.com/Dauletnazarr/donation-project/internal/api/interactions"
	mediaapi "github.com/Dauletnazarr/donation-project/internal/api/media"
	paymentsapi "github.com/Dauletnazarr/donation-project/internal/api/payments"
	"github.com/Dauletnazarr/donation-project/internal/api/shortlink"
	usersapi "github.com/Dauletnazarr/donation-project/internal/api/users"
	"github.com/Dauletnazarr/donation-project/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

// handle registers path with and without the trailing slash.
func handle(g gin.IRoutes, method, path string, handlers ...gin.HandlerFunc) {
	g.Handle(method, path, handlers...)
	g.Handle(method, path+"/", handlers...)
}

func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	handle(r, "GET", "/r/:short_link", shortlink.Redirect)
	r.Static(strings.TrimSuffix(config.MEDIA_URL, "/"), config.MEDIA_ROOT)

	v1 := r.Group("/api/v1")

	// Auth. Bodies are not sanitised so passwords reach bcrypt untouched.
	handle(v1, "POST", "/register", authapi.Register)
	handle(v1, "POST", "/login", authapi.Login)
	handle(v1, "POST", "/token/refresh", authapi.Refresh)

	// Collects and payments: public reads, writes checked per handler.
	open := v1.Group("")
	open.Use(middleware.OptionalAuth())
	clean := middleware.SanitizeAndCleanInputMiddleware()

	handle(open, "GET", "/collects", collectsapi.ListCollects)
	handle(open, "POST", "/collects", clean, collectsapi.CreateCollect)
	handle(open, "GET", "/collects/:id", collectsapi.GetCollect)
	handle(open, "PUT", "/collects/:id", clean, collectsapi.UpdateCollect)
	handle(open, "PATCH", "/collects/:id", clean, collectsapi.UpdateCollect)
	handle(open, "DELETE", "/collects/:id", collectsapi.DeleteCollect)
	handle(open, "GET", "/collects/:id/get-link", collectsapi.GetLink)

	handle(open, "GET", "/collects/:id/payments", paymentsapi.ListPayments)
	handle(open, "POST", "/collects/:id/payments", paymentsapi.CreatePayment)
	handle(open, "GET", "/collects/:id/payments/:payment_id", paymentsapi.GetPayment)
	handle(open, "DELETE", "/collects/:id/payments/:payment_id", paymentsapi.DeletePayment)

	me := v1.Group("")
	me.Use(middleware.AuthMiddleware())
	handle(me, "GET", "/me", usersapi.GetCurrentUser)
	handle(me, "POST", "/images", mediaapi.UploadImage)

	// Likes and comments require a token for every method.
	members := v1.Group("/collects/:id/payments/:payment_id")
	members.Use(middleware.AuthMiddleware())

	handle(members, "GET", "/likes", interactions.ListLikes)
	handle(members, "POST", "/likes", interactions.CreateLike)
	handle(members, "DELETE", "/likes/:like_id", interactions.DeleteLike)

	handle(members, "GET", "/comments", interactions.ListComments)
	handle(members, "POST", "/comments", clean, interactions.CreateComment)
	handle(members, "DELETE", "/comments/:comment_id", interactions.DeleteComment)
}
