package handler

import (
	"net/http"

	"eventmart/internal/config"
	"eventmart/internal/guard"
	"eventmart/internal/identity"
	"eventmart/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(cfg *config.Config, h *Handler) *gin.Engine {
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging())
	r.Use(middleware.Prometheus())

	origin := cfg.FrontendOrigin
	if origin == "" {
		origin = "http://localhost:5173"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
	}))

	r.Use(middleware.Auth())
	r.Use(middleware.RateLimit())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.POST("/auth/signup", h.SignUp)
		api.POST("/auth/login", h.Login)
		api.POST("/auth/logout", guard.Require(), h.Logout)
		api.GET("/auth/me", guard.Require(), h.Me)

		api.GET("/events", h.ListEvents)
		api.GET("/events/:id", h.GetEvent)
		api.POST("/events", guard.Require(identity.RoleVendor), h.CreateEvent)
		api.PUT("/events/:id", guard.Require(identity.RoleVendor), h.UpdateEvent)
		api.DELETE("/events/:id", guard.Require(identity.RoleVendor), h.DeleteEvent)

		userOnly := guard.Require(identity.RoleUser)
		api.GET("/cart", userOnly, h.GetCart)
		api.POST("/cart/items", userOnly, h.AddToCart)
		api.PUT("/cart/items/:id", userOnly, h.UpdateCartQuantity)
		api.DELETE("/cart/items/:id", userOnly, h.RemoveFromCart)
		api.POST("/checkout", userOnly, h.Checkout)

		api.GET("/orders", guard.Require(), h.ListOrders)
		api.PUT("/orders/:id/status", guard.Require(identity.RoleAdmin), h.UpdateOrderStatus)
	}

	return r
}
