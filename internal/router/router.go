package router

import (
	"github.com/gin-gonic/gin"
	"github.com/milicode/gym-panel/config"
	"github.com/milicode/gym-panel/internal/app/controller"
	"github.com/milicode/gym-panel/internal/middleware"
	"github.com/milicode/gym-panel/internal/views"
	"github.com/milicode/gym-panel/pkg/logger"
)

type Router struct {
	wizardController    *controller.WizardController
	branchController    *controller.BranchController
	websocketController *controller.WebsocketController
	healthController    *controller.HealthController
	sessionMiddleware   *middleware.SessionMiddleware
	views               *views.Renderer
	config              *config.Config
}

func NewRouter(
	wizardController *controller.WizardController,
	branchController *controller.BranchController,
	websocketController *controller.WebsocketController,
	healthController *controller.HealthController,
	sessionMiddleware *middleware.SessionMiddleware,
	v *views.Renderer,
	cfg *config.Config,
) *Router {
	return &Router{
		wizardController:    wizardController,
		branchController:    branchController,
		websocketController: websocketController,
		healthController:    healthController,
		sessionMiddleware:   sessionMiddleware,
		views:               v,
		config:              cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", r.healthController.Health)

	pages := router.Group("/")
	pages.Use(r.sessionMiddleware.Ensure())
	pages.Use(middleware.BodyLimit(r.config.Server.MaxUploadBytes))
	if key := r.config.Server.CSRFKey; key != "" {
		pages.Use(middleware.CSRF([]byte(key), r.config.Session.Secure))
	} else {
		logger.Warn("CSRF_KEY not set, form CSRF protection disabled")
	}

	{
		pages.GET("/", r.branchController.List)
		pages.GET("/branches/export.xlsx", r.branchController.Export)

		pages.GET("/branch/", r.branchController.Detail)
		pages.GET("/branch/:id", r.branchController.Detail)
		pages.GET("/branch/:id/complete", r.branchController.ShowComplete)
		pages.POST("/branch/:id/complete", r.branchController.SubmitComplete)

		info := pages.Group("/information")
		{
			info.GET("", r.wizardController.ShowInformation)
			info.POST("", r.wizardController.SubmitInformation)
			info.GET("/manager", r.wizardController.ShowManager)
			info.POST("/manager", r.wizardController.SubmitManager)
			info.GET("/address", r.wizardController.ShowAddress)
			info.POST("/address", r.wizardController.SubmitAddress)
			info.GET("/location", r.wizardController.ShowLocation)
			info.POST("/location", r.wizardController.SubmitLocation)
			info.POST("/back", r.wizardController.Back)
		}

		pages.GET("/ws/draft", r.websocketController.Draft)
	}

	router.NoRoute(controller.NotFound(r.views))

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
