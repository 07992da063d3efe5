package router

import (
	"time"

	"github.com/fomenta-dev/fomenta/internal/handlers"
	"github.com/fomenta-dev/fomenta/internal/middleware"
	"github.com/fomenta-dev/fomenta/internal/types"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws", middleware.AuthMiddleware(), handlers.WebSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/register/person", handlers.RegisterPerson)
			auth.POST("/register/company", handlers.RegisterCompany)
			auth.POST("/login", handlers.Login)
			auth.POST("/recover", handlers.RecoverPassword)
			auth.POST("/reset", handlers.ResetPassword)
			auth.POST("/check-code", handlers.CheckResetCode)
			auth.GET("/profile", middleware.AuthMiddleware(), handlers.Profile)
			auth.PATCH("/profile", middleware.AuthMiddleware(), handlers.UpdateProfile)
		}

		users := api.Group("/users", middleware.AuthMiddleware())
		{
			users.GET("/search", handlers.SearchPersonByTaxID)
		}

		companies := api.Group("/companies", middleware.AuthMiddleware())
		{
			companies.POST("/:id/users", handlers.AddCompanyUser)
			companies.GET("/:id/users", handlers.ListCompanyUsers)
		}

		// Reads resolve the caller when a token is present; public projects
		// stay reachable without one. Failed access checks read as 404.
		projects := api.Group("/projects")
		{
			projects.GET("", middleware.OptionalAuth(), handlers.ListProjects)
			projects.GET("/:id", middleware.OptionalAuth(), handlers.GetProject)
			projects.GET("/:id/budget", middleware.OptionalAuth(), handlers.ListBudget)
			projects.GET("/:id/schedule", middleware.OptionalAuth(), handlers.ListSchedule)

			authed := projects.Group("", middleware.AuthMiddleware())
			{
				authed.POST("", handlers.CreateProject)
				authed.PATCH("/:id", handlers.UpdateProject)
				authed.DELETE("/:id", handlers.DeleteProject)
				authed.POST("/:id/attachments", handlers.AddAttachment)
				authed.PUT("/:id/budget", handlers.UpdateBudget)
				authed.PUT("/:id/schedule", handlers.UpdateSchedule)
				authed.POST("/:id/schedule/:activity/evidence", handlers.UploadEvidence)
			}
		}

		api.GET("/notifications", middleware.AuthMiddleware(), handlers.ListNotifications)

		admin := api.Group("/admin", middleware.AuthMiddleware(), middleware.AdminRequired())
		{
			admin.GET("/metrics", handlers.Metrics)
		}
	}

	return r
}
