// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ecooy/backend/internal/integration/entrypoint/controller"
	"github.com/ecooy/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                 *gin.Engine
	healthController       *controller.HealthController
	authController         *controller.AuthController
	userController         *controller.UserController
	transactionController  *controller.TransactionController
	goalController         *controller.GoalController
	notificationController *controller.NotificationController
	dashboardController    *controller.DashboardController
	ledgerController       *controller.LedgerController
	loginRateLimiter       *middleware.RateLimiter
	authMiddleware         *middleware.AuthMiddleware
}

// Controllers groups the HTTP handlers served by the router.
type Controllers struct {
	Health       *controller.HealthController
	Auth         *controller.AuthController
	User         *controller.UserController
	Transaction  *controller.TransactionController
	Goal         *controller.GoalController
	Notification *controller.NotificationController
	Dashboard    *controller.DashboardController
	Ledger       *controller.LedgerController
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	controllers Controllers,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:       controllers.Health,
		authController:         controllers.Auth,
		userController:         controllers.User,
		transactionController:  controllers.Transaction,
		goalController:         controllers.Goal,
		notificationController: controllers.Notification,
		dashboardController:    controllers.Dashboard,
		ledgerController:       controllers.Ledger,
		loginRateLimiter:       loginRateLimiter,
		authMiddleware:         authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		// Public money helpers
		if r.ledgerController != nil {
			v1.GET("/money/format", r.ledgerController.Format)
			v1.GET("/money/parse", r.ledgerController.Parse)
			v1.POST("/ledger/summary", r.ledgerController.Summarize)
		}

		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.authController.Register)
				auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
				auth.POST("/google", r.loginRateLimiter.Middleware(), r.authController.GoogleLogin)
				auth.POST("/refresh", r.authController.RefreshToken)
				auth.POST("/logout", r.authController.Logout)
				auth.POST("/forgot-password", r.authController.ForgotPassword)
				auth.POST("/reset-password", r.authController.ResetPassword)

				if r.authMiddleware != nil {
					auth.GET("/session", r.authMiddleware.Authenticate(), r.authController.Session)
					auth.GET("/session/stream", r.authMiddleware.Authenticate(), r.authController.SessionStream)
				}
			}
		}

		if r.userController != nil && r.authMiddleware != nil {
			users := v1.Group("/users/me")
			users.Use(r.authMiddleware.Authenticate())
			{
				users.GET("", r.userController.GetProfile)
				users.DELETE("", r.userController.DeleteAccount)
				users.PATCH("/display-name", r.userController.UpdateDisplayName)
				users.PATCH("/profile", r.userController.UpdateProfile)
				users.PUT("/theme", r.userController.SetTheme)
				users.POST("/theme/toggle", r.userController.ToggleTheme)
			}
		}

		if r.transactionController != nil && r.authMiddleware != nil {
			v1.GET("/transactions/categories", r.transactionController.Categories)

			transactions := v1.Group("/transactions")
			transactions.Use(r.authMiddleware.Authenticate())
			{
				transactions.GET("", r.transactionController.List)
				transactions.POST("", r.transactionController.Create)
				transactions.GET("/summary", r.transactionController.Summary)
				transactions.GET("/stream", r.transactionController.Stream)
				transactions.GET("/:id", r.transactionController.Get)
				transactions.PATCH("/:id", r.transactionController.Update)
				transactions.DELETE("/:id", r.transactionController.Delete)
			}
		}

		if r.goalController != nil && r.authMiddleware != nil {
			goals := v1.Group("/goals")
			goals.Use(r.authMiddleware.Authenticate())
			{
				goals.GET("", r.goalController.List)
				goals.POST("", r.goalController.Create)
				goals.GET("/stream", r.goalController.Stream)
				goals.GET("/:id", r.goalController.Get)
				goals.PATCH("/:id", r.goalController.Update)
				goals.DELETE("/:id", r.goalController.Delete)
				goals.POST("/:id/deposit", r.goalController.Deposit)
			}
		}

		if r.notificationController != nil && r.authMiddleware != nil {
			notifications := v1.Group("/notifications")
			notifications.Use(r.authMiddleware.Authenticate())
			{
				notifications.GET("", r.notificationController.List)
				notifications.POST("/read-all", r.notificationController.MarkAllRead)
				notifications.POST("/tips", r.notificationController.GenerateTip)
				notifications.GET("/stream", r.notificationController.Stream)
				notifications.PATCH("/:id/read", r.notificationController.MarkRead)
			}
		}

		if r.dashboardController != nil && r.authMiddleware != nil {
			dashboard := v1.Group("/dashboard")
			dashboard.Use(r.authMiddleware.Authenticate())
			{
				dashboard.GET("/overview", r.dashboardController.Overview)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
