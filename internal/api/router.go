package api

import (
	"net/http"

	"laundry-booking/internal/api/middleware"
	"laundry-booking/internal/modules/live"
	"laundry-booking/internal/modules/orders"
	"laundry-booking/internal/modules/users"

	"github.com/labstack/echo/v4"
)

// SetupRoutes sets up all the API endpoints for the application.
func SetupRoutes(
	e *echo.Echo,
	jwtSecret string,
	userHandler *users.Handler,
	orderHandler *orders.Handler,
	liveHandler *live.Handler,
) {
	// Initialize the JWT authentication middleware
	authMiddleware := middleware.JWTMAuth(jwtSecret)
	// Initialize an Admin role authorization middleware
	adminRequired := middleware.AdminRequired()

	// --- Public Routes ---
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Welcome to the Laundry Booking API!"})
	})

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/signup", userHandler.Signup)
		authGroup.POST("/login", userHandler.Login)
		authGroup.POST("/password-reset/request", userHandler.RequestPasswordReset)
		authGroup.POST("/password-reset/confirm", userHandler.ResetPassword)
		authGroup.GET("/google/login", userHandler.GoogleLogin)
		authGroup.GET("/google/callback", userHandler.GoogleCallback)
	}

	// Booking form data and public tracking lookup.
	e.GET("/catalog", orderHandler.GetCatalog)
	e.GET("/orders/track/:code", orderHandler.TrackOrder)

	// --- User (Customer) Routes ---
	profileGroup := e.Group("/profile", authMiddleware)
	{
		profileGroup.GET("", userHandler.GetMyProfile)
		profileGroup.PUT("", userHandler.UpdateMyProfile)
		profileGroup.PUT("/password", userHandler.ChangePassword)
	}

	// --- Order Routes ---
	orderGroup := e.Group("/orders", authMiddleware)
	{
		orderGroup.POST("", orderHandler.CreateOrder)
		orderGroup.GET("", orderHandler.ListMyOrders)
		orderGroup.GET("/:orderId", orderHandler.GetOrderDetails)
		orderGroup.PUT("/:orderId", orderHandler.UpdateOrder)
		orderGroup.PUT("/:orderId/cancel", orderHandler.CancelOrder)
		orderGroup.POST("/:orderId/photos", orderHandler.UploadPhotos)
	}

	// --- Live View Routes (WebSocket) ---
	e.GET("/ws/orders", liveHandler.MyOrders, authMiddleware)
	e.GET("/ws/track/:code", liveHandler.TrackOrder, authMiddleware)

	// --- Admin Routes ---
	adminGroup := e.Group("/admin", authMiddleware, adminRequired)
	{
		// Order Management
		adminGroup.GET("/orders", orderHandler.ListAllOrders)
		adminGroup.POST("/orders", orderHandler.CreateWalkInOrder)
		adminGroup.PUT("/orders/:orderId", orderHandler.AdminUpdateOrder)
		adminGroup.PUT("/orders/:orderId/approve", orderHandler.ApproveOrder)
		adminGroup.PUT("/orders/:orderId/reject", orderHandler.RejectOrder)
		adminGroup.PUT("/orders/:orderId/complete", orderHandler.CompleteOrder)
		adminGroup.PUT("/orders/:orderId/cancel", orderHandler.CancelOrder)
		adminGroup.DELETE("/orders/:orderId", orderHandler.DeleteOrder)

		// Dashboard
		adminGroup.GET("/stats", orderHandler.GetStats)
	}
	e.GET("/ws/admin/orders", liveHandler.AdminOrders, authMiddleware, adminRequired)
	e.GET("/ws/admin/stats", liveHandler.AdminStats, authMiddleware, adminRequired)
}
