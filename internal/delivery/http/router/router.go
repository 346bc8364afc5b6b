// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/config"
	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/router/handler"
	"storefront/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	Config          *config.Config
	UserHandler     *handler.UserHandler
	ProductHandler  *handler.ProductHandler
	CategoryHandler *handler.CategoryHandler
	CartHandler     *handler.CartHandler
	OrderHandler    *handler.OrderHandler
	PaymentHandler  *handler.PaymentHandler
	TestHandler     *handler.TestHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	config          *config.Config
	userHandler     *handler.UserHandler
	productHandler  *handler.ProductHandler
	categoryHandler *handler.CategoryHandler
	cartHandler     *handler.CartHandler
	orderHandler    *handler.OrderHandler
	paymentHandler  *handler.PaymentHandler
	testHandler     *handler.TestHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		config:          params.Config,
		userHandler:     params.UserHandler,
		productHandler:  params.ProductHandler,
		categoryHandler: params.CategoryHandler,
		cartHandler:     params.CartHandler,
		orderHandler:    params.OrderHandler,
		paymentHandler:  params.PaymentHandler,
		testHandler:     params.TestHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.POST("/refresh", r.userHandler.RefreshToken)
		authGroup.POST("/logout", r.userHandler.Logout)
	}

	// Public catalog browsing
	api.GET("/products", r.productHandler.ListProducts)
	api.GET("/products/:id", r.productHandler.GetProduct)
	api.GET("/categories", r.categoryHandler.ListCategories)
	api.GET("/categories/:id", r.categoryHandler.GetCategory)

	// Gateway return URL; the shopper lands here via redirect, unauthenticated.
	api.GET("/payments/verify/:reference", r.paymentHandler.Verify)

	// Account routes that require authentication
	userGroup := api.Group("/users/me")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("", r.userHandler.GetProfile)
		userGroup.PATCH("", r.userHandler.UpdateProfile)
		userGroup.PUT("/password", r.userHandler.ChangePassword)
		userGroup.DELETE("", r.userHandler.DeleteAccount)
	}

	// Cart routes
	cartGroup := api.Group("/cart")
	cartGroup.Use(r.authMiddleware.Authenticate)
	{
		cartGroup.GET("", r.cartHandler.GetCart)
		cartGroup.POST("/lines", r.cartHandler.AddLine)
		cartGroup.PATCH("/lines", r.cartHandler.ChangeLineQuantity)
		cartGroup.DELETE("/lines", r.cartHandler.RemoveLine)
		cartGroup.DELETE("", r.cartHandler.Clear)
	}

	// Order routes
	orderGroup := api.Group("/orders")
	orderGroup.Use(r.authMiddleware.Authenticate)
	{
		orderGroup.POST("", r.orderHandler.Checkout)
		orderGroup.GET("", r.orderHandler.GetMyOrders)
		orderGroup.POST("/:id/cancel", r.orderHandler.CancelOrder)
		orderGroup.POST("/:id/payment", r.paymentHandler.Initiate)
		orderGroup.GET("/:id/payment/qr", r.paymentHandler.CheckoutQR)
	}

	// Admin routes: authentication plus the admin tier of the role hierarchy
	adminGroup := api.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.POST("/products", r.productHandler.CreateProduct)
		adminGroup.PATCH("/products/:id", r.productHandler.UpdateProduct)
		adminGroup.DELETE("/products/:id", r.productHandler.DeleteProduct)
		adminGroup.POST("/products/:id/variants", r.productHandler.AddVariant)
		adminGroup.PATCH("/products/:id/variants/:variantId", r.productHandler.UpdateVariant)
		adminGroup.DELETE("/products/:id/variants/:variantId", r.productHandler.DeleteVariant)

		adminGroup.POST("/categories", r.categoryHandler.CreateCategory)
		adminGroup.PATCH("/categories/:id", r.categoryHandler.UpdateCategory)
		adminGroup.DELETE("/categories/:id", r.categoryHandler.DeleteCategory)

		adminGroup.GET("/orders", r.orderHandler.GetAllOrders)
		adminGroup.GET("/users/:userId/orders", r.orderHandler.GetUserOrders)
		adminGroup.PATCH("/orders/:id/status", r.orderHandler.UpdateOrderStatus)

		adminGroup.GET("/users", r.userHandler.ListUsers)
		adminGroup.GET("/users/:id", r.userHandler.GetUser)
	}

	// Superadmin routes: top tier of the hierarchy
	superadminGroup := api.Group("/superadmin")
	superadminGroup.Use(r.authMiddleware.Authenticate)
	superadminGroup.Use(r.authMiddleware.RequireRole(entity.RoleSuperAdmin))
	{
		superadminGroup.POST("/admins", r.userHandler.CreateAdmin)
	}
}

func (r *router) RegisterTestRoutes(e *echo.Echo) {
	// Test routes - only enabled when configured
	if r.config.TestRoutes != nil && r.config.TestRoutes.Enabled {
		testGroup := e.Group("/test")
		testGroup.GET("/public", r.testHandler.TestPublicEndpoint)

		testGroup.Use(r.authMiddleware.Authenticate)
		{
			testGroup.GET("/auth", r.testHandler.TestAuthMiddleware)
		}
	}
}
