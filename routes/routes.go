package routes

import (
	"food-marketplace-api/config"
	"food-marketplace-api/handlers"
	"food-marketplace-api/middleware"
	"food-marketplace-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api/v1")
	{
		// Auth
		public.POST("/signup", handlers.Register)
		public.POST("/login", handlers.Login)
		public.POST("/restaurants/signup", handlers.RestaurantRegister)
		public.POST("/restaurants/login", handlers.RestaurantLogin)
		public.POST("/admin/login", handlers.AdminLogin)

		// Storefront (no auth needed)
		public.GET("/restaurants", handlers.ListRestaurants)
		public.GET("/restaurants/:id", handlers.GetRestaurant)

		// Order lifecycle info (great for docs/Postman)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api/v1")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
		auth.DELETE("/logout", handlers.Logout)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api/v1")
	customer.Use(middleware.AuthRequired(),
		middleware.PrincipalRequired(middleware.PrincipalUser),
		middleware.RoleRequired(models.RoleCustomer))
	{
		customer.GET("/dashboard", handlers.CustomerDashboard(cfg))
		customer.POST("/orders", handlers.PlaceOrder)
		customer.GET("/orders", handlers.GetMyOrders)
		customer.GET("/orders/:id", handlers.GetOrderDetail)
		customer.PUT("/orders/:id/cancel", handlers.CancelOrder)
	}

	// ── Restaurant routes ──────────────────────────────────────────
	restaurant := r.Group("/api/v1/restaurants")
	restaurant.Use(middleware.AuthRequired(),
		middleware.PrincipalRequired(middleware.PrincipalRestaurant))
	{
		restaurant.GET("/dashboard", handlers.RestaurantDashboard(cfg))

		// Menu management
		restaurant.GET("/menus", handlers.ListMenus)
		restaurant.POST("/menus", handlers.CreateMenu)
		restaurant.GET("/menus/:id", handlers.GetMenu)
		restaurant.PUT("/menus/:id", handlers.UpdateMenu)
		restaurant.DELETE("/menus/:id", handlers.DeleteMenu)
		restaurant.POST("/menus/:id/items", handlers.AddMenuItem)
		restaurant.PUT("/menus/:id/items/:itemId", handlers.UpdateMenuItem)
		restaurant.DELETE("/menus/:id/items/:itemId", handlers.DeleteMenuItem)

		// Order management
		restaurant.GET("/orders", handlers.GetRestaurantOrders)
		restaurant.PUT("/orders/:id/status", handlers.UpdateOrderStatus)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/v1/admin")
	admin.Use(middleware.AuthRequired(),
		middleware.PrincipalRequired(middleware.PrincipalAdmin))
	{
		admin.GET("/dashboard", handlers.AdminDashboard(cfg))

		// Updates accept PATCH and PUT alike
		admin.GET("/users", handlers.AdminListUsers)
		admin.GET("/users/:id", handlers.AdminGetUser)
		admin.PATCH("/users/:id", handlers.AdminUpdateUser)
		admin.PUT("/users/:id", handlers.AdminUpdateUser)
		admin.DELETE("/users/:id", handlers.AdminDeleteUser)

		admin.GET("/restaurants", handlers.AdminListRestaurants)
		admin.GET("/restaurants/:id", handlers.AdminGetRestaurant)
		admin.PATCH("/restaurants/:id", handlers.AdminUpdateRestaurant)
		admin.PUT("/restaurants/:id", handlers.AdminUpdateRestaurant)
		admin.PATCH("/restaurants/:id/approve", handlers.AdminApproveRestaurant)
		admin.DELETE("/restaurants/:id", handlers.AdminDeleteRestaurant)

		admin.GET("/orders", handlers.AdminListOrders)
		admin.GET("/orders/:id", handlers.AdminGetOrder)
		admin.PATCH("/orders/:id", handlers.AdminUpdateOrder)
		admin.PUT("/orders/:id", handlers.AdminUpdateOrder)
		admin.DELETE("/orders/:id", handlers.AdminDeleteOrder)

		admin.GET("/reports/orders.xlsx", handlers.ExportOrdersReport)
	}
}
