package handlers

import (
	"net/http"

	"food-marketplace-api/config"
	"food-marketplace-api/middleware"
	"food-marketplace-api/models"
	"food-marketplace-api/stats"

	"github.com/gin-gonic/gin"
)

// AdminDashboard serves the platform-wide metrics snapshot. The snapshot is
// recomputed on every request; nothing is cached between loads.
func AdminDashboard(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		builder := stats.New(config.DB, cfg.WeekStart)
		c.JSON(http.StatusOK, builder.BuildAdmin())
	}
}

// RestaurantDashboard serves the vendor snapshot scoped to the caller's
// restaurant
func RestaurantDashboard(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		restaurantID := middleware.GetPrincipalID(c)
		var restaurant models.Restaurant
		if err := config.DB.First(&restaurant, restaurantID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
			return
		}
		builder := stats.New(config.DB, cfg.WeekStart)
		c.JSON(http.StatusOK, builder.BuildRestaurant(&restaurant))
	}
}

// CustomerDashboard serves the customer snapshot scoped to the caller
func CustomerDashboard(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.GetPrincipalID(c)
		var user models.User
		if err := config.DB.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		builder := stats.New(config.DB, cfg.WeekStart)
		c.JSON(http.StatusOK, builder.BuildCustomer(&user))
	}
}
