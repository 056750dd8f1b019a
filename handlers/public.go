package handlers

import (
	"net/http"
	"time"

	"food-marketplace-api/config"
	"food-marketplace-api/models"
	"food-marketplace-api/statemachine"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListRestaurants returns approved restaurants for the storefront, with
// optional cuisine/search filters
func ListRestaurants(c *gin.Context) {
	query := config.DB.Where("status = ?", models.RestaurantApproved)

	if cuisine := c.Query("cuisine"); cuisine != "" {
		query = query.Where("cuisine_type LIKE ?", "%"+cuisine+"%")
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if open := c.Query("open"); open == "true" {
		query = query.Where("is_open = ?", true)
	}

	var restaurants []models.Restaurant
	query.Order("rating DESC").Find(&restaurants)
	c.JSON(http.StatusOK, gin.H{
		"count":       len(restaurants),
		"restaurants": restaurants,
	})
}

// GetRestaurant returns one restaurant with the menus a customer can see:
// active menus whose time window covers now, visible items only, in position
// order
func GetRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	err := config.DB.Preload("Menus", "is_active = ?", true).
		Preload("Menus.MenuItems", func(db *gorm.DB) *gorm.DB {
			return db.Where("availability_status <> ?", models.ItemHidden).
				Order("position ASC, name ASC")
		}).
		First(&restaurant, c.Param("id")).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	now := time.Now()
	menus := make([]models.Menu, 0, len(restaurant.Menus))
	for _, m := range restaurant.Menus {
		if m.AvailableNow(now) {
			menus = append(menus, m)
		}
	}
	restaurant.Menus = menus

	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// GetStateMachineInfo returns the order lifecycle for informational purposes
func GetStateMachineInfo(c *gin.Context) {
	info := []gin.H{}
	for _, t := range statemachine.GetAllTransitions() {
		info = append(info, gin.H{"from": t.From, "to": t.To, "actor": t.Actor})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []models.OrderStatus{models.StatusCompleted, models.StatusCancelled},
		"description":     "Marketplace Order Lifecycle State Machine",
	})
}
