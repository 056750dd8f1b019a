package handlers

import (
	"net/http"
	"time"

	"food-marketplace-api/config"
	"food-marketplace-api/middleware"
	"food-marketplace-api/models"
	"food-marketplace-api/statemachine"

	"github.com/gin-gonic/gin"
)

type PlaceOrderRequest struct {
	RestaurantID    uint   `json:"restaurant_id" binding:"required"`
	DeliveryAddress string `json:"delivery_address" binding:"required"`
	Notes           string `json:"notes"`
	Items           []struct {
		MenuItemID uint `json:"menu_item_id" binding:"required"`
		Quantity   int  `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required,min=1"`
}

// PlaceOrder creates a new order (customer only). Every item must belong to
// an active menu of the chosen restaurant and be orderable right now.
func PlaceOrder(c *gin.Context) {
	userID := middleware.GetPrincipalID(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, req.RestaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	if restaurant.Status != models.RestaurantApproved {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Restaurant is not accepting orders"})
		return
	}
	if !restaurant.IsOpen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Restaurant is currently closed"})
		return
	}

	now := time.Now()
	var orderItems []models.OrderItem
	var total float64

	for _, reqItem := range req.Items {
		var menuItem models.MenuItem
		if err := config.DB.First(&menuItem, reqItem.MenuItemID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item not found"})
			return
		}
		var menu models.Menu
		if err := config.DB.First(&menu, menuItem.MenuID).Error; err != nil ||
			menu.RestaurantID != req.RestaurantID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item does not belong to this restaurant"})
			return
		}
		if !menu.IsActive || !menu.AvailableNow(now) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu '" + menu.Name + "' is not available right now"})
			return
		}
		if !menuItem.Orderable() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item '" + menuItem.Name + "' is not available"})
			return
		}
		total += menuItem.Price * float64(reqItem.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			MenuItemID: menuItem.ID,
			Quantity:   reqItem.Quantity,
			Price:      menuItem.Price,
			Name:       menuItem.Name,
		})
	}

	if total < restaurant.MinOrderAmount {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order total is below the restaurant's minimum order amount"})
		return
	}
	total += restaurant.DeliveryFee

	order := models.Order{
		UserID:          userID,
		RestaurantID:    req.RestaurantID,
		Status:          models.StatusPending,
		TotalAmount:     total,
		DeliveryAddress: req.DeliveryAddress,
		Notes:           req.Notes,
		Items:           orderItems,
	}
	if err := config.DB.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	config.DB.Preload("Items.MenuItem").Preload("Restaurant").First(&order, order.ID)
	c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order": order})
}

// GetMyOrders returns all orders for the logged-in customer
func GetMyOrders(c *gin.Context) {
	userID := middleware.GetPrincipalID(c)
	var orders []models.Order
	config.DB.Preload("Items").Preload("Restaurant").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrderDetail returns a single order's full detail
func GetOrderDetail(c *gin.Context) {
	userID := middleware.GetPrincipalID(c)

	var order models.Order
	if err := config.DB.Preload("Items.MenuItem").Preload("Restaurant").
		First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// CancelOrder cancels an order while it is still pending or preparing
func CancelOrder(c *gin.Context) {
	userID := middleware.GetPrincipalID(c)

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	if err := statemachine.CanTransition(order.Status, models.StatusCancelled, "customer"); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":         "Cannot cancel order",
			"reason":        err.Error(),
			"current_state": order.Status,
		})
		return
	}

	config.DB.Model(&order).Update("status", models.StatusCancelled)
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order_id": order.ID})
}

// ── Restaurant order management ─────────────────────────────────────────────

// GetRestaurantOrders lists the caller restaurant's orders, optionally
// filtered by status
func GetRestaurantOrders(c *gin.Context) {
	restaurantID := middleware.GetPrincipalID(c)
	query := config.DB.Preload("Items").Preload("User").
		Where("restaurant_id = ?", restaurantID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	var orders []models.Order
	query.Order("created_at DESC").Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateOrderStatus advances one of the caller restaurant's orders through
// the lifecycle. Leaving preparing stamps prepared_at; completing stamps
// delivered_at. Both feed the dashboard's prep/delivery time averages.
func UpdateOrderStatus(c *gin.Context) {
	restaurantID := middleware.GetPrincipalID(c)

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	if err := config.DB.Where("id = ? AND restaurant_id = ?", c.Param("id"), restaurantID).
		First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if err := statemachine.CanTransition(order.Status, req.Status, "restaurant"); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":         "Cannot update order status",
			"reason":        err.Error(),
			"current_state": order.Status,
		})
		return
	}

	updates := map[string]interface{}{"status": req.Status}
	now := time.Now()
	switch req.Status {
	case models.StatusOutForDelivery:
		updates["prepared_at"] = &now
	case models.StatusCompleted:
		updates["delivered_at"] = &now
	}
	if err := config.DB.Model(&order).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Order status updated",
		"order_id": order.ID,
		"status":   req.Status,
	})
}
