package handlers

import (
	"net/http"

	"food-marketplace-api/config"
	"food-marketplace-api/models"

	"github.com/gin-gonic/gin"
)

// ── Users ───────────────────────────────────────────────────────────────────

// AdminListUsers returns all users, optionally filtered by role
func AdminListUsers(c *gin.Context) {
	query := config.DB
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	var users []models.User
	query.Order("created_at DESC").Find(&users)
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

// AdminGetUser returns one user
func AdminGetUser(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

type AdminUserUpdateRequest struct {
	Name  *string          `json:"name"`
	Email *string          `json:"email"`
	Role  *models.UserRole `json:"role"`
}

// AdminUpdateUser updates a user and returns the updated resource, or the
// validation messages with a 422
func AdminUpdateUser(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var req AdminUserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var errs []string
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		if *req.Email == "" {
			errs = append(errs, "Email can't be blank")
		} else {
			user.Email = *req.Email
		}
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			errs = append(errs, "Role is not included in the list")
		} else {
			user.Role = *req.Role
		}
	}
	if len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}

	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": []string{"Email has already been taken"}})
		return
	}
	c.JSON(http.StatusOK, user)
}

// AdminDeleteUser removes a user
func AdminDeleteUser(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	config.DB.Delete(&user)
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// ── Restaurants ─────────────────────────────────────────────────────────────

// AdminListRestaurants returns all restaurants, optionally filtered by status
func AdminListRestaurants(c *gin.Context) {
	query := config.DB
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	var restaurants []models.Restaurant
	query.Order("created_at DESC").Find(&restaurants)
	c.JSON(http.StatusOK, gin.H{"count": len(restaurants), "restaurants": restaurants})
}

// AdminGetRestaurant returns one restaurant
func AdminGetRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

type AdminRestaurantUpdateRequest struct {
	Name        *string                  `json:"name"`
	Email       *string                  `json:"email"`
	Status      *models.RestaurantStatus `json:"status"`
	CuisineType *string                  `json:"cuisine_type"`
}

// AdminUpdateRestaurant updates a restaurant and returns the updated
// resource, or the validation messages with a 422
func AdminUpdateRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	var req AdminRestaurantUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var errs []string
	if req.Name != nil {
		if *req.Name == "" {
			errs = append(errs, "Name can't be blank")
		} else {
			restaurant.Name = *req.Name
		}
	}
	if req.Email != nil {
		if *req.Email == "" {
			errs = append(errs, "Email can't be blank")
		} else {
			restaurant.Email = *req.Email
		}
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			errs = append(errs, "Status is not included in the list")
		} else {
			restaurant.Status = *req.Status
		}
	}
	if req.CuisineType != nil {
		restaurant.CuisineType = *req.CuisineType
	}
	if len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}

	if err := config.DB.Save(&restaurant).Error; err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": []string{"Email has already been taken"}})
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

type ApproveRestaurantRequest struct {
	Status models.RestaurantStatus `json:"status"`
}

// AdminApproveRestaurant moves a restaurant through its approval lifecycle.
// Without an explicit status the restaurant is approved.
func AdminApproveRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	var req ApproveRestaurantRequest
	_ = c.ShouldBindJSON(&req)
	status := req.Status
	if status == "" {
		status = models.RestaurantApproved
	}
	if !status.Valid() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": []string{"Status is not included in the list"}})
		return
	}

	if err := config.DB.Model(&restaurant).Update("status", status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve restaurant"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Restaurant approved successfully",
		"restaurant": gin.H{"id": restaurant.ID, "name": restaurant.Name, "status": status},
	})
}

// AdminDeleteRestaurant removes a restaurant together with its menus and
// their items
func AdminDeleteRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	var menuIDs []uint
	config.DB.Model(&models.Menu{}).Where("restaurant_id = ?", restaurant.ID).Pluck("id", &menuIDs)
	if len(menuIDs) > 0 {
		config.DB.Where("menu_id IN ?", menuIDs).Delete(&models.MenuItem{})
		config.DB.Where("restaurant_id = ?", restaurant.ID).Delete(&models.Menu{})
	}
	config.DB.Delete(&restaurant)
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant deleted successfully"})
}

// ── Orders ──────────────────────────────────────────────────────────────────

// AdminListOrders returns all orders newest-first, optionally filtered
func AdminListOrders(c *gin.Context) {
	query := config.DB.Preload("Items")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if restaurantID := c.Query("restaurant_id"); restaurantID != "" {
		query = query.Where("restaurant_id = ?", restaurantID)
	}
	var orders []models.Order
	query.Order("created_at DESC").Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// AdminGetOrder returns one order in full detail
func AdminGetOrder(c *gin.Context) {
	var order models.Order
	if err := config.DB.Preload("Items.MenuItem").Preload("User").Preload("Restaurant").
		First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

type AdminOrderUpdateRequest struct {
	Status      *models.OrderStatus `json:"status"`
	TotalAmount *float64            `json:"total_amount"`
}

// AdminUpdateOrder lets an admin override order fields directly, bypassing
// the lifecycle state machine (emergency use)
func AdminUpdateOrder(c *gin.Context) {
	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	var req AdminOrderUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var errs []string
	if req.Status != nil {
		if !req.Status.Valid() {
			errs = append(errs, "Status is not included in the list")
		} else {
			order.Status = *req.Status
		}
	}
	if req.TotalAmount != nil {
		if *req.TotalAmount < 0 {
			errs = append(errs, "Total amount must be greater than or equal to 0")
		} else {
			order.TotalAmount = *req.TotalAmount
		}
	}
	if len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}

	if err := config.DB.Save(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// AdminDeleteOrder removes an order and its items
func AdminDeleteOrder(c *gin.Context) {
	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	config.DB.Where("order_id = ?", order.ID).Delete(&models.OrderItem{})
	config.DB.Delete(&order)
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}
