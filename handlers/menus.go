package handlers

import (
	"net/http"

	"food-marketplace-api/config"
	"food-marketplace-api/middleware"
	"food-marketplace-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ── Menu management ─────────────────────────────────────────────────────────

type MenuRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	MenuType       string `json:"menu_type"`
	IsActive       *bool  `json:"is_active"`
	AvailableFrom  string `json:"available_from"`
	AvailableUntil string `json:"available_until"`
}

// validate returns human-readable messages in the style the dashboard forms
// show; an empty slice means the request is acceptable
func (r *MenuRequest) validate() []string {
	var errs []string
	if r.Name == "" {
		errs = append(errs, "Name can't be blank")
	}
	if len(r.Name) > 80 {
		errs = append(errs, "Name is too long (maximum is 80 characters)")
	}
	if len(r.MenuType) > 50 {
		errs = append(errs, "Menu type is too long (maximum is 50 characters)")
	}
	if r.AvailableFrom != "" && !models.ValidClock(r.AvailableFrom) {
		errs = append(errs, "Available from must be a valid HH:MM time")
	}
	if r.AvailableUntil != "" && !models.ValidClock(r.AvailableUntil) {
		errs = append(errs, "Available until must be a valid HH:MM time")
	}
	return errs
}

// ListMenus returns the caller's menus with their items in position order
func ListMenus(c *gin.Context) {
	restaurantID := middleware.GetPrincipalID(c)
	var menus []models.Menu
	config.DB.Preload("MenuItems", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC, name ASC")
	}).
		Where("restaurant_id = ?", restaurantID).
		Order("created_at DESC").
		Find(&menus)
	c.JSON(http.StatusOK, gin.H{"count": len(menus), "menus": menus})
}

// GetMenu returns one of the caller's menus
func GetMenu(c *gin.Context) {
	restaurantID := middleware.GetPrincipalID(c)
	menu, ok := findOwnMenu(c, restaurantID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"menu": menu})
}

// CreateMenu creates a menu under the caller's restaurant
func CreateMenu(c *gin.Context) {
	restaurantID := middleware.GetPrincipalID(c)

	var req MenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}

	menu := models.Menu{
		RestaurantID:   restaurantID,
		Name:           req.Name,
		Description:    req.Description,
		MenuType:       req.MenuType,
		IsActive:       true,
		AvailableFrom:  req.AvailableFrom,
		AvailableUntil: req.AvailableUntil,
	}
	if req.IsActive != nil {
		menu.IsActive = *req.IsActive
	}
	if err := config.DB.Create(&menu).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create menu"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu created successfully", "menu": menu})
}

// UpdateMenu updates one of the caller's menus
func UpdateMenu(c *gin.Context) {
	restaurantID := middleware.GetPrincipalID(c)
	menu, ok := findOwnMenu(c, restaurantID)
	if !ok {
		return
	}

	var req MenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}

	menu.Name = req.Name
	menu.Description = req.Description
	menu.MenuType = req.MenuType
	menu.AvailableFrom = req.AvailableFrom
	menu.AvailableUntil = req.AvailableUntil
	if req.IsActive != nil {
		menu.IsActive = *req.IsActive
	}
	if err := config.DB.Save(menu).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu updated successfully", "menu": menu})
}

// DeleteMenu removes a menu and, with it, every item it owns
func DeleteMenu(c *gin.Context) {
	restaurantID := middleware.GetPrincipalID(c)
	menu, ok := findOwnMenu(c, restaurantID)
	if !ok {
		return
	}
	// Cascade to items explicitly; sqlite does not always enforce the FK
	if err := config.DB.Where("menu_id = ?", menu.ID).Delete(&models.MenuItem{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete menu items"})
		return
	}
	if err := config.DB.Delete(menu).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete menu"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu deleted successfully"})
}

func findOwnMenu(c *gin.Context, restaurantID uint) (*models.Menu, bool) {
	var menu models.Menu
	err := config.DB.Where("id = ? AND restaurant_id = ?", c.Param("id"), restaurantID).
		First(&menu).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu not found"})
		return nil, false
	}
	return &menu, true
}

// ── Menu item management ────────────────────────────────────────────────────

type MenuItemRequest struct {
	Name               string                    `json:"name"`
	Description        string                    `json:"description"`
	Price              *float64                  `json:"price"`
	Currency           string                    `json:"currency"`
	Category           string                    `json:"category"`
	DietaryTags        string                    `json:"dietary_tags"`
	AvailabilityStatus models.AvailabilityStatus `json:"availability_status"`
	SpiceLevel         string                    `json:"spice_level"`
	Calories           int                       `json:"calories"`
	PrepTimeMinutes    int                       `json:"prep_time_minutes"`
	IsAvailable        *bool                     `json:"is_available"`
	ImageURL           string                    `json:"image_url"`
	Position           int                       `json:"position"`
}

func (r *MenuItemRequest) validate() []string {
	var errs []string
	if r.Name == "" {
		errs = append(errs, "Name can't be blank")
	}
	if len(r.Name) > 120 {
		errs = append(errs, "Name is too long (maximum is 120 characters)")
	}
	switch {
	case r.Price == nil:
		errs = append(errs, "Price can't be blank")
	case *r.Price < 0:
		errs = append(errs, "Price must be greater than or equal to 0")
	case *r.Price >= 10000:
		errs = append(errs, "Price must be less than 10000")
	}
	if r.AvailabilityStatus != "" && !r.AvailabilityStatus.Valid() {
		errs = append(errs, "Availability status is not included in the list")
	}
	return errs
}

// AddMenuItem appends an item to one of the caller's menus. The item's
// position defaults to the next free slot in the menu.
func AddMenuItem(c *gin.Context) {
	restaurantID := middleware.GetPrincipalID(c)
	menu, ok := findOwnMenu(c, restaurantID)
	if !ok {
		return
	}

	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}

	item := models.MenuItem{
		MenuID:             menu.ID,
		Name:               req.Name,
		Description:        req.Description,
		Price:              *req.Price,
		Currency:           req.Currency,
		Category:           req.Category,
		DietaryTags:        req.DietaryTags,
		AvailabilityStatus: models.ItemAvailable,
		SpiceLevel:         req.SpiceLevel,
		Calories:           req.Calories,
		PrepTimeMinutes:    req.PrepTimeMinutes,
		IsAvailable:        true,
		ImageURL:           req.ImageURL,
		Position:           req.Position,
	}
	if req.AvailabilityStatus != "" {
		item.AvailabilityStatus = req.AvailabilityStatus
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add menu item"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu item added successfully", "item": item})
}

// UpdateMenuItem updates an item on one of the caller's menus
func UpdateMenuItem(c *gin.Context) {
	restaurantID := middleware.GetPrincipalID(c)
	menu, ok := findOwnMenu(c, restaurantID)
	if !ok {
		return
	}

	var item models.MenuItem
	if err := config.DB.Where("id = ? AND menu_id = ?", c.Param("itemId"), menu.ID).
		First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}

	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}

	item.Name = req.Name
	item.Description = req.Description
	item.Price = *req.Price
	item.Category = req.Category
	item.DietaryTags = req.DietaryTags
	item.SpiceLevel = req.SpiceLevel
	item.Calories = req.Calories
	item.PrepTimeMinutes = req.PrepTimeMinutes
	item.ImageURL = req.ImageURL
	if req.Currency != "" {
		item.Currency = req.Currency
	}
	if req.AvailabilityStatus != "" {
		item.AvailabilityStatus = req.AvailabilityStatus
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if req.Position > 0 {
		item.Position = req.Position
	}
	if err := config.DB.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item updated successfully", "item": item})
}

// DeleteMenuItem removes an item from one of the caller's menus
func DeleteMenuItem(c *gin.Context) {
	restaurantID := middleware.GetPrincipalID(c)
	menu, ok := findOwnMenu(c, restaurantID)
	if !ok {
		return
	}

	var item models.MenuItem
	if err := config.DB.Where("id = ? AND menu_id = ?", c.Param("itemId"), menu.ID).
		First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	if err := config.DB.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete menu item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item removed"})
}
