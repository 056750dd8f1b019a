package stats

import (
	"fmt"
	"time"

	"food-marketplace-api/models"
)

// CustomerSnapshot is the customer dashboard payload
type CustomerSnapshot struct {
	User                   CustomerInfo            `json:"user"`
	Stats                  CustomerStats           `json:"stats"`
	RecentOrders           []CustomerOrder         `json:"recent_orders"`
	SavedAddresses         []SavedAddress          `json:"saved_addresses"`
	RecommendedRestaurants []RecommendedRestaurant `json:"recommended_restaurants"`
	FeaturedDishes         []FeaturedDish          `json:"featured_dishes"`
	QuickActions           []QuickAction           `json:"quick_actions"`
	AuthPaths              AuthPaths               `json:"auth_paths"`
}

type CustomerInfo struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Role     models.UserRole `json:"role"`
	JoinedAt time.Time       `json:"joined_at"`
}

type CustomerStats struct {
	UpcomingDeliveries  int64 `json:"upcoming_deliveries"`
	CompletedOrders     int64 `json:"completed_orders"`
	FavoriteRestaurants int64 `json:"favorite_restaurants"`
	LoyaltyPoints       int   `json:"loyalty_points"`
}

type CustomerOrder struct {
	ID         uint               `json:"id"`
	Restaurant string             `json:"restaurant"`
	Total      float64            `json:"total"`
	Status     models.OrderStatus `json:"status"`
	ETA        string             `json:"eta"`
	PlacedAt   time.Time          `json:"placed_at"`
	Sample     bool               `json:"sample,omitempty"`
}

type SavedAddress struct {
	ID           uint   `json:"id"`
	Label        string `json:"label"`
	Street       string `json:"street"`
	City         string `json:"city"`
	Instructions string `json:"instructions"`
}

type RecommendedRestaurant struct {
	ID              uint            `json:"id"`
	Name            string          `json:"name"`
	Cuisine         string          `json:"cuisine"`
	Rating          float64         `json:"rating"`
	ETA             string          `json:"eta"`
	ImageURL        string          `json:"image_url"`
	Path            string          `json:"path"`
	SignatureDishes []SignatureDish `json:"signature_dishes"`
}

type SignatureDish struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
}

type FeaturedDish struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	Currency       string  `json:"currency"`
	ImageURL       string  `json:"image_url"`
	RestaurantName string  `json:"restaurant_name"`
	RestaurantID   uint    `json:"restaurant_id"`
}

type QuickAction struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Href        string `json:"href"`
}

type AuthPaths struct {
	Login            string `json:"login"`
	Signup           string `json:"signup"`
	Logout           string `json:"logout"`
	RestaurantSignup string `json:"restaurant_signup"`
}

// BuildCustomer assembles the customer dashboard for one user. When the user
// has no order history at all, the orders and addresses sections fall back to
// curated sample data so the first-visit dashboard is not a wall of zeros.
func (b *Builder) BuildCustomer(u *models.User) CustomerSnapshot {
	scope := Scope{UserID: u.ID}

	snap := CustomerSnapshot{
		User: CustomerInfo{
			ID:       u.ID,
			Name:     u.DisplayName(),
			Email:    u.Email,
			Role:     u.Role,
			JoinedAt: u.CreatedAt,
		},
	}

	upcoming := []models.OrderStatus{models.StatusPending, models.StatusPreparing, models.StatusOutForDelivery}
	recommended := b.recommendedRestaurants()

	snap.Stats = CustomerStats{
		UpcomingDeliveries:  b.metricInt("stats.upcoming_deliveries")(b.countOrders(scope, upcoming, AllTime)),
		CompletedOrders:     b.metricInt("stats.completed_orders")(b.countOrders(scope, []models.OrderStatus{models.StatusCompleted}, AllTime)),
		FavoriteRestaurants: int64(len(recommended)),
		LoyaltyPoints:       u.LoyaltyPoints,
	}

	snap.RecentOrders, snap.SavedAddresses = b.customerOrderHistory(u.ID)
	snap.RecommendedRestaurants = recommended
	snap.FeaturedDishes = b.featuredDishes()
	snap.QuickActions = defaultQuickActions()
	snap.AuthPaths = DefaultAuthPaths()

	return snap
}

// customerOrderHistory returns the five most recent orders and up to three
// distinct delivery addresses derived from them. Both sections fall back to
// sample data for customers with no history.
func (b *Builder) customerOrderHistory(userID uint) ([]CustomerOrder, []SavedAddress) {
	var orders []models.Order
	err := b.DB.Preload("Restaurant").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(5).
		Find(&orders).Error
	if err != nil {
		b.logf("stats: recent_orders degraded to empty: %v", err)
		return []CustomerOrder{}, []SavedAddress{}
	}
	if len(orders) == 0 {
		return sampleOrders(b.now()), sampleAddresses()
	}

	recent := make([]CustomerOrder, 0, len(orders))
	addresses := []SavedAddress{}
	seen := map[string]bool{}
	for _, o := range orders {
		recent = append(recent, CustomerOrder{
			ID:         o.ID,
			Restaurant: o.Restaurant.Name,
			Total:      o.TotalAmount,
			Status:     o.Status,
			ETA:        o.Restaurant.DeliveryETA(),
			PlacedAt:   o.CreatedAt,
		})
		if o.DeliveryAddress != "" && !seen[o.DeliveryAddress] && len(addresses) < 3 {
			seen[o.DeliveryAddress] = true
			addresses = append(addresses, SavedAddress{
				ID:     uint(len(addresses) + 1),
				Label:  fmt.Sprintf("Recent address %d", len(addresses)+1),
				Street: o.DeliveryAddress,
			})
		}
	}
	return recent, addresses
}

func (b *Builder) recommendedRestaurants() []RecommendedRestaurant {
	recommended := []RecommendedRestaurant{}

	var restaurants []models.Restaurant
	err := b.DB.Preload("Menus.MenuItems").
		Where("status = ?", models.RestaurantApproved).
		Order("rating DESC").
		Limit(4).
		Find(&restaurants).Error
	if err != nil {
		b.logf("stats: recommended_restaurants degraded to empty: %v", err)
		return recommended
	}

	for _, r := range restaurants {
		rec := RecommendedRestaurant{
			ID:              r.ID,
			Name:            r.Name,
			Cuisine:         r.CuisineType,
			Rating:          r.Rating,
			ETA:             r.DeliveryETA(),
			ImageURL:        r.CoverImageURL,
			Path:            fmt.Sprintf("/restaurants/%d", r.ID),
			SignatureDishes: []SignatureDish{},
		}
		for _, m := range r.Menus {
			for _, item := range m.MenuItems {
				if len(rec.SignatureDishes) == 3 {
					break
				}
				if !item.Orderable() {
					continue
				}
				rec.SignatureDishes = append(rec.SignatureDishes, SignatureDish{
					ID: item.ID, Name: item.Name, Price: item.Price, Currency: item.Currency,
				})
			}
		}
		recommended = append(recommended, rec)
	}
	return recommended
}

func (b *Builder) featuredDishes() []FeaturedDish {
	featured := []FeaturedDish{}

	type row struct {
		ID             uint
		Name           string
		Description    string
		Price          float64
		Currency       string
		ImageURL       string
		RestaurantID   uint
		RestaurantName string
	}
	var rows []row
	err := b.DB.Model(&models.MenuItem{}).
		Joins("JOIN menus ON menus.id = menu_items.menu_id").
		Joins("JOIN restaurants ON restaurants.id = menus.restaurant_id").
		Where("menu_items.is_available = ? AND menu_items.availability_status = ?", true, models.ItemAvailable).
		Select("menu_items.id, menu_items.name, menu_items.description, menu_items.price, menu_items.currency, menu_items.image_url, restaurants.id AS restaurant_id, restaurants.name AS restaurant_name").
		Order("menu_items.created_at DESC").
		Limit(6).
		Scan(&rows).Error
	if err != nil {
		b.logf("stats: featured_dishes degraded to empty: %v", err)
		return featured
	}

	for _, r := range rows {
		featured = append(featured, FeaturedDish{
			ID:             r.ID,
			Name:           r.Name,
			Description:    r.Description,
			Price:          r.Price,
			Currency:       r.Currency,
			ImageURL:       r.ImageURL,
			RestaurantName: r.RestaurantName,
			RestaurantID:   r.RestaurantID,
		})
	}
	return featured
}

func defaultQuickActions() []QuickAction {
	return []QuickAction{
		{
			ID:          "order-again",
			Label:       "Order again",
			Description: "Reorder your recent favourites",
			Href:        "/dashboard#order-again",
		},
		{
			ID:          "track",
			Label:       "Track delivery",
			Description: "Follow an active delivery in real time",
			Href:        "/dashboard#track",
		},
		{
			ID:          "support",
			Label:       "Chat with support",
			Description: "Need help with an order? We're here.",
			Href:        "/dashboard#support",
		},
	}
}

// DefaultAuthPaths lists the auth endpoints the dashboard links to
func DefaultAuthPaths() AuthPaths {
	return AuthPaths{
		Login:            "/api/v1/login",
		Signup:           "/api/v1/signup",
		Logout:           "/api/v1/logout",
		RestaurantSignup: "/api/v1/restaurants/signup",
	}
}

// sampleOrders is the first-visit placeholder order history
func sampleOrders(now time.Time) []CustomerOrder {
	return []CustomerOrder{
		{ID: 0, Restaurant: "Karachi Biryani House", Total: 18.50, Status: models.StatusCompleted, ETA: "35 min", PlacedAt: now.AddDate(0, 0, -2), Sample: true},
		{ID: 0, Restaurant: "Lahore Tikka Corner", Total: 24.00, Status: models.StatusCompleted, ETA: "40 min", PlacedAt: now.AddDate(0, 0, -5), Sample: true},
	}
}

func sampleAddresses() []SavedAddress {
	return []SavedAddress{
		{ID: 0, Label: "Home", Street: "12 Garden Road", City: "Karachi", Instructions: "Ring the bell twice"},
	}
}
