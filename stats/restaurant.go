package stats

import (
	"fmt"
	"strings"
	"time"

	"food-marketplace-api/models"
)

// RestaurantSnapshot is the vendor dashboard payload, scoped to one restaurant
type RestaurantSnapshot struct {
	Restaurant   RestaurantInfo    `json:"restaurant"`
	Sales        SalesSummary      `json:"sales"`
	Orders       VendorOrderCounts `json:"orders"`
	Metrics      VendorMetrics     `json:"metrics"`
	RecentOrders []VendorOrder     `json:"recent_orders"`
	TopItems     []TopItem         `json:"top_items"`
}

type RestaurantInfo struct {
	ID            uint                    `json:"id"`
	Name          string                  `json:"name"`
	Email         string                  `json:"email"`
	ContactNumber string                  `json:"contact_number"`
	Address       string                  `json:"address"`
	Status        models.RestaurantStatus `json:"status"`
	JoinedAt      time.Time               `json:"joined_at"`
}

type SalesSummary struct {
	Today        float64       `json:"today"`
	ThisWeek     float64       `json:"this_week"`
	ThisMonth    float64       `json:"this_month"`
	WeeklyTrend  []DaySales    `json:"weekly_trend"`
	MonthlyTrend []MonthBucket `json:"monthly_trend"`
}

// DaySales is one entry of the vendor weekly trend
type DaySales struct {
	Day   string  `json:"day"`
	Sales float64 `json:"sales"`
}

type VendorOrderCounts struct {
	Pending        int64 `json:"pending"`
	Preparing      int64 `json:"preparing"`
	OutForDelivery int64 `json:"out_for_delivery"`
	CompletedToday int64 `json:"completed_today"`
	CancelledToday int64 `json:"cancelled_today"`
}

type VendorMetrics struct {
	TotalOrders       int64   `json:"total_orders"`
	TotalRevenue      float64 `json:"total_revenue"`
	AverageOrderValue float64 `json:"average_order_value"`
	CustomerRating    float64 `json:"customer_rating"`
	CompletionRate    float64 `json:"completion_rate"`
	AveragePrepTime   int64   `json:"average_prep_time"`
}

type VendorOrder struct {
	ID           uint               `json:"id"`
	CustomerName string             `json:"customer_name"`
	Items        string             `json:"items"`
	Total        float64            `json:"total"`
	Status       models.OrderStatus `json:"status"`
	PlacedAt     time.Time          `json:"placed_at"`
}

type TopItem struct {
	Name    string  `json:"name"`
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// BuildRestaurant assembles the vendor dashboard for one restaurant
func (b *Builder) BuildRestaurant(r *models.Restaurant) RestaurantSnapshot {
	now := b.now()
	scope := Scope{RestaurantID: r.ID}
	today := Today(now)
	week := ThisWeek(now, b.WeekStart)
	month := ThisMonth(now)
	one := func(s models.OrderStatus) []models.OrderStatus { return []models.OrderStatus{s} }

	snap := RestaurantSnapshot{
		Restaurant: RestaurantInfo{
			ID:            r.ID,
			Name:          r.Name,
			Email:         r.Email,
			ContactNumber: r.ContactNumber,
			Address:       r.Address,
			Status:        r.Status,
			JoinedAt:      r.CreatedAt,
		},
	}

	snap.Sales = SalesSummary{
		Today:        b.metricFloat("sales.today")(b.sumRevenue(scope, today)),
		ThisWeek:     b.metricFloat("sales.this_week")(b.sumRevenue(scope, week)),
		ThisMonth:    b.metricFloat("sales.this_month")(b.sumRevenue(scope, month)),
		WeeklyTrend:  b.weeklySalesTrend(scope),
		MonthlyTrend: b.monthlyRevenueTrend(scope),
	}

	snap.Orders = VendorOrderCounts{
		Pending:        b.metricInt("orders.pending")(b.countOrders(scope, one(models.StatusPending), AllTime)),
		Preparing:      b.metricInt("orders.preparing")(b.countOrders(scope, one(models.StatusPreparing), AllTime)),
		OutForDelivery: b.metricInt("orders.out_for_delivery")(b.countOrders(scope, one(models.StatusOutForDelivery), AllTime)),
		CompletedToday: b.metricInt("orders.completed_today")(b.countOrders(scope, one(models.StatusCompleted), today)),
		CancelledToday: b.metricInt("orders.cancelled_today")(b.countOrders(scope, one(models.StatusCancelled), today)),
	}

	totalOrders := b.metricInt("metrics.total_orders")(b.countOrders(scope, nil, AllTime))
	totalRevenue := b.metricFloat("metrics.total_revenue")(b.sumAllRevenue(scope))
	completed := b.metricInt("metrics.completed_orders")(b.countOrders(scope, one(models.StatusCompleted), AllTime))

	snap.Metrics = VendorMetrics{
		TotalOrders:       totalOrders,
		TotalRevenue:      totalRevenue,
		AverageOrderValue: AverageOrderValue(totalRevenue, totalOrders),
		CustomerRating:    r.Rating,
		CompletionRate:    CompletionRate(completed, totalOrders),
		AveragePrepTime:   b.metricInt("metrics.avg_prep_minutes")(b.terminalMinutes(scope, "prepared_at")),
	}

	snap.RecentOrders = b.vendorRecentOrders(r.ID)
	snap.TopItems = b.topItems(r.ID)

	return snap
}

func (b *Builder) weeklySalesTrend(scope Scope) []DaySales {
	daily := b.dailyRevenueTrend(scope)
	trend := make([]DaySales, len(daily))
	for i, d := range daily {
		trend[i] = DaySales{Day: d.Day, Sales: d.Revenue}
	}
	return trend
}

func (b *Builder) vendorRecentOrders(restaurantID uint) []VendorOrder {
	recent := []VendorOrder{}

	var orders []models.Order
	err := b.DB.Preload("Items").Preload("User").
		Where("restaurant_id = ?", restaurantID).
		Order("created_at DESC").
		Limit(10).
		Find(&orders).Error
	if err != nil {
		b.logf("stats: recent_orders degraded to empty: %v", err)
		return recent
	}

	for _, o := range orders {
		recent = append(recent, VendorOrder{
			ID:           o.ID,
			CustomerName: customerName(&o),
			Items:        formatOrderItems(o.Items),
			Total:        o.TotalAmount,
			Status:       o.Status,
			PlacedAt:     o.CreatedAt,
		})
	}
	return recent
}

func customerName(o *models.Order) string {
	if name := o.User.DisplayName(); name != "" {
		return name
	}
	return "Customer"
}

// formatOrderItems renders "2x Chicken Karahi, 1x Naan" for the order list
func formatOrderItems(items []models.OrderItem) string {
	if len(items) == 0 {
		return "Order items"
	}
	parts := make([]string, 0, len(items))
	for _, it := range items {
		name := it.Name
		if name == "" {
			name = "Item"
		}
		parts = append(parts, fmt.Sprintf("%dx %s", it.Quantity, name))
	}
	return strings.Join(parts, ", ")
}

// topItems ranks the restaurant's five best sellers by completed order-item
// count, with revenue as quantity*price over those rows
func (b *Builder) topItems(restaurantID uint) []TopItem {
	top := []TopItem{}

	type row struct {
		MenuItemID uint
		Name       string
		OrderCount int64
		Revenue    float64
	}
	var rows []row
	err := b.DB.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.restaurant_id = ? AND orders.status = ?", restaurantID, models.StatusCompleted).
		Group("order_items.menu_item_id, order_items.name").
		Select("order_items.menu_item_id, order_items.name, COUNT(*) AS order_count, SUM(order_items.quantity * order_items.price) AS revenue").
		Order("order_count DESC").
		Limit(5).
		Scan(&rows).Error
	if err != nil {
		b.logf("stats: top_items degraded to empty: %v", err)
		return top
	}

	for _, r := range rows {
		name := r.Name
		if name == "" {
			name = fmt.Sprintf("Item #%d", r.MenuItemID)
		}
		top = append(top, TopItem{Name: name, Orders: r.OrderCount, Revenue: r.Revenue})
	}
	return top
}
