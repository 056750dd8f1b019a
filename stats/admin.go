package stats

import (
	"time"

	"food-marketplace-api/models"
)

// AdminSnapshot is the platform-wide dashboard payload. Field names match
// what the admin dashboard UI consumes; every number defaults to zero when
// its source is empty or its query fails.
type AdminSnapshot struct {
	Overview        AdminOverview      `json:"overview"`
	Users           UserCounters       `json:"users"`
	Restaurants     RestaurantCounters `json:"restaurants"`
	Orders          OrderCounters      `json:"orders"`
	Revenue         RevenueSummary     `json:"revenue"`
	RecentActivity  RecentActivity     `json:"recent_activity"`
	PlatformMetrics PlatformMetrics    `json:"platform_metrics"`
}

type AdminOverview struct {
	TotalUsers       int64   `json:"total_users"`
	TotalRestaurants int64   `json:"total_restaurants"`
	TotalOrders      int64   `json:"total_orders"`
	TotalRevenue     float64 `json:"total_revenue"`
}

type UserCounters struct {
	Total        int64 `json:"total"`
	Customers    int64 `json:"customers"`
	Vendors      int64 `json:"vendors"`
	Riders       int64 `json:"riders"`
	NewToday     int64 `json:"new_today"`
	NewThisWeek  int64 `json:"new_this_week"`
	NewThisMonth int64 `json:"new_this_month"`
}

type RestaurantCounters struct {
	Total       int64 `json:"total"`
	Pending     int64 `json:"pending"`
	Approved    int64 `json:"approved"`
	Suspended   int64 `json:"suspended"`
	NewToday    int64 `json:"new_today"`
	NewThisWeek int64 `json:"new_this_week"`
}

type OrderCounters struct {
	Total          int64 `json:"total"`
	Pending        int64 `json:"pending"`
	Preparing      int64 `json:"preparing"`
	OutForDelivery int64 `json:"out_for_delivery"`
	Completed      int64 `json:"completed"`
	Cancelled      int64 `json:"cancelled"`
	Today          int64 `json:"today"`
	ThisWeek       int64 `json:"this_week"`
	ThisMonth      int64 `json:"this_month"`
}

type RevenueSummary struct {
	Total             float64     `json:"total"`
	Today             float64     `json:"today"`
	ThisWeek          float64     `json:"this_week"`
	ThisMonth         float64     `json:"this_month"`
	AverageOrderValue float64     `json:"average_order_value"`
	Trend             []DayBucket `json:"trend"`
}

type PlatformMetrics struct {
	UserGrowthRate       float64 `json:"user_growth_rate"`
	RestaurantGrowthRate float64 `json:"restaurant_growth_rate"`
	OrderCompletionRate  float64 `json:"order_completion_rate"`
	AverageDeliveryTime  int64   `json:"average_delivery_time"`
}

type RecentActivity struct {
	RecentOrders      []RecentOrder      `json:"recent_orders"`
	RecentUsers       []RecentUser       `json:"recent_users"`
	RecentRestaurants []RecentRestaurant `json:"recent_restaurants"`
}

type RecentOrder struct {
	ID          uint               `json:"id"`
	Status      models.OrderStatus `json:"status"`
	TotalAmount float64            `json:"total_amount"`
	PlacedAt    time.Time          `json:"placed_at"`
}

type RecentUser struct {
	ID    uint            `json:"id"`
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`
}

type RecentRestaurant struct {
	ID          uint                    `json:"id"`
	Name        string                  `json:"name"`
	Status      models.RestaurantStatus `json:"status"`
	CuisineType string                  `json:"cuisine_type"`
	JoinedAt    time.Time               `json:"joined_at"`
}

// BuildAdmin assembles the platform dashboard. Queries run sequentially and
// independently; a failure in one metric never aborts the snapshot.
func (b *Builder) BuildAdmin() AdminSnapshot {
	now := b.now()
	today := Today(now)
	week := ThisWeek(now, b.WeekStart)
	month := ThisMonth(now)

	var snap AdminSnapshot

	snap.Users = UserCounters{
		Total:        b.metricInt("users.total")(b.countUsers("", AllTime)),
		Customers:    b.metricInt("users.customers")(b.countUsers(models.RoleCustomer, AllTime)),
		Vendors:      b.metricInt("users.vendors")(b.countUsers(models.RoleVendor, AllTime)),
		Riders:       b.metricInt("users.riders")(b.countUsers(models.RoleRider, AllTime)),
		NewToday:     b.metricInt("users.new_today")(b.countUsers("", today)),
		NewThisWeek:  b.metricInt("users.new_this_week")(b.countUsers("", week)),
		NewThisMonth: b.metricInt("users.new_this_month")(b.countUsers("", month)),
	}

	snap.Restaurants = RestaurantCounters{
		Total:       b.metricInt("restaurants.total")(b.countRestaurants("", AllTime)),
		Pending:     b.metricInt("restaurants.pending")(b.countRestaurants(models.RestaurantPending, AllTime)),
		Approved:    b.metricInt("restaurants.approved")(b.countRestaurants(models.RestaurantApproved, AllTime)),
		Suspended:   b.metricInt("restaurants.suspended")(b.countRestaurants(models.RestaurantSuspended, AllTime)),
		NewToday:    b.metricInt("restaurants.new_today")(b.countRestaurants("", today)),
		NewThisWeek: b.metricInt("restaurants.new_this_week")(b.countRestaurants("", week)),
	}

	snap.Orders = b.orderCounters(Platform, now)

	totalRevenue := b.metricFloat("revenue.total")(b.sumRevenue(Platform, AllTime))
	snap.Revenue = RevenueSummary{
		Total:             totalRevenue,
		Today:             b.metricFloat("revenue.today")(b.sumRevenue(Platform, today)),
		ThisWeek:          b.metricFloat("revenue.this_week")(b.sumRevenue(Platform, week)),
		ThisMonth:         b.metricFloat("revenue.this_month")(b.sumRevenue(Platform, month)),
		AverageOrderValue: AverageOrderValue(totalRevenue, snap.Orders.Completed),
		Trend:             b.dailyRevenueTrend(Platform),
	}

	snap.Overview = AdminOverview{
		TotalUsers:       snap.Users.Total,
		TotalRestaurants: snap.Restaurants.Total,
		TotalOrders:      snap.Orders.Total,
		TotalRevenue:     totalRevenue,
	}

	snap.PlatformMetrics = PlatformMetrics{
		UserGrowthRate: GrowthRate(
			b.metricInt("users.month_current")(b.countUsers("", month)),
			b.metricInt("users.month_previous")(b.countUsers("", LastMonth(now)))),
		RestaurantGrowthRate: GrowthRate(
			b.metricInt("restaurants.month_current")(b.countRestaurants("", month)),
			b.metricInt("restaurants.month_previous")(b.countRestaurants("", LastMonth(now)))),
		OrderCompletionRate: CompletionRate(snap.Orders.Completed, snap.Orders.Total),
		AverageDeliveryTime: b.metricInt("orders.avg_delivery_minutes")(b.terminalMinutes(Platform, "delivered_at")),
	}

	snap.RecentActivity = b.recentActivity()

	return snap
}

// orderCounters is shared by the admin snapshot (platform scope) and the
// restaurant snapshot (vendor scope)
func (b *Builder) orderCounters(scope Scope, now time.Time) OrderCounters {
	today := Today(now)
	week := ThisWeek(now, b.WeekStart)
	month := ThisMonth(now)
	one := func(s models.OrderStatus) []models.OrderStatus { return []models.OrderStatus{s} }

	return OrderCounters{
		Total:          b.metricInt("orders.total")(b.countOrders(scope, nil, AllTime)),
		Pending:        b.metricInt("orders.pending")(b.countOrders(scope, one(models.StatusPending), AllTime)),
		Preparing:      b.metricInt("orders.preparing")(b.countOrders(scope, one(models.StatusPreparing), AllTime)),
		OutForDelivery: b.metricInt("orders.out_for_delivery")(b.countOrders(scope, one(models.StatusOutForDelivery), AllTime)),
		Completed:      b.metricInt("orders.completed")(b.countOrders(scope, one(models.StatusCompleted), AllTime)),
		Cancelled:      b.metricInt("orders.cancelled")(b.countOrders(scope, one(models.StatusCancelled), AllTime)),
		Today:          b.metricInt("orders.today")(b.countOrders(scope, nil, today)),
		ThisWeek:       b.metricInt("orders.this_week")(b.countOrders(scope, nil, week)),
		ThisMonth:      b.metricInt("orders.this_month")(b.countOrders(scope, nil, month)),
	}
}

func (b *Builder) recentActivity() RecentActivity {
	activity := RecentActivity{
		RecentOrders:      []RecentOrder{},
		RecentUsers:       []RecentUser{},
		RecentRestaurants: []RecentRestaurant{},
	}

	var orders []models.Order
	if err := b.DB.Order("created_at DESC").Limit(5).Find(&orders).Error; err != nil {
		b.logf("stats: recent_activity.orders degraded to empty: %v", err)
	} else {
		for _, o := range orders {
			activity.RecentOrders = append(activity.RecentOrders, RecentOrder{
				ID: o.ID, Status: o.Status, TotalAmount: o.TotalAmount, PlacedAt: o.CreatedAt,
			})
		}
	}

	var users []models.User
	if err := b.DB.Order("created_at DESC").Limit(5).Find(&users).Error; err != nil {
		b.logf("stats: recent_activity.users degraded to empty: %v", err)
	} else {
		for _, u := range users {
			activity.RecentUsers = append(activity.RecentUsers, RecentUser{
				ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role,
			})
		}
	}

	var restaurants []models.Restaurant
	if err := b.DB.Order("created_at DESC").Limit(5).Find(&restaurants).Error; err != nil {
		b.logf("stats: recent_activity.restaurants degraded to empty: %v", err)
	} else {
		for _, r := range restaurants {
			activity.RecentRestaurants = append(activity.RecentRestaurants, RecentRestaurant{
				ID: r.ID, Name: r.Name, Status: r.Status, CuisineType: r.CuisineType, JoinedAt: r.CreatedAt,
			})
		}
	}

	return activity
}
