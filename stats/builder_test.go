package stats_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"food-marketplace-api/config"
	"food-marketplace-api/models"
	"food-marketplace-api/stats"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	// The pool must stay on one connection or each one gets its own :memory: db
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedRestaurant(t *testing.T, db *gorm.DB, name string) *models.Restaurant {
	t.Helper()
	r := &models.Restaurant{
		Name:         name,
		Email:        strings.ToLower(strings.ReplaceAll(name, " ", "")) + "@example.com",
		PasswordHash: "x",
		Status:       models.RestaurantApproved,
	}
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("seed restaurant: %v", err)
	}
	return r
}

func seedCustomer(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	u := &models.User{Name: "Test Customer", Email: email, PasswordHash: "x", Role: models.RoleCustomer}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return u
}

func seedOrder(t *testing.T, db *gorm.DB, o *models.Order) *models.Order {
	t.Helper()
	if err := db.Create(o).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return o
}

func TestBuildAdminEmptyPlatform(t *testing.T) {
	b := stats.New(newTestDB(t), time.Monday)

	snap := b.BuildAdmin()

	if snap.Overview.TotalUsers != 0 || snap.Overview.TotalOrders != 0 || snap.Overview.TotalRevenue != 0 {
		t.Errorf("empty platform overview should be all zero, got %+v", snap.Overview)
	}
	if snap.PlatformMetrics.UserGrowthRate != 0 || snap.PlatformMetrics.OrderCompletionRate != 0 {
		t.Errorf("empty platform metrics should be zero, got %+v", snap.PlatformMetrics)
	}
	if len(snap.Revenue.Trend) != 7 {
		t.Errorf("trend should always have 7 buckets, got %d", len(snap.Revenue.Trend))
	}
	if snap.RecentActivity.RecentOrders == nil || len(snap.RecentActivity.RecentOrders) != 0 {
		t.Errorf("recent orders should be an empty slice, got %#v", snap.RecentActivity.RecentOrders)
	}
}

func TestBuildAdminRevenueAndRates(t *testing.T) {
	db := newTestDB(t)
	r := seedRestaurant(t, db, "Karachi Biryani House")
	u := seedCustomer(t, db, "eater@example.com")

	for _, amount := range []float64{10, 20, 30} {
		seedOrder(t, db, &models.Order{
			UserID: u.ID, RestaurantID: r.ID,
			Status: models.StatusCompleted, TotalAmount: amount,
		})
	}
	// Cancelled orders never count as revenue
	seedOrder(t, db, &models.Order{
		UserID: u.ID, RestaurantID: r.ID,
		Status: models.StatusCancelled, TotalAmount: 99,
	})

	snap := stats.New(db, time.Monday).BuildAdmin()

	if snap.Revenue.Today != 60 {
		t.Errorf("Revenue.Today: got %v, want 60", snap.Revenue.Today)
	}
	if snap.Revenue.Total != 60 {
		t.Errorf("Revenue.Total: got %v, want 60", snap.Revenue.Total)
	}
	if snap.Revenue.AverageOrderValue != 20 {
		t.Errorf("AverageOrderValue: got %v, want 20", snap.Revenue.AverageOrderValue)
	}
	if snap.Orders.Total != 4 || snap.Orders.Completed != 3 || snap.Orders.Cancelled != 1 {
		t.Errorf("order counters: got %+v", snap.Orders)
	}
	if snap.PlatformMetrics.OrderCompletionRate != 75 {
		t.Errorf("OrderCompletionRate: got %v, want 75", snap.PlatformMetrics.OrderCompletionRate)
	}
}

func TestDailyTrendBucketsAreChronological(t *testing.T) {
	db := newTestDB(t)
	r := seedRestaurant(t, db, "Lahore Tikka Corner")
	u := seedCustomer(t, db, "trend@example.com")

	twoDaysAgo := time.Now().AddDate(0, 0, -2)
	seedOrder(t, db, &models.Order{
		UserID: u.ID, RestaurantID: r.ID,
		Status: models.StatusCompleted, TotalAmount: 15,
		CreatedAt: twoDaysAgo,
	})

	snap := stats.New(db, time.Monday).BuildAdmin()

	trend := snap.Revenue.Trend
	if len(trend) != 7 {
		t.Fatalf("trend length: got %d, want 7", len(trend))
	}
	// Index 4 is two days ago (index 6 is today)
	if trend[4].Revenue != 15 {
		t.Errorf("bucket for two days ago: got %v, want 15", trend[4].Revenue)
	}
	if want := twoDaysAgo.Format("Mon"); trend[4].Day != want {
		t.Errorf("bucket label: got %q, want %q", trend[4].Day, want)
	}
	if trend[6].Day != time.Now().Format("Mon") {
		t.Errorf("last bucket should be today, got %q", trend[6].Day)
	}
}

func TestBuildAdminDegradesFailingMetricsToZero(t *testing.T) {
	db := newTestDB(t)
	seedCustomer(t, db, "still-here@example.com")
	if err := db.Migrator().DropTable(&models.Order{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	var logged []string
	b := stats.New(db, time.Monday)
	b.Logf = func(format string, args ...interface{}) {
		logged = append(logged, fmt.Sprintf(format, args...))
	}

	snap := b.BuildAdmin()

	if snap.Orders.Total != 0 || snap.Revenue.Total != 0 {
		t.Errorf("failing order metrics should degrade to zero, got %+v / %+v", snap.Orders, snap.Revenue)
	}
	if snap.Users.Total != 1 {
		t.Errorf("healthy metrics should still compute, got %d users", snap.Users.Total)
	}
	if len(logged) == 0 {
		t.Error("degraded metrics should be logged")
	}
}

func TestBuildRestaurantDegradesFailingMetricsToZero(t *testing.T) {
	db := newTestDB(t)
	r := seedRestaurant(t, db, "Broken Board")
	if err := db.Migrator().DropTable(&models.Order{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	var logged []string
	b := stats.New(db, time.Monday)
	b.Logf = func(format string, args ...interface{}) {
		logged = append(logged, fmt.Sprintf(format, args...))
	}

	snap := b.BuildRestaurant(r)

	if snap.Metrics.TotalOrders != 0 || snap.Metrics.TotalRevenue != 0 || snap.Sales.Today != 0 {
		t.Errorf("failing metrics should degrade to zero, got %+v / %+v", snap.Metrics, snap.Sales)
	}
	if snap.Restaurant.Name != "Broken Board" {
		t.Errorf("restaurant info should still render, got %+v", snap.Restaurant)
	}
	if len(snap.Sales.WeeklyTrend) != 7 || len(snap.Sales.MonthlyTrend) != 6 {
		t.Errorf("trend lengths survive failures: got %d weekly, %d monthly", len(snap.Sales.WeeklyTrend), len(snap.Sales.MonthlyTrend))
	}
	if len(logged) == 0 {
		t.Error("degraded metrics should be logged")
	}
}

func TestBuildRestaurantScopesToOneRestaurant(t *testing.T) {
	db := newTestDB(t)
	mine := seedRestaurant(t, db, "Mine")
	other := seedRestaurant(t, db, "Other")
	u := seedCustomer(t, db, "scoped@example.com")

	seedOrder(t, db, &models.Order{UserID: u.ID, RestaurantID: mine.ID, Status: models.StatusCompleted, TotalAmount: 40})
	seedOrder(t, db, &models.Order{UserID: u.ID, RestaurantID: mine.ID, Status: models.StatusPending, TotalAmount: 10})
	seedOrder(t, db, &models.Order{UserID: u.ID, RestaurantID: other.ID, Status: models.StatusCompleted, TotalAmount: 500})

	snap := stats.New(db, time.Monday).BuildRestaurant(mine)

	if snap.Sales.Today != 40 {
		t.Errorf("Sales.Today: got %v, want 40", snap.Sales.Today)
	}
	if snap.Metrics.TotalOrders != 2 {
		t.Errorf("TotalOrders: got %d, want 2", snap.Metrics.TotalOrders)
	}
	// Vendor total revenue includes every order regardless of state
	if snap.Metrics.TotalRevenue != 50 {
		t.Errorf("TotalRevenue: got %v, want 50", snap.Metrics.TotalRevenue)
	}
	if snap.Metrics.CompletionRate != 50 {
		t.Errorf("CompletionRate: got %v, want 50", snap.Metrics.CompletionRate)
	}
	if snap.Orders.Pending != 1 {
		t.Errorf("Orders.Pending: got %d, want 1", snap.Orders.Pending)
	}
	if len(snap.Sales.WeeklyTrend) != 7 || len(snap.Sales.MonthlyTrend) != 6 {
		t.Errorf("trend lengths: got %d weekly, %d monthly", len(snap.Sales.WeeklyTrend), len(snap.Sales.MonthlyTrend))
	}
}

func TestBuildRestaurantThreeCompletedOrders(t *testing.T) {
	db := newTestDB(t)
	r := seedRestaurant(t, db, "Sixty Today")
	u := seedCustomer(t, db, "sixty@example.com")

	for _, amount := range []float64{10, 20, 30} {
		seedOrder(t, db, &models.Order{
			UserID: u.ID, RestaurantID: r.ID,
			Status: models.StatusCompleted, TotalAmount: amount,
		})
	}

	snap := stats.New(db, time.Monday).BuildRestaurant(r)

	if snap.Sales.Today != 60 {
		t.Errorf("Sales.Today: got %v, want 60", snap.Sales.Today)
	}
	if snap.Metrics.AverageOrderValue != 20 {
		t.Errorf("AverageOrderValue: got %v, want 20", snap.Metrics.AverageOrderValue)
	}
	if snap.Metrics.CompletionRate != 100 {
		t.Errorf("CompletionRate: got %v, want 100", snap.Metrics.CompletionRate)
	}
}

func TestBuildRestaurantAveragePrepTime(t *testing.T) {
	db := newTestDB(t)
	r := seedRestaurant(t, db, "Prep Timer")
	u := seedCustomer(t, db, "prep@example.com")

	placed := time.Now().Add(-2 * time.Hour)
	prepared20 := placed.Add(20 * time.Minute)
	prepared40 := placed.Add(40 * time.Minute)
	seedOrder(t, db, &models.Order{
		UserID: u.ID, RestaurantID: r.ID, Status: models.StatusCompleted,
		TotalAmount: 10, CreatedAt: placed, PreparedAt: &prepared20,
	})
	seedOrder(t, db, &models.Order{
		UserID: u.ID, RestaurantID: r.ID, Status: models.StatusCompleted,
		TotalAmount: 10, CreatedAt: placed, PreparedAt: &prepared40,
	})

	snap := stats.New(db, time.Monday).BuildRestaurant(r)

	if snap.Metrics.AveragePrepTime != 30 {
		t.Errorf("AveragePrepTime: got %d, want 30", snap.Metrics.AveragePrepTime)
	}
}

func TestBuildRestaurantTopItems(t *testing.T) {
	db := newTestDB(t)
	r := seedRestaurant(t, db, "Top Seller")
	u := seedCustomer(t, db, "top@example.com")

	o1 := seedOrder(t, db, &models.Order{UserID: u.ID, RestaurantID: r.ID, Status: models.StatusCompleted, TotalAmount: 30})
	o2 := seedOrder(t, db, &models.Order{UserID: u.ID, RestaurantID: r.ID, Status: models.StatusCompleted, TotalAmount: 20})
	pendingOrder := seedOrder(t, db, &models.Order{UserID: u.ID, RestaurantID: r.ID, Status: models.StatusPending, TotalAmount: 10})

	items := []models.OrderItem{
		{OrderID: o1.ID, MenuItemID: 1, Name: "Chicken Karahi", Quantity: 2, Price: 10},
		{OrderID: o2.ID, MenuItemID: 1, Name: "Chicken Karahi", Quantity: 1, Price: 10},
		{OrderID: o2.ID, MenuItemID: 2, Name: "Naan", Quantity: 4, Price: 2.5},
		// Pending orders do not count toward best sellers
		{OrderID: pendingOrder.ID, MenuItemID: 3, Name: "Lassi", Quantity: 1, Price: 5},
	}
	for i := range items {
		if err := db.Create(&items[i]).Error; err != nil {
			t.Fatalf("seed order item: %v", err)
		}
	}

	snap := stats.New(db, time.Monday).BuildRestaurant(r)

	if len(snap.TopItems) != 2 {
		t.Fatalf("top items: got %d, want 2", len(snap.TopItems))
	}
	if snap.TopItems[0].Name != "Chicken Karahi" || snap.TopItems[0].Orders != 2 {
		t.Errorf("first top item: got %+v", snap.TopItems[0])
	}
	if snap.TopItems[0].Revenue != 30 {
		t.Errorf("first top item revenue: got %v, want 30", snap.TopItems[0].Revenue)
	}
}

func TestBuildCustomerFallsBackToSamples(t *testing.T) {
	db := newTestDB(t)
	u := seedCustomer(t, db, "firstvisit@example.com")

	snap := stats.New(db, time.Monday).BuildCustomer(u)

	if len(snap.RecentOrders) == 0 {
		t.Fatal("first visit should show sample orders")
	}
	for _, o := range snap.RecentOrders {
		if !o.Sample {
			t.Errorf("order %q should be flagged as sample", o.Restaurant)
		}
	}
	if len(snap.SavedAddresses) == 0 {
		t.Error("first visit should show a sample address")
	}
	if snap.Stats.CompletedOrders != 0 || snap.Stats.UpcomingDeliveries != 0 {
		t.Errorf("stats should still be real zeros, got %+v", snap.Stats)
	}
}

func TestBuildCustomerUsesRealHistory(t *testing.T) {
	db := newTestDB(t)
	r := seedRestaurant(t, db, "Real History")
	u := seedCustomer(t, db, "regular@example.com")

	seedOrder(t, db, &models.Order{
		UserID: u.ID, RestaurantID: r.ID, Status: models.StatusCompleted,
		TotalAmount: 25, DeliveryAddress: "12 Garden Road",
	})
	seedOrder(t, db, &models.Order{
		UserID: u.ID, RestaurantID: r.ID, Status: models.StatusOutForDelivery,
		TotalAmount: 18, DeliveryAddress: "Office, Floor 3",
	})

	snap := stats.New(db, time.Monday).BuildCustomer(u)

	if len(snap.RecentOrders) != 2 {
		t.Fatalf("recent orders: got %d, want 2", len(snap.RecentOrders))
	}
	for _, o := range snap.RecentOrders {
		if o.Sample {
			t.Error("real history must not be flagged as sample")
		}
		if o.Restaurant != "Real History" {
			t.Errorf("restaurant name: got %q", o.Restaurant)
		}
	}
	if len(snap.SavedAddresses) != 2 {
		t.Errorf("addresses derived from history: got %d, want 2", len(snap.SavedAddresses))
	}
	if snap.Stats.UpcomingDeliveries != 1 || snap.Stats.CompletedOrders != 1 {
		t.Errorf("stats: got %+v", snap.Stats)
	}
	if snap.AuthPaths.Login != "/api/v1/login" {
		t.Errorf("auth paths: got %+v", snap.AuthPaths)
	}
}
