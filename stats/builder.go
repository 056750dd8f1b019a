package stats

import (
	"log"
	"time"

	"food-marketplace-api/models"

	"gorm.io/gorm"
)

// Builder computes role-scoped dashboard snapshots. It is stateless between
// calls: every snapshot is a fresh sequence of read-only queries against the
// supplied connection, bounded by an explicit scope and clock so nothing about
// the caller is ambient.
type Builder struct {
	DB        *gorm.DB
	WeekStart time.Weekday

	// Now is the snapshot clock; tests pin it. Defaults to time.Now.
	Now func() time.Time
	// Logf receives metric-level query failures. The failing metric is
	// reported as its zero default, so the log line is the only trace.
	// Defaults to log.Printf.
	Logf func(format string, args ...interface{})
}

// New returns a Builder with the default clock and logger
func New(db *gorm.DB, weekStart time.Weekday) *Builder {
	return &Builder{DB: db, WeekStart: weekStart}
}

// Scope bounds a snapshot to a principal's visibility. The zero Scope is
// platform-wide (admin); RestaurantID or UserID narrow it to one principal.
type Scope struct {
	RestaurantID uint
	UserID       uint
}

// Platform is the unscoped admin view
var Platform = Scope{}

func (b *Builder) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

func (b *Builder) logf(format string, args ...interface{}) {
	if b.Logf != nil {
		b.Logf(format, args...)
		return
	}
	log.Printf(format, args...)
}

// metricInt resolves a count query to its value or the zero default. It
// returns a resolver so a (value, error) query call can feed it directly:
// b.metricInt("users.total")(b.countUsers("", AllTime)). A query error and
// genuinely-empty data look identical to the caller by contract; the
// distinction survives only in the log.
func (b *Builder) metricInt(metric string) func(int64, error) int64 {
	return func(v int64, err error) int64 {
		if err != nil {
			b.logf("stats: metric %s degraded to 0: %v", metric, err)
			return 0
		}
		return v
	}
}

func (b *Builder) metricFloat(metric string) func(float64, error) float64 {
	return func(v float64, err error) float64 {
		if err != nil {
			b.logf("stats: metric %s degraded to 0: %v", metric, err)
			return 0
		}
		return v
	}
}

// ── Query helpers ──────────────────────────────────────────────────────────
// Each helper returns (value, error); assemblers decide what a failure
// degrades to. No helper opens a transaction: a dashboard snapshot is a
// sequence of independent reads and is not atomically consistent.

func applyRange(q *gorm.DB, r Range) *gorm.DB {
	if r.IsAllTime() {
		return q
	}
	return q.Where("created_at >= ? AND created_at < ?", r.From, r.To)
}

func (b *Builder) scopedOrders(scope Scope) *gorm.DB {
	q := b.DB.Model(&models.Order{})
	if scope.RestaurantID != 0 {
		q = q.Where("restaurant_id = ?", scope.RestaurantID)
	}
	if scope.UserID != 0 {
		q = q.Where("user_id = ?", scope.UserID)
	}
	return q
}

// countOrders counts orders in scope, optionally filtered to a status set and
// a creation window
func (b *Builder) countOrders(scope Scope, statuses []models.OrderStatus, r Range) (int64, error) {
	q := applyRange(b.scopedOrders(scope), r)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

// sumRevenue sums completed-order revenue in scope within a window. Only the
// terminal completed state counts as revenue.
func (b *Builder) sumRevenue(scope Scope, r Range) (float64, error) {
	q := applyRange(b.scopedOrders(scope), r).Where("status = ?", models.StatusCompleted)
	var total float64
	err := q.Select("COALESCE(SUM(total_amount), 0)").Scan(&total).Error
	return total, err
}

// sumAllRevenue sums total_amount across every order in scope regardless of
// state, which is what the vendor "total revenue" card shows
func (b *Builder) sumAllRevenue(scope Scope) (float64, error) {
	var total float64
	err := b.scopedOrders(scope).Select("COALESCE(SUM(total_amount), 0)").Scan(&total).Error
	return total, err
}

func (b *Builder) countUsers(role models.UserRole, r Range) (int64, error) {
	q := applyRange(b.DB.Model(&models.User{}), r)
	if role != "" {
		q = q.Where("role = ?", role)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

func (b *Builder) countRestaurants(status models.RestaurantStatus, r Range) (int64, error) {
	q := applyRange(b.DB.Model(&models.Restaurant{}), r)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

// terminalMinutes computes the mean whole-minute gap between created_at and a
// terminal timestamp column over completed orders in scope. Orders whose
// terminal timestamp is missing despite the filter contribute zero minutes but
// still count toward the mean, mirroring how the dashboard has always behaved.
func (b *Builder) terminalMinutes(scope Scope, column string) (int64, error) {
	type row struct {
		CreatedAt  time.Time
		TerminalAt *time.Time
	}
	var rows []row
	err := b.scopedOrders(scope).
		Where("status = ?", models.StatusCompleted).
		Where(column + " IS NOT NULL").
		Select("created_at, " + column + " AS terminal_at").
		Scan(&rows).Error
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	var totalMinutes int64
	for _, r := range rows {
		if r.TerminalAt == nil || r.TerminalAt.Before(r.CreatedAt) {
			continue // contributes 0 minutes, still counted below
		}
		totalMinutes += int64(r.TerminalAt.Sub(r.CreatedAt).Minutes())
	}
	return totalMinutes / int64(len(rows)), nil
}

// DayBucket is one entry of a daily revenue trend
type DayBucket struct {
	Day     string  `json:"day"`
	Revenue float64 `json:"revenue"`
}

// dailyRevenueTrend returns exactly 7 buckets, 6 days ago through today, in
// chronological order. A bucket whose sum fails degrades to 0 on its own.
func (b *Builder) dailyRevenueTrend(scope Scope) []DayBucket {
	now := b.now()
	trend := make([]DayBucket, 0, 7)
	for daysAgo := 6; daysAgo >= 0; daysAgo-- {
		r := DayAt(now, daysAgo)
		sum := b.metricFloat("trend.day")(b.sumRevenue(scope, r))
		trend = append(trend, DayBucket{Day: r.From.Format("Mon"), Revenue: sum})
	}
	return trend
}

// MonthBucket is one entry of a monthly revenue trend
type MonthBucket struct {
	Month string  `json:"month"`
	Sales float64 `json:"sales"`
}

// monthlyRevenueTrend returns 6 buckets, 5 months ago through the current
// month, in chronological order
func (b *Builder) monthlyRevenueTrend(scope Scope) []MonthBucket {
	now := b.now()
	trend := make([]MonthBucket, 0, 6)
	for monthsAgo := 5; monthsAgo >= 0; monthsAgo-- {
		r := MonthAt(now, monthsAgo)
		sum := b.metricFloat("trend.month")(b.sumRevenue(scope, r))
		trend = append(trend, MonthBucket{Month: r.From.Format("Jan"), Sales: sum})
	}
	return trend
}
