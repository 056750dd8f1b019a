package stats

import "math"

// GrowthRate is the percentage change between a period's count and the
// immediately preceding equivalent period, rounded to one decimal. It is
// defined as 0 whenever the previous period had no rows, regardless of the
// current count.
func GrowthRate(current, previous int64) float64 {
	if previous == 0 {
		return 0
	}
	return round1(float64(current-previous) / float64(previous) * 100)
}

// CompletionRate is the share of orders in the terminal completed state,
// rounded to one decimal; 0 when there are no orders at all.
func CompletionRate(completed, total int64) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(completed) / float64(total) * 100)
}

// AverageOrderValue divides revenue by order count, rounded to two decimals;
// 0 when there are no orders.
func AverageOrderValue(totalRevenue float64, totalOrders int64) float64 {
	if totalOrders == 0 {
		return 0
	}
	return round2(totalRevenue / float64(totalOrders))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
