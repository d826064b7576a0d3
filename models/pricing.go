package models

// Harga bulanan per plan (rupee, tanpa pecahan). 26 bowls = satu bulan penuh.
const (
	BowlsPerMonth   = 26
	WalkInUnitPrice = 200
	AddonUnitPrice  = 100
)

var PlanPrices = map[string]int{
	"Regular": 5000,
	"Premium": 6500,
	"MealBox": 7800,
}

// PerBowlPrice returns the unrounded per-bowl rate for a plan.
// Rounding happens only at the final invoice total.
func PerBowlPrice(plan string) float64 {
	return float64(PlanPrices[plan]) / BowlsPerMonth
}

func IsValidPlan(plan string) bool {
	_, ok := PlanPrices[plan]
	return ok
}
