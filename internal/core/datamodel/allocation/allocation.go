package allocation

import (
	"math"
	"time"
)

// Allocation is a department's budgeted amount for a category plus the amount
// consumed so far. Spent exceeding Amount is a valid, displayed over-budget
// state, not an error.
type Allocation struct {
	ID             int64     `json:"id"`
	DepartmentID   int64     `json:"departmentId"`
	CategoryID     int64     `json:"categoryId"`
	DepartmentName string    `json:"departmentName,omitempty"`
	CategoryName   string    `json:"categoryName,omitempty"`
	Amount         float64   `json:"amount"`
	Spent          float64   `json:"spent"`
	Timeframe      string    `json:"timeframe"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Utilization returns spent/amount as a rounded percentage, 0 when nothing is
// allocated.
func (a Allocation) Utilization() int {
	return Utilization(a.Spent, a.Amount)
}

func (a Allocation) IsOverBudget() bool {
	return a.Utilization() >= 100
}

// NearingLimit reports whether utilization has reached the given alert
// threshold (a category ThresholdPercent, typically 80).
func (a Allocation) NearingLimit(thresholdPercent float64) bool {
	if thresholdPercent <= 0 {
		thresholdPercent = 80
	}
	return float64(a.Utilization()) >= thresholdPercent
}

// Utilization is the single formula used everywhere for budget consumption:
// round(spent/allocated*100) when allocated > 0, else 0.
func Utilization(spent, allocated float64) int {
	if allocated <= 0 {
		return 0
	}
	return int(math.Round(spent / allocated * 100))
}
