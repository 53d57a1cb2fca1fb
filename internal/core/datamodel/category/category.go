package category

// Timeframe of a budget envelope. The backend accepts both Yearly and Annual
// for the twelve-month case.
type Timeframe string

const (
	TimeframeMonthly    Timeframe = "Monthly"
	TimeframeQuarterly  Timeframe = "Quarterly"
	TimeframeYearly     Timeframe = "Yearly"
	TimeframeSemiAnnual Timeframe = "Semi-Annual"
	TimeframeAnnual     Timeframe = "Annual"
)

func (t Timeframe) IsValid() bool {
	switch t {
	case TimeframeMonthly, TimeframeQuarterly, TimeframeYearly, TimeframeSemiAnnual, TimeframeAnnual:
		return true
	}
	return false
}

// Category is a budget envelope definition independent of department.
type Category struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Limit            float64   `json:"limit"`
	Timeframe        Timeframe `json:"timeframe"`
	ThresholdPercent float64   `json:"thresholdPercent"`
}
