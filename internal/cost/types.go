package cost

// TrendDirection classifies how a service's spend moved between the first
// and last observed day.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// Record is a single billing event from the cost feed.
type Record struct {
	Service string  `json:"service"`
	Date    string  `json:"date"` // YYYY-MM-DD
	Cost    float64 `json:"cost"`
}

// DailyCost is one dated cost observation within a service summary.
type DailyCost struct {
	Date string  `json:"date"`
	Cost float64 `json:"cost"`
}

// Trend describes the first-to-last change for one service.
type Trend struct {
	Direction     TrendDirection `json:"direction"`
	ChangePercent float64        `json:"change_percent"`
	FirstCost     float64        `json:"first_cost"`
	LastCost      float64        `json:"last_cost"`
}

// ServiceSummary holds aggregated spend for one service. Daily is sorted
// by date ascending and TotalCost is the sum of its entries.
type ServiceSummary struct {
	Service   string      `json:"service"`
	TotalCost float64     `json:"total_cost"`
	Daily     []DailyCost `json:"daily_costs"`
	Trend     Trend       `json:"trend"`
}

// DateRange is the min/max date across all records. Both fields are empty
// when no records were seen.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Summary is the full output of cost aggregation. Services is ordered by
// total cost descending (ties broken by name) so downstream consumers see
// a deterministic order.
type Summary struct {
	Services      []ServiceSummary `json:"services"`
	TotalServices int              `json:"total_services"`
	TotalCost     float64          `json:"total_cost"`
	DateRange     DateRange        `json:"date_range"`
}

// ServiceTotal returns the total cost for a named service, or 0 if the
// service was not observed.
func (s Summary) ServiceTotal(name string) float64 {
	for _, svc := range s.Services {
		if svc.Service == name {
			return svc.TotalCost
		}
	}
	return 0
}
