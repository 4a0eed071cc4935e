package alert

import (
	"fmt"

	"github.com/mubendiran/cloudinsight/internal/cost"
	"github.com/mubendiran/cloudinsight/internal/logs"
)

// Severity ranks an alert.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Category identifies which analysis produced an alert.
type Category string

const (
	CategoryCost Category = "cost"
	CategoryLogs Category = "logs"
)

// Alert is a threshold-violation event, recomputed fresh each run.
type Alert struct {
	Severity Severity `json:"severity"`
	Category Category `json:"category"`
	Message  string   `json:"message"`
}

// Thresholds holds the recognized alerting options.
type Thresholds struct {
	CostIncreaseAlertPercent float64
	HighCostServicePercent   float64
	MaxErrorCount            int
	MaxWarningCount          int
	MaxErrorRatePercent      float64
}

// Evaluate applies thresholds to the aggregated summaries. The order is
// fixed: cost alerts first (services in the summary's deterministic order),
// then error count, warning count, and error rate, so identical input
// always yields identical alert ordering. All comparisons are strict.
func Evaluate(costSum cost.Summary, logSum logs.Summary, th Thresholds) []Alert {
	var alerts []Alert

	for _, svc := range costSum.Services {
		var pct float64
		if costSum.TotalCost > 0 {
			pct = svc.TotalCost / costSum.TotalCost * 100
		}
		if pct > th.HighCostServicePercent {
			alerts = append(alerts, Alert{
				Severity: SeverityHigh,
				Category: CategoryCost,
				Message:  fmt.Sprintf("%s accounts for %.1f%% of total costs ($%.2f)", svc.Service, pct, svc.TotalCost),
			})
		}
	}

	if logSum.ErrorCount > th.MaxErrorCount {
		alerts = append(alerts, Alert{
			Severity: SeverityCritical,
			Category: CategoryLogs,
			Message:  fmt.Sprintf("%d errors detected (threshold: %d)", logSum.ErrorCount, th.MaxErrorCount),
		})
	}

	if logSum.WarningCount > th.MaxWarningCount {
		alerts = append(alerts, Alert{
			Severity: SeverityMedium,
			Category: CategoryLogs,
			Message:  fmt.Sprintf("%d warnings detected (threshold: %d)", logSum.WarningCount, th.MaxWarningCount),
		})
	}

	if logSum.ErrorPercentage > th.MaxErrorRatePercent {
		alerts = append(alerts, Alert{
			Severity: SeverityHigh,
			Category: CategoryLogs,
			Message:  fmt.Sprintf("Error rate at %.1f%% (threshold: %.1f%%)", logSum.ErrorPercentage, th.MaxErrorRatePercent),
		})
	}

	return alerts
}
