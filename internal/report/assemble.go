package report

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/mubendiran/cloudinsight/internal/cost"
	"github.com/mubendiran/cloudinsight/internal/enrich"
	"github.com/mubendiran/cloudinsight/internal/logs"
)

// analysisVersion tags the payload schema for the dashboard.
const analysisVersion = "1.0"

// maxRecommendations caps the dashboard recommendation list.
const maxRecommendations = 10

// highCostSharePercent is the spend share above which a service earns a
// standing optimization recommendation.
const highCostSharePercent = 30.0

// BuildPayload assembles the dashboard payload. It is a pure function of
// data: inputs are never mutated and identical data yields an identical
// payload.
func BuildPayload(data Data) Payload {
	return Payload{
		Timestamp:       data.GeneratedAt.UTC().Format(time.RFC3339),
		CostSummary:     CostSummaryText(data.Cost),
		LogSummary:      LogSummaryText(data.Logs),
		LogHealthStatus: string(data.Health.Status),
		HealthScore:     data.Health.Score,
		HealthReason:    data.Health.Reason(),
		LogLevels: LogLevels{
			Error:   data.Logs.ErrorCount,
			Warning: data.Logs.WarningCount,
			Info:    data.Logs.InfoCount,
		},
		Trend:           errorTrend(data.Logs.ErrorPercentage),
		Alerts:          data.Alerts,
		CostBreakdown:   CostBreakdown(data.Cost),
		Recommendations: Recommendations(data),
		DetailedAnalysis: DetailedAnalysis{
			CostBreakdown: CostDetail{
				ByService: serviceTotals(data.Cost),
				DateRange: data.Cost.DateRange,
			},
			LogPatterns: LogDetail{
				TopIssues: TopIssues(data.Logs),
				ErrorDistribution: LogLevels{
					Error:   data.Logs.ErrorCount,
					Warning: data.Logs.WarningCount,
					Info:    data.Logs.InfoCount,
				},
			},
			AIInsights: buildAIInsights(data),
		},
		Metadata: Metadata{
			AnalysisVersion:   analysisVersion,
			DataSources:       data.DataSources,
			ComprehendEnabled: data.ComprehendEnabled,
		},
	}
}

// CostSummaryText builds the one-line cost summary: total plus top three
// services by spend.
func CostSummaryText(sum cost.Summary) string {
	parts := []string{fmt.Sprintf("Total: $%.2f", sum.TotalCost)}
	for i, svc := range sum.Services {
		if i == 3 {
			break
		}
		parts = append(parts, fmt.Sprintf("%s: $%.2f", svc.Service, svc.TotalCost))
	}
	return strings.Join(parts, ", ")
}

// LogSummaryText builds the one-line log summary.
func LogSummaryText(sum logs.Summary) string {
	return fmt.Sprintf("%d entries, %d errors, %d warnings",
		sum.TotalEntries, sum.ErrorCount, sum.WarningCount)
}

// CostBreakdown converts the cost summary into dashboard rows, preserving
// the summary's cost-descending order.
func CostBreakdown(sum cost.Summary) []BreakdownEntry {
	entries := make([]BreakdownEntry, 0, len(sum.Services))
	for _, svc := range sum.Services {
		var pct float64
		if sum.TotalCost > 0 {
			pct = svc.TotalCost / sum.TotalCost * 100
		}
		entries = append(entries, BreakdownEntry{
			Service:        svc.Service,
			Cost:           svc.TotalCost,
			Percentage:     pct,
			TrendDirection: string(svc.Trend.Direction),
		})
	}
	return entries
}

// TopIssues returns pattern counts ordered by count descending, ties broken
// by name.
func TopIssues(sum logs.Summary) []IssueCount {
	issues := make([]IssueCount, 0, len(sum.PatternCounts))
	for name, count := range sum.PatternCounts {
		issues = append(issues, IssueCount{Name: name, Count: count})
	}
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Count != issues[j].Count {
			return issues[i].Count > issues[j].Count
		}
		return issues[i].Name < issues[j].Name
	})
	return issues
}

// Recommendations derives the action list: one entry per alert, one per
// service over the high-cost share, one per sharply increasing service,
// entries for breached log thresholds, and a no-action fallback.
func Recommendations(data Data) []string {
	var recs []string

	for _, a := range data.Alerts {
		recs = append(recs, fmt.Sprintf("Address %s %s alert: %s", a.Severity, a.Category, a.Message))
	}

	for _, svc := range data.Cost.Services {
		if data.Cost.TotalCost <= 0 {
			break
		}
		share := svc.TotalCost / data.Cost.TotalCost * 100
		if share > highCostSharePercent {
			recs = append(recs, fmt.Sprintf(
				"%s accounts for %.1f%% of total costs - consider reserved instances or savings plans",
				svc.Service, share))
		}
	}

	for _, svc := range data.Cost.Services {
		if svc.Trend.Direction == cost.TrendIncreasing && svc.Trend.ChangePercent > 10 {
			recs = append(recs, fmt.Sprintf(
				"Review %s usage - costs increased by %.1f%% and may need optimization",
				svc.Service, svc.Trend.ChangePercent))
		}
	}

	if data.Logs.ErrorCount > data.Thresholds.MaxErrorCount {
		recs = append(recs, fmt.Sprintf(
			"Investigate %d errors exceeding the threshold of %d",
			data.Logs.ErrorCount, data.Thresholds.MaxErrorCount))
	}
	if data.Logs.WarningCount > data.Thresholds.MaxWarningCount {
		recs = append(recs, fmt.Sprintf(
			"Review %d warnings exceeding the threshold of %d",
			data.Logs.WarningCount, data.Thresholds.MaxWarningCount))
	}

	if len(recs) == 0 {
		recs = append(recs, "No action needed - all metrics within expected ranges")
	}

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

// errorTrend maps the error rate onto the dashboard's up/down/neutral
// indicator. "up" is the bad direction.
func errorTrend(errorRate float64) string {
	switch {
	case errorRate > 15:
		return "up"
	case errorRate < 5:
		return "down"
	default:
		return "neutral"
	}
}

func serviceTotals(sum cost.Summary) map[string]float64 {
	totals := make(map[string]float64, len(sum.Services))
	for _, svc := range sum.Services {
		totals[svc.Service] = svc.TotalCost
	}
	return totals
}

func buildAIInsights(data Data) AIInsights {
	insights := AIInsights{
		CostKeyPhrases: topPhrases(data.CostInsights.KeyPhrases, 5),
		CostSentiment:  sentimentOrNeutral(data.CostInsights.Sentiment.Overall),
		LogKeyPhrases:  topPhrases(data.LogInsights.KeyPhrases, 5),
		LogSentiment:   sentimentOrNeutral(data.LogInsights.Sentiment.Overall),
	}
	for i, e := range data.LogInsights.Entities {
		if i == 5 {
			break
		}
		insights.Entities = append(insights.Entities, EntityInsight{
			Text:       e.Text,
			Type:       e.Type,
			Confidence: round1(e.Score * 100),
		})
	}
	return insights
}

func topPhrases(phrases []enrich.KeyPhrase, n int) []string {
	var out []string
	for i, p := range phrases {
		if i == n {
			break
		}
		out = append(out, p.Text)
	}
	return out
}

func sentimentOrNeutral(s string) string {
	if s == "" {
		return "NEUTRAL"
	}
	return s
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
