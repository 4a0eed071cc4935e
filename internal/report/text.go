package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mubendiran/cloudinsight/internal/cost"
	"github.com/mubendiran/cloudinsight/internal/enrich"
)

const rule = "================================================================================"

// TextReporter writes the human-readable analysis report.
type TextReporter struct {
	Writer io.Writer
}

// Generate renders the full text report.
func (r *TextReporter) Generate(data Data) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n%s - ANALYSIS REPORT\n%s\n\n", rule, strings.ToUpper(data.ProjectName), rule)
	fmt.Fprintf(&b, "Generated: %s\n", data.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "Report ID: %s\n\n", data.GeneratedAt.UTC().Format("20060102-150405"))

	writeAlertSection(&b, data)
	writeCostSection(&b, data)
	writeLogSection(&b, data)
	writeRecommendationSection(&b, data)

	fmt.Fprintf(&b, "%s\nEND OF REPORT\n%s\n", rule, rule)

	_, err := io.WriteString(r.Writer, b.String())
	if err != nil {
		return fmt.Errorf("write text report: %w", err)
	}
	return nil
}

func writeAlertSection(b *strings.Builder, data Data) {
	if len(data.Alerts) == 0 {
		return
	}
	fmt.Fprintf(b, "%s\nALERT SUMMARY - %d ALERT(S) DETECTED\n%s\n\n", rule, len(data.Alerts), rule)
	for _, a := range data.Alerts {
		fmt.Fprintf(b, "  [%s] %s\n", strings.ToUpper(string(a.Severity)), a.Message)
	}
	b.WriteString("\n")
}

func writeCostSection(b *strings.Builder, data Data) {
	fmt.Fprintf(b, "%s\nSECTION 1: COST ANALYSIS\n%s\n\n", rule, rule)
	fmt.Fprintf(b, "Total Services Analyzed: %d\n", data.Cost.TotalServices)
	fmt.Fprintf(b, "Date Range: %s\n\n", formatDateRange(data.Cost.DateRange))

	b.WriteString("--- Cost Summary by Service ---\n")
	if len(data.Cost.Services) == 0 {
		b.WriteString("  No cost data available\n")
	}
	for _, svc := range data.Cost.Services {
		fmt.Fprintf(b, "  - %s: $%.2f\n", svc.Service, svc.TotalCost)
	}

	b.WriteString("\n--- Cost Trends ---\n")
	for _, svc := range trendOrder(data.Cost) {
		writeTrendLine(b, svc)
	}

	b.WriteString("\n--- Cost Insights ---\n")
	writeInsights(b, data.CostInsights)
	b.WriteString("\n")
}

func writeLogSection(b *strings.Builder, data Data) {
	fmt.Fprintf(b, "%s\nSECTION 2: LOG ANALYSIS\n%s\n\n", rule, rule)
	fmt.Fprintf(b, "Total Log Entries: %d\n", data.Logs.TotalEntries)
	fmt.Fprintf(b, "Health: %s (score %d)\n", data.Health.Status, data.Health.Score)
	fmt.Fprintf(b, "Health Detail: %s\n\n", data.Health.Reason())

	b.WriteString("--- Severity Distribution ---\n")
	fmt.Fprintf(b, "Errors: %d (%.1f%%)\n", data.Logs.ErrorCount, data.Logs.ErrorPercentage)
	fmt.Fprintf(b, "Warnings: %d (%.1f%%)\n", data.Logs.WarningCount, data.Logs.WarningPercentage)
	fmt.Fprintf(b, "Info: %d (%.1f%%)\n", data.Logs.InfoCount, data.Logs.InfoPercentage)

	b.WriteString("\n--- Top Issues ---\n")
	issues := TopIssues(data.Logs)
	if len(issues) == 0 {
		b.WriteString("  No significant issues detected\n")
	}
	for i, issue := range issues {
		if i == 10 {
			break
		}
		fmt.Fprintf(b, "  - %s: %d occurrences\n", issue.Name, issue.Count)
	}

	b.WriteString("\n--- Log Insights ---\n")
	writeInsights(b, data.LogInsights)
	b.WriteString("\n")
}

func writeRecommendationSection(b *strings.Builder, data Data) {
	fmt.Fprintf(b, "%s\nSECTION 3: RECOMMENDATIONS\n%s\n\n", rule, rule)
	for _, rec := range Recommendations(data) {
		fmt.Fprintf(b, "  - %s\n", rec)
	}
	b.WriteString("\n")
}

func writeInsights(b *strings.Builder, insights enrich.Insights) {
	if len(insights.KeyPhrases) == 0 {
		b.WriteString("  No key phrases detected\n")
	}
	for i, p := range insights.KeyPhrases {
		if i == 10 {
			break
		}
		fmt.Fprintf(b, "  - %s (confidence: %.1f%%)\n", p.Text, p.Score*100)
	}

	if insights.Sentiment.Overall == "" {
		b.WriteString("  No sentiment analysis available\n")
		return
	}
	fmt.Fprintf(b, "  Sentiment: %s (positive %.1f%%, negative %.1f%%, neutral %.1f%%, mixed %.1f%%)\n",
		insights.Sentiment.Overall,
		insights.Sentiment.Positive*100,
		insights.Sentiment.Negative*100,
		insights.Sentiment.Neutral*100,
		insights.Sentiment.Mixed*100)
}

func writeTrendLine(b *strings.Builder, svc cost.ServiceSummary) {
	t := svc.Trend
	switch t.Direction {
	case cost.TrendIncreasing:
		fmt.Fprintf(b, "  - %s: Increasing %.1f%% ($%.2f to $%.2f)\n", svc.Service, t.ChangePercent, t.FirstCost, t.LastCost)
	case cost.TrendDecreasing:
		fmt.Fprintf(b, "  - %s: Decreasing %.1f%% ($%.2f to $%.2f)\n", svc.Service, t.ChangePercent, t.FirstCost, t.LastCost)
	default:
		fmt.Fprintf(b, "  - %s: Stable (change %.1f%%)\n", svc.Service, t.ChangePercent)
	}
}

// trendOrder lists services alphabetically for the trends section.
func trendOrder(sum cost.Summary) []cost.ServiceSummary {
	ordered := make([]cost.ServiceSummary, len(sum.Services))
	copy(ordered, sum.Services)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Service < ordered[j].Service })
	return ordered
}

func formatDateRange(dr cost.DateRange) string {
	if dr.Start == "" || dr.End == "" {
		return "n/a"
	}
	return fmt.Sprintf("%s to %s", dr.Start, dr.End)
}
