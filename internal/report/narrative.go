package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mubendiran/cloudinsight/internal/cost"
	"github.com/mubendiran/cloudinsight/internal/logs"
)

// CostNarrative renders the cost summary as natural language for NLP
// enrichment.
func CostNarrative(sum cost.Summary) string {
	if sum.TotalServices == 0 {
		return "No cost data available for analysis"
	}

	top := sum.Services[0]

	var increasing, decreasing []string
	for _, svc := range sum.Services {
		switch svc.Trend.Direction {
		case cost.TrendIncreasing:
			increasing = append(increasing, svc.Service)
		case cost.TrendDecreasing:
			decreasing = append(decreasing, svc.Service)
		}
	}

	increasingNames := "none"
	if len(increasing) > 0 {
		if len(increasing) > 3 {
			increasing = increasing[:3]
		}
		increasingNames = strings.Join(increasing, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Cost analysis reveals a total expenditure of $%.2f across %d services between %s and %s. ",
		sum.TotalCost, sum.TotalServices, sum.DateRange.Start, sum.DateRange.End)
	fmt.Fprintf(&b, "The highest cost service is %s with $%.2f in total spending. ",
		top.Service, top.TotalCost)
	fmt.Fprintf(&b, "%d services are experiencing cost increases, including %s. ",
		len(increasing), increasingNames)
	fmt.Fprintf(&b, "%d services show decreasing costs.", len(decreasing))
	return b.String()
}

// LogNarrative renders the log summary as natural language for NLP
// enrichment.
func LogNarrative(sum logs.Summary) string {
	if sum.TotalEntries == 0 {
		return "No log data available for analysis"
	}

	srcTypes := make([]string, 0, len(sum.SourceBreakdown))
	for srcType := range sum.SourceBreakdown {
		srcTypes = append(srcTypes, srcType)
	}
	sort.Strings(srcTypes)

	sourceParts := make([]string, 0, len(srcTypes))
	for _, srcType := range srcTypes {
		sourceParts = append(sourceParts, fmt.Sprintf("%d %s logs", sum.SourceBreakdown[srcType], srcType))
	}

	topIssue := "none"
	topCount := 0
	if issues := TopIssues(sum); len(issues) > 0 {
		topIssue = issues[0].Name
		topCount = issues[0].Count
	}

	var b strings.Builder
	fmt.Fprintf(&b, "System log analysis across multiple sources reveals %d log entries with %d errors and %d warnings detected. ",
		sum.TotalEntries, sum.ErrorCount, sum.WarningCount)
	fmt.Fprintf(&b, "The error rate of %.1f%% indicates system stability levels requiring review. ",
		sum.ErrorPercentage)
	fmt.Fprintf(&b, "Log sources analyzed: %s. ", strings.Join(sourceParts, ", "))
	fmt.Fprintf(&b, "The most common problem category is %s with %d occurrences.", topIssue, topCount)
	return b.String()
}
