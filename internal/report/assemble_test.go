package report

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/mubendiran/cloudinsight/internal/alert"
	"github.com/mubendiran/cloudinsight/internal/cost"
	"github.com/mubendiran/cloudinsight/internal/enrich"
	"github.com/mubendiran/cloudinsight/internal/health"
	"github.com/mubendiran/cloudinsight/internal/logs"
)

func sampleData() Data {
	return Data{
		ProjectName: "Cloud Insight",
		Version:     "1.0.0",
		GeneratedAt: time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC),
		Cost: cost.Summary{
			Services: []cost.ServiceSummary{
				{
					Service:   "EC2",
					TotalCost: 230,
					Trend:     cost.Trend{Direction: cost.TrendIncreasing, ChangePercent: 30, FirstCost: 100, LastCost: 130},
				},
				{
					Service:   "RDS",
					TotalCost: 70,
					Trend:     cost.Trend{Direction: cost.TrendStable, ChangePercent: 2},
				},
			},
			TotalServices: 2,
			TotalCost:     300,
			DateRange:     cost.DateRange{Start: "2025-01-01", End: "2025-01-05"},
		},
		Logs: logs.Summary{
			TotalEntries:      100,
			ErrorCount:        8,
			WarningCount:      12,
			InfoCount:         80,
			ErrorPercentage:   8,
			WarningPercentage: 12,
			InfoPercentage:    80,
			SourceBreakdown:   map[string]int{"application": 100},
			PatternCounts:     map[string]int{"Connection Issues": 5, "Resource Limits": 5, "Permission Errors": 2},
		},
		Health: health.Score{Score: 100, Status: health.StatusHealthy},
		Thresholds: alert.Thresholds{
			HighCostServicePercent: 30,
			MaxErrorCount:          15,
			MaxWarningCount:        25,
			MaxErrorRatePercent:    10,
		},
		DataSources:       []string{"cost.json", "app.log"},
		ComprehendEnabled: true,
	}
}

func TestBuildPayload_Fields(t *testing.T) {
	data := sampleData()

	payload := BuildPayload(data)

	if payload.Timestamp != "2025-01-15T09:30:00Z" {
		t.Fatalf("unexpected timestamp %q", payload.Timestamp)
	}
	if payload.CostSummary != "Total: $300.00, EC2: $230.00, RDS: $70.00" {
		t.Fatalf("unexpected cost summary %q", payload.CostSummary)
	}
	if payload.LogSummary != "100 entries, 8 errors, 12 warnings" {
		t.Fatalf("unexpected log summary %q", payload.LogSummary)
	}
	if payload.LogHealthStatus != "Healthy" || payload.HealthScore != 100 {
		t.Fatalf("unexpected health fields: %q %d", payload.LogHealthStatus, payload.HealthScore)
	}
	if payload.HealthReason != "all metrics within normal thresholds" {
		t.Fatalf("unexpected health reason %q", payload.HealthReason)
	}
	if payload.LogLevels != (LogLevels{Error: 8, Warning: 12, Info: 80}) {
		t.Fatalf("unexpected log levels %+v", payload.LogLevels)
	}
	if payload.Trend != "neutral" {
		t.Fatalf("unexpected trend %q", payload.Trend)
	}
	if payload.Metadata.AnalysisVersion != "1.0" || !payload.Metadata.ComprehendEnabled {
		t.Fatalf("unexpected metadata %+v", payload.Metadata)
	}
	if payload.DetailedAnalysis.CostBreakdown.ByService["EC2"] != 230 {
		t.Fatalf("unexpected by_service totals %+v", payload.DetailedAnalysis.CostBreakdown.ByService)
	}
	if payload.DetailedAnalysis.CostBreakdown.DateRange.Start != "2025-01-01" {
		t.Fatalf("unexpected date range %+v", payload.DetailedAnalysis.CostBreakdown.DateRange)
	}
}

func TestBuildPayload_Pure(t *testing.T) {
	data := sampleData()

	first := BuildPayload(data)
	second := BuildPayload(data)

	if !reflect.DeepEqual(first, second) {
		t.Fatal("expected identical payloads for identical data")
	}
}

func TestCostBreakdown_Percentages(t *testing.T) {
	data := sampleData()

	rows := CostBreakdown(data.Cost)

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Service != "EC2" || rows[0].Percentage < 76.6 || rows[0].Percentage > 76.7 {
		t.Fatalf("unexpected first row %+v", rows[0])
	}
	if rows[0].TrendDirection != "increasing" {
		t.Fatalf("unexpected trend direction %q", rows[0].TrendDirection)
	}
}

func TestCostBreakdown_ZeroTotal(t *testing.T) {
	rows := CostBreakdown(cost.Summary{
		Services: []cost.ServiceSummary{{Service: "Lambda", TotalCost: 0}},
	})

	if rows[0].Percentage != 0 {
		t.Fatalf("expected 0 percentage with zero total, got %f", rows[0].Percentage)
	}
}

func TestTopIssues_Ordering(t *testing.T) {
	sum := logs.Summary{
		PatternCounts: map[string]int{
			"Resource Limits":   5,
			"Connection Issues": 5,
			"Permission Errors": 9,
		},
	}

	issues := TopIssues(sum)

	want := []IssueCount{
		{Name: "Permission Errors", Count: 9},
		{Name: "Connection Issues", Count: 5},
		{Name: "Resource Limits", Count: 5},
	}
	if !reflect.DeepEqual(issues, want) {
		t.Fatalf("expected %+v, got %+v", want, issues)
	}
}

func TestRecommendations_FromAlerts(t *testing.T) {
	data := sampleData()
	data.Alerts = []alert.Alert{
		{Severity: alert.SeverityCritical, Category: alert.CategoryLogs, Message: "20 errors detected (threshold: 15)"},
	}

	recs := Recommendations(data)

	if recs[0] != "Address critical logs alert: 20 errors detected (threshold: 15)" {
		t.Fatalf("unexpected first recommendation %q", recs[0])
	}
}

func TestRecommendations_HighCostShareAndTrend(t *testing.T) {
	data := sampleData()

	recs := Recommendations(data)

	var foundShare, foundTrend bool
	for _, r := range recs {
		if r == "EC2 accounts for 76.7% of total costs - consider reserved instances or savings plans" {
			foundShare = true
		}
		if r == "Review EC2 usage - costs increased by 30.0% and may need optimization" {
			foundTrend = true
		}
	}
	if !foundShare || !foundTrend {
		t.Fatalf("missing expected recommendations: %v", recs)
	}
}

func TestRecommendations_LogThresholds(t *testing.T) {
	data := sampleData()
	data.Cost = cost.Summary{}
	data.Logs.ErrorCount = 20
	data.Logs.WarningCount = 30

	recs := Recommendations(data)

	var foundErrors, foundWarnings bool
	for _, r := range recs {
		if r == "Investigate 20 errors exceeding the threshold of 15" {
			foundErrors = true
		}
		if r == "Review 30 warnings exceeding the threshold of 25" {
			foundWarnings = true
		}
	}
	if !foundErrors || !foundWarnings {
		t.Fatalf("missing log threshold recommendations: %v", recs)
	}
}

func TestRecommendations_Fallback(t *testing.T) {
	data := Data{}

	recs := Recommendations(data)

	if len(recs) != 1 || recs[0] != "No action needed - all metrics within expected ranges" {
		t.Fatalf("expected fallback recommendation, got %v", recs)
	}
}

func TestRecommendations_Capped(t *testing.T) {
	data := Data{}
	for i := 0; i < 15; i++ {
		data.Alerts = append(data.Alerts, alert.Alert{
			Severity: alert.SeverityLow,
			Category: alert.CategoryLogs,
			Message:  "noise",
		})
	}

	recs := Recommendations(data)

	if len(recs) != 10 {
		t.Fatalf("expected 10 recommendations, got %d", len(recs))
	}
}

func TestErrorTrend(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{20, "up"},
		{15, "neutral"},
		{10, "neutral"},
		{5, "neutral"},
		{4.9, "down"},
		{0, "down"},
	}

	for _, tt := range tests {
		if got := errorTrend(tt.rate); got != tt.want {
			t.Fatalf("errorTrend(%f) = %q, want %q", tt.rate, got, tt.want)
		}
	}
}

func TestBuildAIInsights_Limits(t *testing.T) {
	data := Data{}
	for i := 0; i < 8; i++ {
		data.LogInsights.KeyPhrases = append(data.LogInsights.KeyPhrases, enrich.KeyPhrase{Text: "phrase", Score: 0.9})
		data.LogInsights.Entities = append(data.LogInsights.Entities, enrich.Entity{Text: "EC2", Type: "OTHER", Score: 0.987})
	}

	insights := buildAIInsights(data)

	if len(insights.LogKeyPhrases) != 5 {
		t.Fatalf("expected 5 key phrases, got %d", len(insights.LogKeyPhrases))
	}
	if len(insights.Entities) != 5 {
		t.Fatalf("expected 5 entities, got %d", len(insights.Entities))
	}
	if insights.Entities[0].Confidence != 98.7 {
		t.Fatalf("expected confidence 98.7, got %f", insights.Entities[0].Confidence)
	}
	if insights.CostSentiment != "NEUTRAL" || insights.LogSentiment != "NEUTRAL" {
		t.Fatalf("expected NEUTRAL fallback sentiment, got %+v", insights)
	}
}

func TestCostSummaryText_TopThree(t *testing.T) {
	sum := cost.Summary{
		Services: []cost.ServiceSummary{
			{Service: "EC2", TotalCost: 40},
			{Service: "RDS", TotalCost: 30},
			{Service: "S3", TotalCost: 20},
			{Service: "Lambda", TotalCost: 10},
		},
		TotalCost: 100,
	}

	got := CostSummaryText(sum)

	if strings.Contains(got, "Lambda") {
		t.Fatalf("expected only top three services, got %q", got)
	}
	if !strings.HasPrefix(got, "Total: $100.00, EC2: $40.00") {
		t.Fatalf("unexpected summary %q", got)
	}
}
