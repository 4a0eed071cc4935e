package report

import (
	"time"

	"github.com/mubendiran/cloudinsight/internal/alert"
	"github.com/mubendiran/cloudinsight/internal/cost"
	"github.com/mubendiran/cloudinsight/internal/enrich"
	"github.com/mubendiran/cloudinsight/internal/health"
	"github.com/mubendiran/cloudinsight/internal/logs"
)

// Data is everything the reporters need to render a run. It is assembled
// once after all analysis stages complete and never mutated.
type Data struct {
	ProjectName       string
	Version           string
	GeneratedAt       time.Time
	Cost              cost.Summary
	Logs              logs.Summary
	Alerts            []alert.Alert
	Health            health.Score
	Thresholds        alert.Thresholds
	CostInsights      enrich.Insights
	LogInsights       enrich.Insights
	DataSources       []string
	ComprehendEnabled bool
}

// Reporter renders report data to some output.
type Reporter interface {
	Generate(data Data) error
}

// LogLevels is the severity count section of the dashboard payload.
type LogLevels struct {
	Error   int `json:"error"`
	Warning int `json:"warning"`
	Info    int `json:"info"`
}

// BreakdownEntry is one row of the per-service cost breakdown.
type BreakdownEntry struct {
	Service        string  `json:"service"`
	Cost           float64 `json:"cost"`
	Percentage     float64 `json:"percentage"`
	TrendDirection string  `json:"trend_direction"`
}

// DetailedAnalysis is the expanded dashboard view.
type DetailedAnalysis struct {
	CostBreakdown CostDetail `json:"cost_breakdown"`
	LogPatterns   LogDetail  `json:"log_patterns"`
	AIInsights    AIInsights `json:"ai_insights"`
}

// CostDetail carries per-service totals and the analyzed date range.
type CostDetail struct {
	ByService map[string]float64 `json:"by_service"`
	DateRange cost.DateRange     `json:"date_range"`
}

// LogDetail carries issue patterns and the severity distribution.
type LogDetail struct {
	TopIssues         []IssueCount `json:"top_issues"`
	ErrorDistribution LogLevels    `json:"error_distribution"`
}

// IssueCount is one issue pattern with its occurrence count.
type IssueCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// AIInsights summarizes enrichment output for the dashboard.
type AIInsights struct {
	CostKeyPhrases []string        `json:"cost_key_phrases"`
	CostSentiment  string          `json:"cost_sentiment"`
	LogKeyPhrases  []string        `json:"log_key_phrases"`
	LogSentiment   string          `json:"log_sentiment"`
	Entities       []EntityInsight `json:"entities_detected"`
}

// EntityInsight is one detected entity with confidence as a percentage.
type EntityInsight struct {
	Text       string  `json:"text"`
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
}

// Metadata describes how the payload was produced.
type Metadata struct {
	AnalysisVersion   string   `json:"analysis_version"`
	DataSources       []string `json:"data_sources"`
	ComprehendEnabled bool     `json:"comprehend_enabled"`
}

// Payload is the structured report handed to the dashboard. Field names are
// an internal contract between this package and the frontend.
type Payload struct {
	Timestamp        string           `json:"timestamp"`
	CostSummary      string           `json:"cost_summary"`
	LogSummary       string           `json:"log_summary"`
	LogHealthStatus  string           `json:"log_health_status"`
	HealthScore      int              `json:"health_score"`
	HealthReason     string           `json:"health_reason"`
	LogLevels        LogLevels        `json:"log_levels"`
	Trend            string           `json:"trend"`
	Alerts           []alert.Alert    `json:"alerts"`
	CostBreakdown    []BreakdownEntry `json:"cost_breakdown"`
	Recommendations  []string         `json:"recommendations"`
	DetailedAnalysis DetailedAnalysis `json:"detailed_analysis"`
	Metadata         Metadata         `json:"metadata"`
}
