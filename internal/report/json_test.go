package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mubendiran/cloudinsight/internal/config"
)

func TestJSONReporter_Generate(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONReporter{Writer: &buf}).Generate(sampleData()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	for _, key := range []string{
		"timestamp", "cost_summary", "log_summary", "log_health_status",
		"health_score", "health_reason", "log_levels", "trend", "alerts",
		"cost_breakdown", "recommendations", "detailed_analysis", "metadata",
	} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("payload missing key %q", key)
		}
	}

	if decoded["health_score"].(float64) != 100 {
		t.Fatalf("unexpected health_score: %v", decoded["health_score"])
	}
	if decoded["log_health_status"].(string) != "Healthy" {
		t.Fatalf("unexpected log_health_status: %v", decoded["log_health_status"])
	}
}

func TestBuildDashboardConfig(t *testing.T) {
	cfg := config.Default()
	cfg.General.ProjectName = "Cloud Insight"
	cfg.LogAnalysis.DataSources = []config.LogSource{
		{Path: "data/nested/app.log", Type: "application"},
		{Path: "security.log", Type: "security"},
	}
	cfg.CostAnalysis.Thresholds.CostIncreaseAlertPercent = 15
	cfg.LogAnalysis.Thresholds.MaxErrorCount = 15

	now := time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC)
	dc := BuildDashboardConfig(&cfg, "1.2.3", now)

	wantFiles := []string{"app.log", "security.log"}
	if len(dc.AnalysisConfig.LogFilesToAnalyze) != 2 {
		t.Fatalf("expected 2 log files, got %v", dc.AnalysisConfig.LogFilesToAnalyze)
	}
	for i, want := range wantFiles {
		if dc.AnalysisConfig.LogFilesToAnalyze[i] != want {
			t.Fatalf("expected file %q, got %q", want, dc.AnalysisConfig.LogFilesToAnalyze[i])
		}
	}
	if dc.AnalysisConfig.AbnormalThresholds.CostIncreasePercentage != 15 {
		t.Fatalf("unexpected cost threshold %d", dc.AnalysisConfig.AbnormalThresholds.CostIncreasePercentage)
	}
	if dc.AnalysisConfig.AbnormalThresholds.CriticalLogCount != 15 {
		t.Fatalf("unexpected log threshold %d", dc.AnalysisConfig.AbnormalThresholds.CriticalLogCount)
	}
	if dc.ProjectInfo.Name != "Cloud Insight" || dc.ProjectInfo.Version != "1.2.3" {
		t.Fatalf("unexpected project info %+v", dc.ProjectInfo)
	}
	if dc.ProjectInfo.LastUpdated != "2025-01-15T09:30:00Z" {
		t.Fatalf("unexpected last_updated %q", dc.ProjectInfo.LastUpdated)
	}
}

func TestBuildDashboardConfig_DefaultWatchList(t *testing.T) {
	cfg := config.Default()
	cfg.CostAnalysis.MonitorServices = nil

	dc := BuildDashboardConfig(&cfg, "dev", time.Now())

	if len(dc.AnalysisConfig.CostCategoriesToWatch) == 0 {
		t.Fatal("expected a default watch list")
	}
	if dc.AnalysisConfig.CostCategoriesToWatch[0] != "EC2" {
		t.Fatalf("unexpected watch list %v", dc.AnalysisConfig.CostCategoriesToWatch)
	}
}

func TestWriteDashboardConfig_ValidJSON(t *testing.T) {
	cfg := config.Default()

	var buf bytes.Buffer
	if err := WriteDashboardConfig(&buf, &cfg, "dev", time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if !strings.Contains(buf.String(), "analysis_config") {
		t.Fatalf("missing analysis_config section:\n%s", buf.String())
	}
}
