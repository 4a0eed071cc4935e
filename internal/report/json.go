package report

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/mubendiran/cloudinsight/internal/config"
)

// JSONReporter writes the dashboard payload as indented JSON.
type JSONReporter struct {
	Writer io.Writer
}

// Generate encodes the assembled payload.
func (r *JSONReporter) Generate(data Data) error {
	enc := json.NewEncoder(r.Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(BuildPayload(data)); err != nil {
		return fmt.Errorf("encode JSON report: %w", err)
	}
	return nil
}

// WriteDashboardConfig encodes the dashboard config payload as indented JSON.
func WriteDashboardConfig(w io.Writer, cfg *config.Config, version string, now time.Time) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(BuildDashboardConfig(cfg, version, now)); err != nil {
		return fmt.Errorf("encode dashboard config: %w", err)
	}
	return nil
}

// DashboardConfig mirrors the analysis configuration for dashboard display.
type DashboardConfig struct {
	AnalysisConfig AnalysisConfig `json:"analysis_config"`
	ProjectInfo    ProjectInfo    `json:"project_info"`
}

// AnalysisConfig lists what the run watches and its alert thresholds.
type AnalysisConfig struct {
	LogFilesToAnalyze     []string           `json:"log_files_to_analyze"`
	CostCategoriesToWatch []string           `json:"cost_categories_to_watch"`
	AbnormalThresholds    AbnormalThresholds `json:"abnormal_thresholds"`
}

// AbnormalThresholds is the dashboard's simplified threshold view.
type AbnormalThresholds struct {
	CostIncreasePercentage int `json:"cost_increase_percentage"`
	CriticalLogCount       int `json:"critical_log_count"`
}

// ProjectInfo identifies the producing project.
type ProjectInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	LastUpdated string `json:"last_updated"`
}

// BuildDashboardConfig derives the dashboard config payload from the loaded
// configuration.
func BuildDashboardConfig(cfg *config.Config, version string, now time.Time) DashboardConfig {
	logFiles := make([]string, 0, len(cfg.LogAnalysis.DataSources))
	for _, src := range cfg.LogAnalysis.DataSources {
		logFiles = append(logFiles, filepath.Base(src.Path))
	}

	services := cfg.CostAnalysis.MonitorServices
	if len(services) == 0 {
		services = []string{"EC2", "RDS", "S3", "Lambda", "DynamoDB"}
	}

	return DashboardConfig{
		AnalysisConfig: AnalysisConfig{
			LogFilesToAnalyze:     logFiles,
			CostCategoriesToWatch: services,
			AbnormalThresholds: AbnormalThresholds{
				CostIncreasePercentage: int(cfg.CostAnalysis.Thresholds.CostIncreaseAlertPercent),
				CriticalLogCount:       cfg.LogAnalysis.Thresholds.MaxErrorCount,
			},
		},
		ProjectInfo: ProjectInfo{
			Name:        cfg.General.ProjectName,
			Version:     version,
			LastUpdated: now.UTC().Format(time.RFC3339),
		},
	}
}
