package commands

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mubendiran/cloudinsight/internal/alert"
	"github.com/mubendiran/cloudinsight/internal/aws"
	"github.com/mubendiran/cloudinsight/internal/config"
	"github.com/mubendiran/cloudinsight/internal/cost"
	"github.com/mubendiran/cloudinsight/internal/enrich"
	"github.com/mubendiran/cloudinsight/internal/health"
	"github.com/mubendiran/cloudinsight/internal/logs"
	"github.com/mubendiran/cloudinsight/internal/metrics"
	"github.com/mubendiran/cloudinsight/internal/notify"
	"github.com/mubendiran/cloudinsight/internal/report"
	"github.com/mubendiran/cloudinsight/internal/storage"
)

const (
	jsonReportFilename      = "final_report.json"
	dashboardConfigFilename = "config.json"
)

var analyzeFlags struct {
	outputDir  string
	timeout    time.Duration
	skipUpload bool
	skipNotify bool
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full cost and log analysis pipeline",
	Long: `Analyze loads cost records and log sources, aggregates them into summaries,
evaluates alert thresholds and the health score, and writes the text and
JSON reports. Configured delivery (S3 upload, email, Slack) runs last.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFlags.outputDir, "output-dir", "o", ".", "Directory for report artifacts")
	analyzeCmd.Flags().DurationVar(&analyzeFlags.timeout, "timeout", 5*time.Minute, "Overall run timeout")
	analyzeCmd.Flags().BoolVar(&analyzeFlags.skipUpload, "skip-upload", false, "Skip the S3 upload step")
	analyzeCmd.Flags().BoolVar(&analyzeFlags.skipNotify, "skip-notify", false, "Skip the notification step")
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if analyzeFlags.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, analyzeFlags.timeout)
		defer cancel()
	}

	now := time.Now().UTC()

	// Stage 1: cost aggregation. Cost data errors are fatal: there is no
	// meaningful report without cost data.
	var costSum cost.Summary
	if cfg.CostAnalysis.Enabled {
		records, err := cost.LoadRecords(cfg.CostAnalysis.DataSources...)
		if err != nil {
			return enhanceError("load cost data", err)
		}
		costSum = cost.Aggregate(records)
		slog.Info("Cost analysis complete", "services", costSum.TotalServices, "total", costSum.TotalCost)
	}

	// Stage 2: log aggregation. Per-source failures degrade inside the
	// aggregator; an all-zero summary is still a valid pipeline input.
	var logSum logs.Summary
	if cfg.LogAnalysis.Enabled {
		agg := logs.NewAggregator(logSources(&cfg), logPatterns(&cfg))
		logSum = agg.Analyze()
		slog.Info("Log analysis complete", "entries", logSum.TotalEntries, "errors", logSum.ErrorCount)
	}

	// Stage 3: alerts and health score, pure computation over the summaries.
	thresholds := alertThresholds(&cfg)
	alerts := alert.Evaluate(costSum, logSum, thresholds)
	score := health.Evaluate(logSum.ErrorPercentage, logSum.ErrorCount, logSum.WarningCount)
	slog.Info("Evaluation complete", "alerts", len(alerts), "health_score", score.Score, "status", score.Status)

	// Stage 4: optional NLP enrichment; failures degrade to empty insights.
	var costInsights, logInsights enrich.Insights
	var awsClient *aws.Client
	if needsAWS() {
		client, err := aws.NewClient(ctx, profile, cfg.Comprehend.Region)
		if err != nil {
			return enhanceError("initialize AWS client", err)
		}
		awsClient = client
	}
	if cfg.General.EnableComprehend && awsClient != nil {
		enricher := enrich.NewClient(awsClient.Config())
		costInsights = enricher.AnalyzeText(ctx, report.CostNarrative(costSum))
		logInsights = enricher.AnalyzeText(ctx, report.LogNarrative(logSum))
	} else {
		slog.Info("Enrichment disabled, skipping")
	}

	// Stage 5: assemble and render reports.
	data := report.Data{
		ProjectName:       cfg.General.ProjectName,
		Version:           version,
		GeneratedAt:       now,
		Cost:              costSum,
		Logs:              logSum,
		Alerts:            alerts,
		Health:            score,
		Thresholds:        thresholds,
		CostInsights:      costInsights,
		LogInsights:       logInsights,
		DataSources:       dataSourceLabels(&cfg),
		ComprehendEnabled: cfg.General.EnableComprehend,
	}

	var textBuf bytes.Buffer
	if err := (&report.TextReporter{Writer: &textBuf}).Generate(data); err != nil {
		return fmt.Errorf("generate text report: %w", err)
	}

	var jsonBuf bytes.Buffer
	if err := (&report.JSONReporter{Writer: &jsonBuf}).Generate(data); err != nil {
		return fmt.Errorf("generate JSON report: %w", err)
	}

	var configBuf bytes.Buffer
	if err := report.WriteDashboardConfig(&configBuf, &cfg, version, now); err != nil {
		return fmt.Errorf("generate dashboard config: %w", err)
	}

	if err := writeArtifacts(textBuf.Bytes(), jsonBuf.Bytes(), configBuf.Bytes()); err != nil {
		return err
	}

	// Stage 6: delivery. The report is fully written before anything is
	// published; a delivery failure fails the run but never corrupts it.
	if err := deliver(ctx, awsClient, textBuf.Bytes(), jsonBuf.Bytes(), configBuf.Bytes(), data); err != nil {
		return err
	}

	fmt.Printf("Analysis complete: %d service(s), %d log entries, %d alert(s), health %s (%d)\n",
		costSum.TotalServices, logSum.TotalEntries, len(alerts), score.Status, score.Score)
	return nil
}

func writeArtifacts(text, jsonReport, dashConfig []byte) error {
	if err := os.MkdirAll(analyzeFlags.outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	files := map[string][]byte{
		cfg.General.ReportFilename: text,
		jsonReportFilename:         jsonReport,
		dashboardConfigFilename:    dashConfig,
	}
	for name, content := range files {
		path := filepath.Join(analyzeFlags.outputDir, name)
		if err := os.WriteFile(path, content, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		slog.Info("Wrote report artifact", "path", path)
	}
	return nil
}

func deliver(ctx context.Context, awsClient *aws.Client, text, jsonReport, dashConfig []byte, data report.Data) error {
	if cfg.Storage.S3Bucket != "" && !analyzeFlags.skipUpload && awsClient != nil {
		uploader := storage.NewUploader(awsClient.Config(), cfg.Storage.S3Bucket, cfg.Storage.UseDatePrefix)
		artifacts := []storage.Artifact{
			{Key: cfg.General.ReportFilename, Body: text, ContentType: "text/plain"},
			{Key: jsonReportFilename, Body: jsonReport, ContentType: "application/json"},
			{Key: dashboardConfigFilename, Body: dashConfig, ContentType: "application/json"},
		}
		if err := uploader.UploadAll(ctx, artifacts); err != nil {
			return enhanceError("upload reports", err)
		}
	}

	if cfg.Metrics.Enabled && awsClient != nil {
		publisher := metrics.NewPublisher(awsClient.Config(), cfg.Metrics.Namespace)
		run := metrics.RunMetrics{
			HealthScore:  data.Health.Score,
			ErrorCount:   data.Logs.ErrorCount,
			WarningCount: data.Logs.WarningCount,
			TotalCost:    data.Cost.TotalCost,
			AlertCount:   len(data.Alerts),
		}
		if err := publisher.Publish(ctx, run, data.GeneratedAt); err != nil {
			return enhanceError("publish metrics", err)
		}
	}

	if cfg.Notifications.Enabled && !analyzeFlags.skipNotify && awsClient != nil {
		notifier := notify.NewNotifier(awsClient.Config(), cfg.Notifications)
		if err := notifier.Send(ctx, string(text), data.Alerts, data.GeneratedAt); err != nil {
			return enhanceError("send notifications", err)
		}
	}

	return nil
}

// needsAWS reports whether any enabled stage talks to AWS.
func needsAWS() bool {
	if cfg.General.EnableComprehend {
		return true
	}
	if cfg.Storage.S3Bucket != "" && !analyzeFlags.skipUpload {
		return true
	}
	if cfg.Metrics.Enabled {
		return true
	}
	if cfg.Notifications.Enabled && cfg.Notifications.Email.Enabled && !analyzeFlags.skipNotify {
		return true
	}
	return false
}

func logSources(c *config.Config) []logs.Source {
	sources := make([]logs.Source, 0, len(c.LogAnalysis.DataSources))
	for _, s := range c.LogAnalysis.DataSources {
		sources = append(sources, logs.Source{Path: s.Path, Type: s.Type, Description: s.Description})
	}
	return sources
}

func logPatterns(c *config.Config) []logs.Pattern {
	patterns := make([]logs.Pattern, 0, len(c.LogAnalysis.ErrorPatterns))
	for _, p := range c.LogAnalysis.ErrorPatterns {
		patterns = append(patterns, logs.Pattern{Name: p.Name, Keywords: p.Keywords})
	}
	return patterns
}

func alertThresholds(c *config.Config) alert.Thresholds {
	return alert.Thresholds{
		CostIncreaseAlertPercent: c.CostAnalysis.Thresholds.CostIncreaseAlertPercent,
		HighCostServicePercent:   c.CostAnalysis.Thresholds.HighCostServicePercent,
		MaxErrorCount:            c.LogAnalysis.Thresholds.MaxErrorCount,
		MaxWarningCount:          c.LogAnalysis.Thresholds.MaxWarningCount,
		MaxErrorRatePercent:      c.LogAnalysis.Thresholds.MaxErrorRatePercent,
	}
}

func dataSourceLabels(c *config.Config) []string {
	var labels []string
	for _, s := range c.CostAnalysis.DataSources {
		labels = append(labels, fmt.Sprintf("Cost: %s", s))
	}
	for _, s := range c.LogAnalysis.DataSources {
		labels = append(labels, fmt.Sprintf("Log (%s): %s", s.Type, s.Path))
	}
	return labels
}
