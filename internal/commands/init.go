package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initFlags struct {
	force bool
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate sample config and IAM policy",
	Long:  `Creates a sample config.yaml and an IAM policy JSON file covering the AWS permissions the analyzer uses.`,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initFlags.force, "force", false, "Overwrite existing files")
}

func runInit(_ *cobra.Command, _ []string) error {
	configFile := "config.yaml"
	policyFile := "cloudinsight-policy.json"

	if err := writeIfNotExists(configFile, sampleConfig, initFlags.force); err != nil {
		return err
	}
	if err := writeIfNotExists(policyFile, sampleIAMPolicy, initFlags.force); err != nil {
		return err
	}

	fmt.Printf("Created %s and %s\n", configFile, policyFile)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit config.yaml to point at your cost and log data sources")
	fmt.Println("  2. Apply cloudinsight-policy.json to your AWS IAM role/user")
	fmt.Println("  3. Run: cloudinsight analyze")
	return nil
}

func writeIfNotExists(path, content string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("Skipping %s (already exists, use --force to overwrite)\n", path)
			return nil
		}
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return os.WriteFile(path, []byte(content), 0o644)
}

const sampleConfig = `# cloudinsight configuration

general:
  project_name: "Cloud Insight"
  report_filename: final_report.txt
  enable_comprehend: true

cost_analysis:
  enabled: true
  data_sources:
    - data/cost.json
  thresholds:
    cost_increase_alert_percent: 15.0
    high_cost_service_percent: 30.0
    stable_range_percent: 5.0
  # monitor_services:
  #   - EC2
  #   - RDS
  #   - S3

log_analysis:
  enabled: true
  data_sources:
    - path: data/logs.txt
      type: application
      description: Main application logs
    # Bare paths work too:
    # - data/security-logs.txt
  thresholds:
    max_error_rate_percent: 10.0
    max_error_count: 15
    max_warning_count: 25
  # error_patterns:
  #   - name: Connection Issues
  #     keywords: [connection, timeout, unreachable]

comprehend:
  region: us-east-1

storage:
  # s3_bucket: my-report-bucket   # or set S3_BUCKET
  use_date_prefix: true

notifications:
  enabled: false
  notify_only_on_alerts: false
  email:
    enabled: false
    # sender: reports@example.com     # or set SES_SENDER_EMAIL
    # recipients: [ops@example.com]   # or set SES_RECIPIENT_EMAILS
    subject_prefix: "[Cloud Insight]"
    include_full_report: true
  slack:
    enabled: false
    # webhook_url: https://hooks.slack.com/services/...   # or SLACK_WEBHOOK_URL

metrics:
  enabled: false
  namespace: CloudInsight
`

const sampleIAMPolicy = `{
  "Version": "2012-10-17",
  "Statement": [
    {
      "Sid": "CloudInsightPublish",
      "Effect": "Allow",
      "Action": [
        "s3:PutObject",
        "ses:SendEmail",
        "comprehend:DetectKeyPhrases",
        "comprehend:DetectSentiment",
        "comprehend:DetectEntities",
        "cloudwatch:PutMetricData"
      ],
      "Resource": "*"
    }
  ]
}
`
