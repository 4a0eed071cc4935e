package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds cloudinsight configuration loaded from config.yaml.
// The value is built once at startup (file + environment overrides) and
// passed by reference into every component; nothing mutates it afterwards.
type Config struct {
	General       General       `yaml:"general"`
	CostAnalysis  CostAnalysis  `yaml:"cost_analysis"`
	LogAnalysis   LogAnalysis   `yaml:"log_analysis"`
	Comprehend    Comprehend    `yaml:"comprehend"`
	Storage       Storage       `yaml:"storage"`
	Notifications Notifications `yaml:"notifications"`
	Metrics       Metrics       `yaml:"metrics"`
}

// General holds project-wide settings.
type General struct {
	ProjectName      string `yaml:"project_name"`
	ReportFilename   string `yaml:"report_filename"`
	EnableComprehend bool   `yaml:"enable_comprehend"`
}

// CostAnalysis configures the cost aggregation stage.
type CostAnalysis struct {
	Enabled         bool           `yaml:"enabled"`
	DataSources     []string       `yaml:"data_sources"`
	Thresholds      CostThresholds `yaml:"thresholds"`
	MonitorServices []string       `yaml:"monitor_services"`
}

// CostThresholds holds alerting thresholds for cost metrics.
type CostThresholds struct {
	CostIncreaseAlertPercent float64 `yaml:"cost_increase_alert_percent"`
	HighCostServicePercent   float64 `yaml:"high_cost_service_percent"`
	StableRangePercent       float64 `yaml:"stable_range_percent"`
}

// LogAnalysis configures the log aggregation stage.
type LogAnalysis struct {
	Enabled       bool           `yaml:"enabled"`
	DataSources   []LogSource    `yaml:"data_sources"`
	Thresholds    LogThresholds  `yaml:"thresholds"`
	ErrorPatterns []ErrorPattern `yaml:"error_patterns"`
}

// LogSource describes one log input. Sources may be written in YAML either
// as a bare path string or as a mapping; both decode into this normalized
// form so the aggregator never branches on shape.
type LogSource struct {
	Path        string `yaml:"path"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
}

// UnmarshalYAML accepts both `- data/logs.txt` and the structured form.
func (s *LogSource) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var path string
		if err := value.Decode(&path); err != nil {
			return err
		}
		*s = LogSource{Path: path, Type: "application", Description: path}
		return nil
	}

	type plain LogSource
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	if p.Type == "" {
		p.Type = "application"
	}
	if p.Description == "" {
		p.Description = p.Path
	}
	*s = LogSource(p)
	return nil
}

// LogThresholds holds alerting thresholds for log metrics.
type LogThresholds struct {
	MaxErrorRatePercent float64 `yaml:"max_error_rate_percent"`
	MaxErrorCount       int     `yaml:"max_error_count"`
	MaxWarningCount     int     `yaml:"max_warning_count"`
}

// ErrorPattern names a bucket of issues matched by message keywords.
type ErrorPattern struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Comprehend configures the NLP enrichment stage.
type Comprehend struct {
	Region string `yaml:"region"`
}

// Storage configures report artifact uploads.
type Storage struct {
	S3Bucket      string `yaml:"s3_bucket"`
	UseDatePrefix bool   `yaml:"use_date_prefix"`
}

// Notifications configures report delivery channels.
type Notifications struct {
	Enabled            bool  `yaml:"enabled"`
	NotifyOnlyOnAlerts bool  `yaml:"notify_only_on_alerts"`
	Email              Email `yaml:"email"`
	Slack              Slack `yaml:"slack"`
}

// Email configures SES delivery.
type Email struct {
	Enabled           bool     `yaml:"enabled"`
	Sender            string   `yaml:"sender"`
	Recipients        []string `yaml:"recipients"`
	SubjectPrefix     string   `yaml:"subject_prefix"`
	IncludeFullReport bool     `yaml:"include_full_report"`
}

// Slack configures webhook delivery.
type Slack struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// Metrics configures optional CloudWatch custom metrics for run outcomes.
type Metrics struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// Default returns the built-in configuration used when no file is present.
func Default() Config {
	return Config{
		General: General{
			ProjectName:      "Cloud Insight",
			ReportFilename:   "final_report.txt",
			EnableComprehend: true,
		},
		CostAnalysis: CostAnalysis{
			Enabled:     true,
			DataSources: []string{"data/cost.json"},
			Thresholds: CostThresholds{
				CostIncreaseAlertPercent: 15.0,
				HighCostServicePercent:   30.0,
				StableRangePercent:       5.0,
			},
		},
		LogAnalysis: LogAnalysis{
			Enabled: true,
			DataSources: []LogSource{
				{Path: "data/logs.txt", Type: "application", Description: "Main logs"},
			},
			Thresholds: LogThresholds{
				MaxErrorRatePercent: 10.0,
				MaxErrorCount:       15,
				MaxWarningCount:     25,
			},
		},
		Comprehend: Comprehend{
			Region: "us-east-1",
		},
		Storage: Storage{
			UseDatePrefix: true,
		},
		Notifications: Notifications{
			Email: Email{
				SubjectPrefix:     "[Cloud Insight]",
				IncludeFullReport: true,
			},
		},
		Metrics: Metrics{
			Namespace: "CloudInsight",
		},
	}
}

// Load reads the config file at path and applies environment overrides.
// A missing file is not an error: defaults are returned instead.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

// applyEnvOverrides merges deployment environment settings over the file
// values. This is the only place the environment is consulted.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("S3_BUCKET"); v != "" {
		cfg.Storage.S3Bucket = v
	}
	if v := os.Getenv("AWS_DEFAULT_REGION"); v != "" {
		cfg.Comprehend.Region = v
	}
	if v := os.Getenv("SES_SENDER_EMAIL"); v != "" {
		cfg.Notifications.Email.Sender = v
	}
	if v := os.Getenv("SES_RECIPIENT_EMAILS"); v != "" {
		recipients := strings.Split(v, ",")
		for i := range recipients {
			recipients[i] = strings.TrimSpace(recipients[i])
		}
		cfg.Notifications.Email.Recipients = recipients
	}
	if v := os.Getenv("SLACK_WEBHOOK_URL"); v != "" {
		cfg.Notifications.Slack.WebhookURL = v
	}
}
