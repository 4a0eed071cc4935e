package logs

// Log severity levels as they appear in the bracketed line token. The
// comparison is case-sensitive: a lowercase "error" is an unrecognized
// level that counts toward the total only.
const (
	LevelError   = "ERROR"
	LevelWarning = "WARNING"
	LevelInfo    = "INFO"
)

// Source is a normalized log input descriptor.
type Source struct {
	Path        string
	Type        string
	Description string
}

// Entry is one parsed log line tagged with its origin.
type Entry struct {
	Timestamp string
	Level     string
	Message   string
	Source    string
	Type      string
}

// Pattern buckets log messages by case-insensitive keyword match.
type Pattern struct {
	Name     string
	Keywords []string
}

// Summary holds aggregated log statistics across all sources.
type Summary struct {
	TotalEntries      int            `json:"total_entries"`
	ErrorCount        int            `json:"error_count"`
	WarningCount      int            `json:"warning_count"`
	InfoCount         int            `json:"info_count"`
	ErrorPercentage   float64        `json:"error_percentage"`
	WarningPercentage float64        `json:"warning_percentage"`
	InfoPercentage    float64        `json:"info_percentage"`
	SourceBreakdown   map[string]int `json:"source_breakdown"`
	PatternCounts     map[string]int `json:"pattern_counts"`
}

// DefaultPatterns returns the built-in issue patterns used when none are
// configured.
func DefaultPatterns() []Pattern {
	return []Pattern{
		{Name: "Connection Issues", Keywords: []string{"connection", "timeout", "unreachable"}},
		{Name: "Permission Errors", Keywords: []string{"AccessDenied", "permission", "unauthorized"}},
		{Name: "Resource Limits", Keywords: []string{"memory", "disk", "throughput", "limit exceeded"}},
	}
}
