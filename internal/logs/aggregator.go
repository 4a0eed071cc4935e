package logs

import (
	"bufio"
	"log/slog"
	"os"
	"regexp"
	"strings"
)

// linePattern matches `YYYY-MM-DD HH:MM:SS [LEVEL] message`. Lines that do
// not match are dropped without counting or erroring.
var linePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}\s+\d{2}:\d{2}:\d{2})\s+\[(\w+)\]\s+(.*)`)

// Aggregator reads log sources in configured order and produces a Summary.
type Aggregator struct {
	sources  []Source
	patterns []Pattern
}

// NewAggregator creates an aggregator over the given sources. If patterns
// is empty the built-in defaults are used.
func NewAggregator(sources []Source, patterns []Pattern) *Aggregator {
	if len(patterns) == 0 {
		patterns = DefaultPatterns()
	}
	return &Aggregator{sources: sources, patterns: patterns}
}

// Analyze loads every source and aggregates severity counts, per-source-type
// counts, and issue pattern counts. A missing or unreadable source is
// skipped with a warning; if nothing loads, an all-zero summary is returned
// so downstream stages still produce a report.
func (a *Aggregator) Analyze() Summary {
	entries := a.loadEntries()
	if len(entries) == 0 {
		slog.Warn("No log entries to analyze")
		return emptySummary()
	}

	summary := Summary{
		TotalEntries:    len(entries),
		SourceBreakdown: make(map[string]int),
		PatternCounts:   make(map[string]int),
	}

	for _, e := range entries {
		summary.SourceBreakdown[e.Type]++

		switch e.Level {
		case LevelError:
			summary.ErrorCount++
		case LevelWarning:
			summary.WarningCount++
		case LevelInfo:
			summary.InfoCount++
		}

		if e.Level == LevelError || e.Level == LevelWarning {
			if name, ok := a.matchPattern(e.Message); ok {
				summary.PatternCounts[name]++
			}
		}
	}

	total := float64(summary.TotalEntries)
	summary.ErrorPercentage = float64(summary.ErrorCount) / total * 100
	summary.WarningPercentage = float64(summary.WarningCount) / total * 100
	summary.InfoPercentage = float64(summary.InfoCount) / total * 100

	return summary
}

// loadEntries reads all sources in order, parsing each line. Order is
// stable: sources as configured, lines as they appear in the file.
func (a *Aggregator) loadEntries() []Entry {
	var entries []Entry

	for _, src := range a.sources {
		f, err := os.Open(src.Path)
		if err != nil {
			slog.Warn("Skipping log source", "path", src.Path, "error", err)
			continue
		}

		count := 0
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			entry, ok := parseLine(scanner.Text())
			if !ok {
				continue
			}
			entry.Source = src.Path
			entry.Type = src.Type
			entries = append(entries, entry)
			count++
		}
		if err := scanner.Err(); err != nil {
			slog.Warn("Error reading log source", "path", src.Path, "error", err)
		}
		f.Close()

		slog.Info("Loaded log entries", "source", src.Description, "count", count)
	}

	return entries
}

// parseLine extracts timestamp, level, and message from a raw line.
func parseLine(line string) (Entry, bool) {
	m := linePattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return Entry{}, false
	}
	return Entry{Timestamp: m[1], Level: m[2], Message: m[3]}, true
}

// matchPattern attributes a message to the first configured pattern whose
// any keyword appears as a case-insensitive substring. At most one pattern
// matches per message.
func (a *Aggregator) matchPattern(message string) (string, bool) {
	lower := strings.ToLower(message)
	for _, p := range a.patterns {
		for _, kw := range p.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return p.Name, true
			}
		}
	}
	return "", false
}

func emptySummary() Summary {
	return Summary{
		SourceBreakdown: make(map[string]int),
		PatternCounts:   make(map[string]int),
	}
}
