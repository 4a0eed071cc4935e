package cost

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"
)

// ErrInvalidData marks unreadable or malformed cost input. Cost data errors
// are fatal for a run: there is no meaningful report without cost data.
var ErrInvalidData = errors.New("invalid cost data")

// trendThresholdPercent separates stable from increasing/decreasing.
const trendThresholdPercent = 5.0

// LoadRecords reads cost records from the given JSON files and validates
// each record. All listed files must load; a single bad source aborts.
func LoadRecords(paths ...string) ([]Record, error) {
	var records []Record

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrInvalidData, path, err)
		}

		var batch []Record
		if err := json.Unmarshal(data, &batch); err != nil {
			return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalidData, path, err)
		}

		for i, r := range batch {
			if err := validateRecord(r); err != nil {
				return nil, fmt.Errorf("%w: %s record %d: %v", ErrInvalidData, path, i, err)
			}
		}

		slog.Info("Loaded cost records", "path", path, "count", len(batch))
		records = append(records, batch...)
	}

	return records, nil
}

func validateRecord(r Record) error {
	if r.Service == "" {
		return errors.New("missing service name")
	}
	if _, err := time.Parse(time.DateOnly, r.Date); err != nil {
		return fmt.Errorf("bad date %q", r.Date)
	}
	if r.Cost < 0 {
		return fmt.Errorf("negative cost %.2f", r.Cost)
	}
	return nil
}

// Aggregate groups records by service, sums totals, and classifies the
// first-to-last trend per service. It is a pure function of its input:
// identical records always produce an identical summary.
func Aggregate(records []Record) Summary {
	grouped := make(map[string][]DailyCost)
	var minDate, maxDate string

	for _, r := range records {
		grouped[r.Service] = append(grouped[r.Service], DailyCost{Date: r.Date, Cost: r.Cost})
		if minDate == "" || r.Date < minDate {
			minDate = r.Date
		}
		if maxDate == "" || r.Date > maxDate {
			maxDate = r.Date
		}
	}

	services := make([]ServiceSummary, 0, len(grouped))
	var totalCost float64

	for name, daily := range grouped {
		sort.Slice(daily, func(i, j int) bool { return daily[i].Date < daily[j].Date })

		var total float64
		for _, d := range daily {
			total += d.Cost
		}
		totalCost += total

		services = append(services, ServiceSummary{
			Service:   name,
			TotalCost: total,
			Daily:     daily,
			Trend:     calculateTrend(daily),
		})
	}

	sort.Slice(services, func(i, j int) bool {
		if services[i].TotalCost != services[j].TotalCost {
			return services[i].TotalCost > services[j].TotalCost
		}
		return services[i].Service < services[j].Service
	})

	return Summary{
		Services:      services,
		TotalServices: len(services),
		TotalCost:     totalCost,
		DateRange:     DateRange{Start: minDate, End: maxDate},
	}
}

// calculateTrend compares the earliest and latest daily cost. Fewer than two
// observations is always stable. A zero first cost cannot yield a meaningful
// percentage: the change is reported as 100% increasing when spend appeared,
// or stable when both ends are zero.
func calculateTrend(daily []DailyCost) Trend {
	if len(daily) < 2 {
		return Trend{Direction: TrendStable, ChangePercent: 0}
	}

	first := daily[0].Cost
	last := daily[len(daily)-1].Cost

	var change float64
	switch {
	case first == 0 && last == 0:
		change = 0
	case first == 0:
		change = 100.0
	default:
		change = (last - first) / first * 100
	}

	direction := TrendStable
	if change > trendThresholdPercent {
		direction = TrendIncreasing
	} else if change < -trendThresholdPercent {
		direction = TrendDecreasing
	}

	return Trend{
		Direction:     direction,
		ChangePercent: change,
		FirstCost:     first,
		LastCost:      last,
	}
}
