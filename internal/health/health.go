package health

import (
	"fmt"
	"strings"
)

// Status is the health tier derived from the score.
type Status string

const (
	StatusHealthy  Status = "Healthy"  // score >= 80
	StatusDegraded Status = "Degraded" // 50 <= score < 80
	StatusCritical Status = "Critical" // score < 50
)

// allClearReason is reported when no deduction applied.
const allClearReason = "all metrics within normal thresholds"

// Score is a 0-100 operational health summary with deduction reasons.
type Score struct {
	Score   int      `json:"score"`
	Status  Status   `json:"status"`
	Reasons []string `json:"reasons,omitempty"`
}

// Reason joins the deduction reasons for display, or the all-clear
// sentinel when nothing was deducted.
func (s Score) Reason() string {
	if len(s.Reasons) == 0 {
		return allClearReason
	}
	return strings.Join(s.Reasons, "; ")
}

// Evaluate converts log metrics into a health score. Deductions apply in a
// fixed order so the reasons list is reproducible; the final score is
// clamped at zero and truncated to an integer.
func Evaluate(errorRate float64, errorCount, warningCount int) Score {
	score := 100.0
	var reasons []string

	if errorRate > 15 {
		deduction := (errorRate - 15) * 2
		if deduction > 30 {
			deduction = 30
		}
		score -= deduction
		reasons = append(reasons, fmt.Sprintf("error rate %.1f%% exceeds 15%%", errorRate))
	}

	if errorCount > 10 {
		deduction := float64(errorCount - 10)
		if deduction > 20 {
			deduction = 20
		}
		score -= deduction
		reasons = append(reasons, fmt.Sprintf("%d errors exceed threshold of 10", errorCount))
	}

	if warningCount > 20 {
		deduction := float64(warningCount-20) * 0.5
		if deduction > 15 {
			deduction = 15
		}
		score -= deduction
		reasons = append(reasons, fmt.Sprintf("%d warnings exceed threshold of 20", warningCount))
	}

	if score < 0 {
		score = 0
	}

	final := int(score)
	return Score{
		Score:   final,
		Status:  statusFor(final),
		Reasons: reasons,
	}
}

func statusFor(score int) Status {
	switch {
	case score >= 80:
		return StatusHealthy
	case score >= 50:
		return StatusDegraded
	default:
		return StatusCritical
	}
}
