package health

import (
	"strings"
	"testing"
)

func TestEvaluate_Perfect(t *testing.T) {
	score := Evaluate(0, 0, 0)

	if score.Score != 100 {
		t.Fatalf("expected score 100, got %d", score.Score)
	}
	if score.Status != StatusHealthy {
		t.Fatalf("expected Healthy, got %s", score.Status)
	}
	if len(score.Reasons) != 0 {
		t.Fatalf("expected no reasons, got %v", score.Reasons)
	}
	if score.Reason() != "all metrics within normal thresholds" {
		t.Fatalf("unexpected all-clear reason: %q", score.Reason())
	}
}

func TestEvaluate_Deductions(t *testing.T) {
	tests := []struct {
		name         string
		errorRate    float64
		errorCount   int
		warningCount int
		wantScore    int
		wantStatus   Status
	}{
		{"error rate just over", 16, 0, 0, 98, StatusHealthy},
		{"error rate capped at 30", 50, 0, 0, 70, StatusDegraded},
		{"error count just over", 0, 11, 0, 99, StatusHealthy},
		{"error count capped at 20", 0, 100, 0, 80, StatusHealthy},
		{"warning count just over", 0, 0, 22, 99, StatusHealthy},
		{"warning count capped at 15", 0, 0, 500, 85, StatusHealthy},
		{"exact boundaries do not deduct", 15, 10, 20, 100, StatusHealthy},
		{"combined deductions", 20, 15, 30, 80, StatusHealthy},
		{"all capped", 50, 40, 100, 35, StatusCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := Evaluate(tt.errorRate, tt.errorCount, tt.warningCount)
			if score.Score != tt.wantScore {
				t.Fatalf("expected score %d, got %d", tt.wantScore, score.Score)
			}
			if score.Status != tt.wantStatus {
				t.Fatalf("expected status %s, got %s", tt.wantStatus, score.Status)
			}
		})
	}
}

func TestEvaluate_TruncatesFraction(t *testing.T) {
	// Rate 15.5 deducts (15.5-15)*2 = 1.0; 21 warnings deduct 0.5. The
	// 98.5 result truncates to 98, never rounds up.
	score := Evaluate(15.5, 0, 21)

	if score.Score != 98 {
		t.Fatalf("expected score 98, got %d", score.Score)
	}
}

func TestEvaluate_NeverNegative(t *testing.T) {
	// Max total deduction is 65, so the floor needs all three caps; the
	// clamp still guards the invariant.
	score := Evaluate(1000, 1000, 10000)

	if score.Score != 35 {
		t.Fatalf("expected score 35, got %d", score.Score)
	}
	if score.Score < 0 {
		t.Fatal("score must never be negative")
	}
}

func TestEvaluate_Reasons(t *testing.T) {
	score := Evaluate(20, 15, 30)

	if len(score.Reasons) != 3 {
		t.Fatalf("expected 3 reasons, got %v", score.Reasons)
	}
	joined := score.Reason()
	for _, want := range []string{
		"error rate 20.0% exceeds 15%",
		"15 errors exceed threshold of 10",
		"30 warnings exceed threshold of 20",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected reason %q in %q", want, joined)
		}
	}
}

func TestStatusTiers(t *testing.T) {
	tests := []struct {
		score int
		want  Status
	}{
		{100, StatusHealthy},
		{80, StatusHealthy},
		{79, StatusDegraded},
		{50, StatusDegraded},
		{49, StatusCritical},
		{0, StatusCritical},
	}

	for _, tt := range tests {
		if got := statusFor(tt.score); got != tt.want {
			t.Fatalf("statusFor(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}
