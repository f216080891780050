package analytics_test

import (
	"errors"
	"testing"

	"github.com/shoplens/shoplens/internal/analytics"
)

func reviewFact(orderID string, reviewScore *int) analytics.OrderFact {
	f := fact(orderID, "c1", approved("2017-06-01"))
	f.ReviewScore = reviewScore
	return f
}

func TestReviewScores(t *testing.T) {
	table := analytics.Table{
		reviewFact("o1", score(5)),
		reviewFact("o2", score(5)),
		reviewFact("o3", score(1)),
		reviewFact("o4", nil),
	}

	summary, err := analytics.ReviewScores(table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Mode != 5 {
		t.Errorf("mode: got %d, want 5", summary.Mode)
	}
	if len(summary.Scores) != 2 {
		t.Errorf("buckets: got %d, want 2 (nil scores excluded)", len(summary.Scores))
	}

	// (5+5+1)/3, the unreviewed row contributes nothing.
	want := 11.0 / 3.0
	if summary.Mean != want {
		t.Errorf("mean: got %v, want %v", summary.Mean, want)
	}
}

func TestReviewScoresNoReviews(t *testing.T) {
	table := analytics.Table{
		reviewFact("o1", nil),
		reviewFact("o2", nil),
	}

	if _, err := analytics.ReviewScores(table); !errors.Is(err, analytics.ErrNoMode) {
		t.Errorf("got %v, want ErrNoMode", err)
	}
}

func TestReviewScoresModeTieBreak(t *testing.T) {
	table := analytics.Table{
		reviewFact("o1", score(4)),
		reviewFact("o2", score(2)),
	}

	summary, err := analytics.ReviewScores(table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Mode != 2 {
		t.Errorf("tied counts should resolve to the lowest score, got %d", summary.Mode)
	}
}
