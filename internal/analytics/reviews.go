package analytics

// ReviewSummary holds the review-score distribution with its mode and
// mean. Scores are discrete ordinals; no specific range is assumed.
type ReviewSummary struct {
	Scores []Frequency[int] `json:"scores"`
	Mode   int              `json:"most_common_score"`
	Mean   float64          `json:"mean_score"`
}

// ReviewScores counts occurrences of each submitted review score, sorted
// descending by count. Rows without a review are excluded entirely; an
// absent score is not a zero. Returns ErrNoMode when no row in the table
// carries a review, since there is nothing to take a mode or mean of.
func ReviewScores(t Table) (*ReviewSummary, error) {
	scores := make([]int, 0, len(t))
	var sum int
	for _, row := range t {
		if row.ReviewScore == nil {
			continue
		}
		scores = append(scores, *row.ReviewScore)
		sum += *row.ReviewScore
	}

	freqs := tally(scores)
	mode, err := modeOf(freqs)
	if err != nil {
		return nil, err
	}

	return &ReviewSummary{
		Scores: freqs,
		Mode:   mode,
		Mean:   float64(sum) / float64(len(scores)),
	}, nil
}
