package quiz

import (
	"context"
	"math"
)

// ComputeStats aggregates accuracy over every progress row the user has,
// not just the latest answer per question.
func ComputeStats(ctx context.Context, store Store, userID int64) (Stats, error) {
	rows, err := store.ProgressByUser(ctx, userID)
	if err != nil {
		return Stats{}, err
	}

	st := Stats{Total: len(rows)}
	for _, p := range rows {
		if p.IsCorrect {
			st.Correct++
		}
	}
	st.Wrong = st.Total - st.Correct
	if st.Total > 0 {
		st.Percentage = round2(float64(st.Correct) / float64(st.Total) * 100)
	}
	return st, nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
