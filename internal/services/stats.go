package services

import (
	"fmt"
	"math"
	"time"

	"github.com/yungbote/codetrack-backend/internal/types"
)

// The aggregator is pure computation over normalized collections. Policy
// durations (activity window, per-day window) are parameters so callers can
// externalize them as configuration and tests can pin them down.

// CurrentRating is the new rating of the chronologically last contest, or 0
// when the student has no rated contests.
func CurrentRating(contests []*types.Contest) int {
	var last *types.Contest
	for _, c := range contests {
		if last == nil || c.Date.After(last.Date) {
			last = c
		}
	}
	if last == nil {
		return 0
	}
	return last.NewRating
}

// MaxRating is the maximum rating ever observed across contests, or 0 when
// there are none. It is monotonic over a single sync's data and is never
// backwards-corrected from partial data.
func MaxRating(contests []*types.Contest) int {
	max := 0
	for _, c := range contests {
		if c.NewRating > max {
			max = c.NewRating
		}
	}
	return max
}

// IsActive reports whether at least one solve falls within the trailing
// window relative to now. The boundary is inclusive: a solve exactly window
// old still counts as active.
func IsActive(problems []*types.Problem, now time.Time, window time.Duration) bool {
	for _, p := range problems {
		if now.Sub(p.SolvedAt) <= window {
			return true
		}
	}
	return false
}

// Summarize derives the distribution and throughput statistics for a solved
// set. Average and max ratings only consider problems with a known rating;
// averagePerDay counts solves inside the trailing perDayWindow.
func Summarize(problems []*types.Problem, now time.Time, perDayWindow time.Duration) types.Statistics {
	stats := types.Statistics{
		TotalSolved:        len(problems),
		RatingDistribution: map[string]int{},
	}

	ratingSum := 0
	ratedCount := 0
	recent := 0
	windowStart := now.Add(-perDayWindow)

	for _, p := range problems {
		if p.Rating != nil {
			ratingSum += *p.Rating
			ratedCount++
			if *p.Rating > stats.MaxProblemRating {
				stats.MaxProblemRating = *p.Rating
			}
			bucket := (*p.Rating / 100) * 100
			key := fmt.Sprintf("%d-%d", bucket, bucket+99)
			stats.RatingDistribution[key]++
		}
		if !p.SolvedAt.Before(windowStart) {
			recent++
		}
	}

	if ratedCount > 0 {
		stats.AverageRating = int(math.Round(float64(ratingSum) / float64(ratedCount)))
	}

	days := perDayWindow.Hours() / 24
	if days > 0 {
		stats.AveragePerDay = float64(recent) / days
	}

	return stats
}
