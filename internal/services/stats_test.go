package services

import (
	"testing"
	"time"

	"github.com/yungbote/codetrack-backend/internal/types"
)

func TestCurrentAndMaxRatingWithNoContests(t *testing.T) {
	if got := CurrentRating(nil); got != 0 {
		t.Errorf("CurrentRating(nil)=%d, want 0", got)
	}
	if got := MaxRating(nil); got != 0 {
		t.Errorf("MaxRating(nil)=%d, want 0", got)
	}
}

func TestCurrentRatingUsesChronologicallyLastContest(t *testing.T) {
	base := time.Unix(1700000000, 0).UTC()
	contests := []*types.Contest{
		{Date: base.Add(48 * time.Hour), NewRating: 1450},
		{Date: base, NewRating: 1500},
		{Date: base.Add(24 * time.Hour), NewRating: 1600},
	}

	if got := CurrentRating(contests); got != 1450 {
		t.Errorf("CurrentRating=%d, want 1450", got)
	}
	if got := MaxRating(contests); got != 1600 {
		t.Errorf("MaxRating=%d, want 1600", got)
	}
}

func TestIsActiveBoundaryIsInclusive(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	window := 7 * 24 * time.Hour

	cases := []struct {
		name     string
		solvedAt time.Time
		want     bool
	}{
		{"recent_solve", now.Add(-time.Hour), true},
		{"exactly_on_boundary", now.Add(-window), true},
		{"one_second_past_boundary", now.Add(-window - time.Second), false},
		{"ancient_solve", now.Add(-90 * 24 * time.Hour), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			problems := []*types.Problem{{SolvedAt: tc.solvedAt}}
			if got := IsActive(problems, now, window); got != tc.want {
				t.Fatalf("IsActive=%v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsActiveWithNoSolves(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	if IsActive(nil, now, 7*24*time.Hour) {
		t.Fatal("no solves should never be active")
	}
}

func TestSummarizeAverageExcludesUnratedProblems(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	problems := []*types.Problem{
		{Rating: intPtr(1200), SolvedAt: now.Add(-time.Hour)},
		{Rating: nil, SolvedAt: now.Add(-2 * time.Hour)},
		{Rating: intPtr(1600), SolvedAt: now.Add(-3 * time.Hour)},
	}

	stats := Summarize(problems, now, 30*24*time.Hour)
	if stats.AverageRating != 1400 {
		t.Errorf("average rating: got %d, want 1400", stats.AverageRating)
	}
	if stats.TotalSolved != 3 {
		t.Errorf("total solved: got %d, want 3", stats.TotalSolved)
	}
	if stats.MaxProblemRating != 1600 {
		t.Errorf("max problem rating: got %d, want 1600", stats.MaxProblemRating)
	}
}

func TestSummarizeEmptySet(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	stats := Summarize(nil, now, 30*24*time.Hour)
	if stats.TotalSolved != 0 || stats.AverageRating != 0 || stats.MaxProblemRating != 0 {
		t.Errorf("empty set should produce zero stats, got %+v", stats)
	}
	if stats.AveragePerDay != 0 {
		t.Errorf("average per day: got %f, want 0", stats.AveragePerDay)
	}
	if len(stats.RatingDistribution) != 0 {
		t.Errorf("rating distribution should be empty, got %v", stats.RatingDistribution)
	}
}

func TestSummarizeRatingDistributionBuckets(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	problems := []*types.Problem{
		{Rating: intPtr(800), SolvedAt: now},
		{Rating: intPtr(850), SolvedAt: now},
		{Rating: intPtr(899), SolvedAt: now},
		{Rating: intPtr(900), SolvedAt: now},
		{Rating: intPtr(1234), SolvedAt: now},
	}

	stats := Summarize(problems, now, 30*24*time.Hour)
	if got := stats.RatingDistribution["800-899"]; got != 3 {
		t.Errorf("bucket 800-899: got %d, want 3", got)
	}
	if got := stats.RatingDistribution["900-999"]; got != 1 {
		t.Errorf("bucket 900-999: got %d, want 1", got)
	}
	if got := stats.RatingDistribution["1200-1299"]; got != 1 {
		t.Errorf("bucket 1200-1299: got %d, want 1", got)
	}
}

func TestSummarizeAveragePerDayHonorsWindow(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	problems := []*types.Problem{
		{SolvedAt: now.Add(-24 * time.Hour)},
		{SolvedAt: now.Add(-48 * time.Hour)},
		{SolvedAt: now.Add(-40 * 24 * time.Hour)}, // outside a 30-day window
	}

	stats := Summarize(problems, now, 30*24*time.Hour)
	want := 2.0 / 30.0
	if diff := stats.AveragePerDay - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("average per day: got %f, want %f", stats.AveragePerDay, want)
	}

	// A caller-selected 60-day window picks up the older solve too.
	stats = Summarize(problems, now, 60*24*time.Hour)
	want = 3.0 / 60.0
	if diff := stats.AveragePerDay - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("average per day (60d): got %f, want %f", stats.AveragePerDay, want)
	}
}
