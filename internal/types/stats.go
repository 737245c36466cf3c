package types

// Statistics is the derived per-student summary computed by the aggregator.
// A snapshot of it is persisted on Student.Stats at commit time; on-demand
// progress views recompute it with a caller-selected trailing window.
type Statistics struct {
	TotalSolved        int            `json:"total_solved"`
	AverageRating      int            `json:"average_rating"`
	AveragePerDay      float64        `json:"average_per_day"`
	MaxProblemRating   int            `json:"max_problem_rating"`
	RatingDistribution map[string]int `json:"rating_distribution"`
}
