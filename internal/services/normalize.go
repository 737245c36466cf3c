package services

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/yungbote/codetrack-backend/internal/clients/codeforces"
	"github.com/yungbote/codetrack-backend/internal/types"
)

// NormalizeProblems reduces a handle's raw submission log to one Problem per
// unique problem id. Only accepted submissions count; when the same problem
// was accepted more than once, the earliest solve wins. Ties keep the entry
// seen first in fetch order, so the fold is deterministic for a given input.
func NormalizeProblems(studentID uuid.UUID, subs []codeforces.Submission) []*types.Problem {
	earliest := make(map[string]codeforces.Submission)
	for _, sub := range subs {
		if sub.Verdict != types.VerdictOK {
			continue
		}
		existing, ok := earliest[sub.ProblemID]
		if !ok || sub.SolvedAt.Before(existing.SolvedAt) {
			earliest[sub.ProblemID] = sub
		}
	}

	ids := make([]string, 0, len(earliest))
	for id := range earliest {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]*types.Problem, 0, len(ids))
	for _, id := range ids {
		sub := earliest[id]
		out = append(out, &types.Problem{
			StudentID: studentID,
			ProblemID: sub.ProblemID,
			Name:      sub.Name,
			Rating:    sub.Rating,
			SolvedAt:  sub.SolvedAt,
			Verdict:   sub.Verdict,
			ContestID: sub.ContestID,
		})
	}
	return out
}

// NormalizeContests maps rating changes one-to-one onto Contest rows. The
// source guarantees at most one entry per contest per handle, so there is no
// dedup here.
func NormalizeContests(studentID uuid.UUID, changes []codeforces.RatingChange) []*types.Contest {
	out := make([]*types.Contest, 0, len(changes))
	for _, change := range changes {
		name := change.Name
		if name == "" {
			name = fmt.Sprintf("Contest %s", change.ContestID)
		}
		out = append(out, &types.Contest{
			StudentID:    studentID,
			ContestID:    change.ContestID,
			Name:         name,
			Date:         change.Date,
			Rank:         change.Rank,
			RatingChange: change.NewRating - change.OldRating,
			NewRating:    change.NewRating,
		})
	}
	return out
}
