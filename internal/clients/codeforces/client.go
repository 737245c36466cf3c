package codeforces

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yungbote/codetrack-backend/internal/logger"
	"github.com/yungbote/codetrack-backend/internal/types"
)

// Client fetches a handle's full submission log and rating-change history
// from the Codeforces API. It is purely request/response: pacing and failure
// isolation belong to the sync orchestrator, not here.
type Client interface {
	FetchHistory(ctx context.Context, handle string) ([]Submission, []RatingChange, error)
}

// Submission is a raw submission parsed into the engine's strict shape.
// Verdict is already normalized to the closed internal set.
type Submission struct {
	ProblemID string
	ContestID string
	Name      string
	Rating    *int
	Verdict   types.Verdict
	SolvedAt  time.Time
}

// RatingChange is one rated contest from the handle's rating history.
type RatingChange struct {
	ContestID string
	Name      string
	Date      time.Time
	Rank      int
	OldRating int
	NewRating int
}

// APIError carries the judge's HTTP status and API comment for a failed call.
type APIError struct {
	StatusCode int
	Comment    string
}

func (e *APIError) Error() string {
	if e == nil {
		return "codeforces: <nil error>"
	}
	comment := strings.TrimSpace(e.Comment)
	if comment == "" {
		comment = "<no comment>"
	}
	return fmt.Sprintf("codeforces http %d: %s", e.StatusCode, comment)
}

func (e *APIError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

type Config struct {
	BaseURL         string
	Timeout         time.Duration
	SubmissionCount int
}

type client struct {
	log        *logger.Logger
	cfg        Config
	httpClient *http.Client
}

func New(log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = "https://codeforces.com/api"
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.SubmissionCount <= 0 {
		cfg.SubmissionCount = 10000
	}

	return &client{
		log:        log.With("client", "CodeforcesClient"),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// --- Codeforces wire types, parsed strictly at this boundary ---

type rawProblem struct {
	ContestID int    `json:"contestId"`
	Index     string `json:"index"`
	Name      string `json:"name"`
	Rating    *int   `json:"rating"`
}

type rawSubmission struct {
	ID                  int64      `json:"id"`
	ContestID           int        `json:"contestId"`
	CreationTimeSeconds int64      `json:"creationTimeSeconds"`
	Problem             rawProblem `json:"problem"`
	Verdict             string     `json:"verdict"`
}

type userStatusResponse struct {
	Status  string          `json:"status"`
	Comment string          `json:"comment"`
	Result  []rawSubmission `json:"result"`
}

type rawRatingChange struct {
	ContestID               int    `json:"contestId"`
	ContestName             string `json:"contestName"`
	Rank                    int    `json:"rank"`
	RatingUpdateTimeSeconds int64  `json:"ratingUpdateTimeSeconds"`
	OldRating               int    `json:"oldRating"`
	NewRating               int    `json:"newRating"`
}

type userRatingResponse struct {
	Status  string            `json:"status"`
	Comment string            `json:"comment"`
	Result  []rawRatingChange `json:"result"`
}

// FetchHistory returns the handle's submissions and rating changes. A failed
// submission fetch is fatal and surfaces an *APIError; a failed rating fetch
// degrades to zero contests because solve history is the more critical half.
func (c *client) FetchHistory(ctx context.Context, handle string) ([]Submission, []RatingChange, error) {
	submissions, err := c.fetchSubmissions(ctx, handle)
	if err != nil {
		return nil, nil, err
	}

	changes, err := c.fetchRatingChanges(ctx, handle)
	if err != nil {
		c.log.Warn("Rating history fetch failed, continuing with zero contests", "handle", handle, "error", err)
		changes = nil
	}

	return submissions, changes, nil
}

func (c *client) fetchSubmissions(ctx context.Context, handle string) ([]Submission, error) {
	query := url.Values{}
	query.Set("handle", handle)
	query.Set("from", "1")
	query.Set("count", strconv.Itoa(c.cfg.SubmissionCount))

	var parsed userStatusResponse
	if err := c.getJSON(ctx, "/user.status", query, &parsed); err != nil {
		return nil, err
	}
	if parsed.Status != "OK" {
		return nil, &APIError{StatusCode: http.StatusOK, Comment: parsed.Comment}
	}

	out := make([]Submission, 0, len(parsed.Result))
	for _, raw := range parsed.Result {
		contestID := raw.ContestID
		if contestID == 0 {
			contestID = raw.Problem.ContestID
		}
		out = append(out, Submission{
			ProblemID: fmt.Sprintf("%d%s", contestID, raw.Problem.Index),
			ContestID: strconv.Itoa(contestID),
			Name:      raw.Problem.Name,
			Rating:    raw.Problem.Rating,
			Verdict:   normalizeVerdict(raw.Verdict),
			SolvedAt:  time.Unix(raw.CreationTimeSeconds, 0).UTC(),
		})
	}
	return out, nil
}

func (c *client) fetchRatingChanges(ctx context.Context, handle string) ([]RatingChange, error) {
	query := url.Values{}
	query.Set("handle", handle)

	var parsed userRatingResponse
	if err := c.getJSON(ctx, "/user.rating", query, &parsed); err != nil {
		return nil, err
	}
	if parsed.Status != "OK" {
		return nil, &APIError{StatusCode: http.StatusOK, Comment: parsed.Comment}
	}

	out := make([]RatingChange, 0, len(parsed.Result))
	for _, raw := range parsed.Result {
		out = append(out, RatingChange{
			ContestID: strconv.Itoa(raw.ContestID),
			Name:      raw.ContestName,
			Date:      time.Unix(raw.RatingUpdateTimeSeconds, 0).UTC(),
			Rank:      raw.Rank,
			OldRating: raw.OldRating,
			NewRating: raw.NewRating,
		})
	}
	return out, nil
}

func (c *client) getJSON(ctx context.Context, path string, query url.Values, into interface{}) error {
	endpoint := c.cfg.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		// Codeforces reports errors as {"status":"FAILED","comment":...}
		// even on non-200 responses; surface the comment when present.
		var failure struct {
			Comment string `json:"comment"`
		}
		_ = json.Unmarshal(body, &failure)
		return &APIError{StatusCode: resp.StatusCode, Comment: failure.Comment}
	}

	if err := json.Unmarshal(body, into); err != nil {
		return fmt.Errorf("codeforces: decode %s: %w", path, err)
	}
	return nil
}

func normalizeVerdict(raw string) types.Verdict {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "OK":
		return types.VerdictOK
	case "WRONG_ANSWER":
		return types.VerdictWrongAnswer
	case "TIME_LIMIT_EXCEEDED":
		return types.VerdictTimeLimitExceeded
	case "COMPILATION_ERROR":
		return types.VerdictCompilationError
	default:
		return types.VerdictOther
	}
}
