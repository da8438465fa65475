package talentwire

import (
	"context"
	"fmt"
)

const (
	matchResumesPath = "/match-resumes"
	myMatchesPath    = "/my-matches"
)

// MatchResult is one scored resume from a match run, ordered by the remote
// service (score descending). CandidateName and Reason are optional extras
// the service may attach.
type MatchResult struct {
	ResumeID      string  `json:"resume_id,omitempty"`
	Filename      string  `json:"filename,omitempty"`
	CandidateName string  `json:"candidate_name,omitempty"`
	Score         float64 `json:"score,omitempty"`
	Reason        string  `json:"reason,omitempty"`
	CreatedAt     string  `json:"created_at,omitempty"`
}

// MatchHistoryEntry is one past match run with its full result set.
type MatchHistoryEntry struct {
	ID        string         `json:"id,omitempty"`
	Profile   string         `json:"profile,omitempty"`
	CreatedAt string         `json:"created_at,omitempty"`
	Results   []*MatchResult `json:"results,omitempty"`
}

// RunMatch scores all stored resumes against one saved JD and returns the
// top results in the order the service ranked them. This client does not
// re-sort them.
func (c *Client) RunMatch(ctx context.Context, jdID string, topK int) ([]*MatchResult, error) {
	const op = "match-resumes"

	body := map[string]any{
		"jd_id": jdID,
		"top_k": topK,
	}

	var response struct {
		Items []*MatchResult `json:"items"`
	}
	if err := c.postJSON(ctx, op, matchResumesPath, body, &response, true); err != nil {
		return nil, err
	}

	return response.Items, nil
}

// ListMatches returns the user's match history in server order.
func (c *Client) ListMatches(ctx context.Context) ([]*MatchHistoryEntry, error) {
	items, err := c.getItems(ctx, "my-matches", myMatchesPath)
	if err != nil {
		return nil, err
	}

	var entries []*MatchHistoryEntry
	if err := decodeItems(items, &entries); err != nil {
		return nil, fmt.Errorf("my-matches: %w", err)
	}

	return entries, nil
}
