// Package match drives a resume-to-JD match run against the remote scoring
// service and keeps the dependent views consistent afterwards.
package match

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/dkoval/hirematch/internal/cache"
	"github.com/dkoval/hirematch/internal/talentwire"
)

var (
	// ErrAlreadyRunning rejects a second run while one is in flight. Queueing
	// it instead would let a slow early run overwrite newer results.
	ErrAlreadyRunning = errors.New("a match run is already in progress")
	// ErrInvalidSelection means the jd id does not correspond to a cached JD.
	ErrInvalidSelection = errors.New("selected job description is not in the cached list")
)

// DefaultTopK is used when the caller does not ask for a specific count.
const DefaultTopK = 5

type matcher interface {
	RunMatch(ctx context.Context, jdID string, topK int) ([]*talentwire.MatchResult, error)
}

// LatestResults is the output of the last successful run, tagged with the JD
// it was computed for. Switching the selected JD without re-running leaves
// the tag untouched, so stale results are always labeled, never reattributed.
type LatestResults struct {
	JDID    string
	Results []*talentwire.MatchResult
}

type Orchestrator struct {
	client  matcher
	jds     *cache.Cache[*talentwire.JobDescription]
	history *cache.Cache[*talentwire.MatchHistoryEntry]
	logger  *zap.Logger

	mu      sync.Mutex
	running bool
	latest  *LatestResults
}

func NewOrchestrator(
	client matcher,
	jds *cache.Cache[*talentwire.JobDescription],
	history *cache.Cache[*talentwire.MatchHistoryEntry],
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		client:  client,
		jds:     jds,
		history: history,
		logger:  logger,
	}
}

// Run invokes the remote match for jdID. On success it replaces the latest
// results wholesale, in the order the service ranked them, and refetches the
// match history. On failure both views are left untouched and a retry is
// immediately possible.
func (o *Orchestrator) Run(ctx context.Context, jdID string, topK int) ([]*talentwire.MatchResult, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	o.mu.Lock()
	if o.running {
		o.mu.Unlock()
		return nil, ErrAlreadyRunning
	}
	o.running = true
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.running = false
		o.mu.Unlock()
	}()

	if !o.jdCached(jdID) {
		return nil, ErrInvalidSelection
	}

	o.logger.Info("running match", zap.String("jd_id", jdID), zap.Int("top_k", topK))

	results, err := o.client.RunMatch(ctx, jdID, topK)
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	o.latest = &LatestResults{JDID: jdID, Results: results}
	o.mu.Unlock()

	if _, err := o.history.InvalidateAndRefresh(ctx); err != nil {
		// The run itself succeeded; the history view catches up on its next
		// refresh.
		o.logger.Warn("refreshing match history after run", zap.Error(err))
	}

	o.logger.Info("match run succeeded", zap.String("jd_id", jdID), zap.Int("results", len(results)))

	return results, nil
}

// Latest returns the results of the last successful run, or nil before one.
func (o *Orchestrator) Latest() *LatestResults {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.latest
}

func (o *Orchestrator) jdCached(jdID string) bool {
	if jdID == "" {
		return false
	}

	for _, jd := range o.jds.Items() {
		if jd.ID == jdID {
			return true
		}
	}

	return false
}
