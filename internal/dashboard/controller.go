// Package dashboard composes the caches into the single-screen lifecycle:
// auth check, then one parallel fetch of all three collections.
package dashboard

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dkoval/hirematch/internal/cache"
	"github.com/dkoval/hirematch/internal/talentwire"
)

// ErrLoginRequired signals the caller to route to the login flow. No fetch
// is attempted without a stored session.
var ErrLoginRequired = errors.New("not logged in")

type sessionChecker interface {
	IsAuthenticated() bool
	Identity() string
}

// Panel is the state of one dashboard collection after the initial fetch.
// Each panel settles independently; one failing collection does not block
// the other two.
type Panel struct {
	Name  string
	Count int
	Err   error
}

type State struct {
	Identity string
	JDs      Panel
	Resumes  Panel
	Matches  Panel
}

type Controller struct {
	session sessionChecker
	jds     *cache.Cache[*talentwire.JobDescription]
	resumes *cache.Cache[*talentwire.Resume]
	history *cache.Cache[*talentwire.MatchHistoryEntry]
	logger  *zap.Logger
}

func NewController(
	session sessionChecker,
	jds *cache.Cache[*talentwire.JobDescription],
	resumes *cache.Cache[*talentwire.Resume],
	history *cache.Cache[*talentwire.MatchHistoryEntry],
	logger *zap.Logger,
) *Controller {
	return &Controller{
		session: session,
		jds:     jds,
		resumes: resumes,
		history: history,
		logger:  logger,
	}
}

// Open checks the session and issues the three collection refreshes
// concurrently. It waits for all three to settle before declaring the
// dashboard ready; per-panel errors are carried in the returned state.
func (c *Controller) Open(ctx context.Context) (*State, error) {
	if !c.session.IsAuthenticated() {
		return nil, ErrLoginRequired
	}

	state := &State{
		Identity: c.session.Identity(),
		JDs:      Panel{Name: "job descriptions"},
		Resumes:  Panel{Name: "resumes"},
		Matches:  Panel{Name: "match history"},
	}

	// Each goroutine settles its own panel; errors stay per-panel instead of
	// failing the whole dashboard.
	g := new(errgroup.Group)

	g.Go(func() error {
		items, err := c.jds.Refresh(ctx)
		state.JDs.Count, state.JDs.Err = len(items), err
		return nil
	})
	g.Go(func() error {
		items, err := c.resumes.Refresh(ctx)
		state.Resumes.Count, state.Resumes.Err = len(items), err
		return nil
	})
	g.Go(func() error {
		items, err := c.history.Refresh(ctx)
		state.Matches.Count, state.Matches.Err = len(items), err
		return nil
	})

	_ = g.Wait()

	for _, p := range []Panel{state.JDs, state.Resumes, state.Matches} {
		if p.Err != nil {
			c.logger.Warn("dashboard panel failed to load", zap.String("panel", p.Name), zap.Error(p.Err))
		}
	}

	return state, nil
}
