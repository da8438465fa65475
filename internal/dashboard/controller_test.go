package dashboard

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dkoval/hirematch/internal/cache"
	"github.com/dkoval/hirematch/internal/talentwire"
)

type fakeSession struct {
	authenticated bool
	identity      string
}

func (f *fakeSession) IsAuthenticated() bool { return f.authenticated }
func (f *fakeSession) Identity() string      { return f.identity }

func newController(sess *fakeSession, jdErr, resumeErr, historyErr error) (*Controller, *atomic.Int64) {
	var fetches atomic.Int64

	jds := cache.New("job descriptions", func(context.Context) ([]*talentwire.JobDescription, error) {
		fetches.Add(1)
		if jdErr != nil {
			return nil, jdErr
		}
		return []*talentwire.JobDescription{{ID: "1", Profile: "Go Developer"}}, nil
	}, zap.NewNop())

	resumes := cache.New("resumes", func(context.Context) ([]*talentwire.Resume, error) {
		fetches.Add(1)
		if resumeErr != nil {
			return nil, resumeErr
		}
		return []*talentwire.Resume{{ID: "r1"}, {ID: "r2"}}, nil
	}, zap.NewNop())

	history := cache.New("match history", func(context.Context) ([]*talentwire.MatchHistoryEntry, error) {
		fetches.Add(1)
		if historyErr != nil {
			return nil, historyErr
		}
		return []*talentwire.MatchHistoryEntry{}, nil
	}, zap.NewNop())

	return NewController(sess, jds, resumes, history, zap.NewNop()), &fetches
}

func TestOpenRequiresLogin(t *testing.T) {
	t.Parallel()

	controller, fetches := newController(&fakeSession{authenticated: false}, nil, nil, nil)

	_, err := controller.Open(context.Background())

	require.ErrorIs(t, err, ErrLoginRequired)
	assert.Zero(t, fetches.Load(), "no fetch without a session")
}

func TestOpenFetchesAllThreeCollections(t *testing.T) {
	t.Parallel()

	controller, fetches := newController(&fakeSession{authenticated: true, identity: "alice"}, nil, nil, nil)

	state, err := controller.Open(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "alice", state.Identity)
	assert.EqualValues(t, 3, fetches.Load())

	assert.NoError(t, state.JDs.Err)
	assert.Equal(t, 1, state.JDs.Count)
	assert.NoError(t, state.Resumes.Err)
	assert.Equal(t, 2, state.Resumes.Count)
	assert.NoError(t, state.Matches.Err)
	assert.Equal(t, 0, state.Matches.Count)
}

func TestOpenPartialFailureDoesNotBlockOtherPanels(t *testing.T) {
	t.Parallel()

	resumeErr := errors.New("resumes unavailable")
	controller, _ := newController(&fakeSession{authenticated: true, identity: "alice"}, nil, resumeErr, nil)

	state, err := controller.Open(context.Background())
	require.NoError(t, err, "one failing panel does not fail the dashboard")

	assert.NoError(t, state.JDs.Err)
	assert.Equal(t, 1, state.JDs.Count)
	assert.ErrorIs(t, state.Resumes.Err, resumeErr)
	assert.NoError(t, state.Matches.Err)
}

func TestOpenWithEmptyAccount(t *testing.T) {
	t.Parallel()

	// Fresh account: login succeeded, every collection is empty, and the
	// dashboard is still declared ready with zero counts.
	var fetches atomic.Int64

	jds := cache.New("job descriptions", func(context.Context) ([]*talentwire.JobDescription, error) {
		fetches.Add(1)
		return []*talentwire.JobDescription{}, nil
	}, zap.NewNop())
	resumes := cache.New("resumes", func(context.Context) ([]*talentwire.Resume, error) {
		fetches.Add(1)
		return []*talentwire.Resume{}, nil
	}, zap.NewNop())
	history := cache.New("match history", func(context.Context) ([]*talentwire.MatchHistoryEntry, error) {
		fetches.Add(1)
		return []*talentwire.MatchHistoryEntry{}, nil
	}, zap.NewNop())

	controller := NewController(&fakeSession{authenticated: true, identity: "alice"}, jds, resumes, history, zap.NewNop())

	state, err := controller.Open(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, state.JDs.Count)
	assert.Equal(t, 0, state.Resumes.Count)
	assert.Equal(t, 0, state.Matches.Count)
	assert.EqualValues(t, 3, fetches.Load())
}
