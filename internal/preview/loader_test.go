package preview

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dkoval/hirematch/internal/talentwire"
)

type fakeFetcher struct {
	calls   atomic.Int64
	release chan struct{} // when set, fetches wait on it
	err     error
}

func (f *fakeFetcher) GetResumeText(_ context.Context, id string) (*talentwire.ResumeText, error) {
	f.calls.Add(1)

	if f.release != nil {
		<-f.release
	}

	if f.err != nil {
		return nil, f.err
	}

	return &talentwire.ResumeText{Filename: id + ".pdf", Text: "extracted text for " + id}, nil
}

func TestLoadFetchesOnceThenHitsCache(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{}
	loader := NewLoader(fetcher, zap.NewNop())

	first, err := loader.Load(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "r1.pdf", first.Filename)

	second, err := loader.Load(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.EqualValues(t, 1, fetcher.calls.Load(), "second load must not touch the network")
}

func TestConcurrentLoadsShareOneRequest(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	fetcher := &fakeFetcher{release: release}
	loader := NewLoader(fetcher, zap.NewNop())

	const callers = 8

	var wg sync.WaitGroup
	results := make([]*talentwire.ResumeText, callers)
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = loader.Load(context.Background(), "r1")
		}()
	}

	// Let the in-flight fetch finish once all callers are queued on it.
	for fetcher.calls.Load() == 0 {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "r1.pdf", results[i].Filename)
	}

	assert.EqualValues(t, 1, fetcher.calls.Load(), "all callers share the single in-flight request")
}

func TestFailureIsNotCached(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{err: errors.New("extraction pending")}
	loader := NewLoader(fetcher, zap.NewNop())

	_, err := loader.Load(context.Background(), "r1")
	require.Error(t, err)

	// The next load retries instead of replaying the failure.
	fetcher.err = nil
	text, err := loader.Load(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "r1.pdf", text.Filename)
	assert.EqualValues(t, 2, fetcher.calls.Load())
}

func TestDistinctIDsFetchIndependently(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{}
	loader := NewLoader(fetcher, zap.NewNop())

	first, err := loader.Load(context.Background(), "r1")
	require.NoError(t, err)
	second, err := loader.Load(context.Background(), "r2")
	require.NoError(t, err)

	assert.NotEqual(t, first.Filename, second.Filename)
	assert.EqualValues(t, 2, fetcher.calls.Load())
}

func TestInvalidateForcesRefetch(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{}
	loader := NewLoader(fetcher, zap.NewNop())

	_, err := loader.Load(context.Background(), "r1")
	require.NoError(t, err)

	loader.Invalidate("r1")

	_, err = loader.Load(context.Background(), "r1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, fetcher.calls.Load())
}
