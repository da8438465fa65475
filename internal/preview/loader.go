// Package preview lazily fetches extracted resume text, once per resume.
package preview

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/dkoval/hirematch/internal/talentwire"
)

type textFetcher interface {
	GetResumeText(ctx context.Context, id string) (*talentwire.ResumeText, error)
}

type Loader struct {
	client textFetcher
	logger *zap.Logger
	group  singleflight.Group

	mu    sync.Mutex
	ready map[string]*talentwire.ResumeText
}

func NewLoader(client textFetcher, logger *zap.Logger) *Loader {
	return &Loader{
		client: client,
		logger: logger,
		ready:  make(map[string]*talentwire.ResumeText),
	}
}

// Load returns the extracted text for one resume. The first call fetches it;
// concurrent calls for the same id share that single request, and a hit
// afterwards never touches the network. Failures are not cached, so the next
// call retries.
func (l *Loader) Load(ctx context.Context, resumeID string) (*talentwire.ResumeText, error) {
	l.mu.Lock()
	if text, ok := l.ready[resumeID]; ok {
		l.mu.Unlock()
		return text, nil
	}
	l.mu.Unlock()

	v, err, shared := l.group.Do(resumeID, func() (any, error) {
		text, err := l.client.GetResumeText(ctx, resumeID)
		if err != nil {
			return nil, err
		}

		l.mu.Lock()
		l.ready[resumeID] = text
		l.mu.Unlock()

		return text, nil
	})
	if err != nil {
		return nil, err
	}

	if shared {
		l.logger.Debug("preview request shared", zap.String("resume_id", resumeID))
	}

	return v.(*talentwire.ResumeText), nil
}

// Invalidate drops the cached text for one resume so the next Load refetches.
func (l *Loader) Invalidate(resumeID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.ready, resumeID)
}
