package repository

import (
	"context"
	"sync"

	"github.com/erikgalindohub/structurecareapp/internal/projects/domain"
)

// Feed carries change notifications for the SQL stores. Signals are coalesced: a watcher that
// is behind sees one pending signal, not one per change.
type Feed interface {
	Publish(ctx context.Context, status domain.Status) error
	// Watch returns a channel signalled after each change to projects with status. It is
	// closed when ctx ends.
	Watch(ctx context.Context, status domain.Status) (<-chan struct{}, error)
}

// LocalFeed is an in-process Feed for single-instance deployments.
type LocalFeed struct {
	mu   sync.Mutex
	subs map[domain.Status]map[chan struct{}]struct{}
}

func NewLocalFeed() *LocalFeed {
	return &LocalFeed{subs: map[domain.Status]map[chan struct{}]struct{}{}}
}

func (f *LocalFeed) Publish(_ context.Context, status domain.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subs[status] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return nil
}

func (f *LocalFeed) Watch(ctx context.Context, status domain.Status) (<-chan struct{}, error) {
	ch := make(chan struct{}, 1)

	f.mu.Lock()
	if f.subs[status] == nil {
		f.subs[status] = map[chan struct{}]struct{}{}
	}
	f.subs[status][ch] = struct{}{}
	f.mu.Unlock()

	go func() {
		<-ctx.Done()
		f.mu.Lock()
		delete(f.subs[status], ch)
		close(ch)
		f.mu.Unlock()
	}()
	return ch, nil
}
