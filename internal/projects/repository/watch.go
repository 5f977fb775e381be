package repository

import (
	"context"

	"github.com/erikgalindohub/structurecareapp/internal/logging"
	"github.com/erikgalindohub/structurecareapp/internal/projects/domain"
)

type listFunc func(ctx context.Context, status domain.Status) ([]domain.Project, error)

// watchList re-runs list whenever the feed signals a change for status.
func watchList(ctx context.Context, feed Feed, status domain.Status, list listFunc) (<-chan []domain.Project, error) {
	signals, err := feed.Watch(ctx, status)
	if err != nil {
		return nil, err
	}

	out := make(chan []domain.Project, 1)
	go func() {
		defer close(out)
		logger := logging.New(ctx)

		emit := func() bool {
			items, err := list(ctx, status)
			if err != nil {
				if ctx.Err() != nil {
					return false
				}
				logger.LogErrorf("watch_projects", "status=%q error=%v", status, err)
				return true
			}
			select {
			case out <- items:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !emit() {
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-signals:
				if !ok || !emit() {
					return
				}
			}
		}
	}()
	return out, nil
}
