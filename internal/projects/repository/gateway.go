package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/erikgalindohub/structurecareapp/internal/logging"
	"github.com/erikgalindohub/structurecareapp/internal/projects/domain"
)

// Gateway persists projects. Implementations return domain.ErrNotFound for unknown ids.
type Gateway interface {
	// Create stores a new project and returns the id the store assigned.
	Create(ctx context.Context, p domain.Project) (string, error)
	Update(ctx context.Context, id string, p domain.Project) error
	Get(ctx context.Context, id string) (domain.Project, error)
	// List returns projects with status, newest DateCreated first.
	List(ctx context.Context, status domain.Status) ([]domain.Project, error)
	// Subscribe emits the List result for status now and after every change. The channel is
	// closed when ctx ends.
	Subscribe(ctx context.Context, status domain.Status) (<-chan []domain.Project, error)
	Ping(ctx context.Context) error
	Close() error
}

var statuses = []domain.Status{domain.StatusInProgress, domain.StatusCompleted}

// notifyAll signals both status feeds, since an update may move a project between them.
// Feed failures are logged; the write itself already succeeded.
func notifyAll(ctx context.Context, feed Feed) {
	if feed == nil {
		return
	}
	for _, s := range statuses {
		if err := feed.Publish(ctx, s); err != nil {
			logging.New(ctx).LogWarnf("publish_project_change", "status=%q error=%v", s, err)
		}
	}
}

func encodeCollections(p domain.Project) (zones, plants []byte, err error) {
	p = p.Normalize()
	if zones, err = json.Marshal(p.Zones); err != nil {
		return nil, nil, fmt.Errorf("encode zones: %w", err)
	}
	if plants, err = json.Marshal(p.Plants); err != nil {
		return nil, nil, fmt.Errorf("encode plants: %w", err)
	}
	return zones, plants, nil
}

func decodeCollections(p *domain.Project, zones, plants []byte) error {
	if len(zones) > 0 {
		if err := json.Unmarshal(zones, &p.Zones); err != nil {
			return fmt.Errorf("decode zones: %w", err)
		}
	}
	if len(plants) > 0 {
		if err := json.Unmarshal(plants, &p.Plants); err != nil {
			return fmt.Errorf("decode plants: %w", err)
		}
	}
	*p = p.Normalize()
	return nil
}
