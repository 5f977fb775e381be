package http

import (
	"context"

	"github.com/erikgalindohub/structurecareapp/internal/guide"
	"github.com/erikgalindohub/structurecareapp/internal/projects/domain"
	"github.com/erikgalindohub/structurecareapp/internal/projects/service"
	"github.com/erikgalindohub/structurecareapp/internal/projects/state"
	"github.com/erikgalindohub/structurecareapp/internal/selection"
)

// ProjectReader is the read side of the project gateway.
type ProjectReader interface {
	Get(ctx context.Context, id string) (domain.Project, error)
	List(ctx context.Context, status domain.Status) ([]domain.Project, error)
	Subscribe(ctx context.Context, status domain.Status) (<-chan []domain.Project, error)
}

// Handler bundles the dependencies for session and project endpoints.
type Handler struct {
	sessions *service.Sessions
	projects ProjectReader
	business guide.Business
	archive  guide.Archive
}

type Option func(*Handler)

// WithArchive stores every rendered guide in a.
func WithArchive(a guide.Archive) Option {
	return func(h *Handler) { h.archive = a }
}

func New(sessions *service.Sessions, projects ProjectReader, business guide.Business, opts ...Option) *Handler {
	h := &Handler{sessions: sessions, projects: projects, business: business}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type openSessionReq struct {
	ProjectID string `json:"project_id"`
}

type saveReq struct {
	Status string `json:"status"`
}

// sessionResp is the wire form of an editing session.
type sessionResp struct {
	ID      string         `json:"id"`
	Project domain.Project `json:"project"`
	View    selection.Spec `json:"view"`
}

func toSessionResp(id string, st state.State) sessionResp {
	return sessionResp{ID: id, Project: st.Project, View: st.View}
}
