package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/erikgalindohub/structurecareapp/internal/auth"
	authhttp "github.com/erikgalindohub/structurecareapp/internal/auth/http"
	"github.com/erikgalindohub/structurecareapp/internal/auth/middleware"
	cataloghttp "github.com/erikgalindohub/structurecareapp/internal/catalog/http"
	catalogsvc "github.com/erikgalindohub/structurecareapp/internal/catalog/service"
	"github.com/erikgalindohub/structurecareapp/internal/guide"
	projectshttp "github.com/erikgalindohub/structurecareapp/internal/projects/http"
	"github.com/erikgalindohub/structurecareapp/internal/projects/service"
)

type V1Deps struct {
	Identity auth.Provider
	Catalog  *catalogsvc.Service
	Sessions *service.Sessions
	Projects projectshttp.ProjectReader
	Business guide.Business
	// Archive is optional.
	Archive guide.Archive
}

// RegisterV1 mounts the authenticated API under /api/v1.
func RegisterV1(r *gin.Engine, dep V1Deps) {
	api := r.Group("/api/v1")
	api.Use(middleware.RequireIdentity(dep.Identity))

	authhttp.New().Register(api.Group("/me"))
	cataloghttp.New(dep.Catalog).Register(api.Group("/catalog"))

	var opts []projectshttp.Option
	if dep.Archive != nil {
		opts = append(opts, projectshttp.WithArchive(dep.Archive))
	}
	projects := projectshttp.New(dep.Sessions, dep.Projects, dep.Business, opts...)
	projects.RegisterSessions(api.Group("/sessions"))
	projects.RegisterProjects(api.Group("/projects"))
}
