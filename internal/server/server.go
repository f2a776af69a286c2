// Package server exposes the stored assignments to the display layer: a
// store-backed list, an upstream passthrough, a detail lookup, favorite
// toggling and application submission. Failures surface as a generic 500
// body; the cause is logged server-side only.
package server

import (
	"context"
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"assignment_hub/internal/domain"
	"assignment_hub/internal/source/verama"
)

type AssignmentReader interface {
	List(ctx context.Context) ([]domain.Assignment, error)
	GetByID(ctx context.Context, id int64) (*domain.Assignment, error)
}

type ApplicationWriter interface {
	Create(ctx context.Context, application *domain.Application) error
}

type UpstreamReader interface {
	FetchValidated(ctx context.Context) (*verama.JobRequestResponse, error)
}

type FavoriteStore interface {
	List(ctx context.Context) ([]int64, error)
	Toggle(ctx context.Context, id int64) ([]int64, error)
}

type Server struct {
	assignments  AssignmentReader
	applications ApplicationWriter
	upstream     UpstreamReader
	favorites    FavoriteStore
	logger       *slog.Logger
}

func New(
	assignments AssignmentReader,
	applications ApplicationWriter,
	upstream UpstreamReader,
	favorites FavoriteStore,
	logger *slog.Logger,
) *Server {
	return &Server{
		assignments:  assignments,
		applications: applications,
		upstream:     upstream,
		favorites:    favorites,
		logger:       logger,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}
	r.Use(cors.New(corsCfg))

	r.GET("/health", s.health)

	api := r.Group("/api")
	{
		api.GET("/job-requests", s.listJobRequests)
		api.GET("/job-requests/upstream", s.upstreamJobRequests)
		api.GET("/job-requests/:id", s.getJobRequest)
		api.POST("/job-requests/:id/applications", s.submitApplication)

		api.GET("/favorites", s.listFavorites)
		api.POST("/favorites/:id", s.toggleFavorite)
	}

	return r
}

func (s *Server) health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok", "service": "assignment-hub"})
}
