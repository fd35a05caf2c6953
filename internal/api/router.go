package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/plume-social/plume/internal/feed"
	"github.com/plume-social/plume/internal/graph"
	"github.com/plume-social/plume/internal/models"
	"github.com/plume-social/plume/internal/posting"
	"github.com/plume-social/plume/pkg/logging"
	"github.com/plume-social/plume/pkg/telemetry"
)

// GroupAdmin is the administrative group surface. Implemented by
// db.GroupRepository.
type GroupAdmin interface {
	Create(ctx context.Context, group *models.Group) error
	GetBySlug(ctx context.Context, slug string) (*models.Group, error)
	Delete(ctx context.Context, id int64) error
}

// PostAdmin is the administrative post surface. Implemented by
// db.PostRepository.
type PostAdmin interface {
	Delete(ctx context.Context, id int64) error
}

// Router sets up API routes
type Router struct {
	feed    *feed.Composer
	graph   *graph.Service
	posting *posting.Service
	authors AuthorDirectory
	groups  GroupAdmin
	posts   PostAdmin
	auth    *Authenticator
	logger  *zap.Logger
}

// NewRouter creates a new API router
func NewRouter(composer *feed.Composer, graphSvc *graph.Service, postingSvc *posting.Service, authors AuthorDirectory, groups GroupAdmin, posts PostAdmin, auth *Authenticator) *Router {
	return &Router{
		feed:    composer,
		graph:   graphSvc,
		posting: postingSvc,
		authors: authors,
		groups:  groups,
		posts:   posts,
		auth:    auth,
		logger:  logging.GetLogger().With(zap.String("component", "api-router")),
	}
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	engine.Use(RequestID(), trace())

	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	engine.GET("/posts", r.globalFeed)
	engine.GET("/posts/:id", r.getPost)
	engine.GET("/groups/:slug/posts", r.groupFeed)
	engine.GET("/authors/:handle/posts", r.auth.Optional(), r.authorFeed)

	authed := engine.Group("/", r.auth.Required())
	authed.GET("/feed", r.personalizedFeed)
	authed.POST("/posts", r.createPost)
	authed.PUT("/posts/:id", r.editPost)
	authed.POST("/posts/:id/comments", r.addComment)
	authed.PUT("/authors/:handle/follow", r.followAuthor)
	authed.DELETE("/authors/:handle/follow", r.unfollowAuthor)

	admin := engine.Group("/admin", r.auth.Required(), r.auth.RequireAdmin())
	admin.POST("/groups", r.createGroup)
	admin.PUT("/groups/:slug", r.updateGroup)
	admin.DELETE("/groups/:slug", r.deleteGroup)
	admin.DELETE("/posts/:id", r.deletePost)
}

// trace starts a span per request and threads it through the request
// context.
func trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := telemetry.StartSpan(c.Request.Context(), "http "+c.FullPath())
		defer span.End()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// pageParam parses the 1-based page query parameter, defaulting to 1.
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// idParam parses a numeric path parameter.
func idParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, models.NewValidationError("invalid " + name)
	}
	return id, nil
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"service": "plume-api",
	})
}
