package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/plume-social/plume/internal/models"
)

// groupRequest is the JSON body for group administration.
type groupRequest struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// createGroup handles POST /admin/groups.
func (r *Router) createGroup(c *gin.Context) {
	var req groupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, models.NewValidationError("invalid request body"))
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Slug) == "" {
		respondError(c, models.NewValidationError("group title and slug are required"))
		return
	}

	existing, err := r.groups.GetBySlug(c.Request.Context(), req.Slug)
	if err != nil {
		respondError(c, models.NewInternalError(err))
		return
	}
	if existing != nil {
		respondError(c, models.NewValidationError("group slug already in use"))
		return
	}

	group := &models.Group{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := r.groups.Create(c.Request.Context(), group); err != nil {
		respondError(c, models.NewInternalError(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":    group.ID,
		"title": group.Title,
		"slug":  group.Slug,
	})
}

// updateGroup handles PUT /admin/groups/:slug. Slug is immutable.
func (r *Router) updateGroup(c *gin.Context) {
	var req groupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, models.NewValidationError("invalid request body"))
		return
	}

	group, err := r.groups.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, models.NewInternalError(err))
		return
	}
	if group == nil {
		respondError(c, models.NewNotFoundError("group", c.Param("slug")))
		return
	}

	updated, err := r.posting.UpdateGroup(c.Request.Context(), group.ID, req.Title, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          updated.ID,
		"title":       updated.Title,
		"slug":        updated.Slug,
		"description": updated.Description,
	})
}

// deleteGroup handles DELETE /admin/groups/:slug. Posts tagged with the
// group survive, ungrouped.
func (r *Router) deleteGroup(c *gin.Context) {
	group, err := r.groups.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, models.NewInternalError(err))
		return
	}
	if group == nil {
		respondError(c, models.NewNotFoundError("group", c.Param("slug")))
		return
	}

	if err := r.groups.Delete(c.Request.Context(), group.ID); err != nil {
		respondError(c, models.NewInternalError(err))
		return
	}

	c.Status(http.StatusNoContent)
}

// deletePost handles DELETE /admin/posts/:id. Comments on the post
// survive with their post reference cleared.
func (r *Router) deletePost(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := r.posts.Delete(c.Request.Context(), id); err != nil {
		respondError(c, models.NewInternalError(err))
		return
	}

	c.Status(http.StatusNoContent)
}
