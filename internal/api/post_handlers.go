package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plume-social/plume/internal/models"
	"github.com/plume-social/plume/internal/posting"
)

// postRequest is the JSON body for creating or editing a post.
type postRequest struct {
	Text     string `json:"text"`
	Group    string `json:"group"`
	ImageRef string `json:"image_ref"`
}

// commentRequest is the JSON body for adding a comment.
type commentRequest struct {
	Text string `json:"text"`
}

// createPost handles POST /posts.
func (r *Router) createPost(c *gin.Context) {
	identity, _ := identityFrom(c)

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, models.NewValidationError("invalid request body"))
		return
	}

	post, err := r.posting.CreatePost(c.Request.Context(), identity.AuthorID, posting.PostInput{
		Text:      req.Text,
		GroupSlug: req.Group,
		ImageRef:  req.ImageRef,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	view := toPostView(*post)
	view.Author = identity.Handle
	if req.Group != "" {
		group := req.Group
		view.Group = &group
	}
	c.JSON(http.StatusCreated, view)
}

// editPost handles PUT /posts/:id. Only the post's author may edit; a
// non-author receives an explicit authorization error.
func (r *Router) editPost(c *gin.Context) {
	identity, _ := identityFrom(c)

	id, err := idParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, models.NewValidationError("invalid request body"))
		return
	}

	post, err := r.posting.EditPost(c.Request.Context(), identity.AuthorID, id, posting.PostInput{
		Text:      req.Text,
		GroupSlug: req.Group,
		ImageRef:  req.ImageRef,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	view := toPostView(*post)
	view.Author = identity.Handle
	if req.Group != "" {
		group := req.Group
		view.Group = &group
	}
	c.JSON(http.StatusOK, view)
}

// getPost handles GET /posts/:id: the post plus its comments.
func (r *Router) getPost(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	post, comments, err := r.posting.GetPost(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"post":     toPostView(*post),
		"comments": toCommentViews(comments),
	})
}

// addComment handles POST /posts/:id/comments.
func (r *Router) addComment(c *gin.Context) {
	identity, _ := identityFrom(c)

	id, err := idParam(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, models.NewValidationError("invalid request body"))
		return
	}

	comment, err := r.posting.AddComment(c.Request.Context(), identity.AuthorID, id, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	view := toCommentView(*comment)
	view.Author = identity.Handle
	c.JSON(http.StatusCreated, view)
}
