package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plume-social/plume/internal/models"
)

// followAuthor handles PUT /authors/:handle/follow. Idempotent: following
// an already-followed author reports following=true, changed=false.
func (r *Router) followAuthor(c *gin.Context) {
	identity, _ := identityFrom(c)

	target, err := r.authors.GetByHandle(c.Request.Context(), c.Param("handle"))
	if err != nil {
		respondError(c, models.NewInternalError(err))
		return
	}
	if target == nil {
		respondError(c, models.NewNotFoundError("author", c.Param("handle")))
		return
	}

	result, err := r.graph.Follow(c.Request.Context(), identity.AuthorID, target.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// unfollowAuthor handles DELETE /authors/:handle/follow. Idempotent:
// unfollowing an author never followed reports following=false,
// changed=false.
func (r *Router) unfollowAuthor(c *gin.Context) {
	identity, _ := identityFrom(c)

	target, err := r.authors.GetByHandle(c.Request.Context(), c.Param("handle"))
	if err != nil {
		respondError(c, models.NewInternalError(err))
		return
	}
	if target == nil {
		respondError(c, models.NewNotFoundError("author", c.Param("handle")))
		return
	}

	result, err := r.graph.Unfollow(c.Request.Context(), identity.AuthorID, target.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
