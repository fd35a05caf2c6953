package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// personalizedFeed handles GET /feed: one page of posts by the authors the
// caller follows.
func (r *Router) personalizedFeed(c *gin.Context) {
	identity, _ := identityFrom(c)

	posts, err := r.feed.Personalized(c.Request.Context(), identity.AuthorID, pageParam(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  pageParam(c),
		"posts": toPostViews(posts),
	})
}

// globalFeed handles GET /posts: one page of all posts, newest first.
func (r *Router) globalFeed(c *gin.Context) {
	posts, err := r.feed.Global(c.Request.Context(), pageParam(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  pageParam(c),
		"posts": toPostViews(posts),
	})
}

// groupFeed handles GET /groups/:slug/posts.
func (r *Router) groupFeed(c *gin.Context) {
	posts, err := r.feed.Group(c.Request.Context(), c.Param("slug"), pageParam(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"group": c.Param("slug"),
		"page":  pageParam(c),
		"posts": toPostViews(posts),
	})
}

// authorFeed handles GET /authors/:handle/posts. When the caller is
// authenticated the response carries whether they follow this author.
func (r *Router) authorFeed(c *gin.Context) {
	timeline, err := r.feed.Author(c.Request.Context(), c.Param("handle"), pageParam(c), viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"author":    timeline.Author.Handle,
		"following": timeline.Following,
		"page":      pageParam(c),
		"posts":     toPostViews(timeline.Posts),
	})
}
