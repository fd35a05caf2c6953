package api

import (
	"time"

	"github.com/plume-social/plume/internal/models"
)

// postView is the JSON shape of a post in listings and details.
type postView struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	Group     *string   `json:"group"`
	ImageRef  string    `json:"image_ref,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// commentView is the JSON shape of a comment.
type commentView struct {
	ID        int64     `json:"id"`
	PostID    *int64    `json:"post_id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

func toPostView(post models.Post) postView {
	view := postView{
		ID:        post.ID,
		Text:      post.Text,
		ImageRef:  post.ImageRef,
		CreatedAt: post.CreatedAt,
	}
	if post.Author != nil {
		view.Author = post.Author.Handle
	}
	if post.Group != nil {
		slug := post.Group.Slug
		view.Group = &slug
	}
	return view
}

func toPostViews(posts []models.Post) []postView {
	views := make([]postView, len(posts))
	for i, p := range posts {
		views[i] = toPostView(p)
	}
	return views
}

func toCommentView(comment models.Comment) commentView {
	view := commentView{
		ID:        comment.ID,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	}
	if comment.PostID.Valid {
		id := comment.PostID.Int64
		view.PostID = &id
	}
	if comment.Author != nil {
		view.Author = comment.Author.Handle
	}
	return view
}

func toCommentViews(comments []models.Comment) []commentView {
	views := make([]commentView, len(comments))
	for i, c := range comments {
		views[i] = toCommentView(c)
	}
	return views
}
