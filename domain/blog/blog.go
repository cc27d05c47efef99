// Package blog holds blog content: posts, comments, likes and author
// follows.
package blog

import (
	"errors"
	"time"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotPostAuthor   = errors.New("user is not the post author")
	ErrDuplicateSlug   = errors.New("slug already exists")
)

type Post struct {
	ID          string
	AuthorID    string
	Title       string
	Slug        string
	Body        string
	IsPublished bool
	PublishedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Comment struct {
	ID        string
	PostID    string
	UserID    string
	Body      string
	CreatedAt time.Time
}

// Like is a user's like on a post. At most one per (post, user).
type Like struct {
	PostID    string
	UserID    string
	CreatedAt time.Time
}

// Follow is a user following an author.
type Follow struct {
	FollowerID string
	AuthorID   string
	CreatedAt  time.Time
}
