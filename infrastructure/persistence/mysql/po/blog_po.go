package po

import (
	"time"

	"shopcore/domain/blog"
)

type PostPO struct {
	ID          string    `gorm:"primaryKey;size:64"`
	AuthorID    string    `gorm:"size:64;index;not null"`
	Title       string    `gorm:"size:255;not null"`
	Slug        string    `gorm:"size:255;uniqueIndex;not null"`
	Body        string    `gorm:"type:text"`
	IsPublished bool      `gorm:"not null;default:false"`
	PublishedAt time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (PostPO) TableName() string { return "blog_posts" }

func FromPost(p *blog.Post) *PostPO {
	return &PostPO{
		ID:          p.ID,
		AuthorID:    p.AuthorID,
		Title:       p.Title,
		Slug:        p.Slug,
		Body:        p.Body,
		IsPublished: p.IsPublished,
		PublishedAt: p.PublishedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (po *PostPO) ToDomain() *blog.Post {
	return &blog.Post{
		ID:          po.ID,
		AuthorID:    po.AuthorID,
		Title:       po.Title,
		Slug:        po.Slug,
		Body:        po.Body,
		IsPublished: po.IsPublished,
		PublishedAt: po.PublishedAt,
		CreatedAt:   po.CreatedAt,
		UpdatedAt:   po.UpdatedAt,
	}
}

type CommentPO struct {
	ID        string    `gorm:"primaryKey;size:64"`
	PostID    string    `gorm:"size:64;index;not null"`
	UserID    string    `gorm:"size:64;not null"`
	Body      string    `gorm:"size:2000;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (CommentPO) TableName() string { return "blog_comments" }

func FromComment(c *blog.Comment) *CommentPO {
	return &CommentPO{
		ID: c.ID, PostID: c.PostID, UserID: c.UserID,
		Body: c.Body, CreatedAt: c.CreatedAt,
	}
}

func (po *CommentPO) ToDomain() *blog.Comment {
	return &blog.Comment{
		ID: po.ID, PostID: po.PostID, UserID: po.UserID,
		Body: po.Body, CreatedAt: po.CreatedAt,
	}
}

// LikePO has a composite key so a user can like a post at most once.
type LikePO struct {
	PostID    string    `gorm:"primaryKey;size:64"`
	UserID    string    `gorm:"primaryKey;size:64"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (LikePO) TableName() string { return "blog_likes" }

type FollowPO struct {
	FollowerID string    `gorm:"primaryKey;size:64"`
	AuthorID   string    `gorm:"primaryKey;size:64"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (FollowPO) TableName() string { return "blog_follows" }
