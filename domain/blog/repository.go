package blog

import "context"

type PostRepository interface {
	Create(ctx context.Context, p *Post) error
	Update(ctx context.Context, p *Post) error
	FindByID(ctx context.Context, id string) (*Post, error)
	FindBySlug(ctx context.Context, slug string) (*Post, error)
	List(ctx context.Context, publishedOnly bool, page, pageSize int) ([]*Post, int64, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*Post, error)
	Delete(ctx context.Context, id string) error
}

type CommentRepository interface {
	Create(ctx context.Context, c *Comment) error
	ListByPost(ctx context.Context, postID string) ([]*Comment, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Comment, error)
}

// LikeRepository stores post likes. Like is idempotent: liking an
// already-liked post is a no-op.
type LikeRepository interface {
	Like(ctx context.Context, postID, userID string) error
	Unlike(ctx context.Context, postID, userID string) error
	Count(ctx context.Context, postID string) (int64, error)
	Exists(ctx context.Context, postID, userID string) (bool, error)
}

// FollowRepository stores author follows, idempotent like likes.
type FollowRepository interface {
	Follow(ctx context.Context, followerID, authorID string) error
	Unfollow(ctx context.Context, followerID, authorID string) error
	ListFollowing(ctx context.Context, followerID string) ([]string, error)
	CountFollowers(ctx context.Context, authorID string) (int64, error)
}
