package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopcore/domain/blog"
	"shopcore/infrastructure/persistence"
	"shopcore/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *PostRepository) Create(ctx context.Context, p *blog.Post) error {
	if err := r.getDB(ctx).Create(po.FromPost(p)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return blog.ErrDuplicateSlug
		}
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

func (r *PostRepository) Update(ctx context.Context, p *blog.Post) error {
	result := r.getDB(ctx).Model(&po.PostPO{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"title":        p.Title,
			"slug":         p.Slug,
			"body":         p.Body,
			"is_published": p.IsPublished,
			"published_at": p.PublishedAt,
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return blog.ErrDuplicateSlug
		}
		return fmt.Errorf("failed to update post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return blog.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*blog.Post, error) {
	var postPO po.PostPO
	err := r.getDB(ctx).First(&postPO, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, blog.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	return postPO.ToDomain(), nil
}

func (r *PostRepository) FindBySlug(ctx context.Context, slug string) (*blog.Post, error) {
	var postPO po.PostPO
	err := r.getDB(ctx).First(&postPO, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, blog.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	return postPO.ToDomain(), nil
}

func (r *PostRepository) List(ctx context.Context, publishedOnly bool, page, pageSize int) ([]*blog.Post, int64, error) {
	db := r.getDB(ctx).Model(&po.PostPO{})
	if publishedOnly {
		db = db.Where("is_published = ?", true)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	var postPOs []po.PostPO
	err := db.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&postPOs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}

	posts := make([]*blog.Post, len(postPOs))
	for i := range postPOs {
		posts[i] = postPOs[i].ToDomain()
	}
	return posts, total, nil
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID string) ([]*blog.Post, error) {
	var postPOs []po.PostPO
	err := r.getDB(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&postPOs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	posts := make([]*blog.Post, len(postPOs))
	for i := range postPOs {
		posts[i] = postPOs[i].ToDomain()
	}
	return posts, nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	result := r.getDB(ctx).Delete(&po.PostPO{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return blog.ErrPostNotFound
	}
	return nil
}

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *CommentRepository) Create(ctx context.Context, c *blog.Comment) error {
	if err := r.getDB(ctx).Create(po.FromComment(c)).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id string) (*blog.Comment, error) {
	var commentPO po.CommentPO
	err := r.getDB(ctx).First(&commentPO, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, blog.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}
	return commentPO.ToDomain(), nil
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID string) ([]*blog.Comment, error) {
	var commentPOs []po.CommentPO
	err := r.getDB(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&commentPOs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	comments := make([]*blog.Comment, len(commentPOs))
	for i := range commentPOs {
		comments[i] = commentPOs[i].ToDomain()
	}
	return comments, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	result := r.getDB(ctx).Delete(&po.CommentPO{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete comment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return blog.ErrCommentNotFound
	}
	return nil
}

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

func (r *LikeRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Like is idempotent; re-liking hits the composite key and is ignored.
func (r *LikeRepository) Like(ctx context.Context, postID, userID string) error {
	err := r.getDB(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&po.LikePO{PostID: postID, UserID: userID, CreatedAt: time.Now()}).Error
	if err != nil {
		return fmt.Errorf("failed to like post: %w", err)
	}
	return nil
}

func (r *LikeRepository) Unlike(ctx context.Context, postID, userID string) error {
	err := r.getDB(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&po.LikePO{}).Error
	if err != nil {
		return fmt.Errorf("failed to unlike post: %w", err)
	}
	return nil
}

func (r *LikeRepository) Count(ctx context.Context, postID string) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.LikePO{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

func (r *LikeRepository) Exists(ctx context.Context, postID, userID string) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.LikePO{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}
	return count > 0, nil
}

type FollowRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

func (r *FollowRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *FollowRepository) Follow(ctx context.Context, followerID, authorID string) error {
	err := r.getDB(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&po.FollowPO{FollowerID: followerID, AuthorID: authorID, CreatedAt: time.Now()}).Error
	if err != nil {
		return fmt.Errorf("failed to follow author: %w", err)
	}
	return nil
}

func (r *FollowRepository) Unfollow(ctx context.Context, followerID, authorID string) error {
	err := r.getDB(ctx).
		Where("follower_id = ? AND author_id = ?", followerID, authorID).
		Delete(&po.FollowPO{}).Error
	if err != nil {
		return fmt.Errorf("failed to unfollow author: %w", err)
	}
	return nil
}

func (r *FollowRepository) ListFollowing(ctx context.Context, followerID string) ([]string, error) {
	var authorIDs []string
	err := r.getDB(ctx).Model(&po.FollowPO{}).
		Where("follower_id = ?", followerID).
		Order("created_at DESC").
		Pluck("author_id", &authorIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list followed authors: %w", err)
	}
	return authorIDs, nil
}

func (r *FollowRepository) CountFollowers(ctx context.Context, authorID string) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.FollowPO{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count followers: %w", err)
	}
	return count, nil
}

var (
	_ blog.PostRepository    = (*PostRepository)(nil)
	_ blog.CommentRepository = (*CommentRepository)(nil)
	_ blog.LikeRepository    = (*LikeRepository)(nil)
	_ blog.FollowRepository  = (*FollowRepository)(nil)
)
