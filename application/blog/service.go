// Package blog orchestrates posts, comments, likes and follows.
package blog

import (
	"context"
	"time"

	"shopcore/domain/blog"

	"github.com/google/uuid"
)

type Service struct {
	postRepo    blog.PostRepository
	commentRepo blog.CommentRepository
	likeRepo    blog.LikeRepository
	followRepo  blog.FollowRepository
}

func NewService(
	postRepo blog.PostRepository,
	commentRepo blog.CommentRepository,
	likeRepo blog.LikeRepository,
	followRepo blog.FollowRepository,
) *Service {
	return &Service{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		followRepo:  followRepo,
	}
}

type PostRequest struct {
	Title   string `json:"title" binding:"required"`
	Slug    string `json:"slug" binding:"required"`
	Body    string `json:"body" binding:"required"`
	Publish bool   `json:"publish"`
}

type PostView struct {
	Post     *blog.Post `json:"post"`
	Likes    int64      `json:"likes"`
	Comments int        `json:"comments"`
}

func (s *Service) CreatePost(ctx context.Context, authorID string, req PostRequest) (*blog.Post, error) {
	now := time.Now()
	post := &blog.Post{
		ID:          uuid.New().String(),
		AuthorID:    authorID,
		Title:       req.Title,
		Slug:        req.Slug,
		Body:        req.Body,
		IsPublished: req.Publish,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Publish {
		post.PublishedAt = now
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *Service) UpdatePost(ctx context.Context, authorID, postID string, req PostRequest) (*blog.Post, error) {
	post, err := s.ownedPost(ctx, authorID, postID)
	if err != nil {
		return nil, err
	}

	post.Title = req.Title
	post.Slug = req.Slug
	post.Body = req.Body
	if req.Publish && !post.IsPublished {
		post.PublishedAt = time.Now()
	}
	post.IsPublished = req.Publish

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *Service) DeletePost(ctx context.Context, authorID, postID string) error {
	if _, err := s.ownedPost(ctx, authorID, postID); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, postID)
}

func (s *Service) GetPostBySlug(ctx context.Context, slug string) (*PostView, error) {
	post, err := s.postRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	likes, err := s.likeRepo.Count(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	return &PostView{Post: post, Likes: likes, Comments: len(comments)}, nil
}

func (s *Service) ListPosts(ctx context.Context, publishedOnly bool, page, pageSize int) ([]*blog.Post, int64, error) {
	return s.postRepo.List(ctx, publishedOnly, page, pageSize)
}

func (s *Service) ListByAuthor(ctx context.Context, authorID string) ([]*blog.Post, error) {
	return s.postRepo.ListByAuthor(ctx, authorID)
}

func (s *Service) AddComment(ctx context.Context, userID, postID, body string) (*blog.Comment, error) {
	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &blog.Comment{
		ID:        uuid.New().String(),
		PostID:    postID,
		UserID:    userID,
		Body:      body,
		CreatedAt: time.Now(),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *Service) ListComments(ctx context.Context, postID string) ([]*blog.Comment, error) {
	return s.commentRepo.ListByPost(ctx, postID)
}

// DeleteComment allows the comment author or the post author to remove
// it.
func (s *Service) DeleteComment(ctx context.Context, userID, commentID string) error {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		post, err := s.postRepo.FindByID(ctx, comment.PostID)
		if err != nil {
			return err
		}
		if post.AuthorID != userID {
			return blog.ErrNotPostAuthor
		}
	}
	return s.commentRepo.Delete(ctx, commentID)
}

func (s *Service) Like(ctx context.Context, userID, postID string) error {
	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		return err
	}
	return s.likeRepo.Like(ctx, postID, userID)
}

func (s *Service) Unlike(ctx context.Context, userID, postID string) error {
	return s.likeRepo.Unlike(ctx, postID, userID)
}

func (s *Service) Follow(ctx context.Context, followerID, authorID string) error {
	return s.followRepo.Follow(ctx, followerID, authorID)
}

func (s *Service) Unfollow(ctx context.Context, followerID, authorID string) error {
	return s.followRepo.Unfollow(ctx, followerID, authorID)
}

func (s *Service) ListFollowing(ctx context.Context, followerID string) ([]string, error) {
	return s.followRepo.ListFollowing(ctx, followerID)
}

func (s *Service) CountFollowers(ctx context.Context, authorID string) (int64, error) {
	return s.followRepo.CountFollowers(ctx, authorID)
}

func (s *Service) ownedPost(ctx context.Context, authorID, postID string) (*blog.Post, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != authorID {
		return nil, blog.ErrNotPostAuthor
	}
	return post, nil
}
