// Package blog serves posts, comments, likes and author follows.
// Reading is public; writing requires an authenticated user.
package blog

import (
	"net/http"
	"strconv"

	"shopcore/api/middleware"
	"shopcore/api/response"
	blogapp "shopcore/application/blog"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	blogService *blogapp.Service
}

func NewController(blogService *blogapp.Service) *Controller {
	return &Controller{blogService: blogService}
}

func (c *Controller) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/posts", c.ListPosts)
	router.GET("/posts/:slug", c.GetPost)
	router.GET("/posts/:slug/comments", c.ListComments)
	router.GET("/authors/:id/posts", c.ListByAuthor)
	router.GET("/authors/:id/followers/count", c.CountFollowers)
}

func (c *Controller) RegisterUserRoutes(router *gin.RouterGroup) {
	blogGroup := router.Group("/blog")
	{
		blogGroup.POST("/posts", c.CreatePost)
		blogGroup.PUT("/posts/:id", c.UpdatePost)
		blogGroup.DELETE("/posts/:id", c.DeletePost)
		blogGroup.POST("/posts/:id/comments", c.AddComment)
		blogGroup.DELETE("/comments/:id", c.DeleteComment)
		blogGroup.PUT("/posts/:id/like", c.Like)
		blogGroup.DELETE("/posts/:id/like", c.Unlike)
		blogGroup.PUT("/authors/:id/follow", c.Follow)
		blogGroup.DELETE("/authors/:id/follow", c.Unfollow)
		blogGroup.GET("/following", c.ListFollowing)
	}
}

// CreatePost writes a post, published immediately or kept as a draft.
// POST /api/v1/blog/posts
func (c *Controller) CreatePost(ctx *gin.Context) {
	var req blogapp.PostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	post, err := c.blogService.CreatePost(ctx.Request.Context(), middleware.UserID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, post, "post created successfully")
}

// UpdatePost edits the caller's own post.
// PUT /api/v1/blog/posts/:id
func (c *Controller) UpdatePost(ctx *gin.Context) {
	var req blogapp.PostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	post, err := c.blogService.UpdatePost(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, post, "post updated successfully")
}

// DeletePost removes the caller's own post.
// DELETE /api/v1/blog/posts/:id
func (c *Controller) DeletePost(ctx *gin.Context) {
	if err := c.blogService.DeletePost(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

// GetPost returns a post with its like and comment counts.
// GET /api/v1/posts/:slug
func (c *Controller) GetPost(ctx *gin.Context) {
	view, err := c.blogService.GetPostBySlug(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, view, "post retrieved successfully")
}

// ListPosts returns published posts, newest first.
// GET /api/v1/posts
func (c *Controller) ListPosts(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))

	posts, total, err := c.blogService.ListPosts(ctx.Request.Context(), true, page, pageSize)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandlePaginated(ctx, posts,
		response.NewPagination(page, pageSize, total),
		"posts retrieved successfully")
}

// ListByAuthor returns one author's posts.
// GET /api/v1/authors/:id/posts
func (c *Controller) ListByAuthor(ctx *gin.Context) {
	posts, err := c.blogService.ListByAuthor(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, posts, "posts retrieved successfully")
}

type addCommentRequest struct {
	Body string `json:"body" binding:"required"`
}

// AddComment comments on a post.
// POST /api/v1/blog/posts/:id/comments
func (c *Controller) AddComment(ctx *gin.Context) {
	var req addCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	comment, err := c.blogService.AddComment(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id"), req.Body)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, comment, "comment added successfully")
}

// ListComments returns a post's comments, oldest first.
// GET /api/v1/posts/:slug/comments
func (c *Controller) ListComments(ctx *gin.Context) {
	view, err := c.blogService.GetPostBySlug(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	comments, err := c.blogService.ListComments(ctx.Request.Context(), view.Post.ID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, comments, "comments retrieved successfully")
}

// DeleteComment removes a comment; allowed for its author or the post's.
// DELETE /api/v1/blog/comments/:id
func (c *Controller) DeleteComment(ctx *gin.Context) {
	if err := c.blogService.DeleteComment(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

// Like marks a post as liked; repeating it is a no-op.
// PUT /api/v1/blog/posts/:id/like
func (c *Controller) Like(ctx *gin.Context) {
	if err := c.blogService.Like(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, nil, "post liked")
}

// Unlike removes the caller's like.
// DELETE /api/v1/blog/posts/:id/like
func (c *Controller) Unlike(ctx *gin.Context) {
	if err := c.blogService.Unlike(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

// Follow subscribes the caller to an author.
// PUT /api/v1/blog/authors/:id/follow
func (c *Controller) Follow(ctx *gin.Context) {
	if err := c.blogService.Follow(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, nil, "author followed")
}

// Unfollow removes the subscription.
// DELETE /api/v1/blog/authors/:id/follow
func (c *Controller) Unfollow(ctx *gin.Context) {
	if err := c.blogService.Unfollow(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

// ListFollowing returns the ids of authors the caller follows.
// GET /api/v1/blog/following
func (c *Controller) ListFollowing(ctx *gin.Context) {
	authorIDs, err := c.blogService.ListFollowing(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, authorIDs, "following retrieved successfully")
}

// CountFollowers returns an author's follower count.
// GET /api/v1/authors/:id/followers/count
func (c *Controller) CountFollowers(ctx *gin.Context) {
	count, err := c.blogService.CountFollowers(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, gin.H{"followers": count}, "follower count retrieved successfully")
}
