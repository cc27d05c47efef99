// Package review serves product reviews. Listing is public; writing
// requires an authenticated user.
package review

import (
	"net/http"

	"shopcore/api/middleware"
	"shopcore/api/response"
	reviewapp "shopcore/application/review"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	reviewService *reviewapp.Service
}

func NewController(reviewService *reviewapp.Service) *Controller {
	return &Controller{reviewService: reviewService}
}

func (c *Controller) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/products/:id/reviews", c.ListByProduct)
}

func (c *Controller) RegisterUserRoutes(router *gin.RouterGroup) {
	router.POST("/products/:id/reviews", c.Create)
	router.DELETE("/reviews/:id", c.Delete)
}

// Create posts a review. One review per user per product.
// POST /api/v1/products/:id/reviews
func (c *Controller) Create(ctx *gin.Context) {
	var req reviewapp.CreateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	req.ProductID = ctx.Param("id")
	req.UserID = middleware.UserID(ctx)

	created, err := c.reviewService.Create(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, created, "review created successfully")
}

// ListByProduct returns a product's reviews, newest first.
// GET /api/v1/products/:id/reviews
func (c *Controller) ListByProduct(ctx *gin.Context) {
	reviews, err := c.reviewService.ListByProduct(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, reviews, "reviews retrieved successfully")
}

// Delete removes the caller's own review.
// DELETE /api/v1/reviews/:id
func (c *Controller) Delete(ctx *gin.Context) {
	if err := c.reviewService.DeleteOwn(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}
