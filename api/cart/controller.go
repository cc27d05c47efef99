// Package cart serves the authenticated user's shopping cart.
package cart

import (
	"net/http"

	"shopcore/api/middleware"
	"shopcore/api/response"
	cartapp "shopcore/application/cart"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	cartService *cartapp.Service
}

func NewController(cartService *cartapp.Service) *Controller {
	return &Controller{cartService: cartService}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	cartGroup := router.Group("/cart")
	{
		cartGroup.GET("", c.View)
		cartGroup.POST("/items", c.Add)
		cartGroup.PUT("/items/:productId", c.UpdateQuantity)
		cartGroup.DELETE("/items/:productId", c.Remove)
		cartGroup.DELETE("", c.Clear)
	}
}

// View returns the cart with live prices and availability.
// GET /api/v1/cart
func (c *Controller) View(ctx *gin.Context) {
	view, err := c.cartService.View(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, view, "cart retrieved successfully")
}

type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// Add puts a product in the cart; repeated adds accumulate quantity.
// POST /api/v1/cart/items
func (c *Controller) Add(ctx *gin.Context) {
	var req addItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	if err := c.cartService.Add(ctx.Request.Context(), middleware.UserID(ctx), req.ProductID, req.Quantity); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "item added to cart")
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

// UpdateQuantity sets the quantity for a cart line; zero removes it.
// PUT /api/v1/cart/items/:productId
func (c *Controller) UpdateQuantity(ctx *gin.Context) {
	var req updateQuantityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	err := c.cartService.UpdateQuantity(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("productId"), req.Quantity)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "cart updated")
}

// Remove drops one product from the cart.
// DELETE /api/v1/cart/items/:productId
func (c *Controller) Remove(ctx *gin.Context) {
	if err := c.cartService.Remove(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("productId")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

// Clear empties the cart.
// DELETE /api/v1/cart
func (c *Controller) Clear(ctx *gin.Context) {
	if err := c.cartService.Clear(ctx.Request.Context(), middleware.UserID(ctx)); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}
