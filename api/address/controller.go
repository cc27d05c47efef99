// Package address serves the authenticated user's address book.
package address

import (
	"net/http"

	"shopcore/api/middleware"
	"shopcore/api/response"
	customerapp "shopcore/application/customer"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	customerService *customerapp.Service
}

func NewController(customerService *customerapp.Service) *Controller {
	return &Controller{customerService: customerService}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	addressGroup := router.Group("/addresses")
	{
		addressGroup.POST("", c.Create)
		addressGroup.GET("", c.List)
		addressGroup.PUT("/:id", c.Update)
		addressGroup.PUT("/:id/default", c.SetDefault)
		addressGroup.DELETE("/:id", c.Delete)
	}
}

// Create adds an address to the caller's book.
// POST /api/v1/addresses
func (c *Controller) Create(ctx *gin.Context) {
	var req customerapp.AddressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	address, err := c.customerService.Create(ctx.Request.Context(), middleware.UserID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, address, "address created successfully")
}

// List returns the caller's active addresses.
// GET /api/v1/addresses
func (c *Controller) List(ctx *gin.Context) {
	addresses, err := c.customerService.List(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, addresses, "addresses retrieved successfully")
}

// Update replaces one of the caller's addresses.
// PUT /api/v1/addresses/:id
func (c *Controller) Update(ctx *gin.Context) {
	var req customerapp.AddressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	address, err := c.customerService.Update(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, address, "address updated successfully")
}

// SetDefault marks one address as the default delivery target.
// PUT /api/v1/addresses/:id/default
func (c *Controller) SetDefault(ctx *gin.Context) {
	if err := c.customerService.SetDefault(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, nil, "default address updated")
}

// Delete deactivates an address. Past orders keep referencing it.
// DELETE /api/v1/addresses/:id
func (c *Controller) Delete(ctx *gin.Context) {
	if err := c.customerService.Delete(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}
