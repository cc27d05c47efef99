// Package coupon serves coupon administration plus the public
// auto-apply listing shoppers see at checkout.
package coupon

import (
	"net/http"

	"shopcore/api/response"
	couponapp "shopcore/application/coupon"
	"shopcore/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type Controller struct {
	couponService *couponapp.Service
}

func NewController(couponService *couponapp.Service) *Controller {
	return &Controller{couponService: couponService}
}

func (c *Controller) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/coupons/auto-apply", c.ListAutoApply)
	router.GET("/coupons/by-code/:code", c.GetByCode)
}

func (c *Controller) RegisterAdminRoutes(router *gin.RouterGroup) {
	couponGroup := router.Group("/admin/coupons")
	{
		couponGroup.POST("", c.Create)
		couponGroup.GET("", c.List)
		couponGroup.GET("/:id", c.Get)
		couponGroup.PUT("/:id/deactivate", c.Deactivate)
		couponGroup.DELETE("/:id", c.Delete)
	}
}

// Create registers a coupon. A nil quantity means unlimited uses.
// POST /api/v1/admin/coupons
func (c *Controller) Create(ctx *gin.Context) {
	var req couponapp.CreateCouponRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	created, err := c.couponService.Create(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, created, "coupon created successfully")
}

// Get returns one coupon by id.
// GET /api/v1/admin/coupons/:id
func (c *Controller) Get(ctx *gin.Context) {
	found, err := c.couponService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, found, "coupon retrieved successfully")
}

// GetByCode returns one coupon by its code.
// GET /api/v1/coupons/by-code/:code
func (c *Controller) GetByCode(ctx *gin.Context) {
	found, err := c.couponService.GetByCode(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, found, "coupon retrieved successfully")
}

// List returns all coupons.
// GET /api/v1/admin/coupons
func (c *Controller) List(ctx *gin.Context) {
	activeOnly := ctx.DefaultQuery("active_only", "false") == "true"

	coupons, err := c.couponService.List(ctx.Request.Context(), activeOnly)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, coupons, "coupons retrieved successfully")
}

// ListAutoApply returns the coupons that currently apply to the given
// subtotal without a code being typed.
// GET /api/v1/coupons/auto-apply?subtotal=123.45
func (c *Controller) ListAutoApply(ctx *gin.Context) {
	subtotal, err := decimal.NewFromString(ctx.DefaultQuery("subtotal", "0"))
	if err != nil {
		response.HandleError(ctx, errors.BadRequest("invalid subtotal"), "invalid subtotal", http.StatusBadRequest)
		return
	}

	coupons, err := c.couponService.ListAutoApply(ctx.Request.Context(), subtotal)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, coupons, "coupons retrieved successfully")
}

// Deactivate turns a coupon off without deleting its history.
// PUT /api/v1/admin/coupons/:id/deactivate
func (c *Controller) Deactivate(ctx *gin.Context) {
	if err := c.couponService.Deactivate(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, nil, "coupon deactivated successfully")
}

// Delete removes a coupon.
// DELETE /api/v1/admin/coupons/:id
func (c *Controller) Delete(ctx *gin.Context) {
	if err := c.couponService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}
