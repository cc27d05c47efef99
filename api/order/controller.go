// Package order serves the checkout workflow. All routes require an
// authenticated user; status advancement is an admin operation.
package order

import (
	"net/http"
	"strconv"

	"shopcore/api/middleware"
	"shopcore/api/response"
	orderapp "shopcore/application/order"
	"shopcore/domain/order"
	"shopcore/pkg/errors"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	orderService *orderapp.Service
}

func NewController(orderService *orderapp.Service) *Controller {
	return &Controller{orderService: orderService}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	orderGroup := router.Group("/orders")
	{
		orderGroup.POST("", c.CreateOrder)
		orderGroup.GET("", c.ListOrders)
		orderGroup.GET("/:id", c.GetOrder)
		orderGroup.GET("/by-number/:number", c.GetOrderByNumber)
		orderGroup.POST("/:id/cancel", c.CancelOrder)
	}
	router.PUT("/admin/orders/:id/status", c.AdvanceStatus)
}

// CreateOrder runs the checkout. Supplied coupon codes are applied
// best-effort; each comes back tagged applied or rejected.
// POST /api/v1/orders
func (c *Controller) CreateOrder(ctx *gin.Context) {
	var req orderapp.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	req.UserID = middleware.UserID(ctx)

	result, err := c.orderService.CreateOrder(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, result, "order created successfully")
}

// GetOrder returns one of the caller's orders.
// GET /api/v1/orders/:id
func (c *Controller) GetOrder(ctx *gin.Context) {
	o, err := c.orderService.GetOrder(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, o, "order retrieved successfully")
}

// GetOrderByNumber looks an order up by its human-readable number.
// GET /api/v1/orders/by-number/:number
func (c *Controller) GetOrderByNumber(ctx *gin.Context) {
	o, err := c.orderService.GetOrderByNumber(ctx.Request.Context(), middleware.UserID(ctx), ctx.Param("number"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, o, "order retrieved successfully")
}

// ListOrders returns the caller's order history, newest first.
// GET /api/v1/orders
func (c *Controller) ListOrders(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))

	result, err := c.orderService.ListOrders(ctx.Request.Context(), middleware.UserID(ctx), page, pageSize)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandlePaginated(ctx, result.Orders,
		response.NewPagination(result.Page, result.PageSize, result.Total),
		"orders retrieved successfully")
}

// CancelOrder cancels one of the caller's orders and restores its stock.
// POST /api/v1/orders/:id/cancel
func (c *Controller) CancelOrder(ctx *gin.Context) {
	var req orderapp.CancelOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	req.UserID = middleware.UserID(ctx)
	req.OrderID = ctx.Param("id")

	o, err := c.orderService.CancelOrder(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, o, "order cancelled successfully")
}

type advanceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdvanceStatus moves an order one step along the fulfilment chain.
// PUT /api/v1/admin/orders/:id/status
func (c *Controller) AdvanceStatus(ctx *gin.Context) {
	var req advanceStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	target, ok := order.ParseStatus(req.Status)
	if !ok {
		response.HandleError(ctx, errors.BadRequest("unknown order status"), "unknown order status", http.StatusBadRequest)
		return
	}

	o, err := c.orderService.Advance(ctx.Request.Context(), ctx.Param("id"), target)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, o, "order status updated successfully")
}
