// Package catalog serves the product catalog. Reads are public; writes
// sit under /admin and are registered on the authenticated group.
package catalog

import (
	"net/http"
	"strconv"

	"shopcore/api/middleware"
	"shopcore/api/response"
	catalogapp "shopcore/application/catalog"
	"shopcore/domain/catalog"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	catalogService *catalogapp.Service
}

func NewController(catalogService *catalogapp.Service) *Controller {
	return &Controller{catalogService: catalogService}
}

func (c *Controller) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/products", c.ListProducts)
	router.GET("/products/:id", c.GetProduct)
	router.GET("/categories", c.ListCategories)
	router.GET("/manufacturers", c.ListManufacturers)
	router.GET("/publishers", c.ListPublishers)
}

func (c *Controller) RegisterAdminRoutes(router *gin.RouterGroup) {
	adminGroup := router.Group("/admin")
	{
		adminGroup.POST("/products", c.CreateProduct)
		adminGroup.PUT("/products/:id", c.UpdateProduct)
		adminGroup.DELETE("/products/:id", c.DeactivateProduct)
		adminGroup.POST("/products/:id/stock-adjustments", c.AdjustStock)
		adminGroup.GET("/products/:id/stock-movements", c.ListMovements)
		adminGroup.POST("/categories", c.CreateCategory)
		adminGroup.DELETE("/categories/:id", c.DeactivateCategory)
		adminGroup.POST("/manufacturers", c.CreateManufacturer)
		adminGroup.POST("/publishers", c.CreatePublisher)
	}
}

// ListProducts returns a filtered catalog page.
// GET /api/v1/products
func (c *Controller) ListProducts(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))

	filter := catalog.ListFilter{
		CategoryID:     ctx.Query("category_id"),
		ManufacturerID: ctx.Query("manufacturer_id"),
		PublisherID:    ctx.Query("publisher_id"),
		ActiveOnly:     ctx.DefaultQuery("active_only", "true") == "true",
		Page:           page,
		PageSize:       pageSize,
	}

	products, total, err := c.catalogService.ListProducts(ctx.Request.Context(), filter)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandlePaginated(ctx, products,
		response.NewPagination(filter.Page, filter.PageSize, total),
		"products retrieved successfully")
}

// GetProduct returns one product.
// GET /api/v1/products/:id
func (c *Controller) GetProduct(ctx *gin.Context) {
	product, err := c.catalogService.GetProduct(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, product, "product retrieved successfully")
}

// CreateProduct registers a product with optional initial stock.
// POST /api/v1/admin/products
func (c *Controller) CreateProduct(ctx *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	product, err := c.catalogService.CreateProduct(ctx.Request.Context(), req, middleware.UserID(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, product, "product created successfully")
}

// UpdateProduct replaces the product's editable fields. Stock is not
// among them; it only changes through adjustments and orders.
// PUT /api/v1/admin/products/:id
func (c *Controller) UpdateProduct(ctx *gin.Context) {
	var req catalogapp.UpdateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	req.ID = ctx.Param("id")

	product, err := c.catalogService.UpdateProduct(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, product, "product updated successfully")
}

// DeactivateProduct hides the product from the catalog.
// DELETE /api/v1/admin/products/:id
func (c *Controller) DeactivateProduct(ctx *gin.Context) {
	if err := c.catalogService.DeactivateProduct(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

// AdjustStock applies a signed manual stock correction.
// POST /api/v1/admin/products/:id/stock-adjustments
func (c *Controller) AdjustStock(ctx *gin.Context) {
	var req catalogapp.AdjustStockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	req.ProductID = ctx.Param("id")
	req.ActorID = middleware.UserID(ctx)

	movement, err := c.catalogService.AdjustStock(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, movement, "stock adjusted successfully")
}

// ListMovements returns the product's stock ledger, newest first.
// GET /api/v1/admin/products/:id/stock-movements
func (c *Controller) ListMovements(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))

	movements, err := c.catalogService.ListMovements(ctx.Request.Context(), ctx.Param("id"), limit)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, movements, "stock movements retrieved successfully")
}

type createCategoryRequest struct {
	Name     string `json:"name" binding:"required"`
	Slug     string `json:"slug" binding:"required"`
	ParentID string `json:"parent_id"`
}

// CreateCategory adds a category, optionally nested under a parent.
// POST /api/v1/admin/categories
func (c *Controller) CreateCategory(ctx *gin.Context) {
	var req createCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	category, err := c.catalogService.CreateCategory(ctx.Request.Context(), req.Name, req.Slug, req.ParentID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, category, "category created successfully")
}

// ListCategories returns all categories.
// GET /api/v1/categories
func (c *Controller) ListCategories(ctx *gin.Context) {
	activeOnly := ctx.DefaultQuery("active_only", "true") == "true"

	categories, err := c.catalogService.ListCategories(ctx.Request.Context(), activeOnly)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, categories, "categories retrieved successfully")
}

// DeactivateCategory hides a category.
// DELETE /api/v1/admin/categories/:id
func (c *Controller) DeactivateCategory(ctx *gin.Context) {
	if err := c.catalogService.DeactivateCategory(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

type createManufacturerRequest struct {
	Name    string `json:"name" binding:"required"`
	Country string `json:"country"`
}

// CreateManufacturer adds a manufacturer.
// POST /api/v1/admin/manufacturers
func (c *Controller) CreateManufacturer(ctx *gin.Context) {
	var req createManufacturerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	manufacturer, err := c.catalogService.CreateManufacturer(ctx.Request.Context(), req.Name, req.Country)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, manufacturer, "manufacturer created successfully")
}

// ListManufacturers returns all manufacturers.
// GET /api/v1/manufacturers
func (c *Controller) ListManufacturers(ctx *gin.Context) {
	activeOnly := ctx.DefaultQuery("active_only", "true") == "true"

	manufacturers, err := c.catalogService.ListManufacturers(ctx.Request.Context(), activeOnly)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, manufacturers, "manufacturers retrieved successfully")
}

type createPublisherRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreatePublisher adds a publisher.
// POST /api/v1/admin/publishers
func (c *Controller) CreatePublisher(ctx *gin.Context) {
	var req createPublisherRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	publisher, err := c.catalogService.CreatePublisher(ctx.Request.Context(), req.Name)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, publisher, "publisher created successfully")
}

// ListPublishers returns all publishers.
// GET /api/v1/publishers
func (c *Controller) ListPublishers(ctx *gin.Context) {
	activeOnly := ctx.DefaultQuery("active_only", "true") == "true"

	publishers, err := c.catalogService.ListPublishers(ctx.Request.Context(), activeOnly)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, publishers, "publishers retrieved successfully")
}
