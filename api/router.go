package api

import (
	"shopcore/api/address"
	"shopcore/api/auth"
	"shopcore/api/blog"
	"shopcore/api/cart"
	"shopcore/api/catalog"
	"shopcore/api/coupon"
	"shopcore/api/health"
	"shopcore/api/middleware"
	"shopcore/api/order"
	"shopcore/api/review"
	"shopcore/config"

	"github.com/gin-gonic/gin"
)

// Controllers bundles everything the router mounts.
type Controllers struct {
	Health  *health.Controller
	Auth    *auth.Controller
	Catalog *catalog.Controller
	Order   *order.Controller
	Coupon  *coupon.Controller
	Cart    *cart.Controller
	Address *address.Controller
	Review  *review.Controller
	Blog    *blog.Controller
}

type Router struct {
	engine      *gin.Engine
	config      *config.Config
	controllers Controllers
}

func NewRouter(cfg *config.Config, controllers Controllers) *Router {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Middleware order matters: the request id must exist before
	// anything logs, and recovery must wrap everything below it.
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logging())
	engine.Use(middleware.CORS(&cfg.CORS))
	engine.Use(middleware.RateLimit(&cfg.Server.RateLimit))

	return &Router{
		engine:      engine,
		config:      cfg,
		controllers: controllers,
	}
}

// SetupRoutes mounts the public and authenticated route groups.
func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group("/api/v1")
	{
		r.controllers.Health.RegisterRoutes(apiGroup)
		r.controllers.Auth.RegisterRoutes(apiGroup)
		r.controllers.Catalog.RegisterPublicRoutes(apiGroup)
		r.controllers.Coupon.RegisterPublicRoutes(apiGroup)
		r.controllers.Review.RegisterPublicRoutes(apiGroup)
		r.controllers.Blog.RegisterPublicRoutes(apiGroup)

		userGroup := apiGroup.Group("")
		userGroup.Use(middleware.Authenticated())
		{
			r.controllers.Order.RegisterRoutes(userGroup)
			r.controllers.Cart.RegisterRoutes(userGroup)
			r.controllers.Address.RegisterRoutes(userGroup)
			r.controllers.Review.RegisterUserRoutes(userGroup)
			r.controllers.Blog.RegisterUserRoutes(userGroup)
			r.controllers.Catalog.RegisterAdminRoutes(userGroup)
			r.controllers.Coupon.RegisterAdminRoutes(userGroup)
		}
	}

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/api/v1/health",
		})
	})
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
