package router

import (
	"time"

	"github.com/fastcrm/fastcrm/internal/handler"
	"github.com/fastcrm/fastcrm/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Options carries router-level tuning.
type Options struct {
	AllowedOrigins []string
	// Credential endpoints get a tighter limit than the rest of the API.
	AuthRateLimit  int
	AuthRateWindow time.Duration
	// Directory served at / for the SPA. Empty disables it.
	StaticDir string
}

// Router wires handlers and middleware into the gin engine.
type Router struct {
	auth      *handler.AuthHandler
	customers *handler.CustomerHandler
	admin     *handler.AdminHandler
	health    *handler.HealthHandler
	authMW    *middleware.AuthMiddleware
	opts      Options
}

func NewRouter(
	auth *handler.AuthHandler,
	customers *handler.CustomerHandler,
	admin *handler.AdminHandler,
	health *handler.HealthHandler,
	authMW *middleware.AuthMiddleware,
	opts Options,
) *Router {
	return &Router{
		auth:      auth,
		customers: customers,
		admin:     admin,
		health:    health,
		authMW:    authMW,
		opts:      opts,
	}
}

// Setup builds the engine with the full middleware chain and route
// tree.
func (r *Router) Setup() *gin.Engine {
	engine := gin.New()

	engine.Use(middleware.Recovery())
	engine.Use(middleware.RequestContext())
	engine.Use(middleware.RequestLogger())
	engine.Use(middleware.CORS(r.opts.AllowedOrigins))

	api := engine.Group("/api")
	{
		api.GET("/health", r.health.Check)

		r.setupAuthRoutes(api)
		r.setupCustomerRoutes(api)
		r.setupAdminRoutes(api)
	}

	if r.opts.StaticDir != "" {
		engine.Static("/static", r.opts.StaticDir)
		engine.StaticFile("/", r.opts.StaticDir+"/index.html")
	}

	return engine
}
