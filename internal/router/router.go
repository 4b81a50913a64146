package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/lost-and-found/internal/config"
	"github.com/iliyamo/lost-and-found/internal/handler"
	"github.com/iliyamo/lost-and-found/internal/middleware"
	"github.com/iliyamo/lost-and-found/web"
)

// Register wires every route of the application onto the provided Echo
// instance.  Public browse endpoints carry no middleware; everything that
// mutates state or exposes caller-specific data sits behind JWTAuth.  The
// Redis client may be nil, in which case the response cache is disabled.
func Register(e *echo.Echo, a *handler.AuthHandler, items *handler.ItemHandler, claims *handler.ClaimHandler, cfg config.Config, rdb *redis.Client) {
	// Liveness probe for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	jwt := middleware.JWTAuth(cfg.JWTSecret)

	// Auth endpoints.  Register and login issue tokens; /auth/me resolves
	// the caller from a valid token.
	auth := e.Group("/auth")
	auth.POST("/register", a.Register)
	auth.POST("/login", a.Login)
	auth.GET("/me", a.Me, jwt)

	// Item endpoints.  Browsing is public and the list endpoint is cached;
	// create/update/delete require authentication (ownership is enforced
	// inside the handlers, where the item's owner is known).
	cache := middleware.ResponseCache(config.LoadCacheConfig(), rdb)
	e.GET("/items", items.List, cache)
	e.GET("/items/:id", items.Get)
	e.POST("/items", items.Create, jwt)
	e.PUT("/items/:id", items.Update, jwt)
	e.DELETE("/items/:id", items.Delete, jwt)

	// Claim endpoints are caller-scoped throughout, so the whole group is
	// protected.
	cg := e.Group("/claims", jwt)
	cg.GET("", claims.List)
	cg.POST("", claims.Create)
	cg.PUT("/:id", claims.UpdateStatus)

	// The embedded browser client.  Explicitly registered routes above take
	// precedence over the static wildcard.
	e.StaticFS("/", web.StaticFS())
}
