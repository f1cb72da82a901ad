package router

import (
	"log/slog"

	"bookshelf/internal/microservices/http-api/handler"
	"bookshelf/internal/microservices/http-api/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps is everything the router mounts.
type Deps struct {
	Logger      *slog.Logger
	CORSOrigins []string
	RateLimiter *middleware.RateLimiter // nil disables rate limiting

	Users       *handler.UserHandler
	Books       *handler.BookHandler
	ReadingList *handler.ReadingListHandler
	Health      *handler.HealthHandler
}

// New builds the gin engine with the /api routes and /health.
func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	if d.Logger != nil {
		r.Use(middleware.RequestLogger(d.Logger))
	}
	r.Use(cors.New(corsConfig(d.CORSOrigins)))

	if d.Health != nil {
		d.Health.RegisterRoutes(r)
	}

	api := r.Group("/api")
	if d.RateLimiter != nil {
		api.Use(d.RateLimiter.Middleware())
	}
	d.Users.RegisterRoutes(api)
	d.Books.RegisterRoutes(api)
	d.ReadingList.RegisterRoutes(api)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, middleware.RequestIDHeader)
	cfg.ExposeHeaders = []string{middleware.RequestIDHeader}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
