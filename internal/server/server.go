package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hongminglow/blogcart-be/internal/auth"
	"github.com/hongminglow/blogcart-be/internal/config"
	"github.com/hongminglow/blogcart-be/internal/http/handlers"
	"github.com/hongminglow/blogcart-be/internal/middleware"
	"github.com/hongminglow/blogcart-be/internal/storage"
)

// Stores bundles the per-entity persistence interfaces the routes need.
type Stores struct {
	Users    storage.UserStore
	Posts    storage.PostStore
	Products storage.ProductStore
}

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, stores Stores, logger *zap.Logger) *Server {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.Logging(logger))

	tokenManager := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	requireUser := middleware.RequireUser(tokenManager, stores.Users, logger)
	authLimiter := middleware.NewRateLimiter(cfg.AuthRatePerMinute, cfg.AuthRateBurst)

	handlers.NewHealthHandler(time.Now()).Register(r)
	handlers.NewUsersHandler(stores.Users, tokenManager, logger).Register(r, authLimiter.Middleware)
	handlers.NewPostsHandler(stores.Posts, logger).Register(r, requireUser)
	// Catalog routes are public by design: the original system gates post
	// mutation but leaves the product catalog open.
	handlers.NewProductsHandler(stores.Products, logger).Register(r)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
