package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"libris/internal/infrastructure/config"
	"libris/internal/interfaces/http/middleware"
	"libris/internal/shared/authorization"
)

// Router owns the gin engine and the wired container behind it.
type Router struct {
	engine    *gin.Engine
	container *Container
}

// NewRouter builds the engine, wires the container, and registers all routes.
func NewRouter(database *gorm.DB, cfg *config.Config) (*Router, error) {
	container, err := NewContainer(database, cfg)
	if err != nil {
		return nil, err
	}

	gin.SetMode(cfg.Server.Mode)
	engine := gin.New()

	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger(container.log))
	engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	r := &Router{
		engine:    engine,
		container: container,
	}
	r.registerRoutes()

	return r, nil
}

func (r *Router) registerRoutes() {
	c := r.container

	r.engine.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	api := r.engine.Group("/api")

	// Credential endpoints are rate limited per client IP.
	authGroup := api.Group("/auth")
	authGroup.Use(c.rateLimiter.Limit())
	{
		authGroup.POST("/register", c.authHandler.Register)
		authGroup.POST("/login", c.authHandler.Login)
	}
	api.GET("/auth/me", c.authMiddleware.RequireAuth(), c.authHandler.Me)

	// The catalog is browsable without an account.
	api.GET("/books", c.bookHandler.ListBooks)
	api.GET("/books/available", c.bookHandler.ListAvailableBooks)

	authed := api.Group("")
	authed.Use(c.authMiddleware.RequireAuth())
	{
		authed.GET("/books/borrowed", c.lendingHandler.ListBorrowedBooks)
		authed.POST("/books/:id/borrow", c.rateLimiter.Limit(), c.lendingHandler.BorrowBook)
		authed.POST("/books/:id/return", c.lendingHandler.ReturnBook)

		authed.GET("/profile", c.userHandler.GetProfile)
		authed.PUT("/profile", c.userHandler.UpdateProfile)
	}

	// Registered after the static /books subpaths so gin resolves those first.
	api.GET("/books/:id", c.bookHandler.GetBook)

	admin := api.Group("")
	admin.Use(c.authMiddleware.RequireAuth(), authorization.RequireAdmin())
	{
		admin.POST("/books", c.bookHandler.CreateBook)
		admin.PUT("/books/:id", c.bookHandler.UpdateBook)
		admin.DELETE("/books/:id", c.bookHandler.DeleteBook)
		admin.GET("/books/all-borrowed", c.lendingHandler.ListAllBorrowedBooks)
		admin.POST("/books/:id/repair", c.lendingHandler.RepairAvailability)

		admin.GET("/loans", c.loanHandler.ListLoans)
		admin.DELETE("/loans/:id", c.loanHandler.DeleteLoan)

		admin.GET("/users", c.userHandler.ListUsers)
		admin.POST("/users", c.userHandler.CreateUser)
		admin.PUT("/users/:id", c.userHandler.UpdateUser)
		admin.DELETE("/users/:id", c.userHandler.DeleteUser)

		admin.GET("/students", c.studentHandler.ListStudents)
		admin.GET("/students/:id", c.studentHandler.GetStudent)
		admin.POST("/students", c.studentHandler.CreateStudent)
		admin.PUT("/students/:id", c.studentHandler.UpdateStudent)
		admin.DELETE("/students/:id", c.studentHandler.DeleteStudent)

		admin.GET("/dashboard/stats", c.dashboardHandler.GetStats)
	}
}

// Engine returns the underlying gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// Container returns the wired dependency container.
func (r *Router) Container() *Container {
	return r.container
}

// Shutdown releases container resources.
func (r *Router) Shutdown() error {
	return r.container.Shutdown()
}
