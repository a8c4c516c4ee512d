package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/campuscore/admin-portal/internal/api/handler"
	"github.com/campuscore/admin-portal/internal/api/middleware"
	"github.com/campuscore/admin-portal/internal/core/domain"
	"github.com/campuscore/admin-portal/internal/core/ports"
	"github.com/campuscore/admin-portal/internal/infrastructure/config"
)

// Services groups the application services the router wires to routes.
type Services struct {
	Auth     ports.AuthService
	Accounts ports.AccountService
	Photos   ports.PhotoService
	Refs     ports.ReferenceRepository
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, svc Services, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("admin_portal"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svc.Auth, cfg.Session.CookieName, cfg.Session.TTL, cfg.Session.Secure)
	userHandler := handler.NewUserHandler(svc.Accounts)
	photoHandler := handler.NewPhotoHandler(svc.Photos)
	dashboardHandler := handler.NewDashboardHandler()
	referenceHandler := handler.NewReferenceHandler(svc.Refs)

	sessionRequired := middleware.Session(cfg.Session.CookieName, svc.Auth)

	// --- Public routes ---
	e.GET("/login/roles", authHandler.Roles)
	e.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout)

	// --- Dashboards: one per role, each gated on membership of that role ---
	for _, role := range domain.AllRoles() {
		e.GET("/dashboard/"+string(role), dashboardHandler.For(role),
			sessionRequired, middleware.RequireRole(role))
	}

	// --- Admin panel ---
	admin := e.Group("/admin/panel", sessionRequired, middleware.RequireRole(domain.RoleAdmin))
	admin.GET("/users", userHandler.List)
	admin.POST("/users", userHandler.Create)
	admin.GET("/users/:id", userHandler.Get)
	admin.PUT("/users/:id", userHandler.Update)
	admin.DELETE("/users/:id", userHandler.Delete)
	admin.PATCH("/users/:id/toggle-active", userHandler.ToggleActive)
	admin.POST("/users/:id/photos", photoHandler.Upload)
	admin.GET("/users/:id/photos", photoHandler.List)
	admin.DELETE("/users/:id/photos/:photoID", photoHandler.Delete)
	admin.PATCH("/users/:id/photos/:photoID/set-profile", photoHandler.SetProfile)
	admin.GET("/departments", referenceHandler.Departments)
	admin.GET("/designations", referenceHandler.Designations)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
