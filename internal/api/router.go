package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/staffhub/employee-system/internal/api/handler"
	"github.com/staffhub/employee-system/internal/api/middleware"
	"github.com/staffhub/employee-system/internal/core/domain"
	"github.com/staffhub/employee-system/internal/core/ports"
	"github.com/staffhub/employee-system/internal/core/service"
	mongodb "github.com/staffhub/employee-system/internal/infrastructure/db/mongo"
	redisdb "github.com/staffhub/employee-system/internal/infrastructure/db/redis"
)

// Options carries the process-wide settings the router needs.
type Options struct {
	JWTSecret string
	TokenTTL  time.Duration
	Audit     ports.AuditRecorder
}

// Services groups the application services the routes dispatch to.
type Services struct {
	Auth     ports.AuthService
	Employee ports.EmployeeService
	Project  ports.ProjectService
	Leave    ports.LeaveService
}

// NewRouter wires the Mongo- and Redis-backed implementations and returns the
// configured Echo instance.
func NewRouter(db *mongo.Database, rdb *redis.Client, log zerolog.Logger, opts Options) *echo.Echo {
	authRepo := mongodb.NewUserRepository(db)
	throttle := redisdb.NewLoginThrottle(rdb)
	authService := service.NewAuthService(authRepo, opts.JWTSecret, opts.TokenTTL, log).
		WithThrottle(throttle).
		WithAudit(opts.Audit)

	employeeRepo := mongodb.NewEmployeeRepository(db)
	employeeService := service.NewEmployeeService(employeeRepo, log)

	projectRepo := mongodb.NewProjectRepository(db)
	projectService := service.NewProjectService(projectRepo, employeeRepo, log)

	leaveRepo := mongodb.NewLeaveRepository(db)
	leaveService := service.NewLeaveService(leaveRepo, log).WithAudit(opts.Audit)

	e := NewRouterWithServices(Services{
		Auth:     authService,
		Employee: employeeService,
		Project:  projectService,
		Leave:    leaveService,
	}, log, opts)

	// Readiness needs the live connections, so it is wired here rather than
	// in the infrastructure-free route setup.
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	return e
}

// NewRouterWithServices registers all routes against already-constructed
// services. It carries no infrastructure of its own, so the full chain of
// middleware, handlers and error rendering stays reachable without a
// database.
func NewRouterWithServices(svc Services, log zerolog.Logger, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("staffhub"))

	authHandler := handler.NewAuthHandler(svc.Auth)
	employeeHandler := handler.NewEmployeeHandler(svc.Employee)
	projectHandler := handler.NewProjectHandler(svc.Project)
	leaveHandler := handler.NewLeaveHandler(svc.Leave)

	authenticated := middleware.Auth(opts.JWTSecret, svc.Auth, log)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/verify", authHandler.Verify, authenticated)

	// --- Employee routes (admin only) ---
	employees := e.Group("/api/employees", authenticated, adminOnly)
	employees.POST("", employeeHandler.Create)
	employees.GET("", employeeHandler.List)
	employees.GET("/:id", employeeHandler.Get)
	employees.PUT("/:id", employeeHandler.Update)
	employees.DELETE("/:id", employeeHandler.Delete)

	// --- Project routes (admin only) ---
	projects := e.Group("/api/projects", authenticated, adminOnly)
	projects.POST("", projectHandler.Create)
	projects.GET("", projectHandler.List)
	projects.GET("/:id", projectHandler.Get)
	projects.PUT("/:id", projectHandler.Update)
	projects.DELETE("/:id", projectHandler.Delete)

	// --- Leave routes ---
	leave := e.Group("/api/leave", authenticated)
	leave.POST("/request", leaveHandler.Request)
	leave.GET("/my-requests", leaveHandler.ListMine)
	leave.GET("/all-requests", leaveHandler.ListAll, adminOnly)
	leave.PUT("/requests/:id", leaveHandler.Decide, adminOnly)

	// --- Observability (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness) // liveness – is the process alive?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
