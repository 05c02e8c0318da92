// Package app assembles repositories, services and handlers into an Echo
// server.
package app

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"emsapi/internal/auth"
	"emsapi/internal/cache"
	"emsapi/internal/config"
	"emsapi/internal/db"
	"emsapi/internal/handler"
	"emsapi/internal/repository"
	"emsapi/internal/router"
	"emsapi/internal/service"
)

// Deps are the long-lived resources the server is built on. Redis may be
// nil, in which case sessions live in process memory and reads are not
// cached.
type Deps struct {
	Config *config.Config
	Log    *zap.Logger
	DB     *db.Client
	Redis  *redis.Client
}

// Services is the service layer shared by the HTTP server and the CLI.
type Services struct {
	Auth       service.AuthService
	User       service.UserService
	Employee   service.EmployeeService
	Salary     service.SalaryService
	Department service.DepartmentService
	Report     service.ReportService

	Sessions *auth.SessionManager
	Cache    *cache.Client
}

// SessionStore picks the store selected by session.store.
func SessionStore(cfg config.SessionConfig, rdb *redis.Client) auth.SessionStore {
	if cfg.Store == "redis" && rdb != nil {
		return auth.NewRedisSessionStore(rdb)
	}
	return auth.NewMemorySessionStore()
}

// NewServices builds repositories and services on top of d.
func NewServices(d Deps) *Services {
	cfg := d.Config
	gormDB := d.DB.Gorm()

	cacheClient := cache.New(d.Redis, cfg.Cache.TTL, d.Log)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	employeeRepo := repository.NewEmployeeRepository(gormDB)
	salaryRepo := repository.NewSalaryRepository(gormDB)
	departmentRepo := repository.NewDepartmentRepository(gormDB)
	reportRepo := repository.NewReportRepository(gormDB)

	// Initialize auth components
	sessions := auth.NewSessionManager(
		auth.NewTokenService(cfg.Session.Secret),
		SessionStore(cfg.Session, d.Redis),
		cfg.Session.TTL,
	)

	return &Services{
		Auth:       service.NewAuthService(userRepo, sessions, cfg.Auth.BcryptCost),
		User:       service.NewUserService(userRepo, cacheClient),
		Employee:   service.NewEmployeeService(employeeRepo, cacheClient),
		Salary:     service.NewSalaryService(salaryRepo, employeeRepo),
		Department: service.NewDepartmentService(departmentRepo),
		Report:     service.NewReportService(reportRepo, departmentRepo, cfg.Payroll.Rate(), d.Log),
		Sessions:   sessions,
		Cache:      cacheClient,
	}
}

// NewServer wires every layer and registers the routes.
func NewServer(d Deps) *echo.Echo {
	svc := NewServices(d)

	handlers := router.Handlers{
		Auth: handler.NewAuthHandler(svc.Auth, handler.CookieConfig{
			Name:   d.Config.Session.CookieName,
			Secure: d.Config.Session.SecureCookie,
		}),
		User:       handler.NewUserHandler(svc.User),
		Employee:   handler.NewEmployeeHandler(svc.Employee),
		Salary:     handler.NewSalaryHandler(svc.Salary),
		Department: handler.NewDepartmentHandler(svc.Department),
		Report:     handler.NewReportHandler(svc.Report),
		Health:     handler.NewHealthHandler(d.DB, svc.Cache, d.Log),
	}

	e := echo.New()
	router.Register(e, d.Config, d.Log, handlers, svc.Sessions, d.DB)
	return e
}
