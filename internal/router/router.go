package router

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"emsapi/internal/auth"
	"emsapi/internal/config"
	apperrors "emsapi/internal/errors"
	"emsapi/internal/handler"
)

// Handlers groups the HTTP handlers mounted by Register.
type Handlers struct {
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Employee   *handler.EmployeeHandler
	Salary     *handler.SalaryHandler
	Department *handler.DepartmentHandler
	Report     *handler.ReportHandler
	Health     *handler.HealthHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log *zap.Logger,
	h Handlers,
	sessions *auth.SessionManager,
	db handler.Database,
) {
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = NewValidator()

	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: true,
	}))
	e.Use(requestLogger(log))

	e.GET("/healthz", h.Health.Healthz)
	e.GET("/readyz", h.Health.Readyz)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api", handler.RequireReady(db))

	// Public routes
	api.POST("/register", h.Auth.Register)
	api.POST("/login", h.Auth.Login)
	api.POST("/logout", h.Auth.Logout)

	// Secured routes (require a session cookie)
	secured := api.Group("", auth.RequireSession(sessions, cfg.Session.CookieName))

	secured.GET("/user", h.User.CurrentUser)

	secured.GET("/employees", h.Employee.List)
	secured.POST("/employees", h.Employee.Create)
	secured.GET("/employees/:id", h.Employee.Get)
	secured.PUT("/employees/:id", h.Employee.Update)
	secured.DELETE("/employees/:id", h.Employee.Delete)
	secured.GET("/employees/:id/salaries", h.Salary.ListByEmployee)

	secured.GET("/salaries", h.Salary.List)
	secured.POST("/salaries", h.Salary.Create)
	secured.PUT("/salaries/:id", h.Salary.Update)
	secured.DELETE("/salaries/:id", h.Salary.Delete)

	secured.GET("/departments", h.Department.List)
	secured.POST("/departments", h.Department.Create)
	secured.GET("/departments/:code", h.Department.Get)
	secured.PUT("/departments/:code", h.Department.Update)
	secured.DELETE("/departments/:code", h.Department.Delete)

	secured.GET("/reports/departments", h.Report.Departments)
	secured.GET("/reports/monthly-payroll", h.Report.MonthlyPayroll)
	secured.GET("/reports/monthly-payroll/departments", h.Report.DepartmentPayroll)
	secured.GET("/reports/monthly-payroll/export", h.Report.ExportMonthlyPayroll)
}

func requestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			)
			return nil
		},
	})
}

// NewHTTPErrorHandler renders every error as {message, code}. Domain errors
// go through MapErrorToHTTP; internal failures are logged with their cause.
func NewHTTPErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var (
			resp   *apperrors.HTTPError
			domain *apperrors.Error
			he     *echo.HTTPError
		)
		switch {
		case errors.As(err, &domain):
			resp = apperrors.MapErrorToHTTP(err)
		case errors.As(err, &he):
			resp = fromEchoError(he)
		default:
			resp = apperrors.MapErrorToHTTP(err)
		}

		if resp.StatusCode >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.Error(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(resp.StatusCode)
		} else {
			err = c.JSON(resp.StatusCode, resp.ToErrorResponse())
		}
		if err != nil {
			log.Error("write error response", zap.Error(err))
		}
	}
}

func fromEchoError(he *echo.HTTPError) *apperrors.HTTPError {
	msg := http.StatusText(he.Code)
	if s, ok := he.Message.(string); ok && s != "" {
		msg = s
	}
	var code string
	switch he.Code {
	case http.StatusBadRequest:
		code = "VALIDATION_ERROR"
	case http.StatusUnauthorized:
		code = "UNAUTHORIZED"
	case http.StatusNotFound:
		code = "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		code = "METHOD_NOT_ALLOWED"
	case http.StatusServiceUnavailable:
		code = "SERVICE_UNAVAILABLE"
	default:
		if he.Code >= http.StatusInternalServerError {
			return apperrors.NewHTTPError(he.Code, "Server error", "INTERNAL_ERROR")
		}
		code = strings.ToUpper(strings.ReplaceAll(http.StatusText(he.Code), " ", "_"))
	}
	return apperrors.NewHTTPError(he.Code, msg, code)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns a validator that reports fields by their JSON name.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.Validation("Invalid request body")
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "max":
		return apperrors.Validation(fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
	case "required":
		return apperrors.Validation(fmt.Sprintf("%s is required", fe.Field()))
	case "email":
		return apperrors.Validation(fmt.Sprintf("%s must be a valid email address", fe.Field()))
	default:
		return apperrors.Validation(fmt.Sprintf("%s is invalid", fe.Field()))
	}
}
