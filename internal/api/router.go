package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/taskboard/pm-api/docs"
	"github.com/taskboard/pm-api/internal/api/handler"
	"github.com/taskboard/pm-api/internal/api/middleware"
	"github.com/taskboard/pm-api/internal/core/ports"
)

// Version is reported by the API index and the OpenAPI document.
const Version = "1.0.0"

// Services are the use cases exposed over HTTP.
type Services struct {
	Users    ports.UserService
	Projects ports.ProjectService
	Tasks    ports.TaskService
	Workflow ports.WorkflowService
	Comments ports.CommentService
	Metrics  ports.MetricsService
}

// Options tune the router. Zero values are usable: no base path, any
// origin, no rate limiting and the default Prometheus registry.
type Options struct {
	BasePath    string
	CORSOrigins []string
	Limiter     middleware.Limiter
	Probes      []handler.Probe
	Registerer  prometheus.Registerer
	Gatherer    prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
// The REST API is mounted at BasePath + "/api".
func NewRouter(svc Services, opts Options, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	if opts.Registerer == nil {
		opts.Registerer = prometheus.DefaultRegisterer
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{AllowOrigins: origins}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "pm",
		Registerer: opts.Registerer,
	}))

	// --- Operational endpoints (not rate limited) ---
	health := handler.NewHealthHandler(opts.Probes...)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: opts.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- REST API ---
	prefix := opts.BasePath + "/api"
	g := e.Group(prefix, middleware.RateLimit(opts.Limiter, log))

	index := handler.NewIndexHandler(Version, prefix)
	g.GET("", index.Index)
	g.GET("/", index.Index)

	users := handler.NewUserHandler(svc.Users)
	g.GET("/users", users.List)
	g.POST("/users", users.Create)
	g.GET("/users/:id", users.Get)
	g.PUT("/users/:id", users.Update)
	g.DELETE("/users/:id", users.Delete)

	projects := handler.NewProjectHandler(svc.Projects)
	g.GET("/projects", projects.List)
	g.POST("/projects", projects.Create)
	g.GET("/projects/:id", projects.Get)
	g.PUT("/projects/:id", projects.Update)
	g.DELETE("/projects/:id", projects.Delete)

	tasks := handler.NewTaskHandler(svc.Tasks, svc.Workflow)
	g.GET("/tasks", tasks.List)
	g.POST("/tasks", tasks.Create)
	g.GET("/tasks/:id", tasks.Get)
	g.PUT("/tasks/:id", tasks.Update)
	g.PATCH("/tasks/:id/status", tasks.UpdateStatus)
	g.DELETE("/tasks/:id", tasks.Delete)
	g.GET("/tasks/:id/activity", tasks.Activity)

	comments := handler.NewCommentHandler(svc.Comments)
	g.GET("/comments", comments.List)
	g.POST("/comments", comments.Create)
	g.DELETE("/comments/:id", comments.Delete)

	metricsHandler := handler.NewMetricsHandler(svc.Metrics)
	g.GET("/metrics/overview", metricsHandler.Overview)
	g.GET("/metrics/project/:id", metricsHandler.Project)

	return e
}
