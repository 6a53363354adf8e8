// @title        Project Management API
// @version      1.0.0
// @description  Users, projects, tasks with a status workflow, comments and dashboard metrics.
// @BasePath     /api
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskboard/pm-api/docs"
	"github.com/taskboard/pm-api/internal/api"
	"github.com/taskboard/pm-api/internal/api/handler"
	"github.com/taskboard/pm-api/internal/api/middleware"
	"github.com/taskboard/pm-api/internal/core/ports"
	"github.com/taskboard/pm-api/internal/core/service"
	"github.com/taskboard/pm-api/internal/infrastructure/config"
	"github.com/taskboard/pm-api/internal/infrastructure/db/memory"
	mongodb "github.com/taskboard/pm-api/internal/infrastructure/db/mongo"
	redisdb "github.com/taskboard/pm-api/internal/infrastructure/db/redis"
	"github.com/taskboard/pm-api/internal/infrastructure/queue"
	"github.com/taskboard/pm-api/pkg/logger"
)

// repositories groups the persistence adapters chosen by STORE_DRIVER.
type repositories struct {
	users    ports.UserRepository
	projects ports.ProjectRepository
	tasks    ports.TaskRepository
	comments ports.CommentRepository
	activity ports.ActivityRepository
	metrics  ports.MetricsRepository
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "pm-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	var probes []handler.Probe

	// --- Persistence ---
	var repos repositories
	switch cfg.StoreDriver {
	case config.StoreMemory:
		store := memory.NewStore()
		repos = repositories{
			users:    memory.NewUserRepository(store),
			projects: memory.NewProjectRepository(store),
			tasks:    memory.NewTaskRepository(store),
			comments: memory.NewCommentRepository(store),
			activity: memory.NewActivityRepository(store),
			metrics:  memory.NewMetricsRepository(store),
		}
		log.Warn().Msg("using in-memory store; data is lost on restart")
	default:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			return err
		}
		repos = repositories{
			users:    mongodb.NewUserRepository(db),
			projects: mongodb.NewProjectRepository(db),
			tasks:    mongodb.NewTaskRepository(db),
			comments: mongodb.NewCommentRepository(db),
			activity: mongodb.NewActivityRepository(db),
			metrics:  mongodb.NewMetricsRepository(db),
		}
		probes = append(probes, mongoProbe(client))
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
	}

	// --- Rate limiting (optional) ---
	var limiter middleware.Limiter
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:    cfg.Redis.Addr,
			DB:      cfg.Redis.DB,
			Timeout: cfg.Redis.Timeout,
		})
		if err != nil {
			// Keep serving without a limiter rather than refusing to start.
			log.Warn().Err(err).Msg("redis unavailable; rate limiting disabled")
		} else {
			defer rdb.Close()
			limiter = redisdb.NewFixedWindowLimiter(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window)
			probes = append(probes, redisProbe(rdb))
		}
	}

	// --- Activity trail ---
	activity := service.NewActivityService(repos.activity, log)
	dispatcher := queue.NewDispatcher(cfg.ActivityWorkers, activity, log)
	dispatcher.Start(context.WithoutCancel(ctx))

	// --- HTTP ---
	docs.SwaggerInfo.BasePath = cfg.BasePath + "/api"
	e := api.NewRouter(api.Services{
		Users:    service.NewUserService(repos.users, log),
		Projects: service.NewProjectService(repos.projects, log),
		Tasks:    service.NewTaskService(repos.tasks, repos.activity, dispatcher, log),
		Workflow: service.NewWorkflowService(repos.tasks, dispatcher, log),
		Comments: service.NewCommentService(repos.comments, repos.tasks, log),
		Metrics:  service.NewMetricsService(repos.metrics),
	}, api.Options{
		BasePath:    cfg.BasePath,
		CORSOrigins: cfg.CORSOrigins,
		Limiter:     limiter,
		Probes:      probes,
	}, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("server started")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		dispatcher.Stop()
		return fmt.Errorf("listen: %w", err)
	}

	log.Info().Msg("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	dispatcher.Stop()

	log.Info().Msg("server exited")
	return nil
}

func mongoProbe(client *mongo.Client) handler.Probe {
	return handler.Probe{
		Name:  "mongodb",
		Check: func(ctx context.Context) error { return client.Ping(ctx, nil) },
	}
}

func redisProbe(rdb *goredis.Client) handler.Probe {
	return handler.Probe{
		Name:  "redis",
		Check: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	}
}
