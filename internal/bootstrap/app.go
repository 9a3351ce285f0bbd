package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/taskmgmt/task-management-api/config"
	"github.com/taskmgmt/task-management-api/internal/auth/authz"
	"github.com/taskmgmt/task-management-api/internal/auth/cognito"
	authhttp "github.com/taskmgmt/task-management-api/internal/auth/http"
	"github.com/taskmgmt/task-management-api/internal/auth/revocation"
	authservice "github.com/taskmgmt/task-management-api/internal/auth/service"
	"github.com/taskmgmt/task-management-api/internal/auth/token"
	projectshttp "github.com/taskmgmt/task-management-api/internal/projects/http"
	"github.com/taskmgmt/task-management-api/internal/projects/repository"
	projectservice "github.com/taskmgmt/task-management-api/internal/projects/service"
	"github.com/taskmgmt/task-management-api/internal/storage/postgres"
	"github.com/taskmgmt/task-management-api/internal/users"
)

const ServiceName = "task-management-api"

// App owns the long-lived resources of the API server.
type App struct {
	Router *gin.Engine

	pool     *pgxpool.Pool
	redis    *redis.Client
	verifier *token.Verifier
}

// NewApp connects to every backing service and builds the router.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{}
	ok := false
	defer func() {
		if !ok {
			app.Close()
		}
	}()

	pool, err := OpenDB(ctx, cfg.Database, DBOptions{})
	if err != nil {
		return nil, err
	}
	app.pool = pool

	var revoked revocation.Store = revocation.NoopStore{}
	rdb, err := OpenRedis(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	if rdb != nil {
		app.redis = rdb
		revoked = revocation.NewRedisStore(rdb, cfg.Auth.TokenTTL)
	} else {
		slog.Warn("REDIS_ADDR not set, logout will not revoke issued tokens")
	}

	idp, err := cognito.NewFromConfig(ctx, cfg.Cognito)
	if err != nil {
		return nil, fmt.Errorf("cognito client: %w", err)
	}

	verifier, err := token.NewJWKSVerifier(cfg.Cognito)
	if err != nil {
		return nil, fmt.Errorf("jwks: %w", err)
	}
	app.verifier = verifier

	policy, err := authz.New()
	if err != nil {
		return nil, fmt.Errorf("authz: %w", err)
	}

	projectRepo := repository.NewProjectRepository(pool)
	taskRepo := repository.NewTaskRepository(pool)
	tx := postgres.NewTxManager(pool)

	app.Router = BuildRouter(RouterDeps{
		ServiceName:        ServiceName,
		Version:            cfg.App.Version,
		CORSOrigins:        cfg.Server.CORSOrigins,
		DB:                 pool,
		Verifier:           verifier,
		Revocations:        revoked,
		Policy:             policy,
		RateLimitPerMinute: cfg.Auth.RateLimitPerMinute,
		RateLimitBurst:     cfg.Auth.RateLimitBurst,
		Auth:               authhttp.New(authservice.NewAuthService(idp, revoked)),
		Projects: projectshttp.New(
			projectservice.NewProjectService(projectRepo, taskRepo, tx),
			projectservice.NewTaskService(projectRepo, taskRepo, tx),
		),
		Users: users.NewHandler(users.NewService(idp)),
	})

	ok = true
	return app, nil
}

func (a *App) Close() {
	if a.verifier != nil {
		a.verifier.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}
}
