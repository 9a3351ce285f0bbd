package bootstrap

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpapi "github.com/taskmgmt/task-management-api/internal/api/http"
	"github.com/taskmgmt/task-management-api/internal/api/http/middleware"
	"github.com/taskmgmt/task-management-api/internal/api/http/respond"
	authhttp "github.com/taskmgmt/task-management-api/internal/auth/http"
	authmw "github.com/taskmgmt/task-management-api/internal/auth/middleware"
	"github.com/taskmgmt/task-management-api/internal/auth/revocation"
	projectshttp "github.com/taskmgmt/task-management-api/internal/projects/http"
	"github.com/taskmgmt/task-management-api/internal/users"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	CORSOrigins []string
	DB          httpapi.Pinger

	Verifier    authmw.TokenVerifier
	Revocations revocation.Store
	Policy      authmw.RoutePolicy

	RateLimitPerMinute int
	RateLimitBurst     int

	Auth     *authhttp.Handler
	Projects *projectshttp.Handler
	Users    *users.Handler
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.NoRoute(respond.NoRoute)
	r.NoMethod(respond.NoMethod)

	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.Metrics())
	r.Use(cors.New(corsConfig(dep.CORSOrigins)))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB)
	healthHandler.RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	authPublic := api.Group("/auth", middleware.RateLimitMiddleware(dep.RateLimitPerMinute, dep.RateLimitBurst))
	dep.Auth.RegisterPublic(authPublic)

	protected := api.Group("", authmw.BearerAuth(dep.Verifier, dep.Revocations), authmw.Authorize(dep.Policy))
	dep.Auth.RegisterProtected(protected.Group("/auth"))
	dep.Projects.RegisterProjects(protected.Group("/projects"))
	dep.Projects.RegisterTasks(protected.Group("/tasks"))
	dep.Users.Register(protected.Group("/users"))

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
