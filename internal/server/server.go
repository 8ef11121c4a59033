// Package server wires repositories, services and handlers into the HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/tracker-api/internal/auth"
	"github.com/yukikurage/tracker-api/internal/authz"
	"github.com/yukikurage/tracker-api/internal/config"
	apierrors "github.com/yukikurage/tracker-api/internal/errors"
	"github.com/yukikurage/tracker-api/internal/handlers"
	"github.com/yukikurage/tracker-api/internal/logging"
	"github.com/yukikurage/tracker-api/internal/middleware"
	"github.com/yukikurage/tracker-api/internal/repository"
	"github.com/yukikurage/tracker-api/internal/services"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// Server provides the HTTP API.
type Server struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logging.Logger

	authService *services.AuthService
	auth        *handlers.AuthHandler
	site        *handlers.SiteHandler
	projects    *handlers.ProjectHandler
	tasks       *handlers.TaskHandler
	logTimes    *handlers.LogTimeHandler
}

// New constructs the server with routes and middleware configured. suggester
// may be nil, in which case task suggestion answers 503.
func New(db *gorm.DB, cfg *config.Config, log logging.Logger, suggester services.TaskSuggester) *Server {
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	logTimeRepo := repository.NewLogTimeRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)

	authorizer := authz.New(projectRepo)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	authService := services.NewAuthService(userRepo, tokens, authorizer, log)
	projectService := services.NewProjectService(projectRepo, authorizer)
	memberService := services.NewMemberService(projectRepo, userRepo, authorizer, log)
	catalogService := services.NewCatalogService(catalogRepo, projectRepo, authorizer)
	taskService := services.NewTaskService(taskRepo, projectRepo, catalogRepo, authorizer, suggester)
	logTimeService := services.NewLogTimeService(logTimeRepo, taskRepo, authorizer)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))

	srv := &Server{
		engine:      router,
		db:          db,
		cfg:         cfg,
		log:         log,
		authService: authService,
		auth:        handlers.NewAuthHandler(authService, log),
		site:        handlers.NewSiteHandler(authService, cfg.SiteName, log),
		projects:    handlers.NewProjectHandler(projectService, memberService, catalogService, log),
		tasks:       handlers.NewTaskHandler(taskService, log),
		logTimes:    handlers.NewLogTimeHandler(logTimeService, log),
	}

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerRoutes() {
	requireAuth := middleware.RequireAuth(s.authService, s.log)
	optionalAuth := middleware.OptionalAuth(s.authService, s.log)
	withID := middleware.RequireIDParam("id")

	s.engine.GET("/health", s.handleHealth)

	api := s.engine.Group("/api")
	{
		api.GET("/site", optionalAuth, s.site.GetSite)

		users := api.Group("/users")
		{
			users.POST("/register", s.auth.Register)
			users.POST("/login", s.auth.Login)
			users.POST("/logout", requireAuth, s.auth.Logout)
			users.GET("/me", requireAuth, s.auth.GetCurrentUser)
			users.POST("", requireAuth, s.auth.CreateUser)
			users.PATCH("/:id", requireAuth, withID, s.auth.UpdateUser)
			users.DELETE("/:id", requireAuth, withID, s.auth.DeleteUser)
		}

		projects := api.Group("/projects")
		projects.Use(requireAuth)
		{
			projects.POST("", s.projects.CreateProject)
			projects.GET("", s.projects.ListProjects)
			projects.GET("/:id", withID, s.projects.GetProject)
			projects.PATCH("/:id", withID, s.projects.UpdateProject)
			projects.GET("/:id/members", withID, s.projects.ListMembers)
			projects.POST("/:id/members", withID, s.projects.AddMember)
			projects.PATCH("/:id/members", withID, s.projects.RemoveMember)
			projects.GET("/:id/tasks", withID, s.tasks.ListProjectTasks)
			projects.POST("/:id/tasks/suggest", withID, s.tasks.SuggestTasks)
			projects.GET("/:id/versions", withID, s.projects.ListVersions)
			projects.POST("/:id/versions", withID, s.projects.CreateVersion)
			projects.GET("/:id/tags", withID, s.projects.ListTags)
			projects.POST("/:id/tags", withID, s.projects.CreateTag)
		}

		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.POST("", s.tasks.CreateTask)
			tasks.GET("", s.tasks.ListTasks)
			tasks.GET("/:id", withID, s.tasks.GetTask)
			tasks.PATCH("/:id", withID, s.tasks.UpdateTask)
		}

		logTimes := api.Group("/logtimes")
		logTimes.Use(requireAuth)
		{
			logTimes.POST("", s.logTimes.CreateLogTime)
			logTimes.GET("", s.logTimes.ListLogTimes)
			logTimes.GET("/:id", withID, s.logTimes.GetLogTime)
			logTimes.PATCH("/:id", withID, s.logTimes.UpdateLogTime)
			logTimes.DELETE("/:id", withID, s.logTimes.DeleteLogTime)
		}
	}

	s.engine.NoRoute(apierrors.URLNotFound)
}

// handleHealth reports readiness, including database reachability.
func (s *Server) handleHealth(c *gin.Context) {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		s.log.Warn(c.Request.Context(), "health check failed", "error", err)
		apierrors.ServiceUnavailable(c, "Database unavailable")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": s.cfg.SiteName + " API is running",
	})
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info(ctx, "server starting", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info(context.Background(), "server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
