package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"picktask-backend/internal/config"
	"picktask-backend/internal/features/attachments"
	"picktask-backend/internal/features/audit_logs"
	audit_logs_controllers "picktask-backend/internal/features/audit_logs/controllers"
	"picktask-backend/internal/features/comments"
	"picktask-backend/internal/features/groups"
	"picktask-backend/internal/features/kanban"
	"picktask-backend/internal/features/projects"
	system_healthcheck "picktask-backend/internal/features/system/healthcheck"
	"picktask-backend/internal/features/tasks"
	users_controllers "picktask-backend/internal/features/users/controllers"
	users_middleware "picktask-backend/internal/features/users/middleware"
	users_services "picktask-backend/internal/features/users/services"
	"picktask-backend/internal/features/workspace_context"
	workspaces_controllers "picktask-backend/internal/features/workspaces/controllers"
	workspaces_services "picktask-backend/internal/features/workspaces/services"
	"picktask-backend/internal/storage"
	env_utils "picktask-backend/internal/util/env"
	files_utils "picktask-backend/internal/util/files"
	"picktask-backend/internal/util/logger"
	_ "picktask-backend/swagger" // swagger docs

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title PickTask Backend API
// @version 1.0
// @description API for PickTask workspaces, projects and tasks
// @termsOfService http://swagger.io/terms/

// @host localhost:4005
// @BasePath /api/v1
// @schemes http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	log := logger.GetLogger()

	runMigrations(log)

	err := files_utils.EnsureDirectories([]string{
		config.GetEnv().AttachmentsFolder,
		config.GetEnv().AttachmentsTempFolder,
	})
	if err != nil {
		log.Error("Failed to ensure directories", "error", err)
		os.Exit(1)
	}

	go generateSwaggerDocs(log)

	gin.SetMode(gin.ReleaseMode)
	ginApp := gin.Default()

	ginApp.Use(gzip.Gzip(
		gzip.DefaultCompression,
		// attachments are often already compressed
		gzip.WithExcludedExtensions(
			[]string{".png", ".gif", ".jpeg", ".jpg", ".ico", ".svg", ".pdf", ".mp4", ".zip"},
		),
		gzip.WithExcludedPathsRegexs([]string{`/attachments/[^/]+$`}),
	))

	enableCors(ginApp)
	setUpDependencies()
	setUpRoutes(ginApp)
	runBackgroundTasks(log)

	startServerWithGracefulShutdown(log, ginApp)
}

func startServerWithGracefulShutdown(log *slog.Logger, app *gin.Engine) {
	host := ""
	if config.GetEnv().EnvMode == env_utils.EnvModeDevelopment {
		// for dev we use localhost to avoid firewall
		// requests on each run for Windows
		host = "127.0.0.1"
	}

	srv := &http.Server{
		Addr:    host + ":" + config.GetEnv().HTTPPort,
		Handler: app,
	}

	go func() {
		log.Info("Starting HTTP server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen:", "error", err)
		}
	}()

	log.Info("PickTask is running!", "http", "http://localhost:"+config.GetEnv().HTTPPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("Shutdown signal received")

	// The context is used to inform the server it has 10 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown:", "error", err)
	}

	log.Info("Server gracefully stopped")
}

func setUpRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")

	v1.GET("/docs/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes (only user auth routes and healthcheck should be public)
	userController := users_controllers.GetUserController()
	userController.RegisterRoutes(v1)
	system_healthcheck.GetHealthcheckController().RegisterRoutes(v1)

	userService := users_services.GetUserService()
	authMiddleware := users_middleware.AuthMiddleware(userService)
	contextMiddleware := workspace_context.ContextMiddleware(workspace_context.GetContextResolver())

	protected := v1.Group("")
	protected.Use(authMiddleware, contextMiddleware)

	userController.RegisterProtectedRoutes(protected)
	workspace_context.GetWorkspaceContextController().RegisterRoutes(protected)
	workspaces_controllers.GetWorkspaceController().RegisterRoutes(protected)
	workspaces_controllers.GetMembershipController().RegisterRoutes(protected)
	projects.GetProjectController().RegisterRoutes(protected)
	tasks.GetTaskController().RegisterRoutes(protected)
	comments.GetCommentController().RegisterRoutes(protected)
	attachments.GetAttachmentController().RegisterRoutes(protected)
	kanban.GetKanbanController().RegisterRoutes(protected)
	groups.GetGroupController().RegisterRoutes(protected)
	audit_logs_controllers.GetAuditLogController().RegisterRoutes(protected)
}

func setUpDependencies() {
	audit_logs.SetupDependencies()
	workspaces_services.SetupDependencies()
	projects.SetupDependencies()
	tasks.SetupDependencies()
	comments.SetupDependencies()
	attachments.SetupDependencies()
	groups.SetupDependencies()
}

func runBackgroundTasks(log *slog.Logger) {
	log.Info("Preparing to run background tasks...")

	removed, err := files_utils.CleanFolder(config.GetEnv().AttachmentsTempFolder)
	if err != nil {
		log.Error("Failed to clean temp folder", "error", err)
	} else if removed > 0 {
		log.Info("Removed leftover temp files", "count", removed)
	}

	go runWithPanicLogging(log, "invitation cleanup background service", func() {
		workspaces_services.GetInvitationCleanupBackgroundService().Run()
	})
}

func runWithPanicLogging(log *slog.Logger, serviceName string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("Panic in "+serviceName, "error", r)
		}
	}()
	fn()
}

// Keep in mind: docs appear after second launch, because Swagger
// is generated into Go files. So if we changed files, we generate
// new docs, but still need to restart the server to see them.
func generateSwaggerDocs(log *slog.Logger) {
	if config.GetEnv().EnvMode == env_utils.EnvModeProduction {
		return
	}

	currentDir, err := os.Getwd()
	if err != nil {
		log.Error("Failed to get current directory", "error", err)
		return
	}

	cmd := exec.Command("swag", "init", "-d", currentDir, "-g", "cmd/main.go", "-o", "swagger")

	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Error("Failed to generate Swagger docs", "error", err, "output", string(output))
		return
	}

	log.Info("Swagger documentation generated successfully")
}

// runMigrations applies the goose migrations to postgres. Sqlite databases
// are migrated from the gorm models when the connection opens.
func runMigrations(log *slog.Logger) {
	if storage.IsSqlite() {
		log.Info("Sqlite database, skipping SQL migrations")
		return
	}

	log.Info("Running database migrations...")

	cmd := exec.Command("goose", "up")
	cmd.Env = append(
		os.Environ(),
		"GOOSE_DRIVER=postgres",
		"GOOSE_DBSTRING="+config.GetEnv().DatabaseDsn,
	)
	cmd.Dir = config.GetEnv().MigrationsDir

	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Error("Failed to run migrations", "error", err, "output", string(output))
		os.Exit(1)
	}

	log.Info("Database migrations completed successfully", "output", string(output))
}

func enableCors(ginApp *gin.Engine) {
	if config.GetEnv().EnvMode == env_utils.EnvModeDevelopment {
		ginApp.Use(cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
			AllowHeaders: []string{
				"Origin",
				"Content-Length",
				"Content-Type",
				"Authorization",
				"Accept",
				"Accept-Language",
				"Accept-Encoding",
				"Access-Control-Request-Method",
				"Access-Control-Request-Headers",
			},
			AllowCredentials: true,
		}))
	}
}
