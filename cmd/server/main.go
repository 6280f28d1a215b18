package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"folio/internal/auth"
	"folio/internal/config"
	models "folio/internal/domain/models/folder"
	"folio/internal/domain/repositories"
	folderSvc "folio/internal/domain/services/folder"
	"folio/internal/handler"
	"folio/internal/handler/sse"
	"folio/internal/middleware"
	"folio/internal/notification"
	"folio/internal/repository/postgres"
	"folio/internal/repository/sqlite"
	"folio/internal/service/database"
	"folio/internal/service/document"
	"folio/internal/service/folder"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

const (
	notificationBuffer = 64
	redisPrefix        = "folio"
	shutdownTimeout    = 10 * time.Second
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Log to stdout, and to a rotated file when LOG_DIR is set
	var logOutput io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, cfg.LogMaxFiles)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOutput = io.MultiWriter(os.Stdout, logFile)
	}
	logger := config.NewLogger(cfg.Environment, logOutput)
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
		"cloud", cfg.CloudEnabled(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Local store holds the folder state and every view payload
	store, err := sqlite.OpenStore(ctx, cfg.LocalDBPath)
	if err != nil {
		log.Fatalf("Failed to open local store: %v", err)
	}
	defer store.Close()
	logger.Info("local store opened", "path", cfg.LocalDBPath)

	// Cloud: Postgres when configured, offline otherwise
	var (
		cloud      folderSvc.FolderCloudService  = folder.OfflineCloud{}
		stateStore repositories.FolderStateStore = store
	)
	if cfg.CloudEnabled() {
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to create connection pool: %v", err)
		}
		defer pool.Close()

		tables := postgres.NewTableNames(cfg.TablePrefix)
		if err := postgres.EnsureSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
			log.Fatalf("Failed to ensure schema: %v", err)
		}

		cloudRepo := postgres.NewFolderCloudRepository(&postgres.RepositoryConfig{
			Pool:   pool,
			Tables: tables,
			Logger: logger,
		})
		if err := cloudRepo.EnsureWorkspace(ctx, cfg.WorkspaceID, cfg.UserID, "Workspace"); err != nil {
			log.Fatalf("Failed to ensure workspace: %v", err)
		}

		cloud = cloudRepo
		stateStore = folder.NewCloudSyncStore(store, cloudRepo, cfg.SnapshotEvery, logger)
		logger.Info("cloud sync enabled", "snapshot_every", cfg.SnapshotEvery)
	}

	// Notifications: SSE hub, plus Redis fan-out when configured
	hub := notification.NewHub(notificationBuffer, logger)
	var notifier folderSvc.Notifier = hub
	if cfg.RedisURL != "" {
		publisher, err := notification.NewRedisPublisher(cfg.RedisURL, redisPrefix, logger)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer publisher.Close()
		notifier = notification.Multi{hub, publisher}
		logger.Info("redis notifications enabled")
	}

	// Layout handlers
	docHandler := document.NewHandler(store, document.NewConverters(), logger)
	dbHandler := database.NewHandler(store, logger)
	operationHandlers := folder.NewOperationHandlers()
	operationHandlers.Register(docHandler, models.LayoutDocument)
	operationHandlers.Register(dbHandler, dbHandler.Layouts()...)

	builder, err := folder.NewDefaultFolderBuilder()
	if err != nil {
		log.Fatalf("Failed to load folder templates: %v", err)
	}

	manager := folder.NewManager(
		auth.NewSessionUser(cfg.UserID),
		operationHandlers,
		cloud,
		stateStore,
		notifier,
		builder,
		logger,
	)

	// Cloud first, then local disk; a brand new install gets the default workspace
	if err := manager.InitializeWithWorkspaceID(ctx, cfg.WorkspaceID); err != nil {
		logger.Info("no stored folder, creating default workspace", "workspace_id", cfg.WorkspaceID)
		if err := manager.Initialize(ctx, cfg.UserID, cfg.WorkspaceID, folderSvc.LocalDiskSource(true)); err != nil {
			log.Fatalf("Failed to initialize folder: %v", err)
		}
	}

	logger.Info("services initialized")

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, &handler.Handlers{
		Workspace: handler.NewWorkspaceHandler(manager, logger),
		View:      handler.NewViewHandler(manager, logger),
		Section:   handler.NewSectionHandler(manager, logger),
		Import:    handler.NewImportHandler(manager, logger),
		Database:  handler.NewDatabaseHandler(database.NewDatabaseService(store, logger), logger),
		Document:  handler.NewDocumentHandler(docHandler, logger),
		Events:    handler.NewEventsHandler(hub, sse.DefaultConfig(), logger),
	})

	// Build middleware chain
	// Order: CORS → Recovery → Auth → Routes
	var h http.Handler = mux
	if cfg.AuthEnabled {
		jwtVerifier, err := auth.NewJWTVerifier(cfg.SupabaseJWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create JWT verifier: %v", err)
		}
		defer jwtVerifier.Close()
		h = middleware.AuthMiddleware(jwtVerifier, logger)(h)
	} else {
		logger.Warn("auth disabled, every request acts as the session user", "user_id", cfg.UserID)
		h = middleware.StaticUserMiddleware(strconv.FormatInt(cfg.UserID, 10))(h)
	}
	h = middleware.Recovery(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOriginList(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "Last-Event-ID"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // Disabled to allow long-lived SSE streams
		IdleTimeout:  60 * time.Second,
	}

	// Deferred closers (redis publisher, stores) run only after in-flight
	// requests have drained
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}()

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
	<-shutdownDone
	logger.Info("server stopped")
}
