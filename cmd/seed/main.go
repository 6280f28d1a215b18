package main

import (
	"context"
	"flag"
	"log"
	"os"

	"folio/internal/auth"
	"folio/internal/config"
	models "folio/internal/domain/models/folder"
	folderSvc "folio/internal/domain/services/folder"
	"folio/internal/notification"
	"folio/internal/repository/postgres"
	"folio/internal/repository/sqlite"
	"folio/internal/service/database"
	"folio/internal/service/document"
	"folio/internal/service/folder"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all cloud tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed the workspace")
	clearData := flag.Bool("clear-data", false, "Clear the workspace folder state and snapshots (keep schema)")
	workspaceName := flag.String("workspace-name", "Workspace", "Name of the seeded workspace")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("BLOCKED: cannot run --drop-tables or --clear-data in production")
	}
	if !cfg.CloudEnabled() {
		log.Fatalf("DATABASE_URL is required")
	}

	logger := config.NewLogger(cfg.Environment, os.Stdout)

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("Dropping all tables...")
		if err := postgres.DropSchema(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
	}

	log.Printf("Ensuring schema (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	if err := postgres.EnsureSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	if *schemaOnly {
		log.Println("Schema setup complete (schema-only mode)")
		return
	}

	if *clearData {
		if err := clearWorkspaceData(ctx, pool, tables, cfg.WorkspaceID); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Println("Data cleared")
		return
	}

	cloud := postgres.NewFolderCloudRepository(&postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	})
	if err := cloud.EnsureWorkspace(ctx, cfg.WorkspaceID, cfg.UserID, *workspaceName); err != nil {
		log.Fatalf("Failed to ensure workspace: %v", err)
	}

	// The templated payloads live in the local store, so seed it too
	store, err := sqlite.OpenStore(ctx, cfg.LocalDBPath)
	if err != nil {
		log.Fatalf("Failed to open local store: %v", err)
	}
	defer store.Close()

	docHandler := document.NewHandler(store, document.NewConverters(), logger)
	dbHandler := database.NewHandler(store, logger)
	handlers := folder.NewOperationHandlers()
	handlers.Register(docHandler, models.LayoutDocument)
	handlers.Register(dbHandler, dbHandler.Layouts()...)

	builder, err := folder.NewDefaultFolderBuilder()
	if err != nil {
		log.Fatalf("Failed to load folder templates: %v", err)
	}

	manager := folder.NewManager(
		auth.NewSessionUser(cfg.UserID),
		handlers,
		cloud,
		folder.NewCloudSyncStore(store, cloud, 0, logger),
		notification.Multi{},
		builder,
		logger,
	)
	if err := manager.Initialize(ctx, cfg.UserID, cfg.WorkspaceID, folderSvc.LocalDiskSource(true)); err != nil {
		log.Fatalf("Failed to build workspace: %v", err)
	}

	state, err := store.LoadFolderState(ctx, cfg.UserID, cfg.WorkspaceID)
	if err != nil {
		log.Fatalf("Failed to read folder state: %v", err)
	}
	if err := cloud.SaveWithSnapshot(ctx, cfg.WorkspaceID, cfg.UserID, "seed", state); err != nil {
		log.Fatalf("Failed to store folder state: %v", err)
	}

	workspace, err := manager.GetCurrentWorkspace(ctx)
	if err != nil {
		log.Fatalf("Failed to read workspace: %v", err)
	}
	for _, view := range workspace.Views {
		log.Printf("  %s (%s, %d children)", view.Name, view.Layout, len(view.ChildViews))
	}
	log.Printf("Seeded workspace %s with %d top-level views", cfg.WorkspaceID, len(workspace.Views))
}

// clearWorkspaceData removes the folder state and snapshots of a workspace
func clearWorkspaceData(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, workspaceID string) error {
	if _, err := pool.Exec(ctx, "DELETE FROM "+tables.FolderSnapshots+" WHERE workspace_id = $1", workspaceID); err != nil {
		return err
	}
	_, err := pool.Exec(ctx, "DELETE FROM "+tables.FolderDocStates+" WHERE workspace_id = $1", workspaceID)
	return err
}
