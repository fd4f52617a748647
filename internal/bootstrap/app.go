package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/karaksak1338/ChaosOrganizer/internal/documents"
	"github.com/karaksak1338/ChaosOrganizer/internal/shared/config"
	"github.com/karaksak1338/ChaosOrganizer/internal/shared/server"
	"github.com/karaksak1338/ChaosOrganizer/internal/shared/storage/blob"
	localstore "github.com/karaksak1338/ChaosOrganizer/internal/shared/storage/blob/local"
	memorystore "github.com/karaksak1338/ChaosOrganizer/internal/shared/storage/blob/memory"
	s3store "github.com/karaksak1338/ChaosOrganizer/internal/shared/storage/blob/s3"
	"github.com/karaksak1338/ChaosOrganizer/internal/shared/storage/db"
	"github.com/karaksak1338/ChaosOrganizer/internal/shared/telemetry"
)

// App holds the process-wide resource handles and the wired service graph.
// Both external resources are constructed once here and injected, never
// reached for ad hoc.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Blob             blob.Store
	DocumentsRepo    documents.Repo
	DocumentsService *documents.Service
	DocumentsHandler *documents.Handler
}

// Build prepares shared dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.BlobStoreType) == "" {
		cfg.BlobStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildBlobStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Blob:   store,
	}

	var repo documents.Repo
	if sqlDB != nil {
		repo = &documents.PGRepo{DB: sqlDB}
	} else {
		repo = documents.NewMemoryRepo()
	}

	svc := &documents.Service{
		Blob:     store,
		Repo:     repo,
		Identity: documents.IdentityResolver{Fallback: cfg.DefaultUserID},
	}

	app.DocumentsRepo = repo
	app.DocumentsService = svc
	app.DocumentsHandler = documents.NewHandler(svc)
	app.Router = server.NewRouter(server.RouterDeps{
		Config:           cfg,
		DocumentsHandler: app.DocumentsHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repo", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repo", map[string]any{"reason": "database connect failed", "err": err.Error()})
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildBlobStore(ctx context.Context, cfg config.Config) (blob.Store, error) {
	switch cfg.BlobStoreType {
	case "s3":
		return s3store.New(ctx, s3store.Options{
			Region:        cfg.AWSRegion,
			Bucket:        cfg.DocsBucket,
			Prefix:        cfg.S3Prefix,
			PublicBaseURL: cfg.PublicBaseURL,
			KMSKeyID:      cfg.SSEKMSKeyID,
		})
	case "memory":
		return memorystore.New(), nil
	default:
		return localstore.New(cfg.LocalStoreDir, cfg.PublicBaseURL), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
