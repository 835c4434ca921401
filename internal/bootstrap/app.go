package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"srtm-backend/internal/categorizations"
	"srtm-backend/internal/designelements"
	"srtm-backend/internal/matrix"
	"srtm-backend/internal/requirements"
	"srtm-backend/internal/services/health"
	"srtm-backend/internal/shared/config"
	"srtm-backend/internal/shared/server"
	"srtm-backend/internal/shared/storage/db"
	"srtm-backend/internal/shared/storage/object"
	localstore "srtm-backend/internal/shared/storage/object/local"
	s3store "srtm-backend/internal/shared/storage/object/s3"
	"srtm-backend/internal/shared/telemetry"
	"srtm-backend/internal/stig"
	"srtm-backend/internal/stig/catalog"
	"srtm-backend/internal/stig/library"
	"srtm-backend/internal/stig/recommendations"
	"srtm-backend/internal/workflow"
)

// App holds shared dependencies and the assembled router.
type App struct {
	Config  config.Config
	Router  *gin.Engine
	DB      *sql.DB
	Store   object.ObjectStore
	Catalog *catalog.Repository

	RequirementsService    *requirements.Service
	DesignElementsService  *designelements.Service
	CategorizationsService *categorizations.Service
	StigService            *stig.Service
	WorkflowService        *workflow.Service
	MatrixService          *matrix.Service
}

// Build prepares shared dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	if _, err := recommendations.ProfileByName(cfg.ScoringProfile); err != nil {
		return nil, err
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	cat, err := BuildCatalog(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:  cfg,
		DB:      sqlDB,
		Store:   store,
		Catalog: cat,
	}
	buildServices(app)

	var pinger health.Pinger
	if sqlDB != nil {
		pinger = sqlDB
	}
	app.Router = server.NewRouter(server.RouterDeps{
		Config:                 cfg,
		Health:                 health.NewService(pinger, func() string { return cat.Current().Version }),
		RequirementsHandler:    requirements.NewHandler(app.RequirementsService),
		DesignElementsHandler:  designelements.NewHandler(app.DesignElementsService),
		CategorizationsHandler: categorizations.NewHandler(app.CategorizationsService),
		StigHandler:            stig.NewHandler(app.StigService),
		WorkflowHandler:        workflow.NewHandler(app.WorkflowService),
		MatrixHandler:          matrix.NewHandler(app.MatrixService),
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":             cfg.Env,
		"object_store":    cfg.ObjectStoreType,
		"database":        sqlDB != nil,
		"catalog_version": cat.Current().Version,
		"profile":         cfg.ScoringProfile,
	})
	return app, nil
}

// BuildCatalog returns the built-in catalog, or the one in CATALOG_FILE when set.
func BuildCatalog(cfg config.Config) (*catalog.Repository, error) {
	if strings.TrimSpace(cfg.CatalogFile) == "" {
		return catalog.NewBuiltinRepository(cfg.CatalogHistoryLimit), nil
	}
	doc, err := catalog.LoadFile(cfg.CatalogFile)
	if err != nil {
		return nil, err
	}
	version := doc.Version
	if strings.TrimSpace(version) == "" {
		version = "file:" + cfg.CatalogFile
	}
	repo, err := catalog.NewRepository(doc.Families, version, cfg.CatalogHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("catalog %q: %w", cfg.CatalogFile, err)
	}
	return repo, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repositories", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFor(db.PoolForRuntime()))
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repositories", map[string]any{"reason": "database connect failed", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		store, err := s3store.New(ctx, s3store.Options{
			Region:   cfg.AWSRegion,
			Bucket:   cfg.S3Bucket,
			Prefix:   cfg.S3Prefix,
			KMSKeyID: cfg.SSEKMSKeyID,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App) {
	var (
		reqRepo requirements.Repo
		elRepo  designelements.Repo
		catRepo categorizations.Repo
	)
	if app.DB != nil {
		reqRepo = &requirements.PGRepo{DB: app.DB}
		elRepo = &designelements.PGRepo{DB: app.DB}
		catRepo = &categorizations.PGRepo{DB: app.DB}
	} else {
		reqRepo = requirements.NewMemoryRepo()
		elRepo = designelements.NewMemoryRepo()
		catRepo = categorizations.NewMemoryRepo()
	}

	app.RequirementsService = requirements.NewService(reqRepo)
	app.DesignElementsService = designelements.NewService(elRepo)
	app.CategorizationsService = categorizations.NewService(catRepo)
	app.StigService = &stig.Service{
		Catalog:        app.Catalog,
		Library:        library.New(app.Store),
		Requirements:   app.RequirementsService,
		DesignElements: app.DesignElementsService,
		ProfileName:    app.Config.ScoringProfile,
	}
	app.WorkflowService = &workflow.Service{
		Requirements:    app.RequirementsService,
		DesignElements:  app.DesignElementsService,
		Categorizations: app.CategorizationsService,
		Store:           app.Store,
	}
	app.MatrixService = &matrix.Service{
		Requirements:   app.RequirementsService,
		DesignElements: app.DesignElementsService,
		Recommender:    app.StigService,
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
