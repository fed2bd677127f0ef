package app

import (
	"context"
	"fmt"
	"net/http"

	"ci-computer-dashboard/app/controller"
	"ci-computer-dashboard/app/router"
	"ci-computer-dashboard/config"
	"ci-computer-dashboard/db"
	"ci-computer-dashboard/repository"
	"ci-computer-dashboard/service"
)

// NewAssetRepository builds the repository of the configured asset source
func NewAssetRepository(ctx context.Context, cfg *config.Config) (repository.AssetRepositoryInterface, error) {
	var repo repository.AssetRepositoryInterface

	switch cfg.AssetSource {
	case config.SourceCSV:
		repo = repository.NewCSVAssetRepository(cfg.AssetCSVPath, cfg.AssetCSVEncoding)

	case config.SourcePostgres:
		// Initialize database connection
		if err := db.InitDB(ctx, cfg.ConnString()); err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		repo = repository.NewPostgresAssetRepository(db.DB, cfg.AssetTable)

	case config.SourceDrive:
		// Initialize Drive service
		driveService, err := service.NewDriveService(ctx, cfg.CredentialsPath)
		if err != nil {
			return nil, err
		}
		repo = repository.NewDriveAssetRepository(driveService, cfg.DriveFileID, cfg.AssetCSVEncoding)

	default:
		return nil, fmt.Errorf("unknown asset source %q", cfg.AssetSource)
	}

	return repository.NewInstrumentedAssetRepository(repo, cfg.AssetSource), nil
}

// Initialize wires repositories, services and controllers and returns the HTTP handler
func Initialize(ctx context.Context, cfg *config.Config) (http.Handler, error) {
	repo, err := NewAssetRepository(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return NewHandler(cfg, repo), nil
}

// NewHandler builds the routes over an already constructed asset repository
func NewHandler(cfg *config.Config, repo repository.AssetRepositoryInterface) http.Handler {
	dashboardService := service.NewDashboardService(repo)
	chartService := service.NewChartService(dashboardService)
	snapshotService := service.NewSnapshotService(cfg.BaseURL, cfg.ChromePath)
	qrService := service.NewQRService()
	statusModelService := service.NewStatusModelService(dashboardService, service.DefaultTrainOptions())

	// Create controllers
	controllers := &router.Controllers{
		Dashboard:   controller.NewDashboardController(dashboardService, chartService, snapshotService),
		QR:          controller.NewQRController(qrService),
		StatusModel: controller.NewStatusModelController(statusModelService),
	}

	// Setup routes using standard http router
	mux := http.NewServeMux()
	router.SetupRoutes(mux, controllers)

	return mux
}
