package repository

import (
	"context"

	"ci-computer-dashboard/models"
)

// AssetRepositoryInterface defines the contract for loading the configuration item dataset
type AssetRepositoryInterface interface {
	LoadAssets(ctx context.Context) (*models.AssetTable, error)
}

// QueryRepositoryInterface defines the contract for ad-hoc read queries
type QueryRepositoryInterface interface {
	QueryTable(ctx context.Context, query string, args ...any) (models.Table, error)
}

// DriveFileDownloader downloads a file's bytes from cloud storage
type DriveFileDownloader interface {
	DownloadFile(ctx context.Context, fileID string) ([]byte, error)
}
