package repository

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"ci-computer-dashboard/models"
)

// DriveAssetRepository downloads the CSV export from Google Drive on every load
type DriveAssetRepository struct {
	drive    DriveFileDownloader
	fileID   string
	encoding string
}

// NewDriveAssetRepository creates a new DriveAssetRepository
func NewDriveAssetRepository(drive DriveFileDownloader, fileID, encoding string) *DriveAssetRepository {
	return &DriveAssetRepository{drive: drive, fileID: fileID, encoding: encoding}
}

// Ensure DriveAssetRepository implements AssetRepositoryInterface
var _ AssetRepositoryInterface = (*DriveAssetRepository)(nil)

// LoadAssets downloads and parses the export
func (r *DriveAssetRepository) LoadAssets(ctx context.Context) (*models.AssetTable, error) {
	data, err := r.drive.DownloadFile(ctx, r.fileID)
	if err != nil {
		log.Printf("❌ LoadAssets: download of %s failed: %v", r.fileID, err)
		return nil, fmt.Errorf("failed to download asset file: %w", err)
	}

	table, err := ParseAssetCSV(bytes.NewReader(data), r.encoding)
	if err != nil {
		return nil, err
	}

	log.Printf("✓ Loaded %d asset records from Drive file %s", table.Len(), r.fileID)
	return table, nil
}
