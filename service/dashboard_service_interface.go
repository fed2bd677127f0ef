package service

import (
	"context"

	"ci-computer-dashboard/models"
)

// DashboardServiceInterface defines the contract for the derived dashboard views
type DashboardServiceInterface interface {
	LoadAssets(ctx context.Context) (*models.AssetTable, error)
	Summary(ctx context.Context) (models.AssetSummary, error)
	AssetTagCounts(ctx context.Context) ([]models.ValueCount, error)
	DeviceGroups(ctx context.Context, machineUses []string) ([]models.DeviceCategoryCount, error)
	VersionGroups(ctx context.Context, machineUses []string) ([]models.VersionDeviceCount, error)
	DevicePoints(ctx context.Context) ([]models.DevicePoint, error)
	Table(ctx context.Context, columns []string) (models.Table, error)
	BuildView(ctx context.Context, variant string, sel models.Selection) (*models.DashboardView, error)
}
