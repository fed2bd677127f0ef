package service

import (
	"context"

	"ci-computer-dashboard/models"
)

type fakeAssetRepository struct {
	table *models.AssetTable
	err   error
	loads int
}

func (f *fakeAssetRepository) LoadAssets(ctx context.Context) (*models.AssetTable, error) {
	f.loads++
	if f.err != nil {
		return nil, f.err
	}
	return f.table, nil
}

func sampleAssets() *models.AssetTable {
	rec := models.NewAssetRecord
	return &models.AssetTable{
		Columns: []string{"name", "asset_tag", "department", "location", "u_build_machine_use", "u_build_use", "install_status"},
		Records: []models.AssetRecord{
			rec(map[string]string{"name": "com8cc-0042", "asset_tag": "21H001", "department": "IT", "location": "Mayenne", "u_build_machine_use": "Office", "u_build_use": "Win11 22H2", "install_status": "Installed"}),
			rec(map[string]string{"name": "LTP-9981", "asset_tag": "22H002", "department": "HR", "location": "Laval", "u_build_machine_use": "Office", "u_build_use": "Win11 23H2", "install_status": "In Stock"}),
			rec(map[string]string{"name": "terwd-7", "asset_tag": "21H003", "department": "IT", "location": "Mayenne", "u_build_machine_use": "Lab", "u_build_use": "Win10 21H2", "install_status": "Installed"}),
			rec(map[string]string{"name": "8cc-1", "asset_tag": "xx999", "department": "OPS", "location": "Laval"}),
		},
	}
}

func newTestDashboard() (*DashboardService, *fakeAssetRepository) {
	repo := &fakeAssetRepository{table: sampleAssets()}
	return NewDashboardService(repo), repo
}
